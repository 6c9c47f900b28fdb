package blackjack

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"croupier/bot/common"
	"croupier/models"
)

// actionButtons builds the hit/stand row, bound to the owning player
func actionButtons(userID int64) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Hit",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("blackjack_hit_%d", userID),
				},
				discordgo.Button{
					Label:    "Stand",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("blackjack_stand_%d", userID),
				},
			},
		},
	}
}

// formatTable renders the table mid-hand, with the dealer's hole card hidden
func formatTable(userID int64, stake int64, playerHand, dealerHand models.Hand, playerTotal int) string {
	return fmt.Sprintf("🃏 <@%d> is playing blackjack for **%s chips**\n"+
		"Your hand: **%s** (%d)\n"+
		"Dealer shows: **%s**",
		userID, common.FormatChips(stake), playerHand, playerTotal, dealerHand)
}

// formatResult renders a settled hand
func formatResult(userID int64, result *models.BlackjackResult) string {
	header := fmt.Sprintf("🃏 <@%d> — your hand: **%s** (%d), dealer: **%s** (%d)\n",
		userID, result.PlayerHand, result.PlayerTotal, result.DealerHand, result.DealerTotal)

	switch result.Outcome {
	case models.OutcomeBlackjack:
		return header + fmt.Sprintf("**Blackjack!** You win **%s chips**. New balance: **%s chips**",
			common.FormatChips(result.Payout), common.FormatChips(result.NewBalance))
	case models.OutcomePlayerWin:
		return header + fmt.Sprintf("**You win %s chips!** New balance: **%s chips**",
			common.FormatChips(result.Payout), common.FormatChips(result.NewBalance))
	case models.OutcomePush:
		return header + fmt.Sprintf("**Push.** Your stake of **%s chips** is returned. New balance: **%s chips**",
			common.FormatChips(result.Stake), common.FormatChips(result.NewBalance))
	case models.OutcomePlayerBust:
		return header + fmt.Sprintf("**Bust!** You lose **%s chips**. New balance: **%s chips**",
			common.FormatChips(result.Stake), common.FormatChips(result.NewBalance))
	default:
		return header + fmt.Sprintf("**Dealer wins.** You lose **%s chips**. New balance: **%s chips**",
			common.FormatChips(result.Stake), common.FormatChips(result.NewBalance))
	}
}
