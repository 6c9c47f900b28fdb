package roulette

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"croupier/bot/common"
	"croupier/models"
	"croupier/service"
)

var colorEmoji = map[models.RouletteColor]string{
	models.ColorRed:   "🔴",
	models.ColorBlack: "⚫",
	models.ColorGreen: "🟢",
}

func (f *Feature) handleBet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// Extract command options
	var amount int64
	var choice models.RouletteColor
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "color":
			choice = models.RouletteColor(opt.StringValue())
		}
	}

	result, err := f.rouletteService.Spin(ctx, userID, amount, choice)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStake):
			common.RespondWithError(s, i, "Invalid bet amount.")
		case errors.Is(err, service.ErrInvalidChoice):
			common.RespondWithError(s, i, "Pick red, black or green.")
		case errors.Is(err, service.ErrInsufficientFunds):
			common.RespondWithError(s, i, "You don't have enough chips for that bet.")
		default:
			log.Errorf("Error spinning for user %d: %v", userID, err)
			common.RespondWithError(s, i, "Unable to place bet. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("<@%d> bet **%s chips** on %s %s\n%s",
		userID, common.FormatChips(result.Stake), colorEmoji[result.Choice], result.Choice,
		common.FormatSpinResult(result.Number, string(result.Color), result.Won, result.Winnings, result.Stake, result.NewBalance))
	if err := common.RespondWithMessage(s, i, message); err != nil {
		log.Errorf("Error responding to bet command: %v", err)
	}
}
