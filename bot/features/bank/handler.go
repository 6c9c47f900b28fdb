package bank

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"croupier/bot/common"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	balance := f.bankService.GetBalance(ctx, userID)

	message := fmt.Sprintf("<@%d>, your current balance: **%s chips**", userID, common.FormatChips(balance))
	if err := common.RespondWithMessage(s, i, message); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (f *Feature) handleBeg(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.bankService.Beg(ctx, userID)
	if err != nil {
		log.Errorf("Error begging for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if !result.Granted {
		message := fmt.Sprintf("<@%d>, you still have chips. Come back when you're broke.", userID)
		if err := common.RespondWithMessage(s, i, message); err != nil {
			log.Errorf("Error responding to beg command: %v", err)
		}
		return
	}

	message := fmt.Sprintf("🙏 The house takes pity on <@%d> and tosses them **%s chips**. New balance: **%s chips**",
		userID, common.FormatChips(result.Amount), common.FormatChips(result.NewBalance))
	if err := common.RespondWithMessage(s, i, message); err != nil {
		log.Errorf("Error responding to beg command: %v", err)
	}
}

func (f *Feature) handleFlex(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	balance := f.bankService.GetBalance(ctx, userID)

	var message string
	if balance <= 0 {
		message = fmt.Sprintf("<@%d> tried to flex with **0 chips**. Embarrassing.", userID)
	} else {
		message = fmt.Sprintf("💪 <@%d> flexes their **%s chips**!", userID, common.FormatChips(balance))
	}
	if err := common.RespondWithMessage(s, i, message); err != nil {
		log.Errorf("Error responding to flex command: %v", err)
	}
}
