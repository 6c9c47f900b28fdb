package blackjack

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"croupier/bot/common"
	"croupier/service"
)

func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var stake int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "stake" {
			stake = opt.IntValue()
		}
	}

	start, err := f.blackjackService.Start(ctx, userID, stake)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStake):
			common.RespondWithError(s, i, "Invalid stake amount.")
		case errors.Is(err, service.ErrInsufficientFunds):
			common.RespondWithError(s, i, "You don't have enough chips for that stake.")
		case errors.Is(err, service.ErrGameInProgress):
			common.RespondWithError(s, i, "You already have a hand in progress. Finish it first.")
		default:
			log.Errorf("Error starting blackjack for user %d: %v", userID, err)
			common.RespondWithError(s, i, "Unable to start game. Please try again.")
		}
		return
	}

	// Natural 21 resolves on the deal
	if start.Resolved != nil {
		if err := common.RespondWithMessage(s, i, formatResult(userID, start.Resolved)); err != nil {
			log.Errorf("Error responding to blackjack command: %v", err)
		}
		return
	}

	message := formatTable(userID, stake, start.PlayerHand, start.DealerHand, start.PlayerTotal)
	if err := common.RespondWithComponents(s, i, message, actionButtons(userID)); err != nil {
		log.Errorf("Error responding to blackjack command: %v", err)
	}
}

func (f *Feature) handleHit(s *discordgo.Session, i *discordgo.InteractionCreate, ownerID string) {
	ctx := context.Background()

	userID, ok := f.authorizeInteraction(s, i, ownerID)
	if !ok {
		return
	}

	result, err := f.blackjackService.Hit(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveGame) {
			common.RespondWithError(s, i, "You don't have a hand in progress.")
			return
		}
		log.Errorf("Error hitting for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to draw a card. Please try again.")
		return
	}

	if result.Resolved != nil {
		if err := common.UpdateWithComponents(s, i, formatResult(userID, result.Resolved), nil); err != nil {
			log.Errorf("Error updating blackjack message: %v", err)
		}
		return
	}

	message := fmt.Sprintf("🃏 <@%d> hits.\nYour hand: **%s** (%d)",
		userID, result.PlayerHand, result.PlayerTotal)
	if err := common.UpdateWithComponents(s, i, message, actionButtons(userID)); err != nil {
		log.Errorf("Error updating blackjack message: %v", err)
	}
}

func (f *Feature) handleStand(s *discordgo.Session, i *discordgo.InteractionCreate, ownerID string) {
	ctx := context.Background()

	userID, ok := f.authorizeInteraction(s, i, ownerID)
	if !ok {
		return
	}

	result, err := f.blackjackService.Stand(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveGame) {
			common.RespondWithError(s, i, "You don't have a hand in progress.")
			return
		}
		log.Errorf("Error standing for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to stand. Please try again.")
		return
	}

	if err := common.UpdateWithComponents(s, i, formatResult(userID, result), nil); err != nil {
		log.Errorf("Error updating blackjack message: %v", err)
	}
}

// authorizeInteraction checks that the button presser owns the hand
func (f *Feature) authorizeInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, ownerID string) (int64, bool) {
	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return 0, false
	}

	owner, err := strconv.ParseInt(ownerID, 10, 64)
	if err != nil || owner != userID {
		common.RespondWithError(s, i, "This isn't your hand.")
		return 0, false
	}

	return userID, true
}
