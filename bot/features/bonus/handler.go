package bonus

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"croupier/bot/common"
)

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.bonusService.Claim(ctx, userID, time.Now())
	if err != nil {
		log.Errorf("Error claiming daily bonus for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to claim bonus. Please try again.")
		return
	}

	if !result.Claimed {
		if result.Remaining > 0 {
			message := fmt.Sprintf("<@%d>, you already claimed your daily bonus. Next claim in **%s**.",
				userID, common.FormatCooldown(result.Remaining))
			if err := common.RespondWithMessage(s, i, message); err != nil {
				log.Errorf("Error responding to daily command: %v", err)
			}
			return
		}
		common.RespondWithError(s, i, "Unable to claim bonus. Please try again.")
		return
	}

	message := fmt.Sprintf("🎁 <@%d> claimed their daily **%s chips**! New balance: **%s chips**",
		userID, common.FormatChips(result.Amount), common.FormatChips(result.NewBalance))
	if err := common.RespondWithMessage(s, i, message); err != nil {
		log.Errorf("Error responding to daily command: %v", err)
	}
}
