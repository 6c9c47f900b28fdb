package blackjack

import (
	"strings"

	"croupier/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	blackjackService service.BlackjackService
}

func New(blackjackService service.BlackjackService) *Feature {
	return &Feature{
		blackjackService: blackjackService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleStart(s, i)
}

// HandleInteraction routes hit/stand button presses
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, "blackjack_hit_"):
		f.handleHit(s, i, strings.TrimPrefix(customID, "blackjack_hit_"))
	case strings.HasPrefix(customID, "blackjack_stand_"):
		f.handleStand(s, i, strings.TrimPrefix(customID, "blackjack_stand_"))
	}
}
