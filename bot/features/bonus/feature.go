package bonus

import (
	"croupier/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	bonusService service.BonusService
}

func New(bonusService service.BonusService) *Feature {
	return &Feature{
		bonusService: bonusService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleDaily(s, i)
}
