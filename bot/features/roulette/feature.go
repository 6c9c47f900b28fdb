package roulette

import (
	"croupier/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	rouletteService service.RouletteService
}

func New(rouletteService service.RouletteService) *Feature {
	return &Feature{
		rouletteService: rouletteService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBet(s, i)
}
