package bank

import (
	"croupier/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	bankService service.BankService
}

func New(bankService service.BankService) *Feature {
	return &Feature{
		bankService: bankService,
	}
}

func (f *Feature) HandleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBalance(s, i)
}

func (f *Feature) HandleBeg(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBeg(s, i)
}

func (f *Feature) HandleFlex(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleFlex(s, i)
}
