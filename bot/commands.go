package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your current chip balance",
		},
		{
			Name:        "bet",
			Description: "Bet chips on a roulette color",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of chips to bet",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "color",
					Description: "Color to bet on",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Red (2x)", Value: "red"},
						{Name: "Black (2x)", Value: "black"},
						{Name: "Green (35x)", Value: "green"},
					},
				},
			},
		},
		{
			Name:        "blackjack",
			Description: "Play a hand of blackjack against the house",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "stake",
					Description: "Amount of chips to stake",
					Required:    true,
				},
			},
		},
		{
			Name:        "daily",
			Description: "Claim your daily chip bonus",
		},
		{
			Name:        "beg",
			Description: "Beg the house for chips when you are broke",
		},
		{
			Name:        "flex",
			Description: "Show off your chip balance",
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.bankFeature.HandleBalance(s, i)
	case "bet":
		b.rouletteFeature.HandleCommand(s, i)
	case "blackjack":
		b.blackjackFeature.HandleCommand(s, i)
	case "daily":
		b.bonusFeature.HandleCommand(s, i)
	case "beg":
		b.bankFeature.HandleBeg(s, i)
	case "flex":
		b.bankFeature.HandleFlex(s, i)
	}
}
