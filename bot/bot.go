package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"croupier/bot/common"
	"croupier/bot/features/bank"
	"croupier/bot/features/blackjack"
	"croupier/bot/features/bonus"
	"croupier/bot/features/roulette"
	"croupier/events"
	"croupier/models"
	"croupier/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

type Bot struct {
	config           Config
	session          *discordgo.Session
	bankFeature      *bank.Feature
	rouletteFeature  *roulette.Feature
	blackjackFeature *blackjack.Feature
	bonusFeature     *bonus.Feature
	eventBus         *events.Bus
}

func New(config Config, bankService service.BankService, rouletteService service.RouletteService, blackjackService service.BlackjackService, bonusService service.BonusService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:           config,
		session:          dg,
		bankFeature:      bank.New(bankService),
		rouletteFeature:  roulette.New(rouletteService),
		blackjackFeature: blackjack.New(blackjackService),
		bonusFeature:     bonus.New(bonusService),
		eventBus:         eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleComponentInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Announce green-pocket jackpots in the guild's system channel
	eventBus.Subscribe(events.EventTypeSpinResolved, func(ctx context.Context, event events.Event) {
		spin, ok := event.(events.SpinResolvedEvent)
		if !ok || !spin.Won || spin.Color != models.ColorGreen {
			return
		}
		if err := bot.announceJackpot(spin); err != nil {
			log.Errorf("Failed to announce jackpot: %v", err)
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// announceJackpot posts a green-pocket win to the guild's system channel
func (b *Bot) announceJackpot(spin events.SpinResolvedEvent) error {
	if b.config.GuildID == "" {
		return nil
	}

	guild, err := b.session.Guild(b.config.GuildID)
	if err != nil {
		return fmt.Errorf("failed to get guild: %w", err)
	}
	if guild.SystemChannelID == "" {
		return nil
	}

	message := fmt.Sprintf("🎰 **JACKPOT!** <@%d> hit green and won **%s chips**!",
		spin.UserID, common.FormatChips(spin.Winnings))
	if _, err := b.session.ChannelMessageSend(guild.SystemChannelID, message); err != nil {
		return fmt.Errorf("failed to send jackpot announcement: %w", err)
	}
	return nil
}

// handleComponentInteractions routes button presses to the owning feature
func (b *Bot) handleComponentInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	if strings.HasPrefix(customID, "blackjack_") {
		b.blackjackFeature.HandleInteraction(s, i)
	}
}
