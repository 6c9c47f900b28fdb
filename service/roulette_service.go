package service

import (
	"context"
	"fmt"
	"math/rand"

	"croupier/config"
	"croupier/events"
	"croupier/models"
)

// redNumbers is the fixed 18-number red set of a European wheel; the other
// 18 non-zero numbers are black and 0 is green
var redNumbers = map[int]struct{}{
	1: {}, 3: {}, 5: {}, 7: {}, 9: {}, 12: {}, 14: {}, 16: {}, 18: {},
	19: {}, 21: {}, 23: {}, 25: {}, 27: {}, 30: {}, 32: {}, 34: {}, 36: {},
}

// greenMultiplier pays 35:1 on the single zero pocket
const greenMultiplier = 35

// colorOf maps a wheel number to its color
func colorOf(number int) models.RouletteColor {
	if number == 0 {
		return models.ColorGreen
	}
	if _, ok := redNumbers[number]; ok {
		return models.ColorRed
	}
	return models.ColorBlack
}

type rouletteService struct {
	uowFactory UnitOfWorkFactory
	houseID    int64
	maxBet     int64

	// draw picks the winning pocket; overridden in tests
	draw func() int
}

// NewRouletteService creates a new roulette service
func NewRouletteService(uowFactory UnitOfWorkFactory, cfg *config.Config) RouletteService {
	return &rouletteService{
		uowFactory: uowFactory,
		houseID:    cfg.HouseAccountID,
		maxBet:     cfg.MaxBet,
		draw:       func() int { return rand.Intn(37) },
	}
}

// Spin debits the stake, mirrors it into the house account, draws a number
// and settles the wager. The flow stops at the first failed ledger step; a
// failed debit never leads to a credit.
func (s *rouletteService) Spin(ctx context.Context, userID int64, stake int64, choice models.RouletteColor) (*models.SpinResult, error) {
	if stake < 1 || stake > s.maxBet {
		return nil, ErrInvalidStake
	}
	switch choice {
	case models.ColorRed, models.ColorBlack, models.ColorGreen:
	default:
		return nil, ErrInvalidChoice
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if stake > account.Balance {
		return nil, ErrInsufficientFunds
	}

	applied, err := uow.AccountRepository().TryDebit(ctx, userID, stake)
	if err != nil {
		return nil, fmt.Errorf("failed to debit stake: %w", err)
	}
	if !applied {
		// Lost the race against a concurrent debit; the caller resubmits
		return nil, ErrInsufficientFunds
	}

	house, err := uow.AccountRepository().GetOrCreate(ctx, s.houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get house account: %w", err)
	}
	if err := uow.AccountRepository().ForceDebit(ctx, s.houseID, stake); err != nil {
		return nil, fmt.Errorf("failed to mirror stake to house: %w", err)
	}

	number := s.draw()
	color := colorOf(number)
	won := color == choice

	var winnings int64
	var newBalance int64
	houseBalance := house.Balance - stake

	if won {
		winnings = stake
		if color == models.ColorGreen {
			winnings = stake * greenMultiplier
		}
		// The stake was already debited, so the credit carries both the
		// returned stake and the winnings
		credit := winnings * 2
		if err := uow.AccountRepository().Credit(ctx, userID, credit); err != nil {
			return nil, fmt.Errorf("failed to credit winnings: %w", err)
		}
		newBalance = account.Balance - stake + credit
	} else {
		// The house absorbs the loss: together with the mirrored stake it
		// nets exactly the forfeited stake
		if err := uow.AccountRepository().Credit(ctx, s.houseID, stake*2); err != nil {
			return nil, fmt.Errorf("failed to credit house: %w", err)
		}
		newBalance = account.Balance - stake
		houseBalance += stake * 2
	}

	entryType := models.EntryTypeSpinWin
	if !won {
		entryType = models.EntryTypeSpinLoss
	}
	entry := &models.LedgerEntry{
		UserID:        userID,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		ChangeAmount:  newBalance - account.Balance,
		EntryType:     entryType,
		EntryMetadata: map[string]any{
			"number": number,
			"color":  string(color),
			"choice": string(choice),
			"stake":  stake,
		},
	}
	if err := RecordBalanceChange(ctx, uow, entry); err != nil {
		return nil, fmt.Errorf("failed to record spin: %w", err)
	}

	houseType := models.EntryTypeHouseStake
	if !won {
		houseType = models.EntryTypeHouseTake
	}
	houseEntry := &models.LedgerEntry{
		UserID:        s.houseID,
		BalanceBefore: house.Balance,
		BalanceAfter:  houseBalance,
		ChangeAmount:  houseBalance - house.Balance,
		EntryType:     houseType,
		EntryMetadata: map[string]any{
			"player_id": userID,
			"stake":     stake,
		},
	}
	if err := RecordBalanceChange(ctx, uow, houseEntry); err != nil {
		return nil, fmt.Errorf("failed to record house bookkeeping: %w", err)
	}

	uow.EventBus().Publish(events.SpinResolvedEvent{
		UserID:   userID,
		Number:   number,
		Color:    color,
		Choice:   choice,
		Won:      won,
		Stake:    stake,
		Winnings: winnings,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result := &models.SpinResult{
		Number:     number,
		Color:      color,
		Choice:     choice,
		Won:        won,
		Stake:      stake,
		NewBalance: newBalance,
	}
	if won {
		result.Winnings = winnings
	}
	return result, nil
}
