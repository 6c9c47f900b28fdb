package service

import (
	"context"
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"croupier/config"
	"croupier/models"
)

// maxBegHandout caps the random handout the house grants a broke player
const maxBegHandout = 50

type bankService struct {
	uowFactory UnitOfWorkFactory
	houseID    int64
}

// NewBankService creates a new bank service
func NewBankService(uowFactory UnitOfWorkFactory, cfg *config.Config) BankService {
	return &bankService{
		uowFactory: uowFactory,
		houseID:    cfg.HouseAccountID,
	}
}

// GetBalance returns the current balance, creating the account with a zero
// balance on first reference. Storage failures are logged and read as 0.
func (s *bankService) GetBalance(ctx context.Context, userID int64) int64 {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.WithError(err).WithField("userID", userID).Error("Failed to begin balance read")
		return 0
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetOrCreate(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("userID", userID).Error("Failed to read balance")
		return 0
	}

	// Commit so the implicit account creation sticks
	if err := uow.Commit(); err != nil {
		log.WithError(err).WithField("userID", userID).Error("Failed to commit balance read")
		return 0
	}

	return account.Balance
}

// Beg grants a small random handout from the house, but only while the
// player is completely broke
func (s *bankService) Beg(ctx context.Context, userID int64) (*models.BegResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account.Balance > 0 {
		return &models.BegResult{Granted: false, NewBalance: account.Balance}, nil
	}

	amount := int64(rand.Intn(maxBegHandout) + 1)

	// The broke check rides on the credit itself, so two racing begs can
	// only cash in once
	applied, err := uow.AccountRepository().TryHandout(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to credit handout: %w", err)
	}
	if !applied {
		return &models.BegResult{Granted: false, NewBalance: account.Balance}, nil
	}

	house, err := uow.AccountRepository().GetOrCreate(ctx, s.houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get house account: %w", err)
	}
	if err := uow.AccountRepository().ForceDebit(ctx, s.houseID, amount); err != nil {
		return nil, fmt.Errorf("failed to debit house: %w", err)
	}

	newBalance := account.Balance + amount

	entry := &models.LedgerEntry{
		UserID:        userID,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		ChangeAmount:  amount,
		EntryType:     models.EntryTypeBeg,
		EntryMetadata: map[string]any{
			"house_id": s.houseID,
		},
	}
	if err := RecordBalanceChange(ctx, uow, entry); err != nil {
		return nil, fmt.Errorf("failed to record handout: %w", err)
	}

	houseEntry := &models.LedgerEntry{
		UserID:        s.houseID,
		BalanceBefore: house.Balance,
		BalanceAfter:  house.Balance - amount,
		ChangeAmount:  -amount,
		EntryType:     models.EntryTypeBeg,
		EntryMetadata: map[string]any{
			"recipient_id": userID,
		},
	}
	if err := RecordBalanceChange(ctx, uow, houseEntry); err != nil {
		return nil, fmt.Errorf("failed to record house handout: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.BegResult{
		Granted:    true,
		Amount:     amount,
		NewBalance: newBalance,
	}, nil
}
