package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"croupier/config"
	"croupier/events"
	"croupier/models"
)

type bonusService struct {
	uowFactory UnitOfWorkFactory
	amount     int64
	cooldown   time.Duration
}

// NewBonusService creates a new daily bonus service
func NewBonusService(uowFactory UnitOfWorkFactory, cfg *config.Config) BonusService {
	return &bonusService{
		uowFactory: uowFactory,
		amount:     cfg.DailyBonus,
		cooldown:   cfg.BonusCooldown,
	}
}

// Claim credits the daily bonus if the cooldown has elapsed. The claim is a
// single conditional update in the store, so concurrent claims from the same
// user cannot double-credit. A storage failure is logged and reported as an
// unapplied claim.
func (s *bonusService) Claim(ctx context.Context, userID int64, now time.Time) (*models.BonusResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.WithError(err).WithField("userID", userID).Error("Failed to begin bonus claim")
		return &models.BonusResult{Claimed: false}, nil
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetOrCreate(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("userID", userID).Error("Failed to read account for bonus claim")
		return &models.BonusResult{Claimed: false}, nil
	}

	applied, err := uow.AccountRepository().TryClaimDailyBonus(ctx, userID, s.amount, now, s.cooldown)
	if err != nil {
		log.WithError(err).WithField("userID", userID).Error("Failed to claim daily bonus")
		return &models.BonusResult{Claimed: false}, nil
	}

	if !applied {
		remaining := time.Duration(0)
		if account.LastBonusClaim != nil {
			remaining = s.cooldown - now.Sub(*account.LastBonusClaim)
			if remaining < 0 {
				remaining = 0
			}
		}
		return &models.BonusResult{
			Claimed:   false,
			Remaining: remaining,
		}, nil
	}

	newBalance := account.Balance + s.amount

	entry := &models.LedgerEntry{
		UserID:        userID,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		ChangeAmount:  s.amount,
		EntryType:     models.EntryTypeDailyBonus,
		EntryMetadata: map[string]any{
			"claimed_at": now.Format(time.RFC3339),
		},
	}
	if err := RecordBalanceChange(ctx, uow, entry); err != nil {
		return nil, fmt.Errorf("failed to record bonus: %w", err)
	}

	uow.EventBus().Publish(events.BonusClaimedEvent{
		UserID:     userID,
		Amount:     s.amount,
		NewBalance: newBalance,
	})

	if err := uow.Commit(); err != nil {
		log.WithError(err).WithField("userID", userID).Error("Failed to commit bonus claim")
		return &models.BonusResult{Claimed: false}, nil
	}

	return &models.BonusResult{
		Claimed:    true,
		Amount:     s.amount,
		NewBalance: newBalance,
	}, nil
}
