package service

import (
	"context"
	"time"

	"croupier/events"
	"croupier/models"
)

// AccountRepository defines the interface for account data access.
// The conditional operations (TryDebit, TryClaimDailyBonus) are single
// guarded statements in the store; there is no read-check-write window.
type AccountRepository interface {
	// GetOrCreate retrieves an account, creating it with a zero balance if
	// it does not exist yet
	GetOrCreate(ctx context.Context, userID int64) (*models.Account, error)

	// TryDebit subtracts amount from the balance only if balance >= amount;
	// returns whether the debit applied
	TryDebit(ctx context.Context, userID int64, amount int64) (bool, error)

	// ForceDebit unconditionally subtracts amount, allowed to go negative.
	// Used only for the house account.
	ForceDebit(ctx context.Context, userID int64, amount int64) error

	// Credit unconditionally adds amount
	Credit(ctx context.Context, userID int64, amount int64) error

	// TryHandout credits amount only while the balance is zero or below;
	// returns whether the handout applied
	TryHandout(ctx context.Context, userID int64, amount int64) (bool, error)

	// TryClaimDailyBonus credits amount and stamps last_bonus_claim = now
	// only if the previous claim is absent or older than the cooldown;
	// returns whether the claim applied
	TryClaimDailyBonus(ctx context.Context, userID int64, amount int64, now time.Time, cooldown time.Duration) (bool, error)
}

// LedgerEntryRepository defines the interface for the balance-change audit log
type LedgerEntryRepository interface {
	// Record creates a new ledger entry
	Record(ctx context.Context, entry *models.LedgerEntry) error

	// GetByUser returns the most recent ledger entries for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error)
}

// BankService defines the interface for plain balance operations
type BankService interface {
	// GetBalance returns the current balance, creating the account on first
	// reference. Storage failures are logged and read as 0.
	GetBalance(ctx context.Context, userID int64) int64

	// Beg grants a small handout from the house, but only to broke players
	Beg(ctx context.Context, userID int64) (*models.BegResult, error)
}

// RouletteService defines the interface for simple color wagers
type RouletteService interface {
	// Spin debits the stake, draws a number and settles the wager
	Spin(ctx context.Context, userID int64, stake int64, choice models.RouletteColor) (*models.SpinResult, error)
}

// BlackjackService defines the interface for turn-based blackjack hands
type BlackjackService interface {
	// Start debits the stake and deals a new hand; a natural 21 resolves
	// immediately
	Start(ctx context.Context, userID int64, stake int64) (*models.BlackjackStart, error)

	// Hit draws one card into the player hand; busting resolves the hand
	Hit(ctx context.Context, userID int64) (*models.HitResult, error)

	// Stand plays out the dealer hand and settles
	Stand(ctx context.Context, userID int64) (*models.BlackjackResult, error)
}

// BonusService defines the interface for the daily bonus
type BonusService interface {
	// Claim credits the daily bonus if the cooldown has elapsed; otherwise
	// reports the remaining cooldown
	Claim(ctx context.Context, userID int64, now time.Time) (*models.BonusResult, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() AccountRepository
	LedgerEntryRepository() LedgerEntryRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
