package repository

import (
	"context"
	"fmt"
	"time"

	"croupier/database"
	"croupier/models"
)

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// GetOrCreate retrieves an account, creating it with a zero balance if it
// does not exist yet
func (r *AccountRepository) GetOrCreate(ctx context.Context, userID int64) (*models.Account, error) {
	insert := `
		INSERT INTO accounts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insert, userID); err != nil {
		return nil, fmt.Errorf("failed to create account %d: %w", userID, err)
	}

	query := `
		SELECT user_id, balance, last_bonus_claim, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
	`

	var account models.Account
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.Balance,
		&account.LastBonusClaim,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", userID, err)
	}

	return &account, nil
}

// TryDebit subtracts amount from the balance only if balance >= amount.
// The sufficiency check and the update are one guarded statement, so
// concurrent debits against the same account cannot overdraw it.
func (r *AccountRepository) TryDebit(ctx context.Context, userID int64, amount int64) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE user_id = $2 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return false, fmt.Errorf("failed to debit account %d: %w", userID, err)
	}

	return result.RowsAffected() > 0, nil
}

// ForceDebit unconditionally subtracts amount, allowed to go negative.
// The account is created on the fly so the house account self-bootstraps.
func (r *AccountRepository) ForceDebit(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		INSERT INTO accounts (user_id, balance)
		VALUES ($1, -$2)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = accounts.balance - $2, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, userID, amount); err != nil {
		return fmt.Errorf("failed to force-debit account %d: %w", userID, err)
	}

	return nil
}

// Credit unconditionally adds amount, creating the account if needed
func (r *AccountRepository) Credit(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		INSERT INTO accounts (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = accounts.balance + $2, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, userID, amount); err != nil {
		return fmt.Errorf("failed to credit account %d: %w", userID, err)
	}

	return nil
}

// TryHandout credits amount only while the balance is zero or below. The
// broke check and the credit are one guarded statement, mirroring TryDebit.
func (r *AccountRepository) TryHandout(ctx context.Context, userID int64, amount int64) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE user_id = $2 AND balance <= 0
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return false, fmt.Errorf("failed to hand out to account %d: %w", userID, err)
	}

	return result.RowsAffected() > 0, nil
}

// TryClaimDailyBonus credits amount and stamps last_bonus_claim = now only
// if the previous claim is absent or older than the cooldown. The whole
// claim is one conditional upsert, so concurrent claims from the same user
// cannot double-credit.
func (r *AccountRepository) TryClaimDailyBonus(ctx context.Context, userID int64, amount int64, now time.Time, cooldown time.Duration) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive")
	}

	cutoff := now.Add(-cooldown)

	query := `
		INSERT INTO accounts (user_id, balance, last_bonus_claim)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = accounts.balance + $2, last_bonus_claim = $3, updated_at = NOW()
		WHERE accounts.last_bonus_claim IS NULL OR accounts.last_bonus_claim < $4
	`

	result, err := r.q.Exec(ctx, query, userID, amount, now, cutoff)
	if err != nil {
		return false, fmt.Errorf("failed to claim daily bonus for account %d: %w", userID, err)
	}

	return result.RowsAffected() > 0, nil
}
