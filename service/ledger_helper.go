package service

import (
	"context"
	"fmt"

	"croupier/events"
	"croupier/models"
)

// RecordBalanceChange records a ledger entry and emits the matching event.
// This is the single entry point for all balance changes in the system.
func RecordBalanceChange(ctx context.Context, uow UnitOfWork, entry *models.LedgerEntry) error {
	// Record the ledger entry
	if err := uow.LedgerEntryRepository().Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	// Emit balance change event (flushed after the transaction commits)
	event := events.BalanceChangeEvent{
		UserID:       entry.UserID,
		OldBalance:   entry.BalanceBefore,
		NewBalance:   entry.BalanceAfter,
		EntryType:    entry.EntryType,
		ChangeAmount: entry.ChangeAmount,
	}
	uow.EventBus().Publish(event)

	return nil
}
