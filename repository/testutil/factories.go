package testutil

import (
	"time"

	"croupier/models"
)

// CreateTestLedgerEntry creates a test ledger entry with default values
func CreateTestLedgerEntry(userID int64, entryType models.EntryType) *models.LedgerEntry {
	return &models.LedgerEntry{
		UserID:        userID,
		BalanceBefore: 1000,
		BalanceAfter:  900,
		ChangeAmount:  -100,
		EntryType:     entryType,
		EntryMetadata: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}

// CreateTestLedgerEntryWithAmounts creates a test ledger entry with specific amounts
func CreateTestLedgerEntryWithAmounts(userID int64, before, after int64, entryType models.EntryType) *models.LedgerEntry {
	entry := CreateTestLedgerEntry(userID, entryType)
	entry.BalanceBefore = before
	entry.BalanceAfter = after
	entry.ChangeAmount = after - before
	return entry
}
