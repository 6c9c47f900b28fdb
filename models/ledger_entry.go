package models

import (
	"time"
)

// EntryType represents the type of balance change
type EntryType string

const (
	EntryTypeSpinWin        EntryType = "spin_win"
	EntryTypeSpinLoss       EntryType = "spin_loss"
	EntryTypeBlackjackStake EntryType = "blackjack_stake"
	EntryTypeBlackjackWin   EntryType = "blackjack_win"
	EntryTypeBlackjackPush  EntryType = "blackjack_push"
	EntryTypeDailyBonus     EntryType = "daily_bonus"
	EntryTypeBeg            EntryType = "beg"
	EntryTypeHouseStake     EntryType = "house_stake"
	EntryTypeHouseTake      EntryType = "house_take"
)

// LedgerEntry represents a historical balance change
type LedgerEntry struct {
	ID            int64          `db:"id"`
	UserID        int64          `db:"user_id"`
	BalanceBefore int64          `db:"balance_before"`
	BalanceAfter  int64          `db:"balance_after"`
	ChangeAmount  int64          `db:"change_amount"`
	EntryType     EntryType      `db:"entry_type"`
	EntryMetadata map[string]any `db:"entry_metadata"`
	CreatedAt     time.Time      `db:"created_at"`
}
