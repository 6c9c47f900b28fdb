package models

import (
	"time"
)

// Account holds the chip balance for a single player (or the house)
type Account struct {
	UserID         int64      `db:"user_id"`
	Balance        int64      `db:"balance"`
	LastBonusClaim *time.Time `db:"last_bonus_claim"` // nil until the first daily claim
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}
