package models

import "time"

// BonusResult represents the outcome of a daily bonus claim
type BonusResult struct {
	Claimed    bool
	Amount     int64
	NewBalance int64
	// Remaining is the cooldown left before the next claim; only meaningful
	// when Claimed is false
	Remaining time.Duration
}

// BegResult represents the outcome of begging the house for chips
type BegResult struct {
	Granted    bool
	Amount     int64
	NewBalance int64
}
