package service

import "errors"

var (
	// ErrInvalidStake is returned when a stake is non-positive or exceeds
	// the configured maximum. Rejected before any ledger mutation.
	ErrInvalidStake = errors.New("invalid stake")

	// ErrInvalidChoice is returned for an unknown roulette color
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrInsufficientFunds is returned when the stake exceeds the balance,
	// or when the atomic debit lost a race. Never retried automatically.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrGameInProgress is returned when a player starts a game while one
	// is already active
	ErrGameInProgress = errors.New("game already in progress")

	// ErrNoActiveGame is returned for hit/stand without an active hand
	ErrNoActiveGame = errors.New("no active game")
)
