package models

// BlackjackOutcome is the terminal result of a blackjack hand
type BlackjackOutcome string

const (
	OutcomeBlackjack  BlackjackOutcome = "blackjack" // natural 21 on the deal
	OutcomePlayerWin  BlackjackOutcome = "player_win"
	OutcomeDealerWin  BlackjackOutcome = "dealer_win"
	OutcomePlayerBust BlackjackOutcome = "player_bust"
	OutcomePush       BlackjackOutcome = "push"
)

// BlackjackSession is the in-memory state of one player's active hand.
// At most one session exists per player; it is removed once resolved.
type BlackjackSession struct {
	UserID     int64
	Stake      int64
	Deck       []Card
	PlayerHand Hand
	DealerHand Hand
}

// BlackjackStart is returned when a game is dealt
type BlackjackStart struct {
	PlayerHand  Hand
	DealerHand  Hand
	PlayerTotal int
	// Resolved is set when the opening hand was a natural 21 and the game
	// ended without awaiting input
	Resolved *BlackjackResult
}

// HitResult is returned after drawing a card into the player hand
type HitResult struct {
	PlayerHand  Hand
	PlayerTotal int
	Busted      bool
	// Resolved is set when the hit busted the hand
	Resolved *BlackjackResult
}

// BlackjackResult is the terminal outcome of a hand
type BlackjackResult struct {
	Outcome     BlackjackOutcome
	PlayerHand  Hand
	DealerHand  Hand
	PlayerTotal int
	DealerTotal int
	Stake       int64
	Payout      int64 // total credited back to the player, 0 on a loss
	NewBalance  int64
}
