package models

// RouletteColor is a color a player can bet on
type RouletteColor string

const (
	ColorRed   RouletteColor = "red"
	ColorBlack RouletteColor = "black"
	ColorGreen RouletteColor = "green"
)

// SpinResult represents the outcome of a resolved roulette spin
// (returned to the caller, never persisted)
type SpinResult struct {
	Number     int
	Color      RouletteColor
	Choice     RouletteColor
	Won        bool
	Stake      int64
	Winnings   int64 // amount won on top of the returned stake, 0 on a loss
	NewBalance int64
}
