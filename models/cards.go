package models

// Card is a single playing card, e.g. "A♠"
type Card struct {
	Rank string
	Suit string
}

func (c Card) String() string {
	return c.Rank + c.Suit
}

// Value returns the blackjack value of the card, counting aces as 11.
// Hand.Total downgrades aces to 1 where needed.
func (c Card) Value() int {
	switch c.Rank {
	case "J", "Q", "K":
		return 10
	case "A":
		return 11
	case "10":
		return 10
	case "9":
		return 9
	case "8":
		return 8
	case "7":
		return 7
	case "6":
		return 6
	case "5":
		return 5
	case "4":
		return 4
	case "3":
		return 3
	case "2":
		return 2
	}
	return 0
}

// Hand is an ordered set of dealt cards
type Hand []Card

// Total returns the best blackjack total for the hand, counting each ace as
// 11 and downgrading aces to 1 one at a time while the total exceeds 21
func (h Hand) Total() int {
	total := 0
	aces := 0
	for _, c := range h {
		total += c.Value()
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// String renders the hand as space-separated cards
func (h Hand) String() string {
	s := ""
	for i, c := range h {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}
