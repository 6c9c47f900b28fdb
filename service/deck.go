package service

import (
	"math/rand"

	"croupier/models"
)

var (
	suits = []string{"♠", "♥", "♦", "♣"}
	ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

// newDeck builds a single 52-card deck and shuffles it with the given
// shuffle function
func newDeck(shuffle func([]models.Card)) []models.Card {
	deck := make([]models.Card, 0, len(suits)*len(ranks))
	for _, suit := range suits {
		for _, rank := range ranks {
			deck = append(deck, models.Card{Rank: rank, Suit: suit})
		}
	}
	shuffle(deck)
	return deck
}

// defaultShuffle is the production shuffle; tests substitute a fixed order
func defaultShuffle(deck []models.Card) {
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// drawCard pops the top card off the deck
func drawCard(deck []models.Card) (models.Card, []models.Card) {
	card := deck[len(deck)-1]
	return card, deck[:len(deck)-1]
}
