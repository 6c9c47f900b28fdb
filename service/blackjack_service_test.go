package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"croupier/models"
)

// stackDeck returns a shuffle that arranges the deck so the given cards are
// drawn in order
func stackDeck(cards ...models.Card) func([]models.Card) {
	return func(deck []models.Card) {
		for i, c := range cards {
			deck[len(deck)-1-i] = c
		}
	}
}

func newBlackjackMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockAccountRepository, *MockLedgerEntryRepository, *MockEventPublisher) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerEntryRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, mockEventBus)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockLedgerRepo.On("Record", mock.Anything, mock.Anything).Return(nil)
	mockEventBus.On("Publish", mock.Anything).Return()

	return mockFactory, mockUoW, mockAccountRepo, mockLedgerRepo, mockEventBus
}

func TestBlackjackService_Start_Deal(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockAccountRepo, _, _ := newBlackjackMocks()

	svc := NewBlackjackService(mockFactory, newTestConfig()).(*blackjackService)
	svc.shuffle = stackDeck(
		models.Card{Rank: "10", Suit: "♠"},
		models.Card{Rank: "9", Suit: "♥"},
		models.Card{Rank: "5", Suit: "♦"},
	)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 1000}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 0}, nil)
	mockAccountRepo.On("TryDebit", ctx, int64(123456), int64(100)).Return(true, nil)
	mockAccountRepo.On("ForceDebit", ctx, int64(1), int64(100)).Return(nil)

	start, err := svc.Start(ctx, 123456, 100)
	assert.NoError(t, err)
	assert.Nil(t, start.Resolved)
	assert.Equal(t, 19, start.PlayerTotal)
	assert.Len(t, start.PlayerHand, 2)
	assert.Len(t, start.DealerHand, 1)

	mockAccountRepo.AssertExpectations(t)
}

func TestBlackjackService_Start_Natural(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockAccountRepo, _, _ := newBlackjackMocks()

	svc := NewBlackjackService(mockFactory, newTestConfig()).(*blackjackService)
	svc.shuffle = stackDeck(
		models.Card{Rank: "A", Suit: "♠"},
		models.Card{Rank: "K", Suit: "♥"},
		models.Card{Rank: "5", Suit: "♦"},
	)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 1000}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 0}, nil)
	mockAccountRepo.On("TryDebit", ctx, int64(123456), int64(100)).Return(true, nil)
	mockAccountRepo.On("ForceDebit", ctx, int64(1), int64(100)).Return(nil)
	// Natural 21 pays 2.5x the stake
	mockAccountRepo.On("Credit", ctx, int64(123456), int64(250)).Return(nil)

	start, err := svc.Start(ctx, 123456, 100)
	assert.NoError(t, err)
	assert.NotNil(t, start.Resolved)
	assert.Equal(t, models.OutcomeBlackjack, start.Resolved.Outcome)
	assert.Equal(t, int64(250), start.Resolved.Payout)

	// The hand resolved on the deal, so no session lingers
	_, err = svc.Hit(ctx, 123456)
	assert.ErrorIs(t, err, ErrNoActiveGame)

	mockAccountRepo.AssertExpectations(t)
}

func TestBlackjackService_Start_AlreadyInSession(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockAccountRepo, _, _ := newBlackjackMocks()

	svc := NewBlackjackService(mockFactory, newTestConfig()).(*blackjackService)
	svc.shuffle = stackDeck(
		models.Card{Rank: "10", Suit: "♠"},
		models.Card{Rank: "9", Suit: "♥"},
		models.Card{Rank: "5", Suit: "♦"},
	)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 1000}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 0}, nil)
	mockAccountRepo.On("TryDebit", ctx, int64(123456), int64(100)).Return(true, nil)
	mockAccountRepo.On("ForceDebit", ctx, int64(1), int64(100)).Return(nil)

	_, err := svc.Start(ctx, 123456, 100)
	assert.NoError(t, err)

	// Second start is rejected before any ledger mutation
	start, err := svc.Start(ctx, 123456, 100)
	assert.ErrorIs(t, err, ErrGameInProgress)
	assert.Nil(t, start)

	mockAccountRepo.AssertNumberOfCalls(t, "TryDebit", 1)
}

func TestBlackjackService_Start_InvalidStake(t *testing.T) {
	ctx := context.Background()
	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewBlackjackService(mockFactory, newTestConfig())

	start, err := svc.Start(ctx, 123456, 0)
	assert.ErrorIs(t, err, ErrInvalidStake)
	assert.Nil(t, start)

	start, err = svc.Start(ctx, 123456, 1000001)
	assert.ErrorIs(t, err, ErrInvalidStake)
	assert.Nil(t, start)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestBlackjackService_Hit_Bust(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockAccountRepo, _, _ := newBlackjackMocks()

	svc := NewBlackjackService(mockFactory, newTestConfig()).(*blackjackService)
	svc.shuffle = stackDeck(
		models.Card{Rank: "10", Suit: "♠"},
		models.Card{Rank: "9", Suit: "♥"},
		models.Card{Rank: "5", Suit: "♦"},
		models.Card{Rank: "K", Suit: "♣"},
	)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 1000}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 0}, nil)
	mockAccountRepo.On("TryDebit", ctx, int64(123456), int64(100)).Return(true, nil)
	mockAccountRepo.On("ForceDebit", ctx, int64(1), int64(100)).Return(nil)
	// The house nets the forfeited stake on a bust
	mockAccountRepo.On("Credit", ctx, int64(1), int64(200)).Return(nil)

	_, err := svc.Start(ctx, 123456, 100)
	assert.NoError(t, err)

	hit, err := svc.Hit(ctx, 123456)
	assert.NoError(t, err)
	assert.True(t, hit.Busted)
	assert.Equal(t, 29, hit.PlayerTotal)
	assert.NotNil(t, hit.Resolved)
	assert.Equal(t, models.OutcomePlayerBust, hit.Resolved.Outcome)
	assert.Equal(t, int64(0), hit.Resolved.Payout)

	// Session is gone once the hand resolved
	_, err = svc.Hit(ctx, 123456)
	assert.ErrorIs(t, err, ErrNoActiveGame)

	// The player is never credited on a bust
	mockAccountRepo.AssertNotCalled(t, "Credit", mock.Anything, int64(123456), mock.Anything)
	mockAccountRepo.AssertExpectations(t)
}

func TestBlackjackService_Hit_NoActiveGame(t *testing.T) {
	ctx := context.Background()
	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewBlackjackService(mockFactory, newTestConfig())

	hit, err := svc.Hit(ctx, 123456)
	assert.ErrorIs(t, err, ErrNoActiveGame)
	assert.Nil(t, hit)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestBlackjackService_Stand_PlayerWin(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockAccountRepo, _, _ := newBlackjackMocks()

	svc := NewBlackjackService(mockFactory, newTestConfig()).(*blackjackService)
	// Player 19, dealer 10 then draws 8 for 18
	svc.shuffle = stackDeck(
		models.Card{Rank: "10", Suit: "♠"},
		models.Card{Rank: "9", Suit: "♥"},
		models.Card{Rank: "10", Suit: "♦"},
		models.Card{Rank: "8", Suit: "♣"},
	)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 1000}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 0}, nil)
	mockAccountRepo.On("TryDebit", ctx, int64(123456), int64(100)).Return(true, nil)
	mockAccountRepo.On("ForceDebit", ctx, int64(1), int64(100)).Return(nil)
	// Stake back plus even-money winnings
	mockAccountRepo.On("Credit", ctx, int64(123456), int64(200)).Return(nil)

	_, err := svc.Start(ctx, 123456, 100)
	assert.NoError(t, err)

	result, err := svc.Stand(ctx, 123456)
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomePlayerWin, result.Outcome)
	assert.Equal(t, 19, result.PlayerTotal)
	assert.Equal(t, 18, result.DealerTotal)
	assert.Equal(t, int64(200), result.Payout)

	_, err = svc.Stand(ctx, 123456)
	assert.ErrorIs(t, err, ErrNoActiveGame)

	mockAccountRepo.AssertExpectations(t)
}

func TestBlackjackService_Stand_Push(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockAccountRepo, _, _ := newBlackjackMocks()

	svc := NewBlackjackService(mockFactory, newTestConfig()).(*blackjackService)
	// Player 20, dealer 10 then draws 10 for 20
	svc.shuffle = stackDeck(
		models.Card{Rank: "10", Suit: "♠"},
		models.Card{Rank: "10", Suit: "♥"},
		models.Card{Rank: "J", Suit: "♦"},
		models.Card{Rank: "Q", Suit: "♣"},
	)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 1000}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 0}, nil)
	mockAccountRepo.On("TryDebit", ctx, int64(123456), int64(100)).Return(true, nil)
	mockAccountRepo.On("ForceDebit", ctx, int64(1), int64(100)).Return(nil)
	// A push returns the stake to both sides of the table
	mockAccountRepo.On("Credit", ctx, int64(123456), int64(100)).Return(nil)
	mockAccountRepo.On("Credit", ctx, int64(1), int64(100)).Return(nil)

	_, err := svc.Start(ctx, 123456, 100)
	assert.NoError(t, err)

	result, err := svc.Stand(ctx, 123456)
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomePush, result.Outcome)
	assert.Equal(t, int64(100), result.Payout)

	mockAccountRepo.AssertExpectations(t)
}

func TestBlackjackService_Stand_DealerWin(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockAccountRepo, _, _ := newBlackjackMocks()

	svc := NewBlackjackService(mockFactory, newTestConfig()).(*blackjackService)
	// Player 19, dealer 10 then draws 10 for 20
	svc.shuffle = stackDeck(
		models.Card{Rank: "10", Suit: "♠"},
		models.Card{Rank: "9", Suit: "♥"},
		models.Card{Rank: "J", Suit: "♦"},
		models.Card{Rank: "Q", Suit: "♣"},
	)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 1000}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 0}, nil)
	mockAccountRepo.On("TryDebit", ctx, int64(123456), int64(100)).Return(true, nil)
	mockAccountRepo.On("ForceDebit", ctx, int64(1), int64(100)).Return(nil)
	mockAccountRepo.On("Credit", ctx, int64(1), int64(200)).Return(nil)

	_, err := svc.Start(ctx, 123456, 100)
	assert.NoError(t, err)

	result, err := svc.Stand(ctx, 123456)
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeDealerWin, result.Outcome)
	assert.Equal(t, int64(0), result.Payout)

	mockAccountRepo.AssertNotCalled(t, "Credit", mock.Anything, int64(123456), mock.Anything)
	mockAccountRepo.AssertExpectations(t)
}

func TestBlackjackService_Stand_ConcurrentSettlesOnce(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockAccountRepo, _, _ := newBlackjackMocks()

	svc := NewBlackjackService(mockFactory, newTestConfig()).(*blackjackService)
	// Player 19, dealer 10 then draws 8 for 18
	svc.shuffle = stackDeck(
		models.Card{Rank: "10", Suit: "♠"},
		models.Card{Rank: "9", Suit: "♥"},
		models.Card{Rank: "10", Suit: "♦"},
		models.Card{Rank: "8", Suit: "♣"},
	)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 1000}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 0}, nil)
	mockAccountRepo.On("TryDebit", ctx, int64(123456), int64(100)).Return(true, nil)
	mockAccountRepo.On("ForceDebit", ctx, int64(1), int64(100)).Return(nil)
	// A slow credit widens the window a duplicate stand would need
	mockAccountRepo.On("Credit", ctx, int64(123456), int64(200)).Return(nil).Run(func(mock.Arguments) {
		time.Sleep(50 * time.Millisecond)
	})

	_, err := svc.Start(ctx, 123456, 100)
	assert.NoError(t, err)

	var settled, noGame int64
	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Stand(ctx, 123456)
			switch {
			case err == nil && result != nil:
				atomic.AddInt64(&settled, 1)
			case err == ErrNoActiveGame:
				atomic.AddInt64(&noGame, 1)
			}
		}()
	}
	wg.Wait()

	// Exactly one press settles; the other finds no live hand
	assert.Equal(t, int64(1), settled)
	assert.Equal(t, int64(1), noGame)
	mockAccountRepo.AssertNumberOfCalls(t, "Credit", 1)
}

func TestBlackjackService_Start_ConcurrentSingleDebit(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockAccountRepo, _, _ := newBlackjackMocks()

	svc := NewBlackjackService(mockFactory, newTestConfig()).(*blackjackService)
	svc.shuffle = stackDeck(
		models.Card{Rank: "10", Suit: "♠"},
		models.Card{Rank: "9", Suit: "♥"},
		models.Card{Rank: "5", Suit: "♦"},
	)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 1000}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 0}, nil)
	mockAccountRepo.On("TryDebit", ctx, int64(123456), int64(100)).Return(true, nil).Run(func(mock.Arguments) {
		time.Sleep(50 * time.Millisecond)
	})
	mockAccountRepo.On("ForceDebit", ctx, int64(1), int64(100)).Return(nil)

	var started, rejected int64
	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Start(ctx, 123456, 100)
			switch err {
			case nil:
				atomic.AddInt64(&started, 1)
			case ErrGameInProgress:
				atomic.AddInt64(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	// The slot is reserved before the ledger is touched, so the loser is
	// rejected without a second debit
	assert.Equal(t, int64(1), started)
	assert.Equal(t, int64(1), rejected)
	mockAccountRepo.AssertNumberOfCalls(t, "TryDebit", 1)
}

func TestBlackjackService_Stand_DealerBust(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockAccountRepo, _, _ := newBlackjackMocks()

	svc := NewBlackjackService(mockFactory, newTestConfig()).(*blackjackService)
	// Player 19, dealer 10 + 6 = 16 then draws 10 and busts
	svc.shuffle = stackDeck(
		models.Card{Rank: "10", Suit: "♠"},
		models.Card{Rank: "9", Suit: "♥"},
		models.Card{Rank: "J", Suit: "♦"},
		models.Card{Rank: "6", Suit: "♣"},
		models.Card{Rank: "Q", Suit: "♠"},
	)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 1000}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 0}, nil)
	mockAccountRepo.On("TryDebit", ctx, int64(123456), int64(100)).Return(true, nil)
	mockAccountRepo.On("ForceDebit", ctx, int64(1), int64(100)).Return(nil)
	mockAccountRepo.On("Credit", ctx, int64(123456), int64(200)).Return(nil)

	_, err := svc.Start(ctx, 123456, 100)
	assert.NoError(t, err)

	result, err := svc.Stand(ctx, 123456)
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomePlayerWin, result.Outcome)
	assert.Equal(t, 26, result.DealerTotal)
	assert.Equal(t, int64(200), result.Payout)

	mockAccountRepo.AssertExpectations(t)
}
