package service

import (
	"context"
	"fmt"
	"sync"

	"croupier/config"
	"croupier/events"
	"croupier/models"
)

// dealerStandTotal is the total the dealer draws up to before standing
const dealerStandTotal = 17

type blackjackService struct {
	uowFactory UnitOfWorkFactory
	houseID    int64
	maxBet     int64

	// shuffle randomizes a fresh deck; overridden in tests
	shuffle func([]models.Card)

	mu       sync.Mutex
	sessions map[int64]*models.BlackjackSession
}

// NewBlackjackService creates a new blackjack service
func NewBlackjackService(uowFactory UnitOfWorkFactory, cfg *config.Config) BlackjackService {
	return &blackjackService{
		uowFactory: uowFactory,
		houseID:    cfg.HouseAccountID,
		maxBet:     cfg.MaxBet,
		shuffle:    defaultShuffle,
		sessions:   make(map[int64]*models.BlackjackSession),
	}
}

// takeSession removes and returns the player's dealt hand so only one caller
// at a time can act on it. Undealt reservations stay put and read as absent.
func (s *blackjackService) takeSession(userID int64) (*models.BlackjackSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok || session.Deck == nil {
		return nil, false
	}
	delete(s.sessions, userID)
	return session, true
}

func (s *blackjackService) putSession(session *models.BlackjackSession) {
	s.mu.Lock()
	s.sessions[session.UserID] = session
	s.mu.Unlock()
}

func (s *blackjackService) dropSession(userID int64) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// Start debits the stake and deals a new hand. A player already holding an
// active session is rejected before any ledger mutation. A natural 21
// resolves immediately at 2.5x the stake.
func (s *blackjackService) Start(ctx context.Context, userID int64, stake int64) (*models.BlackjackStart, error) {
	if stake < 1 || stake > s.maxBet {
		return nil, ErrInvalidStake
	}

	// Reserve the player's slot before touching the ledger so a concurrent
	// start cannot double-debit or overwrite a live hand
	s.mu.Lock()
	if _, active := s.sessions[userID]; active {
		s.mu.Unlock()
		return nil, ErrGameInProgress
	}
	s.sessions[userID] = &models.BlackjackSession{UserID: userID, Stake: stake}
	s.mu.Unlock()

	if err := s.debitStake(ctx, userID, stake); err != nil {
		s.dropSession(userID)
		return nil, err
	}

	deck := newDeck(s.shuffle)
	session := &models.BlackjackSession{
		UserID: userID,
		Stake:  stake,
	}

	var card models.Card
	card, deck = drawCard(deck)
	session.PlayerHand = append(session.PlayerHand, card)
	card, deck = drawCard(deck)
	session.PlayerHand = append(session.PlayerHand, card)
	card, deck = drawCard(deck)
	session.DealerHand = append(session.DealerHand, card)
	session.Deck = deck

	start := &models.BlackjackStart{
		PlayerHand:  session.PlayerHand,
		DealerHand:  session.DealerHand,
		PlayerTotal: session.PlayerHand.Total(),
	}

	// Natural 21 resolves without awaiting input
	if start.PlayerTotal == 21 {
		result, err := s.settle(ctx, session, models.OutcomeBlackjack)
		s.dropSession(userID)
		if err != nil {
			return nil, err
		}
		start.Resolved = result
		return start, nil
	}

	// Swap the dealt hand in for the reservation
	s.putSession(session)

	return start, nil
}

// debitStake moves the stake out of the player's account and mirrors it into
// the house account in one transaction
func (s *blackjackService) debitStake(ctx context.Context, userID int64, stake int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}
	if stake > account.Balance {
		return ErrInsufficientFunds
	}

	applied, err := uow.AccountRepository().TryDebit(ctx, userID, stake)
	if err != nil {
		return fmt.Errorf("failed to debit stake: %w", err)
	}
	if !applied {
		return ErrInsufficientFunds
	}

	house, err := uow.AccountRepository().GetOrCreate(ctx, s.houseID)
	if err != nil {
		return fmt.Errorf("failed to get house account: %w", err)
	}
	if err := uow.AccountRepository().ForceDebit(ctx, s.houseID, stake); err != nil {
		return fmt.Errorf("failed to mirror stake to house: %w", err)
	}

	entry := &models.LedgerEntry{
		UserID:        userID,
		BalanceBefore: account.Balance,
		BalanceAfter:  account.Balance - stake,
		ChangeAmount:  -stake,
		EntryType:     models.EntryTypeBlackjackStake,
		EntryMetadata: map[string]any{
			"stake": stake,
		},
	}
	if err := RecordBalanceChange(ctx, uow, entry); err != nil {
		return fmt.Errorf("failed to record stake: %w", err)
	}

	houseEntry := &models.LedgerEntry{
		UserID:        s.houseID,
		BalanceBefore: house.Balance,
		BalanceAfter:  house.Balance - stake,
		ChangeAmount:  -stake,
		EntryType:     models.EntryTypeHouseStake,
		EntryMetadata: map[string]any{
			"player_id": userID,
			"stake":     stake,
		},
	}
	if err := RecordBalanceChange(ctx, uow, houseEntry); err != nil {
		return fmt.Errorf("failed to record house bookkeeping: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Hit draws one card into the player hand; going past 21 forfeits the
// already-debited stake and removes the session
func (s *blackjackService) Hit(ctx context.Context, userID int64) (*models.HitResult, error) {
	session, ok := s.takeSession(userID)
	if !ok {
		return nil, ErrNoActiveGame
	}

	var card models.Card
	card, session.Deck = drawCard(session.Deck)
	session.PlayerHand = append(session.PlayerHand, card)

	total := session.PlayerHand.Total()
	hit := &models.HitResult{
		PlayerHand:  session.PlayerHand,
		PlayerTotal: total,
	}
	if total <= 21 {
		s.putSession(session)
		return hit, nil
	}

	hit.Busted = true
	result, err := s.settle(ctx, session, models.OutcomePlayerBust)
	if err != nil {
		// Settlement rolled back; the hand stays live so the caller can retry
		s.putSession(session)
		return nil, err
	}
	hit.Resolved = result

	return hit, nil
}

// Stand plays out the dealer hand (drawing to 17 or bust), settles the
// wager and removes the session
func (s *blackjackService) Stand(ctx context.Context, userID int64) (*models.BlackjackResult, error) {
	session, ok := s.takeSession(userID)
	if !ok {
		return nil, ErrNoActiveGame
	}

	var card models.Card
	for session.DealerHand.Total() < dealerStandTotal && len(session.Deck) > 0 {
		card, session.Deck = drawCard(session.Deck)
		session.DealerHand = append(session.DealerHand, card)
	}

	playerTotal := session.PlayerHand.Total()
	dealerTotal := session.DealerHand.Total()

	var outcome models.BlackjackOutcome
	switch {
	case playerTotal > 21:
		outcome = models.OutcomePlayerBust
	case dealerTotal > 21 || playerTotal > dealerTotal:
		outcome = models.OutcomePlayerWin
	case dealerTotal > playerTotal:
		outcome = models.OutcomeDealerWin
	default:
		outcome = models.OutcomePush
	}

	result, err := s.settle(ctx, session, outcome)
	if err != nil {
		// Settlement rolled back; the hand stays live so the caller can retry
		s.putSession(session)
		return nil, err
	}

	return result, nil
}

// settle applies the terminal ledger mutations for a hand. The stake was
// debited when the game started, so a win credits stake back plus winnings
// in a single credit.
func (s *blackjackService) settle(ctx context.Context, session *models.BlackjackSession, outcome models.BlackjackOutcome) (*models.BlackjackResult, error) {
	stake := session.Stake

	var payout, houseTake int64
	var entryType models.EntryType
	switch outcome {
	case models.OutcomeBlackjack:
		payout = stake * 5 / 2
		entryType = models.EntryTypeBlackjackWin
	case models.OutcomePlayerWin:
		payout = stake * 2
		entryType = models.EntryTypeBlackjackWin
	case models.OutcomePush:
		payout = stake
		houseTake = stake
		entryType = models.EntryTypeBlackjackPush
	case models.OutcomePlayerBust, models.OutcomeDealerWin:
		houseTake = stake * 2
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetOrCreate(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	newBalance := account.Balance + payout

	if payout > 0 {
		if err := uow.AccountRepository().Credit(ctx, session.UserID, payout); err != nil {
			return nil, fmt.Errorf("failed to credit payout: %w", err)
		}

		entry := &models.LedgerEntry{
			UserID:        session.UserID,
			BalanceBefore: account.Balance,
			BalanceAfter:  newBalance,
			ChangeAmount:  payout,
			EntryType:     entryType,
			EntryMetadata: map[string]any{
				"outcome": string(outcome),
				"stake":   stake,
			},
		}
		if err := RecordBalanceChange(ctx, uow, entry); err != nil {
			return nil, fmt.Errorf("failed to record payout: %w", err)
		}
	}

	if houseTake > 0 {
		house, err := uow.AccountRepository().GetOrCreate(ctx, s.houseID)
		if err != nil {
			return nil, fmt.Errorf("failed to get house account: %w", err)
		}
		if err := uow.AccountRepository().Credit(ctx, s.houseID, houseTake); err != nil {
			return nil, fmt.Errorf("failed to credit house: %w", err)
		}

		houseEntry := &models.LedgerEntry{
			UserID:        s.houseID,
			BalanceBefore: house.Balance,
			BalanceAfter:  house.Balance + houseTake,
			ChangeAmount:  houseTake,
			EntryType:     models.EntryTypeHouseTake,
			EntryMetadata: map[string]any{
				"player_id": session.UserID,
				"outcome":   string(outcome),
				"stake":     stake,
			},
		}
		if err := RecordBalanceChange(ctx, uow, houseEntry); err != nil {
			return nil, fmt.Errorf("failed to record house bookkeeping: %w", err)
		}
	}

	uow.EventBus().Publish(events.BlackjackResolvedEvent{
		UserID:  session.UserID,
		Outcome: outcome,
		Stake:   stake,
		Payout:  payout,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.BlackjackResult{
		Outcome:     outcome,
		PlayerHand:  session.PlayerHand,
		DealerHand:  session.DealerHand,
		PlayerTotal: session.PlayerHand.Total(),
		DealerTotal: session.DealerHand.Total(),
		Stake:       stake,
		Payout:      payout,
		NewBalance:  newBalance,
	}, nil
}
