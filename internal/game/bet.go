package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bicho_service/internal/ledger"
)

// PlaceBet records a wager on an animal for the session user: the
// stake is debited immediately and the bet enters the ledger PENDING
// with no draw attached. Any rejection leaves the ledger unchanged.
func (s *Service) PlaceBet(animalID int, amount decimal.Decimal) (ledger.Bet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ledger.Bet{}, ErrInvalidAmount
	}
	animal, ok := s.registry.Find(animalID)
	if !ok {
		return ledger.Bet{}, ErrUnknownAnimal
	}

	bet := ledger.Bet{
		ID:           uuid.NewString(),
		AnimalID:     animal.ID,
		Amount:       amount,
		Status:       ledger.BetStatusPending,
		PotentialWin: amount.Mul(animal.Multiplier),
		CreatedAt:    time.Now(),
	}

	err := s.repo.Update(func(snap *ledger.Snapshot) error {
		if snap.CurrentUserID == "" {
			return ErrNotAuthenticated
		}
		i := snap.FindUser(snap.CurrentUserID)
		if i < 0 {
			return ErrNotAuthenticated
		}
		if snap.Users[i].Balance.LessThan(amount) {
			return ErrInsufficientBalance
		}
		bet.UserID = snap.Users[i].ID
		snap.Users[i].Balance = snap.Users[i].Balance.Sub(amount)
		snap.Bets = append(snap.Bets, bet)
		return nil
	})
	if err != nil {
		return ledger.Bet{}, err
	}

	s.log.WithField("bet_id", bet.ID).
		WithField("user_id", bet.UserID).
		WithField("animal", animal.Name).
		WithField("amount", amount).
		Info("bet placed")
	return bet, nil
}

// ListBets returns bets in creation order, filtered to one user when
// userID is non-empty.
func (s *Service) ListBets(userID string) []ledger.Bet {
	var out []ledger.Bet
	s.repo.View(func(snap *ledger.Snapshot) {
		for _, b := range snap.Bets {
			if userID != "" && b.UserID != userID {
				continue
			}
			out = append(out, b)
		}
	})
	return out
}
