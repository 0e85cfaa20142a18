package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bicho_service/internal/animals"
	"bicho_service/internal/ledger"
)

// DrawResult summarizes one executed draw.
type DrawResult struct {
	Draw      ledger.Draw     `json:"draw"`
	Animal    animals.Animal  `json:"animal"`
	Settled   int             `json:"settled"`
	Winners   int             `json:"winners"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}

// ExecuteDraw picks a winning number, resolves the owning animal and
// settles every pending bet against it in one pass: each gets the new
// draw's id and moves to WON or LOST, and every winning bet credits
// its owner by the bet's potential win. Already-settled bets are
// untouched, so repeated draws never re-settle anything. The whole
// settlement runs as a single ledger transition.
func (s *Service) ExecuteDraw() (DrawResult, error) {
	num := s.drawNumber()
	animal, ok := s.registry.ByNumber(num)
	if !ok {
		// Means the registry no longer partitions 1..100 (or the draw
		// source is out of range). Abort without touching any bet.
		return DrawResult{}, fmt.Errorf("%w: winning number %d maps to no animal", animals.ErrInvariant, num)
	}

	draw := ledger.Draw{
		ID:              uuid.NewString(),
		DrawTime:        time.Now(),
		WinningNumber:   num,
		WinningAnimalID: animal.ID,
		Status:          ledger.DrawStatusCompleted,
	}
	res := DrawResult{Draw: draw, Animal: animal, TotalPaid: decimal.Zero}

	err := s.repo.Update(func(snap *ledger.Snapshot) error {
		for i := range snap.Bets {
			b := &snap.Bets[i]
			if b.Status != ledger.BetStatusPending {
				continue
			}
			drawID := draw.ID
			b.DrawID = &drawID
			if b.AnimalID == animal.ID {
				b.Status = ledger.BetStatusWon
				res.Winners++
			} else {
				b.Status = ledger.BetStatusLost
			}
			res.Settled++
		}

		for i := range snap.Bets {
			b := snap.Bets[i]
			if b.Status != ledger.BetStatusWon || b.DrawID == nil || *b.DrawID != draw.ID {
				continue
			}
			// A bet whose owner was deleted settles but pays nobody.
			if j := snap.FindUser(b.UserID); j >= 0 {
				snap.Users[j].Balance = snap.Users[j].Balance.Add(b.PotentialWin)
				res.TotalPaid = res.TotalPaid.Add(b.PotentialWin)
			}
		}

		snap.Draws = append([]ledger.Draw{draw}, snap.Draws...)
		return nil
	})
	if err != nil {
		return DrawResult{}, err
	}

	s.log.WithField("draw_id", draw.ID).
		WithField("winning_number", num).
		WithField("animal", animal.Name).
		WithField("settled", res.Settled).
		WithField("winners", res.Winners).
		Info("draw executed")
	return res, nil
}

// ListDraws returns draws most recent first.
func (s *Service) ListDraws() []ledger.Draw {
	var out []ledger.Draw
	s.repo.View(func(snap *ledger.Snapshot) {
		out = make([]ledger.Draw, len(snap.Draws))
		copy(out, snap.Draws)
	})
	return out
}
