// Package game implements the betting operations of the animal lottery:
// session handling, wager placement, draw execution and settlement, and
// the manual sync blob. Every operation is one atomic transition on the
// ledger snapshot.
package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bicho_service/internal/animals"
	"bicho_service/internal/ledger"
)

var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrInvalidAmount       = errors.New("invalid bet amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnknownAnimal       = errors.New("unknown animal")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrDuplicateUsername   = errors.New("username already exists")
)

// DefaultInitialCredits is the starting balance handed to new users
// when the creation request leaves the balance unset.
const DefaultInitialCredits = 5000

type Service struct {
	repo           ledger.Repository
	registry       *animals.Registry
	log            *logrus.Logger
	drawNumber     func() int
	initialCredits decimal.Decimal
}

func NewService(repo ledger.Repository, registry *animals.Registry, log *logrus.Logger) *Service {
	return &Service{
		repo:           repo,
		registry:       registry,
		log:            log,
		drawNumber:     defaultDrawSource(),
		initialCredits: decimal.NewFromInt(DefaultInitialCredits),
	}
}

// WithDrawSource replaces the winning-number source. The function must
// return a number in [1, 100]; tests use this to force outcomes.
func (s *Service) WithDrawSource(fn func() int) {
	s.drawNumber = fn
}

// WithInitialCredits overrides the default starting balance for users
// created without an explicit balance.
func (s *Service) WithInitialCredits(credits decimal.Decimal) {
	s.initialCredits = credits
}

func defaultDrawSource() func() int {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func() int {
		return r.Intn(animals.MaxNumber-animals.MinNumber+1) + animals.MinNumber
	}
}

// Registry exposes the animal table for read-only consumers.
func (s *Service) Registry() *animals.Registry {
	return s.registry
}

// CurrentUser resolves the session user from the ledger. The second
// return is false when nobody is logged in.
func (s *Service) CurrentUser() (ledger.User, bool) {
	var out ledger.User
	found := false
	s.repo.View(func(snap *ledger.Snapshot) {
		if snap.CurrentUserID == "" {
			return
		}
		if i := snap.FindUser(snap.CurrentUserID); i >= 0 {
			out = snap.Users[i]
			found = true
		}
	})
	return out, found
}

// Stats summarizes the ledger for the admin overview panel.
type Stats struct {
	Users       int             `json:"users"`
	Bets        int             `json:"bets"`
	PendingBets int             `json:"pending_bets"`
	Draws       int             `json:"draws"`
	TotalStaked decimal.Decimal `json:"total_staked"`
}

func (s *Service) Stats() Stats {
	st := Stats{TotalStaked: decimal.Zero}
	s.repo.View(func(snap *ledger.Snapshot) {
		st.Users = len(snap.Users)
		st.Bets = len(snap.Bets)
		st.Draws = len(snap.Draws)
		for _, b := range snap.Bets {
			if b.Status == ledger.BetStatusPending {
				st.PendingBets++
			}
			st.TotalStaked = st.TotalStaked.Add(b.Amount)
		}
	})
	return st
}
