package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type BetStatus string

const (
	BetStatusPending BetStatus = "PENDING"
	BetStatusWon     BetStatus = "WON"
	BetStatusLost    BetStatus = "LOST"
)

type DrawStatus string

const (
	// DrawStatusScheduled exists in old snapshots but is never produced
	// or advanced by any code path.
	DrawStatusScheduled DrawStatus = "SCHEDULED"
	DrawStatusCompleted DrawStatus = "COMPLETED"
)

// ProtectedAdminID is the seeded administrator account. It always
// exists and cannot be deleted.
const ProtectedAdminID = "1"

// User is a roleplay bettor account. Passwords are stored and compared
// in plain text: these are play credits inside a closed community, not
// real accounts. Only Balance is ever mutated after creation.
type User struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Password  string          `json:"password"`
	RPName    string          `json:"rp_name"`
	Balance   decimal.Decimal `json:"balance"`
	Role      Role            `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// Bet is a wager on a single animal. It is created PENDING with a nil
// DrawID and transitions exactly once, to WON or LOST, when a draw
// settles it. Terminal after that.
type Bet struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	AnimalID     int             `json:"animal_id"`
	Amount       decimal.Decimal `json:"amount"`
	DrawID       *string         `json:"draw_id"`
	Status       BetStatus       `json:"status"`
	PotentialWin decimal.Decimal `json:"potential_win"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Draw records one completed drawing. Immutable once created.
type Draw struct {
	ID              string     `json:"id"`
	DrawTime        time.Time  `json:"draw_time"`
	WinningNumber   int        `json:"winning_number"`
	WinningAnimalID int        `json:"winning_animal_id"`
	Status          DrawStatus `json:"status"`
}

// Snapshot is the whole ledger: every operation is a single transition
// over it. Users keep insertion order, bets are append-only, draws are
// prepended (most recent first). The session is the logged-in user's
// id; the live record is always resolved from Users, so the balance
// seen by the session can never drift from the ledger entry.
type Snapshot struct {
	CurrentUserID string `json:"current_user_id"`
	Users         []User `json:"users"`
	Bets          []Bet  `json:"bets"`
	Draws         []Draw `json:"draws"`
}

// DefaultSnapshot is the state used when no snapshot file exists yet or
// the stored one cannot be read: one seeded administrator, nothing else.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Users: []User{
			{
				ID:        ProtectedAdminID,
				Username:  "admin",
				Password:  "admin",
				RPName:    "Diretor Geral",
				Balance:   decimal.NewFromInt(1_000_000),
				Role:      RoleAdmin,
				CreatedAt: time.Now(),
			},
		},
		Bets:  []Bet{},
		Draws: []Draw{},
	}
}

// FindUser returns the index of the user with the given id, or -1.
func (s *Snapshot) FindUser(id string) int {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return i
		}
	}
	return -1
}
