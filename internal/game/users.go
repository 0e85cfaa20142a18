package game

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bicho_service/internal/ledger"
)

// CreateUserRequest carries the admin form fields for a new account.
// Role defaults to USER and Balance to the configured initial credits.
type CreateUserRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	RPName   string          `json:"rp_name"`
	Role     ledger.Role     `json:"role"`
	Balance  decimal.Decimal `json:"balance"`
}

// CreateUser appends a new account. Usernames are unique after
// trimming and lowercasing; a collision rejects the whole operation
// and leaves the ledger unchanged.
func (s *Service) CreateUser(req CreateUserRequest) (ledger.User, error) {
	uname := strings.TrimSpace(req.Username)
	key := strings.ToLower(uname)

	user := ledger.User{
		ID:        uuid.NewString(),
		Username:  uname,
		Password:  req.Password,
		RPName:    req.RPName,
		Balance:   req.Balance,
		Role:      req.Role,
		CreatedAt: time.Now(),
	}
	if user.Role == "" {
		user.Role = ledger.RoleUser
	}
	if user.Balance.IsZero() {
		user.Balance = s.initialCredits
	}

	err := s.repo.Update(func(snap *ledger.Snapshot) error {
		for i := range snap.Users {
			if strings.ToLower(strings.TrimSpace(snap.Users[i].Username)) == key {
				return ErrDuplicateUsername
			}
		}
		snap.Users = append(snap.Users, user)
		return nil
	})
	if err != nil {
		return ledger.User{}, err
	}

	s.log.WithField("user_id", user.ID).WithField("username", user.Username).Info("user created")
	return user, nil
}

// DeleteUser removes an account. Deleting the protected admin is a
// silent no-op. The user's bets are deliberately left in place, still
// referencing the removed id; reassigning or cascading them would
// rewrite history the community may still want to see.
func (s *Service) DeleteUser(id string) error {
	if id == ledger.ProtectedAdminID {
		return nil
	}
	return s.repo.Update(func(snap *ledger.Snapshot) error {
		i := snap.FindUser(id)
		if i < 0 {
			return ErrUserNotFound
		}
		snap.Users = append(snap.Users[:i], snap.Users[i+1:]...)
		if snap.CurrentUserID == id {
			snap.CurrentUserID = ""
		}
		return nil
	})
}

// ListUsers returns all accounts in creation order.
func (s *Service) ListUsers() []ledger.User {
	var out []ledger.User
	s.repo.View(func(snap *ledger.Snapshot) {
		out = make([]ledger.User, len(snap.Users))
		copy(out, snap.Users)
	})
	return out
}
