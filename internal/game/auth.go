package game

import (
	"strings"

	"bicho_service/internal/ledger"
)

// Login matches the username (trimmed, case-insensitive) against the
// ledger and then the password (trimmed, exact). Only a matched user
// with the right password becomes the session user. The two failure
// modes are distinct so callers can surface useful messages.
func (s *Service) Login(username, password string) (ledger.User, error) {
	uname := strings.ToLower(strings.TrimSpace(username))
	pass := strings.TrimSpace(password)

	var out ledger.User
	err := s.repo.Update(func(snap *ledger.Snapshot) error {
		for i := range snap.Users {
			if strings.ToLower(strings.TrimSpace(snap.Users[i].Username)) != uname {
				continue
			}
			if strings.TrimSpace(snap.Users[i].Password) != pass {
				return ErrInvalidPassword
			}
			snap.CurrentUserID = snap.Users[i].ID
			out = snap.Users[i]
			return nil
		}
		return ErrUserNotFound
	})
	if err != nil {
		return ledger.User{}, err
	}

	s.log.WithField("user_id", out.ID).WithField("username", out.Username).Info("user logged in")
	return out, nil
}

// Logout clears the session unconditionally.
func (s *Service) Logout() {
	_ = s.repo.Update(func(snap *ledger.Snapshot) error {
		snap.CurrentUserID = ""
		return nil
	})
}
