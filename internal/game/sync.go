package game

import (
	"bicho_service/internal/ledger"
)

// Export produces the portable sync blob for manual replication to
// another instance. The session and the animal table stay local.
func (s *Service) Export() (string, error) {
	var state ledger.SyncState
	s.repo.View(func(snap *ledger.Snapshot) {
		state.Users = make([]ledger.User, len(snap.Users))
		copy(state.Users, snap.Users)
		state.Bets = make([]ledger.Bet, len(snap.Bets))
		copy(state.Bets, snap.Bets)
		state.Draws = make([]ledger.Draw, len(snap.Draws))
		copy(state.Draws, snap.Draws)
	})
	return ledger.EncodeBlob(state)
}

// Import replaces users, bets and draws wholesale with the blob's
// contents. There is no merge: whoever imports last wins, and local
// edits since the export are gone. A malformed blob is rejected before
// anything is touched. The session is dropped when the imported users
// no longer contain the logged-in id.
func (s *Service) Import(blob string) error {
	state, err := ledger.DecodeBlob(blob)
	if err != nil {
		return err
	}
	err = s.repo.Update(func(snap *ledger.Snapshot) error {
		snap.Users = state.Users
		snap.Bets = state.Bets
		snap.Draws = state.Draws
		if snap.CurrentUserID != "" && snap.FindUser(snap.CurrentUserID) < 0 {
			snap.CurrentUserID = ""
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithField("users", len(state.Users)).
		WithField("bets", len(state.Bets)).
		WithField("draws", len(state.Draws)).
		Info("sync blob imported")
	return nil
}
