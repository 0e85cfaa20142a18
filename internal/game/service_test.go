package game_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"bicho_service/internal/animals"
	"bicho_service/internal/game"
	"bicho_service/internal/ledger"
)

func newTestService(t *testing.T) *game.Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	repo, err := ledger.OpenFileRepository(filepath.Join(t.TempDir(), "bicho.json"), log)
	require.NoError(t, err)

	reg := animals.Default()
	require.NoError(t, reg.Validate())

	return game.NewService(repo, reg, log)
}

// seedBettor creates a USER account with the given balance and logs it in.
func seedBettor(t *testing.T, svc *game.Service, balance int64) ledger.User {
	t.Helper()
	user, err := svc.CreateUser(game.CreateUserRequest{
		Username: "maria",
		Password: "segredo",
		RPName:   "Maria da Sorte",
		Balance:  decimal.NewFromInt(balance),
	})
	require.NoError(t, err)

	logged, err := svc.Login("maria", "segredo")
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)
	return logged
}

func TestLoginTrimsAndIgnoresCase(t *testing.T) {
	svc := newTestService(t)
	seedBettor(t, svc, 1000)
	svc.Logout()

	user, err := svc.Login("  MaRiA  ", "  segredo  ")
	require.NoError(t, err)
	require.Equal(t, "maria", user.Username)

	current, ok := svc.CurrentUser()
	require.True(t, ok)
	require.Equal(t, user.ID, current.ID)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login("ninguem", "x")
	require.ErrorIs(t, err, game.ErrUserNotFound)

	_, ok := svc.CurrentUser()
	require.False(t, ok)
}

func TestLoginWrongPasswordNeverReturnsUser(t *testing.T) {
	svc := newTestService(t)
	seedBettor(t, svc, 1000)
	svc.Logout()

	user, err := svc.Login("maria", "errada")
	require.ErrorIs(t, err, game.ErrInvalidPassword)
	require.Empty(t, user.ID)

	_, ok := svc.CurrentUser()
	require.False(t, ok)
}

func TestLogoutAlwaysClearsSession(t *testing.T) {
	svc := newTestService(t)

	svc.Logout() // nobody logged in, still fine

	_, err := svc.Login("admin", "admin")
	require.NoError(t, err)
	svc.Logout()
	_, ok := svc.CurrentUser()
	require.False(t, ok)
}

func TestCreateUserDefaults(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CreateUser(game.CreateUserRequest{
		Username: "joao",
		Password: "senha",
		RPName:   "João",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, ledger.RoleUser, user.Role)
	require.True(t, user.Balance.Equal(decimal.NewFromInt(game.DefaultInitialCredits)))
	require.False(t, user.CreatedAt.IsZero())
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	seedBettor(t, svc, 1000)

	before := svc.ListUsers()
	_, err := svc.CreateUser(game.CreateUserRequest{Username: "  MARIA ", Password: "outra"})
	require.ErrorIs(t, err, game.ErrDuplicateUsername)
	require.Equal(t, before, svc.ListUsers())
}

func TestDeleteUserKeepsProtectedAdmin(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.DeleteUser(ledger.ProtectedAdminID))

	users := svc.ListUsers()
	require.Len(t, users, 1)
	require.Equal(t, ledger.ProtectedAdminID, users[0].ID)
}

func TestDeleteUserLeavesBetsDangling(t *testing.T) {
	svc := newTestService(t)
	user := seedBettor(t, svc, 1000)

	_, err := svc.PlaceBet(9, decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.ID))
	require.Len(t, svc.ListUsers(), 1) // only the admin left

	// The bet survives, still referencing the removed user.
	bets := svc.ListBets("")
	require.Len(t, bets, 1)
	require.Equal(t, user.ID, bets[0].UserID)

	// Deleting the session user also ended the session.
	_, ok := svc.CurrentUser()
	require.False(t, ok)
}

func TestDeleteUnknownUser(t *testing.T) {
	svc := newTestService(t)
	require.ErrorIs(t, svc.DeleteUser("missing"), game.ErrUserNotFound)
}

func TestStats(t *testing.T) {
	svc := newTestService(t)
	seedBettor(t, svc, 1000)

	_, err := svc.PlaceBet(9, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = svc.PlaceBet(13, decimal.NewFromInt(50))
	require.NoError(t, err)

	st := svc.Stats()
	require.Equal(t, 2, st.Users)
	require.Equal(t, 2, st.Bets)
	require.Equal(t, 2, st.PendingBets)
	require.Equal(t, 0, st.Draws)
	require.True(t, st.TotalStaked.Equal(decimal.NewFromInt(150)))
}
