package game_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bicho_service/internal/ledger"
)

func TestExportImportReplicatesLedger(t *testing.T) {
	source := newTestService(t)
	user := seedBettor(t, source, 1000)
	_, err := source.PlaceBet(9, decimal.NewFromInt(100))
	require.NoError(t, err)
	source.WithDrawSource(func() int { return 34 })
	_, err = source.ExecuteDraw()
	require.NoError(t, err)

	blob, err := source.Export()
	require.NoError(t, err)

	target := newTestService(t)
	require.NoError(t, target.Import(blob))

	users := target.ListUsers()
	require.Len(t, users, 2)
	require.Equal(t, user.ID, users[1].ID)
	require.True(t, users[1].Balance.Equal(decimal.NewFromInt(2700)))

	bets := target.ListBets("")
	require.Len(t, bets, 1)
	require.Equal(t, ledger.BetStatusWon, bets[0].Status)
	require.Len(t, target.ListDraws(), 1)
}

func TestImportIsWholesaleReplace(t *testing.T) {
	source := newTestService(t)
	blob, err := source.Export() // just the seeded admin, nothing else

	require.NoError(t, err)

	target := newTestService(t)
	seedBettor(t, target, 1000)
	_, err = target.PlaceBet(13, decimal.NewFromInt(50))
	require.NoError(t, err)

	require.NoError(t, target.Import(blob))

	// Local user and bet are gone: last import wins, no merge.
	require.Len(t, target.ListUsers(), 1)
	require.Empty(t, target.ListBets(""))

	// The session user no longer exists, so the session ended too.
	_, ok := target.CurrentUser()
	require.False(t, ok)
}

func TestImportRejectsMalformedBlobUntouched(t *testing.T) {
	svc := newTestService(t)
	seedBettor(t, svc, 1000)
	_, err := svc.PlaceBet(9, decimal.NewFromInt(100))
	require.NoError(t, err)

	err = svc.Import("definitely not a blob")
	require.ErrorIs(t, err, ledger.ErrMalformedSnapshot)

	require.Len(t, svc.ListUsers(), 2)
	require.Len(t, svc.ListBets(""), 1)
	current, ok := svc.CurrentUser()
	require.True(t, ok)
	require.True(t, current.Balance.Equal(decimal.NewFromInt(900)))
}
