package heuristics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/square"
)

func TestStoreKillerShiftsPreviousIntoSecondSlot(t *testing.T) {
	h := New()
	m1 := move.New(square.E2, square.E4, move.DoublePawnPush, square.NoPiece, square.NoPiece)
	m2 := move.New(square.G1, square.F3, move.Quiet, square.NoPiece, square.NoPiece)

	h.StoreKiller(3, m1)
	h.StoreKiller(3, m2)

	require.Equal(t, m2, h.Killer(3, 0))
	require.Equal(t, m1, h.Killer(3, 1))
	require.True(t, h.IsKiller(3, m1))
	require.True(t, h.IsKiller(3, m2))
}

func TestStoreKillerDuplicateIsNoOp(t *testing.T) {
	h := New()
	m1 := move.New(square.E2, square.E4, move.DoublePawnPush, square.NoPiece, square.NoPiece)

	h.StoreKiller(1, m1)
	h.StoreKiller(1, m1)

	require.Equal(t, m1, h.Killer(1, 0))
	require.Equal(t, move.None, h.Killer(1, 1))
}

func TestKillerOutOfRangePlyIsSafe(t *testing.T) {
	h := New()
	require.Equal(t, move.None, h.Killer(MaxPly, 0))
	require.False(t, h.IsKiller(-1, move.None))
	h.StoreKiller(-1, move.None)
	h.StoreKiller(MaxPly, move.None)
}

func TestUpdateHistoryWeightsByDepthSquared(t *testing.T) {
	h := New()
	h.UpdateHistory(square.White, square.D2, square.D4, 4)
	require.Equal(t, int32(16), h.HistoryScore(square.White, square.D2, square.D4))

	h.UpdateHistory(square.White, square.D2, square.D4, 2)
	require.Equal(t, int32(20), h.HistoryScore(square.White, square.D2, square.D4))
}

func TestHistoryIsPerColor(t *testing.T) {
	h := New()
	h.UpdateHistory(square.White, square.E2, square.E4, 3)
	require.Equal(t, int32(0), h.HistoryScore(square.Black, square.E2, square.E4))
}
