package attacks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookfile/chesscore/bitboard"
	"github.com/rookfile/chesscore/square"
)

func TestRookAttacksEmptyBoard(t *testing.T) {
	got := Rook(square.A1, bitboard.None)
	require.Equal(t, 14, got.Count())
}

func TestBishopAttacksEmptyBoard(t *testing.T) {
	got := Bishop(square.D4, bitboard.None)
	require.Equal(t, 13, got.Count())
}

func TestRookAttacksBlockedByOccupancy(t *testing.T) {
	occ := bitboard.FromSquare(square.A4)
	got := Rook(square.A1, occ)
	require.True(t, got.Has(square.A4), "attack set must include the blocker itself")
	require.False(t, got.Has(square.A5), "attack set must stop at the blocker")
}

func TestKnightAttacksCorner(t *testing.T) {
	got := KnightAttacks[square.A1]
	require.Equal(t, 2, got.Count())
	require.True(t, got.Has(square.B3))
	require.True(t, got.Has(square.C2))
}

func TestPawnAttacksDirection(t *testing.T) {
	white := PawnAttacks[square.White][square.E4]
	require.True(t, white.Has(square.D5))
	require.True(t, white.Has(square.F5))

	black := PawnAttacks[square.Black][square.E4]
	require.True(t, black.Has(square.D3))
	require.True(t, black.Has(square.F3))
}

func TestBetweenStraight(t *testing.T) {
	between := BetweenStraight[square.A1][square.A4]
	require.Equal(t, 2, between.Count())
	require.True(t, between.Has(square.A2))
	require.True(t, between.Has(square.A3))
}
