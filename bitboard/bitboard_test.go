package bitboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookfile/chesscore/square"
)

func TestSetHasClearRoundTrip(t *testing.T) {
	var b Bitboard
	b = b.Set(square.E4)
	require.True(t, b.Has(square.E4))
	b = b.Clear(square.E4)
	require.False(t, b.Has(square.E4))
}

func TestCountAndEmpty(t *testing.T) {
	var b Bitboard
	require.True(t, b.Empty())
	b = b.Set(square.A1).Set(square.H8)
	require.Equal(t, 2, b.Count())
	require.False(t, b.Empty())
}

func TestPopLsbDrainsAscending(t *testing.T) {
	b := FromSquare(square.C3).Set(square.A1).Set(square.H8)
	var got []square.Square
	for b != 0 {
		got = append(got, PopLsb(&b))
	}
	require.Equal(t, []square.Square{square.A1, square.C3, square.H8}, got)
	require.Equal(t, Bitboard(0), b)
}

func TestSquaresMatchesPopLsb(t *testing.T) {
	b := FromSquare(square.D4).Set(square.F6)
	require.ElementsMatch(t, []square.Square{square.D4, square.F6}, b.Squares())
}

func TestFileAndRankMasks(t *testing.T) {
	require.True(t, Files[0].Has(square.A1))
	require.True(t, Files[0].Has(square.A8))
	require.False(t, Files[0].Has(square.B1))

	require.True(t, Ranks[0].Has(square.A1))
	require.True(t, Ranks[0].Has(square.H1))
	require.False(t, Ranks[0].Has(square.A2))
}

func TestNotFileMasksExcludeTheirFile(t *testing.T) {
	require.False(t, NotFileA.Has(square.A5))
	require.True(t, NotFileA.Has(square.B5))
	require.False(t, NotFileH.Has(square.H5))
}
