package ttable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/square"
	"github.com/rookfile/chesscore/zobrist"
)

func TestStoreThenProbeRoundTrip(t *testing.T) {
	tbl := New(1)
	key := zobrist.Key(0xDEADBEEFCAFEF00D)
	m := move.New(square.E2, square.E4, move.DoublePawnPush, square.NoPiece, square.NoPiece)

	tbl.Store(key, m, 150, 6, BoundExact)
	gotMove, gotScore, gotDepth, gotBound, found := tbl.Probe(key)
	require.True(t, found)
	require.Equal(t, m, gotMove)
	require.Equal(t, int16(150), gotScore)
	require.Equal(t, int8(6), gotDepth)
	require.Equal(t, BoundExact, gotBound)
}

func TestProbeMissReturnsNotFound(t *testing.T) {
	tbl := New(1)
	_, _, _, _, found := tbl.Probe(zobrist.Key(12345))
	require.False(t, found)
}

func TestDeeperSearchReplacesShallower(t *testing.T) {
	tbl := New(1)
	key := zobrist.Key(0x1234)
	shallow := move.New(square.A2, square.A3, move.Quiet, square.NoPiece, square.NoPiece)
	deep := move.New(square.A2, square.A4, move.DoublePawnPush, square.NoPiece, square.NoPiece)

	tbl.Store(key, shallow, 10, 2, BoundExact)
	tbl.Store(key, deep, 20, 8, BoundExact)

	gotMove, _, gotDepth, _, found := tbl.Probe(key)
	require.True(t, found)
	require.Equal(t, deep, gotMove)
	require.Equal(t, int8(8), gotDepth)
}

func TestShallowerSearchDoesNotReplaceDeeper(t *testing.T) {
	tbl := New(1)
	key := zobrist.Key(0x5678)
	deep := move.New(square.A2, square.A4, move.DoublePawnPush, square.NoPiece, square.NoPiece)
	shallow := move.New(square.A2, square.A3, move.Quiet, square.NoPiece, square.NoPiece)

	tbl.Store(key, deep, 20, 8, BoundExact)
	tbl.Store(key, shallow, 10, 2, BoundExact)

	gotMove, _, gotDepth, _, found := tbl.Probe(key)
	require.True(t, found)
	require.Equal(t, deep, gotMove)
	require.Equal(t, int8(8), gotDepth)
}
