package movepick

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/position"
	"github.com/rookfile/chesscore/square"
)

func TestGenerateStartingPositionMoveCount(t *testing.T) {
	pos := position.StartingPosition()
	var list move.List
	Generate(pos, &list)
	require.Equal(t, 20, list.Count)
}

func TestGenerateDoubleCheckOnlyKingMoves(t *testing.T) {
	// White king on e1 double-checked by a rook on e8 (through an open
	// file) and a knight on d3: every legal move must move the king.
	pos, err := position.ParseFEN("4r3/8/8/8/8/3n4/8/4K3 w - - 0 1")
	require.NoError(t, err)
	var list move.List
	Generate(pos, &list)
	require.Greater(t, list.Count, 0)
	for i := 0; i < list.Count; i++ {
		require.Equal(t, square.E1, list.Moves[i].From())
	}
}

func TestGenerateEnPassantCapture(t *testing.T) {
	pos, err := position.ParseFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)
	var list move.List
	Generate(pos, &list)
	found := false
	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		if m.IsEnPassant() {
			require.Equal(t, square.E5, m.From())
			require.Equal(t, square.D6, m.To())
			found = true
		}
	}
	require.True(t, found, "expected an en passant capture to be generated")
}

func TestGenerateCastlingBlockedByAttackedSquare(t *testing.T) {
	// Black rook on e8 attacks e1: white may not castle through check.
	pos, err := position.ParseFEN("4r3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	var list move.List
	Generate(pos, &list)
	for i := 0; i < list.Count; i++ {
		require.False(t, list.Moves[i].IsCastle(), "castling through check must not be generated")
	}
}
