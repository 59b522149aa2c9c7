package zobrist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookfile/chesscore/square"
)

func TestComputeIsDeterministic(t *testing.T) {
	var bb [2][6]uint64
	bb[square.White][square.Pawn] = 1 << 12
	bb[square.Black][square.King] = 1 << 60

	a := Compute(bb, square.White, square.AllCastlingRights, -1)
	b := Compute(bb, square.White, square.AllCastlingRights, -1)
	require.Equal(t, a, b)
}

func TestSideToMoveTogglesHash(t *testing.T) {
	var bb [2][6]uint64
	white := Compute(bb, square.White, 0, -1)
	black := Compute(bb, square.Black, 0, -1)
	require.NotEqual(t, white, black)
	require.Equal(t, white^black, SideToMove())
}

func TestEnPassantFileDistinctKeys(t *testing.T) {
	require.NotEqual(t, EnPassant(0), EnPassant(1))
}

func TestCastlingRightsDistinctKeys(t *testing.T) {
	require.NotEqual(t, Castling(square.WhiteKingside), Castling(square.AllCastlingRights))
}
