package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookfile/chesscore/config"
	"github.com/rookfile/chesscore/heuristics"
	"github.com/rookfile/chesscore/notation"
	"github.com/rookfile/chesscore/position"
	"github.com/rookfile/chesscore/ttable"
)

type neverStop struct{}

func (neverStop) Stopped() bool { return false }

func newTestWorker(t *testing.T, fen string) *Worker {
	t.Helper()
	pos, err := position.ParseFEN(fen)
	require.NoError(t, err)
	tt := ttable.New(1)
	params := ParamsFromConfig(config.Default())
	return NewWorker(0, pos, tt, nil, params, neverStop{})
}

func TestSearchDepthFindsMateInOne(t *testing.T) {
	// Ra8# available immediately.
	w := newTestWorker(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	best, score := w.SearchDepth(3)
	require.Equal(t, "a1a8", notation.ToCoordinate(best))
	require.Greater(t, score, MateScore-10)
}

func TestSearchDepthOneReturnsAMove(t *testing.T) {
	// A depth-1 search from a position with legal moves must return some
	// move rather than move.None.
	w := newTestWorker(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	best, _ := w.SearchDepth(1)
	require.NotEqual(t, uint32(0), uint32(best))
}

func TestQuiescenceStandPatDoesNotExplore(t *testing.T) {
	w := newTestWorker(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	score := w.quiescence(-Infinity, Infinity, 0)
	require.Equal(t, int32(0), score)
}

func TestIsEndgameNoQueenIsEndgame(t *testing.T) {
	pos, err := position.ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	require.True(t, isEndgame(pos, pos.SideToMove))
}

func TestIsEndgameQueenAndRooksIsNotEndgame(t *testing.T) {
	pos := position.StartingPosition()
	require.False(t, isEndgame(pos, pos.SideToMove))
}

func TestMateInEncodesDistanceFromRoot(t *testing.T) {
	require.Greater(t, mateIn(0), mateIn(5))
}

func TestHeuristicsMaxPlyMatchesSearchMaxPly(t *testing.T) {
	require.Equal(t, heuristics.MaxPly, MaxPly)
}
