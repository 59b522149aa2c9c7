package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookfile/chesscore/config"
	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/position"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Workers = 2
	cfg.TTSizeMB = 1
	return cfg
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(testConfig(), position.StartingPosition())
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return eng
}

func TestStartWaitReturnsAMove(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.Start(3))
	require.NoError(t, eng.Wait())

	best, _, running := eng.Poll()
	require.False(t, running)
	require.NotEqual(t, move.None, best)
}

func TestStartTwiceWhileRunningErrors(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.Start(10))
	err := eng.Start(10)
	require.Error(t, err)
	eng.Stop()
}

func TestStopEndsARunningSearch(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.Start(12))
	eng.Stop()

	_, _, running := eng.Poll()
	require.False(t, running)
}

func TestWaitWithoutStartReturnsError(t *testing.T) {
	eng := newTestEngine(t)
	require.Error(t, eng.Wait())
}

func TestReadBoardReturnsFEN(t *testing.T) {
	pos := position.StartingPosition()
	eng, err := New(testConfig(), pos)
	require.NoError(t, err)
	t.Cleanup(eng.Close)

	require.Equal(t, pos.FEN(), eng.ReadBoard())
}

func TestWriteBoardChangesTheCanonicalBoard(t *testing.T) {
	eng := newTestEngine(t)

	kiwipete, err := position.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	require.NoError(t, eng.WriteBoard(kiwipete))
	require.Equal(t, kiwipete.FEN(), eng.ReadBoard())
}

func TestWriteBoardWhileRunningErrors(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.Start(12))
	defer eng.Stop()

	err := eng.WriteBoard(position.StartingPosition())
	require.Error(t, err)
}
