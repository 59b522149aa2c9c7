package notation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookfile/chesscore/position"
)

func TestParseCoordinateRoundTripsThroughToCoordinate(t *testing.T) {
	pos := position.StartingPosition()
	m, err := ParseCoordinate(pos, "e2e4")
	require.NoError(t, err)
	require.Equal(t, "e2e4", ToCoordinate(m))
}

func TestParseCoordinatePromotion(t *testing.T) {
	pos, err := position.ParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m, err := ParseCoordinate(pos, "a7a8q")
	require.NoError(t, err)
	require.True(t, m.IsPromotion())
	require.Equal(t, "a7a8q", ToCoordinate(m))
}

func TestParseCoordinateRejectsIllegalMove(t *testing.T) {
	pos := position.StartingPosition()
	_, err := ParseCoordinate(pos, "e2e5")
	require.Error(t, err)
}

func TestParseCoordinateRejectsMalformedText(t *testing.T) {
	pos := position.StartingPosition()
	_, err := ParseCoordinate(pos, "e2")
	require.Error(t, err)
	_, err = ParseCoordinate(pos, "e2e4z")
	require.Error(t, err)
}

func TestToSANStartingPositionPawnPush(t *testing.T) {
	pos := position.StartingPosition()
	m, err := ParseCoordinate(pos, "e2e4")
	require.NoError(t, err)
	require.Equal(t, "e4", ToSAN(pos, m))
}

func TestToSANDisambiguatesByFile(t *testing.T) {
	// Knights on c1 and g1 can both reach e2; same rank forces file
	// disambiguation.
	pos, err := position.ParseFEN("k6K/8/8/8/8/8/8/2N3N1 w - - 0 1")
	require.NoError(t, err)
	m, err := ParseCoordinate(pos, "c1e2")
	require.NoError(t, err)
	require.Equal(t, "Nce2", ToSAN(pos, m))
}

func TestToSANAddsCheckSuffix(t *testing.T) {
	pos, err := position.ParseFEN("4k3/8/8/8/8/8/7R/4K3 w - - 0 1")
	require.NoError(t, err)
	m, err := ParseCoordinate(pos, "h2h8")
	require.NoError(t, err)
	require.Equal(t, "Rh8+", ToSAN(pos, m))
}

func TestToSANAddsCheckmateSuffix(t *testing.T) {
	// King g8 boxed in by its own pawns; Ra8 covers the entire back rank.
	pos, err := position.ParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)
	m, err := ParseCoordinate(pos, "a1a8")
	require.NoError(t, err)
	require.Equal(t, "Ra8#", ToSAN(pos, m))
}
