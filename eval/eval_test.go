package eval

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookfile/chesscore/square"
)

func fakeNet() *Net {
	n := &Net{}
	for i := 0; i < numFeatures; i++ {
		for j := 0; j < accumWidth; j++ {
			n.W0[i][j] = float32(i%7) * 0.01
		}
	}
	for j := 0; j < accumWidth; j++ {
		n.B0[j] = 0.1
	}
	for i := 0; i < concatWidth; i++ {
		for j := 0; j < hidden1; j++ {
			n.W1[i][j] = float32((i+j)%5) * 0.02
		}
	}
	for j := 0; j < hidden1; j++ {
		n.B1[j] = 0.05
	}
	for i := 0; i < hidden1; i++ {
		for j := 0; j < hidden2; j++ {
			n.W2[i][j] = float32((i*j)%3) * 0.03
		}
	}
	for j := 0; j < hidden2; j++ {
		n.B2[j] = 0.02
	}
	for i := 0; i < hidden2; i++ {
		n.W3[i] = float32(i%4) * 0.04
	}
	n.B3 = 0.5
	return n
}

func TestReadNetRoundTripsAllWeights(t *testing.T) {
	want := fakeNet()

	var buf bytes.Buffer
	writeAll := func(vals ...float32) {
		for _, v := range vals {
			var tmp [4]byte
			binary.BigEndian.PutUint32(tmp[:], math.Float32bits(v))
			buf.Write(tmp[:])
		}
	}
	for i := 0; i < numFeatures; i++ {
		writeAll(want.W0[i][:]...)
	}
	writeAll(want.B0[:]...)
	for i := 0; i < concatWidth; i++ {
		writeAll(want.W1[i][:]...)
	}
	writeAll(want.B1[:]...)
	for i := 0; i < hidden1; i++ {
		writeAll(want.W2[i][:]...)
	}
	writeAll(want.B2[:]...)
	writeAll(want.W3[:]...)
	writeAll(want.B3)

	got, err := readNet(&buf)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReadNetTruncatedStreamErrors(t *testing.T) {
	_, err := readNet(bytes.NewReader([]byte{0, 0, 0}))
	require.Error(t, err)
}

func TestIncrementalAccumulatorMatchesRefresh(t *testing.T) {
	net := fakeNet()
	pieces := []struct {
		c  square.Color
		p  square.Piece
		sq square.Square
	}{
		{square.White, square.King, square.E1},
		{square.Black, square.King, square.E8},
		{square.White, square.Pawn, square.E4},
		{square.Black, square.Knight, square.F6},
	}

	incremental := New(net)
	for _, pc := range pieces {
		incremental.AddPiece(pc.c, pc.p, pc.sq)
	}

	refreshed := New(net)
	refreshed.Refresh(func(yield func(c square.Color, p square.Piece, sq square.Square)) {
		for _, pc := range pieces {
			yield(pc.c, pc.p, pc.sq)
		}
	})

	require.Equal(t, refreshed.accs, incremental.accs)
	require.Equal(t, refreshed.Evaluate(square.White), incremental.Evaluate(square.White))
}

func TestMovePieceIsRemoveThenAdd(t *testing.T) {
	net := fakeNet()
	a := New(net)
	a.AddPiece(square.White, square.Knight, square.B1)
	a.MovePiece(square.White, square.Knight, square.B1, square.C3)

	b := New(net)
	b.AddPiece(square.White, square.Knight, square.C3)

	require.Equal(t, b.accs, a.accs)
}

func TestFeatureIndexDependsOnKingSquare(t *testing.T) {
	a := featureIndex(square.White, square.E1, square.White, square.Pawn, square.E4)
	b := featureIndex(square.White, square.D1, square.White, square.Pawn, square.E4)
	require.NotEqual(t, a, b, "the same piece must occupy a different feature row once its perspective's king moves")
}

func TestRefreshPerspectiveMatchesFullRefreshAfterKingMove(t *testing.T) {
	net := fakeNet()
	before := []struct {
		c  square.Color
		p  square.Piece
		sq square.Square
	}{
		{square.White, square.King, square.E1},
		{square.Black, square.King, square.E8},
		{square.White, square.Pawn, square.E4},
		{square.Black, square.Knight, square.F6},
	}
	after := []struct {
		c  square.Color
		p  square.Piece
		sq square.Square
	}{
		{square.White, square.King, square.G1},
		{square.Black, square.King, square.E8},
		{square.White, square.Pawn, square.E4},
		{square.Black, square.Knight, square.F6},
	}
	listOf := func(entries []struct {
		c  square.Color
		p  square.Piece
		sq square.Square
	}) func(yield func(c square.Color, p square.Piece, sq square.Square)) {
		return func(yield func(c square.Color, p square.Piece, sq square.Square)) {
			for _, pc := range entries {
				yield(pc.c, pc.p, pc.sq)
			}
		}
	}

	incremental := New(net)
	incremental.Refresh(listOf(before))
	incremental.RefreshPerspective(square.White, square.G1, listOf(after))

	fromScratch := New(net)
	fromScratch.Refresh(listOf(after))

	require.Equal(t, fromScratch.accs[square.White], incremental.accs[square.White])
	require.Equal(t, fromScratch.accs[square.Black], incremental.accs[square.Black],
		"a white king move must not disturb the black accumulator")
}

func TestClippedReLUBounds(t *testing.T) {
	require.Equal(t, float32(0), clippedReLU(-5))
	require.Equal(t, float32(1), clippedReLU(5))
	require.Equal(t, float32(0.5), clippedReLU(0.5))
}
