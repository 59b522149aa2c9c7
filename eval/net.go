// Package eval implements a HalfKP-style incrementally-updated evaluator:
// per-side accumulators indexed by (own king square, piece square, piece
// type, piece color), concatenated and fed through two fully connected
// hidden layers and a final scalar projection.
package eval

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rookfile/chesscore/square"
)

const (
	kingSquares       = 64
	pieceSquares      = 64
	nonKingPieceTypes = 5 // pawn, knight, bishop, rook, queen
	numColors         = 2

	// numFeatures is the HalfKP input width: one row per (king square,
	// piece square, non-king piece type, piece color) quadruple.
	numFeatures = kingSquares * pieceSquares * nonKingPieceTypes * numColors // 40960

	accumWidth  = 128
	concatWidth = 2 * accumWidth // both perspectives' accumulators, concatenated
	hidden1     = 32
	hidden2     = 32
)

// Net holds the network's weights, loaded from a big-endian float32 stream
// in a fixed field order: w0, b0, w1, b1, w2, b2, w3, b3.
type Net struct {
	W0 [numFeatures][accumWidth]float32
	B0 [accumWidth]float32

	W1 [concatWidth][hidden1]float32
	B1 [hidden1]float32

	W2 [hidden1][hidden2]float32
	B2 [hidden2]float32

	W3 [hidden2]float32
	B3 float32
}

// NetLoadError reports a failure loading or validating a weights file.
type NetLoadError struct {
	Path string
	Err  error
}

func (e *NetLoadError) Error() string {
	return fmt.Sprintf("eval: loading net %q: %v", e.Path, e.Err)
}

func (e *NetLoadError) Unwrap() error { return e.Err }

// LoadNet reads a Net from path.
func LoadNet(path string) (*Net, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &NetLoadError{path, err}
	}
	defer f.Close()
	n, err := readNet(f)
	if err != nil {
		return nil, &NetLoadError{path, err}
	}
	return n, nil
}

func readF32(r io.Reader) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	bits := binary.BigEndian.Uint32(buf[:])
	return math.Float32frombits(bits), nil
}

func readNet(r io.Reader) (*Net, error) {
	n := &Net{}
	read := func(dst *float32) error {
		v, err := readF32(r)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	for i := 0; i < numFeatures; i++ {
		for j := 0; j < accumWidth; j++ {
			if err := read(&n.W0[i][j]); err != nil {
				return nil, err
			}
		}
	}
	for j := 0; j < accumWidth; j++ {
		if err := read(&n.B0[j]); err != nil {
			return nil, err
		}
	}
	for i := 0; i < concatWidth; i++ {
		for j := 0; j < hidden1; j++ {
			if err := read(&n.W1[i][j]); err != nil {
				return nil, err
			}
		}
	}
	for j := 0; j < hidden1; j++ {
		if err := read(&n.B1[j]); err != nil {
			return nil, err
		}
	}
	for i := 0; i < hidden1; i++ {
		for j := 0; j < hidden2; j++ {
			if err := read(&n.W2[i][j]); err != nil {
				return nil, err
			}
		}
	}
	for j := 0; j < hidden2; j++ {
		if err := read(&n.B2[j]); err != nil {
			return nil, err
		}
	}
	for i := 0; i < hidden2; i++ {
		if err := read(&n.W3[i]); err != nil {
			return nil, err
		}
	}
	if err := read(&n.B3); err != nil {
		return nil, err
	}
	return n, nil
}

// mirrorVertical flips sq across the board's horizontal midline, used to
// express a square relative to the black perspective.
func mirrorVertical(sq square.Square) square.Square {
	return square.FromFileRank(sq.File(), 7-sq.Rank())
}

// featureIndex returns the embedding row for a non-king piece of color c on
// sq, given perspective's own king square kingSq, as seen from perspective's
// point of view. For the black perspective both the king square and the
// piece square are mirrored vertically and the color is flipped, so both
// accumulators learn the same "my pieces near my king" concept regardless
// of which side they score for. p must not be square.King: kings are not
// part of the feature set, they select which row of it is live.
func featureIndex(perspective square.Color, kingSq square.Square, c square.Color, p square.Piece, sq square.Square) int {
	relKingSq := kingSq
	relSquare := sq
	relColor := c
	if perspective == square.Black {
		relKingSq = mirrorVertical(kingSq)
		relSquare = mirrorVertical(sq)
		relColor = c.Opposite()
	}
	return ((int(relKingSq)*pieceSquares+int(relSquare))*nonKingPieceTypes+int(p))*numColors + int(relColor)
}
