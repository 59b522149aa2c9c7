package eval

import "github.com/rookfile/chesscore/square"

// Eval holds the two per-side accumulators for one position, the king
// square each was last built against, and the net they were built from. It
// is incrementally updated by AddPiece/RemovePiece as the position
// package's make/unmake moves pieces, rather than recomputed from scratch
// every node — except across a king move, where every one of that
// perspective's feature rows depends on the king's new square and the
// accumulator must be rebuilt via RefreshPerspective.
type Eval struct {
	net    *Net
	accs   [2][accumWidth]float32
	kingSq [2]square.Square
}

// New returns an Eval bound to net with both accumulators reset to the bias
// vector (as if the board were empty).
func New(net *Net) *Eval {
	e := &Eval{net: net}
	e.Reset()
	return e
}

// Reset reinitializes both accumulators to the embedding bias, discarding
// any incremental state. Callers must then AddPiece every piece on the
// board to reach a valid state; Refresh does this for a full position.
func (e *Eval) Reset() {
	e.accs[square.White] = e.net.B0
	e.accs[square.Black] = e.net.B0
}

// pieceEntry is a buffered (color, piece, square) triple, used by Refresh to
// separate the two kings (which select feature rows) from the pieces they
// select rows for (which must be added only once both kings are known).
type pieceEntry struct {
	c  square.Color
	p  square.Piece
	sq square.Square
}

// Refresh recomputes both accumulators from scratch given the full set of
// (color, piece, square) triples currently on the board. Used when
// constructing an Eval for an arbitrary position (e.g. from FEN), where
// there is no previous incremental state to build on. Kings are consumed
// first regardless of yield order, since every non-king feature row is
// relative to its perspective's own king square.
func (e *Eval) Refresh(pieces func(yield func(c square.Color, p square.Piece, sq square.Square))) {
	e.Reset()

	var rest []pieceEntry
	pieces(func(c square.Color, p square.Piece, sq square.Square) {
		if p == square.King {
			e.kingSq[c] = sq
			return
		}
		rest = append(rest, pieceEntry{c, p, sq})
	})
	for _, pc := range rest {
		e.addFeature(pc.c, pc.p, pc.sq, 1)
	}
}

// RefreshPerspective recomputes only accumulator[persp] from scratch against
// its new king square kingSq, then replays every non-king piece on the
// board through it. Callers must use this instead of AddPiece/RemovePiece
// whenever persp's own king moves: the king square is baked into every one
// of that perspective's feature rows, so an incremental update cannot track
// it the way a normal piece move can.
func (e *Eval) RefreshPerspective(persp square.Color, kingSq square.Square, pieces func(yield func(c square.Color, p square.Piece, sq square.Square))) {
	e.kingSq[persp] = kingSq
	e.accs[persp] = e.net.B0
	pieces(func(c square.Color, p square.Piece, sq square.Square) {
		if p == square.King {
			return
		}
		row := &e.net.W0[featureIndex(persp, kingSq, c, p, sq)]
		acc := &e.accs[persp]
		for i := range acc {
			acc[i] += row[i]
		}
	})
}

func (e *Eval) addFeature(c square.Color, p square.Piece, sq square.Square, sign float32) {
	for _, persp := range [2]square.Color{square.White, square.Black} {
		row := &e.net.W0[featureIndex(persp, e.kingSq[persp], c, p, sq)]
		acc := &e.accs[persp]
		for i := range acc {
			acc[i] += sign * row[i]
		}
	}
}

// AddPiece updates both accumulators for a piece placed on sq. A king
// placement only records the new king square for its color: kings do not
// contribute a feature row of their own.
func (e *Eval) AddPiece(c square.Color, p square.Piece, sq square.Square) {
	if p == square.King {
		e.kingSq[c] = sq
		return
	}
	e.addFeature(c, p, sq, 1)
}

// RemovePiece updates both accumulators for a piece removed from sq. A king
// removal is a no-op: callers move kings via RefreshPerspective, never via
// RemovePiece+AddPiece.
func (e *Eval) RemovePiece(c square.Color, p square.Piece, sq square.Square) {
	if p == square.King {
		return
	}
	e.addFeature(c, p, sq, -1)
}

// MovePiece is a convenience wrapper combining RemovePiece(from)+AddPiece(to)
// for a non-king piece. King moves must go through RefreshPerspective.
func (e *Eval) MovePiece(c square.Color, p square.Piece, from, to square.Square) {
	e.RemovePiece(c, p, from)
	e.AddPiece(c, p, to)
}

func clippedReLU(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Evaluate returns the net's scalar output from stm's perspective: positive
// favors the side to move. The first hidden layer sees the concatenation of
// the side-to-move's accumulator followed by the opponent's, matching the
// 2*SIZE-wide w1 the network was trained against.
func (e *Eval) Evaluate(stm square.Color) float32 {
	var concat [concatWidth]float32
	copy(concat[:accumWidth], e.accs[stm][:])
	copy(concat[accumWidth:], e.accs[stm.Opposite()][:])

	var h1 [hidden1]float32
	for j := 0; j < hidden1; j++ {
		sum := e.net.B1[j]
		for i := 0; i < concatWidth; i++ {
			sum += clippedReLU(concat[i]) * e.net.W1[i][j]
		}
		h1[j] = sum
	}

	var h2 [hidden2]float32
	for j := 0; j < hidden2; j++ {
		sum := e.net.B2[j]
		for i := 0; i < hidden1; i++ {
			sum += clippedReLU(h1[i]) * e.net.W2[i][j]
		}
		h2[j] = sum
	}

	out := e.net.B3
	for i := 0; i < hidden2; i++ {
		out += clippedReLU(h2[i]) * e.net.W3[i]
	}
	return out
}
