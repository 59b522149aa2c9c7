// Package attacks precomputes every attack table the move generator and
// search need: pawn/knight/king leaper attacks, PEXT-indexed bishop/rook/
// queen slider attacks, and the between/pin ray masks used by the position
// package's check and pin detection.
//
// The slider tables are built from, for each square, a "relevance mask" of
// squares that can ever block one of its rays (edge squares excluded, since
// an edge blocker never changes the attack set), then one table entry per
// blocker subset of that mask, indexed with PEXT instead of a multiplied
// magic number. This needs no precomputed magic constants at all.
package attacks

import (
	"github.com/rookfile/chesscore/bitboard"
	"github.com/rookfile/chesscore/internal/bits"
	"github.com/rookfile/chesscore/square"
)

var (
	PawnAttacks   [2][64]bitboard.Bitboard
	KnightAttacks [64]bitboard.Bitboard
	KingAttacks   [64]bitboard.Bitboard

	bishopRelevance [64]bitboard.Bitboard
	rookRelevance   [64]bitboard.Bitboard
	bishopTable     [64][]bitboard.Bitboard
	rookTable       [64][]bitboard.Bitboard

	// BetweenStraight[a][b] is the set of squares strictly between a and b
	// when they share a rank or file, empty otherwise.
	BetweenStraight [64][64]bitboard.Bitboard
	// BetweenDiagonal[a][b] is the equivalent for a shared diagonal.
	BetweenDiagonal [64][64]bitboard.Bitboard
	// Line[a][b] is the full infinite line through a and b if they are
	// aligned (straight or diagonal), empty otherwise. Used for pin masks.
	Line [64][64]bitboard.Bitboard
)

func init() {
	initLeapers()
	initSliderRelevance()
	initSliderTables()
	initBetween()
}

func onBoard(file, rank int) bool { return file >= 0 && file < 8 && rank >= 0 && rank < 8 }

func raySquares(sq square.Square, deltas [][2]int, blockers bitboard.Bitboard, stopAtFirstBlocker bool) bitboard.Bitboard {
	var out bitboard.Bitboard
	f, r := sq.File(), sq.Rank()
	for _, d := range deltas {
		nf, nr := f+d[0], r+d[1]
		for onBoard(nf, nr) {
			target := square.FromFileRank(nf, nr)
			out = out.Set(target)
			if stopAtFirstBlocker && blockers.Has(target) {
				break
			}
			nf += d[0]
			nr += d[1]
		}
	}
	return out
}

var bishopDeltas = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDeltas = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func initLeapers() {
	knightDeltas := [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas := [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	for sq := square.Square(0); sq < 64; sq++ {
		f, r := sq.File(), sq.Rank()
		var wp, bp bitboard.Bitboard
		if onBoard(f-1, r+1) {
			wp = wp.Set(square.FromFileRank(f-1, r+1))
		}
		if onBoard(f+1, r+1) {
			wp = wp.Set(square.FromFileRank(f+1, r+1))
		}
		if onBoard(f-1, r-1) {
			bp = bp.Set(square.FromFileRank(f-1, r-1))
		}
		if onBoard(f+1, r-1) {
			bp = bp.Set(square.FromFileRank(f+1, r-1))
		}
		PawnAttacks[square.White][sq] = wp
		PawnAttacks[square.Black][sq] = bp

		var n bitboard.Bitboard
		for _, d := range knightDeltas {
			if nf, nr := f+d[0], r+d[1]; onBoard(nf, nr) {
				n = n.Set(square.FromFileRank(nf, nr))
			}
		}
		KnightAttacks[sq] = n

		var k bitboard.Bitboard
		for _, d := range kingDeltas {
			if nf, nr := f+d[0], r+d[1]; onBoard(nf, nr) {
				k = k.Set(square.FromFileRank(nf, nr))
			}
		}
		KingAttacks[sq] = k
	}
}

// initSliderRelevance strips the board-edge squares a ray cannot be blocked from
// mattering on, per direction: a rook on rank 4 is never blocked by a piece
// on file a/h's far edge beyond what's already captured by its own square.
func initSliderRelevance() {
	for sq := square.Square(0); sq < 64; sq++ {
		full := raySquares(sq, bishopDeltas, 0, false)
		bishopRelevance[sq] = full &^ (bitboard.Rank1 | bitboard.Rank8 | bitboard.FileA | bitboard.FileH)

		full = raySquares(sq, rookDeltas, 0, false)
		mask := full
		if sq.File() != 0 {
			mask &^= bitboard.FileA
		}
		if sq.File() != 7 {
			mask &^= bitboard.FileH
		}
		if sq.Rank() != 0 {
			mask &^= bitboard.Rank1
		}
		if sq.Rank() != 7 {
			mask &^= bitboard.Rank8
		}
		rookRelevance[sq] = mask
	}
}

// subsets enumerates every subset of mask using the standard
// carry-rippler trick.
func subsets(mask bitboard.Bitboard) []bitboard.Bitboard {
	out := make([]bitboard.Bitboard, 0, 1<<mask.Count())
	sub := bitboard.Bitboard(0)
	for {
		out = append(out, sub)
		sub = (sub - mask) & mask
		if sub == 0 {
			break
		}
	}
	return out
}

func initSliderTables() {
	for sq := square.Square(0); sq < 64; sq++ {
		mask := bishopRelevance[sq]
		n := 1 << mask.Count()
		bishopTable[sq] = make([]bitboard.Bitboard, n)
		for _, occ := range subsets(mask) {
			idx := bits.Pext(uint64(occ), uint64(mask))
			bishopTable[sq][idx] = raySquares(sq, bishopDeltas, occ, true)
		}

		mask = rookRelevance[sq]
		n = 1 << mask.Count()
		rookTable[sq] = make([]bitboard.Bitboard, n)
		for _, occ := range subsets(mask) {
			idx := bits.Pext(uint64(occ), uint64(mask))
			rookTable[sq][idx] = raySquares(sq, rookDeltas, occ, true)
		}
	}
}

// Bishop returns the bishop attack set from sq given board occupancy occ.
func Bishop(sq square.Square, occ bitboard.Bitboard) bitboard.Bitboard {
	mask := bishopRelevance[sq]
	idx := bits.Pext(uint64(occ)&uint64(mask), uint64(mask))
	return bishopTable[sq][idx]
}

// Rook returns the rook attack set from sq given board occupancy occ.
func Rook(sq square.Square, occ bitboard.Bitboard) bitboard.Bitboard {
	mask := rookRelevance[sq]
	idx := bits.Pext(uint64(occ)&uint64(mask), uint64(mask))
	return rookTable[sq][idx]
}

// Queen returns the queen attack set from sq given board occupancy occ.
func Queen(sq square.Square, occ bitboard.Bitboard) bitboard.Bitboard {
	return Bishop(sq, occ) | Rook(sq, occ)
}

func initBetween() {
	for a := square.Square(0); a < 64; a++ {
		for b := square.Square(0); b < 64; b++ {
			if a == b {
				continue
			}
			af, ar := a.File(), a.Rank()
			bf, br := b.File(), b.Rank()
			dx, dy := bf-af, br-ar
			sameRank := dy == 0
			sameFile := dx == 0
			sameDiag := dx == dy || dx == -dy
			if !sameRank && !sameFile && !sameDiag {
				continue
			}
			stepX, stepY := sign(dx), sign(dy)
			var straight, diagonal bitboard.Bitboard
			var full bitboard.Bitboard
			f, r := af+stepX, ar+stepY
			for square.FromFileRank(f, r) != b {
				sq := square.FromFileRank(f, r)
				full = full.Set(sq)
				if sameRank || sameFile {
					straight = straight.Set(sq)
				} else {
					diagonal = diagonal.Set(sq)
				}
				f += stepX
				r += stepY
			}
			BetweenStraight[a][b] = straight
			BetweenDiagonal[a][b] = diagonal

			// Full line through a and b, both directions, board-clipped.
			lineF, lineR := af, ar
			var line bitboard.Bitboard
			for onBoard(lineF-stepX, lineR-stepY) {
				lineF -= stepX
				lineR -= stepY
			}
			for onBoard(lineF, lineR) {
				line = line.Set(square.FromFileRank(lineF, lineR))
				lineF += stepX
				lineR += stepY
			}
			_ = full
			Line[a][b] = line
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
