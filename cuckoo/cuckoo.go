// Package cuckoo implements O(1) upcoming-repetition detection via a cuckoo
// hash table of reversible move Zobrist deltas: an 8192-slot, two-hash-
// function (h1/h2) open-addressed table populated once at startup with the
// XOR-delta of every reversible non-pawn, non-castling (color, piece, from,
// to) move, using classic cuckoo eviction on insert collisions.
//
// During search, instead of replaying the full position history to detect a
// draw by repetition several plies ahead of time, the search checks whether
// the XOR of the current hash and an ancestor's hash matches a table entry;
// if it does and the implied move is actually playable on the current
// board, a repetition is reachable within the remaining distance and the
// node can be treated as a draw without finishing the search below it.
package cuckoo

import (
	"github.com/rookfile/chesscore/attacks"
	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/position"
	"github.com/rookfile/chesscore/square"
	"github.com/rookfile/chesscore/zobrist"
)

const size = 8192

var (
	keys  [size]zobrist.Key
	moves [size]move.Move
)

func h1(k zobrist.Key) int { return int(k) & (size - 1) }
func h2(k zobrist.Key) int { return int(k>>16) & (size - 1) }

func init() {
	initLeaperTables()
	for c := square.White; c <= square.Black; c++ {
		for piece := square.Knight; piece <= square.King; piece++ {
			for from := square.Square(0); from < 64; from++ {
				for to := from + 1; to < 64; to++ {
					if !reaches(piece, from, to) {
						continue
					}
					key := zobrist.PieceSquare(c, piece, from) ^
						zobrist.PieceSquare(c, piece, to) ^
						zobrist.SideToMove()
					m := move.New(from, to, move.Quiet, square.NoPiece, square.NoPiece)
					insert(key, m)
				}
			}
		}
	}
}

// reaches reports whether a piece of the given kind, moving in one step
// from one empty board, can travel between from and to. Only non-pawn
// pieces are considered reversible movers for cuckoo purposes: pawns
// (irreversible — they never move backwards) and castling (which also
// moves the rook) are excluded.
func reaches(piece square.Piece, from, to square.Square) bool {
	switch piece {
	case square.Knight:
		return attacksKnight(from).Has(to)
	case square.King:
		return attacksKing(from).Has(to)
	case square.Bishop:
		return sameDiagonal(from, to)
	case square.Rook:
		return sameLine(from, to)
	case square.Queen:
		return sameDiagonal(from, to) || sameLine(from, to)
	default:
		return false
	}
}

// insert places (key, m) into its h1 slot and moves whatever entry it
// evicts to that entry's other slot (h2 if it sat at its h1 slot, h1
// otherwise), in the classic cuckoo displacement chain. The table is sized
// generously enough relative to the number of reversible (color, piece,
// from, to) triples that the chain always terminates during the one-time
// init() call.
func insert(key zobrist.Key, m move.Move) {
	i := h1(key)
	for {
		key, keys[i] = keys[i], key
		m, moves[i] = moves[i], m
		if key == 0 {
			return
		}
		if i == h1(key) {
			i = h2(key)
		} else {
			i = h1(key)
		}
	}
}

// lookup returns the move stored for key, if any.
func lookup(key zobrist.Key) (move.Move, bool) {
	if i := h1(key); keys[i] == key {
		return moves[i], true
	}
	if i := h2(key); keys[i] == key {
		return moves[i], true
	}
	return move.None, false
}

// HasUpcomingRepetition reports whether, from pos's current state, a
// repetition can be forced within the reversible-move window implied by the
// halfmove clock. It walks the state history backwards two plies at a time
// (repetitions always land on the same side to move), checking whether the
// XOR-delta to each ancestor key matches a reversible move that is actually
// playable on the current board: exactly one of its two squares must be
// occupied, and every square strictly between them must be empty. The color
// of the occupying piece is not checked.
func HasUpcomingRepetition(pos *position.Position) bool {
	history := pos.StateHistory()
	n := len(history)
	if n < 3 {
		return false
	}

	current := pos.Zobrist
	end := pos.HalfmoveClock
	if end > n {
		end = n
	}

	for d := 3; d <= end; d += 2 {
		ancestor := history[n-d].Zobrist
		diff := current ^ ancestor
		m, ok := lookup(diff)
		if !ok {
			continue
		}
		from, to := m.From(), m.To()
		// The implied move must be playable now: one endpoint must be
		// empty and the other must hold the piece whose square pair
		// produced this delta (either orientation is valid, since the
		// delta is symmetric in from/to).
		if pos.Mailbox[from] == square.NoPiece && pos.Mailbox[to] == square.NoPiece {
			continue
		}
		if pos.Occ.Has(from) && pos.Occ.Has(to) {
			continue
		}
		if (attacks.BetweenStraight[from][to]|attacks.BetweenDiagonal[from][to])&pos.Occ != 0 {
			continue
		}
		return true
	}
	return false
}

func sameLine(a, b square.Square) bool {
	return a.File() == b.File() || a.Rank() == b.Rank()
}

func sameDiagonal(a, b square.Square) bool {
	df := a.File() - b.File()
	dr := a.Rank() - b.Rank()
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	return df == dr
}

// attacksKnight/attacksKing read small local leaper tables, used only by
// reaches to enumerate the knight and king moves inserted at init.
func attacksKnight(sq square.Square) bitset64 {
	return knightTable[sq]
}

func attacksKing(sq square.Square) bitset64 {
	return kingTable[sq]
}

type bitset64 uint64

func (b bitset64) Has(sq square.Square) bool { return b&(1<<uint(sq)) != 0 }

var knightTable [64]bitset64
var kingTable [64]bitset64

func initLeaperTables() {
	knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas := [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	for sq := square.Square(0); sq < 64; sq++ {
		f, r := sq.File(), sq.Rank()
		var n, k bitset64
		for _, d := range knightDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				n |= 1 << uint(square.FromFileRank(nf, nr))
			}
		}
		for _, d := range kingDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				k |= 1 << uint(square.FromFileRank(nf, nr))
			}
		}
		knightTable[sq] = n
		kingTable[sq] = k
	}
}
