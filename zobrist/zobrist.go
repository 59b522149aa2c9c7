// Package zobrist generates and incrementally maintains Zobrist hash keys:
// callers XOR feature keys in and out as position state changes rather
// than recomputing the full hash on every move.
package zobrist

import (
	"math/rand/v2"

	"github.com/rookfile/chesscore/square"
)

// Key is a 64-bit Zobrist hash.
type Key uint64

var (
	pieceSquare [2][6][64]Key
	sideToMove  Key
	castling    [16]Key
	// enPassantFile is keyed by file only (0..7); see EnPassant below.
	enPassantFile [8]Key
)

func init() {
	// A fixed seed keeps hashes reproducible across runs, which the
	// cuckoo table and transposition table both rely on for their
	// static, compile-time-independent correctness tests.
	rng := rand.New(rand.NewPCG(0x9E3779B97F4A7C15, 0xBF58476D1CE4E5B9))
	for c := 0; c < 2; c++ {
		for p := 0; p < 6; p++ {
			for sq := 0; sq < 64; sq++ {
				pieceSquare[c][p][sq] = Key(rng.Uint64())
			}
		}
	}
	sideToMove = Key(rng.Uint64())
	for i := range castling {
		castling[i] = Key(rng.Uint64())
	}
	for i := range enPassantFile {
		enPassantFile[i] = Key(rng.Uint64())
	}
}

// PieceSquare returns the key for a piece of color c on square sq.
func PieceSquare(c square.Color, p square.Piece, sq square.Square) Key {
	return pieceSquare[c][p][sq]
}

// SideToMove returns the key XORed in exactly when it is black to move: the
// key is present in the hash iff the side to move is black, so White's hash
// of the starting position excludes it and a null move toggles it
// unconditionally.
func SideToMove() Key {
	return sideToMove
}

// Castling returns the key for a given castling-rights bitmask (0..15).
func Castling(rights square.CastlingRights) Key {
	return castling[rights&15]
}

// EnPassant returns the key for an en passant target on the given file.
// Hashing is keyed on file only, not file+rank: the rank is always implied
// by the side to move, so hashing the full square would double the table
// for no collision-avoidance benefit.
func EnPassant(file int) Key {
	return enPassantFile[file]
}

// Compute performs a full from-scratch hash of a position's state, used only
// to verify incremental updates in tests and when constructing a position
// directly from a FEN string.
func Compute(bitboards [2][6]uint64, sideToMoveColor square.Color, rights square.CastlingRights, epFile int) Key {
	var k Key
	for c := 0; c < 2; c++ {
		for p := 0; p < 6; p++ {
			bb := bitboards[c][p]
			for bb != 0 {
				sq := trailingZeros(bb)
				k ^= pieceSquare[c][p][sq]
				bb &= bb - 1
			}
		}
	}
	if sideToMoveColor == square.Black {
		k ^= sideToMove
	}
	k ^= castling[rights&15]
	if epFile >= 0 {
		k ^= enPassantFile[epFile]
	}
	return k
}

func trailingZeros(b uint64) int {
	n := 0
	for b&1 == 0 {
		b >>= 1
		n++
	}
	return n
}
