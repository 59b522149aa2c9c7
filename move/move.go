// Package move defines the packed move encoding shared by the move
// generator, search and transposition table.
//
// The captured piece travels with the move itself so unmake is O(1) with
// no board lookup: flags(5) | from(6) | to(6) | captured(3) | promotion(3),
// packed into 32 bits, 23 used.
package move

import "github.com/rookfile/chesscore/square"

// Move is a packed chess move.
type Move uint32

// None is the zero move, reserved to mean "no move" (e.g. an empty killer
// slot or TT entry).
const None Move = 0

// Flag identifies special move semantics.
type Flag uint8

const (
	Quiet Flag = iota
	DoublePawnPush
	KingCastle
	QueenCastle
	Capture
	EnPassant
	PromoKnight
	PromoBishop
	PromoRook
	PromoQueen
	PromoCaptureKnight
	PromoCaptureBishop
	PromoCaptureRook
	PromoCaptureQueen
)

const (
	fromShift  = 5
	toShift    = 11
	capShift   = 17
	promoShift = 20

	sixBitMask  = 0x3F
	threeBitMask = 0x7
	flagMask    = 0x1F
)

// New packs the given fields into a Move.
func New(from, to square.Square, flag Flag, captured, promo square.Piece) Move {
	c := captured
	if c == square.NoPiece {
		c = 7
	}
	p := promo
	if p == square.NoPiece {
		p = 7
	}
	return Move(flag) |
		Move(from)<<fromShift |
		Move(to)<<toShift |
		Move(c)<<capShift |
		Move(p)<<promoShift
}

// From returns the origin square.
func (m Move) From() square.Square { return square.Square((m >> fromShift) & sixBitMask) }

// To returns the destination square.
func (m Move) To() square.Square { return square.Square((m >> toShift) & sixBitMask) }

// Flag returns the move's special-move flag.
func (m Move) Flag() Flag { return Flag(m & flagMask) }

// Captured returns the captured piece kind, or square.NoPiece if the move is
// not a capture.
func (m Move) Captured() square.Piece {
	c := square.Piece((m >> capShift) & threeBitMask)
	if c == 7 {
		return square.NoPiece
	}
	return c
}

// Promotion returns the promotion piece kind, or square.NoPiece if the move
// is not a promotion.
func (m Move) Promotion() square.Piece {
	p := square.Piece((m >> promoShift) & threeBitMask)
	if p == 7 {
		return square.NoPiece
	}
	return p
}

// IsCapture reports whether the move flag denotes any kind of capture,
// including en passant and capture-promotions.
func (m Move) IsCapture() bool {
	switch m.Flag() {
	case Capture, EnPassant, PromoCaptureKnight, PromoCaptureBishop, PromoCaptureRook, PromoCaptureQueen:
		return true
	default:
		return false
	}
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	switch m.Flag() {
	case PromoKnight, PromoBishop, PromoRook, PromoQueen,
		PromoCaptureKnight, PromoCaptureBishop, PromoCaptureRook, PromoCaptureQueen:
		return true
	default:
		return false
	}
}

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool {
	return m.Flag() == KingCastle || m.Flag() == QueenCastle
}

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == EnPassant
}

// List is a fixed-capacity move buffer, sized for the documented maximum
// legal moves available in any reachable chess position (218), avoiding
// per-node heap allocation in the move picker's hot path.
type List struct {
	Moves [218]Move
	Count int
}

// Add appends m to the list.
func (l *List) Add(m Move) {
	l.Moves[l.Count] = m
	l.Count++
}

// Reset empties the list for reuse.
func (l *List) Reset() {
	l.Count = 0
}
