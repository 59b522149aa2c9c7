// Package square declares the basic chessboard vocabulary: squares, colors
// and pieces, plus the small amount of index arithmetic built on top of
// them, merged into one dependency-free leaf package.
package square

// Square is a board square, indexed 0 (a1) to 63 (h8), rank-major.
type Square int8

// NoSquare is the sentinel value for "no square", e.g. an empty en-passant
// file.
const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// File returns the file of sq, 0 (a) to 7 (h).
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns the rank of sq, 0 (rank 1) to 7 (rank 8).
func (sq Square) Rank() int { return int(sq) >> 3 }

// String renders sq in algebraic notation, e.g. "e4".
func (sq Square) String() string {
	if sq == NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// FromFileRank builds a Square from a zero-based file and rank.
func FromFileRank(file, rank int) Square {
	return Square(rank*8 + file)
}

// Color is a side to move, white or black.
type Color int8

const (
	White Color = iota
	Black
)

// Opposite returns the other color.
func (c Color) Opposite() Color { return c ^ 1 }

// String renders the color's name.
func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Piece is a piece kind, independent of color.
type Piece int8

const (
	Pawn Piece = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPiece
)

// Symbol returns the piece's FEN/SAN letter, uppercase for white, lowercase
// for black. c is ignored when p is NoPiece.
func (p Piece) Symbol(c Color) byte {
	letters := [...]byte{'P', 'N', 'B', 'R', 'Q', 'K'}
	if p == NoPiece {
		return '.'
	}
	ch := letters[p]
	if c == Black {
		ch += 'a' - 'A'
	}
	return ch
}

// CastlingRights is a bitmask of the four castling privileges.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	AllCastlingRights = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)
