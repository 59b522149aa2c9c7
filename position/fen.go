package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rookfile/chesscore/square"
	"github.com/rookfile/chesscore/zobrist"
)

// FenParseError reports a malformed FEN string, naming which field failed
// and why, rather than panicking on malformed input.
type FenParseError struct {
	Field string
	Value string
	Msg   string
}

func (e *FenParseError) Error() string {
	return fmt.Sprintf("fen: field %q (%q): %s", e.Field, e.Value, e.Msg)
}

var pieceLetters = map[byte]square.Piece{
	'p': square.Pawn, 'n': square.Knight, 'b': square.Bishop,
	'r': square.Rook, 'q': square.Queen, 'k': square.King,
}

// ParseFEN builds a Position from Forsyth-Edwards Notation.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, &FenParseError{"fen", fen, "expected at least 4 space-separated fields"}
	}

	pos := &Position{EPSquare: square.NoSquare, FullmoveNumber: 1}
	for i := range pos.Mailbox {
		pos.Mailbox[i] = square.NoPiece
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, &FenParseError{"board", fields[0], "expected 8 ranks separated by '/'"}
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			default:
				lower := ch | 0x20
				piece, ok := pieceLetters[lower]
				if !ok {
					return nil, &FenParseError{"board", fields[0], fmt.Sprintf("invalid piece letter %q", string(ch))}
				}
				if file > 7 {
					return nil, &FenParseError{"board", fields[0], "rank overflows 8 files"}
				}
				color := square.White
				if ch == lower {
					color = square.Black
				}
				pos.PlacePiece(color, piece, square.FromFileRank(file, rank))
				file++
			}
		}
		if file != 8 {
			return nil, &FenParseError{"board", fields[0], "rank does not sum to 8 files"}
		}
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = square.White
	case "b":
		pos.SideToMove = square.Black
	default:
		return nil, &FenParseError{"side to move", fields[1], "expected 'w' or 'b'"}
	}

	if fields[2] != "-" {
		for _, ch := range []byte(fields[2]) {
			switch ch {
			case 'K':
				pos.CastlingRights |= square.WhiteKingside
			case 'Q':
				pos.CastlingRights |= square.WhiteQueenside
			case 'k':
				pos.CastlingRights |= square.BlackKingside
			case 'q':
				pos.CastlingRights |= square.BlackQueenside
			default:
				return nil, &FenParseError{"castling", fields[2], fmt.Sprintf("invalid character %q", string(ch))}
			}
		}
	}

	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return nil, &FenParseError{"en passant", fields[3], "expected a square like 'e3'"}
		}
		file := int(fields[3][0] - 'a')
		rank := int(fields[3][1] - '1')
		if file < 0 || file > 7 || rank < 0 || rank > 7 {
			return nil, &FenParseError{"en passant", fields[3], "square out of range"}
		}
		pos.EPSquare = square.FromFileRank(file, rank)
	}

	pos.HalfmoveClock = 0
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, &FenParseError{"halfmove clock", fields[4], "not an integer"}
		}
		pos.HalfmoveClock = n
	}
	pos.FullmoveNumber = 1
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, &FenParseError{"fullmove number", fields[5], "not an integer"}
		}
		pos.FullmoveNumber = n
	}

	epFile := -1
	if pos.EPSquare != square.NoSquare {
		epFile = pos.EPSquare.File()
	}
	pos.Zobrist = zobrist.Compute(rawBitboards(pos), pos.SideToMove, pos.CastlingRights, epFile)

	return pos, nil
}

// FEN serializes the position to Forsyth-Edwards Notation.
func (pos *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := square.FromFileRank(file, rank)
			p := pos.Mailbox[sq]
			if p == square.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Symbol(pos.ColorAt[sq]))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank != 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if pos.SideToMove == square.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if pos.CastlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if pos.CastlingRights&square.WhiteKingside != 0 {
			sb.WriteByte('K')
		}
		if pos.CastlingRights&square.WhiteQueenside != 0 {
			sb.WriteByte('Q')
		}
		if pos.CastlingRights&square.BlackKingside != 0 {
			sb.WriteByte('k')
		}
		if pos.CastlingRights&square.BlackQueenside != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if pos.EPSquare == square.NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(pos.EPSquare.String())
	}

	fmt.Fprintf(&sb, " %d %d", pos.HalfmoveClock, pos.FullmoveNumber)
	return sb.String()
}

// StartingPosition returns the standard chess starting position.
func StartingPosition() *Position {
	pos, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		panic(err)
	}
	return pos
}
