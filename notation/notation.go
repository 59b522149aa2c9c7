// Package notation converts moves to and from the two textual forms the
// rest of the system needs: pure coordinate notation (e.g. "e2e4", "e7e8q")
// for the engine's external interface, and SAN for display.
package notation

import (
	"fmt"
	"strings"

	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/movepick"
	"github.com/rookfile/chesscore/position"
	"github.com/rookfile/chesscore/square"
)

// MoveParseError reports a malformed coordinate move string.
type MoveParseError struct {
	Text string
	Msg  string
}

func (e *MoveParseError) Error() string {
	return fmt.Sprintf("notation: move %q: %s", e.Text, e.Msg)
}

var promoLetters = map[byte]square.Piece{
	'n': square.Knight, 'b': square.Bishop, 'r': square.Rook, 'q': square.Queen,
}

// ParseCoordinate parses a long algebraic coordinate move (e.g. "e2e4",
// "e7e8q") against pos, resolving it to the matching legal move so its
// flags (capture, en passant, castle, promotion) are filled in correctly.
// It returns an error if the text is malformed or does not name a legal
// move in pos.
func ParseCoordinate(pos *position.Position, text string) (move.Move, error) {
	if len(text) < 4 || len(text) > 5 {
		return move.None, &MoveParseError{text, "expected 4 or 5 characters"}
	}
	from, err := parseSquare(text[0:2])
	if err != nil {
		return move.None, &MoveParseError{text, err.Error()}
	}
	to, err := parseSquare(text[2:4])
	if err != nil {
		return move.None, &MoveParseError{text, err.Error()}
	}
	var promo square.Piece = square.NoPiece
	if len(text) == 5 {
		p, ok := promoLetters[text[4]]
		if !ok {
			return move.None, &MoveParseError{text, "invalid promotion letter"}
		}
		promo = p
	}

	var list move.List
	movepick.Generate(pos, &list)
	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		if m.From() == from && m.To() == to {
			if m.IsPromotion() {
				if m.Promotion() == promo {
					return m, nil
				}
				continue
			}
			if promo != square.NoPiece {
				continue
			}
			return m, nil
		}
	}
	return move.None, &MoveParseError{text, "not a legal move in this position"}
}

func parseSquare(s string) (square.Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return square.NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return square.FromFileRank(int(s[0]-'a'), int(s[1]-'1')), nil
}

// ToCoordinate renders m in long algebraic coordinate notation.
func ToCoordinate(m move.Move) string {
	var b strings.Builder
	b.WriteString(m.From().String())
	b.WriteString(m.To().String())
	if m.IsPromotion() {
		b.WriteByte(promoLetter(m.Promotion()))
	}
	return b.String()
}

func promoLetter(p square.Piece) byte {
	switch p {
	case square.Knight:
		return 'n'
	case square.Bishop:
		return 'b'
	case square.Rook:
		return 'r'
	default:
		return 'q'
	}
}
