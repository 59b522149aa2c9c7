package notation

import (
	"strings"

	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/movepick"
	"github.com/rookfile/chesscore/position"
	"github.com/rookfile/chesscore/square"
)

// ToSAN renders m, a legal move in pos, in Standard Algebraic Notation,
// including check/checkmate suffixes. Disambiguation adds a file, rank, or
// both, when more than one like piece can reach the same square.
func ToSAN(pos *position.Position, m move.Move) string {
	if m.IsCastle() {
		suffix := suffixFor(pos, m)
		if m.Flag() == move.KingCastle {
			return "O-O" + suffix
		}
		return "O-O-O" + suffix
	}

	piece := pos.Mailbox[m.From()]
	var b strings.Builder

	if piece == square.Pawn {
		if m.IsCapture() {
			b.WriteByte(m.From().String()[0])
			b.WriteByte('x')
		}
		b.WriteString(m.To().String())
		if m.IsPromotion() {
			b.WriteByte('=')
			b.WriteByte(strings.ToUpper(string(promoLetter(m.Promotion())))[0])
		}
		b.WriteString(suffixFor(pos, m))
		return b.String()
	}

	b.WriteByte(pieceLetterUpper(piece))
	b.WriteString(disambiguate(pos, m))
	if m.IsCapture() {
		b.WriteByte('x')
	}
	b.WriteString(m.To().String())
	b.WriteString(suffixFor(pos, m))
	return b.String()
}

func pieceLetterUpper(p square.Piece) byte {
	switch p {
	case square.Knight:
		return 'N'
	case square.Bishop:
		return 'B'
	case square.Rook:
		return 'R'
	case square.Queen:
		return 'Q'
	case square.King:
		return 'K'
	default:
		return '?'
	}
}

// disambiguate returns the minimal file/rank/square prefix needed to
// distinguish m.From from any other same-kind piece of the same color that
// could also legally move to m.To. A second identical mover to the same
// square with no distinguishing file or rank would mean two pieces on the
// same square, which cannot happen.
func disambiguate(pos *position.Position, m move.Move) string {
	piece := pos.Mailbox[m.From()]
	color := pos.ColorAt[m.From()]

	var list move.List
	movepick.Generate(pos, &list)

	sameFile, sameRank, ambiguous := false, false, false
	for i := 0; i < list.Count; i++ {
		other := list.Moves[i]
		if other.To() != m.To() || other.From() == m.From() {
			continue
		}
		if pos.Mailbox[other.From()] != piece || pos.ColorAt[other.From()] != color {
			continue
		}
		ambiguous = true
		if other.From().File() == m.From().File() {
			sameFile = true
		}
		if other.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	if !sameFile {
		return string([]byte{m.From().String()[0]})
	}
	if !sameRank {
		return string([]byte{m.From().String()[1]})
	}
	return m.From().String()
}

func suffixFor(pos *position.Position, m move.Move) string {
	pos.MakeMove(m)
	defer pos.UnmakeMove(m)

	if !pos.InCheck() {
		return ""
	}
	var list move.List
	movepick.Generate(pos, &list)
	if list.Count == 0 {
		return "#"
	}
	return "+"
}
