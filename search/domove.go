package search

import (
	"github.com/rookfile/chesscore/bitboard"
	"github.com/rookfile/chesscore/eval"
	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/position"
	"github.com/rookfile/chesscore/square"
)

// boardPieces returns a pieces iterator over pos's current bitboards, in
// the same (color, piece, square) shape eval.Eval.Refresh/RefreshPerspective
// expect.
func boardPieces(pos *position.Position) func(yield func(c square.Color, p square.Piece, sq square.Square)) {
	return func(yield func(c square.Color, p square.Piece, sq square.Square)) {
		for c := square.White; c <= square.Black; c++ {
			for p := square.Pawn; p <= square.King; p++ {
				bb := pos.Bitboards[c][p]
				for bb != 0 {
					sq := bitboard.PopLsb(&bb)
					yield(c, p, sq)
				}
			}
		}
	}
}

// refreshKingMove rebuilds us's accumulator against its new king square
// kingSq, reading pos's current (already-updated) bitboards. Every feature
// row us's accumulator holds is relative to its own king square, so a king
// move invalidates all of them at once rather than just the king's own
// entry.
func refreshKingMove(pos *position.Position, ev *eval.Eval, us square.Color, kingSq square.Square) {
	ev.RefreshPerspective(us, kingSq, boardPieces(pos))
}

// doMove applies m to pos and keeps ev's accumulators in lockstep in the
// same call site, so the evaluator never drifts from the board it scores.
func doMove(pos *position.Position, ev *eval.Eval, m move.Move) {
	from, to := m.From(), m.To()
	us := pos.ColorAt[from]
	them := us.Opposite()
	movingPiece := pos.Mailbox[from]

	pos.MakeMove(m)

	if ev == nil {
		return
	}

	switch m.Flag() {
	case move.EnPassant:
		capSq := square.FromFileRank(to.File(), from.Rank())
		ev.RemovePiece(them, square.Pawn, capSq)
		ev.MovePiece(us, square.Pawn, from, to)

	case move.KingCastle, move.QueenCastle:
		rFrom, rTo := position.RookSquaresFor(m.Flag(), us)
		ev.MovePiece(us, square.Rook, rFrom, rTo)
		refreshKingMove(pos, ev, us, to)

	default:
		if m.IsCapture() {
			ev.RemovePiece(them, m.Captured(), to)
		}
		if movingPiece == square.King {
			refreshKingMove(pos, ev, us, to)
			return
		}
		if m.IsPromotion() {
			ev.RemovePiece(us, square.Pawn, from)
			ev.AddPiece(us, m.Promotion(), to)
		} else {
			ev.MovePiece(us, movingPiece, from, to)
		}
	}
}

// undoMove reverses doMove. m must be the exact move last applied.
func undoMove(pos *position.Position, ev *eval.Eval, m move.Move) {
	from, to := m.From(), m.To()
	them := pos.SideToMove
	us := them.Opposite()

	pos.UnmakeMove(m)

	if ev == nil {
		return
	}

	switch m.Flag() {
	case move.EnPassant:
		capSq := square.FromFileRank(to.File(), from.Rank())
		ev.MovePiece(us, square.Pawn, to, from)
		ev.AddPiece(them, square.Pawn, capSq)

	case move.KingCastle, move.QueenCastle:
		rFrom, rTo := position.RookSquaresFor(m.Flag(), us)
		ev.MovePiece(us, square.Rook, rTo, rFrom)
		refreshKingMove(pos, ev, us, from)

	default:
		movedPiece := pos.Mailbox[from]
		if m.IsCapture() {
			ev.AddPiece(them, m.Captured(), to)
		}
		if movedPiece == square.King {
			refreshKingMove(pos, ev, us, from)
			return
		}
		if m.IsPromotion() {
			ev.RemovePiece(us, m.Promotion(), to)
			ev.AddPiece(us, square.Pawn, from)
		} else {
			ev.MovePiece(us, movedPiece, to, from)
		}
	}
}
