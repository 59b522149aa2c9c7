package position

import (
	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/square"
	"github.com/rookfile/chesscore/zobrist"
)

// RookSquaresFor maps a castling flag and color to the rook's origin and
// destination squares.
func RookSquaresFor(flag move.Flag, c square.Color) (from, to square.Square) {
	if c == square.White {
		if flag == move.KingCastle {
			return square.H1, square.F1
		}
		return square.A1, square.D1
	}
	if flag == move.KingCastle {
		return square.H8, square.F8
	}
	return square.A8, square.D8
}

// castlingRightsLost reports which rights are permanently revoked when a
// piece leaves or a rook is captured on the given square.
func castlingRightsLost(sq square.Square) square.CastlingRights {
	switch sq {
	case square.E1:
		return square.WhiteKingside | square.WhiteQueenside
	case square.A1:
		return square.WhiteQueenside
	case square.H1:
		return square.WhiteKingside
	case square.E8:
		return square.BlackKingside | square.BlackQueenside
	case square.A8:
		return square.BlackQueenside
	case square.H8:
		return square.BlackKingside
	default:
		return 0
	}
}

// MakeMove applies m to the position, pushing a StateInfo record that
// UnmakeMove uses to reverse it exactly. The caller is responsible for only
// ever calling MakeMove with pseudo-legal moves generated from this exact
// position.
func (pos *Position) MakeMove(m move.Move) {
	st := StateInfo{
		CapturedPiece:  square.NoPiece,
		EPSquare:       pos.EPSquare,
		CastlingRights: pos.CastlingRights,
		HalfmoveClock:  pos.HalfmoveClock,
		Zobrist:        pos.Zobrist,
	}

	us := pos.SideToMove
	them := us.Opposite()
	from, to := m.From(), m.To()
	moving := pos.Mailbox[from]

	pos.Zobrist ^= zobrist.Castling(pos.CastlingRights)
	if pos.EPSquare != square.NoSquare {
		pos.Zobrist ^= zobrist.EnPassant(pos.EPSquare.File())
	}

	pos.HalfmoveClock++
	if moving == square.Pawn || m.IsCapture() {
		pos.HalfmoveClock = 0
	}

	switch m.Flag() {
	case move.EnPassant:
		capSq := square.FromFileRank(to.File(), from.Rank())
		st.CapturedPiece = square.Pawn
		pos.RemovePiece(capSq)
		pos.movePieceQuiet(from, to)

	case move.KingCastle, move.QueenCastle:
		pos.movePieceQuiet(from, to)
		rFrom, rTo := RookSquaresFor(m.Flag(), us)
		pos.movePieceQuiet(rFrom, rTo)

	default:
		if m.IsCapture() {
			st.CapturedPiece = pos.Mailbox[to]
			pos.RemovePiece(to)
		}
		pos.movePieceQuiet(from, to)
		if m.IsPromotion() {
			pos.RemovePiece(to)
			pos.PlacePiece(us, m.Promotion(), to)
		}
	}

	pos.CastlingRights &^= castlingRightsLost(from)
	pos.CastlingRights &^= castlingRightsLost(to)

	pos.EPSquare = square.NoSquare
	if m.Flag() == move.DoublePawnPush {
		pos.EPSquare = square.FromFileRank(from.File(), (from.Rank()+to.Rank())/2)
	}

	pos.Zobrist ^= zobrist.Castling(pos.CastlingRights)
	if pos.EPSquare != square.NoSquare {
		pos.Zobrist ^= zobrist.EnPassant(pos.EPSquare.File())
	}
	pos.Zobrist ^= zobrist.SideToMove()

	if us == square.Black {
		pos.FullmoveNumber++
	}
	pos.SideToMove = them

	pos.history = append(pos.history, st)
}

// UnmakeMove reverses the most recently made move. m must be the exact move
// last passed to MakeMove.
func (pos *Position) UnmakeMove(m move.Move) {
	st := pos.history[len(pos.history)-1]
	pos.history = pos.history[:len(pos.history)-1]

	them := pos.SideToMove
	us := them.Opposite()
	if us == square.Black {
		pos.FullmoveNumber--
	}
	pos.SideToMove = us

	from, to := m.From(), m.To()

	switch m.Flag() {
	case move.EnPassant:
		pos.undoMovePieceQuiet(to, from)
		capSq := square.FromFileRank(to.File(), from.Rank())
		pos.restorePiece(them, square.Pawn, capSq)

	case move.KingCastle, move.QueenCastle:
		rFrom, rTo := RookSquaresFor(m.Flag(), us)
		pos.undoMovePieceQuiet(rTo, rFrom)
		pos.undoMovePieceQuiet(to, from)

	default:
		if m.IsPromotion() {
			pos.removePieceRaw(us, m.Promotion(), to)
			pos.restorePieceRaw(us, square.Pawn, from)
		} else {
			pos.undoMovePieceQuiet(to, from)
		}
		if m.IsCapture() {
			pos.restorePiece(them, st.CapturedPiece, to)
		}
	}

	pos.CastlingRights = st.CastlingRights
	pos.EPSquare = st.EPSquare
	pos.HalfmoveClock = st.HalfmoveClock
	pos.Zobrist = st.Zobrist
}

// undoMovePieceQuiet moves the piece currently on `to` back to `from`,
// without touching the hash (UnmakeMove restores the hash wholesale from
// the saved StateInfo instead of inverting each XOR).
func (pos *Position) undoMovePieceQuiet(to, from square.Square) {
	p := pos.Mailbox[to]
	c := pos.ColorAt[to]
	pos.removePieceRaw(c, p, to)
	pos.restorePieceRaw(c, p, from)
}

func (pos *Position) removePieceRaw(c square.Color, p square.Piece, sq square.Square) {
	pos.Bitboards[c][p] = pos.Bitboards[c][p].Clear(sq)
	pos.Mailbox[sq] = square.NoPiece
	pos.OccByColor[c] = pos.OccByColor[c].Clear(sq)
	pos.Occ = pos.Occ.Clear(sq)
}

func (pos *Position) restorePieceRaw(c square.Color, p square.Piece, sq square.Square) {
	pos.Bitboards[c][p] = pos.Bitboards[c][p].Set(sq)
	pos.Mailbox[sq] = p
	pos.ColorAt[sq] = c
	pos.OccByColor[c] = pos.OccByColor[c].Set(sq)
	pos.Occ = pos.Occ.Set(sq)
}

// restorePiece re-places a captured piece of color c without touching the
// hash key (the hash is restored wholesale by UnmakeMove).
func (pos *Position) restorePiece(c square.Color, p square.Piece, sq square.Square) {
	pos.restorePieceRaw(c, p, sq)
}

// MakeNullMove toggles the side to move without moving a piece, used by
// null-move pruning in the search package. It clears the en passant square
// (a null move can never be captured en passant by definition) and must be
// paired with UnmakeNullMove.
func (pos *Position) MakeNullMove() StateInfo {
	st := StateInfo{
		EPSquare:       pos.EPSquare,
		CastlingRights: pos.CastlingRights,
		HalfmoveClock:  pos.HalfmoveClock,
		Zobrist:        pos.Zobrist,
		CapturedPiece:  square.NoPiece,
	}
	if pos.EPSquare != square.NoSquare {
		pos.Zobrist ^= zobrist.EnPassant(pos.EPSquare.File())
	}
	pos.Zobrist ^= zobrist.SideToMove()
	pos.EPSquare = square.NoSquare
	pos.SideToMove = pos.SideToMove.Opposite()
	return st
}

// UnmakeNullMove reverses MakeNullMove given the StateInfo it returned.
func (pos *Position) UnmakeNullMove(st StateInfo) {
	pos.SideToMove = pos.SideToMove.Opposite()
	pos.EPSquare = st.EPSquare
	pos.Zobrist = st.Zobrist
}
