// Package position implements the board representation the rest of the
// engine operates on: bitboards plus a mailbox for O(1) piece lookup,
// incremental Zobrist hashing, and fully reversible move application.
//
// MakeMove pushes a StateInfo record per move and UnmakeMove restores it,
// so a single Position value is mutated and reverted millions of times per
// search without allocating or needing to reparse a FEN string to undo.
package position

import (
	"github.com/rookfile/chesscore/attacks"
	"github.com/rookfile/chesscore/bitboard"
	"github.com/rookfile/chesscore/square"
	"github.com/rookfile/chesscore/zobrist"
)

// StateInfo captures everything about a position that a move can change but
// that cannot be recovered by inverting the move alone: the captured piece,
// prior en passant square, prior castling rights, prior halfmove clock and
// the hash key before the move. One is pushed onto Position.history by
// MakeMove and popped by UnmakeMove.
type StateInfo struct {
	CapturedPiece  square.Piece
	EPSquare       square.Square
	CastlingRights square.CastlingRights
	HalfmoveClock  int
	Zobrist        zobrist.Key
}

// Position is a full chess position plus its reversible history stack.
type Position struct {
	Bitboards [2][6]bitboard.Bitboard
	Mailbox   [64]square.Piece
	ColorAt   [64]square.Color
	OccByColor [2]bitboard.Bitboard
	Occ       bitboard.Bitboard

	SideToMove     square.Color
	CastlingRights square.CastlingRights
	EPSquare       square.Square
	HalfmoveClock  int
	FullmoveNumber int
	Zobrist        zobrist.Key

	history []StateInfo
}

// Empty returns a Position with no pieces placed, side to move white, no
// castling rights and no en passant square. Callers build positions up
// through PlacePiece or via ParseFEN.
func Empty() *Position {
	p := &Position{EPSquare: square.NoSquare, FullmoveNumber: 1}
	for i := range p.Mailbox {
		p.Mailbox[i] = square.NoPiece
	}
	p.Zobrist = zobrist.Compute(rawBitboards(p), square.White, 0, -1)
	return p
}

func rawBitboards(p *Position) [2][6]uint64 {
	var out [2][6]uint64
	for c := 0; c < 2; c++ {
		for pc := 0; pc < 6; pc++ {
			out[c][pc] = uint64(p.Bitboards[c][pc])
		}
	}
	return out
}

// PlacePiece puts piece p of color c on sq, updating bitboards, mailbox,
// occupancy and the hash key. The square must be empty; callers that need
// to overwrite an occupied square must RemovePiece first.
func (pos *Position) PlacePiece(c square.Color, p square.Piece, sq square.Square) {
	pos.Bitboards[c][p] = pos.Bitboards[c][p].Set(sq)
	pos.Mailbox[sq] = p
	pos.ColorAt[sq] = c
	pos.OccByColor[c] = pos.OccByColor[c].Set(sq)
	pos.Occ = pos.Occ.Set(sq)
	pos.Zobrist ^= zobrist.PieceSquare(c, p, sq)
}

// RemovePiece removes whatever piece sits on sq (which must be occupied).
func (pos *Position) RemovePiece(sq square.Square) {
	p := pos.Mailbox[sq]
	c := pos.ColorAt[sq]
	pos.Bitboards[c][p] = pos.Bitboards[c][p].Clear(sq)
	pos.Mailbox[sq] = square.NoPiece
	pos.OccByColor[c] = pos.OccByColor[c].Clear(sq)
	pos.Occ = pos.Occ.Clear(sq)
	pos.Zobrist ^= zobrist.PieceSquare(c, p, sq)
}

func (pos *Position) movePieceQuiet(from, to square.Square) {
	p := pos.Mailbox[from]
	c := pos.ColorAt[from]
	pos.RemovePiece(from)
	pos.PlacePiece(c, p, to)
}

// KingSquare returns the square of c's king.
func (pos *Position) KingSquare(c square.Color) square.Square {
	return pos.Bitboards[c][square.King].Lsb()
}

// AttackersTo returns every piece (of either color) attacking sq given
// occupancy occ, which callers pass explicitly so that a king can be
// "removed" from occupancy to let sliding pieces x-ray through it when
// computing danger squares for king moves.
func (pos *Position) AttackersTo(sq square.Square, occ bitboard.Bitboard) bitboard.Bitboard {
	var att bitboard.Bitboard
	att |= attacks.PawnAttacks[square.White][sq] & pos.Bitboards[square.Black][square.Pawn]
	att |= attacks.PawnAttacks[square.Black][sq] & pos.Bitboards[square.White][square.Pawn]
	att |= attacks.KnightAttacks[sq] & (pos.Bitboards[square.White][square.Knight] | pos.Bitboards[square.Black][square.Knight])
	att |= attacks.KingAttacks[sq] & (pos.Bitboards[square.White][square.King] | pos.Bitboards[square.Black][square.King])
	bishops := pos.Bitboards[square.White][square.Bishop] | pos.Bitboards[square.Black][square.Bishop] |
		pos.Bitboards[square.White][square.Queen] | pos.Bitboards[square.Black][square.Queen]
	att |= attacks.Bishop(sq, occ) & bishops
	rooks := pos.Bitboards[square.White][square.Rook] | pos.Bitboards[square.Black][square.Rook] |
		pos.Bitboards[square.White][square.Queen] | pos.Bitboards[square.Black][square.Queen]
	att |= attacks.Rook(sq, occ) & rooks
	return att
}

// IsSquareAttackedBy reports whether sq is attacked by any piece of color c.
func (pos *Position) IsSquareAttackedBy(sq square.Square, c square.Color) bool {
	return pos.AttackersTo(sq, pos.Occ)&pos.OccByColor[c] != 0
}

// Checkers returns the bitboard of opponent pieces currently giving check to
// the side to move's king.
func (pos *Position) Checkers() bitboard.Bitboard {
	kingSq := pos.KingSquare(pos.SideToMove)
	return pos.AttackersTo(kingSq, pos.Occ) & pos.OccByColor[pos.SideToMove.Opposite()]
}

// CheckMask returns the set of squares a non-king move must land on to
// legally resolve the current check state: bitboard.All when not in check
// (no restriction), the capture-or-block squares of the sole checker when
// in single check, and bitboard.None when in double check (only king moves
// are legal).
func (pos *Position) CheckMask() bitboard.Bitboard {
	checkers := pos.Checkers()
	switch checkers.Count() {
	case 0:
		return bitboard.All
	case 1:
		checkerSq := checkers.Lsb()
		kingSq := pos.KingSquare(pos.SideToMove)
		between := attacks.BetweenStraight[kingSq][checkerSq] | attacks.BetweenDiagonal[kingSq][checkerSq]
		return between | checkers
	default:
		return bitboard.None
	}
}

// PinMasks returns, for every square holding a piece of the side to move
// pinned against its own king, the set of squares that piece may legally
// move to (the ray between the king and the pinning slider, inclusive of
// the pinner). Unpinned squares map to bitboard.All, imposing no
// restriction when intersected with a move's destination set.
func (pos *Position) PinMasks() [64]bitboard.Bitboard {
	var masks [64]bitboard.Bitboard
	for i := range masks {
		masks[i] = bitboard.All
	}

	us := pos.SideToMove
	them := us.Opposite()
	kingSq := pos.KingSquare(us)

	oppBishops := pos.Bitboards[them][square.Bishop] | pos.Bitboards[them][square.Queen]
	oppRooks := pos.Bitboards[them][square.Rook] | pos.Bitboards[them][square.Queen]

	snipers := (attacks.Bishop(kingSq, 0) & oppBishops) | (attacks.Rook(kingSq, 0) & oppRooks)
	for s := snipers; s != 0; {
		sniperSq := bitboard.PopLsb(&s)
		between := attacks.BetweenStraight[kingSq][sniperSq] | attacks.BetweenDiagonal[kingSq][sniperSq]
		blockers := between & pos.Occ
		if blockers.Count() != 1 {
			continue
		}
		blockerSq := blockers.Lsb()
		if !pos.OccByColor[us].Has(blockerSq) {
			continue
		}
		masks[blockerSq] = between | bitboard.FromSquare(sniperSq)
	}
	return masks
}

// InCheck reports whether the side to move's king is currently attacked.
func (pos *Position) InCheck() bool {
	return pos.Checkers() != 0
}

// Clone returns a deep copy of pos, safe to hand to a separate search
// worker goroutine: every lazy-SMP worker searches its own cloned position
// so that MakeMove/UnmakeMove calls in one worker never race with another.
func (pos *Position) Clone() *Position {
	cp := *pos
	cp.history = append([]StateInfo(nil), pos.history...)
	return &cp
}

// StateHistory returns the stack of StateInfo records pushed by MakeMove so
// far, oldest first. Used by the cuckoo package to walk back through
// reversible plies looking for an upcoming repetition; callers must treat
// the returned slice as read-only.
func (pos *Position) StateHistory() []StateInfo {
	return pos.history
}

// Ply returns the number of moves made so far (the depth of the state
// history stack).
func (pos *Position) Ply() int {
	return len(pos.history)
}
