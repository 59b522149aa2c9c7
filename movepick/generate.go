// Package movepick generates pseudo-legal moves, filtered by pin and check
// masks, and stages them for search consumption.
package movepick

import (
	"github.com/rookfile/chesscore/attacks"
	"github.com/rookfile/chesscore/bitboard"
	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/position"
	"github.com/rookfile/chesscore/square"
)

// Generate appends every legal move in pos to list. It combines pseudo-legal
// generation with the pin mask and check mask computed from pos so the
// result requires no further legality filtering, other than king moves
// which are checked against the opponent's attack set directly.
func Generate(pos *position.Position, list *move.List) {
	us := pos.SideToMove
	them := us.Opposite()
	checkMask := pos.CheckMask()
	pinMasks := pos.PinMasks()
	checkers := pos.Checkers()

	kingSq := pos.KingSquare(us)
	generateKingMoves(pos, list, kingSq, us, them)

	if checkers.Count() > 1 {
		// Double check: only king moves are legal.
		return
	}

	generatePawnMoves(pos, list, us, checkMask, pinMasks)
	generateLeaperMoves(pos, list, us, square.Knight, attacks.KnightAttacks[:], checkMask, pinMasks)
	generateSliderMoves(pos, list, us, square.Bishop, checkMask, pinMasks)
	generateSliderMoves(pos, list, us, square.Rook, checkMask, pinMasks)
	generateSliderMoves(pos, list, us, square.Queen, checkMask, pinMasks)
}

func addQuietOrCapture(pos *position.Position, list *move.List, from, to square.Square) {
	if pos.Occ.Has(to) {
		list.Add(move.New(from, to, move.Capture, pos.Mailbox[to], square.NoPiece))
	} else {
		list.Add(move.New(from, to, move.Quiet, square.NoPiece, square.NoPiece))
	}
}

func generateKingMoves(pos *position.Position, list *move.List, kingSq square.Square, us, them square.Color) {
	targets := attacks.KingAttacks[kingSq] &^ pos.OccByColor[us]
	occWithoutKing := pos.Occ.Clear(kingSq)
	for t := targets; t != 0; {
		to := bitboard.PopLsb(&t)
		if pos.AttackersTo(to, occWithoutKing)&pos.OccByColor[them] != 0 {
			continue
		}
		addQuietOrCapture(pos, list, kingSq, to)
	}

	if pos.Checkers() != 0 {
		return
	}
	generateCastling(pos, list, kingSq, us, them, occWithoutKing)
}

func generateCastling(pos *position.Position, list *move.List, kingSq square.Square, us, them square.Color, occWithoutKing bitboard.Bitboard) {
	attacked := func(sq square.Square) bool {
		return pos.AttackersTo(sq, pos.Occ)&pos.OccByColor[them] != 0
	}
	if us == square.White {
		if pos.CastlingRights&square.WhiteKingside != 0 &&
			!pos.Occ.Has(square.F1) && !pos.Occ.Has(square.G1) &&
			!attacked(square.E1) && !attacked(square.F1) && !attacked(square.G1) {
			list.Add(move.New(square.E1, square.G1, move.KingCastle, square.NoPiece, square.NoPiece))
		}
		if pos.CastlingRights&square.WhiteQueenside != 0 &&
			!pos.Occ.Has(square.D1) && !pos.Occ.Has(square.C1) && !pos.Occ.Has(square.B1) &&
			!attacked(square.E1) && !attacked(square.D1) && !attacked(square.C1) {
			list.Add(move.New(square.E1, square.C1, move.QueenCastle, square.NoPiece, square.NoPiece))
		}
		return
	}
	if pos.CastlingRights&square.BlackKingside != 0 &&
		!pos.Occ.Has(square.F8) && !pos.Occ.Has(square.G8) &&
		!attacked(square.E8) && !attacked(square.F8) && !attacked(square.G8) {
		list.Add(move.New(square.E8, square.G8, move.KingCastle, square.NoPiece, square.NoPiece))
	}
	if pos.CastlingRights&square.BlackQueenside != 0 &&
		!pos.Occ.Has(square.D8) && !pos.Occ.Has(square.C8) && !pos.Occ.Has(square.B8) &&
		!attacked(square.E8) && !attacked(square.D8) && !attacked(square.C8) {
		list.Add(move.New(square.E8, square.C8, move.QueenCastle, square.NoPiece, square.NoPiece))
	}
}

func generateLeaperMoves(pos *position.Position, list *move.List, us square.Color, piece square.Piece, table []bitboard.Bitboard, checkMask bitboard.Bitboard, pinMasks [64]bitboard.Bitboard) {
	pieces := pos.Bitboards[us][piece]
	for p := pieces; p != 0; {
		from := bitboard.PopLsb(&p)
		targets := table[from] &^ pos.OccByColor[us] & checkMask & pinMasks[from]
		for t := targets; t != 0; {
			to := bitboard.PopLsb(&t)
			addQuietOrCapture(pos, list, from, to)
		}
	}
}

func generateSliderMoves(pos *position.Position, list *move.List, us square.Color, piece square.Piece, checkMask bitboard.Bitboard, pinMasks [64]bitboard.Bitboard) {
	pieces := pos.Bitboards[us][piece]
	for p := pieces; p != 0; {
		from := bitboard.PopLsb(&p)
		var raw bitboard.Bitboard
		switch piece {
		case square.Bishop:
			raw = attacks.Bishop(from, pos.Occ)
		case square.Rook:
			raw = attacks.Rook(from, pos.Occ)
		default:
			raw = attacks.Queen(from, pos.Occ)
		}
		targets := raw &^ pos.OccByColor[us] & checkMask & pinMasks[from]
		for t := targets; t != 0; {
			to := bitboard.PopLsb(&t)
			addQuietOrCapture(pos, list, from, to)
		}
	}
}

func generatePawnMoves(pos *position.Position, list *move.List, us square.Color, checkMask bitboard.Bitboard, pinMasks [64]bitboard.Bitboard) {
	them := us.Opposite()
	pawns := pos.Bitboards[us][square.Pawn]

	var forward int
	var startRank, promoRank int
	if us == square.White {
		forward = 8
		startRank, promoRank = 1, 7
	} else {
		forward = -8
		startRank, promoRank = 6, 0
	}

	for p := pawns; p != 0; {
		from := bitboard.PopLsb(&p)
		pin := pinMasks[from]

		one := square.Square(int(from) + forward)
		if !pos.Occ.Has(one) {
			if checkMask.Has(one) && pin.Has(one) {
				addPawnAdvance(list, from, one, promoRank)
			}
			if from.Rank() == startRank {
				two := square.Square(int(from) + 2*forward)
				if !pos.Occ.Has(two) && checkMask.Has(two) && pin.Has(two) {
					list.Add(move.New(from, two, move.DoublePawnPush, square.NoPiece, square.NoPiece))
				}
			}
		}

		capTargets := attacks.PawnAttacks[us][from] & pos.OccByColor[them] & checkMask & pin
		for t := capTargets; t != 0; {
			to := bitboard.PopLsb(&t)
			addPawnCapture(pos, list, from, to, promoRank)
		}

		if pos.EPSquare != square.NoSquare && attacks.PawnAttacks[us][from].Has(pos.EPSquare) {
			capSq := square.FromFileRank(pos.EPSquare.File(), from.Rank())
			// En passant resolves check either by capturing the checking
			// pawn or by the destination square blocking it; check both.
			// Removing both pawns at once can expose the king to a slider
			// that no pin mask covers (e.g. along the shared rank).
			occAfter := pos.Occ.Clear(from).Clear(capSq).Set(pos.EPSquare)
			kingSq := pos.KingSquare(us)
			exposed := attacks.Rook(kingSq, occAfter)&(pos.Bitboards[them][square.Rook]|pos.Bitboards[them][square.Queen]) != 0 ||
				attacks.Bishop(kingSq, occAfter)&(pos.Bitboards[them][square.Bishop]|pos.Bitboards[them][square.Queen]) != 0
			if (checkMask.Has(pos.EPSquare) || checkMask.Has(capSq)) && pin.Has(pos.EPSquare) && !exposed {
				list.Add(move.New(from, pos.EPSquare, move.EnPassant, square.Pawn, square.NoPiece))
			}
		}
	}
}

func addPawnAdvance(list *move.List, from, to square.Square, promoRank int) {
	if to.Rank() == promoRank {
		list.Add(move.New(from, to, move.PromoQueen, square.NoPiece, square.Queen))
		list.Add(move.New(from, to, move.PromoKnight, square.NoPiece, square.Knight))
		list.Add(move.New(from, to, move.PromoRook, square.NoPiece, square.Rook))
		list.Add(move.New(from, to, move.PromoBishop, square.NoPiece, square.Bishop))
		return
	}
	list.Add(move.New(from, to, move.Quiet, square.NoPiece, square.NoPiece))
}

func addPawnCapture(pos *position.Position, list *move.List, from, to square.Square, promoRank int) {
	captured := pos.Mailbox[to]
	if to.Rank() == promoRank {
		list.Add(move.New(from, to, move.PromoCaptureQueen, captured, square.Queen))
		list.Add(move.New(from, to, move.PromoCaptureKnight, captured, square.Knight))
		list.Add(move.New(from, to, move.PromoCaptureRook, captured, square.Rook))
		list.Add(move.New(from, to, move.PromoCaptureBishop, captured, square.Bishop))
		return
	}
	list.Add(move.New(from, to, move.Capture, captured, square.NoPiece))
}
