package search

import (
	"github.com/rookfile/chesscore/cuckoo"
	"github.com/rookfile/chesscore/eval"
	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/movepick"
	"github.com/rookfile/chesscore/square"
	"github.com/rookfile/chesscore/ttable"
)

// alphaBeta is the negamax search core. ply is the distance from the root
// (used for mate scoring, killer indexing and null-move legality); isPV
// marks nodes on the principal variation, where null-move pruning and
// certain reductions are skipped to keep the PV score exact.
func (w *Worker) alphaBeta(depth int, alpha, beta int32, ply int, isPV bool) int32 {
	if w.Stop.Stopped() {
		return 0
	}
	w.nodes++

	if ply > 0 {
		if w.Pos.HalfmoveClock >= 100 || cuckoo.HasUpcomingRepetition(w.Pos) {
			return w.drawValue()
		}
	}

	inCheck := w.Pos.InCheck()
	if depth <= 0 && !inCheck {
		return w.quiescence(alpha, beta, ply)
	}
	if depth <= 0 {
		depth = 1 // check extension: never drop to quiescence while in check
	}

	origAlpha := alpha

	var ttMove move.Move
	if ply > 0 {
		if m, score, d, bound, found := w.TT.Probe(w.Pos.Zobrist); found {
			ttMove = m
			if int(d) >= depth && !isPV {
				switch bound {
				case ttable.BoundExact:
					return int32(score)
				case ttable.BoundLower:
					if int32(score) > alpha {
						alpha = int32(score)
					}
				case ttable.BoundUpper:
					if int32(score) < beta {
						beta = int32(score)
					}
				}
				if alpha >= beta {
					return int32(score)
				}
			}
		}
	}

	// Null-move pruning: skip our move entirely and see if the opponent is
	// still in trouble even with a free move. Disabled in positions where
	// zugzwang makes that unsound (see isEndgame) and on PV nodes, where we
	// want an exact score rather than a cheap cutoff.
	if !isPV && !inCheck && depth >= w.Params.NullMoveMinDepth && !isEndgame(w.Pos, w.Pos.SideToMove) {
		st := w.Pos.MakeNullMove()
		score := -w.alphaBeta(depth-1-w.Params.NullMoveReduction, -beta, -beta+1, ply+1, false)
		w.Pos.UnmakeNullMove(st)
		if w.Stop.Stopped() {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	picker := movepick.New(w.Pos, w.Heur, ply, ttMove)
	var best move.Move
	bestScore := int32(-Infinity)
	legalMoves := 0

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		legalMoves++

		extension := 0
		if inCheck {
			extension = 1
		}

		doMove(w.Pos, w.Eval, m)
		var score int32
		if legalMoves == 1 {
			score = -w.alphaBeta(depth-1+extension, -beta, -alpha, ply+1, isPV)
		} else {
			score = -w.alphaBeta(depth-1+extension, -alpha-1, -alpha, ply+1, false)
			if score > alpha && score < beta {
				score = -w.alphaBeta(depth-1+extension, -beta, -alpha, ply+1, true)
			}
		}
		undoMove(w.Pos, w.Eval, m)

		if w.Stop.Stopped() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !m.IsCapture() {
				w.Heur.StoreKiller(ply, m)
				w.Heur.UpdateHistory(w.Pos.SideToMove, m.From(), m.To(), depth)
			}
			w.TT.Store(w.Pos.Zobrist, m, clampToInt16(bestScore), int8(depth), ttable.BoundLower)
			if ply == 0 {
				w.rootBestMove, w.rootBestScore = m, bestScore
			}
			return beta
		}
	}

	if legalMoves == 0 {
		if inCheck {
			return -mateIn(ply)
		}
		return 0 // stalemate
	}

	bound := ttable.BoundUpper
	if bestScore > origAlpha {
		bound = ttable.BoundExact
	}
	w.TT.Store(w.Pos.Zobrist, best, clampToInt16(bestScore), int8(depth), bound)

	if ply == 0 && best != move.None {
		w.rootBestMove = best
	}

	return bestScore
}

// quiescence extends the search along capture and promotion lines until
// the position is quiet, avoiding the horizon effect
// where a static evaluation is taken mid-exchange. Delta pruning discards
// captures that cannot possibly raise alpha even with the most generous
// plausible follow-up.
func (w *Worker) quiescence(alpha, beta int32, ply int) int32 {
	if w.Stop.Stopped() {
		return 0
	}
	w.nodes++

	standPat := w.staticEval()
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var list move.List
	movepick.Generate(w.Pos, &list)

	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		if !m.IsCapture() && !m.IsPromotion() {
			continue
		}

		if !m.IsPromotion() {
			victimValue := mvvValueCp(m.Captured())
			if standPat+victimValue+int32(w.Params.DeltaMargin) < alpha {
				continue
			}
		}

		doMove(w.Pos, w.Eval, m)
		score := -w.quiescence(-beta, -alpha, ply+1)
		undoMove(w.Pos, w.Eval, m)

		if w.Stop.Stopped() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// mvvValueCp returns the centipawn value of the piece a capture takes, used
// by quiescence's delta pruning, derived from the same per-piece weights
// the material-only evaluator uses so the two can never drift apart under a
// future tuning change.
func mvvValueCp(p square.Piece) int32 {
	if p == square.NoPiece {
		return 0
	}
	return int32(eval.PieceValue[p] * 100)
}

// staticEval returns the worker's static evaluation of the current
// position from the side to move's perspective, in centipawns: the net's
// output when a net is loaded, scaled from pawns to centipawns, or a pure
// material count otherwise.
func (w *Worker) staticEval() int32 {
	if w.Eval != nil {
		return int32(w.Eval.Evaluate(w.Pos.SideToMove) * 100)
	}
	var counts [2][6]int
	for c := square.White; c <= square.Black; c++ {
		for p := square.Pawn; p <= square.King; p++ {
			counts[c][p] = w.Pos.Bitboards[c][p].Count()
		}
	}
	return int32(eval.MaterialOnly(counts, w.Pos.SideToMove) * 100)
}
