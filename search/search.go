// Package search implements iterative-deepening alpha-beta negamax with
// quiescence search, aspiration windows, null-move pruning and shared
// transposition table probing.
package search

import (
	"math"

	"github.com/rookfile/chesscore/config"
	"github.com/rookfile/chesscore/eval"
	"github.com/rookfile/chesscore/heuristics"
	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/position"
	"github.com/rookfile/chesscore/square"
	"github.com/rookfile/chesscore/ttable"
)

// Mate-adjacent scores, in centipawns. A "mate in n" score is encoded as
// MateScore - n, n being the ply distance from the root, so that shallower
// mates always outscore deeper ones. Scores are stored in and read from the
// TT as they are, without any adjustment for the node's distance from the
// root.
const (
	Infinity  = 32000
	MateScore = 31000
	MaxPly    = heuristics.MaxPly
)

// aspirationInfinite marks the final, unconstrained entry appended to any
// configured aspiration window schedule.
const aspirationInfinite = math.MaxInt32 / 2

// Params bundles the tunables a Worker consults mid-search, copied out of
// config.Config so the search hot path never touches the config package's
// types directly.
type Params struct {
	AspirationWindows []int
	NullMoveMinDepth  int
	NullMoveReduction int
	DeltaMargin       int
}

// ParamsFromConfig builds Params from a loaded Config, appending the
// "infinite" final aspiration window to the configured widening schedule.
func ParamsFromConfig(c config.Config) Params {
	windows := make([]int, len(c.AspirationWindows)+1)
	copy(windows, c.AspirationWindows)
	windows[len(windows)-1] = aspirationInfinite
	return Params{
		AspirationWindows: windows,
		NullMoveMinDepth:  c.NullMoveMinDepth,
		NullMoveReduction: c.NullMoveReduction,
		DeltaMargin:       c.DeltaPruningMargin,
	}
}

// StopSignal is polled cooperatively by the search loop; engine.Engine
// sets it once per stop request and every worker shares the same instance.
type StopSignal interface {
	Stopped() bool
}

// Worker runs one lazy-SMP search thread against a shared transposition
// table. Each worker owns a private position (its own make/unmake stack),
// heuristics table and evaluator accumulator; only the TT and the stop
// signal are shared across workers.
type Worker struct {
	ID     int
	Pos    *position.Position
	TT     *ttable.Table
	Heur   *heuristics.Heuristics
	Eval   *eval.Eval
	Params Params
	Stop   StopSignal

	nodes uint64
	seed  uint64

	rootBestMove  move.Move
	rootBestScore int32
}

// NewWorker constructs a worker over pos (which it takes ownership of for
// the duration of the search) sharing tt and net with its sibling workers.
func NewWorker(id int, pos *position.Position, tt *ttable.Table, net *eval.Net, params Params, stop StopSignal) *Worker {
	var ev *eval.Eval
	if net != nil {
		ev = eval.New(net)
		ev.Refresh(boardPieces(pos))
	}
	return &Worker{
		ID:     id,
		Pos:    pos,
		TT:     tt,
		Heur:   heuristics.New(),
		Eval:   ev,
		Params: params,
		Stop:   stop,
		seed:   uint64(0x9E3779B9) ^ uint64(id)*0x2545F4914F6CDD1D,
	}
}

// SearchDepth runs iterative deepening from the worker's current position
// up to maxDepth (or until Stop fires), returning the best move and score
// found at the deepest completed iteration.
func (w *Worker) SearchDepth(maxDepth int) (move.Move, int32) {
	var lastScore int32
	for depth := 1; depth <= maxDepth; depth++ {
		if w.Stop.Stopped() {
			break
		}
		score := w.aspirationSearch(depth, lastScore)
		if w.Stop.Stopped() {
			break
		}
		lastScore = score
		w.rootBestScore = score
	}
	return w.rootBestMove, w.rootBestScore
}

// aspirationSearch runs one iterative-deepening iteration at depth,
// widening the alpha-beta window around the previous iteration's score
// according to w.Params.AspirationWindows until the result falls strictly
// inside the window (or the window schedule is exhausted, at which point
// the final entry is an unconstrained full-width search).
func (w *Worker) aspirationSearch(depth int, prevScore int32) int32 {
	if depth < 4 || len(w.Params.AspirationWindows) == 0 {
		return w.alphaBeta(depth, -Infinity, Infinity, 0, true)
	}

	for _, window := range w.Params.AspirationWindows {
		alpha := prevScore - int32(window)
		beta := prevScore + int32(window)
		if window >= aspirationInfinite {
			alpha, beta = -Infinity, Infinity
		}
		score := w.alphaBeta(depth, alpha, beta, 0, true)
		if w.Stop.Stopped() {
			return score
		}
		if score > alpha && score < beta {
			return score
		}
		// Fails low or high: widen to the next window and re-search.
	}
	return w.alphaBeta(depth, -Infinity, Infinity, 0, true)
}

func (w *Worker) isRoot(ply int) bool { return ply == 0 }

// isEndgame reports whether null-move pruning should be disabled: pruning
// is unsafe whenever zugzwang is likely, approximated as "the side to move
// has no queen, or has a single queen with no rooks and fewer than three
// other minor/major pieces".
func isEndgame(pos *position.Position, side square.Color) bool {
	queens := pos.Bitboards[side][square.Queen].Count()
	if queens == 0 {
		return true
	}
	rooks := pos.Bitboards[side][square.Rook].Count()
	if rooks > 0 {
		return false
	}
	minors := pos.Bitboards[side][square.Knight].Count() + pos.Bitboards[side][square.Bishop].Count()
	return queens == 1 && minors < 3
}

// drawValue returns a small pseudo-random contempt score for a position the
// search treats as drawn, so repeated draws at the root don't collapse move
// ordering onto a flat plateau: a tiny xorshift64 step keyed off the
// worker's seed, mapped to an integer from -2 to 2 centipawns (zero
// included).
func (w *Worker) drawValue() int32 {
	w.seed ^= w.seed << 13
	w.seed ^= w.seed >> 7
	w.seed ^= w.seed << 17
	return int32(w.seed%5) - 2
}

func clampToInt16(v int32) int16 {
	if v > Infinity {
		return Infinity
	}
	if v < -Infinity {
		return -Infinity
	}
	return int16(v)
}

func mateIn(ply int) int32 { return MateScore - int32(ply) }
