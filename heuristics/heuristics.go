// Package heuristics implements the move-ordering tables search consults
// before falling back to static exchange estimates: killer moves per ply
// and a from/to history table.
package heuristics

import (
	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/square"
)

// MaxPly bounds the killer table; search depths never exceed this in
// practice and the table is simply unused past it.
const MaxPly = 128

// Heuristics holds the killer-move and history tables shared by one search
// worker. Each worker owns its own instance — they are not safe to share
// across goroutines; only the transposition table is shared between
// workers.
type Heuristics struct {
	killers [MaxPly][2]move.Move
	history [2][64][64]int32
}

// New returns an empty heuristics table.
func New() *Heuristics {
	return &Heuristics{}
}

// StoreKiller records m as a killer at ply, shifting the previous killer
// into the second slot unless m is already stored there. Only quiet moves
// should ever be passed here; the caller is expected to have already
// filtered out captures.
func (h *Heuristics) StoreKiller(ply int, m move.Move) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	if h.killers[ply][0] == m {
		return
	}
	h.killers[ply][1] = h.killers[ply][0]
	h.killers[ply][0] = m
}

// Killer returns the slot-th killer move at ply (slot 0 or 1), or move.None.
func (h *Heuristics) Killer(ply, slot int) move.Move {
	if ply < 0 || ply >= MaxPly {
		return move.None
	}
	return h.killers[ply][slot]
}

// IsKiller reports whether m matches either killer slot at ply.
func (h *Heuristics) IsKiller(ply int, m move.Move) bool {
	if ply < 0 || ply >= MaxPly {
		return false
	}
	return h.killers[ply][0] == m || h.killers[ply][1] == m
}

// UpdateHistory rewards a quiet move that caused a beta cutoff, weighted by
// depth squared: deeper cutoffs are rarer and more informative, so they
// move the score further.
func (h *Heuristics) UpdateHistory(c square.Color, from, to square.Square, depth int) {
	h.history[c][from][to] += int32(depth * depth)
}

// HistoryScore returns the current ordering score for a quiet move.
func (h *Heuristics) HistoryScore(c square.Color, from, to square.Square) int32 {
	return h.history[c][from][to]
}
