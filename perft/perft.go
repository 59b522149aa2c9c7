// Package perft implements the leaf-counting correctness harness used to
// validate the move generator against known node counts. It walks a single
// shared position with true make/unmake rather than deep-copying the board
// at every node.
package perft

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/movepick"
	"github.com/rookfile/chesscore/notation"
	"github.com/rookfile/chesscore/position"
)

// Count returns the number of leaf positions reachable from pos after
// exactly depth plies of legal play.
func Count(pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var list move.List
	movepick.Generate(pos, &list)
	if depth == 1 {
		return uint64(list.Count)
	}
	var total uint64
	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		pos.MakeMove(m)
		total += Count(pos, depth-1)
		pos.UnmakeMove(m)
	}
	return total
}

// Divide returns the leaf count contributed by each of pos's legal root
// moves at the given depth, keyed by coordinate notation, for diffing
// against a reference engine's "go perft" output. Each root move counts
// its subtree on its own cloned position, one goroutine per move, since
// they are independent once the move has been made.
func Divide(pos *position.Position, depth int) map[string]uint64 {
	var list move.List
	movepick.Generate(pos, &list)

	labels := make([]string, list.Count)
	counts := make([]uint64, list.Count)

	var g errgroup.Group
	for i := 0; i < list.Count; i++ {
		i, m := i, list.Moves[i]
		labels[i] = notation.ToCoordinate(m)
		g.Go(func() error {
			clone := pos.Clone()
			clone.MakeMove(m)
			counts[i] = Count(clone, depth-1)
			return nil
		})
	}
	g.Wait() // Count never errors; only used to wait out the pool.

	out := make(map[string]uint64, list.Count)
	for i, label := range labels {
		out[label] = counts[i]
	}
	return out
}

// FormatDivide renders a Divide result sorted alphabetically by move, one
// "move count" line per entry, a blank line, then the total — the layout
// perftree expects when diffing against a reference engine's output.
func FormatDivide(divide map[string]uint64) string {
	keys := make([]string, 0, len(divide))
	for k := range divide {
		keys = append(keys, k)
	}
	sortStrings(keys)

	var total uint64
	out := ""
	for _, k := range keys {
		out += fmt.Sprintf("%s %d\n", k, divide[k])
		total += divide[k]
	}
	out += fmt.Sprintf("\n%d\n", total)
	return out
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
