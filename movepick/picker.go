package movepick

import (
	"github.com/rookfile/chesscore/heuristics"
	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/position"
	"github.com/rookfile/chesscore/square"
)

// stage names the picker's internal state: moves are produced in priority
// order. The hash move is tried before any generation; the full legal move
// list is then generated once and split into captures and quiets, and the
// quiets are only sorted by history once the killer stage is reached.
type stage int

const (
	stageTTMove stage = iota
	stageGenerateAll
	stageGoodCaptures
	stageKillers
	stageQuiets
	stageBadCaptures
	stageDone
)

// Picker yields moves for one search node in staged priority order: the
// transposition table move first, then captures ordered by MVV-LVA (split
// into "good"/"bad" by a static exchange estimate), then killer moves, then
// remaining quiets ordered by history score.
type Picker struct {
	pos *position.Position
	h   *heuristics.Heuristics
	ply int

	ttMove move.Move

	all        move.List
	scores     [218]int32
	goodCaps   []int
	badCaps    []int
	quiets     []int
	cursor     int

	stage stage
}

// New creates a picker for the given position at the given search ply
// (needed to index the killer table), with ttMove as the hash move to try
// first if present (move.None if there isn't one).
func New(pos *position.Position, h *heuristics.Heuristics, ply int, ttMove move.Move) *Picker {
	return &Picker{pos: pos, h: h, ply: ply, ttMove: ttMove, stage: stageTTMove}
}

// Next returns the next move to try, or (move.None, false) once every move
// has been produced.
func (p *Picker) Next() (move.Move, bool) {
	for {
		switch p.stage {
		case stageTTMove:
			p.stage = stageGenerateAll
			if p.ttMove != move.None && p.isPseudoLegal(p.ttMove) {
				return p.ttMove, true
			}

		case stageGenerateAll:
			Generate(p.pos, &p.all)
			p.classify()
			p.stage = stageGoodCaptures

		case stageGoodCaptures:
			if p.cursor < len(p.goodCaps) {
				m := p.all.Moves[p.goodCaps[p.cursor]]
				p.cursor++
				if m != p.ttMove {
					return m, true
				}
				continue
			}
			p.cursor = 0
			p.stage = stageKillers

		case stageKillers:
			if p.cursor < 2 {
				k := p.h.Killer(p.ply, p.cursor)
				p.cursor++
				if k != move.None && k != p.ttMove && p.isInList(k) {
					return k, true
				}
				continue
			}
			p.cursor = 0
			p.sortQuietsByHistory()
			p.stage = stageQuiets

		case stageQuiets:
			if p.cursor < len(p.quiets) {
				m := p.all.Moves[p.quiets[p.cursor]]
				p.cursor++
				if m != p.ttMove && !p.h.IsKiller(p.ply, m) {
					return m, true
				}
				continue
			}
			p.cursor = 0
			p.stage = stageBadCaptures

		case stageBadCaptures:
			if p.cursor < len(p.badCaps) {
				m := p.all.Moves[p.badCaps[p.cursor]]
				p.cursor++
				if m != p.ttMove {
					return m, true
				}
				continue
			}
			p.stage = stageDone

		case stageDone:
			return move.None, false
		}
	}
}

func (p *Picker) isPseudoLegal(m move.Move) bool {
	from := m.From()
	if p.pos.Mailbox[from] == square.NoPiece || p.pos.ColorAt[from] != p.pos.SideToMove {
		return false
	}
	var legal move.List
	Generate(p.pos, &legal)
	for i := 0; i < legal.Count; i++ {
		if legal.Moves[i] == m {
			return true
		}
	}
	return false
}

func (p *Picker) isInList(m move.Move) bool {
	for i := 0; i < p.all.Count; i++ {
		if p.all.Moves[i] == m {
			return true
		}
	}
	return false
}

// mvvLvaValue gives a coarse MVV-LVA ordering weight, independent of the
// evaluator's fine-grained piece values.
var mvvLvaValue = [6]int32{1, 3, 3, 5, 9, 0}

// classify splits p.all into good/bad captures by a cheap static exchange
// estimate (captured value >= capturing value is "good") and collects the
// remaining quiet move indices, the same three-way split movepick.rs makes
// between GoodCaptures/BadCaptures/Quiets.
func (p *Picker) classify() {
	p.goodCaps = p.goodCaps[:0]
	p.badCaps = p.badCaps[:0]
	p.quiets = p.quiets[:0]
	for i := 0; i < p.all.Count; i++ {
		m := p.all.Moves[i]
		if !m.IsCapture() {
			p.quiets = append(p.quiets, i)
			continue
		}
		attacker := p.pos.Mailbox[m.From()]
		victim := m.Captured()
		score := mvvLvaValue[victim]*16 - mvvLvaValue[attacker]
		p.scores[i] = score
		if mvvLvaValue[victim] >= mvvLvaValue[attacker] {
			p.goodCaps = append(p.goodCaps, i)
		} else {
			p.badCaps = append(p.badCaps, i)
		}
	}
	sortByScoreDesc(p.goodCaps, p.scores[:])
	sortByScoreDesc(p.badCaps, p.scores[:])
}

func (p *Picker) sortQuietsByHistory() {
	for _, idx := range p.quiets {
		m := p.all.Moves[idx]
		p.scores[idx] = p.h.HistoryScore(p.pos.SideToMove, m.From(), m.To())
	}
	sortByScoreDesc(p.quiets, p.scores[:])
}

func sortByScoreDesc(idx []int, scores []int32) {
	for i := 1; i < len(idx); i++ {
		j := i
		for j > 0 && scores[idx[j-1]] < scores[idx[j]] {
			idx[j-1], idx[j] = idx[j], idx[j-1]
			j--
		}
	}
}
