// Package engine implements the lazy-SMP controller: a pool of search
// workers sharing one transposition table, started and stopped as a unit
// and polled for the current best move.
package engine

import (
	"errors"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/op/go-logging"

	"github.com/rookfile/chesscore/config"
	"github.com/rookfile/chesscore/eval"
	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/position"
	"github.com/rookfile/chesscore/search"
	"github.com/rookfile/chesscore/ttable"
)

var log = logging.MustGetLogger("engine")

// EngineStateError reports an API misuse, such as starting an
// already-running engine or writing the board during a search.
type EngineStateError struct {
	Op  string
	Msg string
}

func (e *EngineStateError) Error() string {
	return "engine: " + e.Op + ": " + e.Msg
}

// startReq carries one search cycle's parameters to a persistent worker
// goroutine: a private clone of the board to search (so the worker's
// make/unmake stack never touches the engine's canonical position) plus
// the shared target depth and search tunables for that cycle.
type startReq struct {
	pos         *position.Position
	sharedDepth int
	params      search.Params
}

// Engine owns the canonical board and the shared transposition table and
// network weights, and coordinates one lazy-SMP search across
// config.Workers persistent goroutines. Each worker is spawned once, in
// New, and loops on its own start channel rather than being re-spawned on
// every Start call: repeated start/stop cycles re-signal the existing
// goroutines instead of re-paying goroutine and heuristics-table setup
// cost every time.
type Engine struct {
	cfg config.Config
	tt  *ttable.Table
	net *eval.Net

	stopFlag atomic.Bool
	searchID atomic.Uint64

	mu        sync.Mutex
	pos       *position.Position
	running   bool
	workerWG  sync.WaitGroup
	bestMove  move.Move
	bestScore int32
	bestDepth int32

	startCh []chan startReq
	quit    chan struct{}
}

// New constructs an Engine over the given starting board, loading the
// configured network weights file if one is set, and spawns
// config.Workers persistent worker goroutines. A nil *eval.Net (unset
// NetPath) falls back to the eval package's pure material evaluator for
// every worker.
func New(cfg config.Config, pos *position.Position) (*Engine, error) {
	e := &Engine{cfg: cfg, tt: ttable.New(cfg.TTSizeMB), pos: pos.Clone(), quit: make(chan struct{})}
	if cfg.NetPath != "" {
		net, err := eval.LoadNet(cfg.NetPath)
		if err != nil {
			log.Warningf("failed to load net %q, falling back to material eval: %v", cfg.NetPath, err)
		} else {
			e.net = net
		}
	}

	n := cfg.Workers
	if n < 1 {
		n = 1
	}
	e.startCh = make([]chan startReq, n)
	for i := range e.startCh {
		e.startCh[i] = make(chan startReq)
		go e.workerLoop(i)
	}
	return e, nil
}

// workerLoop is the body of one persistent search worker: it blocks on its
// start channel between searches and exits once the engine is closed.
func (e *Engine) workerLoop(id int) {
	n := uint64(len(e.startCh))
	for {
		select {
		case <-e.quit:
			return
		case req := <-e.startCh[id]:
			r := e.searchID.Add(1) % n
			if r == 0 {
				r = n
			}
			workerDepth := req.sharedDepth + 1 + bits.TrailingZeros64(r)
			log.Debugf("worker %d starting at depth %d (shared depth %d)", id, workerDepth, req.sharedDepth)
			w := search.NewWorker(id, req.pos, e.tt, e.net, req.params, e)
			bestMove, bestScore := w.SearchDepth(workerDepth)
			e.reportMove(workerDepth, bestMove, bestScore)
			e.workerWG.Done()
		}
	}
}

// Close stops every persistent worker goroutine. The Engine must not be
// used afterwards.
func (e *Engine) Close() {
	close(e.quit)
}

// Stopped implements search.StopSignal; every worker shares this flag.
func (e *Engine) Stopped() bool { return e.stopFlag.Load() }

// ReadBoard returns the FEN of the engine's canonical board: the position
// it is currently searching, or was last asked to search.
func (e *Engine) ReadBoard() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos.FEN()
}

// WriteBoard replaces the engine's canonical board with a clone of pos. It
// is rejected while a search is running: the board may only be changed
// between searches, preserving the exclusive-access discipline a
// concurrently searching worker pool depends on.
func (e *Engine) WriteBoard(pos *position.Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return &EngineStateError{"WriteBoard", "cannot write the board while the engine is searching"}
	}
	e.pos = pos.Clone()
	return nil
}

// Start signals every worker to begin searching the engine's current board
// in parallel to sharedDepth, diverging their iterative-deepening depths
// by the lazy-SMP formula shared_depth + 1 + ctz(search_id mod N), where a
// remainder of zero counts as N: every worker searches at least one ply
// beyond sharedDepth, and a remainder with more trailing zero bits sends a
// worker deeper, so the pool explores a spread of depths instead of all
// doing identical work.
func (e *Engine) Start(sharedDepth int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return &EngineStateError{"Start", "engine is already searching"}
	}
	e.running = true
	e.stopFlag.Store(false)
	e.bestMove, e.bestScore, e.bestDepth = move.None, 0, 0
	e.tt.NewAge()

	params := search.ParamsFromConfig(e.cfg)
	e.workerWG.Add(len(e.startCh))
	for _, ch := range e.startCh {
		ch <- startReq{pos: e.pos.Clone(), sharedDepth: sharedDepth, params: params}
	}
	return nil
}

// reportMove updates the engine's shared best-move slot if depth improves
// on (or matches, preferring the first reporter) the best depth seen so
// far. Guarded by e.mu, so no compare-and-swap is needed.
func (e *Engine) reportMove(depth int, m move.Move, score int32) {
	if m == move.None {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if int32(depth) > e.bestDepth {
		e.bestDepth = int32(depth)
		e.bestMove = m
		e.bestScore = score
	}
}

// Stop requests every worker to halt cooperatively and blocks until they
// have all reported back.
func (e *Engine) Stop() {
	e.stopFlag.Store(true)
	e.mu.Lock()
	running := e.running
	e.mu.Unlock()
	if !running {
		return
	}
	e.workerWG.Wait()
	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
}

// Poll returns the engine's current best move, its score in centipawns,
// and whether a search is still in progress.
func (e *Engine) Poll() (move.Move, int32, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bestMove, e.bestScore, e.running
}

var errNotRunning = errors.New("engine: not running")

// Wait blocks until the active search's workers have all reported back,
// without requesting a stop (used by callers driving search to a fixed
// depth rather than a wall-clock budget).
func (e *Engine) Wait() error {
	e.mu.Lock()
	running := e.running
	e.mu.Unlock()
	if !running {
		return errNotRunning
	}
	e.workerWG.Wait()
	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
	return nil
}
