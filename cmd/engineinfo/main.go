// Command engineinfo is a tiny demo front-end exercising the Engine API's
// start/poll/stop lifecycle against the starting position, ambient
// supplement to the spec's collaborator-facing Engine surface.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/rookfile/chesscore/config"
	"github.com/rookfile/chesscore/engine"
	"github.com/rookfile/chesscore/notation"
	"github.com/rookfile/chesscore/position"
)

func main() {
	fen := flag.String("fen", "", "FEN to search from (defaults to the starting position)")
	depth := flag.Int("depth", 8, "shared target depth for the lazy-SMP worker pool")
	movetime := flag.Duration("movetime", 2*time.Second, "how long to let the search run before stopping it")
	flag.Parse()

	var pos *position.Position
	var err error
	if *fen == "" {
		pos = position.StartingPosition()
	} else {
		pos, err = position.ParseFEN(*fen)
		if err != nil {
			fmt.Println("invalid FEN:", err)
			return
		}
	}

	cfg := config.Default()
	eng, err := engine.New(cfg, pos)
	if err != nil {
		fmt.Println("failed to construct engine:", err)
		return
	}
	defer eng.Close()

	if err := eng.Start(*depth); err != nil {
		fmt.Println("failed to start search:", err)
		return
	}

	time.Sleep(*movetime)
	eng.Stop()

	best, score, _ := eng.Poll()
	fmt.Printf("bestmove %s score %d\n", notation.ToCoordinate(best), score)
}
