// Command perft runs the move-generator correctness harness: given a depth,
// a FEN position and an optional sequence of moves to play first, it prints
// one "<move> <subtree-count>" line per legal root move, a blank line, then
// the total — the format perftree (https://github.com/agausmann/perftree)
// expects to diff against a reference engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/rookfile/chesscore/notation"
	"github.com/rookfile/chesscore/perft"
	"github.com/rookfile/chesscore/position"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: perft [-cpuprofile file] <depth: 1..11> "<fen>" ["<move> ..."]`)
}

func main() {
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}

	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 || depth > 11 {
		fmt.Fprintf(os.Stderr, "invalid depth %q: must be an integer between 1 and 11\n", args[0])
		os.Exit(1)
	}

	pos, err := position.ParseFEN(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid FEN: %v\n", err)
		os.Exit(1)
	}

	for _, token := range args[2:] {
		m, err := notation.ParseCoordinate(pos, token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid move %q: %v\n", token, err)
			os.Exit(1)
		}
		pos.MakeMove(m)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	fmt.Print(perft.FormatDivide(perft.Divide(pos, depth)))
}
