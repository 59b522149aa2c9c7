package eval

import "github.com/rookfile/chesscore/square"

// PieceValue gives the static material weight of a piece kind, in pawns.
// King carries a large sentinel value (200) rather than a placeholder. The
// table is read by MaterialOnly and by search's quiescence delta pruning,
// which scores "value of the piece being captured" but never sees a king
// capture.
var PieceValue = [6]float32{
	square.Pawn:   1.0,
	square.Knight: 3.2,
	square.Bishop: 3.3,
	square.Rook:   5.0,
	square.Queen:  9.0,
	square.King:   200.0,
}

// MaterialOnly computes a pure material balance from stm's perspective,
// used as a cheap fallback evaluator when no network weights file is
// configured (see config.Config.NetPath) so the engine remains usable
// without shipping a trained net alongside the module.
func MaterialOnly(counts [2][6]int, stm square.Color) float32 {
	var score float32
	them := stm.Opposite()
	for p := square.Pawn; p <= square.King; p++ {
		score += float32(counts[stm][p]) * PieceValue[p]
		score -= float32(counts[them][p]) * PieceValue[p]
	}
	return score
}
