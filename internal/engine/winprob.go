package engine

import (
	"math"

	"github.com/hailam/damaplay/internal/board"
)

// winProbabilityScale is the logistic slope applied to evaluation scores.
const winProbabilityScale = 0.005

// WinProbability maps the static DefaultWeights evaluation of b for side
// through a logistic curve to a percentage in 0..100. It does not search and
// is not a calibrated probability.
func WinProbability(b board.Board, side board.Side, v board.Variant) int {
	return scoreToPercent(Evaluate(b, side, v, DefaultWeights))
}

func scoreToPercent(score int) int {
	p := 1 / (1 + math.Exp(-winProbabilityScale*float64(score)))
	return int(math.Round(p * 100))
}
