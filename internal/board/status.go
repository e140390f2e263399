package board

// Outcome is the verdict of CheckWinCondition.
type Outcome uint8

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	Draw // declared by game drivers (ply limit), never by CheckWinCondition
)

// Winner returns the winning side; ok is false unless a side has won.
func (o Outcome) Winner() (Side, bool) {
	switch o {
	case WhiteWins:
		return White, true
	case BlackWins:
		return Black, true
	}
	return White, false
}

// String returns "white", "black", "draw" or "none".
func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "white"
	case BlackWins:
		return "black"
	case Draw:
		return "draw"
	}
	return "none"
}

// winFor returns the outcome in which side wins.
func winFor(side Side) Outcome {
	if side == White {
		return WhiteWins
	}
	return BlackWins
}

// CheckWinCondition detects terminal positions. A side with no pieces loses
// regardless of whose turn it is; otherwise sideToMove loses if it has no
// legal move. Immobility counts as a loss, not a draw, in every variant.
func CheckWinCondition(b Board, sideToMove Side, v Variant) Outcome {
	if b.Count(White) == 0 {
		return BlackWins
	}
	if b.Count(Black) == 0 {
		return WhiteWins
	}
	if !HasLegalMoves(b, sideToMove, v) {
		return winFor(sideToMove.Other())
	}
	return Ongoing
}
