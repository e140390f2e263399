package board

import "fmt"

// MoveResult is the outcome of executing a move.
type MoveResult struct {
	Board           Board
	Next            Side   // side to move next
	MustCaptureFrom Square // landing square of a chain capture in progress, or NoSquare
	Notation        string
}

// ChainContinues reports whether the same side must keep capturing.
func (r MoveResult) ChainContinues() bool {
	return r.MustCaptureFrom.IsValid()
}

// PerformMove executes m for side on a copy of b.
//
// The move must come from GenerateMoves for the same board, side and chain
// state; use ApplyMove when that is not guaranteed. A capture that does not
// promote keeps the turn with the same side if the landing piece can capture
// again; every other move passes the turn.
func PerformMove(b Board, m Move, side Side, v Variant) MoveResult {
	moving := b.At(m.From)

	if m.Capture {
		b.set(m.Captured, NoPiece)
	}
	b.set(m.From, NoPiece)
	if m.Promotes {
		moving = moving.Crowned()
	}
	b.set(m.To, moving)

	res := MoveResult{
		Board:           b,
		Next:            side.Other(),
		MustCaptureFrom: NoSquare,
		Notation:        Notation(m, moving),
	}

	if m.Capture && !m.Promotes && canCaptureFrom(&res.Board, m.To, v) {
		res.Next = side
		res.MustCaptureFrom = m.To
	}
	return res
}

// ApplyMove validates m against the legal move set before executing it.
func ApplyMove(b Board, m Move, side Side, mustCaptureFrom Square, v Variant) (MoveResult, error) {
	legal := generateMoves(&b, side, mustCaptureFrom, v)
	if !Contains(legal, m) {
		return MoveResult{}, fmt.Errorf("%w: %s for %s", ErrInvalidMove, m, side)
	}
	return PerformMove(b, m, side, v), nil
}

// canCaptureFrom returns true if the piece on sq has at least one capture.
func canCaptureFrom(b *Board, sq Square, v Variant) bool {
	for _, m := range appendPieceMoves(nil, b, sq, v) {
		if m.Capture {
			return true
		}
	}
	return false
}
