package board

import "errors"

var (
	ErrInvalidMove    = errors.New("invalid move")
	ErrInvalidSquare  = errors.New("invalid square")
	ErrInvalidSide    = errors.New("invalid side")
	ErrInvalidVariant = errors.New("invalid variant")
	ErrInvalidSetup   = errors.New("invalid setup")
	ErrInvalidDiagram = errors.New("invalid board diagram")
)
