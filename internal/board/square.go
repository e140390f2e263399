// Package board implements the dama board model and rules engine.
package board

import "fmt"

// Size is the board dimension shared by every variant.
const Size = 8

// Square identifies a cell by row and column, both in [0, Size).
// Row 0 is the top of the board (Black's home side); rendered as rank 8.
type Square struct {
	Row int8
	Col int8
}

// NoSquare marks the absence of a square (e.g. no pending chain capture).
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square{Row: int8(row), Col: int8(col)}
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// IsDark returns true for the cells used by the diagonal setup.
func (sq Square) IsDark() bool {
	return (sq.Row+sq.Col)%2 == 1
}

// Index returns the square as 0..63 in row-major order.
func (sq Square) Index() int {
	return int(sq.Row)*Size + int(sq.Col)
}

// Offset returns the square dr rows and dc columns away. The result may be off-board.
func (sq Square) Offset(dr, dc int) Square {
	return Square{Row: sq.Row + int8(dr), Col: sq.Col + int8(dc)}
}

// String returns the algebraic name of the square (e.g. "a8" for row 0, col 0).
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col, '8'-sq.Row)
}

// ParseSquare parses algebraic notation (e.g. "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := int(s[0]) - 'a'
	row := '8' - int(s[1])

	sq := NewSquare(row, col)
	if col < 0 || col >= Size || row < 0 || row >= Size {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}
