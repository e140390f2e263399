package board

import "fmt"

// Side represents one of the two players.
type Side uint8

const (
	White Side = iota
	Black
)

// Other returns the opposing side.
func (s Side) Other() Side {
	return s ^ 1
}

// Forward returns the row direction in which the side's men advance.
func (s Side) Forward() int {
	if s == White {
		return -1
	}
	return 1
}

// PromotionRow returns the far row on which the side's men are crowned.
func (s Side) PromotionRow() int {
	if s == White {
		return 0
	}
	return Size - 1
}

// String returns the lowercase side name.
func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// ParseSide parses "white"/"black" (or "w"/"b").
func ParseSide(s string) (Side, error) {
	switch s {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

// Rank distinguishes men from kings.
type Rank uint8

const (
	Man Rank = iota
	King
)

// String returns the rank name.
func (r Rank) String() string {
	if r == King {
		return "King"
	}
	return "Man"
}

// Piece combines owner and rank into a single cell value.
// Encoded as: 1 + rank + owner*2, with 0 reserved for an empty cell.
type Piece uint8

const (
	NoPiece   Piece = 0
	WhiteMan  Piece = 1
	WhiteKing Piece = 2
	BlackMan  Piece = 3
	BlackKing Piece = 4
)

// NewPiece creates a Piece from owner and rank.
func NewPiece(owner Side, r Rank) Piece {
	return Piece(1 + uint8(r) + uint8(owner)*2)
}

// Owner returns the side owning the piece. Undefined for NoPiece.
func (p Piece) Owner() Side {
	return Side((p - 1) / 2)
}

// Rank returns the piece rank. Undefined for NoPiece.
func (p Piece) Rank() Rank {
	return Rank((p - 1) % 2)
}

// IsKing returns true for crowned pieces.
func (p Piece) IsKing() bool {
	return p == WhiteKing || p == BlackKing
}

// Crowned returns the king of the same owner.
func (p Piece) Crowned() Piece {
	return NewPiece(p.Owner(), King)
}

// String returns the diagram character: w/b for men, W/B for kings, '.' for empty.
func (p Piece) String() string {
	return string(pieceChars[p])
}

var pieceChars = [...]byte{'.', 'w', 'W', 'b', 'B'}

// pieceFromChar converts a diagram character to a Piece.
func pieceFromChar(c byte) (Piece, bool) {
	switch c {
	case '.', '-':
		return NoPiece, true
	case 'w':
		return WhiteMan, true
	case 'W':
		return WhiteKing, true
	case 'b':
		return BlackMan, true
	case 'B':
		return BlackKing, true
	}
	return NoPiece, false
}
