package board

import (
	"fmt"
	"strings"
)

// Notation formats a move for the move history: "from-to" or "fromxto",
// suffixed with " (K)" when the moved piece is a king after the move.
func Notation(m Move, moved Piece) string {
	s := m.String()
	if moved.IsKing() {
		s += " (K)"
	}
	return s
}

// ParseMoveText resolves "c3-d4" or "c3xe5" against the legal moves.
// The separator is optional; origin and destination identify the move.
func ParseMoveText(s string, legal []Move) (Move, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "(K)"))
	s = strings.NewReplacer("-", "", "x", "", ":", "").Replace(s)
	if len(s) != 4 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	for _, m := range legal {
		if m.From == from && m.To == to {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s%s is not legal here", ErrInvalidMove, from, to)
}
