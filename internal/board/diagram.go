package board

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseDiagram builds a board from eight rows of eight cells, top row first.
// Rows are separated by '/' or whitespace; cells are '.' (empty), 'w'/'b'
// (men) and 'W'/'B' (kings).
//
//	"......../......../......../...b..../...w..../......../......../........"
func ParseDiagram(s string) (Board, error) {
	var b Board

	rows := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
	if len(rows) != Size {
		return b, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidDiagram, Size, len(rows))
	}

	for row, line := range rows {
		if len(line) != Size {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrInvalidDiagram, row, len(line))
		}
		for col := 0; col < Size; col++ {
			p, ok := pieceFromChar(line[col])
			if !ok {
				return b, fmt.Errorf("%w: bad cell %q at %s", ErrInvalidDiagram, line[col], NewSquare(row, col))
			}
			b.cells[row][col] = p
		}
	}
	return b, nil
}

// MustParseDiagram is like ParseDiagram but panics on error. For tests and
// fixed positions.
func MustParseDiagram(s string) Board {
	b, err := ParseDiagram(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Diagram returns the board in ParseDiagram's compact '/'-separated form.
func (b Board) Diagram() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		for col := 0; col < Size; col++ {
			sb.WriteString(b.cells[row][col].String())
		}
	}
	return sb.String()
}
