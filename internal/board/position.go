package board

import "strings"

// Board is an 8x8 grid of cells. It is a value type: assigning or passing a
// Board copies it, so every executed move yields an independent snapshot.
type Board struct {
	cells [Size][Size]Piece
}

// NewBoard creates the initial position for the variant and setup.
//
// Turkish with the standard setup fills every cell of rows 1-2 (Black) and
// 5-6 (White). Every other combination fills only dark cells of rows 0-2
// (Black) and 5-7 (White).
func NewBoard(v Variant, s Setup) Board {
	var b Board

	if v == Turkish && s == Standard {
		for col := 0; col < Size; col++ {
			for _, row := range [...]int{1, 2} {
				b.cells[row][col] = BlackMan
			}
			for _, row := range [...]int{5, 6} {
				b.cells[row][col] = WhiteMan
			}
		}
		return b
	}

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if (row+col)%2 == 0 {
				continue
			}
			switch {
			case row <= 2:
				b.cells[row][col] = BlackMan
			case row >= 5:
				b.cells[row][col] = WhiteMan
			}
		}
	}
	return b
}

// At returns the piece at sq, or NoPiece if the cell is empty or off-board.
func (b *Board) At(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b.cells[sq.Row][sq.Col]
}

// IsEmpty returns true if sq is on the board and holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return sq.IsValid() && b.cells[sq.Row][sq.Col] == NoPiece
}

// With returns a copy of the board with p placed on sq (NoPiece clears it).
func (b Board) With(sq Square, p Piece) Board {
	b.cells[sq.Row][sq.Col] = p
	return b
}

// set places a piece in place; used only on boards owned by the caller.
func (b *Board) set(sq Square, p Piece) {
	b.cells[sq.Row][sq.Col] = p
}

// Count returns the number of pieces owned by side.
func (b *Board) Count(side Side) int {
	n := 0
	for row := range b.cells {
		for _, p := range b.cells[row] {
			if p != NoPiece && p.Owner() == side {
				n++
			}
		}
	}
	return n
}

// Squares returns the squares holding pieces of side, in row-major order.
func (b *Board) Squares(side Side) []Square {
	var out []Square
	for row := range b.cells {
		for col, p := range b.cells[row] {
			if p != NoPiece && p.Owner() == side {
				out = append(out, NewSquare(row, col))
			}
		}
	}
	return out
}

// String returns an ASCII diagram with rank and file labels.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		sb.WriteByte('8' - byte(row))
		sb.WriteByte(' ')
		for col := 0; col < Size; col++ {
			sb.WriteString(b.cells[row][col].String())
			if col < Size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
