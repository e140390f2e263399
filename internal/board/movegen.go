package board

// MovesForPiece returns every move (walks and captures) of the piece on sq,
// ignoring the mandatory-capture policy. Empty if sq holds no piece.
func MovesForPiece(b Board, sq Square, v Variant) []Move {
	return appendPieceMoves(nil, &b, sq, v)
}

// GenerateMoves returns the legal moves for side.
//
// With mustCaptureFrom set, only the captures of that piece are legal (a chain
// capture in progress). Otherwise the moves of every piece of side are
// collected and, unless the variant leaves capturing optional, reduced to the
// captures whenever at least one exists.
func GenerateMoves(b Board, side Side, mustCaptureFrom Square, v Variant) []Move {
	return generateMoves(&b, side, mustCaptureFrom, v)
}

func generateMoves(b *Board, side Side, mustCaptureFrom Square, v Variant) []Move {
	if mustCaptureFrom.IsValid() {
		return filterCaptures(appendPieceMoves(nil, b, mustCaptureFrom, v))
	}

	moves := make([]Move, 0, 32)
	hasCapture := false
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.cells[row][col]
			if p == NoPiece || p.Owner() != side {
				continue
			}
			start := len(moves)
			moves = appendPieceMoves(moves, b, NewSquare(row, col), v)
			for _, m := range moves[start:] {
				if m.Capture {
					hasCapture = true
					break
				}
			}
		}
	}

	if hasCapture && v.CaptureMandatory() {
		return filterCaptures(moves)
	}
	return moves
}

// GenerateCaptures returns only the capturing subset of the legal moves.
func GenerateCaptures(b Board, side Side, mustCaptureFrom Square, v Variant) []Move {
	return filterCaptures(generateMoves(&b, side, mustCaptureFrom, v))
}

// HasLegalMoves returns true if side has any legal move with no chain pending.
func HasLegalMoves(b Board, side Side, v Variant) bool {
	for _, sq := range b.Squares(side) {
		if len(appendPieceMoves(nil, &b, sq, v)) > 0 {
			return true
		}
	}
	return false
}

// filterCaptures keeps capture moves, reusing the backing array.
func filterCaptures(moves []Move) []Move {
	out := moves[:0]
	for _, m := range moves {
		if m.Capture {
			out = append(out, m)
		}
	}
	return out
}

// appendPieceMoves appends the moves of the piece on sq to moves.
func appendPieceMoves(moves []Move, b *Board, sq Square, v Variant) []Move {
	p := b.At(sq)
	if p == NoPiece {
		return moves
	}

	g := v.Geometry()
	if p.IsKing() {
		return appendKingMoves(moves, b, sq, p, g.kingDirections())
	}
	return appendManMoves(moves, b, sq, p, g.manDirections(p.Owner()))
}

// appendManMoves generates single steps, then short jumps over an adjacent
// enemy, along the man's allowed directions. A man never moves backwards.
func appendManMoves(moves []Move, b *Board, sq Square, p Piece, dirs []Direction) []Move {
	owner := p.Owner()
	promoRow := int8(owner.PromotionRow())

	for _, d := range dirs {
		to := sq.Offset(d.DR, d.DC)
		if b.IsEmpty(to) {
			moves = append(moves, Move{
				From:     sq,
				To:       to,
				Captured: NoSquare,
				Promotes: to.Row == promoRow,
			})
		}
	}

	for _, d := range dirs {
		over := sq.Offset(d.DR, d.DC)
		landing := sq.Offset(2*d.DR, 2*d.DC)
		if !b.IsEmpty(landing) {
			continue
		}
		victim := b.At(over)
		if victim == NoPiece || victim.Owner() == owner {
			continue
		}
		moves = append(moves, Move{
			From:     sq,
			To:       landing,
			Capture:  true,
			Captured: over,
			Promotes: landing.Row == promoRow,
		})
	}
	return moves
}

// appendKingMoves generates, per direction, the sliding walks up to the first
// occupied cell and then the flying captures: the ray must meet exactly one
// enemy piece before any friendly piece, and every empty cell of the
// contiguous run beyond it is a landing square.
func appendKingMoves(moves []Move, b *Board, sq Square, p Piece, dirs []Direction) []Move {
	owner := p.Owner()

	for _, d := range dirs {
		cur := sq.Offset(d.DR, d.DC)
		for b.IsEmpty(cur) {
			moves = append(moves, Move{From: sq, To: cur, Captured: NoSquare})
			cur = cur.Offset(d.DR, d.DC)
		}

		// cur is now off-board or the first occupied cell on the ray.
		victim := b.At(cur)
		if victim == NoPiece || victim.Owner() == owner {
			continue
		}
		captured := cur
		for landing := cur.Offset(d.DR, d.DC); b.IsEmpty(landing); landing = landing.Offset(d.DR, d.DC) {
			moves = append(moves, Move{
				From:     sq,
				To:       landing,
				Capture:  true,
				Captured: captured,
			})
		}
	}
	return moves
}
