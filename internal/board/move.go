package board

// Move is a single atomic transition of one piece. Captured is NoSquare
// unless Capture is set.
type Move struct {
	From     Square
	To       Square
	Capture  bool
	Captured Square
	Promotes bool
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare, Captured: NoSquare}

// IsQuiet returns true if the move neither captures nor promotes.
func (m Move) IsQuiet() bool {
	return !m.Capture && !m.Promotes
}

// ID returns a compact from/to identity (0..4095) used by move-ordering tables.
func (m Move) ID() int {
	return m.From.Index()<<6 | m.To.Index()
}

// SameSquares reports whether two moves share origin and destination.
func (m Move) SameSquares(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// String returns the move in coordinate form, e.g. "c3-d4" or "c3xe5".
func (m Move) String() string {
	if m.From == NoSquare {
		return "0000"
	}
	sep := "-"
	if m.Capture {
		sep = "x"
	}
	return m.From.String() + sep + m.To.String()
}

// Contains returns true if moves contains m.
func Contains(moves []Move, m Move) bool {
	for _, x := range moves {
		if x == m {
			return true
		}
	}
	return false
}
