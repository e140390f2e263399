package board

import (
	"fmt"
	"strings"
)

// Variant selects the rule set.
type Variant uint8

const (
	Turkish  Variant = iota // orthogonal geometry, mandatory capture
	Spanish                 // diagonal geometry, mandatory capture
	Moroccan                // diagonal geometry, optional capture
)

// Variants lists every supported variant.
var Variants = []Variant{Turkish, Spanish, Moroccan}

// Geometry is the set of directions pieces move along.
type Geometry uint8

const (
	Orthogonal Geometry = iota
	Diagonal
)

// Geometry returns the movement geometry of the variant.
func (v Variant) Geometry() Geometry {
	switch v {
	case Turkish:
		return Orthogonal
	case Spanish, Moroccan:
		return Diagonal
	}
	panic(fmt.Sprintf("board: unknown variant %d", v))
}

// CaptureMandatory reports whether an available capture must be played.
func (v Variant) CaptureMandatory() bool {
	switch v {
	case Turkish, Spanish:
		return true
	case Moroccan:
		return false
	}
	panic(fmt.Sprintf("board: unknown variant %d", v))
}

// String returns the lowercase variant name.
func (v Variant) String() string {
	switch v {
	case Turkish:
		return "turkish"
	case Spanish:
		return "spanish"
	case Moroccan:
		return "moroccan"
	default:
		return "unknown"
	}
}

// ParseVariant parses a variant name, case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "turkish":
		return Turkish, nil
	case "spanish", "andalusian":
		return Spanish, nil
	case "moroccan":
		return Moroccan, nil
	}
	return Turkish, fmt.Errorf("%w: %q", ErrInvalidVariant, s)
}

// Setup selects the initial piece placement.
type Setup uint8

const (
	Standard      Setup = iota // full rows, Turkish only
	DiagonalSetup              // dark cells, three rows per side
)

// String returns the lowercase setup name.
func (s Setup) String() string {
	if s == Standard {
		return "standard"
	}
	return "diagonal"
}

// ParseSetup parses a setup name, case-insensitively.
func ParseSetup(s string) (Setup, error) {
	switch strings.ToLower(s) {
	case "standard":
		return Standard, nil
	case "diagonal":
		return DiagonalSetup, nil
	}
	return Standard, fmt.Errorf("%w: %q", ErrInvalidSetup, s)
}

// Direction is a unit step (row delta, column delta).
type Direction struct {
	DR, DC int
}

var (
	up    = Direction{-1, 0}
	down  = Direction{1, 0}
	left  = Direction{0, -1}
	right = Direction{0, 1}

	upLeft    = Direction{-1, -1}
	upRight   = Direction{-1, 1}
	downLeft  = Direction{1, -1}
	downRight = Direction{1, 1}

	orthogonalDirs = [4]Direction{up, down, left, right}
	diagonalDirs   = [4]Direction{upLeft, upRight, downLeft, downRight}

	// Man directions per geometry, indexed by side.
	orthogonalManDirs = [2][]Direction{
		White: {up, left, right},
		Black: {down, left, right},
	}
	diagonalManDirs = [2][]Direction{
		White: {upLeft, upRight},
		Black: {downLeft, downRight},
	}
)

// kingDirections returns the sliding directions for kings of the geometry.
func (g Geometry) kingDirections() []Direction {
	if g == Orthogonal {
		return orthogonalDirs[:]
	}
	return diagonalDirs[:]
}

// manDirections returns the step directions for men of the given side.
func (g Geometry) manDirections(s Side) []Direction {
	if g == Orthogonal {
		return orthogonalManDirs[s]
	}
	return diagonalManDirs[s]
}
