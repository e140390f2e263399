package board

// KeySize is the length of a position key: side, chain square, 64 cells.
const KeySize = 2 + Size*Size

// Key is the canonical encoding of a search position: side to move, pending
// chain-capture square and the owner/rank of every cell. Two positions share
// a Key exactly when they are the same position.
type Key [KeySize]byte

// noChainByte encodes NoSquare in a Key.
const noChainByte = 0xFF

// Key returns the canonical key of b with side to move and chain state.
func (b *Board) Key(side Side, mustCaptureFrom Square) Key {
	var k Key
	k[0] = byte(side)
	k[1] = noChainByte
	if mustCaptureFrom.IsValid() {
		k[1] = byte(mustCaptureFrom.Index())
	}
	i := 2
	for row := range b.cells {
		for _, p := range b.cells[row] {
			k[i] = byte(p)
			i++
		}
	}
	return k
}
