// Package board knows the loop geometry: 40 cells with the goal at 39,
// drawn as a 10-wide serpentine grid. Pure rendering convention; the server
// owns all movement.
package board

const (
	// Cells is the loop length.
	Cells = 40
	// GridWidth is how many cells one drawn row holds.
	GridWidth = 10
)

// ValidPosition reports whether p is a legal cell index.
func ValidPosition(p int) bool {
	return p >= 0 && p < Cells
}

// RemainingSteps is the distance to the loop point: position 0 has 39 steps
// left, position 39 has none.
func RemainingSteps(position int) int {
	return Cells - 1 - position
}

// Wrap maps any step arithmetic back onto the loop, handling negatives.
func Wrap(position int) int {
	return ((position % Cells) + Cells) % Cells
}

// GridCoord places a cell on the serpentine grid: row-major, with odd rows
// running right-to-left.
func GridCoord(position int) (row, col int) {
	row = position / GridWidth
	col = position % GridWidth
	if row%2 == 1 {
		col = GridWidth - 1 - col
	}
	return row, col
}
