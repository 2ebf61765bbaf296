// Package wheel implements the betting wheel game: one bet per player per
// round across five bet families, a 37-pocket draw, and probability-weighted
// payout resolution in drink units.
package wheel

// Pockets is the number of wheel pockets, numbered 0..36.
const Pockets = 37

// Color of a pocket. Zero is its own color and counts as neither even nor
// odd for betting purposes.
type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

// redPockets is the fixed 18-member red set; the remaining non-zero pockets
// are black.
var redPockets = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// ColorOf derives the color of a drawn pocket.
func ColorOf(pocket int) Color {
	switch {
	case pocket == 0:
		return Green
	case redPockets[pocket]:
		return Red
	default:
		return Black
	}
}

// Layout is the physical ordering of pockets around a European wheel. It is
// used only for visual placement; outcome logic never consults it.
var Layout = [Pockets]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8,
	23, 10, 5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12,
	35, 3, 26,
}
