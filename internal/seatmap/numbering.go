package seatmap

import "github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"

// SeatNumber converts a raw column into the printed seat number of a block
// spanning fromColumn..fromColumn+width-1.
//
//	left   - 1-based ascending from the left edge.
//	right  - 1-based ascending from the right edge.
//	center - the middle seat is 1 and numbers radiate outward, odd numbers
//	         to the right and even numbers to the left.  Even widths have no
//	         middle seat: the innermost right seat is 1 and the innermost
//	         left seat is 2.
//
// Unknown directions number like left.
func SeatNumber(dir model.Direction, column, fromColumn, width int) int {
	pos := column - fromColumn // 0-based position in the block
	switch dir {
	case model.DirectionRight:
		return width - (pos + 1) + 1
	case model.DirectionCenter:
		return centerNumber(pos, width)
	default:
		return pos + 1
	}
}

func centerNumber(pos, width int) int {
	if width <= 0 {
		return pos + 1
	}
	if width%2 == 1 {
		mid := width / 2
		switch {
		case pos == mid:
			return 1
		case pos < mid:
			return (mid - pos) * 2
		default:
			return (pos-mid)*2 + 1
		}
	}
	half := width / 2
	if pos < half {
		return (half-1-pos)*2 + 2
	}
	return (pos-half)*2 + 1
}
