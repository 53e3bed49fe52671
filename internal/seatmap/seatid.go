package seatmap

import (
	"strconv"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// DefaultBlockLetter is used when a RowConfig does not name its block.
const DefaultBlockLetter = "A"

// ComposeID builds a seat identifier under the given scheme:
//
//	continuous  -> {prefix}-{row}{number}          e.g. VIP-C7
//	per_section -> {prefix}-{block}-{row}{number}  e.g. VIP-L-C7
func ComposeID(scheme model.NumberingScheme, prefix, block, row string, number int) string {
	n := strconv.Itoa(number)
	if scheme == model.NumberingContinuous {
		return prefix + "-" + row + n
	}
	if block == "" {
		block = DefaultBlockLetter
	}
	return prefix + "-" + block + "-" + row + n
}

// AlternateScheme returns the scheme whose id format is tried as a fallback.
func AlternateScheme(scheme model.NumberingScheme) model.NumberingScheme {
	if scheme == model.NumberingContinuous {
		return model.NumberingPerSection
	}
	return model.NumberingContinuous
}

// SeatIDs returns the primary and alternate identifiers of a seat.
//
// TODO: drop the alternate id once override feeds are normalized to the
// section's own numbering scheme.
func SeatIDs(scheme model.NumberingScheme, prefix, block, row string, number int) (string, string) {
	return ComposeID(scheme, prefix, block, row, number),
		ComposeID(AlternateScheme(scheme), prefix, block, row, number)
}
