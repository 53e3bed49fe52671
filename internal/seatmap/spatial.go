package seatmap

import (
	"math"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// DefaultCellSize is the bucket edge length in world units.  It is larger
// than a seat diameter, so a seat covers at most four buckets.
const DefaultCellSize = 60.0

type cellKey struct {
	X int
	Y int
}

// SpatialIndex buckets seats into a uniform grid for hit-testing.  It is
// built once per seat list and never mutated; rebuild it when the seats are
// regenerated.
type SpatialIndex struct {
	cellSize    float64
	invCellSize float64
	seats       []model.Seat
	cells       map[cellKey][]int
}

// BuildIndex indexes seats by position.  Each seat is registered in every
// bucket its hit circle overlaps so a query only has to inspect the bucket
// that contains the point.  A non-positive cellSize selects DefaultCellSize.
func BuildIndex(seats []model.Seat, cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	idx := &SpatialIndex{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		seats:       seats,
		cells:       make(map[cellKey][]int),
	}
	for i := range seats {
		s := &seats[i]
		minX, minY := idx.key(s.X-s.Radius, s.Y-s.Radius)
		maxX, maxY := idx.key(s.X+s.Radius, s.Y+s.Radius)
		for cx := minX; cx <= maxX; cx++ {
			for cy := minY; cy <= maxY; cy++ {
				k := cellKey{X: cx, Y: cy}
				idx.cells[k] = append(idx.cells[k], i)
			}
		}
	}
	return idx
}

func (idx *SpatialIndex) key(x, y float64) (int, int) {
	return int(math.Floor(x * idx.invCellSize)), int(math.Floor(y * idx.invCellSize))
}

// Query returns the index of the nearest seat whose hit circle contains the
// world point, or -1.  Ties go to the seat generated first.
func (idx *SpatialIndex) Query(x, y float64) int {
	if idx == nil {
		return -1
	}
	cx, cy := idx.key(x, y)
	best, bestDist := -1, math.Inf(1)
	for _, i := range idx.cells[cellKey{X: cx, Y: cy}] {
		s := &idx.seats[i]
		dx, dy := x-s.X, y-s.Y
		d := dx*dx + dy*dy
		if d > s.Radius*s.Radius {
			continue
		}
		if d < bestDist || (d == bestDist && i < best) {
			best, bestDist = i, d
		}
	}
	return best
}

// Len returns the number of non-empty buckets.
func (idx *SpatialIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.cells)
}
