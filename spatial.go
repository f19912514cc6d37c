package naadsm

import "math"

// SpatialIndex is the narrow interface the airborne-spread and
// ring-destruction modules consume for radius queries (spec §1 treats the
// spatial index itself as an external collaborator this core only
// depends on through this seam).
type SpatialIndex interface {
	Build(herds []*Herd)
	// Within returns the IDs of every herd within radius of (x,y),
	// inclusive, in unspecified order.
	Within(x, y, radius float64) []int
}

// BruteForceIndex is the default SpatialIndex: a flat O(n) scan. It ships
// as this core's reference implementation so the engine runs standalone
// without a real spatial-index collaborator wired in; a production
// deployment is expected to substitute a quadtree or R-tree.
type BruteForceIndex struct {
	herds []*Herd
}

func NewBruteForceIndex() *BruteForceIndex { return &BruteForceIndex{} }

func (b *BruteForceIndex) Build(herds []*Herd) {
	b.herds = herds
}

func (b *BruteForceIndex) Within(x, y, radius float64) []int {
	var out []int
	for _, h := range b.herds {
		dx, dy := h.X-x, h.Y-y
		if math.Sqrt(dx*dx+dy*dy) <= radius {
			out = append(out, h.ID)
		}
	}
	return out
}
