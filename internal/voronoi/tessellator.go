// Package voronoi implements an external tessellator boundary: given
// particle positions and radii, report for each cell its vertex count and
// the vertex counts of its neighbours. No third-party periodic 2D
// Voronoi/power-diagram library ships anywhere in the reference corpus this
// module was grounded on, so PlanarTessellator below is a from-scratch
// implementation of that same interface rather than a wrapper around one.
package voronoi

import "fmt"

// Cell is one particle's tessellation result. NeighbourIDs and
// NeighbourVertexCounts are parallel: NeighbourIDs[k] is the particle index
// of the k-th Voronoi neighbour and NeighbourVertexCounts[k] is that
// neighbour's own vertex count.
type Cell struct {
	VertexCount           int
	NeighbourIDs          []int
	NeighbourVertexCounts []int
}

// Tessellator is the interface the Voronoi analyser consumes. An
// implementation may wrap any computational-geometry library exposing
// periodic 2D tessellation; it is never required to be PlanarTessellator.
type Tessellator interface {
	// Tessellate computes, for n particles at (x[i], y[i]) with radius
	// r[i] in a periodic square cell of half-length halfCellLen, the
	// standard Voronoi diagram (radical=false) or the power/radical
	// diagram weighted by r[i]^2 (radical=true).
	Tessellate(x, y, r []float64, halfCellLen float64, radical bool) ([]Cell, error)
}

// ErrInconsistentCell is returned when a cell's polygon still carries an
// untagged (box-boundary) edge after clipping against every candidate
// neighbour, meaning the candidate search radius was too small relative to
// the packing -- a configuration/tessellator mismatch rather than routine
// degenerate geometry.
type ErrInconsistentCell struct {
	Particle int
}

func (e *ErrInconsistentCell) Error() string {
	return fmt.Sprintf("voronoi: cell %d did not close against any candidate neighbour", e.Particle)
}
