package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// squareLattice returns a perfectly periodic n x n grid of unit spacing:
// every site's Voronoi cell under the standard (unweighted) diagram is
// exactly the unit square around it, so every cell has four vertices.
func squareLattice(n int) (x, y []float64, L float64) {
	L = float64(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x = append(x, -L/2+float64(j)+0.5)
			y = append(y, -L/2+float64(i)+0.5)
		}
	}
	return x, y, L
}

func TestPlanarTessellatorSquareLatticeFourVertices(t *testing.T) {
	x, y, L := squareLattice(6)
	r := make([]float64, len(x))
	pt := NewPlanarTessellator()
	cells, err := pt.Tessellate(x, y, r, L/2, false)
	assert.NoError(t, err)
	assert.Len(t, cells, len(x))
	for _, c := range cells {
		assert.Equal(t, 4, c.VertexCount)
	}
}

// triangularLattice returns a perfectly periodic row-offset ("brick")
// lattice: rows alternate by half a column spacing, so every site's six
// nearest neighbours are its two same-row neighbours plus two in the row
// above and two in the row below, giving a hexagonal Voronoi cell at every
// site. Both the column spacing (L/cols) and row spacing (L/rows) divide L
// exactly, so the lattice tiles the periodic cell with no seam, and rows is
// kept even so alternating row parity lines up across the periodic
// boundary.
func triangularLattice(rows, cols int) (x, y []float64, L float64) {
	L = float64(rows * cols)
	a := L / float64(cols)
	dy := L / float64(rows)
	for j := 0; j < rows; j++ {
		rowOffset := 0.0
		if j%2 == 1 {
			rowOffset = a / 2
		}
		for i := 0; i < cols; i++ {
			x = append(x, -L/2+float64(i)*a+rowOffset+a/2)
			y = append(y, -L/2+float64(j)*dy+dy/2)
		}
	}
	return x, y, L
}

func TestPlanarTessellatorTriangularLatticeSixVertices(t *testing.T) {
	x, y, L := triangularLattice(8, 7)
	r := make([]float64, len(x))
	pt := NewPlanarTessellator()
	cells, err := pt.Tessellate(x, y, r, L/2, false)
	assert.NoError(t, err)
	assert.Len(t, cells, len(x))
	for _, c := range cells {
		assert.Equal(t, 6, c.VertexCount)
	}
}

func TestPlanarTessellatorVertexCountsMatchNeighbourReports(t *testing.T) {
	x, y, L := squareLattice(6)
	r := make([]float64, len(x))
	pt := NewPlanarTessellator()
	cells, err := pt.Tessellate(x, y, r, L/2, false)
	assert.NoError(t, err)
	for _, c := range cells {
		assert.Len(t, c.NeighbourVertexCounts, len(c.NeighbourIDs))
		for k, j := range c.NeighbourIDs {
			assert.Equal(t, cells[j].VertexCount, c.NeighbourVertexCounts[k])
		}
	}
}

func TestPlanarTessellatorRadicalMatchesStandardWhenRadiiEqual(t *testing.T) {
	x, y, L := squareLattice(6)
	r := make([]float64, len(x))
	for i := range r {
		r[i] = 0.3
	}
	pt := NewPlanarTessellator()
	standard, err := pt.Tessellate(x, y, r, L/2, false)
	assert.NoError(t, err)
	radical, err := pt.Tessellate(x, y, r, L/2, true)
	assert.NoError(t, err)
	for i := range standard {
		assert.Equal(t, standard[i].VertexCount, radical[i].VertexCount)
	}
}
