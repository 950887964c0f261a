package voronoi

// boundaryOwner marks an edge still belonging to the initial bounding
// square, i.e. not yet cut by any real neighbour.
const boundaryOwner = -1

// point is a 2D vertex of a cell polygon, relative to the site currently
// being tessellated.
type point struct{ x, y float64 }

// vertex pairs a polygon vertex with the owner (neighbour particle index)
// of the edge arriving at it.
type vertex struct {
	p        point
	inOwner  int
}

// PlanarTessellator computes 2D Voronoi/power diagrams for a periodic
// square cell by clipping, for every site, a large bounding square against
// the perpendicular (or radical) bisector half-plane of every candidate
// neighbour -- including that neighbour's surrounding periodic images.
// Grounded on the half-edge vocabulary (vertices/edges/faces) of a
// reference divide-and-conquer Voronoi implementation; see DESIGN.md.
type PlanarTessellator struct {
	// BoundMargin scales the initial bounding square relative to the
	// cell's half-length. Candidates up to BoundMargin*halfCellLen*2 away
	// are considered; the default (set by NewPlanarTessellator) is ample
	// for any configuration denser than a dilute gas.
	BoundMargin float64
}

// NewPlanarTessellator returns a PlanarTessellator with a default bounding
// margin.
func NewPlanarTessellator() *PlanarTessellator {
	return &PlanarTessellator{BoundMargin: 4.0}
}

// Tessellate implements Tessellator.
func (pt *PlanarTessellator) Tessellate(x, y, r []float64, halfCellLen float64, radical bool) ([]Cell, error) {
	n := len(x)
	L := 2 * halfCellLen
	margin := pt.BoundMargin
	if margin <= 0 {
		margin = 4.0
	}
	W := margin * halfCellLen

	vertexCounts := make([]int, n)
	neighbourIDs := make([][]int, n)

	shifts := []float64{-L, 0, L}

	for i := 0; i < n; i++ {
		wi := 0.0
		if radical {
			wi = r[i] * r[i]
		}

		verts := []vertex{
			{point{-W, -W}, boundaryOwner},
			{point{W, -W}, boundaryOwner},
			{point{W, W}, boundaryOwner},
			{point{-W, W}, boundaryOwner},
		}

		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			wj := 0.0
			if radical {
				wj = r[j] * r[j]
			}
			dx0 := x[j] - x[i]
			dy0 := y[j] - y[i]
			for _, sx := range shifts {
				for _, sy := range shifts {
					dx := dx0 + sx
					dy := dy0 + sy
					distSq := dx*dx + dy*dy
					if distSq == 0 || distSq > (2*W)*(2*W) {
						continue
					}
					c := (distSq - wj + wi) / 2
					verts = clip(verts, point{dx, dy}, c, j)
					if len(verts) == 0 {
						break
					}
				}
			}
		}

		// Where three or more bisectors meet at one point (a square-lattice
		// corner, say), clipping leaves coincident vertices joined by a
		// zero-length edge; drop the later vertex of each such pair so that
		// edge's owner is not counted as a neighbour.
		eps := 1e-9 * halfCellLen
		coincide := func(a, b point) bool {
			dx, dy := a.x-b.x, a.y-b.y
			return dx*dx+dy*dy <= eps*eps
		}
		kept := make([]vertex, 0, len(verts))
		for _, v := range verts {
			if len(kept) == 0 || !coincide(kept[len(kept)-1].p, v.p) {
				kept = append(kept, v)
			}
		}
		for len(kept) > 1 && coincide(kept[len(kept)-1].p, kept[0].p) {
			kept = kept[1:]
		}
		verts = mergeCollinearOwners(kept)

		for _, v := range verts {
			if v.inOwner == boundaryOwner {
				return nil, &ErrInconsistentCell{Particle: i}
			}
		}

		vertexCounts[i] = len(verts)
		ids := make([]int, len(verts))
		for k, v := range verts {
			ids[k] = v.inOwner
		}
		neighbourIDs[i] = ids
	}

	cells := make([]Cell, n)
	for i := 0; i < n; i++ {
		nbrCounts := make([]int, len(neighbourIDs[i]))
		for k, j := range neighbourIDs[i] {
			nbrCounts[k] = vertexCounts[j]
		}
		cells[i] = Cell{
			VertexCount:           vertexCounts[i],
			NeighbourIDs:          neighbourIDs[i],
			NeighbourVertexCounts: nbrCounts,
		}
	}
	return cells, nil
}

// clip performs one Sutherland-Hodgman pass, keeping the half-plane
// {x : x.p <= c} (the side containing the site being tessellated), and
// tagging the new bridging edge, if any, with newOwner.
func clip(verts []vertex, p point, c float64, newOwner int) []vertex {
	n := len(verts)
	if n == 0 {
		return nil
	}
	inside := func(v point) bool {
		return v.x*p.x+v.y*p.y <= c
	}
	intersect := func(a, b point) point {
		da := a.x*p.x + a.y*p.y - c
		db := b.x*p.x + b.y*p.y - c
		t := da / (da - db)
		return point{a.x + t*(b.x-a.x), a.y + t*(b.y-a.y)}
	}

	out := make([]vertex, 0, n+2)
	for i := 0; i < n; i++ {
		curr := verts[i]
		next := verts[(i+1)%n]
		currIn := inside(curr.p)
		nextIn := inside(next.p)

		if currIn {
			out = append(out, curr)
			if !nextIn {
				out = append(out, vertex{intersect(curr.p, next.p), next.inOwner})
			}
		} else if nextIn {
			out = append(out, vertex{intersect(curr.p, next.p), newOwner})
		}
	}
	return out
}

// mergeCollinearOwners collapses consecutive polygon edges that share the
// same owner (artefacts of clipping the same neighbour's bisector in more
// than one pass, e.g. two periodic images) into a single edge, so vertex
// count reflects distinct neighbours rather than clip-order artefacts.
func mergeCollinearOwners(verts []vertex) []vertex {
	n := len(verts)
	if n < 3 {
		return verts
	}
	out := make([]vertex, 0, n)
	for i := 0; i < n; i++ {
		prev := verts[(i-1+n)%n]
		curr := verts[i]
		if curr.inOwner == prev.inOwner {
			continue
		}
		out = append(out, curr)
	}
	if len(out) < 3 {
		return verts
	}
	return out
}
