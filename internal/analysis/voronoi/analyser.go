// Package voronoi consumes a geometry Tessellator and accumulates, per
// snapshot and in aggregate, the Voronoi cell-size distribution and the
// cell-adjacency-by-degree matrix, deriving their moments and the degree
// assortativity of the resulting network.
package voronoi

import (
	"strconv"

	lvlathgraph "github.com/katalvlaran/lvlath/graph/core"

	"github.com/dormrod/hard-disk-monte-carlo/internal/configuration"
	geomvoronoi "github.com/dormrod/hard-disk-monte-carlo/internal/voronoi"
)

// MaxVertices bounds the cell-size distribution and adjacency matrix: no
// cell is expected to have 21 or more Voronoi vertices in a hard-disk
// packing, so vertex counts at or above it are folded into the last bin
// (MaxVertices-1).
const MaxVertices = 21

// Aggregator accumulates cell-size and cell-adjacency distributions across
// snapshots for one diagram type (standard or radical).
type Aggregator struct {
	Tessellator geomvoronoi.Tessellator
	Radical     bool

	Sizes []int   // len MaxVertices
	Adjs  [][]int // MaxVertices x MaxVertices, dense
}

// NewAggregator allocates an Aggregator backed by t, for the standard
// Voronoi diagram (radical=false) or the power diagram (radical=true).
func NewAggregator(t geomvoronoi.Tessellator, radical bool) *Aggregator {
	adjs := make([][]int, MaxVertices)
	for i := range adjs {
		adjs[i] = make([]int, MaxVertices)
	}
	return &Aggregator{
		Tessellator: t,
		Radical:     radical,
		Sizes:       make([]int, MaxVertices),
		Adjs:        adjs,
	}
}

// Snapshot is the per-snapshot network-analysis result: a normalised
// cell-size distribution, its first three moments, and the degree
// assortativity of the cell-adjacency network.
type Snapshot struct {
	SizeDist      [MaxVertices]float64
	K1, K2, K3    float64
	Assortativity float64
}

// Sample tessellates cfg, folds the result into the running aggregates,
// and returns this snapshot's own network analysis.
func (a *Aggregator) Sample(cfg *configuration.Configuration) (Snapshot, error) {
	cells, err := a.Tessellator.Tessellate(cfg.X, cfg.Y, cfg.R, cfg.CellLen_2, a.Radical)
	if err != nil {
		return Snapshot{}, err
	}

	sizeDist := make([]int, MaxVertices)
	adjDist := make([][]int, MaxVertices)
	for i := range adjDist {
		adjDist[i] = make([]int, MaxVertices)
	}

	g := lvlathgraph.NewGraph(false, true)
	for i, cell := range cells {
		k := clampVertexCount(cell.VertexCount)
		id := strconv.Itoa(i)
		g.AddVertex(&lvlathgraph.Vertex{
			ID:       id,
			Metadata: map[string]interface{}{"vertices": k},
		})
	}
	for i, cell := range cells {
		sizeDist[clampVertexCount(cell.VertexCount)]++
		for idx, j := range cell.NeighbourIDs {
			if j <= i {
				continue // each undirected adjacency is added once
			}
			l := clampVertexCount(cell.NeighbourVertexCounts[idx])
			g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), int64(clampVertexCount(cell.VertexCount)*l))
		}
	}

	for _, e := range g.Edges() {
		kRaw, _ := e.From.Metadata["vertices"].(int)
		lRaw, _ := e.To.Metadata["vertices"].(int)
		adjDist[kRaw][lRaw]++
	}

	for k := 0; k < MaxVertices; k++ {
		a.Sizes[k] += sizeDist[k]
		for l := 0; l < MaxVertices; l++ {
			a.Adjs[k][l] += adjDist[k][l]
		}
	}

	return networkAnalysis(sizeDist, adjDist), nil
}

// Aggregate returns the network analysis of the running aggregates across
// every snapshot sampled so far.
func (a *Aggregator) Aggregate() Snapshot {
	return networkAnalysis(a.Sizes, a.Adjs)
}

func clampVertexCount(k int) int {
	if k < 0 {
		return 0
	}
	if k >= MaxVertices {
		return MaxVertices - 1
	}
	return k
}

// networkAnalysis computes the normalised size distribution, its moments,
// and the degree assortativity of sizes/adjs.
func networkAnalysis(sizes []int, adjs [][]int) Snapshot {
	var res Snapshot

	total := 0
	for _, s := range sizes {
		total += s
	}
	if total == 0 {
		return res
	}

	for k, s := range sizes {
		res.SizeDist[k] = float64(s) / float64(total)
	}
	for k, p := range res.SizeDist {
		fk := float64(k)
		res.K1 += fk * p
		res.K2 += fk * fk * p
		res.K3 += fk * fk * fk * p
	}

	adjTotal := 0
	for _, row := range adjs {
		for _, v := range row {
			adjTotal += v
		}
	}
	if adjTotal == 0 {
		return res
	}

	sumKL := 0.0
	for k, row := range adjs {
		for l, v := range row {
			sumKL += float64(k*l*v)
		}
	}

	denom := res.K1*res.K3 - res.K2*res.K2
	if denom != 0 {
		res.Assortativity = (res.K1*res.K1*sumKL/float64(adjTotal) - res.K2*res.K2) / denom
	}

	return res
}
