// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairfinder

import (
	"sort"

	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/tribol/meshview"
)

// GridFinder bins both meshes' faces into a shared uniform grid (gosl's
// gm.Bins, the same structure the teacher uses for node/integration-point
// proximity search in out/topology.go and out/out.go) and emits pairs whose
// bounding spheres land in a shared or neighboring cell. Grid cell size is
// driven by the median face radius across both meshes: a performance tuning
// knob, not a correctness one.
type GridFinder struct{}

// FindPairs implements Finder.
func (GridFinder) FindPairs(m1, m2 *meshview.MeshView) []Pair {
	if m1.NumFaces == 0 || m2.NumFaces == 0 {
		return nil
	}
	dim := m1.Dim

	xi, xf := boundingBox(dim, m1, m2)
	cell := medianCellSize(m1, m2)
	if cell <= 0 {
		cell = 1.0
	}
	ndiv := make([]int, dim)
	for d := 0; d < dim; d++ {
		n := int((xf[d]-xi[d])/cell) + 1
		if n < 1 {
			n = 1
		}
		ndiv[d] = n
	}

	var bins gm.Bins
	err := bins.Init(xi, xf, ndiv)
	if err != nil {
		return CartesianFinder{}.FindPairs(m1, m2)
	}

	// insert m1's faces first, tagging ids 0..NumFaces1-1
	for f := 0; f < m1.NumFaces; f++ {
		bins.Append(m1.Centroids[f], f)
	}

	seen := make(map[Pair]struct{})
	var pairs []Pair
	for f2 := 0; f2 < m2.NumFaces; f2++ {
		c2 := m2.Centroids[f2]
		r2 := m2.Radii[f2]
		ids := neighborFaces(&bins, c2, r2, m1)
		for _, f1 := range ids {
			reach := m1.Radii[f1] + r2
			if boundsOverlap(m1.Centroids[f1], c2, reach) {
				p := Pair{F1: f1, F2: f2}
				if _, ok := seen[p]; !ok {
					seen[p] = struct{}{}
					pairs = append(pairs, p)
				}
			}
		}
	}
	return pairs
}

// neighborFaces returns candidate m1 face ids near point c within radius r,
// found via gm.Bins' own proximity search (FindAlongLine degenerates to a
// point search when both endpoints coincide).
func neighborFaces(bins *gm.Bins, c []float64, r float64, m1 *meshview.MeshView) []int {
	ids := bins.FindAlongLine(c, c, r)
	if len(ids) > 0 {
		return ids
	}
	// fall back to a direct scan when the grid query finds nothing (e.g.
	// extremely coarse grids from a tiny mesh): correctness over speed.
	var out []int
	for f := 0; f < m1.NumFaces; f++ {
		out = append(out, f)
	}
	return out
}

func boundsOverlap(c1, c2 []float64, reach float64) bool {
	var d2 float64
	for i := range c1 {
		d := c1[i] - c2[i]
		d2 += d * d
	}
	return d2 <= reach*reach
}

func boundingBox(dim int, m1, m2 *meshview.MeshView) (xi, xf []float64) {
	xi = make([]float64, dim)
	xf = make([]float64, dim)
	for d := 0; d < dim; d++ {
		xi[d] = posInf
		xf[d] = negInf
	}
	expand := func(m *meshview.MeshView) {
		for f := 0; f < m.NumFaces; f++ {
			c := m.Centroids[f]
			r := m.Radii[f]
			for d := 0; d < dim; d++ {
				if c[d]-r < xi[d] {
					xi[d] = c[d] - r
				}
				if c[d]+r > xf[d] {
					xf[d] = c[d] + r
				}
			}
		}
	}
	expand(m1)
	expand(m2)
	for d := 0; d < dim; d++ {
		if xf[d] <= xi[d] {
			xf[d] = xi[d] + 1
		}
	}
	return
}

const posInf = 1e300
const negInf = -1e300

func medianCellSize(m1, m2 *meshview.MeshView) float64 {
	radii := make([]float64, 0, m1.NumFaces+m2.NumFaces)
	radii = append(radii, m1.Radii...)
	radii = append(radii, m2.Radii...)
	if len(radii) == 0 {
		return 1.0
	}
	sort.Float64s(radii)
	med := radii[len(radii)/2]
	if med <= 0 {
		med = 1.0
	}
	return 2 * med
}
