// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import "github.com/cpmech/gosl/chk"

// linearShapeWeights evaluates a face's linear (V=2,3,4) shape functions at
// a point expressed in the face's own local planar coordinates, returning
// one weight per vertex summing to 1. This distributes a force or integral
// quantity located at the point to the face's nodes, mirroring the way
// fem.ElemU's contact code evaluates Sf at a face integration point.
func linearShapeWeights(faceLocal [][]float64, point []float64) ([]float64, error) {
	switch len(faceLocal) {
	case 2:
		return segmentWeights(faceLocal, point)
	case 3:
		return triangleWeights(faceLocal, point)
	case 4:
		return quadWeights(faceLocal, point)
	}
	return nil, chk.Err("linearShapeWeights: unsupported vertex count %d", len(faceLocal))
}

func segmentWeights(face [][]float64, p []float64) ([]float64, error) {
	a, b := face[0], face[1]
	dx := b[0] - a[0]
	if dx == 0 {
		dx = 1e-300
	}
	t := (p[0] - a[0]) / dx
	return []float64{1 - t, t}, nil
}

func triangleWeights(face [][]float64, p []float64) ([]float64, error) {
	a, b, c := face[0], face[1], face[2]
	total := signedArea2(a, b, c)
	if abs(total) < 1e-300 {
		return nil, chk.Err("triangleWeights: degenerate triangle")
	}
	w0 := signedArea2(p, b, c) / total
	w1 := signedArea2(a, p, c) / total
	w2 := signedArea2(a, b, p) / total
	return []float64{w0, w1, w2}, nil
}

func signedArea2(a, b, c []float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// quadWeights inverts the bilinear isoparametric map for a quad face by
// Newton iteration, the same fixed-point scheme shp.Shape.InvMap uses for
// the general isoparametric inverse, specialized to the bilinear Q4 map.
func quadWeights(face [][]float64, p []float64) ([]float64, error) {
	r, s := 0.0, 0.0
	for it := 0; it < 25; it++ {
		N, dNdr, dNds := bilinearN(r, s)
		x, y := 0.0, 0.0
		dxdr, dydr, dxds, dyds := 0.0, 0.0, 0.0, 0.0
		for i := 0; i < 4; i++ {
			x += N[i] * face[i][0]
			y += N[i] * face[i][1]
			dxdr += dNdr[i] * face[i][0]
			dydr += dNdr[i] * face[i][1]
			dxds += dNds[i] * face[i][0]
			dyds += dNds[i] * face[i][1]
		}
		ex, ey := p[0]-x, p[1]-y
		det := dxdr*dyds - dxds*dydr
		if abs(det) < 1e-300 {
			return nil, chk.Err("quadWeights: singular Jacobian")
		}
		dr := (dyds*ex - dxds*ey) / det
		ds := (-dydr*ex + dxdr*ey) / det
		r += dr
		s += ds
		if dr*dr+ds*ds < 1e-20 {
			break
		}
	}
	N, _, _ := bilinearN(r, s)
	return N, nil
}

// bilinearN returns the Q4 shape functions and their natural derivatives at
// (r,s) in [-1,1]^2, vertex ordering CCW starting at (-1,-1).
func bilinearN(r, s float64) (N, dNdr, dNds []float64) {
	N = []float64{
		0.25 * (1 - r) * (1 - s),
		0.25 * (1 + r) * (1 - s),
		0.25 * (1 + r) * (1 + s),
		0.25 * (1 - r) * (1 + s),
	}
	dNdr = []float64{
		-0.25 * (1 - s), 0.25 * (1 - s), 0.25 * (1 + s), -0.25 * (1 + s),
	}
	dNds = []float64{
		-0.25 * (1 - r), -0.25 * (1 + r), 0.25 * (1 + r), 0.25 * (1 - r),
	}
	return
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
