// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package contact implements the contact-plane builder (CheckInterfacePair)
// and the physics kernel (common-plane penalty and single/aligned mortar
// with Lagrange multipliers) that together form the library's geometric
// and physical core.
package contact

import (
	"math"

	"github.com/cpmech/tribol/coupling"
	"github.com/cpmech/tribol/geom"
	"github.com/cpmech/tribol/meshview"
)

// Plane is the per-active-pair contact plane record (spec §3 "Contact
// plane"). The overlap polygon lives in both local 2D (OverlapLocal) and
// global D-dim (OverlapGlobal) coordinates.
type Plane struct {
	F1, F2 int // originating face ids, on mesh 1 and mesh 2 respectively

	Origin []float64 // point on the common plane
	Normal []float64 // common-plane unit normal
	E1, E2 []float64 // in-plane orthonormal basis

	OverlapLocal  [][]float64 // up to 8 verts in 3D, 2 in 2D; local (e1,e2) coords
	OverlapGlobal [][]float64 // same vertices in global D-dim coords
	OverlapArea   float64
	OverlapCentroidLocal  []float64
	OverlapCentroidGlobal []float64

	CentroidOnF1 []float64 // overlap centroid projected back onto face 1
	CentroidOnF2 []float64 // overlap centroid projected back onto face 2

	Gap       float64 // signed distance along Normal; negative => interpenetration
	InContact bool

	// AutoCutoffReject is true when the pair would otherwise be in
	// contact by the ordinary gap tolerance, but the AUTO case's
	// thickness-scaled check (step 6) turned it away. Callers use this to
	// tally the AUTO rejection as its own diagnostic category instead of
	// folding it into an ordinary gap-tolerance miss.
	AutoCutoffReject bool
}

// CheckInterfacePair runs the contact-plane builder's seven steps on
// candidate pair (f1 on m1, f2 on m2). It never panics: any degenerate
// geometry yields a nil plane and a tagged geom error that the caller
// tallies and silently drops the pair for this cycle.
func CheckInterfacePair(cfg *coupling.Config, m1, m2 *meshview.MeshView, f1, f2 int) (*Plane, error) {

	n1, n2 := m1.Normals[f1], m2.Normals[f2]
	dot := dotProd(n1, n2)
	if dot > -cfg.OrientationMargin {
		return nil, geom.ErrFaceOrientation
	}

	dim := m1.Dim
	origin := make([]float64, dim)
	for i := 0; i < dim; i++ {
		origin[i] = 0.5 * (m1.Centroids[f1][i] + m2.Centroids[f2][i])
	}
	normal := make([]float64, dim)
	for i := 0; i < dim; i++ {
		normal[i] = n1[i] - n2[i]
	}
	normalize(normal)

	e1, e2 := buildBasis(dim, normal)

	v1 := m1.FaceCoords(f1)
	v2 := m2.FaceCoords(f2)

	local1, err := projectToLocal(v1, origin, normal, e1, e2)
	if err != nil {
		return nil, err
	}
	local2, err := projectToLocal(v2, origin, normal, e1, e2)
	if err != nil {
		return nil, err
	}
	if dim == 3 {
		if err := geom.ReorderCCW2D(local1); err != nil {
			return nil, geom.ErrFaceOrientation
		}
		if err := geom.ReorderCCW2D(local2); err != nil {
			return nil, geom.ErrFaceOrientation
		}
	}

	var overlapLocal [][]float64
	var overlapArea float64
	if dim == 2 {
		overlapLocal, overlapArea, err = segmentOverlap1D(local1, local2, cfg.PosTol, cfg.LenTol)
	} else {
		overlapLocal, overlapArea, err = geom.PolygonIntersect2D(local1, local2, cfg.PosTol, cfg.LenTol)
	}
	if err != nil {
		return nil, err
	}
	if overlapArea <= 0 || (dim == 3 && len(overlapLocal) < 3) || (dim == 2 && len(overlapLocal) < 2) {
		return nil, geom.ErrDegenerateOverlap
	}
	if dim == 3 && len(overlapLocal) > 8 {
		return nil, geom.ErrFaceVertexIndexExceedsOverlapVertices
	}

	overlapGlobal := make([][]float64, len(overlapLocal))
	for i, p := range overlapLocal {
		overlapGlobal[i] = toGlobal(origin, e1, e2, p)
	}

	centroidLocal, err := overlapCentroid(overlapLocal)
	if err != nil {
		return nil, geom.ErrDegenerateOverlap
	}
	centroidGlobal := toGlobal(origin, e1, e2, centroidLocal)

	c1 := geom.ProjectPointOntoPlane(centroidGlobal, m1.Centroids[f1], n1)
	c2 := geom.ProjectPointOntoPlane(centroidGlobal, m2.Centroids[f2], n2)

	gap := signedGap(c1, c2, normal)

	r1, r2 := m1.Radii[f1], m2.Radii[f2]
	maxR := r1
	if r2 > maxR {
		maxR = r2
	}

	var gapTol float64
	if cfg.Model == coupling.Tied {
		gapTol = cfg.Penalty.GapTiedTol * maxR
	} else {
		gapTol = -cfg.Penalty.GapTolRatio * maxR
	}

	inContact := false
	if cfg.Model == coupling.Tied {
		inContact = gap <= gapTol
	} else {
		inContact = gap < gapTol
	}

	autoCutoffReject := false
	if inContact && cfg.Case == coupling.Auto {
		t1, err1 := m1.ElementThicknessAt(f1)
		t2, err2 := m2.ElementThicknessAt(f2)
		if err1 != nil || err2 != nil {
			return nil, geom.ErrInvalidFaceInput
		}
		minT := t1
		if t2 < minT {
			minT = t2
		}
		if -gap > cfg.Penalty.AutoThicknessFrac*minT {
			inContact = false
			autoCutoffReject = true
		}
	}

	plane := &Plane{
		F1: f1, F2: f2,
		Origin: origin, Normal: normal, E1: e1, E2: e2,
		OverlapLocal: overlapLocal, OverlapGlobal: overlapGlobal, OverlapArea: overlapArea,
		OverlapCentroidLocal: centroidLocal, OverlapCentroidGlobal: centroidGlobal,
		CentroidOnF1: c1, CentroidOnF2: c2,
		Gap: gap, InContact: inContact, AutoCutoffReject: autoCutoffReject,
	}
	return plane, nil
}

func dotProd(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func normalize(v []float64) {
	var n float64
	for _, x := range v {
		n += x * x
	}
	n = math.Sqrt(n)
	if n < 1e-300 {
		return
	}
	for i := range v {
		v[i] /= n
	}
}

// buildBasis constructs an in-plane orthonormal basis (e1,e2) for the given
// unit normal, dimension-aware: in 2D, e1 is the tangent and e2 is unused
// (returned as nil) since the "local 2D" coordinate of a 2D contact is a
// single scalar along the tangent.
func buildBasis(dim int, normal []float64) (e1, e2 []float64) {
	if dim == 2 {
		return []float64{-normal[1], normal[0]}, nil
	}
	ref := []float64{1, 0, 0}
	if math.Abs(normal[0]) > 0.9 {
		ref = []float64{0, 1, 0}
	}
	e1 = cross(ref, normal)
	normalize(e1)
	e2 = cross(normal, e1)
	normalize(e2)
	return e1, e2
}

func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// projectToLocal projects each vertex onto the common plane and expresses
// it in the (e1,e2) in-plane coordinate system. In 2D this degenerates to a
// single scalar (the position along e1), still returned as a length-2 slice
// {s, 0} so downstream code shares the 2D-vertex representation.
func projectToLocal(verts [][]float64, origin, normal, e1, e2 []float64) ([][]float64, error) {
	out := make([][]float64, len(verts))
	for i, v := range verts {
		p := geom.ProjectPointOntoPlane(v, origin, normal)
		d := make([]float64, len(p))
		for k := range p {
			d[k] = p[k] - origin[k]
		}
		if e2 == nil {
			out[i] = []float64{dotProd(d, e1), 0}
		} else {
			out[i] = []float64{dotProd(d, e1), dotProd(d, e2)}
		}
	}
	return out, nil
}

func toGlobal(origin, e1, e2 []float64, local []float64) []float64 {
	dim := len(origin)
	out := make([]float64, dim)
	for i := 0; i < dim; i++ {
		out[i] = origin[i] + local[0]*e1[i]
		if e2 != nil {
			out[i] += local[1] * e2[i]
		}
	}
	return out
}

// segmentOverlap1D computes the 2D-case (line-contact) overlap: both faces
// project to a segment on the common tangent line; the overlap is the
// intersection of the two 1D intervals, expressed as up to 2 local points.
func segmentOverlap1D(a, b [][]float64, posTol, lenTol float64) ([][]float64, float64, error) {
	aLo, aHi := minMax1D(a)
	bLo, bHi := minMax1D(b)
	lo := math.Max(aLo, bLo)
	hi := math.Min(aHi, bHi)
	if hi-lo < lenTol {
		return nil, 0, geom.ErrDegenerateOverlap
	}
	return [][]float64{{lo, 0}, {hi, 0}}, hi - lo, nil
}

func minMax1D(pts [][]float64) (lo, hi float64) {
	lo, hi = pts[0][0], pts[0][0]
	for _, p := range pts[1:] {
		if p[0] < lo {
			lo = p[0]
		}
		if p[0] > hi {
			hi = p[0]
		}
	}
	return
}

// overlapCentroid returns the area-weighted centroid of the overlap
// polygon (midpoint in the 2D line-contact case), so that it coincides
// with the two projected face centroids as required by the contact-plane
// invariant (spec §3).
func overlapCentroid(local [][]float64) ([]float64, error) {
	if len(local) == 2 {
		return []float64{0.5 * (local[0][0] + local[1][0]), 0}, nil
	}
	avg, err := geom.VertexAverageCentroid(local)
	if err != nil {
		return nil, err
	}
	n := len(local)
	c := []float64{0, 0}
	var totalArea float64
	for i := 0; i < n; i++ {
		a := local[i]
		b := local[(i+1)%n]
		area := 0.5 * ((a[0]-avg[0])*(b[1]-avg[1]) - (a[1]-avg[1])*(b[0]-avg[0]))
		tc := []float64{(avg[0] + a[0] + b[0]) / 3, (avg[1] + a[1] + b[1]) / 3}
		c[0] += area * tc[0]
		c[1] += area * tc[1]
		totalArea += area
	}
	if math.Abs(totalArea) < 1e-300 {
		return avg, nil
	}
	c[0] /= totalArea
	c[1] /= totalArea
	return c, nil
}

func signedGap(c1, c2, normal []float64) float64 {
	d := make([]float64, len(c1))
	for i := range c1 {
		d[i] = c2[i] - c1[i]
	}
	return dotProd(d, normal)
}
