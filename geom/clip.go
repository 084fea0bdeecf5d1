// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "math"

// SegmentIntersect2D computes the intersection of segment [p1,p2] with
// segment [q1,q2]. p1Interior/q1Interior flag whether p1 (resp. q1) has
// already been classified as interior to the other polygon; duplicate is
// true when the computed intersection collapses onto a vertex already
// marked interior, matching the spec's dedup rule.
func SegmentIntersect2D(p1, p2, q1, q2 []float64, p1Interior, q1Interior bool, posTol float64) (pt []float64, intersects, duplicate bool) {
	rX, rY := p2[0]-p1[0], p2[1]-p1[1]
	sX, sY := q2[0]-q1[0], q2[1]-q1[1]
	denom := rX*sY - rY*sX
	if math.Abs(denom) < 1e-14 {
		return nil, false, false
	}
	qpX, qpY := q1[0]-p1[0], q1[1]-p1[1]
	t := (qpX*sY - qpY*sX) / denom
	u := (qpX*rY - qpY*rX) / denom
	const eps = 1e-10
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return nil, false, false
	}
	pt = []float64{p1[0] + t*rX, p1[1] + t*rY}
	if (p1Interior && dist2D(pt, p1) < posTol) || (q1Interior && dist2D(pt, q1) < posTol) {
		duplicate = true
	}
	return pt, true, duplicate
}

func dist2D(a, b []float64) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// PolygonIntersect2D computes the convex overlap of two convex CCW 2D
// polygons following the spec's clipping algorithm:
//  1. classify each vertex of A by membership in B and vice versa
//  2. collect interior vertices of A, interior vertices of B, and
//     edge/edge intersections
//  3. drop interior vertices of B that coincide (within 1e-15) with an
//     interior vertex of A
//  4. short-circuit when one polygon wholly contains the other
//  5. reorder into convex CCW and collapse short edges
//  6. fewer than 3 vertices surviving the short-edge collapse means
//     zero-area overlap, reported without error
//
// Fewer than 3 collected vertices before step 5 (e.g. disjoint polygons),
// or a failed reorder, returns ErrDegenerateOverlap.
func PolygonIntersect2D(a, b [][]float64, posTol, lenTol float64) ([][]float64, float64, error) {
	if len(a) < 3 || len(b) < 3 {
		return nil, 0, ErrInvalidFaceInput
	}
	if !IsCCWConvex2D(a) || !IsCCWConvex2D(b) {
		return nil, 0, ErrFaceOrientation
	}

	aInside := make([]bool, len(a))
	for i, p := range a {
		aInside[i] = PointInPolygon2D(p, b, posTol)
	}
	bInside := make([]bool, len(b))
	for i, p := range b {
		bInside[i] = PointInPolygon2D(p, a, posTol)
	}

	allAInB := true
	for _, v := range aInside {
		if !v {
			allAInB = false
			break
		}
	}
	if allAInB {
		return cloneVerts(a), mustArea(a), nil
	}
	allBInA := true
	for _, v := range bInside {
		if !v {
			allBInA = false
			break
		}
	}
	if allBInA {
		return cloneVerts(b), mustArea(b), nil
	}

	var verts [][]float64
	for i, p := range a {
		if aInside[i] {
			verts = append(verts, p)
		}
	}
	var bInterior [][]float64
	for i, p := range b {
		if bInside[i] {
			bInterior = append(bInterior, p)
		}
	}
	// step 3: dedup B's interior vertices against A's interior vertices
	for _, bp := range bInterior {
		dup := false
		for i, p := range a {
			if aInside[i] && dist2D(bp, p) < 1e-15 {
				dup = true
				break
			}
		}
		if !dup {
			verts = append(verts, bp)
		}
	}

	// edge/edge intersections
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		p1, p2 := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			q1, q2 := b[j], b[(j+1)%nb]
			pt, ok, dup := SegmentIntersect2D(p1, p2, q1, q2, aInside[i], bInside[j], posTol)
			if ok && !dup {
				verts = append(verts, pt)
			}
		}
	}

	if len(verts) < 3 {
		return nil, 0, ErrDegenerateOverlap
	}

	poly := dedupClose(verts, posTol)
	if len(poly) < 3 {
		return nil, 0, ErrDegenerateOverlap
	}
	if err := ReorderCCW2D(poly); err != nil {
		return nil, 0, ErrDegenerateOverlap
	}
	poly = CollapseShortEdges(poly, lenTol)
	if len(poly) < 3 {
		return nil, 0, nil
	}
	area, err := PolygonArea2D(poly)
	if err != nil {
		return nil, 0, ErrDegenerateOverlap
	}
	return poly, area, nil
}

func dedupClose(verts [][]float64, tol float64) [][]float64 {
	out := make([][]float64, 0, len(verts))
	for _, v := range verts {
		dup := false
		for _, o := range out {
			if dist2D(v, o) < tol {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

func cloneVerts(poly [][]float64) [][]float64 {
	out := make([][]float64, len(poly))
	for i, p := range poly {
		q := make([]float64, len(p))
		copy(q, p)
		out[i] = q
	}
	return out
}

func mustArea(poly [][]float64) float64 {
	area, err := PolygonArea2D(poly)
	if err != nil {
		return 0
	}
	return area
}
