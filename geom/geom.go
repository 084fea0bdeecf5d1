// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom implements the pure, stateless geometric predicates used by
// the contact kernel: point/plane/line projections, polygon centroids and
// area, convex-hull reordering, and 2D convex polygon clipping. Every
// function here is device-callable in spirit: no package-level state, no
// I/O, and degenerate inputs return a tagged error instead of panicking.
package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ProjectPointOntoPlane projects p onto the plane through planeOrigin with
// unit normal planeNormal.
func ProjectPointOntoPlane(p, planeOrigin, planeNormal []float64) []float64 {
	d := make([]float64, len(p))
	for i := range p {
		d[i] = p[i] - planeOrigin[i]
	}
	dist := dotProduct(d, planeNormal)
	out := make([]float64, len(p))
	for i := range p {
		out[i] = p[i] - dist*planeNormal[i]
	}
	return out
}

// ProjectPointOntoLine2D projects a 2D point p onto the line through
// lineOrigin with unit normal lineNormal (i.e. the line is the set of points
// whose displacement from lineOrigin is orthogonal to lineNormal).
func ProjectPointOntoLine2D(p, lineOrigin, lineNormal []float64) []float64 {
	dx := p[0] - lineOrigin[0]
	dy := p[1] - lineOrigin[1]
	dist := dx*lineNormal[0] + dy*lineNormal[1]
	return []float64{
		p[0] - dist*lineNormal[0],
		p[1] - dist*lineNormal[1],
	}
}

// VertexAverageCentroid returns the plain average of a set of vertices.
func VertexAverageCentroid(verts [][]float64) ([]float64, error) {
	if len(verts) == 0 {
		return nil, chk.Err("VertexAverageCentroid: cannot average zero vertices")
	}
	nd := len(verts[0])
	c := make([]float64, nd)
	for _, v := range verts {
		for i := 0; i < nd; i++ {
			c[i] += v[i]
		}
	}
	for i := 0; i < nd; i++ {
		c[i] /= float64(len(verts))
	}
	return c, nil
}

// AreaWeightedCentroid3D computes the area-weighted centroid of a (possibly
// non-planar) 3D polygon by fan-triangulating about its vertex-average
// centroid.
func AreaWeightedCentroid3D(poly [][]float64) ([]float64, error) {
	if len(poly) < 3 {
		return nil, chk.Err("AreaWeightedCentroid3D: need at least 3 vertices, got %d", len(poly))
	}
	avg, err := VertexAverageCentroid(poly)
	if err != nil {
		return nil, err
	}
	n := len(poly)
	c := make([]float64, 3)
	var totalArea float64
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		area := triangleArea3D(avg, a, b)
		tc := [3]float64{
			(avg[0] + a[0] + b[0]) / 3,
			(avg[1] + a[1] + b[1]) / 3,
			(avg[2] + a[2] + b[2]) / 3,
		}
		for i := 0; i < 3; i++ {
			c[i] += area * tc[i]
		}
		totalArea += area
	}
	if math.Abs(totalArea) < 1e-300 {
		return nil, chk.Err("AreaWeightedCentroid3D: degenerate polygon, zero area")
	}
	for i := 0; i < 3; i++ {
		c[i] /= totalArea
	}
	return c, nil
}

func triangleArea3D(a, b, c []float64) float64 {
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	cx := uy*vz - uz*vy
	cy := uz*vx - ux*vz
	cz := ux*vy - uy*vx
	return 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
}

// PolygonArea2D computes the area of a 2D polygon given in any vertex order
// by fan-triangulating about the vertex-average centroid and summing
// absolute triangle areas (matches spec's "triangulated via vertex-avg
// centroid, sums |absolute triangle areas|" contract: robust to the vertex
// order not yet being CCW).
func PolygonArea2D(poly [][]float64) (float64, error) {
	if len(poly) < 3 {
		return 0, chk.Err("PolygonArea2D: need at least 3 vertices, got %d", len(poly))
	}
	avg, err := VertexAverageCentroid(poly)
	if err != nil {
		return 0, err
	}
	n := len(poly)
	var area float64
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		area += math.Abs(triangleArea2D(avg, a, b))
	}
	return area, nil
}

func triangleArea2D(a, b, c []float64) float64 {
	return 0.5 * ((b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0]))
}

// IsCCWConvex2D reports whether poly is convex and wound counter-clockwise.
func IsCCWConvex2D(poly [][]float64) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		c := poly[(i+2)%n]
		cross := (b[0]-a[0])*(c[1]-b[1]) - (b[1]-a[1])*(c[0]-b[0])
		if math.Abs(cross) < 1e-14 {
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return sign > 0
}

// ReorderCCW2D reorders poly in place into a convex CCW polygon. It chooses
// a starting segment such that all other vertices lie on one side of it,
// then repeatedly picks the next vertex minimizing the turning angle, as
// prescribed by the spec's convex-hull reordering contract.
func ReorderCCW2D(poly [][]float64) error {
	n := len(poly)
	if n < 3 {
		return chk.Err("ReorderCCW2D: need at least 3 vertices, got %d", n)
	}

	used := make([]bool, n)
	order := make([]int, 0, n)

	// find a starting edge (i0,i1) such that every other vertex lies on one
	// (the same) side of the line through them
	startI, startJ := -1, -1
outer:
	for i := 0; i < n && startI < 0; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if allOnOneSide(poly, i, j) {
				startI, startJ = i, j
				break outer
			}
		}
	}
	if startI < 0 {
		return chk.Err("ReorderCCW2D: could not find a convex hull starting edge (degenerate or non-convex input)")
	}

	order = append(order, startI, startJ)
	used[startI] = true
	used[startJ] = true

	for len(order) < n {
		cur := order[len(order)-1]
		prev := order[len(order)-2]
		best := -1
		bestAngle := math.Inf(1)
		ex, ey := poly[cur][0]-poly[prev][0], poly[cur][1]-poly[prev][1]
		for k := 0; k < n; k++ {
			if used[k] {
				continue
			}
			fx, fy := poly[k][0]-poly[cur][0], poly[k][1]-poly[cur][1]
			angle := turningAngle(ex, ey, fx, fy)
			if angle < bestAngle {
				bestAngle = angle
				best = k
			}
		}
		if best < 0 {
			break
		}
		order = append(order, best)
		used[best] = true
	}

	if len(order) != n {
		return chk.Err("ReorderCCW2D: failed to place all %d vertices (got %d)", n, len(order))
	}

	reordered := make([][]float64, n)
	for i, idx := range order {
		reordered[i] = poly[idx]
	}
	copy(poly, reordered)

	if !IsCCWConvex2D(poly) {
		reverseInPlace(poly)
		if !IsCCWConvex2D(poly) {
			return chk.Err("ReorderCCW2D: reordered polygon is not convex CCW")
		}
	}
	return nil
}

func allOnOneSide(poly [][]float64, i, j int) bool {
	ax, ay := poly[i][0], poly[i][1]
	bx, by := poly[j][0], poly[j][1]
	ex, ey := bx-ax, by-ay
	sign := 0
	for k, p := range poly {
		if k == i || k == j {
			continue
		}
		cross := ex*(p[1]-ay) - ey*(p[0]-ax)
		if math.Abs(cross) < 1e-14 {
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

func turningAngle(ex, ey, fx, fy float64) float64 {
	dot := ex*fx + ey*fy
	cross := ex*fy - ey*fx
	a := math.Atan2(cross, dot)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func reverseInPlace(poly [][]float64) {
	for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
		poly[i], poly[j] = poly[j], poly[i]
	}
}

// CollapseShortEdges removes vertices that form edges shorter than lenTol,
// compacting the polygon. If fewer than 3 vertices remain the overlap is
// degenerate and the (possibly empty) compacted slice is returned without
// error — the caller is responsible for treating it as zero-area.
func CollapseShortEdges(poly [][]float64, lenTol float64) [][]float64 {
	n := len(poly)
	if n == 0 {
		return poly
	}
	out := make([][]float64, 0, n)
	out = append(out, poly[0])
	for i := 1; i < n; i++ {
		last := out[len(out)-1]
		if dist(last, poly[i]) >= lenTol {
			out = append(out, poly[i])
		}
	}
	// check wrap-around edge
	if len(out) > 1 && dist(out[len(out)-1], out[0]) < lenTol {
		out = out[:len(out)-1]
	}
	return out
}

func dist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return math.Sqrt(s)
}

// PointInPolygon2D reports whether p lies inside (or on the boundary of,
// within posTol) the convex CCW polygon poly.
func PointInPolygon2D(p []float64, poly [][]float64, posTol float64) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
		edgeLen := dist(a, b)
		if edgeLen < 1e-300 {
			continue
		}
		if cross < -posTol*edgeLen {
			return false
		}
	}
	return true
}

// LinePlaneIntersect intersects the segment [segA,segB] with the plane
// through planePoint with unit normal planeNormal. inPlane is true when the
// segment lies (numerically) within the plane, in which case there is no
// unique intersection point and intersects is false.
func LinePlaneIntersect(segA, segB, planePoint, planeNormal []float64) (pt []float64, inPlane, intersects bool) {
	d := make([]float64, len(segA))
	for i := range segA {
		d[i] = segB[i] - segA[i]
	}
	denom := dotProduct(d, planeNormal)
	num := make([]float64, len(segA))
	for i := range segA {
		num[i] = planePoint[i] - segA[i]
	}
	numDot := dotProduct(num, planeNormal)
	if math.Abs(denom) < 1e-14 {
		if math.Abs(numDot) < 1e-10 {
			return nil, true, false
		}
		return nil, false, false
	}
	t := numDot / denom
	if t < -1e-10 || t > 1+1e-10 {
		return nil, false, false
	}
	pt = make([]float64, len(segA))
	for i := range segA {
		pt[i] = segA[i] + t*d[i]
	}
	return pt, false, true
}

func dotProduct(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
