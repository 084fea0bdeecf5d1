// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_project_point_onto_plane(tst *testing.T) {

	chk.PrintTitle("project point onto plane")

	origin := []float64{0, 0, 0}
	normal := []float64{0, 0, 1}
	p := []float64{1, 2, 5}
	q := ProjectPointOntoPlane(p, origin, normal)
	chk.Vector(tst, "q", 1e-15, q, []float64{1, 2, 0})

	// round trip: projecting and moving back along the normal recovers p
	back := []float64{q[0], q[1], q[2] + 5}
	chk.Vector(tst, "back", 1e-15, back, p)
}

func Test_vertex_average_centroid(tst *testing.T) {

	chk.PrintTitle("vertex average centroid")

	square := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	c, err := VertexAverageCentroid(square)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Vector(tst, "centroid", 1e-15, c, []float64{0.5, 0.5})

	_, err = VertexAverageCentroid(nil)
	if err == nil {
		tst.Fatal("expected error for zero vertices")
	}
}

func Test_polygon_area_unit_square(tst *testing.T) {

	chk.PrintTitle("polygon area: unit square")

	square := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	area, err := PolygonArea2D(square)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "area", 1e-15, area, 1.0)

	// order doesn't matter: reverse winding gives the same absolute area
	reversed := [][]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	area2, err := PolygonArea2D(reversed)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "area reversed", 1e-15, area2, 1.0)
}

func Test_is_ccw_convex(tst *testing.T) {

	chk.PrintTitle("is ccw convex")

	ccw := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if !IsCCWConvex2D(ccw) {
		tst.Fatal("expected square to be CCW convex")
	}

	cw := [][]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if IsCCWConvex2D(cw) {
		tst.Fatal("expected CW square to fail CCW test")
	}
}

func Test_reorder_ccw_idempotent(tst *testing.T) {

	chk.PrintTitle("reorder ccw idempotent on already-ccw input")

	square := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	clone := cloneVerts(square)
	err := ReorderCCW2D(clone)
	if err != nil {
		tst.Fatal(err)
	}
	if !IsCCWConvex2D(clone) {
		tst.Fatal("reorder of CCW polygon should remain CCW convex")
	}

	// shuffled should reorder to a convex CCW polygon with the same area
	shuffled := [][]float64{{1, 1}, {0, 0}, {0, 1}, {1, 0}}
	areaBefore, _ := PolygonArea2D(shuffled)
	err = ReorderCCW2D(shuffled)
	if err != nil {
		tst.Fatal(err)
	}
	if !IsCCWConvex2D(shuffled) {
		tst.Fatal("expected reordered polygon to be CCW convex")
	}
	areaAfter, _ := PolygonArea2D(shuffled)
	chk.Scalar(tst, "area preserved", 1e-14, areaAfter, areaBefore)
}

func Test_polygon_intersect_identical_squares(tst *testing.T) {

	chk.PrintTitle("polygon intersect: identical squares")

	a := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	b := cloneVerts(a)
	overlap, area, err := PolygonIntersect2D(a, b, 1e-9, 1e-9)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "area", 1e-12, area, 1.0)
	if len(overlap) < 3 {
		tst.Fatal("expected a non-degenerate overlap polygon")
	}
}

func Test_polygon_intersect_partial_overlap(tst *testing.T) {

	chk.PrintTitle("polygon intersect: quarter-shifted squares")

	a := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	b := [][]float64{{0.25, 0.25}, {1.25, 0.25}, {1.25, 1.25}, {0.25, 1.25}}
	overlap, area, err := PolygonIntersect2D(a, b, 1e-9, 1e-9)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "area", 1e-10, area, 0.5625)
	if len(overlap) != 4 {
		tst.Fatalf("expected 4 overlap vertices, got %d", len(overlap))
	}
}

func Test_polygon_intersect_symmetry(tst *testing.T) {

	chk.PrintTitle("polygon intersect: symmetric in argument order")

	a := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	b := [][]float64{{0.25, 0.25}, {1.25, 0.25}, {1.25, 1.25}, {0.25, 1.25}}
	_, areaAB, err := PolygonIntersect2D(a, b, 1e-9, 1e-9)
	if err != nil {
		tst.Fatal(err)
	}
	_, areaBA, err := PolygonIntersect2D(b, a, 1e-9, 1e-9)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "area symmetric", 1e-12, areaAB, areaBA)
}

func Test_polygon_intersect_disjoint(tst *testing.T) {

	chk.PrintTitle("polygon intersect: disjoint squares")

	a := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	b := [][]float64{{5, 5}, {6, 5}, {6, 6}, {5, 6}}
	_, _, err := PolygonIntersect2D(a, b, 1e-9, 1e-9)
	if err != ErrDegenerateOverlap {
		tst.Fatalf("expected ErrDegenerateOverlap, got %v", err)
	}
}

func Test_segment_intersect_2d(tst *testing.T) {

	chk.PrintTitle("segment intersect 2d")

	p1 := []float64{0, 0}
	p2 := []float64{1, 1}
	q1 := []float64{0, 1}
	q2 := []float64{1, 0}
	pt, ok, dup := SegmentIntersect2D(p1, p2, q1, q2, false, false, 1e-9)
	if !ok || dup {
		tst.Fatal("expected a clean crossing intersection")
	}
	chk.Vector(tst, "pt", 1e-14, pt, []float64{0.5, 0.5})

	// parallel segments never intersect
	_, ok, _ = SegmentIntersect2D([]float64{0, 0}, []float64{1, 0}, []float64{0, 1}, []float64{1, 1}, false, false, 1e-9)
	if ok {
		tst.Fatal("expected parallel segments to not intersect")
	}
}

func Test_line_plane_intersect(tst *testing.T) {

	chk.PrintTitle("line plane intersect")

	planePt := []float64{0, 0, 0}
	planeN := []float64{0, 0, 1}
	a := []float64{0, 0, -1}
	b := []float64{0, 0, 1}
	pt, inPlane, ok := LinePlaneIntersect(a, b, planePt, planeN)
	if !ok || inPlane {
		tst.Fatal("expected a clean intersection")
	}
	chk.Vector(tst, "pt", 1e-14, pt, []float64{0, 0, 0})

	// segment lying in the plane: no unique intersection
	a2 := []float64{0, 0, 0}
	b2 := []float64{1, 1, 0}
	_, inPlane2, ok2 := LinePlaneIntersect(a2, b2, planePt, planeN)
	if ok2 || !inPlane2 {
		tst.Fatal("expected in-plane segment to report no unique intersection")
	}
}

func Test_collapse_short_edges(tst *testing.T) {

	chk.PrintTitle("collapse short edges")

	poly := [][]float64{{0, 0}, {1e-12, 1e-12}, {1, 0}, {1, 1}, {0, 1}}
	out := CollapseShortEdges(poly, 1e-9)
	if len(out) != 4 {
		tst.Fatalf("expected 4 vertices after collapsing near-duplicate, got %d", len(out))
	}
}

func Test_area_weighted_centroid_3d_planar(tst *testing.T) {

	chk.PrintTitle("area weighted centroid 3d planar quad")

	quad := [][]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	c, err := AreaWeightedCentroid3D(quad)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Vector(tst, "centroid", 1e-14, c, []float64{0.5, 0.5, 0})
}

func Test_point_in_polygon(tst *testing.T) {

	chk.PrintTitle("point in convex polygon")

	square := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if !PointInPolygon2D([]float64{0.5, 0.5}, square, 1e-9) {
		tst.Fatal("expected center point to be inside")
	}
	if PointInPolygon2D([]float64{2, 2}, square, 1e-9) {
		tst.Fatal("expected far point to be outside")
	}
}

func Test_turning_angle_monotone(tst *testing.T) {

	chk.PrintTitle("turning angle sanity")

	a := turningAngle(1, 0, 1, 0)
	if math.Abs(a) > 1e-12 {
		tst.Fatalf("expected zero turning angle for colinear direction, got %g", a)
	}
}
