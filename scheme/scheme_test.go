// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheme

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/tribol/coupling"
	"github.com/cpmech/tribol/meshview"
)

func quadMesh(id int, z float64, flip bool) *meshview.MeshView {
	m := meshview.New(id, 3, meshview.Quad, 4, 1)
	pts := [][]float64{{0, 0, z}, {1, 0, z}, {1, 1, z}, {0, 1, z}}
	if flip {
		pts[1], pts[3] = pts[3], pts[1]
	}
	for i, p := range pts {
		m.Coords[i] = p
	}
	m.Connectivity[0] = []int{0, 1, 2, 3}
	return m
}

func triMesh(id int) *meshview.MeshView {
	m := meshview.New(id, 3, meshview.Triangle, 3, 1)
	m.Coords[0] = []float64{0, 0, 0}
	m.Coords[1] = []float64{1, 0, 0}
	m.Coords[2] = []float64{0, 1, 0}
	m.Connectivity[0] = []int{0, 1, 2}
	return m
}

func Test_scheme_rejects_different_face_types(tst *testing.T) {

	chk.PrintTitle("S6: tri/quad hybrid mesh pair rejected at Init for a mortar method")

	m1 := triMesh(1)
	m2 := quadMesh(2, 0, true)

	cfg := coupling.DefaultConfig()
	cfg.Method = coupling.SingleMortar
	cfg.Enforcement = coupling.LagrangeMultiplier
	sch := New(1, cfg, m1, m2)
	err := sch.Init()
	if err != coupling.ErrDifferentFaceTypes {
		tst.Fatalf("expected ErrDifferentFaceTypes, got %v", err)
	}
	if sch.State() != Constructed {
		tst.Fatal("expected scheme to remain in Constructed state after a failed Init")
	}
}

func Test_scheme_common_plane_allows_mixed_face_types(tst *testing.T) {

	chk.PrintTitle("common-plane method accepts a tri/quad mesh pair")

	m1 := triMesh(1)
	m2 := quadMesh(2, -0.05, true)

	cfg := coupling.DefaultConfig()
	sch := New(1, cfg, m1, m2)
	if err := sch.Init(); err != nil {
		tst.Fatalf("expected common-plane Init to accept mixed face types, got %v", err)
	}
}

func Test_scheme_end_to_end_penalty(tst *testing.T) {

	chk.PrintTitle("S1/S2 driven through the full scheme lifecycle")

	cfg := coupling.DefaultConfig()
	cfg.Penalty.ConstantStiffness = false
	cfg.Penalty.Stiffness = 50.0

	m1 := quadMesh(1, 0, false)
	m2 := quadMesh(2, -0.05, true)
	m1.ElementThickness = []float64{1.0}
	m2.ElementThickness = []float64{1.0}

	sch := New(1, cfg, m1, m2)
	if err := sch.Init(); err != nil {
		tst.Fatal(err)
	}
	if err := sch.PerformBinning(); err != nil {
		tst.Fatal(err)
	}
	if len(sch.Pairs) != 1 {
		tst.Fatalf("expected 1 candidate pair, got %d", len(sch.Pairs))
	}

	vote, err := sch.Apply(0, 0, 1e-3)
	if err != nil {
		tst.Fatal(err)
	}
	if vote > 1e-3 {
		tst.Fatalf("timestep vote must not exceed the proposed dt, got %g", vote)
	}
	if len(sch.Planes) != 1 {
		tst.Fatalf("expected 1 active plane, got %d", len(sch.Planes))
	}
	if sch.Tally.Total() != 0 {
		tst.Fatalf("expected no tallied geometry errors, got %+v", sch.Tally)
	}

	var totalFz float64
	for _, r := range m1.Response {
		totalFz += r[2]
	}
	chk.Scalar(tst, "total Fz on mesh 1", 1e-8, totalFz, 5.0)

	sch.Finalize()
	if sch.State() != Finalized {
		tst.Fatal("expected Finalized state")
	}
}

func Test_scheme_cartesian_pins_binning(tst *testing.T) {

	chk.PrintTitle("NO_SLIDING pins binning to the Cartesian product across cycles")

	cfg := coupling.DefaultConfig()
	cfg.Case = coupling.NoSliding
	cfg.Binning = coupling.BinningGrid // auto-corrected to Cartesian by Validate

	m1 := quadMesh(1, 0, false)
	m2 := quadMesh(2, -0.01, true)

	sch := New(1, cfg, m1, m2)
	if err := sch.Init(); err != nil {
		tst.Fatal(err)
	}
	if sch.Cfg.Binning != coupling.BinningCartesianProduct {
		tst.Fatal("expected NO_SLIDING to force Cartesian-product binning")
	}

	if err := sch.PerformBinning(); err != nil {
		tst.Fatal(err)
	}
	first := sch.Pairs

	m2.Coords[0][0] = 5 // perturb mesh 2; pinned binning must not re-run the finder
	if err := sch.PerformBinning(); err != nil {
		tst.Fatal(err)
	}
	if len(sch.Pairs) != len(first) {
		tst.Fatalf("expected pinned binning to keep the same candidate set, got %d vs %d", len(sch.Pairs), len(first))
	}
}

func Test_compute_timestep_reduces_for_fast_approach(tst *testing.T) {

	chk.PrintTitle("ComputeTimestep votes a smaller dt when faces approach quickly")

	cfg := coupling.DefaultConfig()
	cfg.Penalty.AutoThicknessFrac = 0.5

	m1 := quadMesh(1, 0, false)
	m2 := quadMesh(2, -0.01, true)
	m1.ElementThickness = []float64{1.0}
	m2.ElementThickness = []float64{1.0}
	m1.Velocities = make([][]float64, 4)
	m2.Velocities = make([][]float64, 4)
	for i := 0; i < 4; i++ {
		m1.Velocities[i] = []float64{0, 0, 0}
		m2.Velocities[i] = []float64{0, 0, -10} // mesh 2 closing fast along -z
	}

	sch := New(1, cfg, m1, m2)
	if err := sch.Init(); err != nil {
		tst.Fatal(err)
	}
	if err := sch.PerformBinning(); err != nil {
		tst.Fatal(err)
	}
	vote, err := sch.Apply(0, 0, 1.0)
	if err != nil {
		tst.Fatal(err)
	}
	if vote >= 1.0 {
		tst.Fatalf("expected a reduced timestep vote, got %g", vote)
	}
	if vote < 0 {
		tst.Fatal("timestep vote must not be negative")
	}
}
