// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/tribol/coupling"
	"github.com/cpmech/tribol/meshview"
)

// ApplyCommonPlanePenalty reduces the active contact planes into nodal
// forces via the common-plane penalty method (spec §4.5.1). Normal force
// magnitude is F_n = k*depth, applied along the common-plane normal and
// distributed to each face's vertices through linear shape-function
// weights evaluated at the overlap centroid, scaled by the overlap area.
// Forces on face 1 and face 2 are equal and opposite (Newton's third law).
//
// Penetration/separation depth is extracted with fun.Ramp, the same
// Macaulay-bracket helper fem.ElemU.contact_ramp uses to turn a signed gap
// into a one-sided engagement magnitude.
func ApplyCommonPlanePenalty(cfg *coupling.Config, planes []*Plane, m1, m2 *meshview.MeshView) error {
	for _, pl := range planes {
		if !pl.InContact {
			continue
		}
		tied := cfg.Model == coupling.Tied

		var depth float64
		if tied {
			depth = fun.Ramp(pl.Gap) // positive separation engages the cohesive spring
		} else {
			depth = fun.Ramp(-pl.Gap) // positive interpenetration engages the penalty spring
		}
		if depth <= 0 {
			continue
		}

		k, err := effectiveStiffness(cfg, m1, m2, pl)
		if err != nil {
			return err
		}

		fn := k * depth * pl.OverlapArea
		// sign convention: negative gap (interpenetration) pushes faces
		// apart along +Normal on face 1; TIED's positive gap instead pulls
		// them together (cohesive), i.e. force direction flips.
		dir := 1.0
		if pl.Gap > 0 {
			dir = -1.0
		}

		v1local := projectFaceToPlaneLocal(m1, pl, pl.F1)
		v2local := projectFaceToPlaneLocal(m2, pl, pl.F2)

		w1, err := linearShapeWeights(v1local, pl.OverlapCentroidLocal)
		if err != nil {
			return err
		}
		w2, err := linearShapeWeights(v2local, pl.OverlapCentroidLocal)
		if err != nil {
			return err
		}

		conn1 := m1.Connectivity[pl.F1]
		conn2 := m2.Connectivity[pl.F2]
		dim := m1.Dim
		for i, nid := range conn1 {
			for d := 0; d < dim; d++ {
				m1.AddResponse(nid, d, dir*fn*w1[i]*pl.Normal[d])
			}
		}
		for i, nid := range conn2 {
			for d := 0; d < dim; d++ {
				m2.AddResponse(nid, d, -dir*fn*w2[i]*pl.Normal[d])
			}
		}
	}
	return nil
}

// effectiveStiffness returns the penalty stiffness for one plane: either
// the constant user-supplied value, or the element-wise
// k = k_host*area_overlap/t_eff with t_eff the harmonic mean of the two
// element thicknesses.
func effectiveStiffness(cfg *coupling.Config, m1, m2 *meshview.MeshView, pl *Plane) (float64, error) {
	if cfg.Penalty.ConstantStiffness {
		return cfg.Penalty.Stiffness, nil
	}
	t1, err := m1.ElementThicknessAt(pl.F1)
	if err != nil {
		return 0, err
	}
	t2, err := m2.ElementThicknessAt(pl.F2)
	if err != nil {
		return 0, err
	}
	if t1+t2 < 1e-300 {
		return 0, chk.Err("effectiveStiffness: combined element thickness is zero")
	}
	tEff := (t1 * t2) / (t1 + t2)
	kHost := cfg.Penalty.Stiffness
	return kHost * pl.OverlapArea / tEff, nil
}

// projectFaceToPlaneLocal returns the face vertices re-expressed in the
// contact plane's local basis, needed because the overlap centroid (and
// hence the shape-function evaluation point) lives in that frame, not the
// mesh's own parametric space.
func projectFaceToPlaneLocal(m *meshview.MeshView, pl *Plane, faceID int) [][]float64 {
	verts := m.FaceCoords(faceID)
	out := make([][]float64, len(verts))
	for i, v := range verts {
		d := make([]float64, len(v))
		for k := range v {
			d[k] = v[k] - pl.Origin[k]
		}
		if pl.E2 == nil {
			out[i] = []float64{dot(d, pl.E1), 0}
		} else {
			out[i] = []float64{dot(d, pl.E1), dot(d, pl.E2)}
		}
	}
	return out
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
