// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"

	"github.com/cpmech/tribol/coupling"
	"github.com/cpmech/tribol/meshview"
)

// gauss2 are the abscissae and weight of the standard 2-point Gauss-Legendre
// rule on [-1,1]; the spec's default mortar quadrature is the 2x2 tensor
// product of this rule.
var gauss2 = []float64{-1.0 / math.Sqrt(3), 1.0 / math.Sqrt(3)}

// ApplyMortar computes, for every active plane, the mortar weights (and,
// unless cfg.Method is MORTAR_WEIGHTS, the element Jacobian blocks) of
// spec §4.5.2. MORTAR_WEIGHTS emits weights only. ALIGNED_MORTAR assumes
// node-aligned faces and substitutes identity weights, skipping quadrature
// entirely, but still requires the orientation filter to have passed
// exactly (enforced upstream by CheckInterfacePair).
func ApplyMortar(cfg *coupling.Config, planes []*Plane, m1, m2 *meshview.MeshView) ([]*MortarElem, error) {
	var elems []*MortarElem
	for _, pl := range planes {
		if !pl.InContact {
			continue
		}

		v1 := len(m1.Connectivity[pl.F1])
		v2 := len(m2.Connectivity[pl.F2])
		elem := NewMortarElem(m1.Dim, pl.F1, pl.F2, v1, v2)
		elem.F1 = m1.FaceCoords(pl.F1)
		elem.F2 = m2.FaceCoords(pl.F2)
		elem.OverlapGlobal = pl.OverlapGlobal

		if cfg.Method == coupling.AlignedMortar {
			share := pl.OverlapArea / float64(v1)
			for a := 0; a < v1; a++ {
				elem.SetNonmortarNonmortar(a, a, share)
				elem.SetNonmortarMortar(a, a, share)
			}
		} else {
			if err := integrateMortarWeights(elem, pl, m1, m2); err != nil {
				return nil, err
			}
		}

		if cfg.Method != coupling.MortarWeights {
			assembleElementJacobian(elem, cfg)
		}

		elems = append(elems, elem)
	}
	return elems, nil
}

// integrateMortarWeights fan-triangulates the overlap polygon about its
// area centroid, and for each triangle runs a 2x2 Gauss quadrature (the
// rule is fixed; cfg.Lagrange.GaussPointsPerAxis is not consulted):
// quadrature points are mapped to the triangle's physical
// coordinates, pulled back onto each parent face to evaluate phi_a/phi_b,
// and accumulated weighted by the quadrature determinant.
func integrateMortarWeights(elem *MortarElem, pl *Plane, m1, m2 *meshview.MeshView) error {
	tris := triangulateAboutCentroid(pl.OverlapLocal, pl.OverlapCentroidLocal)

	face1Local := projectFaceToPlaneLocal(m1, pl, pl.F1)
	face2Local := projectFaceToPlaneLocal(m2, pl, pl.F2)

	for _, tri := range tris {
		for _, xi := range gauss2 {
			for _, eta := range gauss2 {
				nTri, dNdr, dNds := triShapeDeriv(xi, eta)
				pt := [2]float64{}
				jac := [2][2]float64{}
				for i := 0; i < 3; i++ {
					pt[0] += nTri[i] * tri[i][0]
					pt[1] += nTri[i] * tri[i][1]
					jac[0][0] += dNdr[i] * tri[i][0]
					jac[0][1] += dNds[i] * tri[i][0]
					jac[1][0] += dNdr[i] * tri[i][1]
					jac[1][1] += dNds[i] * tri[i][1]
				}
				detJ := jac[0][0]*jac[1][1] - jac[0][1]*jac[1][0]
				weight := math.Abs(detJ) // quadrature weight for 2-pt rule on [-1,1]^2 is 1*1

				point := []float64{pt[0], pt[1]}
				phiA, err := linearShapeWeights(face1Local, point)
				if err != nil {
					continue
				}
				phiB, err := linearShapeWeights(face2Local, point)
				if err != nil {
					continue
				}

				for a := 0; a < elem.NVerts1; a++ {
					for ap := 0; ap < elem.NVerts1; ap++ {
						cur := elem.NonmortarNonmortar(a, ap)
						elem.SetNonmortarNonmortar(a, ap, cur+weight*phiA[a]*phiA[ap])
					}
					for b := 0; b < elem.NVerts1; b++ {
						cur := elem.NonmortarMortar(a, b)
						elem.SetNonmortarMortar(a, b, cur+weight*phiA[a]*phiB[b])
					}
				}
			}
		}
	}
	return nil
}

// triangulateAboutCentroid fans the polygon into triangles about c.
func triangulateAboutCentroid(poly [][]float64, c []float64) [][][]float64 {
	n := len(poly)
	tris := make([][][]float64, 0, n)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		tris = append(tris, [][]float64{c, a, b})
	}
	return tris
}

// triShapeDeriv evaluates a 3-node triangle's shape functions (mapping a
// reference square [-1,1]^2 collapsed at one corner, matching the
// quadrature scheme used to integrate each centroid-fan triangle) and their
// natural derivatives at (r,s).
func triShapeDeriv(r, s float64) (N []float64, dNdr, dNds []float64) {
	// map square coordinate (r,s) in [-1,1]^2 to a triangle via the
	// Duffy transform, collapsing the edge s=1 onto vertex 2.
	rr := 0.25 * (1 + r) * (1 - s)
	ss := 0.5 * (1 + s)
	N = []float64{1 - rr - ss, rr, ss}
	dNdr = []float64{-0.25 * (1 - s), 0.25 * (1 - s), 0}
	dNds = []float64{0.25*(1+r) - 0.5, -0.25 * (1 + r), 0.5}
	return
}

// assembleElementJacobian derives the element Jacobian's primal-dual and
// dual-dual blocks from the mortar weights, per spec §4.5.2: the
// primal-dual block couples each nonmortar node's displacement dofs to its
// own pressure unknown through the diagonal nonmortar-mortar weight
// W[a][a]; the dual-dual block is the nonmortar-nonmortar mass matrix
// itself. The primal-primal block (Jac[0]) is not written and stays zero.
func assembleElementJacobian(elem *MortarElem, cfg *coupling.Config) {
	dim := elem.Dim
	v := elem.NVerts1
	for a := 0; a < v; a++ {
		for ap := 0; ap < v; ap++ {
			elem.Jac[2][a][ap] = elem.NonmortarNonmortar(a, ap)
		}
	}
	for a := 0; a < v; a++ {
		for d := 0; d < dim; d++ {
			row := a*dim + d
			elem.Jac[1][row][a] = elem.NonmortarMortar(a, a)
		}
	}
}
