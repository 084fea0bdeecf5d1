// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import "github.com/cpmech/gosl/la"

// MortarElem is the per-active-pair SurfaceContactElem record (spec §3):
// dimension, the two face coordinate arrays, the overlap polygon, face
// ids, vertex counts, the packed mortar weights, and the 3x3 block element
// Jacobian. Unlike the source's manually-owned raw arrays, these are plain
// Go slices; the caller (the scheme package) owns a slice of *MortarElem
// and replaces it wholesale with each Apply cycle's fresh result, leaving
// the previous cycle's records to the garbage collector instead of manual
// pointer bookkeeping.
type MortarElem struct {
	Dim int
	F1  [][]float64 // face-1 vertex coordinates
	F2  [][]float64 // face-2 vertex coordinates

	OverlapGlobal [][]float64 // overlap polygon vertices, global coords

	FaceID1, FaceID2 int
	NVerts1, NVerts2 int

	// Weights is packed 2*V*V: first V*V entries are nonmortar-nonmortar
	// (slave-slave) products integral_Omega phi_a phi_a' dOmega, second
	// V*V entries are nonmortar-mortar (slave-master) products
	// integral_Omega phi_a phi_b dOmega.
	Weights []float64

	// Jac holds the element Jacobian contributions in block form:
	// Jac[0]=primal-primal, Jac[1]=primal-dual, Jac[2]=dual-dual.
	Jac [3][][]float64
}

// NewMortarElem allocates a MortarElem's weight and Jacobian storage for
// faces with v1 and v2 vertices respectively.
func NewMortarElem(dim, faceID1, faceID2, v1, v2 int) *MortarElem {
	e := &MortarElem{
		Dim: dim, FaceID1: faceID1, FaceID2: faceID2,
		NVerts1: v1, NVerts2: v2,
		Weights: make([]float64, 2*v1*v1),
	}
	n := v1 * dim
	e.Jac[0] = la.MatAlloc(n, n)
	e.Jac[1] = la.MatAlloc(n, v1)
	e.Jac[2] = la.MatAlloc(v1, v1)
	return e
}

// NonmortarNonmortar returns the packed nonmortar-nonmortar weight W[a][a'].
func (e *MortarElem) NonmortarNonmortar(a, ap int) float64 {
	return e.Weights[a*e.NVerts1+ap]
}

// SetNonmortarNonmortar stores W[a][a'].
func (e *MortarElem) SetNonmortarNonmortar(a, ap int, v float64) {
	e.Weights[a*e.NVerts1+ap] = v
}

// NonmortarMortar returns the packed nonmortar-mortar weight W[a][b].
func (e *MortarElem) NonmortarMortar(a, b int) float64 {
	return e.Weights[e.NVerts1*e.NVerts1+a*e.NVerts1+b]
}

// SetNonmortarMortar stores W[a][b].
func (e *MortarElem) SetNonmortarMortar(a, b int, v float64) {
	e.Weights[e.NVerts1*e.NVerts1+a*e.NVerts1+b] = v
}
