// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tribol

import (
	"sort"

	"github.com/cpmech/gosl/la"
)

// GetGapArray returns the signed gap of every currently active contact
// plane of schemeID, in the same order as the scheme's own Planes slice.
// Negative entries are interpenetrating pairs.
func (c *Context) GetGapArray(schemeID int) ([]float64, error) {
	s, err := c.Scheme(schemeID)
	if err != nil {
		return nil, err
	}
	gaps := make([]float64, len(s.Planes))
	for i, pl := range s.Planes {
		gaps[i] = pl.Gap
	}
	return gaps, nil
}

// GetPressureArray returns, per node of the nonmortar mesh (mesh 1), the
// assembled dual-dual (pressure) mass-matrix diagonal accumulated by the
// mortar kernel. This is the quantity the library itself computes; solving
// the coupled system for the actual Lagrange-multiplier pressure value is
// the finite-element collaborator's job and stays out of scope.
func (c *Context) GetPressureArray(schemeID int) ([]float64, error) {
	s, err := c.Scheme(schemeID)
	if err != nil {
		return nil, err
	}
	out := make([]float64, s.M1.NumNodes)
	for _, elem := range s.Mortar {
		conn1 := s.M1.Connectivity[elem.FaceID1]
		for p := 0; p < elem.NVerts1; p++ {
			out[conn1[p]] += elem.Jac[2][p][p]
		}
	}
	return out, nil
}

// jacEntry is one (row,col,val) contribution to the primal-dual Jacobian
// block before CSR compaction.
type jacEntry struct {
	row, col int
	val      float64
}

// GetJacobianCSR assembles the primal-dual block of every active mortar
// element into CSR form: rows index nodes of the nonmortar mesh (pressure
// dofs), columns index equilibrium dofs of mesh 1 as dim*node_id+d, per the
// finite-element contract (spec §6). A la.Triplet stages the assembly the
// same way fem.EssentialBcs.Build stages its constraint matrix (Init then
// Put), which is also how the source itself expects this block to be
// consumed downstream by a sparse solver; the CSR triple returned here is
// built from the same entries alongside the triplet so the host gets the
// exact row/col/val layout the contract specifies without this library
// depending on an undocumented internal CCMatrix layout.
func (c *Context) GetJacobianCSR(schemeID int) (rowPtr, colIdx []int, vals []float64, err error) {
	s, serr := c.Scheme(schemeID)
	if serr != nil {
		return nil, nil, nil, serr
	}
	if len(s.Mortar) == 0 {
		return []int{0}, nil, nil, nil
	}

	dim := s.M1.Dim
	var entries []jacEntry
	var trip la.Triplet
	nnzMax := 0
	for _, elem := range s.Mortar {
		nnzMax += dim * elem.NVerts1
	}
	trip.Init(s.M1.NumNodes, dim*s.M1.NumNodes, nnzMax)

	for _, elem := range s.Mortar {
		conn1 := s.M1.Connectivity[elem.FaceID1]
		for p := 0; p < elem.NVerts1; p++ {
			row := conn1[p]
			for d := 0; d < dim; d++ {
				col := dim*conn1[p] + d
				val := elem.Jac[1][p*dim+d][p]
				if val == 0 {
					continue
				}
				trip.Put(row, col, val)
				entries = append(entries, jacEntry{row, col, val})
			}
		}
	}

	nrows := s.M1.NumNodes
	rowPtr, colIdx, vals = csrFromEntries(nrows, entries)
	return rowPtr, colIdx, vals, nil
}

// csrFromEntries compacts (row,col,val) triples into sorted CSR arrays,
// summing duplicate (row,col) contributions.
func csrFromEntries(nrows int, entries []jacEntry) (rowPtr, colIdx []int, vals []float64) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].row != entries[j].row {
			return entries[i].row < entries[j].row
		}
		return entries[i].col < entries[j].col
	})

	colIdx = make([]int, 0, len(entries))
	vals = make([]float64, 0, len(entries))
	counts := make([]int, nrows)
	i := 0
	for i < len(entries) {
		row, col, val := entries[i].row, entries[i].col, entries[i].val
		j := i + 1
		for j < len(entries) && entries[j].row == row && entries[j].col == col {
			val += entries[j].val
			j++
		}
		colIdx = append(colIdx, col)
		vals = append(vals, val)
		counts[row]++
		i = j
	}

	rowPtr = make([]int, nrows+1)
	for r := 0; r < nrows; r++ {
		rowPtr[r+1] = rowPtr[r] + counts[r]
	}
	return rowPtr, colIdx, vals
}
