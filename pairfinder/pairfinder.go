// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pairfinder implements the candidate face-pair binning step: given
// two mesh views and a binning policy, it produces the list of candidate
// face pairs whose bounding structures overlap. Binning is a performance
// filter, never a correctness one — a pair missed here is simply never
// checked, and a pair wrongly admitted is rejected downstream by the
// contact-plane builder's orientation and overlap tests.
package pairfinder

import "github.com/cpmech/tribol/meshview"

// Pair is a candidate (m1-face-id, m2-face-id) pair emitted by a Finder.
type Pair struct {
	F1, F2 int
}

// Finder produces candidate face pairs between two mesh views.
type Finder interface {
	FindPairs(m1, m2 *meshview.MeshView) []Pair
}

// CartesianFinder enumerates all F1*F2 pairs. Degenerate but correct; used
// for tiny meshes or whenever binning is pinned (NO_SLIDING cases, where
// the set of candidates cannot change cycle to cycle).
type CartesianFinder struct{}

// FindPairs implements Finder.
func (CartesianFinder) FindPairs(m1, m2 *meshview.MeshView) []Pair {
	pairs := make([]Pair, 0, m1.NumFaces*m2.NumFaces)
	for f1 := 0; f1 < m1.NumFaces; f1++ {
		for f2 := 0; f2 < m2.NumFaces; f2++ {
			pairs = append(pairs, Pair{F1: f1, F2: f2})
		}
	}
	return pairs
}
