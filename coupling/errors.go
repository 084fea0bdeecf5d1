// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coupling

import "errors"

// Configuration-time error tags. Unlike geom's per-pair tags, these abort
// init() and leave the coupling scheme inert rather than being tallied.
var (
	ErrDifferentFaceTypes  = errors.New("DIFFERENT_FACE_TYPES")
	ErrInvalidCombination  = errors.New("INVALID_MODE_CASE_METHOD_COMBINATION")
	ErrMissingResponse     = errors.New("MISSING_REGISTERED_RESPONSE")
	ErrMissingThickness    = errors.New("MISSING_REGISTERED_THICKNESS")
	ErrSchemeNotInitalized = errors.New("SCHEME_NOT_INITIALIZED")
)

// Tally counts per-cycle geometric and resource diagnostics, per spec §7:
// geometric errors are never fatal and are tallied by category instead.
type Tally struct {
	InvalidFaceInput     int
	FaceOrientation      int
	DegenerateOverlap    int
	VertexIndexOverflow  int
	NoFaceGeom           int
	RejectedByAutoCutoff int
}

// Reset zeroes all counters; called at the start of each Apply.
func (t *Tally) Reset() {
	*t = Tally{}
}

// Total returns the sum of all tallied categories.
func (t *Tally) Total() int {
	return t.InvalidFaceInput + t.FaceOrientation + t.DegenerateOverlap +
		t.VertexIndexOverflow + t.NoFaceGeom + t.RejectedByAutoCutoff
}
