// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "errors"

// Geometric error tags, preserved bit-exactly as a small sentinel set so
// callers can tally per-category failures (they are never fatal — a
// face-pair error is always a silent drop from the active contact set).
var (
	ErrInvalidFaceInput                      = errors.New("INVALID_FACE_INPUT")
	ErrFaceOrientation                       = errors.New("FACE_ORIENTATION")
	ErrDegenerateOverlap                     = errors.New("DEGENERATE_OVERLAP")
	ErrFaceVertexIndexExceedsOverlapVertices = errors.New("FACE_VERTEX_INDEX_EXCEEDS_OVERLAP_VERTICES")
	ErrNoFaceGeom                            = errors.New("NO_FACE_GEOM_ERROR")
)
