// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package scheme implements the coupling-scheme state machine: the
// orchestrator that holds configuration, owns the pair list and contact-plane
// arrays, and sequences init -> bin -> apply -> timestep-vote for one
// configured contact interaction between two mesh views.
package scheme

import (
	"errors"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/tribol/contact"
	"github.com/cpmech/tribol/coupling"
	"github.com/cpmech/tribol/geom"
	"github.com/cpmech/tribol/internal/viz"
	"github.com/cpmech/tribol/meshview"
	"github.com/cpmech/tribol/pairfinder"
)

// State enumerates the coupling-scheme lifecycle:
// constructed -> initialized -> {binned -> applied}* -> finalized.
type State int

const (
	Constructed State = iota
	Initialized
	Binned
	Applied
	Finalized
)

// Scheme is one configured contact interaction between two mesh views. A
// single Scheme must run perform_binning/apply to completion before another
// call starts; the source's concurrency model runs one scheme at a time,
// never two schemes' kernels interleaved.
type Scheme struct {
	ID  int
	Cfg coupling.Config
	M1  *meshview.MeshView
	M2  *meshview.MeshView

	state  State
	finder pairfinder.Finder
	binned bool // true once perform_binning has run at least once, for pinned policies

	Pairs  []pairfinder.Pair
	Planes []*contact.Plane
	Mortar []*contact.MortarElem

	Tally coupling.Tally
}

// New constructs a coupling scheme over m1/m2 with cfg. The scheme starts in
// state Constructed; Init must be called before PerformBinning or Apply.
func New(id int, cfg coupling.Config, m1, m2 *meshview.MeshView) *Scheme {
	return &Scheme{ID: id, Cfg: cfg, M1: m1, M2: m2, state: Constructed}
}

// State returns the scheme's current lifecycle state.
func (s *Scheme) State() State {
	return s.state
}

// Init validates configuration, verifies resources required by the
// configured case/method are registered, computes face-cached data on both
// meshes, and selects the pair finder. For mortar methods it also requires
// both meshes to share face topology: a mortar segment integrates a
// nonmortar face against a mortar face using the same shape functions on
// both sides, so mismatched vertex counts make the projection undefined.
// Common-plane pairs carry no such restriction — a triangulated surface
// against a quad surface is an ordinary physical case there, since each
// face's shape functions are evaluated independently of the other's. This
// is the only place ErrDifferentFaceTypes, ErrMissingResponse and
// ErrMissingThickness surface.
func (s *Scheme) Init() error {
	warnings, err := s.Cfg.Validate()
	for _, w := range warnings {
		s.logf(coupling.Warning, "%s", w)
	}
	if err != nil {
		return err
	}

	if isMortarMethod(s.Cfg.Method) && (s.M1.Kind != s.M2.Kind || s.M1.Kind.VertsPerFace() != s.M2.Kind.VertsPerFace()) {
		return coupling.ErrDifferentFaceTypes
	}
	if err := s.M1.Validate(); err != nil {
		return err
	}
	if err := s.M2.Validate(); err != nil {
		return err
	}
	if s.M1.Response == nil || s.M2.Response == nil {
		return coupling.ErrMissingResponse
	}
	if s.Cfg.Case == coupling.Auto {
		if s.M1.ElementThickness == nil || s.M2.ElementThickness == nil {
			return coupling.ErrMissingThickness
		}
	}
	if !s.Cfg.Penalty.ConstantStiffness && s.Cfg.Method == coupling.CommonPlane {
		if s.M1.ElementThickness == nil || s.M2.ElementThickness == nil {
			return coupling.ErrMissingThickness
		}
	}

	if err := s.M1.RefreshFaceCache(); err != nil {
		return err
	}
	if err := s.M2.RefreshFaceCache(); err != nil {
		return err
	}

	switch s.Cfg.Binning {
	case coupling.BinningGrid:
		s.finder = pairfinder.GridFinder{}
	default:
		s.finder = pairfinder.CartesianFinder{}
	}

	s.state = Initialized
	return nil
}

// PerformBinning refreshes both meshes' cached face data and invokes the
// pair finder, unless a prior cycle pinned binning (Cartesian-product
// policy, or NO_SLIDING, where the candidate set cannot evolve cycle to
// cycle) and binning has already run once.
func (s *Scheme) PerformBinning() error {
	if s.state == Constructed {
		return coupling.ErrSchemeNotInitalized
	}
	if s.binned && s.Cfg.PinsBinning() {
		s.state = Binned
		return nil
	}
	if err := s.M1.RefreshFaceCache(); err != nil {
		return err
	}
	if err := s.M2.RefreshFaceCache(); err != nil {
		return err
	}
	s.Pairs = s.finder.FindPairs(s.M1, s.M2)
	s.binned = true
	s.state = Binned
	return nil
}

// Apply runs the contact-plane builder in parallel over candidate pairs,
// compacts the active contact-plane array, runs the physics kernel, writes
// the polygon dump when Cfg.VizDir is set, and returns the timestep vote
// for this cycle: min(dt, ComputeTimestep(dt)).
// Per-pair geometry errors are tallied by category and never abort the
// cycle; only a resource or state error is returned.
func (s *Scheme) Apply(cycle int, t, dt float64) (float64, error) {
	if s.state != Binned && s.state != Applied {
		return dt, coupling.ErrSchemeNotInitalized
	}

	s.Tally.Reset()
	planes := make([]*contact.Plane, len(s.Pairs))
	errs := make([]error, len(s.Pairs))

	var wg sync.WaitGroup
	for i, p := range s.Pairs {
		wg.Add(1)
		go func(i int, p pairfinder.Pair) {
			defer wg.Done()
			pl, err := contact.CheckInterfacePair(&s.Cfg, s.M1, s.M2, p.F1, p.F2)
			planes[i] = pl
			errs[i] = err
		}(i, p)
	}
	wg.Wait()

	s.Planes = s.Planes[:0]
	for i, pl := range planes {
		if err := errs[i]; err != nil {
			s.tallyError(err)
			continue
		}
		if pl == nil {
			continue
		}
		if pl.InContact {
			s.Planes = append(s.Planes, pl)
		} else if pl.AutoCutoffReject {
			s.Tally.RejectedByAutoCutoff++
		}
	}

	if s.Tally.Total() > 0 {
		s.logf(coupling.Debug, "cycle %d: %d/%d candidate pairs dropped (%+v)", cycle, s.Tally.Total(), len(s.Pairs), s.Tally)
	}

	if err := s.runKernel(); err != nil {
		return dt, err
	}

	if s.Cfg.VizDir != "" {
		if err := viz.WritePolygonDump(s.Cfg.VizDir, cycle, s.Planes); err != nil {
			return dt, err
		}
	}

	vote := s.ComputeTimestep(dt)
	s.state = Applied
	return vote, nil
}

// isMortarMethod reports whether method integrates a mortar segment against
// a nonmortar segment, as opposed to the common-plane methods that treat
// each face's geometry independently.
func isMortarMethod(method coupling.Method) bool {
	switch method {
	case coupling.SingleMortar, coupling.AlignedMortar, coupling.MortarWeights:
		return true
	}
	return false
}

// runKernel dispatches the configured enforcement method over the active
// contact-plane array.
func (s *Scheme) runKernel() error {
	if isMortarMethod(s.Cfg.Method) {
		elems, err := contact.ApplyMortar(&s.Cfg, s.Planes, s.M1, s.M2)
		if err != nil {
			return err
		}
		s.Mortar = elems
		return nil
	}
	if s.Cfg.Method == coupling.CommonPlane {
		return contact.ApplyCommonPlanePenalty(&s.Cfg, s.Planes, s.M1, s.M2)
	}
	return chk.Err("scheme: unsupported method %v", s.Cfg.Method)
}

// ComputeTimestep implements the timestep vote (spec §5): for every active
// plane, projects the relative normal velocity of the two faces forward by
// dt and, if the projected interpenetration would exceed the AUTO-style
// thickness fraction, proposes a smaller dt that exactly reaches the cutoff.
// The near-zero-velocity floor is an absolute 1e-12, not scaled by mesh
// size — an explicit resolution of the open question on this constant,
// matching the teacher's convention of small absolute numerical-noise
// floors (shp.MINDET and friends) rather than relative ones.
func (s *Scheme) ComputeTimestep(dt float64) float64 {
	const velFloor = 1e-12
	vote := dt
	for _, pl := range s.Planes {
		v1 := meanNormalVelocity(s.M1, pl.F1, pl.Normal)
		v2 := meanNormalVelocity(s.M2, pl.F2, pl.Normal)
		approach := v2 - v1
		if approach > -velFloor {
			continue // faces not closing (to within the noise floor)
		}
		t1, err1 := s.M1.ElementThicknessAt(pl.F1)
		t2, err2 := s.M2.ElementThicknessAt(pl.F2)
		if err1 != nil || err2 != nil {
			continue
		}
		minT := t1
		if t2 < minT {
			minT = t2
		}
		cutoff := -s.Cfg.Penalty.AutoThicknessFrac * minT
		projectedGap := pl.Gap + approach*dt
		if projectedGap >= cutoff {
			continue
		}
		safe := (cutoff - pl.Gap) / approach
		if safe < vote {
			vote = safe
		}
	}
	if vote < 0 {
		vote = 0
	}
	return vote
}

// meanNormalVelocity averages faceID's vertex velocities and projects onto
// normal; returns 0 if velocities were not registered.
func meanNormalVelocity(m *meshview.MeshView, faceID int, normal []float64) float64 {
	vel := m.FaceVelocities(faceID)
	if vel == nil {
		return 0
	}
	avg := make([]float64, len(normal))
	for _, v := range vel {
		for i := range v {
			avg[i] += v[i]
		}
	}
	n := float64(len(vel))
	var proj float64
	for i := range avg {
		proj += (avg[i] / n) * normal[i]
	}
	return proj
}

// tallyError increments the Tally category matching err, per spec §7.
func (s *Scheme) tallyError(err error) {
	switch {
	case errors.Is(err, geom.ErrInvalidFaceInput):
		s.Tally.InvalidFaceInput++
	case errors.Is(err, geom.ErrFaceOrientation):
		s.Tally.FaceOrientation++
	case errors.Is(err, geom.ErrDegenerateOverlap):
		s.Tally.DegenerateOverlap++
	case errors.Is(err, geom.ErrFaceVertexIndexExceedsOverlapVertices):
		s.Tally.VertexIndexOverflow++
	case errors.Is(err, geom.ErrNoFaceGeom):
		s.Tally.NoFaceGeom++
	default:
		s.Tally.NoFaceGeom++
	}
}

// Finalize releases per-cycle storage and transitions the scheme to
// Finalized. Idempotent.
func (s *Scheme) Finalize() {
	s.Pairs = nil
	s.Planes = nil
	s.Mortar = nil
	s.state = Finalized
}

func (s *Scheme) logf(level coupling.LogLevel, format string, args ...interface{}) {
	if s.Cfg.LogLevel == coupling.Undefined || level < s.Cfg.LogLevel {
		return
	}
	msg := io.Sf(format, args...)
	switch level {
	case coupling.Error:
		io.PfRed("scheme %d: %s\n", s.ID, msg)
	case coupling.Warning:
		io.PfYel("scheme %d: %s\n", s.ID, msg)
	default:
		io.Pf("scheme %d: %s\n", s.ID, msg)
	}
}
