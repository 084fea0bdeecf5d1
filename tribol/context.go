// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tribol is the host-facing API: lifecycle (Initialize/Finalize),
// mesh and field registration, coupling-scheme creation and stepping, and
// the Jacobian/gap/pressure accessors. It replaces the source's dual
// package-level singleton registries with a single owning Context handle
// (spec §9 redesign): global state is a convenience of the C ABI the
// source copies, not a requirement the Go port needs to keep.
package tribol

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/tribol/coupling"
	"github.com/cpmech/tribol/meshview"
	"github.com/cpmech/tribol/scheme"
)

// Context owns every mesh and coupling scheme created by one host session.
// There is no package-level state; a host that needs several independent
// interaction graphs simply holds several Contexts.
type Context struct {
	Dim  int
	Proc int // mpi.Rank(), 0 if MPI is not on
	Size int // mpi.Size(), 1 if MPI is not on

	Meshes *meshview.Registry

	mu      sync.Mutex
	schemes map[int]*scheme.Scheme
}

// Initialize constructs a Context for a dim-dimensional (2 or 3) analysis.
// It mirrors fem.NewFEM's multiprocessing setup: rank and size are read from
// the communicator the host already started via mpi.Start, not owned here —
// this library never calls mpi.Start/mpi.Stop itself, matching the spec's
// "managing MPI topology beyond a supplied communicator" non-goal.
func Initialize(dim int) (*Context, error) {
	if dim != 2 && dim != 3 {
		return nil, chk.Err("tribol: Initialize: dim must be 2 or 3, got %d", dim)
	}
	c := &Context{
		Dim:     dim,
		Proc:    0,
		Size:    1,
		Meshes:  meshview.NewRegistry(),
		schemes: make(map[int]*scheme.Scheme),
	}
	if mpi.IsOn() {
		c.Proc = mpi.Rank()
		c.Size = mpi.Size()
	}
	return c, nil
}

// Finalize releases every coupling scheme's per-cycle storage. The Context
// itself is ordinary garbage once dropped; there is no process-wide
// teardown left to perform.
func (c *Context) Finalize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.schemes {
		s.Finalize()
	}
	c.schemes = make(map[int]*scheme.Scheme)
}

// RegisterMesh allocates and registers a mesh view under id. dim, kind,
// numNodes and numFaces size the underlying arrays; the host fills
// Coords/Connectivity (and, via the Register* calls below, Velocities and
// ElementThickness) before the mesh is bound to any coupling scheme.
func (c *Context) RegisterMesh(id, numNodes, numFaces int, kind meshview.ElementType) (*meshview.MeshView, error) {
	m := meshview.New(id, c.Dim, kind, numNodes, numFaces)
	if err := c.Meshes.Register(id, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RegisterNodalVelocities attaches a N×Dim velocity array to the mesh
// registered under meshID, required for the timestep vote's
// velocity-projected interpenetration check.
func (c *Context) RegisterNodalVelocities(meshID int, velocities [][]float64) error {
	m, err := c.Meshes.Get(meshID)
	if err != nil {
		return err
	}
	if len(velocities) != m.NumNodes {
		return chk.Err("tribol: RegisterNodalVelocities: mesh %d expects %d nodes, got %d", meshID, m.NumNodes, len(velocities))
	}
	m.Velocities = velocities
	return nil
}

// RegisterNodalResponse overrides the mesh's response (force) sink with a
// host-supplied buffer, e.g. a view into the host's own residual vector.
func (c *Context) RegisterNodalResponse(meshID int, response [][]float64) error {
	m, err := c.Meshes.Get(meshID)
	if err != nil {
		return err
	}
	if len(response) != m.NumNodes {
		return chk.Err("tribol: RegisterNodalResponse: mesh %d expects %d nodes, got %d", meshID, m.NumNodes, len(response))
	}
	m.Response = response
	return nil
}

// RegisterElementThickness attaches a per-face thickness array, required by
// the AUTO contact case and by element-wise penalty stiffness.
func (c *Context) RegisterElementThickness(meshID int, thickness []float64) error {
	m, err := c.Meshes.Get(meshID)
	if err != nil {
		return err
	}
	if len(thickness) != m.NumFaces {
		return chk.Err("tribol: RegisterElementThickness: mesh %d expects %d faces, got %d", meshID, m.NumFaces, len(thickness))
	}
	m.ElementThickness = thickness
	return nil
}

// CreateCouplingScheme configures and initializes a new coupling scheme
// between mesh1 and mesh2, registering it under schemeID. Init runs
// immediately (spec §4.6's constructed -> initialized transition): a
// configuration or S6-style face-type mismatch fails here, before any
// cycle is driven.
func (c *Context) CreateCouplingScheme(schemeID, mesh1ID, mesh2ID int, cfg coupling.Config) error {
	m1, err := c.Meshes.Get(mesh1ID)
	if err != nil {
		return err
	}
	m2, err := c.Meshes.Get(mesh2ID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if _, exists := c.schemes[schemeID]; exists {
		c.mu.Unlock()
		return chk.Err("tribol: coupling scheme id=%d already exists", schemeID)
	}
	c.mu.Unlock()

	s := scheme.New(schemeID, cfg, m1, m2)
	if err := s.Init(); err != nil {
		return err
	}

	c.mu.Lock()
	c.schemes[schemeID] = s
	c.mu.Unlock()
	return nil
}

// Scheme returns the coupling scheme registered under schemeID.
func (c *Context) Scheme(schemeID int) (*scheme.Scheme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.schemes[schemeID]
	if !ok {
		return nil, chk.Err("tribol: no coupling scheme registered with id=%d", schemeID)
	}
	return s, nil
}

// Update drives one cycle of schemeID: binning (unless pinned) followed by
// apply, returning the timestep vote. A non-nil error means the cycle did
// not complete (spec §7's "positive return code from update()" maps to a
// returned error here); per-pair geometry errors never cause this, only
// configuration or resource failures do.
func (c *Context) Update(schemeID, cycle int, t, dt float64) (float64, error) {
	s, err := c.Scheme(schemeID)
	if err != nil {
		return dt, err
	}
	if err := s.PerformBinning(); err != nil {
		return dt, err
	}
	return s.Apply(cycle, t, dt)
}
