// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshview

import "github.com/cpmech/gosl/chk"

// Registry owns all meshes known to one context. It replaces the source's
// package-level singleton mesh registry: a context holds exactly one
// Registry, so concurrent registration across independent contexts is not
// an issue, while concurrent registration within one remains disallowed as
// specified.
type Registry struct {
	meshes map[int]*MeshView
}

// NewRegistry allocates an empty mesh registry.
func NewRegistry() *Registry {
	return &Registry{meshes: make(map[int]*MeshView)}
}

// Register adds mesh to the registry under id. It is an error to register
// the same id twice.
func (o *Registry) Register(id int, mesh *MeshView) error {
	if _, exists := o.meshes[id]; exists {
		return chk.Err("meshview: mesh id=%d already registered", id)
	}
	mesh.ID = id
	o.meshes[id] = mesh
	return nil
}

// Get returns the mesh registered under id, or an error if none exists.
func (o *Registry) Get(id int) (*MeshView, error) {
	m, ok := o.meshes[id]
	if !ok {
		return nil, chk.Err("meshview: no mesh registered with id=%d", id)
	}
	return m, nil
}
