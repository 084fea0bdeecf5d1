// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package meshview implements the read-only, host-populated descriptor of
// one surface mesh: connectivity, nodal coordinates, per-face cached data,
// and the nodal response (force) sink that the physics kernel accumulates
// into. Mesh coordinates and connectivity are read-only within a cycle;
// only RefreshFaceCache mutates cached face data, and only at cycle start.
package meshview

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// ElementType enumerates the supported face topologies.
type ElementType int

const (
	Segment ElementType = iota // V=2, 2D
	Triangle                   // V=3, 3D
	Quad                       // V=4, 3D
)

// VertsPerFace returns the number of vertices a face of this type carries.
func (t ElementType) VertsPerFace() int {
	switch t {
	case Segment:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	}
	return 0
}

// MeshView is a read-only, device-copyable descriptor of one surface mesh.
type MeshView struct {
	ID   int
	Dim  int // spatial dimension, 2 or 3
	Kind ElementType

	NumNodes int
	NumFaces int

	Connectivity [][]int     // [NumFaces][VertsPerFace] indices into Coords
	Coords       [][]float64 // [NumNodes][Dim]
	Velocities   [][]float64 // [NumNodes][Dim], optional (nil if absent)
	Response     [][]float64 // [NumNodes][Dim], writable response (force) sink

	ElementThickness []float64 // [NumFaces], optional (required for AUTO case)

	// per-face cached data, recomputed by RefreshFaceCache at cycle start
	Normals   [][]float64 // [NumFaces][Dim]
	Centroids [][]float64 // [NumFaces][Dim]
	Radii     []float64   // [NumFaces]
	Areas     []float64   // [NumFaces]

	mu sync.Mutex // guards Response during host-parallel accumulation
}

// New allocates a MeshView with the given topology and node/face counts.
// Coords, Connectivity and Response must be populated by the host before
// the mesh is usable.
func New(id, dim int, kind ElementType, numNodes, numFaces int) *MeshView {
	return &MeshView{
		ID:           id,
		Dim:          dim,
		Kind:         kind,
		NumNodes:     numNodes,
		NumFaces:     numFaces,
		Connectivity: make([][]int, numFaces),
		Coords:       la.MatAlloc(numNodes, dim),
		Response:     la.MatAlloc(numNodes, dim),
		Normals:      la.MatAlloc(numFaces, dim),
		Centroids:    la.MatAlloc(numFaces, dim),
		Radii:        make([]float64, numFaces),
		Areas:        make([]float64, numFaces),
	}
}

// Validate checks the invariants required before the mesh can be bound to a
// coupling scheme: non-zero node and face counts, identical vertex count per
// face, node indices in range, and a registered response sink. Coordinate
// array sizes and element thickness are not checked here.
func (o *MeshView) Validate() error {
	if o.NumNodes == 0 {
		return chk.Err("meshview: mesh %d registered with 0 nodes", o.ID)
	}
	if o.NumFaces == 0 {
		return chk.Err("meshview: mesh %d registered with 0 faces", o.ID)
	}
	vpf := o.Kind.VertsPerFace()
	for f, conn := range o.Connectivity {
		if len(conn) != vpf {
			return chk.Err("meshview: mesh %d face %d has %d vertices, expected %d", o.ID, f, len(conn), vpf)
		}
		for _, nid := range conn {
			if nid < 0 || nid >= o.NumNodes {
				return chk.Err("meshview: mesh %d face %d references out-of-range node %d", o.ID, f, nid)
			}
		}
	}
	if o.Response == nil {
		return chk.Err("meshview: mesh %d has no registered nodal response sink", o.ID)
	}
	return nil
}

// FaceCoords returns the V·Dim coordinates of faceID's vertices.
func (o *MeshView) FaceCoords(faceID int) [][]float64 {
	conn := o.Connectivity[faceID]
	out := make([][]float64, len(conn))
	for i, nid := range conn {
		out[i] = o.Coords[nid]
	}
	return out
}

// FaceVelocities returns the V·Dim velocities of faceID's vertices, or nil
// if velocities were not registered.
func (o *MeshView) FaceVelocities(faceID int) [][]float64 {
	if o.Velocities == nil {
		return nil
	}
	conn := o.Connectivity[faceID]
	out := make([][]float64, len(conn))
	for i, nid := range conn {
		out[i] = o.Velocities[nid]
	}
	return out
}

// ElementThicknessAt returns the cached element thickness of faceID.
func (o *MeshView) ElementThicknessAt(faceID int) (float64, error) {
	if o.ElementThickness == nil {
		return 0, chk.Err("meshview: mesh %d has no registered element thickness", o.ID)
	}
	return o.ElementThickness[faceID], nil
}

// AddResponse atomically accumulates value into node nodeID's response
// along dimension d. Safe for concurrent host-parallel callers.
func (o *MeshView) AddResponse(nodeID, d int, value float64) {
	o.mu.Lock()
	o.Response[nodeID][d] += value
	o.mu.Unlock()
}

// ClearResponse zeroes the response buffer; owned by the host, called
// between cycles.
func (o *MeshView) ClearResponse() {
	for i := range o.Response {
		for d := range o.Response[i] {
			o.Response[i][d] = 0
		}
	}
}

// RefreshFaceCache recomputes normal, centroid, radius and area for every
// face. Called only at the start of a cycle that will bin, never during
// Apply.
func (o *MeshView) RefreshFaceCache() error {
	for f := 0; f < o.NumFaces; f++ {
		verts := o.FaceCoords(f)
		centroid, err := centroidOf(verts)
		if err != nil {
			return chk.Err("meshview: mesh %d face %d: %v", o.ID, f, err)
		}
		copy(o.Centroids[f], centroid)

		normal, area, err := normalAndArea(o.Dim, verts)
		if err != nil {
			return chk.Err("meshview: mesh %d face %d: %v", o.ID, f, err)
		}
		copy(o.Normals[f], normal)
		o.Areas[f] = area

		var radius float64
		for _, v := range verts {
			d := distance(v, centroid)
			if d > radius {
				radius = d
			}
		}
		o.Radii[f] = radius
	}
	return nil
}

func centroidOf(verts [][]float64) ([]float64, error) {
	nd := len(verts[0])
	c := make([]float64, nd)
	for _, v := range verts {
		for i := 0; i < nd; i++ {
			c[i] += v[i]
		}
	}
	for i := 0; i < nd; i++ {
		c[i] /= float64(len(verts))
	}
	return c, nil
}

func distance(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return math.Sqrt(s)
}

// normalAndArea computes the outward unit normal and area of a planar face.
// In 2D (segment) the "normal" is the perpendicular to the segment and the
// "area" is its length. In 3D the normal is the (Newell's-method) average
// face normal, robust to mild non-planarity, and the area is half the
// magnitude of the Newell normal vector (the polygon area for a planar face).
func normalAndArea(dim int, verts [][]float64) (normal []float64, area float64, err error) {
	if dim == 2 {
		if len(verts) != 2 {
			return nil, 0, chk.Err("normalAndArea: 2D face must have 2 vertices, got %d", len(verts))
		}
		dx := verts[1][0] - verts[0][0]
		dy := verts[1][1] - verts[0][1]
		length := math.Sqrt(dx*dx + dy*dy)
		if length < 1e-14 {
			return nil, 0, chk.Err("normalAndArea: degenerate zero-length segment")
		}
		normal = []float64{dy / length, -dx / length}
		area = length
		return normal, area, nil
	}

	n := len(verts)
	if n < 3 {
		return nil, 0, chk.Err("normalAndArea: 3D face must have >=3 vertices, got %d", n)
	}
	nx, ny, nz := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		cur := verts[i]
		nxt := verts[(i+1)%n]
		nx += (cur[1] - nxt[1]) * (cur[2] + nxt[2])
		ny += (cur[2] - nxt[2]) * (cur[0] + nxt[0])
		nz += (cur[0] - nxt[0]) * (cur[1] + nxt[1])
	}
	norm := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if norm < 1e-14 {
		return nil, 0, chk.Err("normalAndArea: degenerate planar face, zero normal")
	}
	normal = []float64{nx / norm, ny / norm, nz / norm}
	area = 0.5 * norm
	return normal, area, nil
}
