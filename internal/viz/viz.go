// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package viz writes the optional per-cycle visualization dump: the active
// overlap polygons of a coupling scheme, as a VTK XML PolyData (.vtp) file,
// grounded on the teacher's tools/Msh2vtu.go XML/ASCII emission style (plain
// io.Ff-based text writing, no binary VTK library).
package viz

import (
	"bytes"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/tribol/contact"
)

// WritePolygonDump writes one VTP file per cycle into dir, containing the
// active overlap polygons (in global coordinates) of planes. Planes with
// fewer than 3 vertices (the 2D line-contact case) are skipped: PolyData
// polygons require at least a triangle.
func WritePolygonDump(dir string, cycle int, planes []*contact.Plane) error {
	npts, npolys := 0, 0
	for _, pl := range planes {
		if len(pl.OverlapGlobal) < 3 {
			continue
		}
		npts += len(pl.OverlapGlobal)
		npolys++
	}

	var hdr, geo, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"PolyData\" version=\"0.1\" byte_order=\"LittleEndian\">\n<PolyData>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfPolys=\"%d\">\n", npts, npolys)

	io.Ff(&geo, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, pl := range planes {
		if len(pl.OverlapGlobal) < 3 {
			continue
		}
		for _, v := range pl.OverlapGlobal {
			z := 0.0
			if len(v) > 2 {
				z = v[2]
			}
			io.Ff(&geo, "%23.15e %23.15e %23.15e ", v[0], v[1], z)
		}
	}
	io.Ff(&geo, "\n</DataArray>\n</Points>\n")

	io.Ff(&geo, "<Polys>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	offset := 0
	for _, pl := range planes {
		if len(pl.OverlapGlobal) < 3 {
			continue
		}
		for i := range pl.OverlapGlobal {
			io.Ff(&geo, "%d ", offset+i)
		}
		offset += len(pl.OverlapGlobal)
	}
	io.Ff(&geo, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	running := 0
	for _, pl := range planes {
		if len(pl.OverlapGlobal) < 3 {
			continue
		}
		running += len(pl.OverlapGlobal)
		io.Ff(&geo, "%d ", running)
	}
	io.Ff(&geo, "\n</DataArray>\n</Polys>\n")

	io.Ff(&geo, "<CellData Scalars=\"gap\">\n<DataArray type=\"Float64\" Name=\"gap\" format=\"ascii\">\n")
	for _, pl := range planes {
		if len(pl.OverlapGlobal) < 3 {
			continue
		}
		io.Ff(&geo, "%23.15e ", pl.Gap)
	}
	io.Ff(&geo, "\n</DataArray>\n</CellData>\n")

	io.Ff(&foo, "</Piece>\n</PolyData>\n</VTKFile>\n")

	fname := io.Sf("contact_planes_%06d.vtp", cycle)
	io.WriteFileVD(dir, fname, &hdr, &geo, &foo)
	return nil
}
