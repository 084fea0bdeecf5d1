// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/tribol/contact"
)

func Test_write_polygon_dump(tst *testing.T) {

	chk.PrintTitle("write one VTP polygon dump per cycle")

	dir, err := os.MkdirTemp("", "tribol-viz")
	if err != nil {
		tst.Fatal(err)
	}
	defer os.RemoveAll(dir)

	pl := &contact.Plane{
		Gap: -0.05,
		OverlapGlobal: [][]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		},
	}

	if err := WritePolygonDump(dir, 3, []*contact.Plane{pl}); err != nil {
		tst.Fatal(err)
	}

	out := filepath.Join(dir, "contact_planes_000003.vtp")
	if _, err := os.Stat(out); err != nil {
		tst.Fatalf("expected dump file to exist: %v", err)
	}
}
