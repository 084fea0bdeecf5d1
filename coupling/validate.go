// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coupling

import "github.com/cpmech/gosl/io"

// Validate checks cfg against the allow-listed case/method/model/
// enforcement combinations, auto-correcting one conflict with a warning
// (NO_SLIDING with BINNING_GRID becomes BINNING_CARTESIAN_PRODUCT) and
// rejecting the others with a tagged error. The contact mode is not
// checked, and no case is overridden for conforming surfaces.
func (cfg *Config) Validate() (warnings []string, err error) {

	// method <-> enforcement pairing
	switch cfg.Method {
	case CommonPlane:
		if cfg.Enforcement != Penalty {
			return warnings, ErrInvalidCombination
		}
	case SingleMortar, AlignedMortar, MortarWeights:
		if cfg.Enforcement != LagrangeMultiplier && cfg.Method != MortarWeights {
			return warnings, ErrInvalidCombination
		}
	default:
		return warnings, ErrInvalidCombination
	}

	// model <-> method pairing: TIED model is only meaningful under
	// common-plane penalty (cohesive spring), never under mortar.
	if cfg.Model == Tied && cfg.Method != CommonPlane {
		return warnings, ErrInvalidCombination
	}

	// NO_SLIDING pins binning to the Cartesian product since topology
	// cannot evolve; auto-correct a conflicting explicit grid request with
	// a warning rather than reject.
	if cfg.Case == NoSliding && cfg.Binning == BinningGrid {
		warnings = append(warnings, io.Sf("NO_SLIDING forces BINNING_CARTESIAN_PRODUCT; overriding requested BINNING_GRID"))
		cfg.Binning = BinningCartesianProduct
	}

	// AUTO case requires element thickness to be registered on both
	// meshes; the binding itself is checked against the mesh views at
	// Scheme.Init since Config alone doesn't carry mesh state.
	if cfg.Case == Auto && cfg.Penalty.AutoThicknessFrac <= 0 {
		return warnings, ErrInvalidCombination
	}

	if cfg.PosTol <= 0 || cfg.LenTol <= 0 {
		return warnings, ErrInvalidCombination
	}

	return warnings, nil
}

// PinsBinning reports whether binning must stay fixed after the first
// cycle: Cartesian-product policy, or NO_SLIDING cases where topology
// cannot evolve.
func (cfg *Config) PinsBinning() bool {
	return cfg.Binning == BinningCartesianProduct || cfg.Case == NoSliding
}
