// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package coupling implements the contact interaction configuration, its
// validation against the allow-listed case/method/model/enforcement
// combinations, the configuration-time error tags and the per-cycle Tally.
// The coupling-scheme state machine and the timestep vote live in package
// scheme.
package coupling

// ContactMode enumerates the supported contact modes. Values are preserved
// bit-exactly for host compatibility.
type ContactMode int

const (
	SurfaceToSurface ContactMode = iota
	SurfaceToSurfaceConforming
)

// ContactCase enumerates the supported contact cases.
type ContactCase int

const (
	NoCase ContactCase = iota
	NoSliding
	Auto
	TiedNormal
)

// Method enumerates the supported enforcement methods.
type Method int

const (
	CommonPlane Method = iota
	SingleMortar
	AlignedMortar
	MortarWeights
)

// Model enumerates the supported contact models.
type Model int

const (
	Frictionless Model = iota
	Tied
	Coulomb // reserved
	NullModel
)

// Enforcement enumerates the supported constraint enforcement strategies.
type Enforcement int

const (
	Penalty Enforcement = iota
	LagrangeMultiplier
	NullEnforcement
)

// BinningPolicy enumerates the supported candidate-pair binning policies.
type BinningPolicy int

const (
	BinningCartesianProduct BinningPolicy = iota
	BinningGrid
)

// LogLevel enumerates the supported logging verbosity levels.
type LogLevel int

const (
	Undefined LogLevel = iota
	Debug
	Info
	Warning
	Error
)

// PenaltyOptions configures the common-plane penalty method.
type PenaltyOptions struct {
	ConstantStiffness bool    `json:"constant_stiffness"` // true: Stiffness is used as-is; false: element-wise k = k_host*area/t_eff
	Stiffness         float64 `json:"stiffness"`          // penalty stiffness when ConstantStiffness; otherwise k_host of the element-wise formula
	GapTolRatio       float64 `json:"gap_tol_ratio"`      // gap_tol = -GapTolRatio * max(r1,r2) for non-TIED models
	GapTiedTol        float64 `json:"gap_tied_tol"`       // gap_tol = GapTiedTol * max(r1,r2) for TIED model
	AutoThicknessFrac float64 `json:"auto_thickness_frac"` // AUTO case interpenetration cutoff, as a fraction of min(t1,t2)
}

// LagrangeOptions configures the Lagrange-multiplier (mortar) enforcement.
type LagrangeOptions struct {
	GaussPointsPerAxis int `json:"gauss_points_per_axis"` // default 2; the mortar kernel always uses the 2x2 rule and does not read this value
}

// Config holds one coupling scheme's configuration. JSON tags mirror the
// host .sim-file convention so a host can serialize/deserialize scheme
// setup even though file I/O itself is out of this library's scope.
type Config struct {
	Mode        ContactMode   `json:"mode"`
	Case        ContactCase   `json:"case"`
	Method      Method        `json:"method"`
	Model       Model         `json:"model"`
	Enforcement Enforcement   `json:"enforcement"`
	Binning     BinningPolicy `json:"binning"`

	Penalty  PenaltyOptions  `json:"penalty"`
	Lagrange LagrangeOptions `json:"lagrange"`

	PosTol float64 `json:"pos_tol"` // positional tolerance for geometric predicates
	LenTol float64 `json:"len_tol"` // minimum accepted overlap-edge length

	OrientationMargin float64 `json:"orientation_margin"` // required margin below zero for n1.n2 to pass the orientation filter

	LogLevel LogLevel `json:"log_level"`
	VizDir   string   `json:"viz_dir"` // optional visualization dump directory; empty disables dumping
}

// DefaultConfig returns a Config with the tolerances the teacher's geometry
// code uses for comparable purposes (shp.MINDET-scale absolute floors),
// scaled to contact-plane-sized tolerances.
func DefaultConfig() Config {
	return Config{
		Mode:        SurfaceToSurface,
		Case:        NoCase,
		Method:      CommonPlane,
		Model:       Frictionless,
		Enforcement: Penalty,
		Binning:     BinningGrid,
		Penalty: PenaltyOptions{
			ConstantStiffness: true,
			Stiffness:         1.0,
			GapTolRatio:       1.0e-3,
			GapTiedTol:        1.0e-1,
			AutoThicknessFrac: 0.5,
		},
		Lagrange: LagrangeOptions{
			GaussPointsPerAxis: 2,
		},
		PosTol:            1.0e-9,
		LenTol:            1.0e-9,
		OrientationMargin: 1.0e-6,
		LogLevel:          Info,
	}
}
