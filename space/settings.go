// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package space

import (
	"gopkg.in/yaml.v3"

	"github.com/space2d/engine/collision"
	"github.com/space2d/engine/solver"
)

// PositionCorrection selects how a space resolves penetration left over
// after the velocity solve.
type PositionCorrection = solver.PositionCorrection

const (
	Baumgarte = solver.Baumgarte
	NGS       = solver.NGS
)

// Settings holds the tunables of a Space's step pipeline. The zero value is
// not usable; construct with DefaultSettings.
type Settings struct {
	Baumgarte                 float64             `yaml:"baumgarte"`
	PenetrationSlop           float64             `yaml:"penetration_slop"`
	ContactPositionCorrection PositionCorrection  `yaml:"contact_position_correction"`
	VelocityIterations        int                 `yaml:"velocity_iterations"`
	PositionIterations        int                 `yaml:"position_iterations"`
	Substeps                  int                 `yaml:"substeps"`
	// LinearDamping and AngularDamping are space-level damping scales: each
	// body's own damping rate is applied over dt*scale rather than dt, so a
	// scale of 1 is the identity and a scale of 0 suspends damping for the
	// step regardless of the body's rate.
	LinearDamping             float64             `yaml:"linear_damping"`
	AngularDamping            float64             `yaml:"angular_damping"`
	Warmstarting              bool                `yaml:"warmstarting"`
	RestitutionMix            collision.MixRule   `yaml:"restitution_mix"`
	FrictionMix               collision.MixRule   `yaml:"friction_mix"`
	MaxLinearCorrection       float64             `yaml:"max_linear_correction"`
	UseKillBounds             bool                `yaml:"use_kill_bounds"`
}

// DefaultSettings returns the settings the teacher's own demos run with:
// Baumgarte position correction, 8 velocity iterations and 3 position
// iterations (used only under NGS), one substep, warmstarting enabled, the
// larger of the two restitutions and the geometric mean of the two frictions.
func DefaultSettings() Settings {

	return Settings{
		Baumgarte:                 0.2,
		PenetrationSlop:           0.005,
		ContactPositionCorrection: Baumgarte,
		VelocityIterations:        8,
		PositionIterations:        3,
		Substeps:                  1,
		LinearDamping:             1,
		AngularDamping:            1,
		Warmstarting:              true,
		RestitutionMix:            collision.MixMax,
		FrictionMix:               collision.MixSqrt,
		MaxLinearCorrection:       0.2,
	}
}

// LoadSettingsYAML decodes Settings from YAML, starting from
// DefaultSettings so an incomplete document still yields usable values.
func LoadSettingsYAML(data []byte) (Settings, error) {

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// MarshalYAML encodes s as YAML.
func (s Settings) MarshalYAML() (interface{}, error) {

	type plain Settings
	return plain(s), nil
}
