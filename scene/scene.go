// seehuhn.de/go/grism - simulated slitless spectroscopy images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package scene reads simulation inputs from YAML files.
//
// A scene file describes the detector, the instrument configuration, and
// the catalog of objects.  Spectral curves can be given inline or as
// two-column text files, relative to the directory of the scene file.
package scene

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scene is the file form of a simulation run.
type Scene struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	ExpTime    float64 `yaml:"exptime"`
	Background float64 `yaml:"background,omitempty"`
	Workers    int     `yaml:"workers,omitempty"`
	Subsample  int     `yaml:"subsample,omitempty"`

	Config  Config         `yaml:"config"`
	Objects []Object       `yaml:"objects"`
	SEDs    map[int]Curve  `yaml:"seds,omitempty"`
	Cutouts map[int]Cutout `yaml:"cutouts,omitempty"`

	// Dir is the directory used to resolve relative file names.
	Dir string `yaml:"-"`
}

// Config is the file form of [grism.InstrumentConfig].
type Config struct {
	LambdaPSF float64     `yaml:"lambda_psf,omitempty"`
	PSFCoeffs []float64   `yaml:"psf_coeffs,omitempty,flow"`
	PSFRange  []float64   `yaml:"psf_range,omitempty,flow"`
	Drizzle   [][]float64 `yaml:"drizzle,omitempty,flow"`
	Beams     []Beam      `yaml:"beams"`
}

// Beam is the file form of [grism.BeamConfig].
type Beam struct {
	ID          string    `yaml:"id"`
	DXStart     int       `yaml:"dx_start"`
	DXEnd       int       `yaml:"dx_end"`
	Offset      []float64 `yaml:"offset,omitempty,flow"`
	Trace       []float64 `yaml:"trace,flow"`
	Dispersion  []float64 `yaml:"dispersion,flow"`
	Sensitivity Curve     `yaml:"sensitivity"`
	PSFOffset   float64   `yaml:"psf_offset,omitempty"`

	// Area is the collecting area in cm².  If it is set, Sensitivity is a
	// unitless throughput and is converted to counts per flux unit.
	Area float64 `yaml:"area,omitempty"`
}

// Object is one catalog entry.  All beams of an object have their
// reference point at the object position.
type Object struct {
	ID      int       `yaml:"id"`
	X       float64   `yaml:"x"`
	Y       float64   `yaml:"y"`
	Profile string    `yaml:"profile,omitempty"`
	A       float64   `yaml:"a"`
	B       float64   `yaml:"b"`
	Theta   float64   `yaml:"theta,omitempty"`
	Mags    []Mag     `yaml:"mags,omitempty,flow"`
	Beams   []BeamRef `yaml:"beams"`
}

// Mag is an AB magnitude at a wavelength in Ångström.
type Mag struct {
	Lambda float64 `yaml:"lambda"`
	Mag    float64 `yaml:"mag"`
}

// BeamRef selects a configured beam for an object.
type BeamRef struct {
	ID     string `yaml:"id"`
	Ignore bool   `yaml:"ignore,omitempty"`
}

// Curve is a tabulated function, either inline or read from File.
type Curve struct {
	File       string    `yaml:"file,omitempty"`
	Wavelength []float64 `yaml:"wavelength,omitempty,flow"`
	Value      []float64 `yaml:"value,omitempty,flow"`
}

// Cutout is a direct image cutout.  RefX and RefY give the position of
// the object within the cutout.  If Normalize is set, the cutout is
// scaled to unit sum.
type Cutout struct {
	Rows      [][]float64 `yaml:"rows,flow"`
	RefX      float64     `yaml:"ref_x"`
	RefY      float64     `yaml:"ref_y"`
	Normalize bool        `yaml:"normalize,omitempty"`
}

// ErrInvalid is returned for scenes which fail validation.
var ErrInvalid = errors.New("scene: invalid")

// Load reads and validates a scene file.
func Load(fname string) (*Scene, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	s := &Scene{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	s.Dir = filepath.Dir(fname)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return s, nil
}

// Save writes the scene as YAML.
func (s *Scene) Save(fname string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(fname, data, 0o644)
}

// Validate checks the scene for errors which can be found without
// building the simulation input.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalid, s.Width, s.Height)
	}
	if !(s.ExpTime > 0) {
		return fmt.Errorf("%w: exposure time %g", ErrInvalid, s.ExpTime)
	}
	if !(s.Background >= 0) {
		return fmt.Errorf("%w: background %g", ErrInvalid, s.Background)
	}
	if s.Workers < 0 || s.Subsample < 0 {
		return fmt.Errorf("%w: negative workers or subsample", ErrInvalid)
	}
	if r := s.Config.PSFRange; r != nil && len(r) != 2 {
		return fmt.Errorf("%w: psf_range needs two values", ErrInvalid)
	}

	check := func(what string, c Curve) error {
		if c.File == "" {
			return nil
		}
		if _, err := os.Stat(s.path(c.File)); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, what, err)
		}
		return nil
	}
	for _, b := range s.Config.Beams {
		if err := check("beam "+b.ID, b.Sensitivity); err != nil {
			return err
		}
		if b.Area < 0 || math.IsNaN(b.Area) {
			return fmt.Errorf("%w: beam %s: negative collecting area", ErrInvalid, b.ID)
		}
		if b.Offset != nil && len(b.Offset) != 2 {
			return fmt.Errorf("%w: beam %s: offset needs two values", ErrInvalid, b.ID)
		}
	}
	for id, c := range s.SEDs {
		if err := check(fmt.Sprintf("SED %d", id), c); err != nil {
			return err
		}
	}
	seen := make(map[int]bool)
	for _, obj := range s.Objects {
		if seen[obj.ID] {
			return fmt.Errorf("%w: duplicate object %d", ErrInvalid, obj.ID)
		}
		seen[obj.ID] = true
	}
	return nil
}

func (s *Scene) path(fname string) string {
	if filepath.IsAbs(fname) || s.Dir == "" {
		return fname
	}
	return filepath.Join(s.Dir, fname)
}
