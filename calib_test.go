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

package grism

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/grism/spectrum"
)

func TestPoly(t *testing.T) {
	p := Poly{1, -2, 3}
	assert.Equal(t, 1.0, p.Eval(0))
	assert.Equal(t, 2.0, p.Eval(1))
	assert.Equal(t, 6.0, p.Eval(-1))
	assert.Equal(t, -2.0, p.Deriv(0))
	assert.Equal(t, 10.0, p.Deriv(2))
	assert.Zero(t, Poly{}.Eval(3))
	assert.Zero(t, Poly{5}.Deriv(3))
}

func TestBeamIDString(t *testing.T) {
	assert.Equal(t, "A", BeamID(0).String())
	assert.Equal(t, "C", BeamID(2).String())
	id, err := ParseBeamID("D")
	assert.NoError(t, err)
	assert.Equal(t, BeamID(3), id)
	_, err = ParseBeamID("AB")
	assert.Error(t, err)
}

func TestDrzScale(t *testing.T) {
	cases := []struct {
		name   string
		m      *mat.Dense
		want   vec.Vec2
		wantOK bool
	}{
		{"missing", nil, vec.Vec2{X: 1, Y: 1}, false},
		{"one row", mat.NewDense(1, 3, []float64{0, 2, 0}), vec.Vec2{X: 1, Y: 1}, false},
		{"identity", unitDrizzle(), vec.Vec2{X: 1, Y: 1}, true},
		{"rotated", mat.NewDense(2, 3, []float64{5, 0.6, -1.6, 7, 0.8, 1.2}), vec.Vec2{X: 1, Y: 2}, true},
		{"constant only", mat.NewDense(2, 1, []float64{1, 2}), vec.Vec2{X: 1, Y: 1}, true},
		{"degenerate", mat.NewDense(2, 3, []float64{0, 0, 1, 0, 0, 0}), vec.Vec2{X: 1, Y: 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &InstrumentConfig{DrzCoeffs: tc.m}
			got, ok := cfg.DrzScale()
			assert.Equal(t, tc.wantOK, ok)
			assert.InDelta(t, tc.want.X, got.X, 1e-15)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-15)
		})
	}
}

func TestMaxOffsetAndPSF(t *testing.T) {
	cfg := &InstrumentConfig{
		Beams: []BeamConfig{{PSFOffset: 0.3}, {PSFOffset: -2.2}, {}},
	}
	assert.Equal(t, 3, cfg.MaxOffset())
	assert.False(t, cfg.HasPSF())
	assert.Zero(t, cfg.PSFWidth(5000))

	cfg.PSFCoeffs = Poly{1, 0.001}
	assert.False(t, cfg.HasPSF())
	cfg.PSFRange = &[2]float64{1000, 2000}
	assert.True(t, cfg.HasPSF())
	assert.InDelta(t, 2, cfg.PSFWidth(1000), 1e-15)
	assert.InDelta(t, 2.5, cfg.PSFWidth(1500), 1e-15)
	assert.InDelta(t, 3, cfg.PSFWidth(9000), 1e-15)
	assert.InDelta(t, 2, cfg.PSFWidth(0), 1e-15)
}

func TestValidate(t *testing.T) {
	good := func() *InstrumentConfig {
		return &InstrumentConfig{
			Beams: []BeamConfig{flatBeam(0, vec.Vec2{}), flatBeam(1, vec.Vec2{})},
		}
	}
	assert.NoError(t, good().Validate())

	cases := map[string]func(c *InstrumentConfig){
		"no beams":      func(c *InstrumentConfig) { c.Beams = nil },
		"duplicate":     func(c *InstrumentConfig) { c.Beams[1].ID = 0 },
		"empty range":   func(c *InstrumentConfig) { c.Beams[0].DXStart = 200 },
		"no dispersion": func(c *InstrumentConfig) { c.Beams[0].Dispersion.Coeffs = Poly{500} },
		"sensitivity":   func(c *InstrumentConfig) { c.Beams[1].Sensitivity = nil },
		"psf range":     func(c *InstrumentConfig) { c.PSFRange = &[2]float64{3, 3} },
	}
	for name, modify := range cases {
		t.Run(name, func(t *testing.T) {
			c := good()
			modify(c)
			if err := c.Validate(); !errors.Is(err, ErrConfig) {
				t.Errorf("got %v", err)
			}
		})
	}

	c := good()
	c.Beams[0].Sensitivity = spectrum.Constant(1, 2, 0)
	assert.NoError(t, c.Validate())
}
