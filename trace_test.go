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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/grism/spectrum"
)

func TestTraceFlat(t *testing.T) {
	bc := flatBeam(0, vec.Vec2{})
	tr, err := ComputeTrace(&bc)
	require.NoError(t, err)
	require.Equal(t, 101, tr.Len())

	assert.InDelta(t, 0.5, tr[0].DLambda, 1e-12)
	assert.InDelta(t, 0.5, tr[100].DLambda, 1e-12)
	for i, p := range tr {
		assert.Equal(t, float64(i), p.DX)
		assert.Zero(t, p.DY)
		assert.InDelta(t, float64(i), p.Path, 1e-12)
		assert.InDelta(t, 500+float64(i), p.Lambda, 1e-12)
		assert.Equal(t, 1.0, p.Resp)
		if i > 0 && i < 100 {
			assert.InDelta(t, 1, p.DLambda, 1e-12)
		}
	}
}

func TestTraceSlanted(t *testing.T) {
	// dy = 0.75 dx, so the path grows by 1.25 per pixel in x
	bc := BeamConfig{
		DXStart:     -4,
		DXEnd:       4,
		Trace:       Poly{0, 0.75},
		Dispersion:  CalibFunction{Coeffs: Poly{1000, 2}},
		Sensitivity: spectrum.Constant(0, 1e6, 1),
	}
	tr, err := ComputeTrace(&bc)
	require.NoError(t, err)
	require.Equal(t, 9, tr.Len())

	for _, p := range tr {
		assert.InDelta(t, 0.75*p.DX, p.DY, 1e-14)
		assert.InDelta(t, 1.25*p.DX, p.Path, 1e-12)
		assert.InDelta(t, 1000+2.5*p.DX, p.Lambda, 1e-11)
		assert.InDelta(t, 2.5, p.DLambda, 1e-11)
	}

	dxMin, dxMax, dyMin, dyMax := tr.Extent()
	assert.Equal(t, [4]float64{-4, 4, -3, 3}, [4]float64{dxMin, dxMax, dyMin, dyMax})
}

func TestTraceCurvedPathLength(t *testing.T) {
	// dy = dx²/2, path length ∫₀^x √(1+t²) dt
	bc := BeamConfig{
		DXStart:     -3,
		DXEnd:       3,
		Trace:       Poly{0, 0, 0.5},
		Dispersion:  CalibFunction{Coeffs: Poly{0, 1}},
		Sensitivity: spectrum.Constant(-100, 100, 1),
	}
	tr, err := ComputeTrace(&bc)
	require.NoError(t, err)
	require.Equal(t, 7, tr.Len())

	s := func(x float64) float64 {
		return 0.5 * (x*math.Sqrt(1+x*x) + math.Asinh(x))
	}
	for _, p := range tr {
		assert.InDelta(t, s(p.DX), p.Path, 1e-10, "dx=%g", p.DX)
	}
}

func TestTraceDecreasingWavelength(t *testing.T) {
	bc := flatBeam(0, vec.Vec2{})
	bc.Dispersion = CalibFunction{Coeffs: Poly{600, -1}}
	tr, err := ComputeTrace(&bc)
	require.NoError(t, err)
	require.Equal(t, 101, tr.Len())
	assert.InDelta(t, 600, tr[0].Lambda, 1e-12)
	assert.InDelta(t, 0.5, tr[0].DLambda, 1e-12)
	assert.InDelta(t, 500, tr[100].Lambda, 1e-12)
}

func TestTraceClipped(t *testing.T) {
	bc := flatBeam(0, vec.Vec2{})
	bc.Sensitivity = spectrum.Constant(520.2, 580, 1)
	tr, err := ComputeTrace(&bc)
	require.NoError(t, err)
	require.Equal(t, 61, tr.Len())
	assert.Equal(t, 20.0, tr[0].DX)
	assert.InDelta(t, 0.3, tr[0].DLambda, 1e-12)
	assert.Equal(t, 80.0, tr[60].DX)
	assert.InDelta(t, 0.5, tr[60].DLambda, 1e-12)
}

func TestTraceEmpty(t *testing.T) {
	bc := flatBeam(0, vec.Vec2{})
	bc.Sensitivity = spectrum.Constant(700, 800, 1)
	tr, err := ComputeTrace(&bc)
	require.NoError(t, err)
	assert.Zero(t, tr.Len())
}

func TestTraceNonMonotone(t *testing.T) {
	for _, coeffs := range []Poly{
		{500, 1, -0.1}, // turns at p = 5
		{500, 0},       // constant
	} {
		bc := flatBeam(0, vec.Vec2{})
		bc.Dispersion = CalibFunction{Coeffs: coeffs}
		_, err := ComputeTrace(&bc)
		if !errors.Is(err, ErrNonMonotone) {
			t.Errorf("%v: got %v", coeffs, err)
		}
	}
}
