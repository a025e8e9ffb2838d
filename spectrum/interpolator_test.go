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

package spectrum

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrors(t *testing.T) {
	cases := []struct {
		name string
		x, y []float64
		want error
	}{
		{"empty", nil, nil, ErrTooShort},
		{"single", []float64{1}, []float64{2}, ErrTooShort},
		{"repeated", []float64{1, 2, 2, 3}, []float64{0, 0, 0, 0}, ErrNotMonotone},
		{"zigzag", []float64{1, 3, 2}, []float64{0, 0, 0}, ErrNotMonotone},
		{"NaN", []float64{1, math.NaN(), 3}, []float64{0, 0, 0}, ErrNotMonotone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.x, tc.y)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}

	_, err := New([]float64{1, 2}, []float64{1})
	if err == nil {
		t.Error("length mismatch accepted")
	}
}

func TestDecreasingInput(t *testing.T) {
	x := []float64{30, 20, 10}
	y := []float64{3, 2, 1}
	ip, err := New(x, y)
	require.NoError(t, err)

	lo, hi := ip.Domain()
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 30.0, hi)
	assert.InDelta(t, 1.5, ip.Eval(15), 1e-15)

	// the caller's slices are left alone
	assert.Equal(t, []float64{30, 20, 10}, x)
}

func TestEvalClamped(t *testing.T) {
	ip, err := New([]float64{0, 1, 4}, []float64{2, 4, 1})
	require.NoError(t, err)

	cases := []struct {
		x, want float64
	}{
		{-100, 2},
		{0, 2},
		{0.5, 3},
		{1, 4},
		{2.5, 2.5},
		{4, 1},
		{1e9, 1},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, ip.Eval(tc.x), 1e-14, "x=%g", tc.x)
	}
	assert.True(t, math.IsNaN(ip.Eval(math.NaN())))
}

// TestIntegralConvergence checks that the trapezoidal integral of sin on
// [0, π] approaches 2 at second order as the sampling is refined.
func TestIntegralConvergence(t *testing.T) {
	prevErr := math.Inf(1)
	for _, n := range []int{10, 100, 1000} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			x := make([]float64, n)
			y := make([]float64, n)
			for i := range x {
				x[i] = math.Pi * float64(i) / float64(n-1)
				y[i] = math.Sin(x[i])
			}
			ip, err := New(x, y)
			require.NoError(t, err)

			e := math.Abs(ip.Integral() - 2)
			h := math.Pi / float64(n-1)
			if e > h*h {
				t.Errorf("error %g exceeds h²=%g", e, h*h)
			}
			if e >= prevErr/50 {
				t.Errorf("error %g did not shrink enough from %g", e, prevErr)
			}
			prevErr = e
		})
	}
}

func TestIntegrateRange(t *testing.T) {
	ip, err := New([]float64{0, 2, 4}, []float64{0, 2, 0})
	require.NoError(t, err)

	cases := []struct {
		a, b, want float64
	}{
		{0, 4, 4},
		{0, 2, 2},
		{1, 3, 3},
		{0.5, 1.5, 1},
		{3, 3, 0},
		{4, 0, -4},
		{-2, 0, 0},
		{4, 10, 0},
		{-1, 1, 0.5},
	}
	for _, tc := range cases {
		got := ip.IntegrateRange(tc.a, tc.b)
		assert.InDelta(t, tc.want, got, 1e-14, "[%g, %g]", tc.a, tc.b)
	}

	assert.InDelta(t, ip.Integral(), ip.IntegrateRange(0, 4), 1e-14)

	c := Constant(1, 2, 3)
	assert.InDelta(t, 30.0, c.IntegrateRange(-5, 5), 1e-13)
}

func TestCombine(t *testing.T) {
	// a(x) = x on [1, 3], b(x) = 2x on [2, 5]
	a, err := New([]float64{1, 3}, []float64{1, 3})
	require.NoError(t, err)
	b, err := New([]float64{2, 5}, []float64{4, 10})
	require.NoError(t, err)

	c := Combine(a, b)
	x, y := c.Samples()
	assert.Equal(t, []float64{1, 2, 3, 5}, x)

	// b is clamped below 2, a is clamped above 3
	want := []float64{1 * 4, 2 * 4, 3 * 6, 3 * 10}
	assert.InDeltaSlice(t, want, y, 1e-14)

	for _, v := range []float64{0, 1.5, 2.5, 4, 6} {
		assert.InDelta(t, c.Eval(v), Combine(b, a).Eval(v), 1e-14)
	}
}

func TestCombineSharedGrid(t *testing.T) {
	x := []float64{1, 2, 3}
	a, err := New(x, []float64{1, 1, 1})
	require.NoError(t, err)
	b, err := New(x, []float64{5, 6, 7})
	require.NoError(t, err)

	c := Combine(a, b)
	assert.Equal(t, 3, c.Len())
	assert.InDelta(t, b.Integral(), c.Integral(), 1e-14)
}

func TestCombineOn(t *testing.T) {
	a := Constant(0, 10, 2)
	b, err := New([]float64{0, 10}, []float64{0, 10})
	require.NoError(t, err)

	c, err := CombineOn([]float64{9, 5, 1}, a, b)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, c.Eval(5), 1e-14)
	assert.InDelta(t, 18.0, c.Eval(20), 1e-14)

	_, err = CombineOn([]float64{1}, a, b)
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestFilterSensitivity(t *testing.T) {
	wl := []float64{4000, 5000, 6000}
	tp := []float64{0, 0.5, 0}
	s, err := FilterSensitivity(wl, tp, 45238.93)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*45238.93, s.Eval(5000), 1e-9)
	assert.InDelta(t, 1000*0.5*45238.93, s.Integral(), 1e-6)

	_, err = FilterSensitivity(wl[:1], tp[:1], 1)
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestPhotonSensitivity(t *testing.T) {
	wl := []float64{5000, 10000}
	tp := []float64{0.5, 0.5}
	s, err := PhotonSensitivity(wl, tp, 2)
	require.NoError(t, err)

	// 1 erg/s/cm²/Å at 1 µm through a 2 cm² aperture at 50% throughput
	assert.InDelta(t, 1e4/planckC, s.Eval(10000), 1e-6*1e4/planckC)
	assert.InDelta(t, 0.5e4/planckC, s.Eval(5000), 1e-6*0.5e4/planckC)

	_, err = PhotonSensitivity(wl[:1], tp[:1], 1)
	assert.ErrorIs(t, err, ErrTooShort)
}
