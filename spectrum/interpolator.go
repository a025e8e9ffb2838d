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

// Package spectrum provides tabulated one-dimensional curves, such as
// throughput curves and spectral energy distributions, together with the
// operations needed to combine and integrate them.
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

var (
	// ErrTooShort is returned when a curve has fewer than two samples.
	ErrTooShort = errors.New("spectrum: curve needs at least two samples")

	// ErrNotMonotone is returned when the independent variable of a curve
	// is not strictly monotone.
	ErrNotMonotone = errors.New("spectrum: independent variable not strictly monotone")
)

// Interpolator is a piecewise linear function through a set of samples.
// Outside the sampled range the function takes its boundary values.
//
// An Interpolator is immutable and safe for concurrent use.
type Interpolator struct {
	x, y []float64
}

// New builds an Interpolator from the samples (x[i], y[i]).
// The x values must be strictly increasing or strictly decreasing;
// decreasing input is reversed.  The slices are copied.
func New(x, y []float64) (*Interpolator, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("spectrum: %d x values but %d y values", len(x), len(y))
	}
	if len(x) < 2 {
		return nil, ErrTooShort
	}

	ip := &Interpolator{x: slices.Clone(x), y: slices.Clone(y)}
	if ip.x[1] < ip.x[0] {
		slices.Reverse(ip.x)
		slices.Reverse(ip.y)
	}
	for i := 1; i < len(ip.x); i++ {
		if !(ip.x[i] > ip.x[i-1]) {
			return nil, fmt.Errorf("%w: x[%d]=%g after %g", ErrNotMonotone, i, ip.x[i], ip.x[i-1])
		}
	}
	return ip, nil
}

// Constant returns the function with value v over [lo, hi].
func Constant(lo, hi, v float64) *Interpolator {
	return &Interpolator{x: []float64{lo, hi}, y: []float64{v, v}}
}

// Len returns the number of samples.
func (ip *Interpolator) Len() int {
	return len(ip.x)
}

// Samples returns copies of the sample positions and values.
func (ip *Interpolator) Samples() (x, y []float64) {
	return slices.Clone(ip.x), slices.Clone(ip.y)
}

// Domain returns the smallest and largest sample position.
func (ip *Interpolator) Domain() (lo, hi float64) {
	return ip.x[0], ip.x[len(ip.x)-1]
}

// Eval returns the linearly interpolated value at x.
// Outside the domain the nearest boundary value is returned.
// Eval(NaN) is NaN.
func (ip *Interpolator) Eval(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	n := len(ip.x)
	if x <= ip.x[0] {
		return ip.y[0]
	}
	if x >= ip.x[n-1] {
		return ip.y[n-1]
	}
	// ip.x[i-1] < x <= ip.x[i]
	i := sort.SearchFloat64s(ip.x, x)
	x0, x1 := ip.x[i-1], ip.x[i]
	t := (x - x0) / (x1 - x0)
	return ip.y[i-1] + t*(ip.y[i]-ip.y[i-1])
}

// Integral returns the integral of the function over its domain,
// computed with the trapezoidal rule over consecutive samples.
func (ip *Interpolator) Integral() float64 {
	return integrate.Trapezoidal(ip.x, ip.y)
}

// IntegrateRange returns the integral of the function from a to b.
// The boundary values are used outside the domain.  If b < a the result
// is negative.
func (ip *Interpolator) IntegrateRange(a, b float64) float64 {
	if b < a {
		return -ip.IntegrateRange(b, a)
	}
	if a == b {
		return 0
	}

	n := len(ip.x)
	lo, hi := ip.x[0], ip.x[n-1]
	sum := 0.0
	if a < lo {
		sum += ip.y[0] * (min(b, lo) - a)
		a = lo
	}
	if b > hi {
		sum += ip.y[n-1] * (b - max(a, hi))
		b = hi
	}
	if a >= b {
		return sum
	}

	// trapezoids over [a, b] including the partial first and last intervals
	xs := []float64{a}
	ys := []float64{ip.Eval(a)}
	i := sort.SearchFloat64s(ip.x, a)
	for ; i < n && ip.x[i] < b; i++ {
		if ip.x[i] > a {
			xs = append(xs, ip.x[i])
			ys = append(ys, ip.y[i])
		}
	}
	xs = append(xs, b)
	ys = append(ys, ip.Eval(b))
	return sum + integrate.Trapezoidal(xs, ys)
}

// Scale returns a new Interpolator with all values multiplied by f.
func (ip *Interpolator) Scale(f float64) *Interpolator {
	y := make([]float64, len(ip.y))
	for i, v := range ip.y {
		y[i] = f * v
	}
	return &Interpolator{x: slices.Clone(ip.x), y: y}
}
