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
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// ErrNonMonotone is returned when the wavelength calibration of a beam is
// not strictly monotone over the extent of the trace.
var ErrNonMonotone = errors.New("grism: wavelength not monotone along trace")

// quadPoints is the number of Gauss-Legendre nodes per half pixel used
// for trace path lengths.
const quadPoints = 8

// TracePoint is one sample along a dispersed trace.
type TracePoint struct {
	// DX and DY give the position on the detector relative to the start of
	// the trace.
	DX, DY float64

	// Path is the arc length from the start of the trace to the point.
	Path float64

	// Lambda is the wavelength at the point.  DLambda is the width of the
	// wavelength bin covered by the pixel, clipped to the sensitivity
	// curve.
	Lambda  float64
	DLambda float64

	// Flux is the SED value at Lambda, Resp the sensitivity.
	Flux float64
	Resp float64

	// G is the emission weight of the current direct image pixel.
	G float64
}

// TraceData is a trace sampled at whole pixel steps, ordered by DX.
type TraceData []TracePoint

// Len returns the number of trace points.
func (tr TraceData) Len() int {
	return len(tr)
}

// Extent returns the range of DX and DY covered by the trace.
// The trace must not be empty.
func (tr TraceData) Extent() (dxMin, dxMax, dyMin, dyMax float64) {
	dxMin, dxMax = tr[0].DX, tr[0].DX
	dyMin, dyMax = tr[0].DY, tr[0].DY
	for _, p := range tr[1:] {
		dxMin = min(dxMin, p.DX)
		dxMax = max(dxMax, p.DX)
		dyMin = min(dyMin, p.DY)
		dyMax = max(dyMax, p.DY)
	}
	return
}

// ComputeTrace samples the trace of a beam at every whole pixel offset in
// [bc.DXStart, bc.DXEnd].  Points whose wavelength bin does not overlap
// the sensitivity curve are dropped, so the result may be empty.
//
// If the wavelength is not strictly monotone along the trace, an error
// wrapping [ErrNonMonotone] is returned.
func ComputeTrace(bc *BeamConfig) (TraceData, error) {
	n := bc.DXEnd - bc.DXStart + 1
	if n < 1 {
		return nil, nil
	}

	// Wavelengths at pixel edges and centres, alternating:
	// lam[2k] is the left edge of point k, lam[2k+1] its centre.
	arc := func(t float64) float64 {
		d := bc.Trace.Deriv(t)
		return math.Sqrt(1 + d*d)
	}
	lam := make([]float64, 2*n+1)
	path := make([]float64, 2*n+1)
	t0 := float64(bc.DXStart) - 0.5
	path[0] = signedIntegral(arc, 0, t0)
	lam[0] = bc.Dispersion.Lambda(path[0])
	for j := 1; j < len(lam); j++ {
		t := t0 + 0.5*float64(j)
		path[j] = path[j-1] + quad.Fixed(arc, t-0.5, t, quadPoints, nil, 0)
		lam[j] = bc.Dispersion.Lambda(path[j])
	}

	dir := math.Copysign(1, lam[1]-lam[0])
	for j := 1; j < len(lam); j++ {
		if !(dir*(lam[j]-lam[j-1]) > 0) {
			return nil, fmt.Errorf("beam %s: dx=%g: %w",
				bc.ID, t0+0.5*float64(j), ErrNonMonotone)
		}
	}

	sLo, sHi := bc.Sensitivity.Domain()
	tr := make(TraceData, 0, n)
	for k := range n {
		lo, hi := lam[2*k], lam[2*k+2]
		if lo > hi {
			lo, hi = hi, lo
		}
		lo = max(lo, sLo)
		hi = min(hi, sHi)
		if !(hi > lo) {
			continue
		}

		dx := float64(bc.DXStart + k)
		l := lam[2*k+1]
		tr = append(tr, TracePoint{
			DX:      dx,
			DY:      bc.Trace.Eval(dx),
			Path:    path[2*k+1],
			Lambda:  l,
			DLambda: hi - lo,
			Resp:    bc.Sensitivity.Eval(l),
		})
	}
	return tr, nil
}

// signedIntegral integrates f from a to b, allowing b < a.
func signedIntegral(f func(float64) float64, a, b float64) float64 {
	switch {
	case a == b:
		return 0
	case a < b:
		return quad.Fixed(f, a, b, 4*quadPoints, nil, 0)
	default:
		return -quad.Fixed(f, b, a, 4*quadPoints, nil, 0)
	}
}
