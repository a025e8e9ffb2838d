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

	"gonum.org/v1/gonum/mat"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/grism/spectrum"
)

// ErrConfig is returned for structurally invalid instrument configurations.
var ErrConfig = errors.New("grism: invalid configuration")

// Poly is a polynomial, stored with the constant coefficient first.
type Poly []float64

// Eval evaluates the polynomial at x.
func (p Poly) Eval(x float64) float64 {
	y := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

// Deriv evaluates the first derivative of the polynomial at x.
func (p Poly) Deriv(x float64) float64 {
	y := 0.0
	for i := len(p) - 1; i >= 1; i-- {
		y = y*x + float64(i)*p[i]
	}
	return y
}

// CalibFunction is a wavelength calibration: it maps the path length
// along the trace, in pixels, to a wavelength.
type CalibFunction struct {
	Coeffs Poly
}

// Lambda returns the wavelength at path length p.
func (c CalibFunction) Lambda(p float64) float64 {
	return c.Coeffs.Eval(p)
}

// BeamConfig is the instrument description of one spectral order.
type BeamConfig struct {
	ID BeamID

	// DXStart and DXEnd give the extent of the trace in pixels, relative
	// to the position of the emitting pixel.
	DXStart, DXEnd int

	// Offset shifts the start of the trace.
	Offset vec.Vec2

	// Trace gives the trace offset dy as a polynomial in dx.
	Trace Poly

	Dispersion  CalibFunction
	Sensitivity *spectrum.Interpolator

	// PSFOffset is an additional Gaussian broadening, given as a FWHM in
	// pixels.
	PSFOffset float64
}

// InstrumentConfig describes the dispersing instrument.
type InstrumentConfig struct {
	Beams []BeamConfig

	// PSFCoeffs gives the FWHM of the PSF, in pixels, as a polynomial in
	// wavelength.  The polynomial is evaluated with the wavelength clamped
	// to PSFRange.
	PSFCoeffs Poly
	PSFRange  *[2]float64

	// LambdaPSF is the wavelength at which the object shapes were measured.
	LambdaPSF float64

	// DrzCoeffs holds the drizzle coefficients, one row per output
	// coordinate.  Column 0 is the constant term, columns 1 and 2 are the
	// coefficients of x and y.
	DrzCoeffs *mat.Dense
}

// Beam returns the configuration for the given beam, or nil.
func (c *InstrumentConfig) Beam(id BeamID) *BeamConfig {
	for i := range c.Beams {
		if c.Beams[i].ID == id {
			return &c.Beams[i]
		}
	}
	return nil
}

// MaxOffset returns the largest PSF offset of all beams, rounded up to
// whole pixels.
func (c *InstrumentConfig) MaxOffset() int {
	m := 0.0
	for i := range c.Beams {
		m = max(m, math.Abs(c.Beams[i].PSFOffset))
	}
	return int(math.Ceil(m))
}

// HasPSF reports whether a wavelength dependent PSF is configured.
func (c *InstrumentConfig) HasPSF() bool {
	return len(c.PSFCoeffs) > 0 && c.PSFRange != nil
}

// PSFWidth returns the FWHM of the PSF at wavelength lambda.
// The result is zero if no PSF is configured.
func (c *InstrumentConfig) PSFWidth(lambda float64) float64 {
	if !c.HasPSF() {
		return 0
	}
	lambda = min(max(lambda, c.PSFRange[0]), c.PSFRange[1])
	return c.PSFCoeffs.Eval(lambda)
}

// DrzScale returns the pixel scale implied by the drizzle coefficients.
// If the coefficients are missing or incomplete, unit scale is returned
// and ok is false.
func (c *InstrumentConfig) DrzScale() (scale vec.Vec2, ok bool) {
	scale = vec.Vec2{X: 1, Y: 1}
	if c.DrzCoeffs == nil {
		return scale, false
	}
	r, cols := c.DrzCoeffs.Dims()
	if r < 2 || cols == 0 {
		return scale, false
	}
	if cols > 1 {
		scale.X = math.Hypot(c.DrzCoeffs.At(0, 1), c.DrzCoeffs.At(1, 1))
	}
	if cols > 2 {
		scale.Y = math.Hypot(c.DrzCoeffs.At(0, 2), c.DrzCoeffs.At(1, 2))
	}
	if !(scale.X > 0) || !(scale.Y > 0) {
		return vec.Vec2{X: 1, Y: 1}, false
	}
	return scale, true
}

// Validate checks the configuration for structural problems.
// All returned errors wrap [ErrConfig].
func (c *InstrumentConfig) Validate() error {
	if len(c.Beams) == 0 {
		return fmt.Errorf("%w: no beams", ErrConfig)
	}
	seen := make(map[BeamID]bool)
	for i := range c.Beams {
		bc := &c.Beams[i]
		if seen[bc.ID] {
			return fmt.Errorf("%w: duplicate beam %s", ErrConfig, bc.ID)
		}
		seen[bc.ID] = true

		if bc.DXStart > bc.DXEnd {
			return fmt.Errorf("%w: beam %s: empty range %d..%d", ErrConfig, bc.ID, bc.DXStart, bc.DXEnd)
		}
		if len(bc.Dispersion.Coeffs) < 2 {
			return fmt.Errorf("%w: beam %s: dispersion needs at least two coefficients", ErrConfig, bc.ID)
		}
		if bc.Sensitivity == nil {
			return fmt.Errorf("%w: beam %s: missing sensitivity", ErrConfig, bc.ID)
		}
		if math.IsNaN(bc.PSFOffset) || math.IsInf(bc.PSFOffset, 0) {
			return fmt.Errorf("%w: beam %s: invalid PSF offset", ErrConfig, bc.ID)
		}
	}
	if c.PSFRange != nil && !(c.PSFRange[0] < c.PSFRange[1]) {
		return fmt.Errorf("%w: empty PSF range [%g, %g]", ErrConfig, c.PSFRange[0], c.PSFRange[1])
	}
	return nil
}
