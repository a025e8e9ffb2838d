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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"seehuhn.de/go/geom/vec"
)

// EmissionKind selects how the emission weight of a direct image pixel is
// found.
type EmissionKind int

const (
	// DirectImageLookup interpolates a supplied cutout.
	DirectImageLookup EmissionKind = iota

	// AnalyticProfile evaluates a Gaussian whose width depends on the
	// wavelength of each trace point.
	AnalyticProfile

	// SubpixelSample averages the object profile over the pixel.
	SubpixelSample
)

func (k EmissionKind) String() string {
	switch k {
	case DirectImageLookup:
		return "direct image"
	case AnalyticProfile:
		return "analytic profile"
	case SubpixelSample:
		return "subpixel sample"
	default:
		return fmt.Sprintf("EmissionKind(%d)", int(k))
	}
}

const (
	fwhmToSigma = 2.3548
	eightLn2    = 8 * math.Ln2

	// minVariance keeps Gaussians of point sources finite, in squared
	// scaled pixels.
	minVariance = 0.01
)

// Emission gives the emission weight of the pixels of one object for one
// beam.  The weights of all pixels of an object sum to approximately one.
type Emission struct {
	Kind EmissionKind

	dir    *DirObject
	center vec.Vec2
	shape  Ellipse

	// SubpixelSample
	profile   Profile
	n         int
	footprint *mat.Dense

	// AnalyticProfile
	cfg       *InstrumentConfig
	psfOffset float64
}

// NewEmission selects the emission model for beam b of obj.  A cutout in
// dir takes precedence, then a wavelength dependent PSF or non-zero PSF
// offset, and finally sampling of the object profile on an n×n grid per
// pixel.  If cfg is nil, the analytic profile is never used.
func NewEmission(dir *DirObject, obj *Object, b *Beam, cfg *InstrumentConfig, psfOffset float64, n int) *Emission {
	e := &Emission{
		dir:       dir,
		center:    b.RefPoint.Add(dir.XYOff[b.ID]),
		shape:     b.Shape,
		profile:   obj.Profile,
		n:         max(n, 1),
		cfg:       cfg,
		psfOffset: psfOffset,
	}
	switch {
	case dir.DirectImage != nil:
		e.Kind = DirectImageLookup
	case cfg != nil && (cfg.HasPSF() || psfOffset != 0):
		e.Kind = AnalyticProfile
	default:
		e.Kind = SubpixelSample
		if obj.Profile == TopHat {
			e.footprint = dir.Footprint(b)
		}
	}
	return e
}

// Weight returns the wavelength independent weight of pixel (nx, ny).
// For AnalyticProfile the PSF at LambdaPSF is used.
func (e *Emission) Weight(nx, ny int) float64 {
	d := vec.Vec2{X: float64(nx), Y: float64(ny)}.Sub(e.center)
	switch e.Kind {
	case DirectImageLookup:
		return e.dir.DirectImage.At(d)
	case AnalyticProfile:
		va, vb := e.variances(e.cfg.LambdaPSF)
		return e.pixelMean(d, va, vb)
	}

	if e.footprint != nil {
		return e.footprint.At(ny-e.dir.IYMin, nx-e.dir.IXMin)
	}
	va := max(e.shape.A*e.shape.A, minVariance)
	vb := max(e.shape.B*e.shape.B, minVariance)
	return e.pixelMean(d, va, vb)
}

// Fill sets the emission weight G of every trace point for pixel (nx, ny).
func (e *Emission) Fill(tr TraceData, nx, ny int) {
	if e.Kind != AnalyticProfile || !e.cfg.HasPSF() {
		w := e.Weight(nx, ny)
		for i := range tr {
			tr[i].G = w
		}
		return
	}

	d := vec.Vec2{X: float64(nx), Y: float64(ny)}.Sub(e.center)
	for i := range tr {
		va, vb := e.variances(tr[i].Lambda)
		tr[i].G = e.pixelMean(d, va, vb)
	}
}

// pixelMean averages the Gaussian over an n×n grid of points inside the
// pixel at offset d.
func (e *Emission) pixelMean(d vec.Vec2, va, vb float64) float64 {
	sum := 0.0
	step := 1 / float64(e.n)
	for j := range e.n {
		dy := (float64(j)+0.5)*step - 0.5
		for i := range e.n {
			dx := (float64(i)+0.5)*step - 0.5
			sum += e.gauss(d.Add(vec.Vec2{X: dx, Y: dy}), va, vb)
		}
	}
	return sum / float64(e.n*e.n)
}

// variances returns the Gaussian variances along the two ellipse axes at
// wavelength lambda.
func (e *Emission) variances(lambda float64) (va, vb float64) {
	extra := 0.0
	if e.cfg.HasPSF() {
		p := e.cfg.PSFWidth(lambda)
		p0 := e.cfg.PSFWidth(e.cfg.LambdaPSF)
		extra = (p*p - p0*p0) / eightLn2
	}
	s := e.psfOffset / fwhmToSigma
	extra += s * s

	va = max(e.shape.A*e.shape.A+extra, minVariance)
	vb = max(e.shape.B*e.shape.B+extra, minVariance)
	return va, vb
}

// gauss evaluates the normalised elliptical Gaussian at pixel offset d,
// multiplied by the pixel area in scaled units.
func (e *Emission) gauss(d vec.Vec2, va, vb float64) float64 {
	s := e.dir.DrzScale
	u := vec.Vec2{X: d.X * s.X, Y: d.Y * s.Y}

	sin, cos := math.Sincos(e.shape.ThetaDeg * math.Pi / 180)
	ua := u.X*cos + u.Y*sin
	ub := -u.X*sin + u.Y*cos

	q := ua*ua/va + ub*ub/vb
	return math.Exp(-0.5*q) / (2 * math.Pi * math.Sqrt(va*vb)) * s.X * s.Y
}
