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
	"slices"

	"gonum.org/v1/gonum/mat"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/grism/raster"
	"seehuhn.de/go/grism/spectrum"
)

// ErrNoSED is returned for objects without SED table and without
// magnitudes.
var ErrNoSED = errors.New("grism: object has no spectrum")

// speedOfLight is given in Ångström per second.
const speedOfLight = 2.99792458e18

// gaussExtent is the half width, in standard deviations, of the box
// around Gaussian objects.
const gaussExtent = 5

// DirectImage is a cutout of the direct image of one object.
// Data has one row per y coordinate.  Ref is the position, in cutout
// pixel coordinates, of the object's reference point.
type DirectImage struct {
	Data *mat.Dense
	Ref  vec.Vec2
}

// At returns the bilinearly interpolated cutout value at offset d from the
// reference point.  Pixels outside the cutout count as zero.
func (di *DirectImage) At(d vec.Vec2) float64 {
	rows, cols := di.Data.Dims()
	p := d.Add(di.Ref)
	x0 := math.Floor(p.X)
	y0 := math.Floor(p.Y)
	fx := p.X - x0
	fy := p.Y - y0
	ix, iy := int(x0), int(y0)

	get := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= cols || y >= rows {
			return 0
		}
		return di.Data.At(y, x)
	}
	return (1-fx)*(1-fy)*get(ix, iy) +
		fx*(1-fy)*get(ix+1, iy) +
		(1-fx)*fy*get(ix, iy+1) +
		fx*fy*get(ix+1, iy+1)
}

// DirObject is the working state for one object during a run.
type DirObject struct {
	// IXMin, IXMax, IYMin and IYMax give the inclusive pixel box covered
	// by the object.
	IXMin, IXMax int
	IYMin, IYMax int

	DirectImage *DirectImage

	// XYOff holds a per-beam centring offset.
	XYOff map[BeamID]vec.Vec2

	DrzScale vec.Vec2
	SED      *spectrum.Interpolator

	footprint map[BeamID]*mat.Dense
}

// NewDirObject sets up the working state for obj.  The pixel box covers
// the cutout, if one is given, and otherwise the object's shape, widened
// by margin pixels on each side.
func NewDirObject(obj *Object, drzScale vec.Vec2, cut *DirectImage, sed *spectrum.Interpolator, margin int) *DirObject {
	dir := &DirObject{
		DirectImage: cut,
		XYOff:       make(map[BeamID]vec.Vec2),
		DrzScale:    drzScale,
		SED:         sed,
	}
	for _, b := range obj.Beams {
		dir.XYOff[b.ID] = vec.Vec2{}
	}

	var lo, hi vec.Vec2
	if cut != nil {
		rows, cols := cut.Data.Dims()
		lo = obj.RefPoint.Sub(cut.Ref)
		hi = lo.Add(vec.Vec2{X: float64(cols - 1), Y: float64(rows - 1)})
	} else {
		s := obj.Shape()
		k := 1.0
		if obj.Profile == Gaussian {
			k = gaussExtent
		}
		h := raster.EllipseBounds(k*s.A, k*s.B, s.ThetaDeg)
		h.X /= drzScale.X
		h.Y /= drzScale.Y
		lo = obj.RefPoint.Sub(h)
		hi = obj.RefPoint.Add(h)
	}
	dir.IXMin = int(math.Floor(lo.X)) - margin
	dir.IXMax = int(math.Ceil(hi.X)) + margin
	dir.IYMin = int(math.Floor(lo.Y)) - margin
	dir.IYMax = int(math.Ceil(hi.Y)) + margin
	return dir
}

// Box returns the pixel box of the object, in rasteriser coordinates
// where pixel (x, y) covers [x, x+1) × [y, y+1).
func (dir *DirObject) Box() rect.Rect {
	return rect.Rect{
		LLx: float64(dir.IXMin),
		LLy: float64(dir.IYMin),
		URx: float64(dir.IXMax + 1),
		URy: float64(dir.IYMax + 1),
	}
}

// Footprint returns the fraction of each box pixel covered by the TopHat
// ellipse of beam b, normalised so that the entries sum to one for an
// ellipse inside the box.  The map is computed on first use.
// Rows correspond to y.
func (dir *DirObject) Footprint(b *Beam) *mat.Dense {
	if m, ok := dir.footprint[b.ID]; ok {
		return m
	}

	w := dir.IXMax - dir.IXMin + 1
	h := dir.IYMax - dir.IYMin + 1
	m := mat.NewDense(h, w, nil)

	// The ellipse is given in scaled units; map it back to pixels.
	// Pixel n has its centre at n, the rasteriser puts it at n+1/2.
	c := b.RefPoint.Add(dir.XYOff[b.ID]).Add(vec.Vec2{X: 0.5, Y: 0.5})
	ctm := raster.EllipseCTM(vec.Vec2{}, b.Shape.A, b.Shape.B, b.Shape.ThetaDeg)
	ctm[0] /= dir.DrzScale.X
	ctm[2] /= dir.DrzScale.X
	ctm[1] /= dir.DrzScale.Y
	ctm[3] /= dir.DrzScale.Y
	ctm[4] = c.X
	ctm[5] = c.Y
	area := math.Pi * b.Shape.A * b.Shape.B / (dir.DrzScale.X * dir.DrzScale.Y)

	if area > 0 {
		r := raster.NewRasterizer(dir.Box())
		r.CTM = ctm
		r.Fill(raster.UnitCircle(), func(y, xMin int, coverage []float64) {
			for i, v := range coverage {
				m.Set(y-dir.IYMin, xMin+i-dir.IXMin, v/area)
			}
		})
	}

	if dir.footprint == nil {
		dir.footprint = make(map[BeamID]*mat.Dense)
	}
	dir.footprint[b.ID] = m
	return m
}

// ResolveSED returns the spectrum of an object.  An entry in seds takes
// precedence.  Otherwise the catalog AB magnitudes, with wavelengths in
// Ångström, are converted to flux densities; a single magnitude gives a
// flat spectrum.
func ResolveSED(obj *Object, seds map[int]*spectrum.Interpolator) (*spectrum.Interpolator, error) {
	if sed, ok := seds[obj.ID]; ok && sed != nil {
		return sed, nil
	}
	if len(obj.Mags) == 0 {
		return nil, fmt.Errorf("object %d: %w", obj.ID, ErrNoSED)
	}

	mags := slices.Clone(obj.Mags)
	slices.SortFunc(mags, func(a, b MagPoint) int {
		switch {
		case a.Lambda < b.Lambda:
			return -1
		case a.Lambda > b.Lambda:
			return 1
		}
		return 0
	})
	x := make([]float64, len(mags))
	y := make([]float64, len(mags))
	for i, m := range mags {
		x[i] = m.Lambda
		y[i] = ABMagToFlux(m.Mag, m.Lambda)
	}
	if len(x) == 1 {
		return spectrum.Constant(0.5*x[0], 1.5*x[0], y[0]), nil
	}
	sed, err := spectrum.New(x, y)
	if err != nil {
		return nil, fmt.Errorf("object %d: magnitudes: %w", obj.ID, err)
	}
	return sed, nil
}

// ABMagToFlux converts an AB magnitude at wavelength lambda (in Ångström)
// to a flux density in erg/s/cm²/Å.
func ABMagToFlux(mag, lambda float64) float64 {
	fnu := math.Pow(10, -0.4*(mag+48.6))
	return fnu * speedOfLight / (lambda * lambda)
}
