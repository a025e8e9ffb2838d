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

	"seehuhn.de/go/grism/spectrum"
)

// CombineTpassSED returns the product of the passband sensitivity and the
// SED of dir, sampled on the union of both wavelength grids.
func CombineTpassSED(tpass *spectrum.Interpolator, dir *DirObject) (*spectrum.Interpolator, error) {
	if dir.SED == nil {
		return nil, ErrNoSED
	}
	return spectrum.Combine(tpass, dir.SED), nil
}

// CombinedTpassSEDOn returns the product of the passband sensitivity and
// the SED of dir, sampled at the wavelengths in grid.
func CombinedTpassSEDOn(grid []float64, tpass *spectrum.Interpolator, dir *DirObject) (*spectrum.Interpolator, error) {
	if dir.SED == nil {
		return nil, ErrNoSED
	}
	return spectrum.CombineOn(grid, tpass, dir.SED)
}

// CountRate returns the count rate of an object seen through the
// passband tpass.
func CountRate(tpass *spectrum.Interpolator, dir *DirObject) (float64, error) {
	c, err := CombineTpassSED(tpass, dir)
	if err != nil {
		return 0, err
	}
	return c.Integral(), nil
}

// MakeDirImageObject adds the direct image of one object to dst.  The
// count rate of the object is spread over its pixel box using the same
// emission models as the dispersed simulation.  Pixels outside dst are
// skipped.
func MakeDirImageObject(obj *Object, dir *DirObject, tpass *spectrum.Interpolator, dst *Image) error {
	cps, err := CountRate(tpass, dir)
	if err != nil {
		return fmt.Errorf("object %d: %w", obj.ID, err)
	}

	b := &Beam{RefPoint: obj.RefPoint, Shape: obj.Shape()}
	if len(obj.Beams) > 0 {
		b.ID = obj.Beams[0].ID
	}
	em := NewEmission(dir, obj, b, nil, 0, defaultSubsample)
	for ny := dir.IYMin; ny <= dir.IYMax; ny++ {
		for nx := dir.IXMin; nx <= dir.IXMax; nx++ {
			dst.AddPixel(nx, ny, cps*em.Weight(nx, ny))
		}
	}
	return nil
}

// MakeDirImage simulates a direct image of the given objects.  The slice
// dirs holds the working state for each object.
func MakeDirImage(objects []Object, dirs []*DirObject, width, height int, tpass *spectrum.Interpolator) (*Image, error) {
	if len(dirs) != len(objects) {
		return nil, fmt.Errorf("%d objects but %d direct objects", len(objects), len(dirs))
	}
	img, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}
	for i := range objects {
		if err := MakeDirImageObject(&objects[i], dirs[i], tpass, img); err != nil {
			return nil, err
		}
	}
	return img, nil
}
