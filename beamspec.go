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
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrFootprint is returned when flux is deposited outside the model of a
// beam.  This indicates an inconsistency between dimensioning and
// distribution.
var ErrFootprint = errors.New("grism: position outside beam model")

// BeamSpec is the modelled flux of one beam of one object.
// Model has one row per y coordinate; model pixel (x, y) is image pixel
// Ref + (x, y).
type BeamSpec struct {
	Model    *mat.Dense
	Ref      image.Point
	ObjectID int
	Beam     BeamID
}

// Bounds returns the area of the image covered by the model.
func (s *BeamSpec) Bounds() image.Rectangle {
	rows, cols := s.Model.Dims()
	return image.Rectangle{Min: s.Ref, Max: s.Ref.Add(image.Pt(cols, rows))}
}

func (s *BeamSpec) add(x, y int, v float64) error {
	xact := x - s.Ref.X
	yact := y - s.Ref.Y
	rows, cols := s.Model.Dims()
	if xact < 0 || yact < 0 || xact >= cols || yact >= rows {
		return fmt.Errorf("object %d beam %s: pixel %d,%d: %w",
			s.ObjectID, s.Beam, x, y, ErrFootprint)
	}
	s.Model.Set(yact, xact, s.Model.At(yact, xact)+v)
	return nil
}

// DimensionBeamSpec allocates the model for the spectrum of one beam.  The
// model covers every pixel which the pixels of dir can reach along the
// trace tr.  The result is nil if the model would lie entirely outside a
// width×height image.  The trace must not be empty.
func DimensionBeamSpec(dir *DirObject, obj *Object, bc *BeamConfig, tr TraceData, width, height int) *BeamSpec {
	dxMin, dxMax, dyMin, dyMax := tr.Extent()

	// Same expressions as in the distributor; rounding is monotone.
	x0 := int(math.Round(float64(dir.IXMin) + bc.Offset.X + dxMin))
	x1 := int(math.Round(float64(dir.IXMax) + bc.Offset.X + dxMax))
	y0 := int(math.Floor(float64(dir.IYMin) + bc.Offset.Y + dyMin))
	y1 := int(math.Floor(float64(dir.IYMax)+bc.Offset.Y+dyMax)) + 1

	box := image.Rect(x0, y0, x1+1, y1+1)
	if !box.Overlaps(image.Rect(0, 0, width, height)) {
		return nil
	}
	return &BeamSpec{
		Model:    mat.NewDense(box.Dy(), box.Dx(), nil),
		Ref:      box.Min,
		ObjectID: obj.ID,
		Beam:     bc.ID,
	}
}
