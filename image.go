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

	"gonum.org/v1/gonum/mat"
)

// Image is a simulated detector image.  Values are accumulated with
// Kahan summation; the running compensation is kept per pixel.
//
// Rows of the underlying matrices correspond to y.
type Image struct {
	flux *mat.Dense
	comp *mat.Dense
}

// NewImage allocates a zero image.  Width and height must be positive.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrConfig, width, height)
	}
	return &Image{
		flux: mat.NewDense(height, width, nil),
		comp: mat.NewDense(height, width, nil),
	}, nil
}

// Size returns the width and height of the image.
func (img *Image) Size() (width, height int) {
	height, width = img.flux.Dims()
	return width, height
}

// At returns the value of pixel (x, y).
func (img *Image) At(x, y int) float64 {
	return img.flux.At(y, x)
}

// Flux returns the pixel values.  The matrix is owned by the image and
// must not be modified.
func (img *Image) Flux() *mat.Dense {
	return img.flux
}

// Compensation returns the per-pixel Kahan compensation terms.  The matrix
// is owned by the image and must not be modified.
func (img *Image) Compensation() *mat.Dense {
	return img.comp
}

// AddPixel adds v to pixel (x, y).  If the pixel is outside the image,
// nothing is changed and false is returned.
func (img *Image) AddPixel(x, y int, v float64) bool {
	rows, cols := img.flux.Dims()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return false
	}
	img.kahan(y, x, v)
	return true
}

func (img *Image) kahan(i, j int, v float64) {
	f := img.flux.At(i, j)
	y := v - img.comp.At(i, j)
	t := f + y
	img.comp.Set(i, j, (t-f)-y)
	img.flux.Set(i, j, t)
}

// AddBeamSpec adds the model of one beam to the image.  Model pixels
// outside the image are skipped and recorded in report, which may be nil.
func (img *Image) AddBeamSpec(spec *BeamSpec, report *Report) {
	rows, cols := spec.Model.Dims()
	for yact := range rows {
		for xact := range cols {
			ix := spec.Ref.X + xact
			iy := spec.Ref.Y + yact
			if !img.AddPixel(ix, iy, spec.Model.At(yact, xact)) {
				report.add(Diagnostic{
					ObjectID: spec.ObjectID,
					Beam:     spec.Beam,
					Reason:   ReasonPixelOutside,
					X:        xact,
					Y:        yact,
				})
			}
		}
	}
}

// AddConstant adds v to every pixel.
func (img *Image) AddConstant(v float64) {
	rows, cols := img.flux.Dims()
	for i := range rows {
		for j := range cols {
			img.kahan(i, j, v)
		}
	}
}

// Scale multiplies every pixel by f.
func (img *Image) Scale(f float64) {
	img.flux.Scale(f, img.flux)
	img.comp.Scale(f, img.comp)
}

// Total returns the sum of all pixel values.
func (img *Image) Total() float64 {
	return mat.Sum(img.flux)
}
