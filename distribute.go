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
	"math"

	"seehuhn.de/go/grism/spectrum"
)

// FillFlux sets the SED value of every trace point.
func FillFlux(tr TraceData, sed *spectrum.Interpolator) {
	for i := range tr {
		tr[i].Flux = sed.Eval(tr[i].Lambda)
	}
}

// distributePixel adds the dispersed light of direct image pixel (nx, ny)
// to spec.  The emission weights in tr must be set.  Each trace point lands
// in column round(nx + Offset.X + DX) and is split linearly between the two
// rows around ny + Offset.Y + DY.
func distributePixel(spec *BeamSpec, tr TraceData, bc *BeamConfig, nx, ny int) error {
	for i := range tr {
		p := &tr[i]
		v := p.G * p.Flux * p.Resp * p.DLambda

		x := int(math.Round(float64(nx) + bc.Offset.X + p.DX))
		y := float64(ny) + bc.Offset.Y + p.DY
		fy := math.Floor(y)
		f := y - fy
		iy := int(fy)

		if err := spec.add(x, iy, (1-f)*v); err != nil {
			return err
		}
		if err := spec.add(x, iy+1, f*v); err != nil {
			return err
		}
	}
	return nil
}

// Disperse models one beam of one object into spec, visiting every pixel
// of the object's box.
func Disperse(spec *BeamSpec, dir *DirObject, em *Emission, tr TraceData, bc *BeamConfig) error {
	for nx := dir.IXMin; nx <= dir.IXMax; nx++ {
		for ny := dir.IYMin; ny <= dir.IYMax; ny++ {
			em.Fill(tr, nx, ny)
			if err := distributePixel(spec, tr, bc, nx, ny); err != nil {
				return err
			}
		}
	}
	return nil
}
