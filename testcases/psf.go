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

package testcases

import (
	"seehuhn.de/go/grism/scene"
)

var psfCases = []TestCase{
	{
		Name:  "psf_polynomial",
		Scene: psfPolynomial(),
	},
	{
		Name:  "psf_offset",
		Scene: psfOffset(),
	},
}

// psfPolynomial has a PSF which widens from 1.4 to 2.6 pixels FWHM over
// the passband.
func psfPolynomial() *scene.Scene {
	s := baseScene(200, 60)
	s.Config.PSFCoeffs = []float64{-1, 3e-4}
	s.Config.PSFRange = []float64{8000, 12000}
	s.Config.LambdaPSF = 9000
	s.Objects = []scene.Object{star(1, 60, 30, 19), star(2, 90, 20, 20)}
	return s
}

func psfOffset() *scene.Scene {
	s := baseScene(200, 60)
	s.Config.Beams[0].PSFOffset = 1.5
	s.Objects = []scene.Object{star(1, 60, 30, 19)}
	return s
}
