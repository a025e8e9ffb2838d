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
	"math"

	"seehuhn.de/go/grism/scene"
)

var crowdedCases = []TestCase{
	{
		Name:  "field_50",
		Scene: field(50, 256, 128),
	},
	{
		Name:  "field_200",
		Scene: field(200, 512, 256),
	},
}

// field scatters n objects over the image on a deterministic
// quasi-random pattern.  Every fifth object is a TopHat.
func field(n, width, height int) *scene.Scene {
	s := baseScene(width, height)
	const phi = 0.6180339887498949
	for i := range n {
		u := math.Mod(float64(i)*phi, 1)
		v := math.Mod(float64(i)*phi*phi+0.5/float64(n), 1)
		obj := star(i+1, u*float64(width), v*float64(height), 18+4*math.Mod(float64(i)*0.37, 1))
		obj.Theta = float64(17 * i % 180)
		if i%5 == 4 {
			obj.Profile = "tophat"
			obj.A, obj.B = 2.5, 1.5
		}
		s.Objects = append(s.Objects, obj)
	}
	return s
}
