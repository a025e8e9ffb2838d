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

var profileCases = []TestCase{
	{
		Name:  "gaussian_round",
		Scene: profile(scene.Object{A: 1.5, B: 1.5}),
	},
	{
		Name:  "gaussian_elongated",
		Scene: profile(scene.Object{A: 3, B: 0.7, Theta: 60}),
	},
	{
		Name:  "gaussian_point",
		Scene: profile(scene.Object{}),
	},
	{
		Name:  "tophat_disc",
		Scene: profile(scene.Object{Profile: "tophat", A: 2.5, B: 2.5}),
	},
	{
		Name:  "tophat_ellipse",
		Scene: profile(scene.Object{Profile: "tophat", A: 4, B: 1.5, Theta: -30}),
	},
	{
		Name:  "cutout",
		Scene: cutout(),
	},
}

// profile places one object with the given shape in the middle of the
// image.
func profile(shape scene.Object) *scene.Scene {
	s := baseScene(200, 60)
	obj := star(1, 60, 30, 19)
	obj.Profile = shape.Profile
	obj.A, obj.B, obj.Theta = shape.A, shape.B, shape.Theta
	s.Objects = []scene.Object{obj}
	return s
}

// cutout uses a normalised direct image with a bright core and a faint
// asymmetric wing.
func cutout() *scene.Scene {
	s := baseScene(200, 60)
	s.Objects = []scene.Object{star(1, 60.4, 29.7, 19)}
	s.Cutouts = map[int]scene.Cutout{
		1: {
			Rows: [][]float64{
				{0, 1, 1, 0, 0},
				{1, 4, 6, 2, 0},
				{1, 6, 9, 4, 1},
				{0, 2, 4, 2, 1},
				{0, 0, 1, 1, 0},
			},
			RefX:      2,
			RefY:      2,
			Normalize: true,
		},
	}
	return s
}
