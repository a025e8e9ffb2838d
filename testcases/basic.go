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

var basicCases = []TestCase{
	{
		Name:  "flat_two_beams",
		Scene: flatTwoBeams(),
	},
	{
		Name:  "single_star",
		Scene: singleStar(0, 1),
	},
	{
		Name:  "background",
		Scene: singleStar(0.1, 100),
	},
}

// flatTwoBeams is a uniform 5×5 footprint of flux 2 with unit sensitivity
// and SED, dispersed at 1 nm per pixel by two overlapping beams.
func flatTwoBeams() *scene.Scene {
	beam := func(id string, dx float64) scene.Beam {
		return scene.Beam{
			ID:          id,
			DXStart:     0,
			DXEnd:       100,
			Offset:      []float64{dx, 0},
			Trace:       []float64{0},
			Dispersion:  []float64{500, 1},
			Sensitivity: flatCurve(500, 600, 1),
		}
	}
	rows := make([][]float64, 5)
	for i := range rows {
		rows[i] = []float64{2, 2, 2, 2, 2}
	}
	return &scene.Scene{
		Width:   200,
		Height:  60,
		ExpTime: 1,
		Config: scene.Config{
			Drizzle: unitDrizzle(),
			Beams:   []scene.Beam{beam("A", 0), beam("B", 30)},
		},
		Objects: []scene.Object{{
			ID: 1, X: 20, Y: 30,
			Beams: []scene.BeamRef{{ID: "A"}, {ID: "B"}},
		}},
		SEDs:    map[int]scene.Curve{1: flatCurve(500, 600, 1)},
		Cutouts: map[int]scene.Cutout{1: {Rows: rows, RefX: 2, RefY: 2}},
	}
}

func singleStar(background, exptime float64) *scene.Scene {
	s := baseScene(200, 80)
	s.Background = background
	s.ExpTime = exptime
	s.Objects = []scene.Object{star(1, 60, 40, 20)}
	return s
}
