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

var geometryCases = []TestCase{
	{
		Name:  "curved_trace",
		Scene: curvedTrace(),
	},
	{
		Name:  "reversed_dispersion",
		Scene: reversedDispersion(),
	},
	{
		Name:  "frame_edge",
		Scene: frameEdge(),
	},
	{
		Name:  "off_detector",
		Scene: offDetector(),
	},
	{
		Name:  "ignored_beam",
		Scene: ignoredBeam(),
	},
	{
		Name:  "drizzle_scaled",
		Scene: drizzleScaled(),
	},
	{
		Name:  "no_drizzle",
		Scene: noDrizzle(),
	},
}

func curvedTrace() *scene.Scene {
	s := baseScene(200, 60)
	s.Config.Beams[0].Trace = []float64{0, 0.05, 5e-4}
	s.Objects = []scene.Object{star(1, 50, 20, 19)}
	return s
}

func reversedDispersion() *scene.Scene {
	s := baseScene(200, 60)
	s.Config.Beams[0].DXStart = -100
	s.Config.Beams[0].DXEnd = 10
	s.Config.Beams[0].Dispersion = []float64{8800, -46}
	s.Config.Beams[0].Offset = []float64{0, 0}
	s.Objects = []scene.Object{star(1, 150, 30, 19)}
	return s
}

// frameEdge has spectra which run off the right and the bottom edge.
func frameEdge() *scene.Scene {
	s := baseScene(120, 40)
	s.Objects = []scene.Object{
		star(1, 60, 1, 19),
		star(2, 100, 20, 19),
	}
	return s
}

func offDetector() *scene.Scene {
	s := baseScene(100, 40)
	s.Objects = []scene.Object{
		star(1, -500, 20, 19),
		star(2, 60, 20, 19),
	}
	return s
}

func ignoredBeam() *scene.Scene {
	s := baseScene(200, 60)
	obj := star(1, 60, 30, 19)
	obj.Beams[1].Ignore = true
	s.Objects = []scene.Object{obj}
	return s
}

// drizzleScaled uses a slightly rotated and anisotropic drizzle mapping.
func drizzleScaled() *scene.Scene {
	s := baseScene(200, 60)
	s.Config.Drizzle = [][]float64{{0, 1.2, 0.1}, {0, -0.1, 0.8}}
	obj := star(1, 60, 30, 19)
	obj.Profile = "tophat"
	obj.A, obj.B = 3, 2
	s.Objects = []scene.Object{obj, star(2, 100, 40, 20)}
	return s
}

func noDrizzle() *scene.Scene {
	s := baseScene(200, 60)
	s.Config.Drizzle = nil
	s.Objects = []scene.Object{star(1, 60, 30, 19)}
	return s
}
