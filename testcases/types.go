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

// TestCase is a reference scene.
type TestCase struct {
	Name  string       // lowercase a-z and _ only
	Scene *scene.Scene // self-contained, without file references
}

// flatCurve is a constant curve over [lo, hi].
func flatCurve(lo, hi, v float64) scene.Curve {
	return scene.Curve{Wavelength: []float64{lo, hi}, Value: []float64{v, v}}
}

// hstArea is the collecting area of a 2.4 m telescope in cm².
const hstArea = 45238.93

// bandpass is a peaked throughput curve in Ångström.
func bandpass() scene.Curve {
	return scene.Curve{
		Wavelength: []float64{8000, 9000, 10000, 11000, 12000},
		Value:      []float64{0.05, 0.6, 1, 0.7, 0.1},
	}
}

// firstOrder is a typical first order beam in Ångström, 46 Å per pixel.
func firstOrder() scene.Beam {
	return scene.Beam{
		ID:          "A",
		DXStart:     -10,
		DXEnd:       100,
		Offset:      []float64{10, 0},
		Trace:       []float64{0.2, 0.01},
		Dispersion:  []float64{8800, 46},
		Sensitivity: bandpass(),
		Area:        hstArea,
	}
}

// zerothOrder is a compact, undispersed looking beam.
func zerothOrder() scene.Beam {
	return scene.Beam{
		ID:          "B",
		DXStart:     -3,
		DXEnd:       3,
		Offset:      []float64{-40, 0},
		Trace:       []float64{0},
		Dispersion:  []float64{10000, 500},
		Sensitivity: bandpass(),
		Area:        hstArea,
	}
}

func unitDrizzle() [][]float64 {
	return [][]float64{{0, 1, 0}, {0, 0, 1}}
}

// star is a Gaussian object with both standard beams.
func star(id int, x, y, mag float64) scene.Object {
	return scene.Object{
		ID: id, X: x, Y: y,
		A: 1.2, B: 1.0, Theta: 20,
		Mags:  []scene.Mag{{Lambda: 9000, Mag: mag}, {Lambda: 11000, Mag: mag + 0.3}},
		Beams: []scene.BeamRef{{ID: "A"}, {ID: "B"}},
	}
}

func baseScene(width, height int) *scene.Scene {
	return &scene.Scene{
		Width:   width,
		Height:  height,
		ExpTime: 1,
		Config: scene.Config{
			Drizzle: unitDrizzle(),
			Beams:   []scene.Beam{firstOrder(), zerothOrder()},
		},
	}
}
