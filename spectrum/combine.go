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

package spectrum

import (
	"slices"
)

// FilterSensitivity returns the sensitivity curve of a passband: the
// throughput tabulated at the given wavelengths, multiplied by the
// collecting area of the telescope.
func FilterSensitivity(wavelength, throughput []float64, telArea float64) (*Interpolator, error) {
	ip, err := New(wavelength, throughput)
	if err != nil {
		return nil, err
	}
	return ip.Scale(telArea), nil
}

// planckC is h·c in erg·Å.
const planckC = 1.98644586e-8

// PhotonSensitivity converts a throughput curve into a sensitivity in
// counts per flux unit: a flux density in erg/s/cm²/Å at wavelength λ (in
// Ångström) produces throughput·area·λ/(h·c) counts per second and Ångström.
// The area is in cm².
func PhotonSensitivity(wavelength, throughput []float64, area float64) (*Interpolator, error) {
	ip, err := New(wavelength, throughput)
	if err != nil {
		return nil, err
	}
	for i, x := range ip.x {
		ip.y[i] *= area * x / planckC
	}
	return ip, nil
}

// Combine returns the pointwise product of a and b, sampled on the sorted
// union of both sample grids.  Each factor keeps its boundary value
// outside its own domain.
func Combine(a, b *Interpolator) *Interpolator {
	grid := make([]float64, 0, len(a.x)+len(b.x))
	grid = append(grid, a.x...)
	grid = append(grid, b.x...)
	slices.Sort(grid)
	grid = slices.Compact(grid)

	y := make([]float64, len(grid))
	for i, x := range grid {
		y[i] = a.Eval(x) * b.Eval(x)
	}
	return &Interpolator{x: grid, y: y}
}

// CombineOn returns the pointwise product of a and b, sampled at the
// positions in grid.  The grid must be strictly monotone.
func CombineOn(grid []float64, a, b *Interpolator) (*Interpolator, error) {
	y := make([]float64, len(grid))
	for i, x := range grid {
		y[i] = a.Eval(x) * b.Eval(x)
	}
	return New(grid, y)
}
