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

// Package grism simulates slitless spectroscopy images.
//
// Every object of a catalog is modelled by a box of direct image pixels.
// For each dispersed beam of the object the light of every pixel is
// spread along the beam's trace, weighted by the object's spectrum and
// the sensitivity of the instrument, into a beam model ([BeamSpec]).  The
// beam models are then added to the output [Image] with compensated
// summation.
//
// [Simulate] runs the whole process.  Problems which only affect single
// beams or pixels are collected in a [Report]; structural problems of the
// input abort the run with an error.
package grism
