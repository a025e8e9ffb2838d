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

package raster

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// kappa is the control point distance for approximating a quarter circle
// of radius 1 by a cubic Bézier curve.
const kappa = 0.5522847498307936

// UnitCircle returns the unit circle around the origin, traced
// counter-clockwise by four cubic Bézier curves.
func UnitCircle() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		buf[0] = vec.Vec2{X: 1, Y: 0}
		if !yield(path.CmdMoveTo, buf[:1]) {
			return
		}
		for _, q := range unitQuarters {
			buf = q
			if !yield(path.CmdCubeTo, buf[:]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// unitQuarters holds the control points of the four quarter arcs, starting
// at (1, 0).
var unitQuarters = [4][3]vec.Vec2{
	{{X: 1, Y: kappa}, {X: kappa, Y: 1}, {X: 0, Y: 1}},
	{{X: -kappa, Y: 1}, {X: -1, Y: kappa}, {X: -1, Y: 0}},
	{{X: -1, Y: -kappa}, {X: -kappa, Y: -1}, {X: 0, Y: -1}},
	{{X: kappa, Y: -1}, {X: 1, Y: -kappa}, {X: 1, Y: 0}},
}

// EllipseCTM maps the unit circle onto an ellipse with semi-axes a and b,
// rotated counter-clockwise by thetaDeg degrees and centred on c.
func EllipseCTM(c vec.Vec2, a, b, thetaDeg float64) matrix.Matrix {
	return matrix.Scale(a, b).RotateDeg(thetaDeg).Translate(c.X, c.Y)
}

// EllipseBounds returns the half-widths of the axis-aligned bounding box
// of the ellipse described by a, b and thetaDeg.
func EllipseBounds(a, b, thetaDeg float64) vec.Vec2 {
	sin, cos := math.Sincos(thetaDeg * math.Pi / 180)
	return vec.Vec2{
		X: math.Sqrt(a*a*cos*cos + b*b*sin*sin),
		Y: math.Sqrt(a*a*sin*sin + b*b*cos*cos),
	}
}
