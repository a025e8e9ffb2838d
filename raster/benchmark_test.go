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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// BenchmarkEllipse measures coverage computation for an object footprint.
func BenchmarkEllipse(b *testing.B) {
	for _, size := range []int{8, 64, 512} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			c := float64(size) / 2
			buf := make([]float64, size*size)
			outline := UnitCircle()

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.CTM = EllipseCTM(vec.Vec2{X: c, Y: c}, 0.45*float64(size), 0.2*float64(size), 30)
				r.Fill(outline, func(y, xMin int, coverage []float64) {
					copy(buf[y*size+xMin:], coverage)
				})
			}
		})
	}
}

// BenchmarkVectorEllipse is the same footprint drawn with x/image/vector,
// for comparison.
func BenchmarkVectorEllipse(b *testing.B) {
	for _, size := range []int{8, 64, 512} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			z := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})
			m := EllipseCTM(vec.Vec2{X: float64(size) / 2, Y: float64(size) / 2}, 0.45*float64(size), 0.2*float64(size), 30)
			tr := func(x, y float64) (float32, float32) {
				return float32(m[0]*x + m[2]*y + m[4]), float32(m[1]*x + m[3]*y + m[5])
			}

			b.ReportAllocs()
			for b.Loop() {
				z.Reset(size, size)
				z.MoveTo(tr(1, 0))
				cubeTo(z, tr, 1, kappa, kappa, 1, 0, 1)
				cubeTo(z, tr, -kappa, 1, -1, kappa, -1, 0)
				cubeTo(z, tr, -1, -kappa, -kappa, -1, 0, -1)
				cubeTo(z, tr, kappa, -1, 1, -kappa, 1, 0)
				z.ClosePath()
				z.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

func cubeTo(z *vector.Rasterizer, tr func(x, y float64) (float32, float32), x1, y1, x2, y2, x3, y3 float64) {
	bx, by := tr(x1, y1)
	cx, cy := tr(x2, y2)
	dx, dy := tr(x3, y3)
	z.CubeTo(bx, by, cx, cy, dx, dy)
}
