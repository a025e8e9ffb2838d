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

package grism

import (
	"image"
	"math"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestKahanAccuracy adds many small values to a single pixel and compares
// the result to the exact sum.
func TestKahanAccuracy(t *testing.T) {
	const n = 10000
	var kahanErr, naiveErr float64
	for seed := range uint64(8) {
		rng := rand.New(rand.NewPCG(seed, 42))
		img, err := NewImage(3, 2)
		require.NoError(t, err)

		// start from 1 so that every addition has to round
		base := 1.0
		if seed%2 == 1 {
			base = 0
		}
		img.AddPixel(1, 1, base)
		exact := new(big.Float).SetPrec(512).SetFloat64(base)
		naive := base
		for range n {
			v := 1e-6 * rng.Float64()
			img.AddPixel(1, 1, v)
			naive += v
			exact.Add(exact, new(big.Float).SetFloat64(v))
		}

		want, _ := exact.Float64()
		got := img.At(1, 1)
		e := math.Abs(got - want)
		if e > 3*0x1p-53*want {
			t.Errorf("seed %d: compensated error %g too large for sum %g", seed, e, want)
		}
		kahanErr += e
		naiveErr += math.Abs(naive - want)
	}
	if !(kahanErr < naiveErr) {
		t.Errorf("compensated error %g not below naive error %g", kahanErr, naiveErr)
	}
}

func TestAddBeamSpecOutside(t *testing.T) {
	img, err := NewImage(4, 3)
	require.NoError(t, err)

	// 3×3 model whose left column and bottom row fall outside
	spec := &BeamSpec{
		Model:    mat.NewDense(3, 3, nil),
		Ref:      image.Pt(-1, 1),
		ObjectID: 7,
		Beam:     2,
	}
	for y := range 3 {
		for x := range 3 {
			spec.Model.Set(y, x, float64(10*y+x+1))
		}
	}

	report := NewReport()
	img.AddBeamSpec(spec, report)

	want := []Diagnostic{
		{ObjectID: 7, Beam: 2, Reason: ReasonPixelOutside, X: 0, Y: 0},
		{ObjectID: 7, Beam: 2, Reason: ReasonPixelOutside, X: 0, Y: 1},
		{ObjectID: 7, Beam: 2, Reason: ReasonPixelOutside, X: 0, Y: 2},
		{ObjectID: 7, Beam: 2, Reason: ReasonPixelOutside, X: 1, Y: 2},
		{ObjectID: 7, Beam: 2, Reason: ReasonPixelOutside, X: 2, Y: 2},
	}
	if d := cmp.Diff(want, report.Diagnostics); d != "" {
		t.Errorf("diagnostics (-want +got):\n%s", d)
	}

	wantImg := mat.NewDense(3, 4, []float64{
		0, 0, 0, 0,
		2, 3, 0, 0,
		12, 13, 0, 0,
	})
	if !mat.Equal(wantImg, img.Flux()) {
		t.Errorf("image:\n%v", mat.Formatted(img.Flux()))
	}
}

func TestAddBeamSpecFullyOutside(t *testing.T) {
	img, err := NewImage(4, 3)
	require.NoError(t, err)
	spec := &BeamSpec{Model: mat.NewDense(2, 2, []float64{1, 1, 1, 1}), Ref: image.Pt(10, 10)}

	report := NewReport()
	img.AddBeamSpec(spec, report)
	assert.Equal(t, 4, report.Count(ReasonPixelOutside))
	assert.Zero(t, img.Total())

	// a nil report is allowed
	img.AddBeamSpec(spec, nil)
}

func TestBackgroundAndExposure(t *testing.T) {
	img, err := NewImage(2, 2)
	require.NoError(t, err)
	img.AddPixel(0, 0, 1.5)
	img.AddConstant(0.25)
	img.Scale(4)

	want := mat.NewDense(2, 2, []float64{7, 1, 1, 1})
	if !mat.EqualApprox(want, img.Flux(), 1e-15) {
		t.Errorf("image:\n%v", mat.Formatted(img.Flux()))
	}
	assert.False(t, img.AddPixel(2, 0, 1))
	assert.False(t, img.AddPixel(0, -1, 1))
}

func TestNewImageInvalid(t *testing.T) {
	_, err := NewImage(0, 5)
	assert.ErrorIs(t, err, ErrConfig)
}
