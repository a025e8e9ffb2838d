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

package grism_test

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
	"seehuhn.de/go/grism"
	"seehuhn.de/go/grism/scene"
	"seehuhn.de/go/grism/testcases"
)

// TestScenarios runs every reference scene and checks properties which
// hold for all of them.
func TestScenarios(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				s := *tc.Scene
				s.Workers = 1
				img1, rep1, err := s.Run()
				if err != nil {
					t.Fatal(err)
				}
				s.Workers = 3
				img3, rep3, err := s.Run()
				if err != nil {
					t.Fatal(err)
				}

				if !mat.Equal(img1.Flux(), img3.Flux()) {
					t.Error("result depends on the number of workers")
				}
				if d := cmp.Diff(rep1.Diagnostics, rep3.Diagnostics); d != "" {
					t.Errorf("diagnostics depend on the number of workers:\n%s", d)
				}

				floor := s.Background * s.ExpTime
				w, h := img1.Size()
				for y := range h {
					for x := range w {
						v := img1.At(x, y)
						if math.IsNaN(v) || v < floor-1e-12*math.Abs(floor) {
							t.Fatalf("pixel %d,%d: invalid value %g", x, y, v)
						}
					}
				}
				if img1.Total() <= floor*float64(w*h) && rep1.Beams > 0 {
					t.Error("no flux from modelled beams")
				}
			})
		}
	}
}

func TestScenarioDiagnostics(t *testing.T) {
	find := func(category, name string) testcases.TestCase {
		for _, tc := range testcases.All[category] {
			if tc.Name == name {
				return tc
			}
		}
		t.Fatalf("no test case %s_%s", category, name)
		return testcases.TestCase{}
	}

	cases := []struct {
		category, name string
		reason         grism.Reason
		count          int
	}{
		{"geometry", "off_detector", grism.ReasonOffDetector, 2},
		{"geometry", "ignored_beam", grism.ReasonIgnored, 1},
		{"geometry", "no_drizzle", grism.ReasonNoDrizzle, 1},
		{"basic", "single_star", grism.ReasonPixelOutside, 0},
	}
	for _, c := range cases {
		tc := find(c.category, c.name)
		_, report, err := tc.Scene.Run()
		if err != nil {
			t.Fatal(err)
		}
		if got := report.Count(c.reason); got != c.count {
			t.Errorf("%s_%s: %d diagnostics %q, want %d", c.category, c.name, got, c.reason, c.count)
		}
	}

	_, report, err := find("geometry", "frame_edge").Scene.Run()
	if err != nil {
		t.Fatal(err)
	}
	if report.Count(grism.ReasonPixelOutside) == 0 {
		t.Error("frame_edge: no pixels reported outside")
	}
}

// TestStarCountRate checks the count rate of a magnitude 20 star against
// the dispersed trace integrals, and that it lies in the range expected for
// a 2.4 m telescope.
func TestStarCountRate(t *testing.T) {
	var s *scene.Scene
	for _, tc := range testcases.All["basic"] {
		if tc.Name == "single_star" {
			s = tc.Scene
		}
	}
	in, err := s.Input()
	if err != nil {
		t.Fatal(err)
	}
	sed, err := grism.ResolveSED(&in.Objects[0], nil)
	if err != nil {
		t.Fatal(err)
	}

	want := 0.0
	for _, b := range in.Objects[0].Beams {
		tr, err := grism.ComputeTrace(in.Config.Beam(b.ID))
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range tr {
			want += p.Resp * sed.Eval(p.Lambda) * p.DLambda
		}
	}

	img, _, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	got := img.Total()
	if math.Abs(got-want)/want > 0.02 {
		t.Errorf("total count rate %g, want %g", got, want)
	}
	if got < 100 || got > 5000 {
		t.Errorf("count rate %g counts/s is implausible for magnitude 20", got)
	}
}

// BenchmarkSimulateAll runs all reference scenes.
func BenchmarkSimulateAll(b *testing.B) {
	var cases []testcases.TestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}

	b.ResetTimer()
	for b.Loop() {
		for _, tc := range cases {
			if _, _, err := tc.Scene.Run(); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkWorkers(b *testing.B) {
	var tc testcases.TestCase
	for _, c := range testcases.All["crowded"] {
		if c.Name == "field_200" {
			tc = c
		}
	}
	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			s := *tc.Scene
			s.Workers = workers
			for b.Loop() {
				if _, _, err := s.Run(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
