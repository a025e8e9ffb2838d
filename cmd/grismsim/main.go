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

// Command grismsim simulates a slitless spectroscopy image from a scene
// file.
//
// Usage:
//
//	grismsim -scene field.yaml -out field
//
// This writes field.f64 (raw little-endian float64 pixels, row by row),
// field.tiff (a 16-bit preview) and field.json (the run report).
// The environment variable GRISMSIM_WORKERS overrides the number of
// workers given in the scene; DEBUG enables debug logging.
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strconv"

	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"seehuhn.de/go/grism"
	"seehuhn.de/go/grism/scene"
	"seehuhn.de/go/grism/spectrum"
)

func main() {
	sceneFile := flag.String("scene", "", "scene file (YAML)")
	out := flag.String("out", "grism", "output file name, without extension")
	workers := flag.Int("workers", envInt("GRISMSIM_WORKERS", 0), "number of workers (0: use scene)")
	dirImage := flag.Bool("dirimage", false, "simulate the direct image instead of the dispersed image")
	tpassFile := flag.String("tpass", "", "passband throughput table, for -dirimage")
	area := flag.Float64("area", 1, "collecting area multiplied into the passband, for -dirimage")
	verbose := flag.Bool("v", false, "log progress")
	flag.Parse()

	if *sceneFile == "" {
		fmt.Fprintln(os.Stderr, "grismsim: -scene is required")
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	grism.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*sceneFile, *out, *workers, *dirImage, *tpassFile, *area); err != nil {
		fmt.Fprintln(os.Stderr, "grismsim:", err)
		os.Exit(1)
	}
}

func run(sceneFile, out string, workers int, dirImage bool, tpassFile string, area float64) error {
	s, err := scene.Load(sceneFile)
	if err != nil {
		return err
	}
	if workers > 0 {
		s.Workers = workers
	}

	var img *grism.Image
	var report *grism.Report
	if dirImage {
		if tpassFile == "" {
			return fmt.Errorf("-dirimage needs -tpass")
		}
		wl, tp, err := scene.ReadTable(tpassFile)
		if err != nil {
			return err
		}
		tpass, err := spectrum.FilterSensitivity(wl, tp, area)
		if err != nil {
			return fmt.Errorf("%s: %w", tpassFile, err)
		}
		img, err = s.RunDirImage(tpass)
		if err != nil {
			return err
		}
		report = grism.NewReport()
		report.Objects = len(s.Objects)
	} else {
		img, report, err = s.Run()
		if err != nil {
			return err
		}
	}

	if err := writeRaw(out+".f64", img.Flux()); err != nil {
		return err
	}
	if err := writePreview(out+".tiff", img.Flux()); err != nil {
		return err
	}
	if err := writeReport(out+".json", report); err != nil {
		return err
	}

	for _, d := range report.Diagnostics {
		if d.Reason != grism.ReasonPixelOutside {
			slog.Warn(d.String())
		}
	}
	return nil
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

// writeRaw writes the pixel values row by row as little-endian float64.
func writeRaw(fname string, m *mat.Dense) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	rows, _ := m.Dims()
	for i := range rows {
		if err := binary.Write(w, binary.LittleEndian, m.RawRowView(i)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// preview maps the pixel values linearly to 16-bit gray, from the minimum
// to the maximum value.  Row 0 of the matrix becomes the bottom row of
// the image.
func preview(m *mat.Dense) *image.Gray16 {
	rows, cols := m.Dims()
	img := image.NewGray16(image.Rect(0, 0, cols, rows))

	lo, hi := 0.0, 0.0
	for i := range rows {
		row := m.RawRowView(i)
		if i == 0 {
			lo, hi = floats.Min(row), floats.Max(row)
			continue
		}
		lo = min(lo, floats.Min(row))
		hi = max(hi, floats.Max(row))
	}
	scale := 0.0
	if hi > lo {
		scale = 65535 / (hi - lo)
	}

	for i := range rows {
		row := m.RawRowView(i)
		y := rows - 1 - i
		for x, v := range row {
			g := uint16((v-lo)*scale + 0.5)
			img.Pix[y*img.Stride+2*x] = uint8(g >> 8)
			img.Pix[y*img.Stride+2*x+1] = uint8(g)
		}
	}
	return img
}

func writePreview(fname string, m *mat.Dense) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return tiff.Encode(f, preview(m), &tiff.Options{Compression: tiff.Deflate})
}

func writeReport(fname string, report *grism.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fname, append(data, '\n'), 0o644)
}
