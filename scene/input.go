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

package scene

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/grism"
	"seehuhn.de/go/grism/spectrum"
)

// Interpolator returns the curve as an interpolator.  Relative file names
// are resolved against dir.
func (c Curve) Interpolator(dir string) (*spectrum.Interpolator, error) {
	x, y := c.Wavelength, c.Value
	if c.File != "" {
		s := &Scene{Dir: dir}
		var err error
		x, y, err = ReadTable(s.path(c.File))
		if err != nil {
			return nil, err
		}
	}
	return spectrum.New(x, y)
}

// ReadTable reads the first two columns of a whitespace separated text
// file.  Empty lines and lines starting with '#' are skipped.
func ReadTable(fname string) (x, y []float64, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("%s:%d: expected two columns", fname, lineNo)
		}
		a, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: %w", fname, lineNo, err)
		}
		b, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: %w", fname, lineNo, err)
		}
		x = append(x, a)
		y = append(y, b)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Input converts the scene into simulation input.
func (s *Scene) Input() (*grism.Input, error) {
	cfg, err := s.instrument()
	if err != nil {
		return nil, err
	}

	in := &grism.Input{
		Config:  cfg,
		Width:   s.Width,
		Height:  s.Height,
		SEDs:    make(map[int]*spectrum.Interpolator, len(s.SEDs)),
		Cutouts: make(map[int]*grism.DirectImage, len(s.Cutouts)),
	}
	for id, c := range s.SEDs {
		sed, err := c.Interpolator(s.Dir)
		if err != nil {
			return nil, fmt.Errorf("SED %d: %w", id, err)
		}
		in.SEDs[id] = sed
	}
	for id, c := range s.Cutouts {
		di, err := c.directImage()
		if err != nil {
			return nil, fmt.Errorf("cutout %d: %w", id, err)
		}
		in.Cutouts[id] = di
	}
	for _, o := range s.Objects {
		obj, err := o.object()
		if err != nil {
			return nil, err
		}
		in.Objects = append(in.Objects, obj)
	}
	return in, nil
}

func (s *Scene) instrument() (*grism.InstrumentConfig, error) {
	c := &s.Config
	cfg := &grism.InstrumentConfig{
		PSFCoeffs: grism.Poly(c.PSFCoeffs),
		LambdaPSF: c.LambdaPSF,
	}
	if len(c.PSFRange) == 2 {
		cfg.PSFRange = &[2]float64{c.PSFRange[0], c.PSFRange[1]}
	}
	if len(c.Drizzle) > 0 {
		cols := len(c.Drizzle[0])
		data := make([]float64, 0, len(c.Drizzle)*cols)
		for i, row := range c.Drizzle {
			if len(row) != cols {
				return nil, fmt.Errorf("%w: drizzle row %d has %d entries, want %d", ErrInvalid, i, len(row), cols)
			}
			data = append(data, row...)
		}
		if cols > 0 {
			cfg.DrzCoeffs = mat.NewDense(len(c.Drizzle), cols, data)
		}
	}

	for _, b := range c.Beams {
		id, err := grism.ParseBeamID(b.ID)
		if err != nil {
			return nil, err
		}
		sens, err := b.Sensitivity.Interpolator(s.Dir)
		if err != nil {
			return nil, fmt.Errorf("beam %s: sensitivity: %w", b.ID, err)
		}
		if b.Area > 0 {
			wl, tp := sens.Samples()
			sens, err = spectrum.PhotonSensitivity(wl, tp, b.Area)
			if err != nil {
				return nil, fmt.Errorf("beam %s: sensitivity: %w", b.ID, err)
			}
		}
		bc := grism.BeamConfig{
			ID:          id,
			DXStart:     b.DXStart,
			DXEnd:       b.DXEnd,
			Trace:       grism.Poly(b.Trace),
			Dispersion:  grism.CalibFunction{Coeffs: grism.Poly(b.Dispersion)},
			Sensitivity: sens,
			PSFOffset:   b.PSFOffset,
		}
		if len(b.Offset) == 2 {
			bc.Offset = vec.Vec2{X: b.Offset[0], Y: b.Offset[1]}
		}
		cfg.Beams = append(cfg.Beams, bc)
	}
	return cfg, nil
}

func (o *Object) object() (grism.Object, error) {
	ref := vec.Vec2{X: o.X, Y: o.Y}
	obj := grism.Object{ID: o.ID, RefPoint: ref}

	switch strings.ToLower(o.Profile) {
	case "", "gaussian":
		obj.Profile = grism.Gaussian
	case "tophat":
		obj.Profile = grism.TopHat
	default:
		return obj, fmt.Errorf("%w: object %d: unknown profile %q", ErrInvalid, o.ID, o.Profile)
	}
	for _, m := range o.Mags {
		obj.Mags = append(obj.Mags, grism.MagPoint{Lambda: m.Lambda, Mag: m.Mag})
	}

	shape := grism.Ellipse{A: o.A, B: o.B, ThetaDeg: o.Theta}
	for _, b := range o.Beams {
		id, err := grism.ParseBeamID(b.ID)
		if err != nil {
			return obj, fmt.Errorf("object %d: %w", o.ID, err)
		}
		if obj.Beam(id) != nil {
			return obj, fmt.Errorf("%w: object %d: duplicate beam %s", ErrInvalid, o.ID, id)
		}
		obj.Beams = append(obj.Beams, grism.Beam{
			ID:       id,
			RefPoint: ref,
			Shape:    shape,
			Ignore:   b.Ignore,
		})
	}
	return obj, nil
}

func (c *Cutout) directImage() (*grism.DirectImage, error) {
	if len(c.Rows) == 0 || len(c.Rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty cutout", ErrInvalid)
	}
	cols := len(c.Rows[0])
	data := make([]float64, 0, len(c.Rows)*cols)
	for i, row := range c.Rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalid, i, len(row), cols)
		}
		data = append(data, row...)
	}
	if c.Normalize {
		sum := floats.Sum(data)
		if sum == 0 {
			return nil, fmt.Errorf("%w: cannot normalise a zero cutout", ErrInvalid)
		}
		floats.Scale(1/sum, data)
	}
	return &grism.DirectImage{
		Data: mat.NewDense(len(c.Rows), cols, data),
		Ref:  vec.Vec2{X: c.RefX, Y: c.RefY},
	}, nil
}

// Options returns the run options given in the scene.
func (s *Scene) Options() *grism.Options {
	opt := grism.DefaultOptions()
	if s.Workers > 0 {
		opt.Workers = s.Workers
	}
	if s.Subsample > 0 {
		opt.Subsample = s.Subsample
	}
	return opt
}

// Run simulates the dispersed image.  The background is added to the
// model count rates and the result is multiplied by the exposure time.
func (s *Scene) Run() (*grism.Image, *grism.Report, error) {
	in, err := s.Input()
	if err != nil {
		return nil, nil, err
	}
	img, report, err := grism.Simulate(in, s.Options())
	if err != nil {
		return nil, nil, err
	}
	s.finish(img)
	return img, report, nil
}

// RunDirImage simulates the direct image seen through the passband
// tpass, instead of the dispersed image.
func (s *Scene) RunDirImage(tpass *spectrum.Interpolator) (*grism.Image, error) {
	in, err := s.Input()
	if err != nil {
		return nil, err
	}
	scale, _ := in.Config.DrzScale()

	dirs := make([]*grism.DirObject, len(in.Objects))
	for i := range in.Objects {
		obj := &in.Objects[i]
		sed, err := grism.ResolveSED(obj, in.SEDs)
		if err != nil {
			return nil, err
		}
		dirs[i] = grism.NewDirObject(obj, scale, in.Cutouts[obj.ID], sed, 0)
	}
	img, err := grism.MakeDirImage(in.Objects, dirs, in.Width, in.Height, tpass)
	if err != nil {
		return nil, err
	}
	s.finish(img)
	return img, nil
}

func (s *Scene) finish(img *grism.Image) {
	if s.Background != 0 {
		img.AddConstant(s.Background)
	}
	img.Scale(s.ExpTime)
}
