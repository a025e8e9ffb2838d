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
	"fmt"

	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/grism/spectrum"
)

// Options control a simulation run.
type Options struct {
	// Workers is the number of objects rendered concurrently.  The result
	// does not depend on this value.
	Workers int

	// Subsample is the number of samples per pixel and axis used for
	// Gaussian object profiles.
	Subsample int
}

// DefaultOptions returns the options used when nil is passed to
// [Simulate].
func DefaultOptions() *Options {
	return &Options{
		Workers:   1,
		Subsample: defaultSubsample,
	}
}

const defaultSubsample = 5

// Input holds everything a run needs.  SEDs and Cutouts are keyed by
// object ID and may be nil.
type Input struct {
	Objects []Object
	Config  *InstrumentConfig
	SEDs    map[int]*spectrum.Interpolator
	Cutouts map[int]*DirectImage

	Width, Height int
}

type objectResult struct {
	specs []*BeamSpec
	diags []Diagnostic
}

// Simulate computes the dispersed image of all objects in the input.
// Beams and pixels which cannot be simulated are listed in the report.
// Structural problems with the input abort the run.
func Simulate(in *Input, opt *Options) (*Image, *Report, error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	if in.Config == nil {
		return nil, nil, fmt.Errorf("%w: missing instrument configuration", ErrConfig)
	}
	if err := in.Config.Validate(); err != nil {
		return nil, nil, err
	}
	img, err := NewImage(in.Width, in.Height)
	if err != nil {
		return nil, nil, err
	}

	report := NewReport()
	log := Logger().With("run", report.RunID)
	log.Info("starting simulation", "objects", len(in.Objects), "workers", opt.Workers)

	r := &renderer{
		in:     in,
		opt:    opt,
		margin: in.Config.MaxOffset(),
	}
	var ok bool
	r.drzScale, ok = in.Config.DrzScale()
	if !ok {
		log.Warn("drizzle coefficients unusable, assuming unit pixel scale")
		report.add(Diagnostic{ObjectID: NoObject, Reason: ReasonNoDrizzle})
	}

	collect := func(res objectResult) {
		report.Objects++
		report.Diagnostics = append(report.Diagnostics, res.diags...)
		for _, spec := range res.specs {
			img.AddBeamSpec(spec, report)
			report.Beams++
		}
	}

	workers := max(opt.Workers, 1)
	if workers == 1 {
		for i := range in.Objects {
			res, err := r.renderObject(&in.Objects[i])
			if err != nil {
				return nil, nil, err
			}
			collect(res)
		}
	} else {
		window := 4 * workers
		results := make([]objectResult, window)
		for start := 0; start < len(in.Objects); start += window {
			end := min(start+window, len(in.Objects))

			var g errgroup.Group
			g.SetLimit(workers)
			for i := start; i < end; i++ {
				g.Go(func() error {
					res, err := r.renderObject(&in.Objects[i])
					results[i-start] = res
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return nil, nil, err
			}

			for _, res := range results[:end-start] {
				collect(res)
			}
			clear(results)
		}
	}

	log.Info("simulation done",
		"beams", report.Beams,
		"skipped", report.Skipped(),
		"outside", report.Count(ReasonPixelOutside))
	return img, report, nil
}

type renderer struct {
	in       *Input
	opt      *Options
	margin   int
	drzScale vec.Vec2
}

// renderObject models all beams of one object.  It only reads shared state.
func (r *renderer) renderObject(obj *Object) (objectResult, error) {
	var res objectResult
	if len(obj.Beams) == 0 {
		return res, nil
	}
	cfg := r.in.Config
	log := Logger()

	sed, err := ResolveSED(obj, r.in.SEDs)
	if err != nil {
		return res, err
	}
	dir := NewDirObject(obj, r.drzScale, r.in.Cutouts[obj.ID], sed, r.margin)

	skip := func(b *Beam, reason Reason) {
		log.Warn("skipping beam", "object", obj.ID, "beam", b.ID, "reason", reason)
		res.diags = append(res.diags, Diagnostic{ObjectID: obj.ID, Beam: b.ID, Reason: reason})
	}

	for j := range obj.Beams {
		b := &obj.Beams[j]
		if b.Ignore {
			skip(b, ReasonIgnored)
			continue
		}
		bc := cfg.Beam(b.ID)
		if bc == nil {
			skip(b, ReasonNoBeamConfig)
			continue
		}

		tr, err := ComputeTrace(bc)
		if err != nil {
			return res, fmt.Errorf("object %d: %w", obj.ID, err)
		}
		if tr.Len() == 0 {
			skip(b, ReasonEmptyTrace)
			continue
		}
		spec := DimensionBeamSpec(dir, obj, bc, tr, r.in.Width, r.in.Height)
		if spec == nil {
			skip(b, ReasonOffDetector)
			continue
		}

		FillFlux(tr, sed)
		em := NewEmission(dir, obj, b, cfg, bc.PSFOffset, r.opt.Subsample)
		log.Debug("modelling beam", "object", obj.ID, "beam", b.ID, "emission", em.Kind, "points", tr.Len())
		if err := Disperse(spec, dir, em, tr, bc); err != nil {
			return res, err
		}
		res.specs = append(res.specs, spec)
	}
	return res, nil
}
