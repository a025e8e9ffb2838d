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
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Reason classifies a recoverable problem found during a run.
type Reason int

const (
	// ReasonIgnored marks a beam which has its Ignore flag set.
	ReasonIgnored Reason = iota + 1

	// ReasonEmptyTrace marks a beam without usable trace points.
	ReasonEmptyTrace

	// ReasonOffDetector marks a beam whose spectrum misses the detector.
	ReasonOffDetector

	// ReasonNoBeamConfig marks a beam without instrument configuration.
	ReasonNoBeamConfig

	// ReasonPixelOutside marks a single model pixel outside the image.
	ReasonPixelOutside

	// ReasonNoDrizzle is a run-level warning: the drizzle coefficients
	// were unusable and unit pixel scale was assumed.
	ReasonNoDrizzle
)

var reasonNames = map[Reason]string{
	ReasonIgnored:      "ignored",
	ReasonEmptyTrace:   "empty trace",
	ReasonOffDetector:  "off detector",
	ReasonNoBeamConfig: "no beam config",
	ReasonPixelOutside: "pixel outside",
	ReasonNoDrizzle:    "no drizzle coefficients",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// MarshalText implements [encoding.TextMarshaler].
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// NoObject is the ObjectID of run-level diagnostics.
const NoObject = -1

// Diagnostic records one skipped beam or pixel.  X and Y are only set for
// ReasonPixelOutside and give the pixel position inside the beam model.
type Diagnostic struct {
	ObjectID int    `json:"object"`
	Beam     BeamID `json:"beam"`
	Reason   Reason `json:"reason"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// MarshalJSON implements [json.Marshaler].  The pixel position is only
// written for ReasonPixelOutside.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	type plain Diagnostic
	if d.Reason == ReasonPixelOutside {
		return json.Marshal(plain(d))
	}
	return json.Marshal(struct {
		ObjectID int    `json:"object"`
		Beam     BeamID `json:"beam"`
		Reason   Reason `json:"reason"`
	}{d.ObjectID, d.Beam, d.Reason})
}

func (d Diagnostic) String() string {
	switch {
	case d.ObjectID == NoObject:
		return d.Reason.String()
	case d.Reason == ReasonPixelOutside:
		return fmt.Sprintf("object %d beam %s pixel %d,%d: %s", d.ObjectID, d.Beam, d.X, d.Y, d.Reason)
	default:
		return fmt.Sprintf("object %d beam %s: %s", d.ObjectID, d.Beam, d.Reason)
	}
}

// Report summarises a run.
type Report struct {
	RunID       uuid.UUID    `json:"run_id"`
	Objects     int          `json:"objects"`
	Beams       int          `json:"beams"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// NewReport returns an empty report with a fresh run ID.
func NewReport() *Report {
	return &Report{RunID: uuid.New()}
}

func (r *Report) add(d Diagnostic) {
	if r == nil {
		return
	}
	r.Diagnostics = append(r.Diagnostics, d)
}

// Count returns the number of diagnostics with the given reason.
func (r *Report) Count(reason Reason) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Reason == reason {
			n++
		}
	}
	return n
}

// Skipped returns the number of beams which were not simulated.
func (r *Report) Skipped() int {
	n := 0
	for _, d := range r.Diagnostics {
		switch d.Reason {
		case ReasonIgnored, ReasonEmptyTrace, ReasonOffDetector, ReasonNoBeamConfig:
			n++
		}
	}
	return n
}
