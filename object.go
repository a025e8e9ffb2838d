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

	"seehuhn.de/go/geom/vec"
)

// BeamID identifies one spectral order of an object.  Beams are
// letter-coded, starting with 'A' for BeamID 0.
type BeamID int

func (id BeamID) String() string {
	if id >= 0 && id < 26 {
		return string(rune('A' + id))
	}
	return fmt.Sprintf("beam%d", int(id))
}

// MarshalText implements [encoding.TextMarshaler].
func (id BeamID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// ParseBeamID converts a beam letter back to a BeamID.
func ParseBeamID(s string) (BeamID, error) {
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		return BeamID(s[0] - 'A'), nil
	}
	return 0, fmt.Errorf("invalid beam id %q", s)
}

// Profile selects the spatial emission model of an object.
type Profile int

const (
	// Gaussian is an elliptical Gaussian.  The ellipse axes are the
	// standard deviations.
	Gaussian Profile = iota

	// TopHat is a uniformly bright ellipse.  The ellipse axes are the
	// semi-axes.
	TopHat
)

func (p Profile) String() string {
	switch p {
	case Gaussian:
		return "gaussian"
	case TopHat:
		return "tophat"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

// Ellipse describes the spatial extent of a beam, in detector pixels.
// ThetaDeg is the angle of the A axis, counter-clockwise from the x axis.
type Ellipse struct {
	A, B     float64
	ThetaDeg float64
}

// MagPoint is a catalog AB magnitude at a given wavelength.
type MagPoint struct {
	Lambda float64
	Mag    float64
}

// Beam is one dispersed order of an object.
type Beam struct {
	ID       BeamID
	RefPoint vec.Vec2
	Shape    Ellipse

	// Ignore is set when the beam cannot be simulated, for example because
	// its geometry is degenerate.
	Ignore bool
}

// Object is a catalog entry.  Objects are not modified by the simulation.
type Object struct {
	ID       int
	RefPoint vec.Vec2
	Beams    []Beam
	Profile  Profile

	// Mags are used to build an SED when no SED table is given for the
	// object.
	Mags []MagPoint
}

// Beam returns the beam with the given ID, or nil.
func (o *Object) Beam(id BeamID) *Beam {
	for i := range o.Beams {
		if o.Beams[i].ID == id {
			return &o.Beams[i]
		}
	}
	return nil
}

// Shape returns the shape of the first beam.  Objects without beams are
// treated as points.
func (o *Object) Shape() Ellipse {
	if len(o.Beams) == 0 {
		return Ellipse{}
	}
	return o.Beams[0].Shape
}
