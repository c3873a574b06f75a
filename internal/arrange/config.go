// Package arrange places copies of a template in space.
package arrange

import (
	"fmt"
	"math"
	"strings"

	"dupe-arranger/internal/model"

	"github.com/go-gl/mathgl/mgl64"
)

// Mode names an arrangement strategy.
type Mode int

const (
	ModeLinear Mode = iota
	ModeGrid
	ModeCircle
	ModeSpiral
	ModeRandom
)

var modeNames = [...]string{"linear", "grid", "circle", "spiral", "random"}

func (m Mode) String() string {
	if m < ModeLinear || m > ModeRandom {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the lowercase mode names used in job files.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return 0, model.Invalidf("arrange: unknown mode %q", s)
}

// Orientation is the axis a circle or spiral is wound around.
type Orientation int

const (
	AxisX Orientation = iota
	AxisY
	AxisZ
)

func (o Orientation) String() string {
	switch o {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// Axis returns the unit vector of o.
func (o Orientation) Axis() mgl64.Vec3 {
	var v mgl64.Vec3
	if o.valid() {
		v[o] = 1
	}
	return v
}

func (o Orientation) valid() bool {
	return o >= AxisX && o <= AxisZ
}

// ParseOrientation accepts "x", "y" or "z".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y", "":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, model.Invalidf("arrange: unknown orientation %q", s)
}

// Arc is the portion of a full turn a circle covers.
type Arc int

const (
	Quarter Arc = iota
	Semi
	ThreeQuarter
	Full
)

var arcNames = [...]string{"quarter", "semi", "three_quarter", "full"}

func (a Arc) String() string {
	if !a.valid() {
		return fmt.Sprintf("Arc(%d)", int(a))
	}
	return arcNames[a]
}

// Degrees returns 90, 180, 270 or 360.
func (a Arc) Degrees() float64 {
	return 90 * float64(a+1)
}

func (a Arc) valid() bool {
	return a >= Quarter && a <= Full
}

// ParseArc accepts the names returned by Arc.String; "" means full.
func ParseArc(s string) (Arc, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Full, nil
	}
	for i, n := range arcNames {
		if n == s {
			return Arc(i), nil
		}
	}
	return 0, model.Invalidf("arrange: unknown arc %q", s)
}

// Source supplies uniform draws in [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Config is one of Linear, Grid, Circle, Spiral or Random.
type Config interface {
	Mode() Mode
	Validate() error
	// Placements returns count transforms derived from base. rng is only read by Random.
	Placements(count int, base model.Transform, rng Source) ([]model.Transform, error)
}

func finite(field string, vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.Invalidf("arrange: %s is not finite", field)
		}
	}
	return nil
}

func finiteVec(field string, v mgl64.Vec3) error {
	return finite(field, v[0], v[1], v[2])
}

func nonNegative(field string, v float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return model.Invalidf("arrange: %s %g below zero", field, v)
	}
	return nil
}

func checkCount(mode Mode, count int) error {
	if err := model.CheckCount(count); err != nil {
		return fmt.Errorf("arrange: %s: %w", mode, err)
	}
	return nil
}
