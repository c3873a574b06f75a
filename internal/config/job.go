package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"dupe-arranger/internal/arrange"
	"dupe-arranger/internal/engine"
	"dupe-arranger/internal/model"
	"dupe-arranger/internal/naming"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Job is the on-disk (YAML or JSON) description of one duplication run.
type Job struct {
	Count       int             `yaml:"count" json:"count"`
	Seed        *uint64         `yaml:"seed,omitempty" json:"seed,omitempty"`
	Template    TemplateSpec    `yaml:"template" json:"template"`
	Parent      ParentSpec      `yaml:"parent" json:"parent"`
	Naming      NamingSpec      `yaml:"naming" json:"naming"`
	Arrangement ArrangementSpec `yaml:"arrangement" json:"arrangement"`
}

type TemplateSpec struct {
	Name      string    `yaml:"name" json:"name"`
	Position  []float64 `yaml:"position,omitempty" json:"position,omitempty"`
	Rotation  []float64 `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Scale     []float64 `yaml:"scale,omitempty" json:"scale,omitempty"` // defaults to [1, 1, 1]
	Groupable bool      `yaml:"groupable" json:"groupable"`
	Parent    string    `yaml:"parent,omitempty" json:"parent,omitempty"`
}

type ParentSpec struct {
	Mode  string `yaml:"mode" json:"mode"` // keep, root or group
	Group string `yaml:"group,omitempty" json:"group,omitempty"`
}

type CounterSpec struct {
	LeadingDigits int    `yaml:"leading_digits" json:"leading_digits"`
	CountFrom     int    `yaml:"count_from" json:"count_from"`
	IncrementBy   *int   `yaml:"increment_by,omitempty" json:"increment_by,omitempty"` // defaults to 1
	AddSpace      bool   `yaml:"add_space" json:"add_space"`
	Delimiter     string `yaml:"delimiter" json:"delimiter"`
}

type PartSpec struct {
	Text        string `yaml:"text" json:"text"`
	Numerate    bool   `yaml:"numerate" json:"numerate"`
	CounterSpec `yaml:",inline"`
}

type CustomSpec struct {
	ReplaceFullName bool      `yaml:"replace_full_name" json:"replace_full_name"`
	Replacement     string    `yaml:"replacement" json:"replacement"`
	Prefix          *PartSpec `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix          *PartSpec `yaml:"suffix,omitempty" json:"suffix,omitempty"`
}

type NamingSpec struct {
	Mode    string       `yaml:"mode" json:"mode"` // numeric (default) or custom
	Numeric *CounterSpec `yaml:"numeric,omitempty" json:"numeric,omitempty"`
	Custom  *CustomSpec  `yaml:"custom,omitempty" json:"custom,omitempty"`
}

type LinearSpec struct {
	PositionOffset []float64 `yaml:"position_offset" json:"position_offset"`
	RotationOffset []float64 `yaml:"rotation_offset" json:"rotation_offset"`
	ScaleOffset    []float64 `yaml:"scale_offset" json:"scale_offset"`
}

type GridSpec struct {
	Size    []int     `yaml:"size" json:"size"`
	Spacing []float64 `yaml:"spacing" json:"spacing"`
}

type CircleSpec struct {
	Radius       float64 `yaml:"radius" json:"radius"`
	Orientation  string  `yaml:"orientation" json:"orientation"`
	Arc          string  `yaml:"arc" json:"arc"`
	LookAtCenter bool    `yaml:"look_at_center" json:"look_at_center"`
}

type SpiralSpec struct {
	Radius       float64 `yaml:"radius" json:"radius"`
	CurveAmount  float64 `yaml:"curve_amount" json:"curve_amount"`
	Height       float64 `yaml:"height" json:"height"`
	Orientation  string  `yaml:"orientation" json:"orientation"`
	LookAtCenter bool    `yaml:"look_at_center" json:"look_at_center"`
}

type RangeSpec struct {
	Min   float64 `yaml:"min" json:"min"`
	Max   float64 `yaml:"max" json:"max"`
	LockX bool    `yaml:"lock_x" json:"lock_x"`
	LockY bool    `yaml:"lock_y" json:"lock_y"`
	LockZ bool    `yaml:"lock_z" json:"lock_z"`
}

type RotationLockSpec struct {
	LockPitch bool `yaml:"lock_pitch" json:"lock_pitch"`
	LockYaw   bool `yaml:"lock_yaw" json:"lock_yaw"`
	LockRoll  bool `yaml:"lock_roll" json:"lock_roll"`
}

type RandomSpec struct {
	Position *RangeSpec        `yaml:"position,omitempty" json:"position,omitempty"`
	Rotation *RotationLockSpec `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Scale    *RangeSpec        `yaml:"scale,omitempty" json:"scale,omitempty"`
}

type ArrangementSpec struct {
	Mode   string      `yaml:"mode" json:"mode"`
	Linear *LinearSpec `yaml:"linear,omitempty" json:"linear,omitempty"`
	Grid   *GridSpec   `yaml:"grid,omitempty" json:"grid,omitempty"`
	Circle *CircleSpec `yaml:"circle,omitempty" json:"circle,omitempty"`
	Spiral *SpiralSpec `yaml:"spiral,omitempty" json:"spiral,omitempty"`
	Random *RandomSpec `yaml:"random,omitempty" json:"random,omitempty"`
}

// LoadJob reads a job file. JSON files load too, JSON being a subset of YAML.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	job, err := ParseJob(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return job, nil
}

// ParseJob decodes a job, rejecting unknown keys.
func ParseJob(r io.Reader) (*Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var job Job
	if err := dec.Decode(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Request is a Job converted into engine inputs.
type Request struct {
	Count       int
	Seed        *uint64
	Template    model.Template
	Parent      engine.ParentPolicy
	Naming      naming.Config
	Arrangement arrange.Config
}

// Options returns the engine options the request implies.
func (r Request) Options() []engine.Option {
	if r.Seed == nil {
		return nil
	}
	return []engine.Option{engine.WithSeed(*r.Seed)}
}

// Resolve converts the job into engine inputs. Only the shape of the job is
// checked here; value ranges are left to the engine.
func (j *Job) Resolve() (Request, error) {
	tmpl, err := j.Template.resolve()
	if err != nil {
		return Request{}, err
	}
	mode, err := engine.ParseParentMode(j.Parent.Mode)
	if err != nil {
		return Request{}, err
	}
	nc, err := j.Naming.resolve()
	if err != nil {
		return Request{}, err
	}
	ac, err := j.Arrangement.resolve()
	if err != nil {
		return Request{}, err
	}

	return Request{
		Count:       j.Count,
		Seed:        j.Seed,
		Template:    tmpl,
		Parent:      engine.ParentPolicy{Mode: mode, Group: j.Parent.Group},
		Naming:      nc,
		Arrangement: ac,
	}, nil
}

func (t TemplateSpec) resolve() (model.Template, error) {
	if t.Name == "" {
		return model.Template{}, model.Invalidf("config: template name is empty")
	}
	pos, err := vec3("template.position", t.Position, mgl64.Vec3{})
	if err != nil {
		return model.Template{}, err
	}
	rot, err := vec3("template.rotation", t.Rotation, mgl64.Vec3{})
	if err != nil {
		return model.Template{}, err
	}
	scale, err := vec3("template.scale", t.Scale, mgl64.Vec3{1, 1, 1})
	if err != nil {
		return model.Template{}, err
	}
	return model.Template{
		Name:      t.Name,
		Base:      model.Transform{Position: pos, Rotation: rot, Scale: scale},
		Groupable: t.Groupable,
		Parent:    t.Parent,
	}, nil
}

// defaultCounter names copies "Name (1)", "Name (2)", ...
var defaultCounter = naming.Counter{CountFrom: 1, IncrementBy: 1, AddSpace: true, Delimiter: naming.Parentheses}

func (n NamingSpec) resolve() (naming.Config, error) {
	switch strings.ToLower(strings.TrimSpace(n.Mode)) {
	case "", "numeric":
		if n.Numeric == nil {
			return naming.Numeric{Counter: defaultCounter}, nil
		}
		c, err := n.Numeric.resolve()
		if err != nil {
			return nil, err
		}
		return naming.Numeric{Counter: c}, nil
	case "custom":
		if n.Custom == nil {
			return nil, model.Invalidf("config: naming mode custom without a custom block")
		}
		prefix, err := n.Custom.Prefix.resolve()
		if err != nil {
			return nil, err
		}
		suffix, err := n.Custom.Suffix.resolve()
		if err != nil {
			return nil, err
		}
		return naming.Custom{
			ReplaceFullName: n.Custom.ReplaceFullName,
			Replacement:     n.Custom.Replacement,
			Prefix:          prefix,
			Suffix:          suffix,
		}, nil
	}
	return nil, model.Invalidf("config: unknown naming mode %q", n.Mode)
}

func (c CounterSpec) resolve() (naming.Counter, error) {
	d, err := naming.ParseDelimiter(c.Delimiter)
	if err != nil {
		return naming.Counter{}, err
	}
	inc := 1
	if c.IncrementBy != nil {
		inc = *c.IncrementBy
	}
	return naming.Counter{
		LeadingDigits: c.LeadingDigits,
		CountFrom:     c.CountFrom,
		IncrementBy:   inc,
		AddSpace:      c.AddSpace,
		Delimiter:     d,
	}, nil
}

func (p *PartSpec) resolve() (*naming.Part, error) {
	if p == nil {
		return nil, nil
	}
	c, err := p.CounterSpec.resolve()
	if err != nil {
		return nil, err
	}
	return &naming.Part{Text: p.Text, Numerate: p.Numerate, Counter: c}, nil
}

func (a ArrangementSpec) resolve() (arrange.Config, error) {
	mode, err := arrange.ParseMode(a.Mode)
	if err != nil {
		return nil, err
	}

	switch mode {
	case arrange.ModeLinear:
		s := a.Linear
		if s == nil {
			s = &LinearSpec{}
		}
		pos, err := vec3("linear.position_offset", s.PositionOffset, mgl64.Vec3{})
		if err != nil {
			return nil, err
		}
		rot, err := vec3("linear.rotation_offset", s.RotationOffset, mgl64.Vec3{})
		if err != nil {
			return nil, err
		}
		scale, err := vec3("linear.scale_offset", s.ScaleOffset, mgl64.Vec3{})
		if err != nil {
			return nil, err
		}
		return arrange.Linear{PositionOffset: pos, RotationOffset: rot, ScaleOffset: scale}, nil

	case arrange.ModeGrid:
		if a.Grid == nil {
			return nil, model.Invalidf("config: grid mode without a grid block")
		}
		if len(a.Grid.Size) != 3 {
			return nil, model.Invalidf("config: grid.size needs 3 components, got %d", len(a.Grid.Size))
		}
		spacing, err := vec3("grid.spacing", a.Grid.Spacing, mgl64.Vec3{1, 1, 1})
		if err != nil {
			return nil, err
		}
		return arrange.Grid{Size: [3]int{a.Grid.Size[0], a.Grid.Size[1], a.Grid.Size[2]}, Spacing: spacing}, nil

	case arrange.ModeCircle:
		s := a.Circle
		if s == nil {
			s = &CircleSpec{}
		}
		o, err := arrange.ParseOrientation(s.Orientation)
		if err != nil {
			return nil, err
		}
		arc, err := arrange.ParseArc(s.Arc)
		if err != nil {
			return nil, err
		}
		return arrange.Circle{Radius: s.Radius, Orientation: o, Arc: arc, LookAtCenter: s.LookAtCenter}, nil

	case arrange.ModeSpiral:
		s := a.Spiral
		if s == nil {
			s = &SpiralSpec{}
		}
		o, err := arrange.ParseOrientation(s.Orientation)
		if err != nil {
			return nil, err
		}
		return arrange.Spiral{
			Radius:       s.Radius,
			CurveAmount:  s.CurveAmount,
			Height:       s.Height,
			Orientation:  o,
			LookAtCenter: s.LookAtCenter,
		}, nil

	default:
		var r arrange.Random
		if a.Random == nil {
			return r, nil
		}
		if p := a.Random.Position; p != nil {
			r.Position = &arrange.AxisRange{Min: p.Min, Max: p.Max, LockX: p.LockX, LockY: p.LockY, LockZ: p.LockZ}
		}
		if l := a.Random.Rotation; l != nil {
			r.Rotation = &arrange.RotationLocks{LockPitch: l.LockPitch, LockYaw: l.LockYaw, LockRoll: l.LockRoll}
		}
		if s := a.Random.Scale; s != nil {
			r.Scale = &arrange.AxisRange{Min: s.Min, Max: s.Max, LockX: s.LockX, LockY: s.LockY, LockZ: s.LockZ}
		}
		return r, nil
	}
}

func vec3(field string, v []float64, def mgl64.Vec3) (mgl64.Vec3, error) {
	if v == nil {
		return def, nil
	}
	if len(v) != 3 {
		return mgl64.Vec3{}, model.Invalidf("config: %s needs 3 components, got %d", field, len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}
