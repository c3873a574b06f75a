package engine

import (
	"context"
	"fmt"
	"strings"

	"dupe-arranger/internal/arrange"
	"dupe-arranger/internal/model"
	"dupe-arranger/internal/naming"
)

// Host owns the scene the copies are created in.
type Host interface {
	// CreateGroup makes an empty group under parent and returns its path.
	CreateGroup(ctx context.Context, name, parent string) (string, error)
	// Instantiate creates one copy of the template under parent.
	Instantiate(ctx context.Context, spec model.DuplicateSpec, parent string) error
}

// ParentMode decides where copies are attached.
type ParentMode int

const (
	ParentKeep  ParentMode = iota // same parent as the template
	ParentRoot                    // scene root
	ParentGroup                   // a new group next to the template
)

var parentModeNames = [...]string{"keep", "root", "group"}

func (m ParentMode) String() string {
	if m < ParentKeep || m > ParentGroup {
		return fmt.Sprintf("ParentMode(%d)", int(m))
	}
	return parentModeNames[m]
}

// ParseParentMode accepts "keep", "root" or "group"; "" means keep.
func ParseParentMode(s string) (ParentMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ParentKeep, nil
	}
	for i, n := range parentModeNames {
		if n == s {
			return ParentMode(i), nil
		}
	}
	return 0, model.Invalidf("engine: unknown parent mode %q", s)
}

// ParentPolicy is a ParentMode plus the group name for ParentGroup.
type ParentPolicy struct {
	Mode  ParentMode
	Group string // defaults to "<template> Group"
}

// GroupName returns the name a ParentGroup policy creates for tmpl.
func (p ParentPolicy) GroupName(tmpl model.Template) string {
	if p.Group != "" {
		return p.Group
	}
	return tmpl.Name + " Group"
}

// ResolveParent returns the path every copy is attached under, creating the
// group on h when the policy asks for one.
func ResolveParent(ctx context.Context, h Host, tmpl model.Template, p ParentPolicy) (string, error) {
	switch p.Mode {
	case ParentKeep:
		return tmpl.Parent, nil
	case ParentRoot:
		return "", nil
	case ParentGroup:
		if !tmpl.Groupable {
			return "", model.Invalidf("engine: template %q cannot be grouped", tmpl.Name)
		}
		path, err := h.CreateGroup(ctx, p.GroupName(tmpl), tmpl.Parent)
		if err != nil {
			return "", fmt.Errorf("engine: create group: %w", err)
		}
		return path, nil
	}
	return "", model.Invalidf("engine: parent mode %d unknown", int(p.Mode))
}

// Apply builds the copies and instantiates them on h in index order.
// Nothing is created when the configuration is rejected.
func Apply(
	ctx context.Context,
	h Host,
	count int,
	tmpl model.Template,
	nc naming.Config,
	ac arrange.Config,
	parent ParentPolicy,
	opts ...Option,
) ([]model.DuplicateSpec, error) {
	specs, err := Build(count, tmpl, nc, ac, opts...)
	if err != nil {
		return nil, err
	}

	target, err := ResolveParent(ctx, h, tmpl, parent)
	if err != nil {
		return nil, err
	}

	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			return specs[:i], fmt.Errorf("engine: stopped after %d of %d copies: %w", i, len(specs), err)
		}
		if err := h.Instantiate(ctx, spec, target); err != nil {
			return specs[:i], fmt.Errorf("engine: instantiate %q: %w", spec.Name, err)
		}
	}
	return specs, nil
}
