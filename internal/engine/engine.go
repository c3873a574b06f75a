// Package engine turns a template plus naming and arrangement configs into the
// ordered list of copies a host should create.
package engine

import (
	"fmt"
	"math/rand/v2"

	"dupe-arranger/internal/arrange"
	"dupe-arranger/internal/model"
	"dupe-arranger/internal/naming"
)

// Option tunes a Build call.
type Option func(*options)

type options struct {
	rng arrange.Source
}

// WithRand uses src for every random draw.
func WithRand(src arrange.Source) Option {
	return func(o *options) { o.rng = src }
}

// WithSeed draws from a PCG generator seeded with seed, making Random arrangements repeatable.
func WithSeed(seed uint64) Option {
	return WithRand(NewRand(seed))
}

// NewRand returns the generator WithSeed uses.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Build names and places count copies of tmpl.
// For a Grid arrangement count may be 0, meaning "as many as the grid holds";
// any other value that differs from the grid's size fails with model.ErrCountMismatch.
func Build(count int, tmpl model.Template, nc naming.Config, ac arrange.Config, opts ...Option) ([]model.DuplicateSpec, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if ac == nil {
		return nil, model.Invalidf("engine: no arrangement config")
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	count, err := ResolveCount(count, ac)
	if err != nil {
		return nil, err
	}

	names, err := naming.Generate(count, tmpl, nc)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	placements, err := ac.Placements(count, tmpl.Base, o.rng)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if len(placements) != count {
		return nil, fmt.Errorf("engine: %s produced %d placements for %d copies", ac.Mode(), len(placements), count)
	}

	specs := make([]model.DuplicateSpec, count)
	for i := range specs {
		specs[i] = model.DuplicateSpec{
			Index:     i,
			Name:      names[i],
			Transform: placements[i],
		}
	}
	return specs, nil
}

// ResolveCount returns the number of copies ac will produce for a requested count.
func ResolveCount(count int, ac arrange.Config) (int, error) {
	g, ok := ac.(arrange.Grid)
	if !ok {
		return count, nil
	}
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("engine: %w", err)
	}
	if count == 0 {
		return g.Count(), nil
	}
	if count != g.Count() {
		return 0, fmt.Errorf("engine: grid holds %d copies, %d requested: %w", g.Count(), count, model.ErrCountMismatch)
	}
	return count, nil
}
