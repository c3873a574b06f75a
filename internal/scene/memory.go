// Package scene is an in-memory Host: it records the groups and copies an
// engine run creates so they can be exported or inspected.
package scene

import (
	"context"
	"fmt"
	"path"
	"sync"

	"dupe-arranger/internal/model"
)

// Object is one instantiated copy.
type Object struct {
	model.DuplicateSpec
	Parent string
}

// Path is the object's slash-separated location in the scene.
func (o Object) Path() string {
	return path.Join("/", o.Parent, o.Name)
}

// Memory records everything created on it. Safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	groups  map[string]bool
	objects []Object
}

// NewMemory returns an empty scene.
func NewMemory() *Memory {
	return &Memory{groups: make(map[string]bool)}
}

// CreateGroup adds a group under parent. Names already taken at that level get
// a numeric suffix, " (1)", " (2)" and so on.
func (m *Memory) CreateGroup(ctx context.Context, name, parent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("scene: empty group name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p := path.Join("/", parent, name)
	for n := 1; m.groups[p]; n++ {
		p = path.Join("/", parent, fmt.Sprintf("%s (%d)", name, n))
	}
	m.groups[p] = true
	return p, nil
}

// Instantiate records spec under parent.
func (m *Memory) Instantiate(ctx context.Context, spec model.DuplicateSpec, parent string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects = append(m.objects, Object{DuplicateSpec: spec, Parent: parent})
	return nil
}

// Objects returns the copies in creation order.
func (m *Memory) Objects() []Object {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Object, len(m.objects))
	copy(out, m.objects)
	return out
}

// Groups returns how many groups were created.
func (m *Memory) Groups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.groups)
}

// HasGroup reports whether p was created by CreateGroup.
func (m *Memory) HasGroup(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.groups[p]
}
