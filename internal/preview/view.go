package preview

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// View picks the plane positions are plotted on.
type View int

const (
	ViewTop   View = iota // X right, Z up, looking down -Y
	ViewFront             // X right, Y up, looking along +Z
	ViewSide              // Z right, Y up, looking along +X
)

var viewNames = [...]string{"top", "front", "side"}

func (v View) String() string {
	if v < ViewTop || v > ViewSide {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView accepts top, front or side; "" means top.
func ParseView(s string) (View, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ViewTop, nil
	}
	for i, n := range viewNames {
		if n == s {
			return View(i), nil
		}
	}
	return ViewTop, fmt.Errorf("preview: unknown view %q", s)
}

// project maps a world point to plane coordinates (v grows downward, as in
// image space) and a depth that increases toward the viewer.
func (v View) project(p mgl64.Vec3) (x, y, depth float64) {
	switch v {
	case ViewFront:
		return p[0], -p[1], -p[2]
	case ViewSide:
		return p[2], -p[1], -p[0]
	default:
		return p[0], -p[2], p[1]
	}
}
