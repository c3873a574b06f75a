// Package preview plots an arrangement onto a plane and encodes it as an image.
package preview

import (
	"image"
	"image/color"
	"math"
	"sort"
	"strconv"

	"dupe-arranger/internal/mathutil"
	"dupe-arranger/internal/model"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Options controls a render.
type Options struct {
	Size         int         // output edge in pixels
	Supersample  int         // render at Size*Supersample, then downsample
	View         View        // projection plane
	MarkerRadius float64     // marker radius in output pixels
	Labels       bool        // draw copy indices
	Sprite       image.Image // stamped instead of discs when set
}

// Default colours.
var (
	Background    = color.RGBA{24, 26, 32, 255}
	AxisColor     = color.RGBA{60, 64, 76, 255}
	CopyColor     = color.RGBA{88, 166, 255, 255}
	HeadingColor  = color.RGBA{255, 196, 64, 255}
	TemplateColor = color.RGBA{255, 92, 92, 255}
	LabelColor    = color.NRGBA{230, 230, 230, 255}
)

const defaultMarkerR = 6.0

type marker struct {
	x, y, depth float64
	dx, dy      float64 // projected heading, unit length or zero
	index       int
}

// Render draws every copy plus the template (as a ring) and returns an
// opts.Size square image.
func Render(specs []model.DuplicateSpec, tmpl model.Template, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 512
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	if opts.MarkerRadius <= 0 {
		opts.MarkerRadius = defaultMarkerR
	}
	ss := float64(opts.Supersample)
	renderSize := opts.Size * opts.Supersample

	markers := make([]marker, len(specs))
	for i, s := range specs {
		markers[i] = project(opts.View, s.Transform, s.Index)
	}
	origin := project(opts.View, tmpl.Base, -1)

	// Fit the bounding box of everything plotted into the canvas
	minX, minY := origin.x, origin.y
	maxX, maxY := origin.x, origin.y
	for _, m := range markers {
		minX, maxX = math.Min(minX, m.x), math.Max(maxX, m.x)
		minY, maxY = math.Min(minY, m.y), math.Max(maxY, m.y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span < 0.001 {
		span = 0.001
	}
	margin := (opts.MarkerRadius*3 + 8) * ss
	scale := (float64(renderSize) - 2*margin) / span
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	toPixel := func(x, y float64) (float32, float32) {
		return float32(float64(renderSize)/2 + (x-cx)*scale),
			float32(float64(renderSize)/2 + (y-cy)*scale)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	r := float32(opts.MarkerRadius * ss)
	z := vector.NewRasterizer(renderSize, renderSize)

	// Crosshair through the template
	ox, oy := toPixel(origin.x, origin.y)
	line(z, 0, oy, float32(renderSize), oy, float32(ss/2))
	line(z, ox, 0, ox, float32(renderSize), float32(ss/2))
	z.Draw(canvas, canvas.Bounds(), image.NewUniform(AxisColor), image.Point{})

	// Far copies first so near ones overlap them
	sort.SliceStable(markers, func(i, j int) bool { return markers[i].depth < markers[j].depth })

	if opts.Sprite != nil {
		for _, m := range markers {
			px, py := toPixel(m.x, m.y)
			stamp(canvas, opts.Sprite, px, py, r)
		}
	} else {
		z.Reset(renderSize, renderSize)
		for _, m := range markers {
			px, py := toPixel(m.x, m.y)
			disc(z, px, py, r, false)
		}
		z.Draw(canvas, canvas.Bounds(), image.NewUniform(CopyColor), image.Point{})
	}

	z.Reset(renderSize, renderSize)
	for _, m := range markers {
		if m.dx == 0 && m.dy == 0 {
			continue
		}
		px, py := toPixel(m.x, m.y)
		line(z, px, py, px+float32(m.dx)*r*2.2, py+float32(m.dy)*r*2.2, r/4)
	}
	z.Draw(canvas, canvas.Bounds(), image.NewUniform(HeadingColor), image.Point{})

	// Template ring: outer and inner circles wound in opposite directions
	z.Reset(renderSize, renderSize)
	disc(z, ox, oy, r*1.4, false)
	disc(z, ox, oy, r*0.9, true)
	z.Draw(canvas, canvas.Bounds(), image.NewUniform(TemplateColor), image.Point{})

	img := Downsample(canvas, opts.Size)

	if opts.Labels {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(LabelColor),
			Face: basicfont.Face7x13,
		}
		for _, m := range markers {
			px, py := toPixel(m.x, m.y)
			x := int(float64(px)/ss + opts.MarkerRadius + 2)
			y := int(float64(py)/ss - opts.MarkerRadius)
			d.Dot = fixed.P(x, y)
			d.DrawString(strconv.Itoa(m.index))
		}
	}

	return img
}

func project(v View, t model.Transform, index int) marker {
	x, y, depth := v.project(t.Position)
	m := marker{x: x, y: y, depth: depth, index: index}

	fwd := mathutil.EulerToMat3(t.Rotation).Mul3x1(mathutil.Forward)
	hx, hy, _ := v.project(fwd)
	if l := math.Hypot(hx, hy); l > 1e-6 {
		m.dx, m.dy = hx/l, hy/l
	}
	return m
}

const discSegments = 32

// disc adds a closed circle to z. reverse flips the winding so a second,
// smaller reversed disc punches a hole.
func disc(z *vector.Rasterizer, cx, cy, r float32, reverse bool) {
	z.MoveTo(cx+r, cy)
	for k := 1; k < discSegments; k++ {
		a := 2 * math.Pi * float64(k) / discSegments
		if reverse {
			a = -a
		}
		z.LineTo(cx+r*float32(math.Cos(a)), cy+r*float32(math.Sin(a)))
	}
	z.ClosePath()
}

// line adds a segment of the given half width as a quad.
func line(z *vector.Rasterizer, x0, y0, x1, y1, halfWidth float32) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx := float32(-dy/l) * halfWidth
	ny := float32(dx/l) * halfWidth
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

// stamp scales sprite into a square of half-size r centred on (x, y).
func stamp(dst *image.RGBA, sprite image.Image, x, y, r float32) {
	rect := image.Rect(int(x-r), int(y-r), int(x+r+0.5), int(y+r+0.5))
	draw.ApproxBiLinear.Scale(dst, rect, sprite, sprite.Bounds(), draw.Over, nil)
}
