package preview

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales a premultiplied canvas to size x size with CatmullRom
// and returns it unpremultiplied. Premultiplied filtering keeps edges from
// picking up dark halos.
func Downsample(src *image.RGBA, size int) *image.NRGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if src.Bounds().Size() == dst.Bounds().Size() {
		draw.Copy(dst, image.Point{}, src, src.Bounds(), draw.Src, nil)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	}

	out := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := uint32(dst.Pix[i+3])
		out.Pix[i+3] = uint8(a)
		if a == 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			out.Pix[i+c] = unpremul(uint32(dst.Pix[i+c]), a)
		}
	}
	return out
}

func unpremul(v, a uint32) uint8 {
	n := (v*255 + a/2) / a
	if n > 255 {
		return 255
	}
	return uint8(n)
}
