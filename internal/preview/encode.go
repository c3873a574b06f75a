package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// ImageFormat names an output encoding.
type ImageFormat string

const (
	FormatWebP ImageFormat = "webp"
	FormatPNG  ImageFormat = "png"
	FormatTGA  ImageFormat = "tga"
)

// ParseImageFormat accepts webp, png or tga; "" means webp.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch f := ImageFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatWebP, nil
	case FormatWebP, FormatPNG, FormatTGA:
		return f, nil
	default:
		return "", fmt.Errorf("preview: unknown image format %q", s)
	}
}

func (f ImageFormat) Ext() string { return "." + string(f) }

func (f ImageFormat) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatTGA:
		return "image/x-tga"
	default:
		return "image/webp"
	}
}

// Encode writes img in format f.
func Encode(w io.Writer, img image.Image, f ImageFormat) error {
	var err error
	switch f {
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatTGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("preview: unknown image format %q", string(f))
	}
	if err != nil {
		return fmt.Errorf("preview: encode %s: %w", f, err)
	}
	return nil
}
