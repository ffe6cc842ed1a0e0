// Package resample names the interpolation filters available for resizing
// grayscale images, backed by nfnt/resize and x/image/draw.
package resample

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// DefaultFilter is Lanczos with a=3, the antialiasing filter used when none is configured.
const DefaultFilter = "lanczos"

var ErrUnknownFilter = errors.New("unknown resample filter")

// Filter resizes an image to an exact size, discarding aspect ratio.
type Filter interface {
	Name() string
	Resize(src image.Image, width, height int) *image.Gray
}

type nfntFilter struct {
	name   string
	interp resize.InterpolationFunction
}

func (f nfntFilter) Name() string { return f.name }

func (f nfntFilter) Resize(src image.Image, width, height int) *image.Gray {
	out := resize.Resize(uint(width), uint(height), src, f.interp)
	return ToGray(out)
}

type drawFilter struct {
	name   string
	interp draw.Interpolator
}

func (f drawFilter) Name() string { return f.name }

func (f drawFilter) Resize(src image.Image, width, height int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	f.interp.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

var filters = map[string]Filter{
	"lanczos":        nfntFilter{"lanczos", resize.Lanczos3},
	"lanczos2":       nfntFilter{"lanczos2", resize.Lanczos2},
	"mitchell":       nfntFilter{"mitchell", resize.MitchellNetravali},
	"bicubic":        nfntFilter{"bicubic", resize.Bicubic},
	"bilinear":       nfntFilter{"bilinear", resize.Bilinear},
	"nearest":        nfntFilter{"nearest", resize.NearestNeighbor},
	"catmullrom":     drawFilter{"catmullrom", draw.CatmullRom},
	"approxbilinear": drawFilter{"approxbilinear", draw.ApproxBiLinear},
}

// Lookup returns the filter registered under name. Matching ignores case and
// surrounding space; an empty name selects DefaultFilter.
func Lookup(name string) (Filter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultFilter
	}
	f, ok := filters[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownFilter, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered filter names in sorted order.
func Names() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToGray converts img to an 8-bit grayscale grid anchored at the origin,
// using ITU-R 601 luma weights. Alpha is dropped rather than composited:
// a pixel's gray level comes from its straight (non-premultiplied) RGB, so a
// transparent white pixel stays white. A *image.Gray already anchored at the
// origin is returned as is.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := dst.Pix[(y-b.Min.Y)*dst.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			row[x-b.Min.X] = luma(img.At(x, y))
		}
	}
	return dst
}

// luma returns the 8-bit gray level of c's straight RGB channels.
func luma(c color.Color) uint8 {
	var r, g, b uint32
	switch c := c.(type) {
	case color.NRGBA:
		r, g, b = uint32(c.R)*0x101, uint32(c.G)*0x101, uint32(c.B)*0x101
	case color.NRGBA64:
		r, g, b = uint32(c.R), uint32(c.G), uint32(c.B)
	default:
		var a uint32
		r, g, b, a = c.RGBA()
		if a == 0 {
			return 0
		}
		if a != 0xffff {
			r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a
		}
	}
	return uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 24)
}
