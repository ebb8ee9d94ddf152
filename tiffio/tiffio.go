// Package tiffio moves TIFF images in and out of pixview views.
//
// Decoding and encoding are delegated to golang.org/x/image/tiff. This package only
// lays decoded pixels out in a view, builds encoder input from a view, and collects
// the codec's diagnostics in a process-wide message log, see [GlobalMessageLog].
package tiffio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/soypat/pixview"
)

// ErrUnsupported is returned by Encode for views whose layout and semantics have no
// TIFF representation in the codec.
var ErrUnsupported = errors.New("tiffio: unsupported layout")

// Decode reads a TIFF image from r into a newly allocated buffer and returns a view of it.
// The view is the only reference to the buffer; it stays alive for as long as the view
// or a slice obtained from it does.
//
// Samples are stored interleaved. 16 bit samples are stored in native byte order so they
// can be read with [pixview.TypedRow] as uint16. RGBA views always hold straight alpha:
// images the codec returns with associated (premultiplied) alpha are divided by their
// alpha on the way in. Paletted images are expanded to RGBA and a warning is logged.
func Decode(r io.Reader, opts ...Option) (pixview.MutableView, error) {
	setHandlers()
	cfg := newConfig(opts)
	defer cfg.flush()

	img, err := tiff.Decode(r)
	if err != nil {
		cfg.errorf("Decode", "%v", err)
		return pixview.MutableView{}, fmt.Errorf("tiffio: decode: %w", err)
	}
	v := fromImage(img, cfg)
	pixview.Logger().Debug("tiffio: decoded", "layout", v.Layout().String(), "format", v.PixelFormat().String())
	return v, nil
}

// DecodeConfig returns the layout and semantics Decode would produce, without
// decoding pixel data.
func DecodeConfig(r io.Reader, opts ...Option) (pixview.Layout, pixview.Semantics, error) {
	setHandlers()
	cfg := newConfig(opts)
	defer cfg.flush()

	ic, err := tiff.DecodeConfig(r)
	if err != nil {
		cfg.errorf("DecodeConfig", "%v", err)
		return pixview.Layout{}, pixview.Semantics{}, fmt.Errorf("tiffio: decode config: %w", err)
	}
	ch, bpc, pf := describeModel(ic.ColorModel)
	l := newLayout(ic.Width, ic.Height, ch, bpc, cfg)
	return l, pixview.NewSemantics(pf, pixview.SampleFormatUnsignedInteger), nil
}

// describeModel maps a color model to channels, bytes per channel and pixel format
// of the view Decode produces for it.
func describeModel(m color.Model) (channels, bytesPerChannel int16, pf pixview.PixelFormat) {
	if _, ok := m.(color.Palette); ok {
		return 4, 1, pixview.PixelFormatRGBA
	}
	switch m {
	case color.GrayModel:
		return 1, 1, pixview.PixelFormatY
	case color.Gray16Model:
		return 1, 2, pixview.PixelFormatY
	case color.RGBA64Model, color.NRGBA64Model:
		return 4, 2, pixview.PixelFormatRGBA
	case color.CMYKModel:
		return 4, 1, pixview.PixelFormatCMYK
	}
	return 4, 1, pixview.PixelFormatRGBA
}

func newLayout(w, h int, channels, bytesPerChannel int16, cfg *config) pixview.Layout {
	l := pixview.NewLayout(pixview.PixelLength(w), pixview.PixelLength(h), channels, bytesPerChannel)
	if cfg.rowAlign > 1 {
		l.StrideBytes = l.AlignedStride(cfg.rowAlign)
	}
	return l
}

func fromImage(img image.Image, cfg *config) pixview.MutableView {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	newView := func(channels, bytesPerChannel int16, pf pixview.PixelFormat) pixview.MutableView {
		l := newLayout(w, h, channels, bytesPerChannel, cfg)
		return pixview.NewMutableViewSemantics(pixview.Mutable(make([]byte, l.TotalBytes())), l,
			pixview.NewSemantics(pf, pixview.SampleFormatUnsignedInteger))
	}

	switch m := img.(type) {
	case *image.Gray:
		v := newView(1, 1, pixview.PixelFormatY)
		copyRows8(&v, m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y))
		return v
	case *image.Gray16:
		v := newView(1, 2, pixview.PixelFormatY)
		copyRows16(&v, m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y))
		return v
	case *image.RGBA:
		v := newView(4, 1, pixview.PixelFormatRGBA)
		copyRows8(&v, m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y))
		for _, row := range v.Rows() {
			unpremultiply(row, 0xff)
		}
		return v
	case *image.NRGBA:
		v := newView(4, 1, pixview.PixelFormatRGBA)
		copyRows8(&v, m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y))
		return v
	case *image.RGBA64:
		v := newView(4, 2, pixview.PixelFormatRGBA)
		copyRows16(&v, m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y))
		for _, row := range pixview.TypedRows[uint16](&v) {
			unpremultiply(row, 0xffff)
		}
		return v
	case *image.NRGBA64:
		v := newView(4, 2, pixview.PixelFormatRGBA)
		copyRows16(&v, m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y))
		return v
	case *image.CMYK:
		v := newView(4, 1, pixview.PixelFormatCMYK)
		copyRows8(&v, m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y))
		return v
	}

	cfg.warnf("Decode", "expanding %T image to RGBA", img)
	rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	v := newView(4, 1, pixview.PixelFormatRGBA)
	copyRows8(&v, rgba.Pix, rgba.Stride, 0)
	return v
}

// copyRows8 copies rows of a standard library image Pix slice into v.
func copyRows8(v *pixview.MutableView, pix []byte, stride, off int) {
	for y, row := range v.Rows() {
		start := off + y*stride
		copy(row, pix[start:start+len(row)])
	}
}

// copyRows16 copies big endian 16 bit samples into v in native order.
func copyRows16(v *pixview.MutableView, pix []byte, stride, off int) {
	for y, row := range pixview.TypedRows[uint16](v) {
		start := off + y*stride
		for i := range row {
			row[i] = binary.BigEndian.Uint16(pix[start+2*i:])
		}
	}
}

// unpremultiply divides the color samples of interleaved RGBA pixels by their alpha.
// Fully transparent and fully opaque pixels are left as they are.
func unpremultiply[T uint8 | uint16](row []T, opaque T) {
	for i := 0; i+3 < len(row); i += 4 {
		a := uint32(row[i+3])
		if a == 0 || a == uint32(opaque) {
			continue
		}
		for c := i; c < i+3; c++ {
			row[c] = T(min(uint32(row[c])*uint32(opaque)/a, uint32(opaque)))
		}
	}
}
