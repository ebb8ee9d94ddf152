package tiffio

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"golang.org/x/image/tiff"

	"github.com/soypat/pixview"
)

// Encode writes the pixels of v to w as a TIFF image.
//
// Supported views have 1 or 2 bytes per channel with unknown or unsigned integer samples,
// and either 1 channel (Y), 2 channels (YA), 3 channels (RGB) or 4 channels (RGBA).
// A view with unknown pixel format is interpreted by its channel count. 16 bit samples
// are read in native byte order. Other views, and views whose buffer does not hold every
// row, are reported to the message log and rejected with [ErrUnsupported].
func Encode(w io.Writer, v *pixview.ConstView, opts ...Option) error {
	setHandlers()
	cfg := newConfig(opts)
	defer cfg.flush()

	img, err := toImage(v)
	if err != nil {
		cfg.errorf("Encode", "%v", err)
		return err
	}
	err = tiff.Encode(w, img, &tiff.Options{Compression: cfg.compression, Predictor: cfg.predictor})
	if err != nil {
		cfg.errorf("Encode", "%v", err)
		return fmt.Errorf("tiffio: encode: %w", err)
	}
	pixview.Logger().Debug("tiffio: encoded", "layout", v.Layout().String(), "compression", cfg.compression)
	return nil
}

func toImage(v *pixview.ConstView) (image.Image, error) {
	if v.IsEmpty() {
		return nil, fmt.Errorf("%w: empty view", ErrUnsupported)
	}
	sf := v.SampleFormat()
	if sf != pixview.SampleFormatUnknown && sf != pixview.SampleFormatUnsignedInteger {
		return nil, fmt.Errorf("%w: %s samples", ErrUnsupported, sf)
	}
	pf := v.PixelFormat()
	if pf != pixview.PixelFormatUnknown && pf.Channels() != v.Channels() {
		return nil, fmt.Errorf("%w: %s pixel format with %d channels", ErrUnsupported, pf, v.Channels())
	}
	switch pf {
	case pixview.PixelFormatUnknown, pixview.PixelFormatY, pixview.PixelFormatYA,
		pixview.PixelFormatRGB, pixview.PixelFormatRGBA:
	default:
		return nil, fmt.Errorf("%w: %s pixel format", ErrUnsupported, pf)
	}

	ch := int(v.Channels())
	if ch < 1 || ch > 4 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupported, ch)
	}
	if err := v.Layout().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	if v.Data().Len() < v.Layout().ReadableBytes() {
		return nil, fmt.Errorf("%w: %w: %d byte buffer for %v", ErrUnsupported, io.ErrShortBuffer, v.Data().Len(), v.Layout())
	}
	rect := image.Rect(0, 0, int(v.Width()), int(v.Height()))
	switch v.BytesPerChannel() {
	case 1:
		if ch == 1 {
			m := image.NewGray(rect)
			for y, row := range v.Rows() {
				row.CopyTo(m.Pix[y*m.Stride:])
			}
			return m, nil
		}
		m := image.NewNRGBA(rect)
		for y, row := range pixview.ConstTypedRows[uint8](v) {
			dst := m.Pix[y*m.Stride:]
			for x := range int(v.Width()) {
				expandNRGBA(dst[4*x:4*x+4], func(i int) uint8 { return row.At(ch*x + i) }, ch, 0xff)
			}
		}
		return m, nil
	case 2:
		if ch == 1 {
			m := image.NewGray16(rect)
			for y, row := range pixview.ConstTypedRows[uint16](v) {
				dst := m.Pix[y*m.Stride:]
				for x, s := range row.All() {
					binary.BigEndian.PutUint16(dst[2*x:], s)
				}
			}
			return m, nil
		}
		m := image.NewNRGBA64(rect)
		for y, row := range pixview.ConstTypedRows[uint16](v) {
			dst := m.Pix[y*m.Stride:]
			var px [4]uint16
			for x := range int(v.Width()) {
				expandNRGBA(px[:], func(i int) uint16 { return row.At(ch*x + i) }, ch, 0xffff)
				for i, s := range px {
					binary.BigEndian.PutUint16(dst[8*x+2*i:], s)
				}
			}
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %d bytes per channel", ErrUnsupported, v.BytesPerChannel())
}

// expandNRGBA writes the ch samples returned by sample as 4 non-premultiplied RGBA samples.
func expandNRGBA[T uint8 | uint16](dst []T, sample func(i int) T, ch int, opaque T) {
	switch ch {
	case 2:
		g := sample(0)
		dst[0], dst[1], dst[2], dst[3] = g, g, g, sample(1)
	case 3:
		dst[0], dst[1], dst[2], dst[3] = sample(0), sample(1), sample(2), opaque
	default:
		dst[0], dst[1], dst[2], dst[3] = sample(0), sample(1), sample(2), sample(3)
	}
}
