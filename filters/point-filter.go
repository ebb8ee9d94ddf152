package filters

import (
	"errors"
	"image"

	"github.com/soypat/pixview"
)

var errShapeMismatch = errors.New("pixel shape mismatch")

// PointFunc processes a contiguous row of pixels.
// dst and src contain rowWidth pixels worth of bytes.
// The function should iterate through pixels: for i := 0; i < len(src); i += bytesPerPixel { ... }
type PointFunc func(dst, src []byte)

// PointFilter applies a per-pixel transformation to 8 bit images using a callback function.
// It handles the iteration, buffering, and ROI logic common to all per-pixel filters.
// The callback is invoked once per row with contiguous pixel data.
type PointFilter struct {
	In    pixview.PixelFormat
	Out   pixview.PixelFormat
	Fn    PointFunc
	Ctrls []pixview.Control // User-defined controls for this filter.
}

var _ pixview.Filter = (*PointFilter)(nil)

// ShapeIO implements [pixview.Filter].
func (f *PointFilter) ShapeIO() (output, input pixview.PixelFormat) {
	return f.Out, f.In
}

// Controls implements [pixview.Filter].
func (f *PointFilter) Controls() []pixview.Control {
	return f.Ctrls
}

// Process implements [pixview.Filter]. The source must have 1 byte per channel and as many
// channels as the input pixel format; its pixel format is only checked when known.
// The output is written packed.
func (f *PointFilter) Process(dst []byte, src pixview.Image, roi *image.Rectangle) (pixview.Layout, error) {
	if f.Fn == nil {
		return pixview.Layout{}, errNilPixelFunc
	}

	outShape, inShape := f.ShapeIO()
	srcLayout := src.Layout()
	if srcLayout.Channels != inShape.Channels() || srcLayout.BytesPerChannel != 1 {
		return pixview.Layout{}, errShapeMismatch
	}
	if sv, ok := src.(interface{ PixelFormat() pixview.PixelFormat }); ok {
		if pf := sv.PixelFormat(); pf != pixview.PixelFormatUnknown && pf != inShape {
			return pixview.Layout{}, errShapeMismatch
		}
	}

	// Calculate output dimensions based on ROI or full image.
	var outWidth, outHeight int
	if roi != nil {
		outWidth, outHeight = roi.Dx(), roi.Dy()
	} else {
		outWidth, outHeight = int(srcLayout.Width), int(srcLayout.Height)
	}
	dstLayout := pixview.NewLayout(pixview.PixelLength(outWidth), pixview.PixelLength(outHeight), outShape.Channels(), 1)

	dst, _, err := pixview.ValidateProcessArgs(dst, dstLayout, src, roi)
	if err != nil {
		return pixview.Layout{}, err
	}
	inPlace := roi == nil && len(dst) > 0 && isBufferOf(dst, src)
	if inPlace && outShape.Channels() != srcLayout.Channels {
		// Rows would be rewritten with a different pixel size while still being read.
		return pixview.Layout{}, errAliasedDestination
	}
	if inPlace {
		// Write back with the source geometry so padded sources stay addressable.
		dstLayout = srcLayout
	}
	out := pixview.NewMutableViewSemantics(pixview.Mutable(dst), dstLayout,
		pixview.NewSemantics(outShape, pixview.SampleFormatUnsignedInteger))

	// Determine source region to process.
	startX, startY := 0, 0
	endX := int(srcLayout.Width)
	if roi != nil {
		startX, startY = roi.Min.X, roi.Min.Y
		endX = roi.Max.X
	}
	inBytesPerPixel := srcLayout.BytesPerPixel()
	outRowBytes := outWidth * dstLayout.BytesPerPixel()

	rowBuf := make([]byte, srcLayout.RowBytes()) // Fallback buffer for ReadAt.
	for c := pixview.NewRowCursor[byte](&out); !c.Done(); c.Next() {
		srcRow, err := pixview.ReadRow(rowBuf, src, startY+c.Y())
		if err != nil {
			return pixview.Layout{}, err
		}
		dstRow := c.Bytes()
		if dstRow == nil {
			return pixview.Layout{}, errShortDestination
		}
		f.Fn(dstRow[:outRowBytes], srcRow[startX*inBytesPerPixel:endX*inBytesPerPixel])
	}
	pixview.Logger().Debug("filters: processed", "in", inShape.String(), "out", outShape.String(), "layout", out.Layout().String())
	return out.Layout(), nil
}

// isBufferOf reports whether dst is the in-memory buffer of src, as selected by
// [pixview.ValidateProcessArgs] for in-place processing.
func isBufferOf(dst []byte, src pixview.Image) bool {
	buffered, ok := src.(pixview.ImageBuffered)
	if !ok {
		return false
	}
	buf := buffered.Buffer()
	return len(buf) > 0 && &buf[0] == &dst[0]
}

const (
	errNilPixelFunc       = errorString("nil PixelFunc")
	errShortDestination   = errorString("destination buffer too small for output row")
	errAliasedDestination = errorString("in-place processing requires equal input and output channels")
)

type errorString string

func (e errorString) Error() string { return string(e) }
