package pixview

import (
	"errors"
	"image"
	"io"
)

// Image is a low-level, whole-buffer image access abstraction of raw memory.
// Row spacing is homogenous across the image: rows are StrideBytes apart.
// Both [ConstView] and [MutableView] implement Image.
type Image interface {
	// Layout returns information on in-memory image structure.
	Layout() Layout
	// ReadAt reads from the image buffer of pixels, which may be in-memory or elsewhere (disk, network).
	//
	// Users should always try casting [Image] to [ImageBuffered]
	// to see if they can work with the image in-memory which is more efficient.
	io.ReaderAt
}

// ImageBuffered is an [Image] whose pixels live in a writable in-memory buffer.
type ImageBuffered interface {
	Image
	// Buffer returns the raw underlying buffer, or nil to signal the buffer is not in memory.
	Buffer() []byte
}

var (
	_ ImageBuffered = (*MutableView)(nil)
	_ Image         = (*ConstView)(nil)
)

// Filter is a extremely flexible low-level filter implementation.
//
// Binary/Ternary... operations such as blend, composite and difference may be
// implemented by having the filter store the additional images before calling process on a target image.
type Filter interface {
	// ShapeIO returns expected output and input pixel formats of the filter.
	ShapeIO() (output, input PixelFormat)
	// Process processes an input image and writes the result to
	// destination buffer and returns the layout of the resulting image.
	//
	// If destination buffer is nil Filter will assert [ImageBuffered.Buffer] non-nilness
	// and use the buffer as the destination data. In-place does not support ROI.
	// Use [ValidateProcessArgs] to acquire dst buffer and validate arguments.
	Process(dstOrNilForInPlace []byte, src Image, roi *image.Rectangle) (Layout, error)
	// Controls returns the actual controls of the filter.
	// Controls should remain valid even after calling [Control.ChangeValue]
	// and their [Control.ActualValue] return the updated value.
	Controls() []Control
}

// ReadRow returns the data bytes of row y of img. Buffered images return a slice of their
// own memory; otherwise the row is read into dst, which must hold at least RowBytes.
func ReadRow(dst []byte, img Image, y int) (resultSized []byte, err error) {
	l := img.Layout()
	rowLenBytes := l.RowBytes()
	if len(dst) < rowLenBytes {
		// So we could technically check this after trying ImageBuffered,
		// however if we do check early we can encourage users to write more robust software for when Buffer() fails.
		return nil, io.ErrShortBuffer
	} else if y < 0 || y >= int(l.Height) || !l.addressable() {
		return nil, ErrOutOfRange
	}
	off := int64(y) * int64(l.StrideBytes)
	if buffered, ok := img.(ImageBuffered); ok {
		buf := buffered.Buffer()
		if buf != nil {
			if off+int64(rowLenBytes) > int64(len(buf)) {
				return nil, io.ErrShortBuffer
			}
			return buf[off : off+int64(rowLenBytes)], nil
		}
	}
	resultSized = dst[:rowLenBytes]
	n, err := img.ReadAt(resultSized, off)
	if n != rowLenBytes {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return resultSized, nil
}

// ValidateProcessArgs gets correct write destination buffer and
// provides basic guarantees of inputs to Filter such as:
//   - Source layout validation through [Layout.Validate] and a non-empty check.
//   - Valid ROI argument.
//   - Valid input image for buffered in-place operations. In-place rejects non-nil ROI.
//   - Layout match for in-place operations.
//   - For users who know the output stride and height offers checking of dst buffer size.
//     Use dstLayout.StrideBytes=0 to omit this check.
//
// srcLayout is always returned as called by src.Layout.
func ValidateProcessArgs(dst []byte, dstLayout Layout, src Image, roi *image.Rectangle) (_ []byte, srcLayout Layout, err error) {
	srcLayout = src.Layout()
	if srcLayout.IsEmpty() {
		return nil, srcLayout, errors.New("empty image")
	} else if err = srcLayout.Validate(); err != nil {
		return nil, srcLayout, err
	}
	var requiredMinDstSize int64
	if roi != nil {
		if roi.Max.X < 0 || roi.Min.X < 0 || roi.Min.Y < 0 || roi.Max.Y < 0 {
			return nil, srcLayout, errors.New("negative ROI")
		} else if roi.Max.X > int(srcLayout.Width) || roi.Max.Y > int(srcLayout.Height) {
			return nil, srcLayout, errors.New("ROI exceeds image bounds")
		} else if roi.Empty() {
			return nil, srcLayout, errors.New("empty ROI")
		}
		requiredMinDstSize = int64(dstLayout.StrideBytes) * int64(roi.Dy())
	} else {
		requiredMinDstSize = int64(dstLayout.StrideBytes) * int64(dstLayout.Height)
	}
	if dst == nil {
		if roi != nil {
			return nil, srcLayout, errors.New("in-place operation does not support ROI")
		}
		if dstLayout.BytesPerPixel() != srcLayout.BytesPerPixel() {
			return nil, srcLayout, errors.New("src must match filter output pixel size for in-place op")
		}
		buffered, ok := src.(ImageBuffered)
		if !ok {
			return nil, srcLayout, errors.New("src does not implement ImageBuffered for in-place op")
		}
		buf := buffered.Buffer()
		if buf == nil {
			return nil, srcLayout, errors.New("src returned nil buffer on in-place op")
		} else if len(buf) < srcLayout.ReadableBytes() {
			return nil, srcLayout, errors.New("src ImageBuffered returned a buffer too small to represent complete image")
		}
		dst = buf
	}
	if int64(len(dst)) < requiredMinDstSize {
		return dst, srcLayout, errors.New("destination buffer not large enough to store output")
	}
	return dst, srcLayout, nil
}
