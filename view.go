package pixview

import "io"

// viewCore holds the geometry and semantics shared by [ConstView] and [MutableView]
// along with the offset arithmetic, so both views address memory through one code path.
type viewCore struct {
	layout    Layout
	semantics Semantics
}

// Layout returns the view's layout.
func (c *viewCore) Layout() Layout { return c.layout }

// Width returns the image width in pixels.
func (c *viewCore) Width() PixelLength { return c.layout.Width }

// Height returns the image height in pixels.
func (c *viewCore) Height() PixelLength { return c.layout.Height }

// Channels returns the number of channels per pixel.
func (c *viewCore) Channels() int16 { return c.layout.Channels }

// BytesPerChannel returns the number of bytes used by each channel value.
func (c *viewCore) BytesPerChannel() int16 { return c.layout.BytesPerChannel }

// BytesPerPixel returns the number of bytes used by each pixel.
func (c *viewCore) BytesPerPixel() int { return c.layout.BytesPerPixel() }

// StrideBytes returns the row stride in bytes.
func (c *viewCore) StrideBytes() Stride { return c.layout.StrideBytes }

// RowBytes returns the number of data bytes per row, excluding padding.
func (c *viewCore) RowBytes() int { return c.layout.RowBytes() }

// TotalBytes returns the number of bytes the image occupies including padding.
func (c *viewCore) TotalBytes() int { return c.layout.TotalBytes() }

// IsPacked reports whether rows are stored without padding.
func (c *viewCore) IsPacked() bool { return c.layout.IsPacked() }

// Semantics returns the view's pixel and sample format.
func (c *viewCore) Semantics() Semantics { return c.semantics }

// PixelFormat returns the view's pixel format.
func (c *viewCore) PixelFormat() PixelFormat { return c.semantics.PixelFormat }

// SampleFormat returns the view's sample format.
func (c *viewCore) SampleFormat() SampleFormat { return c.semantics.SampleFormat }

// RowOffset returns the byte offset of the first pixel of row y, StrideBytes*y.
// Layouts with a negative field address nothing and always fail.
func (c *viewCore) RowOffset(y int) (int, error) {
	if y < 0 || y >= int(c.layout.Height) || !c.layout.addressable() {
		return 0, ErrOutOfRange
	}
	return int(c.layout.StrideBytes) * y, nil
}

// PixelOffset returns the byte offset of pixel (x, y), StrideBytes*y + BytesPerPixel*x.
func (c *viewCore) PixelOffset(x, y int) (int, error) {
	if x < 0 || x >= int(c.layout.Width) || y < 0 || y >= int(c.layout.Height) || !c.layout.addressable() {
		return 0, ErrOutOfRange
	}
	return int(c.layout.StrideBytes)*y + c.layout.BytesPerPixel()*x, nil
}

// rowRange returns the bounds of row y's data within a buffer of length n.
func (c *viewCore) rowRange(y, n int) (start, end int, err error) {
	start, err = c.RowOffset(y)
	if err != nil {
		return 0, 0, err
	}
	end = start + c.layout.RowBytes()
	if end > n {
		return 0, 0, io.ErrShortBuffer
	}
	return start, end, nil
}

// pixelRange returns the bounds of pixel (x, y) within a buffer of length n.
func (c *viewCore) pixelRange(x, y, n int) (start, end int, err error) {
	start, err = c.PixelOffset(x, y)
	if err != nil {
		return 0, 0, err
	}
	end = start + c.layout.BytesPerPixel()
	if end > n {
		return 0, 0, io.ErrShortBuffer
	}
	return start, end, nil
}

// MutableView is a non-owning, read-write view of a 2D pixel grid stored in a byte buffer.
// The pixel format is runtime data carried by the view's [Layout] and [Semantics].
//
// The caller must keep the backing buffer alive for as long as the view is in use.
// Views carry no synchronization: concurrent writes to overlapping bytes through two
// views of the same buffer are a data race.
type MutableView struct {
	viewCore
	data MutableData
}

// NewMutableView returns a view of data interpreted with layout l and unknown semantics.
// The buffer length is not checked against the layout.
func NewMutableView(data MutableData, l Layout) MutableView {
	return MutableView{viewCore: viewCore{layout: l}, data: data}
}

// NewMutableViewSemantics returns a view of data interpreted with layout l and semantics s.
func NewMutableViewSemantics(data MutableData, l Layout, s Semantics) MutableView {
	return MutableView{viewCore: viewCore{layout: l, semantics: s}, data: data}
}

// WithSemantics returns a view of the same memory and layout with semantics s.
func (v *MutableView) WithSemantics(s Semantics) MutableView {
	w := *v
	w.semantics = s
	return w
}

// Data returns the view's data handle.
func (v *MutableView) Data() MutableData { return v.data }

// Bytes returns the buffer starting at the view's base address.
func (v *MutableView) Bytes() []byte { return v.data.b }

// Buffer implements [ImageBuffered].
func (v *MutableView) Buffer() []byte { return v.data.b }

// ReadAt implements [io.ReaderAt] over the underlying buffer.
func (v *MutableView) ReadAt(p []byte, off int64) (int, error) { return v.data.ReadAt(p, off) }

// IsEmpty reports whether the view has no memory or no pixels.
func (v *MutableView) IsEmpty() bool { return v.data.IsNil() || v.layout.IsEmpty() }

// IsValid is the negation of IsEmpty.
func (v *MutableView) IsValid() bool { return !v.IsEmpty() }

// Row returns the RowBytes data bytes of row y. The returned slice is capped so that
// appending to it cannot write into row padding.
func (v *MutableView) Row(y int) ([]byte, error) {
	start, end, err := v.rowRange(y, len(v.data.b))
	if err != nil {
		return nil, err
	}
	return v.data.b[start:end:end], nil
}

// Pixel returns the BytesPerPixel bytes of pixel (x, y).
func (v *MutableView) Pixel(x, y int) ([]byte, error) {
	start, end, err := v.pixelRange(x, y, len(v.data.b))
	if err != nil {
		return nil, err
	}
	return v.data.b[start:end:end], nil
}

// View returns v itself.
func (v *MutableView) View() *MutableView { return v }

// ConstView returns a read-only view sharing v's memory, layout and semantics.
func (v *MutableView) ConstView() ConstView {
	return ConstView{viewCore: v.viewCore, data: v.data.Const()}
}

// Clear resets the view to the empty state. No memory is released since none is owned.
func (v *MutableView) Clear() {
	*v = MutableView{}
}

// ConstView is a non-owning, read-only view of a 2D pixel grid stored in a byte buffer.
// It has no method returning writable memory.
type ConstView struct {
	viewCore
	data ConstData
}

// NewConstView returns a read-only view of data interpreted with layout l and unknown semantics.
func NewConstView(data ConstData, l Layout) ConstView {
	return ConstView{viewCore: viewCore{layout: l}, data: data}
}

// NewConstViewSemantics returns a read-only view of data interpreted with layout l and semantics s.
func NewConstViewSemantics(data ConstData, l Layout, s Semantics) ConstView {
	return ConstView{viewCore: viewCore{layout: l, semantics: s}, data: data}
}

// WithSemantics returns a view of the same memory and layout with semantics s.
func (v *ConstView) WithSemantics(s Semantics) ConstView {
	w := *v
	w.semantics = s
	return w
}

// Data returns the view's read-only data handle.
func (v *ConstView) Data() ConstData { return v.data }

// ReadAt implements [io.ReaderAt] over the underlying buffer.
func (v *ConstView) ReadAt(p []byte, off int64) (int, error) { return v.data.ReadAt(p, off) }

// IsEmpty reports whether the view has no memory or no pixels.
func (v *ConstView) IsEmpty() bool { return v.data.IsNil() || v.layout.IsEmpty() }

// IsValid is the negation of IsEmpty.
func (v *ConstView) IsValid() bool { return !v.IsEmpty() }

// Row returns the RowBytes data bytes of row y.
func (v *ConstView) Row(y int) (ConstData, error) {
	start, end, err := v.rowRange(y, len(v.data.b))
	if err != nil {
		return ConstData{}, err
	}
	return v.data.Slice(start, end), nil
}

// Pixel returns the BytesPerPixel bytes of pixel (x, y).
func (v *ConstView) Pixel(x, y int) (ConstData, error) {
	start, end, err := v.pixelRange(x, y, len(v.data.b))
	if err != nil {
		return ConstData{}, err
	}
	return v.data.Slice(start, end), nil
}

// View returns a copy of v sharing its memory.
func (v *ConstView) View() ConstView { return *v }

// Clear resets the view to the empty state.
func (v *ConstView) Clear() {
	*v = ConstView{}
}
