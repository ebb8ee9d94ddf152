package pixview

import (
	"io"
	"iter"
	"unsafe"
)

// Typed access reinterprets the bytes of a view as a caller-chosen type T.
// The view's format is runtime data; these functions are the bridge from it to a
// compile-time pixel type. T must be plain data without pointers, and the caller asserts
// that the view's semantics match T. On targets that fault on unaligned loads the buffer
// and stride must also be aligned for T.
//
// The checked variants verify that the size of T fits the layout and return
// [ErrSizeMismatch] otherwise. The Unsafe variants skip that check.

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// castBytes reinterprets b as n values of T. b must hold at least n*sizeof(T) bytes.
func castBytes[T any](b []byte, n int) []T {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// typedCount returns how many values of T fill byteCount bytes exactly.
func typedCount[T any](byteCount int) (int, error) {
	size := sizeOf[T]()
	if size == 0 || byteCount%size != 0 {
		return 0, ErrSizeMismatch
	}
	return byteCount / size, nil
}

// typedDataCount returns the number of T values needed to address all pixels of l.
// Stride and row size must both be multiples of sizeof(T) so that pixel (x, y) sits at
// index y*StrideBytes/sizeof(T) + x*BytesPerPixel/sizeof(T).
func typedDataCount[T any](l Layout, bufLen int) (int, error) {
	size := sizeOf[T]()
	if size == 0 || int(l.StrideBytes)%size != 0 || l.RowBytes()%size != 0 {
		return 0, ErrSizeMismatch
	}
	if !l.addressable() {
		return 0, ErrOutOfRange
	}
	n := l.ReadableBytes()
	if n > bufLen {
		return 0, io.ErrShortBuffer
	}
	return n / size, nil
}

// TypedData returns the whole buffer of v as a slice of T, from the first pixel to the
// last pixel of the last row.
func TypedData[T any](v *MutableView) ([]T, error) {
	n, err := typedDataCount[T](v.layout, len(v.data.b))
	if err != nil {
		return nil, err
	}
	return castBytes[T](v.data.b, n), nil
}

// TypedRow returns row y of v as a slice of T. T may be the pixel type, in which case the
// slice has Width elements, or a channel type, giving Width*Channels elements.
func TypedRow[T any](v *MutableView, y int) ([]T, error) {
	row, err := v.Row(y)
	if err != nil {
		return nil, err
	}
	n, err := typedCount[T](len(row))
	if err != nil {
		return nil, err
	}
	return castBytes[T](row, n), nil
}

// TypedPixel returns a pointer to pixel (x, y) of v as a T. The size of T must equal the
// view's BytesPerPixel.
func TypedPixel[T any](v *MutableView, x, y int) (*T, error) {
	if sizeOf[T]() != v.layout.BytesPerPixel() {
		return nil, ErrSizeMismatch
	}
	px, err := v.Pixel(x, y)
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(px))), nil
}

// UnsafeTypedPixel returns a pointer to pixel (x, y) of v without checking coordinates
// against the layout or the size of T against BytesPerPixel. The caller must have
// verified both. Only the first byte of the pixel is bounds checked; the sizeof(T)
// bytes it points to may extend past the buffer.
func UnsafeTypedPixel[T any](v *MutableView, x, y int) *T {
	off := int(v.layout.StrideBytes)*y + v.layout.BytesPerPixel()*x
	return (*T)(unsafe.Pointer(&v.data.b[off]))
}

// UnsafeTypedRow returns Width values of T starting at row y without checking the row
// index or the size of T. The caller asserts sizeof(T) == BytesPerPixel. Only the first
// byte of the row is bounds checked; the extent of the returned slice is not.
func UnsafeTypedRow[T any](v *MutableView, y int) []T {
	off := int(v.layout.StrideBytes) * y
	return unsafe.Slice((*T)(unsafe.Pointer(&v.data.b[off])), int(v.layout.Width))
}

// ConstSlice is a read-only sequence of T values backed by view memory.
type ConstSlice[T any] struct {
	s []T
}

// Len returns the number of elements.
func (cs ConstSlice[T]) Len() int { return len(cs.s) }

// At returns a copy of element i.
func (cs ConstSlice[T]) At(i int) T { return cs.s[i] }

// CopyTo copies elements into dst and returns the number copied.
func (cs ConstSlice[T]) CopyTo(dst []T) int { return copy(dst, cs.s) }

// All returns an iterator over index and element copies.
func (cs ConstSlice[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range cs.s {
			if !yield(i, e) {
				return
			}
		}
	}
}

// ConstTypedData is the read-only counterpart of [TypedData].
func ConstTypedData[T any](v *ConstView) (ConstSlice[T], error) {
	n, err := typedDataCount[T](v.layout, len(v.data.b))
	if err != nil {
		return ConstSlice[T]{}, err
	}
	return ConstSlice[T]{s: castBytes[T](v.data.b, n)}, nil
}

// ConstTypedRow is the read-only counterpart of [TypedRow].
func ConstTypedRow[T any](v *ConstView, y int) (ConstSlice[T], error) {
	row, err := v.Row(y)
	if err != nil {
		return ConstSlice[T]{}, err
	}
	n, err := typedCount[T](row.Len())
	if err != nil {
		return ConstSlice[T]{}, err
	}
	return ConstSlice[T]{s: castBytes[T](row.b, n)}, nil
}

// ConstTypedPixel returns a copy of pixel (x, y) of v as a T.
func ConstTypedPixel[T any](v *ConstView, x, y int) (T, error) {
	var zero T
	if sizeOf[T]() != v.layout.BytesPerPixel() {
		return zero, ErrSizeMismatch
	}
	px, err := v.Pixel(x, y)
	if err != nil {
		return zero, err
	}
	return *(*T)(unsafe.Pointer(unsafe.SliceData(px.b))), nil
}

// UnsafeConstTypedPixel is the read-only counterpart of [UnsafeTypedPixel], with the
// same unchecked extent.
func UnsafeConstTypedPixel[T any](v *ConstView, x, y int) T {
	off := int(v.layout.StrideBytes)*y + v.layout.BytesPerPixel()*x
	return *(*T)(unsafe.Pointer(&v.data.b[off]))
}
