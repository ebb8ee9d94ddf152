package pixview

import "iter"

// RowCursor is a position over the rows of a [MutableView], keyed by the element type T
// used for typed row access. It borrows the view and never copies it.
//
// A cursor ranges over [0, Height]; Height is the end sentinel, at which Bytes and Pixels
// return nil. Advancing adds exactly one stride to the cursor's byte offset.
type RowCursor[T any] struct {
	v   *MutableView
	y   int
	off int
}

// NewRowCursor returns a cursor positioned at row 0 of v.
func NewRowCursor[T any](v *MutableView) RowCursor[T] {
	return RowCursor[T]{v: v}
}

// EndRowCursor returns the end sentinel cursor of v.
func EndRowCursor[T any](v *MutableView) RowCursor[T] {
	c := RowCursor[T]{v: v}
	c.seekEnd()
	return c
}

// Y returns the row index of the cursor.
func (c *RowCursor[T]) Y() int { return c.y }

// Done reports whether the cursor is at the end sentinel.
func (c *RowCursor[T]) Done() bool { return c.y >= int(c.v.layout.Height) }

// Next advances the cursor by one row. It is a no-op at the end sentinel.
func (c *RowCursor[T]) Next() {
	if c.Done() {
		return
	}
	c.y++
	c.off += int(c.v.layout.StrideBytes)
}

// Seek positions the cursor at row y, which must be within [0, Height].
func (c *RowCursor[T]) Seek(y int) error {
	if y < 0 || y > int(c.v.layout.Height) {
		return ErrOutOfRange
	}
	c.y = y
	c.off = y * int(c.v.layout.StrideBytes)
	return nil
}

// Reset positions the cursor at row 0 so iteration can restart.
func (c *RowCursor[T]) Reset() {
	c.y, c.off = 0, 0
}

// Bytes returns the data bytes of the current row, or nil at the end sentinel,
// when the buffer does not hold the row, or for layouts with negative fields.
func (c *RowCursor[T]) Bytes() []byte {
	if c.Done() {
		return nil
	}
	end := c.off + c.v.layout.RowBytes()
	if !c.v.layout.addressable() || c.off < 0 || end > len(c.v.data.b) {
		return nil
	}
	return c.v.data.b[c.off:end:end]
}

// Pixels returns the current row as values of T, or nil where Bytes would.
// The row size must be a multiple of sizeof(T); trailing bytes are otherwise dropped.
func (c *RowCursor[T]) Pixels() []T {
	row := c.Bytes()
	size := sizeOf[T]()
	if row == nil || size == 0 {
		return nil
	}
	return castBytes[T](row, len(row)/size)
}

// Equal reports whether both cursors refer to the same view and row.
func (c *RowCursor[T]) Equal(other *RowCursor[T]) bool {
	return c.v == other.v && c.y == other.y
}

func (c *RowCursor[T]) seekEnd() {
	h := max(int(c.v.layout.Height), 0)
	c.y = h
	c.off = h * int(c.v.layout.StrideBytes)
}

// ConstRowCursor is the read-only counterpart of [RowCursor], created from a [ConstView].
type ConstRowCursor[T any] struct {
	v   *ConstView
	y   int
	off int
}

// NewConstRowCursor returns a cursor positioned at row 0 of v.
func NewConstRowCursor[T any](v *ConstView) ConstRowCursor[T] {
	return ConstRowCursor[T]{v: v}
}

// EndConstRowCursor returns the end sentinel cursor of v.
func EndConstRowCursor[T any](v *ConstView) ConstRowCursor[T] {
	h := max(int(v.layout.Height), 0)
	return ConstRowCursor[T]{v: v, y: h, off: h * int(v.layout.StrideBytes)}
}

// Y returns the row index of the cursor.
func (c *ConstRowCursor[T]) Y() int { return c.y }

// Done reports whether the cursor is at the end sentinel.
func (c *ConstRowCursor[T]) Done() bool { return c.y >= int(c.v.layout.Height) }

// Next advances the cursor by one row. It is a no-op at the end sentinel.
func (c *ConstRowCursor[T]) Next() {
	if c.Done() {
		return
	}
	c.y++
	c.off += int(c.v.layout.StrideBytes)
}

// Seek positions the cursor at row y, which must be within [0, Height].
func (c *ConstRowCursor[T]) Seek(y int) error {
	if y < 0 || y > int(c.v.layout.Height) {
		return ErrOutOfRange
	}
	c.y = y
	c.off = y * int(c.v.layout.StrideBytes)
	return nil
}

// Reset positions the cursor at row 0.
func (c *ConstRowCursor[T]) Reset() {
	c.y, c.off = 0, 0
}

// Bytes returns the current row, or an empty handle at the end sentinel.
func (c *ConstRowCursor[T]) Bytes() ConstData {
	if c.Done() {
		return ConstData{}
	}
	end := c.off + c.v.layout.RowBytes()
	if !c.v.layout.addressable() || c.off < 0 || end > len(c.v.data.b) {
		return ConstData{}
	}
	return c.v.data.Slice(c.off, end)
}

// Pixels returns the current row as read-only values of T.
func (c *ConstRowCursor[T]) Pixels() ConstSlice[T] {
	row := c.Bytes()
	size := sizeOf[T]()
	if row.IsNil() || size == 0 {
		return ConstSlice[T]{}
	}
	return ConstSlice[T]{s: castBytes[T](row.b, row.Len()/size)}
}

// Equal reports whether both cursors refer to the same view and row.
func (c *ConstRowCursor[T]) Equal(other *ConstRowCursor[T]) bool {
	return c.v == other.v && c.y == other.y
}

// Rows returns a sequence over the data bytes of every row. Each call starts at row 0.
func (v *MutableView) Rows() iter.Seq2[int, []byte] {
	return TypedRows[byte](v)
}

// Rows returns a sequence over the data bytes of every row. Each call starts at row 0.
func (v *ConstView) Rows() iter.Seq2[int, ConstData] {
	return func(yield func(int, ConstData) bool) {
		for c := NewConstRowCursor[byte](v); !c.Done(); c.Next() {
			if !yield(c.Y(), c.Bytes()) {
				return
			}
		}
	}
}

// TypedRows returns a sequence over every row of v as values of T.
func TypedRows[T any](v *MutableView) iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for c := NewRowCursor[T](v); !c.Done(); c.Next() {
			if !yield(c.Y(), c.Pixels()) {
				return
			}
		}
	}
}

// ConstTypedRows returns a sequence over every row of v as read-only values of T.
func ConstTypedRows[T any](v *ConstView) iter.Seq2[int, ConstSlice[T]] {
	return func(yield func(int, ConstSlice[T]) bool) {
		for c := NewConstRowCursor[T](v); !c.Done(); c.Next() {
			if !yield(c.Y(), c.Pixels()) {
				return
			}
		}
	}
}
