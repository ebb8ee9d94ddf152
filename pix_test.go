package pixview

import (
	"bytes"
	"errors"
	"image"
	"io"
	"testing"
)

// readerOnly hides the Buffer method so ReadRow must fall back to ReadAt.
type readerOnly struct {
	l Layout
	r io.ReaderAt
}

func (r readerOnly) Layout() Layout                          { return r.l }
func (r readerOnly) ReadAt(p []byte, off int64) (int, error) { return r.r.ReadAt(p, off) }

func TestReadRow(t *testing.T) {
	l := NewLayoutStride(3, 2, 2, 1, 8)
	v := newTestView(l)
	cv := v.ConstView()
	images := map[string]Image{
		"buffered": &v,
		"const":    &cv,
		"reader":   readerOnly{l: l, r: bytes.NewReader(v.Bytes())},
	}
	for name, img := range images {
		t.Run(name, func(t *testing.T) {
			dst := make([]byte, l.RowBytes())
			row, err := ReadRow(dst, img, 1)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(row, []byte{8, 9, 10, 11, 12, 13}) {
				t.Errorf("row 1 = %v", row)
			}
			if _, err := ReadRow(dst, img, 2); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("ReadRow past end error = %v", err)
			}
			if _, err := ReadRow(dst[:2], img, 0); !errors.Is(err, io.ErrShortBuffer) {
				t.Errorf("ReadRow short dst error = %v", err)
			}
		})
	}
}

func TestValidateProcessArgs(t *testing.T) {
	l := NewLayout(4, 4, 1, 1)
	v := newTestView(l)
	cv := v.ConstView()
	roi := image.Rect(1, 1, 3, 3)
	bigROI := image.Rect(0, 0, 5, 4)
	var emptyView MutableView

	tests := []struct {
		name    string
		dst     []byte
		dstL    Layout
		src     Image
		roi     *image.Rectangle
		wantErr bool
	}{
		{"copy", make([]byte, 16), l, &v, nil, false},
		{"in-place", nil, l, &v, nil, false},
		{"roi", make([]byte, 4), NewLayout(2, 2, 1, 1), &v, &roi, false},
		{"empty src", make([]byte, 16), l, &emptyView, nil, true},
		{"in-place roi", nil, l, &v, &roi, true},
		{"in-place const", nil, l, &cv, nil, true},
		{"in-place pixel size", nil, NewLayout(4, 4, 3, 1), &v, nil, true},
		{"roi bounds", make([]byte, 20), l, &v, &bigROI, true},
		{"short dst", make([]byte, 15), l, &v, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, srcLayout, err := ValidateProcessArgs(tt.dst, tt.dstL, tt.src, tt.roi)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if srcLayout != tt.src.Layout() {
				t.Errorf("srcLayout = %v, want %v", srcLayout, tt.src.Layout())
			}
			if err == nil && tt.dst == nil && &dst[0] != &v.Bytes()[0] {
				t.Error("in-place did not select the source buffer")
			}
		})
	}
}
