package pixview

import "testing"

func TestLayoutSizes(t *testing.T) {
	tests := []struct {
		name       string
		l          Layout
		bpp        int
		rowBytes   int
		total      int
		readable   int
		packed     bool
		empty      bool
		validation bool // true if Validate should fail.
	}{
		{"packed rgb8", NewLayout(4, 3, 3, 1), 3, 12, 36, 36, true, false, false},
		{"padded rgb8", NewLayoutStride(4, 3, 3, 1, 16), 3, 12, 48, 44, false, false, false},
		{"gray16", NewLayout(5, 2, 1, 2), 2, 10, 20, 20, true, false, false},
		{"rgba float", NewLayoutStride(2, 2, 4, 4, 64), 16, 32, 128, 96, false, false, false},
		{"zero", Layout{}, 0, 0, 0, 0, true, true, false},
		{"zero height", NewLayout(4, 0, 3, 1), 3, 12, 0, 0, true, true, false},
		{"negative width", NewLayoutStride(-1, 2, 1, 1, 0), 1, -1, 0, 0, false, true, true},
		{"short stride", NewLayoutStride(4, 2, 3, 1, 8), 3, 12, 16, 20, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.l.BytesPerPixel(); got != tt.bpp {
				t.Errorf("BytesPerPixel = %d, want %d", got, tt.bpp)
			}
			if got := tt.l.RowBytes(); got != tt.rowBytes {
				t.Errorf("RowBytes = %d, want %d", got, tt.rowBytes)
			}
			if got := tt.l.TotalBytes(); got != tt.total {
				t.Errorf("TotalBytes = %d, want %d", got, tt.total)
			}
			if got := tt.l.ReadableBytes(); got != tt.readable {
				t.Errorf("ReadableBytes = %d, want %d", got, tt.readable)
			}
			if got := tt.l.IsPacked(); got != tt.packed {
				t.Errorf("IsPacked = %v, want %v", got, tt.packed)
			}
			if got := tt.l.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty = %v, want %v", got, tt.empty)
			}
			if err := tt.l.Validate(); (err != nil) != tt.validation {
				t.Errorf("Validate = %v, want failure %v", err, tt.validation)
			}
		})
	}
}

func TestLayoutEqual(t *testing.T) {
	a := NewLayout(4, 3, 3, 1)
	if !a.Equal(NewLayoutStride(4, 3, 3, 1, 12)) {
		t.Error("packed layout not equal to explicit stride layout")
	}
	for _, b := range []Layout{
		NewLayout(5, 3, 3, 1),
		NewLayout(4, 2, 3, 1),
		NewLayout(4, 3, 4, 1),
		NewLayout(4, 3, 3, 2),
		NewLayoutStride(4, 3, 3, 1, 16),
	} {
		if a.Equal(b) {
			t.Errorf("%v equal to %v", a, b)
		}
	}
}

func TestLayoutAlignedStride(t *testing.T) {
	l := NewLayout(7, 1, 3, 1) // 21 bytes per row.
	for _, tt := range []struct {
		align int
		want  Stride
	}{
		{0, 21}, {1, 21}, {4, 24}, {16, 32}, {21, 21}, {64, 64},
	} {
		if got := l.AlignedStride(tt.align); got != tt.want {
			t.Errorf("AlignedStride(%d) = %d, want %d", tt.align, got, tt.want)
		}
	}
}

func TestSemantics(t *testing.T) {
	var zero Semantics
	if zero.PixelFormat != PixelFormatUnknown || zero.SampleFormat != SampleFormatUnknown {
		t.Errorf("zero semantics = %+v, want unknown", zero)
	}
	s := NewSemantics(PixelFormatBGRA, SampleFormatUnsignedInteger)
	if !s.Equal(NewSemantics(PixelFormatBGRA, SampleFormatUnsignedInteger)) {
		t.Error("identical semantics not equal")
	}
	if s.Equal(NewSemantics(PixelFormatRGBA, SampleFormatUnsignedInteger)) {
		t.Error("semantics with different pixel format equal")
	}
	if s.Equal(NewSemantics(PixelFormatBGRA, SampleFormatFloatingPoint)) {
		t.Error("semantics with different sample format equal")
	}
	for pf := PixelFormatY; pf < pixelFormatCount; pf++ {
		if pf.Channels() == 0 {
			t.Errorf("%v reports zero channels", pf)
		}
	}
	if PixelFormat(200).String() != "unknown" {
		t.Errorf("out of range pixel format String = %q", PixelFormat(200).String())
	}
}
