// Command pixinspect decodes TIFF files into pixel views, reports their layout and
// codec diagnostics, and runs per-pixel filters over them.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/zeebo/blake3"
	"golang.org/x/image/tiff"

	"github.com/soypat/pixview"
	"github.com/soypat/pixview/filters"
	"github.com/soypat/pixview/msglog"
	"github.com/soypat/pixview/tiffio"
)

// CLI defines the command-line interface for pixinspect.
type CLI struct {
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Minimum level of log records written to stderr"`

	Info   InfoCmd   `cmd:"" help:"Print layout, semantics and diagnostics of a TIFF file"`
	Filter FilterCmd `cmd:"" help:"Apply a per-pixel filter to a TIFF file and write the result"`
}

// InfoCmd reports the view a TIFF file decodes to.
type InfoCmd struct {
	Path  string `arg:"" help:"TIFF file to inspect" type:"existingfile"`
	Align int    `help:"Row alignment in bytes of the decoded view" default:"0"`
	Rows  int    `help:"Print the leading bytes of this many rows" default:"0"`
}

func (c *InfoCmd) Run(ctx *kong.Context) error {
	var diag msglog.MessageLog
	v, err := decodeFile(c.Path, tiffio.WithRowAlignment(c.Align), tiffio.WithMessageLog(&diag))
	w := ctx.Stdout
	if err != nil {
		printMessages(w, &diag)
		return err
	}
	l := v.Layout()
	fmt.Fprintf(w, "file:      %s\n", c.Path)
	fmt.Fprintf(w, "size:      %dx%d (%s pixels)\n", l.Width, l.Height, humanize.Comma(int64(l.Width)*int64(l.Height)))
	fmt.Fprintf(w, "channels:  %d x %d byte\n", l.Channels, l.BytesPerChannel)
	packing := "packed"
	if !l.IsPacked() {
		packing = fmt.Sprintf("padded %d", int(l.StrideBytes)-l.RowBytes())
	}
	fmt.Fprintf(w, "stride:    %d bytes (%s)\n", l.StrideBytes, packing)
	fmt.Fprintf(w, "total:     %s\n", humanize.IBytes(uint64(l.TotalBytes())))
	fmt.Fprintf(w, "format:    %s %s\n", v.PixelFormat(), v.SampleFormat())
	cv := v.ConstView()
	fmt.Fprintf(w, "blake3:    %s\n", pixelDigest(&cv))

	const maxRowBytes = 16
	for y, row := range v.Rows() {
		if y >= c.Rows {
			break
		}
		fmt.Fprintf(w, "row %-4d   % x\n", y, row[:min(len(row), maxRowBytes)])
	}
	printMessages(w, &diag)
	return nil
}

// pixelDigest hashes the data bytes of every row of v. Row padding is skipped so the
// digest does not depend on the stride.
func pixelDigest(v *pixview.ConstView) string {
	h := blake3.New()
	buf := make([]byte, v.RowBytes())
	for _, row := range v.Rows() {
		n := row.CopyTo(buf)
		h.Write(buf[:n])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// FilterCmd runs one of the filters package's point filters.
type FilterCmd struct {
	Path        string    `arg:"" help:"Input TIFF file" type:"existingfile"`
	Kind        string    `arg:"" enum:"invert,grayscale,curves" help:"Filter to apply: invert, grayscale or curves"`
	Out         string    `required:"" short:"o" help:"Output TIFF path" type:"path"`
	Mode        string    `enum:"luminance,average,lightness" default:"luminance" help:"Grayscale conversion mode"`
	Points      []float32 `help:"Curve control points as comma separated x,y pairs in 0-1 range"`
	Strength    float32   `default:"1" help:"Curve strength from 0 (unchanged) to 1 (full curve)"`
	Compression string    `enum:"none,deflate" default:"none" help:"Output compression"`
	Predictor   bool      `help:"Use horizontal differencing when compressing"`
}

func (c *FilterCmd) Run(ctx *kong.Context) error {
	var diag msglog.MessageLog
	defer printMessages(ctx.Stdout, &diag)
	src, err := decodeFile(c.Path, tiffio.WithMessageLog(&diag))
	if err != nil {
		return err
	}
	var pipeline []pixview.Filter
	switch c.Kind {
	case "invert":
		pipeline = append(pipeline, filters.NewInvertedPerPixel())
	case "grayscale":
		mode, err := grayscaleMode(c.Mode)
		if err != nil {
			return err
		}
		if src.PixelFormat() == pixview.PixelFormatRGBA {
			pipeline = append(pipeline, filters.NewStripAlpha())
		}
		pipeline = append(pipeline, filters.NewGrayscalePerPixel(mode))
	case "curves":
		pts, err := curvePoints(c.Points)
		if err != nil {
			return err
		}
		f, err := filters.NewCurves(pts)
		if err != nil {
			return err
		}
		if err := f.Controls()[1].ChangeValue(c.Strength); err != nil {
			return fmt.Errorf("curve strength: %w", err)
		}
		pipeline = append(pipeline, f)
	}

	img := src
	for _, f := range pipeline {
		img, err = apply(f, &img)
		if err != nil {
			return fmt.Errorf("%s filter: %w", c.Kind, err)
		}
	}

	out, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	opts := []tiffio.Option{tiffio.WithMessageLog(&diag), tiffio.WithPredictor(c.Predictor)}
	if c.Compression == "deflate" {
		opts = append(opts, tiffio.WithCompression(tiff.Deflate))
	}
	cv := img.ConstView()
	err = tiffio.Encode(out, &cv, opts...)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout, "wrote %s: %v %s (%s)\n", c.Out, img.Layout(), img.PixelFormat(), humanize.IBytes(uint64(img.TotalBytes())))
	return nil
}

// apply runs f over src into a new packed buffer.
func apply(f pixview.Filter, src *pixview.MutableView) (pixview.MutableView, error) {
	outFormat, _ := f.ShapeIO()
	dst := make([]byte, int(src.Width())*int(src.Height())*int(outFormat.Channels()))
	l, err := f.Process(dst, src, nil)
	if err != nil {
		return pixview.MutableView{}, err
	}
	return pixview.NewMutableViewSemantics(pixview.Mutable(dst), l,
		pixview.NewSemantics(outFormat, pixview.SampleFormatUnsignedInteger)), nil
}

func grayscaleMode(s string) (filters.GrayscaleMode, error) {
	for _, m := range []filters.GrayscaleMode{filters.GrayscaleLuminance, filters.GrayscaleAverage, filters.GrayscaleLightness} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown grayscale mode %q", s)
}

func curvePoints(coords []float32) ([]pixview.CurvePoint, error) {
	if len(coords)%2 != 0 {
		return nil, errors.New("curve points must be given as x,y pairs")
	}
	pts := make([]pixview.CurvePoint, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		pts = append(pts, pixview.CurvePoint{X: coords[i], Y: coords[i+1]})
	}
	return pts, nil
}

func decodeFile(path string, opts ...tiffio.Option) (pixview.MutableView, error) {
	f, err := os.Open(path)
	if err != nil {
		return pixview.MutableView{}, err
	}
	defer f.Close()
	return tiffio.Decode(f, opts...)
}

func printMessages(w io.Writer, diag *msglog.MessageLog) {
	if diag.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "messages:  %d\n", diag.Len())
	for _, m := range diag.Messages() {
		fmt.Fprintf(w, "  %s\n", m)
	}
}

// run parses args, configures logging and executes the selected command.
func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("pixinspect"),
		kong.Description("Inspect and filter TIFF images through strided pixel views"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		return err
	}
	pixview.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer pixview.SetLogger(nil)
	return ctx.Run(ctx)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "pixinspect:", err)
		os.Exit(1)
	}
}
