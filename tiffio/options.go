package tiffio

import (
	"golang.org/x/image/tiff"

	"github.com/soypat/pixview/msglog"
)

// Option configures a Decode or Encode call.
type Option func(*config)

type config struct {
	rowAlign    int
	out         *msglog.MessageLog
	compression tiff.CompressionType
	predictor   bool

	// call holds the messages reported by the current call.
	call msglog.MessageLog
}

func newConfig(opts []Option) *config {
	cfg := &config{compression: tiff.Uncompressed}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithRowAlignment makes Decode pad every row to a multiple of n bytes.
// Values of 1 or less produce packed rows.
func WithRowAlignment(n int) Option {
	return func(c *config) { c.rowAlign = n }
}

// WithMessageLog appends the warnings and errors reported during the call to l,
// in addition to the global log.
func WithMessageLog(l *msglog.MessageLog) Option {
	return func(c *config) { c.out = l }
}

// WithCompression selects the compression used by Encode.
// The codec supports [tiff.Uncompressed] and [tiff.Deflate].
func WithCompression(ct tiff.CompressionType) Option {
	return func(c *config) { c.compression = ct }
}

// WithPredictor enables horizontal differencing for compressed Encode output.
func WithPredictor(enabled bool) Option {
	return func(c *config) { c.predictor = enabled }
}

func (c *config) warnf(module, format string, args ...any) {
	warningHook(module, format, args...)
	c.call.Add(formatMessage(module, format, args...), msglog.Warning)
}

func (c *config) errorf(module, format string, args ...any) {
	errorHook(module, format, args...)
	c.call.Add(formatMessage(module, format, args...), msglog.Error)
}

// flush hands the call's messages to the caller supplied log, if any.
func (c *config) flush() {
	if c.out != nil {
		c.out.Append(c.call)
	}
}
