package tiffio

import (
	"fmt"
	"sync"

	"github.com/soypat/pixview"
	"github.com/soypat/pixview/msglog"
)

// The codec reports diagnostics through one process-wide pair of hooks, so messages can
// not be scoped to a single Decode or Encode call. Every message therefore lands in a
// global log guarded by a mutex, since the hooks run on whichever goroutine is coding.

type hookFunc func(module, format string, args ...any)

var (
	handlersOnce sync.Once
	warningHook  hookFunc
	errorHook    hookFunc

	logMu     sync.Mutex
	globalLog msglog.MessageLog
)

// setHandlers installs the global hooks. It is safe to call any number of times from
// any goroutine; only the first call has effect.
func setHandlers() {
	handlersOnce.Do(func() {
		warningHook = warningHandler
		errorHook = errorHandler
	})
}

func warningHandler(module, format string, args ...any) {
	text := formatMessage(module, format, args...)
	pixview.Logger().Warn(text)
	logMu.Lock()
	globalLog.Add(text, msglog.Warning)
	logMu.Unlock()
}

func errorHandler(module, format string, args ...any) {
	text := formatMessage(module, format, args...)
	pixview.Logger().Error(text)
	logMu.Lock()
	globalLog.Add(text, msglog.Error)
	logMu.Unlock()
}

func formatMessage(module, format string, args ...any) string {
	return "TIFF: [" + module + "] " + fmt.Sprintf(format, args...)
}

// GlobalMessageLog returns a snapshot of every warning and error reported while reading
// or writing TIFF images since the last [ClearGlobalMessageLog]. Warnings have type
// [msglog.Warning] and errors [msglog.Error]. The log is shared by all goroutines;
// it may help explain a failed Decode or Encode.
func GlobalMessageLog() msglog.MessageLog {
	logMu.Lock()
	defer logMu.Unlock()
	return globalLog.Clone()
}

// ClearGlobalMessageLog removes all messages from the global log.
func ClearGlobalMessageLog() {
	logMu.Lock()
	globalLog.Clear()
	logMu.Unlock()
}
