package zlob

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// WrappedError carries a message, the Status code it corresponds to, an
// optional cause, and the call site that produced it. Status lets a CLI or
// library caller recover *why* a Glob/FilterPaths call aborted (not just
// that it did) without parsing the message text.
type WrappedError struct {
	Msg      string
	Status   Status
	err      error
	location string
}

func (w *WrappedError) Error() string {
	return w.internalError("Error", "")
}

func (w *WrappedError) Unwrap() error {
	return w.err
}

// Location is the "file:line" call site that constructed this error, for
// callers (like cmd/pathglob) that want to report it outside of Error()'s
// full cause-chain text.
func (w *WrappedError) Location() string {
	return w.location
}

func (w *WrappedError) Is(target error) bool {
	return errors.Is(w.err, target)
}

func (w *WrappedError) internalError(prefix string, indent string) string {
	var sb strings.Builder
	sb.WriteString(indent)
	sb.WriteString(prefix)
	sb.WriteString(" [")
	sb.WriteString(w.Status.String())
	sb.WriteString("] at ")
	sb.WriteString(w.location)
	sb.WriteString(": ")
	sb.WriteString(w.Msg)
	if wrapped, ok := w.err.(*WrappedError); ok { //nolint:errorlint
		indent += "  "
		sb.WriteString(wrapped.internalError("\n"+indent+"Cause", indent))
	} else if w.err != nil {
		sb.WriteString("\n" + indent + "Cause: ")
		sb.WriteString(w.err.Error())
	}
	return sb.String()
}

// WrapErrorf wraps err with a formatted message under StatusAborted,
// recording the caller's location. Its callers in this module are the
// home/user lookups in home.go (whose errors expandTilde discards, leaving
// the tilde literal) and the CLI's file-read failures.
func WrapErrorf(err error, msg string, msgArgs ...any) *WrappedError {
	return internalWrapErrorf(StatusAborted, err, msg, msgArgs...)
}

// Errorf builds a new WrappedError with no cause under StatusAborted,
// recording the caller's location.
func Errorf(msg string, msgArgs ...any) *WrappedError {
	return internalWrapErrorf(StatusAborted, nil, msg, msgArgs...)
}

// WrapStatusErrorf is WrapErrorf with an explicit Status, for call sites
// that need to report something other than StatusAborted (spec.md §6's
// gl_errno/Status codes).
func WrapStatusErrorf(status Status, err error, msg string, msgArgs ...any) *WrappedError {
	return internalWrapErrorf(status, err, msg, msgArgs...)
}

func internalWrapErrorf(status Status, err error, msg string, msgArgs ...any) *WrappedError {
	return &WrappedError{
		Msg:      fmt.Sprintf(msg, msgArgs...),
		Status:   status,
		err:      err,
		location: location(3),
	}
}

func location(skip int) string {
	pc := make([]uintptr, skip+1)
	runtime.Callers(skip+1, pc)
	frames := runtime.CallersFrames(pc)
	frame, ok := frames.Next()
	if ok {
		return fmt.Sprintf("%s:%d", frame.File, frame.Line)
	}
	return ""
}
