// Package report collects the messages raised while encoding an export.
//
// A Reporter is created per export call and threaded through every encoder.
// Messages are prefixed with the active context chain pushed by the caller.
package report

import (
	"errors"
	"fmt"
	"strings"
)

// Severity classifies a reported message.
type Severity int

const (
	// Info is a progress or summary message.
	Info Severity = iota
	// Warning is surfaced to the user but does not fail the export.
	Warning
	// Error is recorded and fails the export; encoding continues.
	Error
	// Fatal aborts the export.
	Fatal
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Entry is a single reported message.
type Entry struct {
	Severity Severity
	// User marks errors caused by user-controlled scene data rather than
	// exporter limits.
	User    bool
	Message string
}

// String formats the entry as "SEVERITY: message".
func (e Entry) String() string {
	return e.Severity.String() + ": " + e.Message
}

// FatalError is returned by Reporter.Fatal and aborts the export call.
type FatalError struct {
	Message string
	Err     error
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *FatalError) Unwrap() error { return e.Err }

// IsFatal reports whether err is, or wraps, a *FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// Reporter accumulates entries and a stack of context frames.
type Reporter struct {
	frames  []string
	entries []Entry
	failed  bool
}

// New returns an empty Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Push adds a context frame. Every later message is prefixed with it until Pop.
func (r *Reporter) Push(format string, args ...any) {
	r.frames = append(r.frames, fmt.Sprintf(format, args...))
}

// Pop removes the innermost context frame.
func (r *Reporter) Pop() {
	if len(r.frames) > 0 {
		r.frames = r.frames[:len(r.frames)-1]
	}
}

// InContext runs fn with an extra context frame and pops it afterwards.
func (r *Reporter) InContext(fn func() error, format string, args ...any) error {
	r.Push(format, args...)
	defer r.Pop()
	return fn()
}

// Context returns the active context chain joined by ": ".
func (r *Reporter) Context() string {
	return strings.Join(r.frames, ": ")
}

// Info records a progress or summary message.
func (r *Reporter) Info(format string, args ...any) {
	r.add(Info, false, format, args...)
}

// Warning records a message that does not affect the outcome.
func (r *Reporter) Warning(format string, args ...any) {
	r.add(Warning, false, format, args...)
}

// Error records a recoverable error. The export continues but fails.
func (r *Reporter) Error(format string, args ...any) {
	r.add(Error, false, format, args...)
}

// UserError records a recoverable error caused by the scene data.
func (r *Reporter) UserError(format string, args ...any) {
	r.add(Error, true, format, args...)
}

// Fatal records a fatal message and returns the error that must abort the export.
func (r *Reporter) Fatal(format string, args ...any) error {
	msg := r.add(Fatal, false, format, args...)
	return &FatalError{Message: msg}
}

// Abort records err as fatal unless it already went through Fatal, and returns
// it as a *FatalError.
func (r *Reporter) Abort(err error) error {
	if err == nil {
		return nil
	}
	if IsFatal(err) {
		return err
	}
	msg := r.add(Fatal, false, "%v", err)
	return &FatalError{Message: msg, Err: err}
}

// Failed reports whether an error or fatal entry was recorded.
func (r *Reporter) Failed() bool {
	return r.failed
}

// Entries returns a copy of all recorded entries in order.
func (r *Reporter) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of entries with the given severity.
func (r *Reporter) Count(s Severity) int {
	n := 0
	for _, e := range r.entries {
		if e.Severity == s {
			n++
		}
	}
	return n
}

func (r *Reporter) add(s Severity, user bool, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if ctx := r.Context(); ctx != "" {
		msg = ctx + ": " + msg
	}
	r.entries = append(r.entries, Entry{Severity: s, User: user, Message: msg})
	if s >= Error {
		r.failed = true
	}
	return msg
}
