// Package errors provides error handling and the warning system for tsgo.
// It defines the typed errors and warnings raised by the datatype conversion
// subsystem and wraps github.com/cockroachdb/errors for stack traces.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("tsgo-Warning: %v\n", w)
	}
	// zerolog warn hook, set lazily to avoid a circular import with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the warning handler for the whole library.
// Use this to control how non-fatal conditions such as
// MalformedUniverseWarning are reported.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop all warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warn function.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn raises a warning. When a zerolog hook is installed it takes
// precedence over the plain handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// DataConversionWarning is raised when a conversion changes the concrete
// representation of data in a content-affecting way, for example coercing a
// nullable column to a plain float column with NaN for missing entries.
type DataConversionWarning struct {
	FromType string
	ToType   string
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("data converted from %s to %s. Reason: %s", w.FromType, w.ToType, w.Reason)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("reason", w.Reason).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning creates a new DataConversionWarning.
func NewDataConversionWarning(from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{FromType: from, ToType: to, Reason: reason}
}

// MalformedUniverseWarning is raised by the closure builder when a declared
// machine type has no registered route to or from the hub representation,
// typically because its backing library was not enabled. The type stays
// unreachable; nothing else is affected.
type MalformedUniverseWarning struct {
	MType   string
	SciType string
	Hub     string
}

func (w *MalformedUniverseWarning) Error() string {
	return fmt.Sprintf("mtype %q (scitype %q) has no conversion to or from hub %q; pairs involving it stay unreachable",
		w.MType, w.SciType, w.Hub)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *MalformedUniverseWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("mtype", w.MType).
		Str("scitype", w.SciType).
		Str("hub", w.Hub).
		Str("type", "MalformedUniverseWarning")
}

// NewMalformedUniverseWarning creates a new MalformedUniverseWarning.
func NewMalformedUniverseWarning(mtype, scitype, hub string) *MalformedUniverseWarning {
	return &MalformedUniverseWarning{MType: mtype, SciType: scitype, Hub: hub}
}

// ConverterOverwriteWarning is raised when a registration replaces an
// existing converter for the same (from, to, scitype) key. Registration
// order of optional backends is not guaranteed, so this is a warning rather
// than an error.
type ConverterOverwriteWarning struct {
	FromType string
	ToType   string
	SciType  string
}

func (w *ConverterOverwriteWarning) Error() string {
	return fmt.Sprintf("converter for (%s -> %s, scitype %s) was overwritten by a later registration",
		w.FromType, w.ToType, w.SciType)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *ConverterOverwriteWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("scitype", w.SciType).
		Str("type", "ConverterOverwriteWarning")
}

// NewConverterOverwriteWarning creates a new ConverterOverwriteWarning.
func NewConverterOverwriteWarning(from, to, scitype string) *ConverterOverwriteWarning {
	return &ConverterOverwriteWarning{FromType: from, ToType: to, SciType: scitype}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// ConversionUnsupportedError is returned when no converter, direct or
// synthesized through the hub, exists for the requested pair. The caller
// cannot distinguish an unrelated pair from a disabled backend from an
// incomplete universe; all three surface as this error.
type ConversionUnsupportedError struct {
	FromType string
	ToType   string
	SciType  string
}

func (e *ConversionUnsupportedError) Error() string {
	return fmt.Sprintf("tsgo: no conversion from %q to %q for scitype %q", e.FromType, e.ToType, e.SciType)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ConversionUnsupportedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("from_type", e.FromType).
		Str("to_type", e.ToType).
		Str("scitype", e.SciType).
		Str("type", "ConversionUnsupportedError")
}

// NewConversionUnsupportedError creates a ConversionUnsupportedError with a
// stack trace attached.
func NewConversionUnsupportedError(from, to, scitype string) error {
	err := &ConversionUnsupportedError{FromType: from, ToType: to, SciType: scitype}
	return errors.WithStack(err)
}

// NormalizationError is returned when the identity/normalization converter
// encounters data it cannot coerce, for example a validity mask whose length
// does not match its column.
type NormalizationError struct {
	Column string
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("tsgo: cannot normalize column %q: %s", e.Column, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NormalizationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "NormalizationError")
}

// NewNormalizationError creates a NormalizationError with a stack trace
// attached.
func NewNormalizationError(column, reason string) error {
	err := &NormalizationError{Column: column, Reason: reason}
	return errors.WithStack(err)
}

// ValueError indicates an argument whose value is malformed or out of range,
// for example a wide matrix with a negative dimension or a frame whose index
// arrays disagree in length.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("tsgo: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be assigned to target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrNotImplemented signals a feature that is not implemented.
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData signals that empty data was passed.
	ErrEmptyData = New("empty data")
)
