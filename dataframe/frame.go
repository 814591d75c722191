// Package dataframe provides the long-format time-series frame that serves
// as the hub representation for datatype conversions.
//
// A Frame stores one observation per row. Plain series have only a time
// index; panel and hierarchical data additionally carry one or more instance
// levels, each contributing a key per row. Columns hold float64 values with
// an optional validity mask, the in-memory analog of a nullable dtype.
//
// The frame deliberately depends on no representation backend: every
// optional machine type converts through it, so it must always be present.
package dataframe

import (
	"math"

	"github.com/YuminosukeSato/tsgo/pkg/errors"
)

// Level is one instance level of a hierarchical index. Keys has one entry
// per row of the frame.
type Level struct {
	Name string
	Keys []string
}

// Column is a named float64 column. A nil Valid mask marks the column as
// plain (non-nullable); otherwise Valid[i] == false marks entry i missing.
type Column struct {
	Name   string
	Values []float64
	Valid  []bool
}

// Frame is a long-format time-series table with an optional hierarchical
// instance index.
type Frame struct {
	// Levels are the outer instance levels, outermost first. Empty for a
	// single series.
	Levels []Level

	// TimeName names the innermost (time) index level.
	TimeName string

	// Times is the time index, one entry per row.
	Times []float64

	// Cols are the value columns.
	Cols []Column
}

// NewFrame builds a frame and validates its shape.
func NewFrame(levels []Level, timeName string, times []float64, cols []Column) (*Frame, error) {
	f := &Frame{Levels: levels, TimeName: timeName, Times: times, Cols: cols}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// NumRows returns the number of observation rows.
func (f *Frame) NumRows() int {
	return len(f.Times)
}

// NumCols returns the number of value columns.
func (f *Frame) NumCols() int {
	return len(f.Cols)
}

// Validate checks that every level, the time index and every column agree
// on the row count, and that validity masks match their columns.
func (f *Frame) Validate() error {
	n := len(f.Times)
	for _, lv := range f.Levels {
		if len(lv.Keys) != n {
			return errors.NewValueError("Frame.Validate",
				"level "+lv.Name+" length does not match time index")
		}
	}
	for _, c := range f.Cols {
		if len(c.Values) != n {
			return errors.NewValueError("Frame.Validate",
				"column "+c.Name+" length does not match time index")
		}
		if c.Valid != nil && len(c.Valid) != len(c.Values) {
			return errors.NewValueError("Frame.Validate",
				"column "+c.Name+" validity mask length does not match values")
		}
	}
	return nil
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		Levels:   make([]Level, len(f.Levels)),
		TimeName: f.TimeName,
		Times:    append([]float64(nil), f.Times...),
		Cols:     make([]Column, len(f.Cols)),
	}
	for i, lv := range f.Levels {
		out.Levels[i] = Level{Name: lv.Name, Keys: append([]string(nil), lv.Keys...)}
	}
	for i, c := range f.Cols {
		out.Cols[i] = Column{Name: c.Name, Values: append([]float64(nil), c.Values...)}
		if c.Valid != nil {
			out.Cols[i].Valid = append([]bool(nil), c.Valid...)
		}
	}
	return out
}

// CoerceDtypes normalizes nullable columns to plain float64 columns.
//
// A nullable column whose mask is entirely true becomes plain. A nullable
// column with missing entries becomes plain with NaN at the missing
// positions; this changes content, so a DataConversionWarning is raised.
// Plain columns pass through untouched, which makes the pass idempotent.
// The receiver is never mutated.
func (f *Frame) CoerceDtypes() (*Frame, error) {
	out := f.Clone()
	for i := range out.Cols {
		c := &out.Cols[i]
		if c.Valid == nil {
			continue
		}
		if len(c.Valid) != len(c.Values) {
			return nil, errors.NewNormalizationError(c.Name,
				"validity mask length does not match values")
		}
		missing := 0
		for j, ok := range c.Valid {
			if !ok {
				c.Values[j] = math.NaN()
				missing++
			}
		}
		c.Valid = nil
		if missing > 0 {
			errors.Warn(errors.NewDataConversionWarning(
				"nullable float64", "float64",
				"missing entries in column "+c.Name+" coerced to NaN"))
		}
	}
	return out, nil
}

// Equal reports structural equality of two frames. NaN values compare equal
// to NaN, so frames that went through CoerceDtypes compare as expected.
func Equal(a, b *Frame) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.TimeName != b.TimeName || len(a.Levels) != len(b.Levels) || len(a.Cols) != len(b.Cols) {
		return false
	}
	if !floatsEqual(a.Times, b.Times) {
		return false
	}
	for i := range a.Levels {
		if a.Levels[i].Name != b.Levels[i].Name {
			return false
		}
		if len(a.Levels[i].Keys) != len(b.Levels[i].Keys) {
			return false
		}
		for j := range a.Levels[i].Keys {
			if a.Levels[i].Keys[j] != b.Levels[i].Keys[j] {
				return false
			}
		}
	}
	for i := range a.Cols {
		ca, cb := a.Cols[i], b.Cols[i]
		if ca.Name != cb.Name || !floatsEqual(ca.Values, cb.Values) {
			return false
		}
		if (ca.Valid == nil) != (cb.Valid == nil) || len(ca.Valid) != len(cb.Valid) {
			return false
		}
		for j := range ca.Valid {
			if ca.Valid[j] != cb.Valid[j] {
				return false
			}
		}
	}
	return true
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}
