// Package adapter holds the representation backends the conversion registry
// dispatches to. Each backend contributes exactly two functions, native
// representation to hub frame and back; the registry composes everything
// else through the hub and never sees a backend's internals.
package adapter

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tsgo/dataframe"
	"github.com/YuminosukeSato/tsgo/pkg/errors"
)

// Store keys under which the wide-matrix conversion stashes the frame
// metadata a bare matrix cannot carry.
const (
	StoreWideColumns  = "wide_matrix.columns"
	StoreWideTimes    = "wide_matrix.times"
	StoreWideTimeName = "wide_matrix.time_name"
)

// FrameToDense converts a single-series frame to a wide gonum matrix with
// one row per time point and one column per variable.
//
// The matrix drops column names and the time index. When store is non-nil
// they are recorded under the StoreWide* keys so DenseToFrame can restore
// them on the way back; with a nil store the reverse conversion synthesizes
// defaults instead.
func FrameToDense(f *dataframe.Frame, store map[string]any) (*mat.Dense, error) {
	if len(f.Levels) > 0 {
		return nil, errors.NewValueError("FrameToDense",
			"wide_matrix represents a single series; frame has instance levels")
	}
	coerced, err := f.CoerceDtypes()
	if err != nil {
		return nil, err
	}
	rows, cols := coerced.NumRows(), coerced.NumCols()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "FrameToDense")
	}

	m := mat.NewDense(rows, cols, nil)
	names := make([]string, cols)
	for j, c := range coerced.Cols {
		names[j] = c.Name
		m.SetCol(j, c.Values)
	}
	if store != nil {
		store[StoreWideColumns] = names
		store[StoreWideTimes] = append([]float64(nil), coerced.Times...)
		store[StoreWideTimeName] = coerced.TimeName
	}
	return m, nil
}

// DenseToFrame converts a wide matrix back to a single-series frame.
// Column names and the time index are taken from the store when present
// and shape-compatible; otherwise columns are named c0..cN and the time
// index is 0..rows-1.
func DenseToFrame(m mat.Matrix, store map[string]any) (*dataframe.Frame, error) {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "DenseToFrame")
	}

	names := storedStrings(store, StoreWideColumns, cols)
	if names == nil {
		names = make([]string, cols)
		for j := range names {
			names[j] = fmt.Sprintf("c%d", j)
		}
	}
	times := storedFloats(store, StoreWideTimes, rows)
	if times == nil {
		times = make([]float64, rows)
		for i := range times {
			times[i] = float64(i)
		}
	}
	timeName := ""
	if store != nil {
		if v, ok := store[StoreWideTimeName].(string); ok {
			timeName = v
		}
	}

	frameCols := make([]dataframe.Column, cols)
	for j := 0; j < cols; j++ {
		vals := make([]float64, rows)
		for i := 0; i < rows; i++ {
			vals[i] = m.At(i, j)
		}
		frameCols[j] = dataframe.Column{Name: names[j], Values: vals}
	}
	return dataframe.NewFrame(nil, timeName, times, frameCols)
}

// storedStrings returns the string slice under key when it has the wanted
// length; stale entries from a different shape are ignored.
func storedStrings(store map[string]any, key string, want int) []string {
	if store == nil {
		return nil
	}
	if v, ok := store[key].([]string); ok && len(v) == want {
		return append([]string(nil), v...)
	}
	return nil
}

func storedFloats(store map[string]any, key string, want int) []float64 {
	if store == nil {
		return nil
	}
	if v, ok := store[key].([]float64); ok && len(v) == want {
		return append([]float64(nil), v...)
	}
	return nil
}
