package adapter

import (
	"fmt"

	"github.com/YuminosukeSato/tsgo/dataframe"
	"github.com/YuminosukeSato/tsgo/pkg/errors"
)

// Record is one observation row: the instance key tuple, the time point and
// one value per column of the shared header.
type Record struct {
	Keys   []string
	Time   float64
	Values []float64
}

// Records is the row-major long-format representation. The header (level
// names, time name, column names) is shared by all rows, so the encoding is
// lossless and self-describing.
type Records struct {
	LevelNames []string
	TimeName   string
	Columns    []string
	Rows       []Record
}

// FrameToRecords converts a frame to the row-major representation. Nullable
// columns are coerced first, so missing entries appear as NaN values.
func FrameToRecords(f *dataframe.Frame, store map[string]any) (*Records, error) {
	coerced, err := f.CoerceDtypes()
	if err != nil {
		return nil, err
	}

	out := &Records{
		LevelNames: make([]string, len(coerced.Levels)),
		TimeName:   coerced.TimeName,
		Columns:    make([]string, len(coerced.Cols)),
		Rows:       make([]Record, coerced.NumRows()),
	}
	for i, lv := range coerced.Levels {
		out.LevelNames[i] = lv.Name
	}
	for j, c := range coerced.Cols {
		out.Columns[j] = c.Name
	}
	for i := range out.Rows {
		rec := Record{
			Time:   coerced.Times[i],
			Values: make([]float64, len(coerced.Cols)),
		}
		if len(coerced.Levels) > 0 {
			rec.Keys = make([]string, len(coerced.Levels))
			for l, lv := range coerced.Levels {
				rec.Keys[l] = lv.Keys[i]
			}
		}
		for j, c := range coerced.Cols {
			rec.Values[j] = c.Values[i]
		}
		out.Rows[i] = rec
	}
	return out, nil
}

// RecordsToFrame converts the row-major representation back to a frame.
// Every row must match the header shape.
func RecordsToFrame(rec *Records, store map[string]any) (*dataframe.Frame, error) {
	n := len(rec.Rows)
	levels := make([]dataframe.Level, len(rec.LevelNames))
	for l, name := range rec.LevelNames {
		levels[l] = dataframe.Level{Name: name, Keys: make([]string, n)}
	}
	times := make([]float64, n)
	cols := make([]dataframe.Column, len(rec.Columns))
	for j, name := range rec.Columns {
		cols[j] = dataframe.Column{Name: name, Values: make([]float64, n)}
	}

	for i, row := range rec.Rows {
		if len(row.Keys) != len(rec.LevelNames) {
			return nil, errors.NewValueError("RecordsToFrame",
				fmt.Sprintf("row %d has %d keys, header declares %d levels",
					i, len(row.Keys), len(rec.LevelNames)))
		}
		if len(row.Values) != len(rec.Columns) {
			return nil, errors.NewValueError("RecordsToFrame",
				fmt.Sprintf("row %d has %d values, header declares %d columns",
					i, len(row.Values), len(rec.Columns)))
		}
		for l := range levels {
			levels[l].Keys[i] = row.Keys[l]
		}
		times[i] = row.Time
		for j := range cols {
			cols[j].Values[i] = row.Values[j]
		}
	}
	if len(levels) == 0 {
		levels = nil
	}
	return dataframe.NewFrame(levels, rec.TimeName, times, cols)
}
