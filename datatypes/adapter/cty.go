package adapter

import (
	"math"

	"github.com/zclconf/go-cty/cty"

	"github.com/YuminosukeSato/tsgo/dataframe"
	"github.com/YuminosukeSato/tsgo/pkg/errors"
)

// The cty encoding is a self-describing object value:
//
//	{
//	  levels:    list(object({name: string, keys: list(string)}))
//	  time_name: string
//	  times:     list(number)
//	  columns:   list(object({name: string, values: list(number)}))
//	}
//
// Missing entries travel as null numbers; cty numbers cannot represent NaN.
var (
	ctyLevelType = cty.Object(map[string]cty.Type{
		"name": cty.String,
		"keys": cty.List(cty.String),
	})
	ctyColumnType = cty.Object(map[string]cty.Type{
		"name":   cty.String,
		"values": cty.List(cty.Number),
	})
)

// FrameToCty converts a frame to the self-describing cty object value.
// Nullable columns are coerced first; NaN entries are encoded as null
// numbers.
func FrameToCty(f *dataframe.Frame, store map[string]any) (cty.Value, error) {
	coerced, err := f.CoerceDtypes()
	if err != nil {
		return cty.NilVal, err
	}

	levelVals := make([]cty.Value, len(coerced.Levels))
	for i, lv := range coerced.Levels {
		levelVals[i] = cty.ObjectVal(map[string]cty.Value{
			"name": cty.StringVal(lv.Name),
			"keys": stringListVal(lv.Keys),
		})
	}
	timeVals := make([]cty.Value, len(coerced.Times))
	for i, t := range coerced.Times {
		timeVals[i] = cty.NumberFloatVal(t)
	}
	columnVals := make([]cty.Value, len(coerced.Cols))
	for j, c := range coerced.Cols {
		vals := make([]cty.Value, len(c.Values))
		for i, v := range c.Values {
			if math.IsNaN(v) {
				vals[i] = cty.NullVal(cty.Number)
			} else {
				vals[i] = cty.NumberFloatVal(v)
			}
		}
		columnVals[j] = cty.ObjectVal(map[string]cty.Value{
			"name":   cty.StringVal(c.Name),
			"values": listVal(vals, cty.Number),
		})
	}

	return cty.ObjectVal(map[string]cty.Value{
		"levels":    listVal(levelVals, ctyLevelType),
		"time_name": cty.StringVal(coerced.TimeName),
		"times":     listVal(timeVals, cty.Number),
		"columns":   listVal(columnVals, ctyColumnType),
	}), nil
}

// CtyToFrame converts the self-describing cty object value back to a frame.
// Null numbers decode to NaN. Malformed values return a ValueError rather
// than panicking.
func CtyToFrame(v cty.Value, store map[string]any) (*dataframe.Frame, error) {
	if v.IsNull() || !v.Type().IsObjectType() {
		return nil, errors.NewValueError("CtyToFrame", "value is not a frame object")
	}
	for _, attr := range []string{"levels", "time_name", "times", "columns"} {
		if !v.Type().HasAttribute(attr) {
			return nil, errors.NewValueError("CtyToFrame", "missing attribute "+attr)
		}
	}

	timeName := v.GetAttr("time_name")
	if timeName.IsNull() || timeName.Type() != cty.String {
		return nil, errors.NewValueError("CtyToFrame", "time_name must be a string")
	}

	times, err := numberSlice(v.GetAttr("times"), "times", false)
	if err != nil {
		return nil, err
	}

	levelsVal := v.GetAttr("levels")
	if err := checkIterable(levelsVal, "levels"); err != nil {
		return nil, err
	}
	var levels []dataframe.Level
	for _, lv := range levelsVal.AsValueSlice() {
		name, err := objectString(lv, "name", "levels")
		if err != nil {
			return nil, err
		}
		keysVal := lv.GetAttr("keys")
		if err := checkIterable(keysVal, "level keys"); err != nil {
			return nil, err
		}
		keys := make([]string, 0, keysVal.LengthInt())
		for _, kv := range keysVal.AsValueSlice() {
			if kv.IsNull() || kv.Type() != cty.String {
				return nil, errors.NewValueError("CtyToFrame", "level keys must be strings")
			}
			keys = append(keys, kv.AsString())
		}
		levels = append(levels, dataframe.Level{Name: name, Keys: keys})
	}

	columnsVal := v.GetAttr("columns")
	if err := checkIterable(columnsVal, "columns"); err != nil {
		return nil, err
	}
	var cols []dataframe.Column
	for _, cv := range columnsVal.AsValueSlice() {
		name, err := objectString(cv, "name", "columns")
		if err != nil {
			return nil, err
		}
		vals, err := numberSlice(cv.GetAttr("values"), "column "+name, true)
		if err != nil {
			return nil, err
		}
		cols = append(cols, dataframe.Column{Name: name, Values: vals})
	}

	return dataframe.NewFrame(levels, timeName.AsString(), times, cols)
}

func stringListVal(vals []string) cty.Value {
	if len(vals) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	out := make([]cty.Value, len(vals))
	for i, s := range vals {
		out[i] = cty.StringVal(s)
	}
	return cty.ListVal(out)
}

func listVal(vals []cty.Value, elem cty.Type) cty.Value {
	if len(vals) == 0 {
		return cty.ListValEmpty(elem)
	}
	return cty.ListVal(vals)
}

func checkIterable(v cty.Value, what string) error {
	if v.IsNull() || !v.CanIterateElements() {
		return errors.NewValueError("CtyToFrame", what+" must be a list")
	}
	return nil
}

func objectString(v cty.Value, attr, what string) (string, error) {
	if v.IsNull() || !v.Type().IsObjectType() || !v.Type().HasAttribute(attr) {
		return "", errors.NewValueError("CtyToFrame", what+" entries must be objects with "+attr)
	}
	av := v.GetAttr(attr)
	if av.IsNull() || av.Type() != cty.String {
		return "", errors.NewValueError("CtyToFrame", what+" "+attr+" must be a string")
	}
	return av.AsString(), nil
}

// numberSlice decodes a list of cty numbers. With allowNull, null entries
// decode to NaN; otherwise they are rejected.
func numberSlice(v cty.Value, what string, allowNull bool) ([]float64, error) {
	if err := checkIterable(v, what); err != nil {
		return nil, err
	}
	out := make([]float64, 0, v.LengthInt())
	for _, ev := range v.AsValueSlice() {
		if ev.IsNull() {
			if !allowNull {
				return nil, errors.NewValueError("CtyToFrame", what+" must not contain nulls")
			}
			out = append(out, math.NaN())
			continue
		}
		if ev.Type() != cty.Number {
			return nil, errors.NewValueError("CtyToFrame", what+" must contain numbers")
		}
		f, _ := ev.AsBigFloat().Float64()
		out = append(out, f)
	}
	return out, nil
}
