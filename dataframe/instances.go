package dataframe

// Instance is one panel instance of a hierarchical frame: the tuple of
// outer-level keys and the contiguous row range [Start, End) it occupies.
type Instance struct {
	Keys  []string
	Start int
	End   int
}

// Instances groups the rows of a hierarchical frame by their outer-level
// key tuples. Rows belonging to one instance are assumed contiguous, the
// long-format invariant; a frame without levels yields a single instance
// spanning all rows.
func (f *Frame) Instances() []Instance {
	n := f.NumRows()
	if n == 0 {
		return nil
	}
	if len(f.Levels) == 0 {
		return []Instance{{Start: 0, End: n}}
	}

	var out []Instance
	start := 0
	for row := 1; row <= n; row++ {
		if row < n && f.sameInstance(row-1, row) {
			continue
		}
		out = append(out, Instance{Keys: f.instanceKeys(start), Start: start, End: row})
		start = row
	}
	return out
}

// InstanceFrame returns the rows [start, end) as a standalone series frame
// without instance levels, the shape instance-wise conversion works on.
func (f *Frame) InstanceFrame(start, end int) *Frame {
	out := &Frame{
		TimeName: f.TimeName,
		Times:    append([]float64(nil), f.Times[start:end]...),
		Cols:     make([]Column, len(f.Cols)),
	}
	for i, c := range f.Cols {
		out.Cols[i] = Column{Name: c.Name, Values: append([]float64(nil), c.Values[start:end]...)}
		if c.Valid != nil {
			out.Cols[i].Valid = append([]bool(nil), c.Valid[start:end]...)
		}
	}
	return out
}

func (f *Frame) sameInstance(i, j int) bool {
	for _, lv := range f.Levels {
		if lv.Keys[i] != lv.Keys[j] {
			return false
		}
	}
	return true
}

func (f *Frame) instanceKeys(row int) []string {
	keys := make([]string, len(f.Levels))
	for i, lv := range f.Levels {
		keys[i] = lv.Keys[row]
	}
	return keys
}
