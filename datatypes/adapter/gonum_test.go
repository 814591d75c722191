package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tsgo/dataframe"
	tserr "github.com/YuminosukeSato/tsgo/pkg/errors"
)

func testFrame() *dataframe.Frame {
	return &dataframe.Frame{
		TimeName: "time",
		Times:    []float64{10, 11, 12},
		Cols: []dataframe.Column{
			{Name: "load", Values: []float64{1, 2, 3}},
			{Name: "temp", Values: []float64{20, 21, 22}},
		},
	}
}

func TestFrameToDense(t *testing.T) {
	store := map[string]any{}
	m, err := FrameToDense(testFrame(), store)
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 2.0, m.At(1, 0))
	assert.Equal(t, 22.0, m.At(2, 1))

	assert.Equal(t, []string{"load", "temp"}, store[StoreWideColumns])
	assert.Equal(t, []float64{10, 11, 12}, store[StoreWideTimes])
	assert.Equal(t, "time", store[StoreWideTimeName])
}

func TestFrameToDenseRejectsHierarchical(t *testing.T) {
	f := &dataframe.Frame{
		Levels:   []dataframe.Level{{Name: "id", Keys: []string{"a", "a"}}},
		TimeName: "time",
		Times:    []float64{0, 1},
		Cols:     []dataframe.Column{{Name: "v", Values: []float64{1, 2}}},
	}

	_, err := FrameToDense(f, nil)
	require.Error(t, err)
	var ve *tserr.ValueError
	assert.True(t, tserr.As(err, &ve))
}

func TestFrameToDenseEmpty(t *testing.T) {
	f := &dataframe.Frame{TimeName: "time"}
	_, err := FrameToDense(f, nil)
	require.Error(t, err)
	assert.True(t, tserr.Is(err, tserr.ErrEmptyData))
}

func TestDenseToFrameRestoresFromStore(t *testing.T) {
	store := map[string]any{}
	m, err := FrameToDense(testFrame(), store)
	require.NoError(t, err)

	back, err := DenseToFrame(m, store)
	require.NoError(t, err)
	assert.True(t, dataframe.Equal(testFrame(), back))
}

func TestDenseToFrameSynthesizesDefaults(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	got, err := DenseToFrame(m, nil)
	require.NoError(t, err)

	assert.Equal(t, "", got.TimeName)
	assert.Equal(t, []float64{0, 1}, got.Times)
	assert.Equal(t, "c0", got.Cols[0].Name)
	assert.Equal(t, "c1", got.Cols[1].Name)
	assert.Equal(t, []float64{2, 4}, got.Cols[1].Values)
}

func TestDenseToFrameIgnoresStaleStore(t *testing.T) {
	// store metadata from a differently shaped conversion must not apply
	store := map[string]any{
		StoreWideColumns: []string{"only_one"},
		StoreWideTimes:   []float64{5},
	}
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	got, err := DenseToFrame(m, store)
	require.NoError(t, err)
	assert.Equal(t, "c0", got.Cols[0].Name)
	assert.Equal(t, []float64{0, 1}, got.Times)
}

func TestFrameToDenseCoercesNullable(t *testing.T) {
	f := testFrame()
	f.Cols[0].Valid = []bool{true, false, true}

	m, err := FrameToDense(f, nil)
	require.NoError(t, err)
	assert.True(t, m.At(1, 0) != m.At(1, 0), "masked entry should surface as NaN")
}
