package datatypes

import (
	"gonum.org/v1/gonum/mat"

	"github.com/zclconf/go-cty/cty"

	"github.com/YuminosukeSato/tsgo/dataframe"
	"github.com/YuminosukeSato/tsgo/datatypes/adapter"
	"github.com/YuminosukeSato/tsgo/pkg/errors"
)

// Scitypes with declared machine-type universes.
const (
	// Series is a single time series.
	Series SciType = "Series"

	// Hierarchical is a panel of series with one or more instance levels.
	Hierarchical SciType = "Hierarchical"
)

// Machine types. MTypeLongFrame is the hub: every backend converts to and
// from it, and the closure builder composes all remaining pairs through it.
const (
	MTypeLongFrame   MType = "long_frame"
	MTypeWideMatrix  MType = "wide_matrix"
	MTypeLongRecords MType = "long_records"
	MTypeCtyObject   MType = "cty_object"
)

// HubMType is the mandatory intermediate for synthesized conversions.
const HubMType = MTypeLongFrame

// Declared universes. The closure builder only connects machine types
// listed here; anything else is invisible to the registry.
var (
	SeriesUniverse = []MType{
		MTypeLongFrame, MTypeWideMatrix, MTypeLongRecords, MTypeCtyObject,
	}
	HierarchicalUniverse = []MType{
		MTypeLongFrame, MTypeLongRecords, MTypeCtyObject,
	}
)

// ConvertIdentity is the self-conversion registered for every machine type.
// Frames get the dtype normalization pass; other representations have no
// nullable quirk and pass through unchanged.
func ConvertIdentity(obj any, store Store) (any, error) {
	if f, ok := obj.(*dataframe.Frame); ok {
		return f.CoerceDtypes()
	}
	return obj, nil
}

// NewDefaultRegistry builds the registry with the declared universes.
//
// Construction is a controlled startup phase, not an import side effect:
// identity conversions are registered for every declared machine type, each
// backend the probe accepts contributes its two hub edges, and the closure
// builder fills in the remaining pairs per scitype. A nil probe means
// DefaultProbe. The call is deterministic for a fixed probe, so tests can
// rebuild registries freely.
func NewDefaultRegistry(probe Probe) *Registry {
	if probe == nil {
		probe = DefaultProbe
	}
	r := NewRegistry()

	for _, m := range SeriesUniverse {
		r.Register(m, m, Series, ConvertIdentity)
	}
	for _, m := range HierarchicalUniverse {
		r.Register(m, m, Hierarchical, ConvertIdentity)
	}

	// long_records is in-house and always available.
	for _, sci := range []SciType{Series, Hierarchical} {
		r.Register(MTypeLongFrame, MTypeLongRecords, sci, convertFrameToRecords)
		r.Register(MTypeLongRecords, MTypeLongFrame, sci, convertRecordsToFrame)
	}

	if probe(CapGonum) {
		r.Register(MTypeLongFrame, MTypeWideMatrix, Series, convertFrameToDense)
		r.Register(MTypeWideMatrix, MTypeLongFrame, Series, convertDenseToFrame)
	}

	if probe(CapCty) {
		for _, sci := range []SciType{Series, Hierarchical} {
			r.Register(MTypeLongFrame, MTypeCtyObject, sci, convertFrameToCty)
			r.Register(MTypeCtyObject, MTypeLongFrame, sci, convertCtyToFrame)
		}
	}

	r.ExtendConversions(Series, HubMType, SeriesUniverse)
	r.ExtendConversions(Hierarchical, HubMType, HierarchicalUniverse)
	return r
}

func asFrame(obj any, op string) (*dataframe.Frame, error) {
	f, ok := obj.(*dataframe.Frame)
	if !ok {
		return nil, errors.NewValueError(op, "value is not a *dataframe.Frame")
	}
	return f, nil
}

func convertFrameToRecords(obj any, store Store) (any, error) {
	f, err := asFrame(obj, "convert long_frame -> long_records")
	if err != nil {
		return nil, err
	}
	return adapter.FrameToRecords(f, store)
}

func convertRecordsToFrame(obj any, store Store) (any, error) {
	rec, ok := obj.(*adapter.Records)
	if !ok {
		return nil, errors.NewValueError("convert long_records -> long_frame",
			"value is not a *adapter.Records")
	}
	return adapter.RecordsToFrame(rec, store)
}

func convertFrameToDense(obj any, store Store) (any, error) {
	f, err := asFrame(obj, "convert long_frame -> wide_matrix")
	if err != nil {
		return nil, err
	}
	return adapter.FrameToDense(f, store)
}

func convertDenseToFrame(obj any, store Store) (any, error) {
	m, ok := obj.(mat.Matrix)
	if !ok {
		return nil, errors.NewValueError("convert wide_matrix -> long_frame",
			"value is not a gonum mat.Matrix")
	}
	return adapter.DenseToFrame(m, store)
}

func convertFrameToCty(obj any, store Store) (any, error) {
	f, err := asFrame(obj, "convert long_frame -> cty_object")
	if err != nil {
		return nil, err
	}
	return adapter.FrameToCty(f, store)
}

func convertCtyToFrame(obj any, store Store) (any, error) {
	v, ok := obj.(cty.Value)
	if !ok {
		return nil, errors.NewValueError("convert cty_object -> long_frame",
			"value is not a cty.Value")
	}
	return adapter.CtyToFrame(v, store)
}
