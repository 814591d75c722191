package datatypes

import (
	"log/slog"
	"sync"

	"github.com/YuminosukeSato/tsgo/core/parallel"
	"github.com/YuminosukeSato/tsgo/dataframe"
	"github.com/YuminosukeSato/tsgo/pkg/errors"
	tslog "github.com/YuminosukeSato/tsgo/pkg/log"
)

// Convert dispatches obj through the registered converter for
// (from, to, sci). A missing entry returns ConversionUnsupportedError; the
// caller cannot and must not tell apart unrelated types, a disabled backend
// and an incomplete universe. store may be nil; when non-nil it is owned by
// the caller and threaded through every hop of a synthesized conversion.
func (r *Registry) Convert(obj any, from, to MType, sci SciType, store Store) (any, error) {
	fn, ok := r.Lookup(from, to, sci)
	if !ok {
		return nil, errors.NewConversionUnsupportedError(string(from), string(to), string(sci))
	}
	out, err := fn(obj, store)
	if err != nil {
		err = errors.Wrapf(err, "convert %s -> %s (%s)", from, to, sci)
		slog.Debug("conversion failed",
			tslog.ErrAttr(err),
			slog.String(tslog.ComponentKey, "datatypes"),
			slog.String(tslog.FromTypeKey, string(from)),
			slog.String(tslog.ToTypeKey, string(to)),
			slog.String(tslog.SciTypeKey, string(sci)),
		)
		return nil, err
	}
	slog.Debug("conversion applied",
		slog.String(tslog.ComponentKey, "datatypes"),
		slog.String(tslog.FromTypeKey, string(from)),
		slog.String(tslog.ToTypeKey, string(to)),
		slog.String(tslog.SciTypeKey, string(sci)),
	)
	return out, nil
}

// ConvertBatch converts independent values in parallel, preserving order.
// Each element gets a private store, so lossy hops of one element never
// leak metadata into another. Failures are joined into one error carrying
// the element indexes; a nil error means every element converted.
func (r *Registry) ConvertBatch(objs []any, from, to MType, sci SciType) ([]any, error) {
	if !r.Supports(from, to, sci) {
		return nil, errors.NewConversionUnsupportedError(string(from), string(to), string(sci))
	}
	out := make([]any, len(objs))
	err := parallel.ParallelizeErr(len(objs), func(i int) error {
		v, convErr := r.Convert(objs[i], from, to, sci, Store{})
		if convErr != nil {
			return errors.Wrapf(convErr, "element %d", i)
		}
		out[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ConvertInstances splits a hierarchical frame into its panel instances and
// converts each one to the target machine type under the Series scitype,
// in parallel. Results are ordered like f.Instances(); each instance gets a
// private store.
func (r *Registry) ConvertInstances(f *dataframe.Frame, to MType) ([]any, error) {
	if !r.Supports(MTypeLongFrame, to, Series) {
		return nil, errors.NewConversionUnsupportedError(
			string(MTypeLongFrame), string(to), string(Series))
	}
	instances := f.Instances()
	slog.Debug("converting panel instances",
		slog.String(tslog.ComponentKey, "datatypes"),
		slog.String(tslog.ToTypeKey, string(to)),
		slog.Int(tslog.InstancesKey, len(instances)),
		slog.Int(tslog.RowsKey, f.NumRows()),
		slog.Int(tslog.ColumnsKey, f.NumCols()),
		slog.Int(tslog.LevelsKey, len(f.Levels)),
	)
	out := make([]any, len(instances))
	err := parallel.ParallelizeErr(len(instances), func(i int) error {
		sub := f.InstanceFrame(instances[i].Start, instances[i].End)
		v, convErr := r.Convert(sub, MTypeLongFrame, to, Series, Store{})
		if convErr != nil {
			return errors.Wrapf(convErr, "instance %v", instances[i].Keys)
		}
		out[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, built once with DefaultProbe.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewDefaultRegistry(DefaultProbe)
	})
	return defaultRegistry
}

// Convert converts obj between machine types using the default registry.
func Convert(obj any, from, to MType, sci SciType, store Store) (any, error) {
	return Default().Convert(obj, from, to, sci, store)
}
