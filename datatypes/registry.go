// Package datatypes implements the machine-type conversion registry for
// time-series data.
//
// A machine type (MType) is one concrete in-memory representation; a
// scientific type (SciType) is the abstract category it belongs to. The
// registry is a table keyed by (from, to, scitype) holding converter
// functions. Direct converters are registered per representation backend;
// ExtendConversions then synthesizes every missing pair by composing two
// hops through the hub representation, so callers only ever look up the
// pair they need.
package datatypes

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/YuminosukeSato/tsgo/pkg/errors"
)

// MType identifies a concrete machine representation, e.g. "long_frame".
type MType string

// SciType identifies an abstract data category, e.g. "Series".
type SciType string

// Key is the registry key: one converter per ordered (From, To) pair within
// a scitype.
type Key struct {
	From MType
	To   MType
	Sci  SciType
}

// Store is the caller-owned side channel threaded through a conversion
// chain. A lossy hop stashes metadata here (index names, column order) so a
// later hop, or the reverse conversion, can restore it. The registry never
// retains a store; a nil store disables restoration but not conversion.
type Store map[string]any

// Converter maps a value of one machine type to another. The store may be
// nil. Converters are pure apart from writes into the store.
type Converter func(obj any, store Store) (any, error)

// Registry is the conversion dispatch table.
//
// Readers work against an immutable snapshot published through an atomic
// pointer; writers serialize on a mutex and publish a copied table, so a
// concurrent Lookup never observes a partially updated map.
type Registry struct {
	mu    sync.Mutex
	table atomic.Pointer[map[Key]Converter]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	empty := make(map[Key]Converter)
	r.table.Store(&empty)
	return r
}

func (r *Registry) snapshot() map[Key]Converter {
	return *r.table.Load()
}

// Lookup returns the converter for (from, to, sci), or false when none is
// registered. A miss does not distinguish unrelated types from a disabled
// backend from an incomplete universe.
func (r *Registry) Lookup(from, to MType, sci SciType) (Converter, bool) {
	fn, ok := r.snapshot()[Key{From: from, To: to, Sci: sci}]
	return fn, ok
}

// Supports reports whether a conversion for (from, to, sci) is registered.
func (r *Registry) Supports(from, to MType, sci SciType) bool {
	_, ok := r.Lookup(from, to, sci)
	return ok
}

// Register adds a converter for (from, to, sci). Replacing an existing key
// raises a ConverterOverwriteWarning instead of failing, since registration
// order of optional backends is not guaranteed.
func (r *Registry) Register(from, to MType, sci SciType, fn Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publish(map[Key]Converter{{From: from, To: to, Sci: sci}: fn}, true)
}

// publish copies the current table, applies entries and stores the copy.
// Callers must hold r.mu. With overwrite false, existing keys are left
// untouched; with overwrite true they are replaced under a warning.
func (r *Registry) publish(entries map[Key]Converter, overwrite bool) {
	cur := r.snapshot()
	next := make(map[Key]Converter, len(cur)+len(entries))
	for k, v := range cur {
		next[k] = v
	}
	for k, v := range entries {
		if _, exists := next[k]; exists {
			if !overwrite {
				continue
			}
			errors.Warn(errors.NewConverterOverwriteWarning(
				string(k.From), string(k.To), string(k.Sci)))
		}
		next[k] = v
	}
	r.table.Store(&next)
}

// Size returns the number of registered keys.
func (r *Registry) Size() int {
	return len(r.snapshot())
}

// Keys returns all registered keys in a deterministic order.
func (r *Registry) Keys() []Key {
	tab := r.snapshot()
	keys := make([]Key, 0, len(tab))
	for k := range tab {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Sci != b.Sci {
			return a.Sci < b.Sci
		}
		if a.From != b.From {
			return a.From < b.From
		}
		return a.To < b.To
	})
	return keys
}

// MTypes returns the machine types that appear in any registered key of the
// given scitype, sorted. This is the capability query to consult when a
// Lookup miss needs explaining.
func (r *Registry) MTypes(sci SciType) []MType {
	seen := make(map[MType]bool)
	for k := range r.snapshot() {
		if k.Sci == sci {
			seen[k.From] = true
			seen[k.To] = true
		}
	}
	out := make([]MType, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
