package datatypes

import (
	"log/slog"

	"github.com/YuminosukeSato/tsgo/pkg/errors"
	tslog "github.com/YuminosukeSato/tsgo/pkg/log"
)

// ExtendConversions synthesizes the missing conversions of a scitype
// universe by composing through the hub machine type.
//
// For every ordered pair (A, B) in the universe with A != B and no
// registered (A, B) converter, it registers compose(A->hub, hub->B) when
// both hops exist. Pairs with a missing hop are skipped; a universe entry
// with no route to or from the hub raises one MalformedUniverseWarning and
// stays unreachable, which is the expected state for a disabled backend.
//
// Directly registered converters are never overwritten: an explicit edge
// always beats a synthesized one, since direct converters may avoid the
// materialization cost of the hub path. Only single compositions through
// the hub are attempted, never longer chains; the hub is assumed reachable
// from every enabled machine type in one hop. The result is deterministic
// and independent of registration order, so running the closure again after
// further backends register is safe.
func (r *Registry) ExtendConversions(sci SciType, hub MType, universe []MType) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tab := r.snapshot()
	has := func(from, to MType) (Converter, bool) {
		fn, ok := tab[Key{From: from, To: to, Sci: sci}]
		return fn, ok
	}

	for _, m := range universe {
		if m == hub {
			continue
		}
		_, toHub := has(m, hub)
		_, fromHub := has(hub, m)
		if !toHub && !fromHub {
			errors.Warn(errors.NewMalformedUniverseWarning(string(m), string(sci), string(hub)))
		}
	}

	synthesized := make(map[Key]Converter)
	for _, a := range universe {
		for _, b := range universe {
			if a == b {
				continue
			}
			if _, exists := has(a, b); exists {
				continue
			}
			toHub, ok1 := has(a, hub)
			fromHub, ok2 := has(hub, b)
			if !ok1 || !ok2 {
				continue
			}
			synthesized[Key{From: a, To: b, Sci: sci}] = composeConverters(toHub, fromHub)
			slog.Debug("conversion synthesized",
				slog.String(tslog.FromTypeKey, string(a)),
				slog.String(tslog.ToTypeKey, string(b)),
				slog.String(tslog.SciTypeKey, string(sci)),
				slog.String(tslog.HubTypeKey, string(hub)),
				slog.Int(tslog.HopsKey, 2),
			)
		}
	}
	if len(synthesized) > 0 {
		r.publish(synthesized, false)
	}
	slog.Debug("conversions extended",
		slog.String(tslog.SciTypeKey, string(sci)),
		slog.String(tslog.HubTypeKey, string(hub)),
		slog.Int(tslog.UniverseSizeKey, len(universe)),
		slog.Int(tslog.RegistrySizeKey, r.Size()),
	)
}

// composeConverters chains two converters, threading one store through both
// hops so metadata dropped by the first hop survives to the second.
func composeConverters(first, second Converter) Converter {
	return func(obj any, store Store) (any, error) {
		mid, err := first(obj, store)
		if err != nil {
			return nil, err
		}
		return second(mid, store)
	}
}
