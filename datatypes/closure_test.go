package datatypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tserr "github.com/YuminosukeSato/tsgo/pkg/errors"
)

const (
	hubT MType = "H"
	xT   MType = "X"
	yT   MType = "Y"
	zT   MType = "Z"
)

var testSci = SciType("TestPanel")

// hubConnected registers identities for all four types and hub edges for X
// and Y. Z deliberately has no route to or from the hub: only Z->X and Y->Z
// exist, so any Z pair would need more than one hop through more than one
// intermediate, which the closure never attempts.
func hubConnected() *Registry {
	r := NewRegistry()
	for _, m := range []MType{hubT, xT, yT, zT} {
		r.Register(m, m, testSci, passThrough)
	}
	r.Register(xT, hubT, testSci, tagConv("x>h"))
	r.Register(hubT, xT, testSci, tagConv("h>x"))
	r.Register(yT, hubT, testSci, tagConv("y>h"))
	r.Register(hubT, yT, testSci, tagConv("h>y"))
	r.Register(zT, xT, testSci, tagConv("z>x"))
	r.Register(yT, zT, testSci, tagConv("y>z"))
	return r
}

func trace(t *testing.T, r *Registry, from, to MType) []string {
	t.Helper()
	fn, ok := r.Lookup(from, to, testSci)
	require.True(t, ok, "expected converter for %s -> %s", from, to)
	got, err := fn([]string{}, Store{})
	require.NoError(t, err)
	return got.([]string)
}

func TestExtendConversionsComposesThroughHub(t *testing.T) {
	r := hubConnected()
	r.ExtendConversions(testSci, hubT, []MType{hubT, xT, yT, zT})

	assert.Equal(t, []string{"x>h", "h>y"}, trace(t, r, xT, yT))
	assert.Equal(t, []string{"y>h", "h>x"}, trace(t, r, yT, xT))
}

func TestExtendConversionsNeverOverwritesDirectEdge(t *testing.T) {
	r := hubConnected()
	r.Register(xT, yT, testSci, tagConv("direct-x>y"))

	r.ExtendConversions(testSci, hubT, []MType{hubT, xT, yT, zT})

	assert.Equal(t, []string{"direct-x>y"}, trace(t, r, xT, yT))
	// the reverse pair had no direct edge and is synthesized as usual
	assert.Equal(t, []string{"y>h", "h>x"}, trace(t, r, yT, xT))
}

func TestExtendConversionsNoMultiHopChains(t *testing.T) {
	warnings := captureWarnings(t)

	r := hubConnected()
	r.ExtendConversions(testSci, hubT, []MType{hubT, xT, yT, zT})

	// Z->Y would exist via Z->X->H->Y and X->Z via Y->Z backwards; neither
	// is a single composition through the hub, so both stay unreachable.
	assert.False(t, r.Supports(zT, yT, testSci))
	assert.False(t, r.Supports(xT, zT, testSci))
	assert.False(t, r.Supports(zT, hubT, testSci))
	assert.False(t, r.Supports(hubT, zT, testSci))

	require.Len(t, *warnings, 1)
	var mw *tserr.MalformedUniverseWarning
	require.True(t, tserr.As((*warnings)[0], &mw))
	assert.Equal(t, string(zT), mw.MType)
	assert.Equal(t, string(hubT), mw.Hub)
}

func TestExtendConversionsIdempotent(t *testing.T) {
	warnings := captureWarnings(t)

	r := hubConnected()
	universe := []MType{hubT, xT, yT, zT}
	r.ExtendConversions(testSci, hubT, universe)
	keysOnce := r.Keys()
	warnsOnce := len(*warnings)

	r.ExtendConversions(testSci, hubT, universe)

	assert.Equal(t, keysOnce, r.Keys())
	// the second run re-warns about Z but must not emit overwrite warnings
	for _, w := range (*warnings)[warnsOnce:] {
		var ow *tserr.ConverterOverwriteWarning
		assert.False(t, tserr.As(w, &ow), "closure overwrote an existing key")
	}
}

func TestExtendConversionsOrderIndependent(t *testing.T) {
	universe := []MType{hubT, xT, yT}

	build := func(order []MType) *Registry {
		r := NewRegistry()
		for _, m := range universe {
			r.Register(m, m, testSci, passThrough)
		}
		for _, m := range order {
			r.Register(m, hubT, testSci, tagConv(string(m)+">h"))
			r.Register(hubT, m, testSci, tagConv("h>"+string(m)))
		}
		r.ExtendConversions(testSci, hubT, universe)
		return r
	}

	xFirst := build([]MType{xT, yT})
	yFirst := build([]MType{yT, xT})

	require.Equal(t, xFirst.Keys(), yFirst.Keys())
	for _, k := range xFirst.Keys() {
		assert.Equal(t,
			trace(t, xFirst, k.From, k.To),
			trace(t, yFirst, k.From, k.To),
			"converter output differs for %v", k)
	}
}

func TestExtendConversionsIncrementalMatchesBatch(t *testing.T) {
	universe := []MType{hubT, xT, yT}

	batch := NewRegistry()
	incremental := NewRegistry()
	for _, r := range []*Registry{batch, incremental} {
		for _, m := range universe {
			r.Register(m, m, testSci, passThrough)
		}
	}

	// batch: all edges present before one closure run
	for _, m := range []MType{xT, yT} {
		batch.Register(m, hubT, testSci, tagConv(string(m)+">h"))
		batch.Register(hubT, m, testSci, tagConv("h>"+string(m)))
	}
	batch.ExtendConversions(testSci, hubT, universe)

	// incremental: closure after each backend, as optional deps appear
	incremental.Register(xT, hubT, testSci, tagConv("x>h"))
	incremental.Register(hubT, xT, testSci, tagConv("h>x"))
	incremental.ExtendConversions(testSci, hubT, universe)
	incremental.Register(yT, hubT, testSci, tagConv("y>h"))
	incremental.Register(hubT, yT, testSci, tagConv("h>y"))
	incremental.ExtendConversions(testSci, hubT, universe)

	require.Equal(t, batch.Keys(), incremental.Keys())
	for _, k := range batch.Keys() {
		assert.Equal(t,
			trace(t, batch, k.From, k.To),
			trace(t, incremental, k.From, k.To),
			"converter output differs for %v", k)
	}
}

func TestComposedConverterThreadsOneStore(t *testing.T) {
	r := NewRegistry()
	r.Register(xT, hubT, testSci, func(obj any, store Store) (any, error) {
		store["stash"] = obj
		return "hub-value", nil
	})
	r.Register(hubT, yT, testSci, func(obj any, store Store) (any, error) {
		return store["stash"], nil
	})
	r.ExtendConversions(testSci, hubT, []MType{hubT, xT, yT})

	store := Store{}
	got, err := r.Convert("original", xT, yT, testSci, store)
	require.NoError(t, err)
	assert.Equal(t, "original", got)
	assert.Equal(t, "original", store["stash"])
}

func TestComposedConverterPropagatesFirstHopError(t *testing.T) {
	r := NewRegistry()
	boom := tserr.New("first hop failed")
	r.Register(xT, hubT, testSci, func(obj any, store Store) (any, error) {
		return nil, boom
	})
	r.Register(hubT, yT, testSci, tagConv("h>y"))
	r.ExtendConversions(testSci, hubT, []MType{hubT, xT, yT})

	_, err := r.Convert([]string{}, xT, yT, testSci, nil)
	require.Error(t, err)
	assert.True(t, tserr.Is(err, boom))

	// a failed conversion leaves the registry intact for other lookups
	assert.True(t, r.Supports(hubT, yT, testSci))
}
