package datatypes

// Probe reports whether every named representation backend is usable. It is
// injected into registry construction so the final table is reproducible
// under test: a backend the probe rejects simply never registers its
// adapter edges, and conversions involving it fail at lookup time rather
// than at startup.
type Probe func(capabilities ...string) bool

// Capability names of the optional representation backends.
const (
	// CapGonum backs the wide_matrix machine type.
	CapGonum = "gonum"

	// CapCty backs the cty_object machine type.
	CapCty = "cty"
)

var defaultCapabilities = map[string]bool{
	CapGonum: true,
	CapCty:   true,
}

// DefaultProbe answers from the built-in capability set, in which every
// compiled-in backend is enabled.
func DefaultProbe(capabilities ...string) bool {
	for _, c := range capabilities {
		if !defaultCapabilities[c] {
			return false
		}
	}
	return true
}
