// Package log defines standard attribute keys for datatype conversion
// operations.
//
// Using these keys consistently makes conversion logs filterable: every
// registry event carries the same "convert.*" fields, every data-shape
// event the same "data.*" fields. The keys follow a hierarchical naming
// convention (e.g., "convert.from", "data.rows") for structured analysis.
package log

// Conversion context.
// These attributes identify the conversion being performed or registered.
const (
	// FromTypeKey identifies the source machine type of a conversion.
	// Examples: "long_frame", "wide_matrix", "cty_object"
	FromTypeKey = "convert.from"

	// ToTypeKey identifies the target machine type of a conversion.
	ToTypeKey = "convert.to"

	// SciTypeKey identifies the abstract data category the conversion
	// operates within. Examples: "Series", "Hierarchical"
	SciTypeKey = "convert.scitype"

	// HubTypeKey identifies the hub machine type used by the closure
	// builder when a conversion is synthesized rather than direct.
	HubTypeKey = "convert.hub"

	// HopsKey records the number of hops a conversion takes: 1 for a
	// directly registered converter, 2 for a hub-composed one.
	HopsKey = "convert.hops"

	// ComponentKey identifies which package performed the operation.
	// Examples: "datatypes", "dataframe", "adapter"
	ComponentKey = "convert.component"
)

// Data shape and characteristics.
const (
	// RowsKey indicates the number of observation rows in a frame.
	RowsKey = "data.rows"

	// ColumnsKey indicates the number of value columns in a frame.
	ColumnsKey = "data.columns"

	// LevelsKey indicates the number of hierarchical index levels.
	LevelsKey = "data.levels"

	// InstancesKey indicates the number of panel instances in a
	// hierarchical frame.
	InstancesKey = "data.instances"
)

// Registry context.
const (
	// RegistrySizeKey records the number of keys in a conversion registry.
	RegistrySizeKey = "registry.size"

	// UniverseSizeKey records the number of machine types declared for a
	// scitype universe.
	UniverseSizeKey = "registry.universe_size"
)
