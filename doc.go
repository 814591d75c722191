// Package tsgo provides time-series datatypes and machine-type conversion
// for Go, designed for data pipelines that must move series data between
// in-memory representations without caring how many hops that takes.
//
// # Features
//
// - Table-driven conversion registry keyed by (from, to, scitype)
// - Closure building: missing pairs are synthesized through a hub representation
// - Availability gating: optional backends register only when enabled
// - Caller-owned store side channel so lossy hops round-trip metadata
// - Robust error handling with typed errors and structured warnings
//
// # Installation
//
// Install tsgo using go get:
//
//	go get github.com/YuminosukeSato/tsgo
//
// # Quick Start
//
// Convert a long-format frame to a wide gonum matrix and back:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/tsgo/dataframe"
//	    "github.com/YuminosukeSato/tsgo/datatypes"
//	)
//
//	func main() {
//	    frame, err := dataframe.NewFrame(nil, "time",
//	        []float64{0, 1, 2, 3},
//	        []dataframe.Column{{Name: "load", Values: []float64{1.5, 2.0, 2.5, 3.0}}},
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    store := datatypes.Store{}
//	    wide, err := datatypes.Convert(frame, datatypes.MTypeLongFrame,
//	        datatypes.MTypeWideMatrix, datatypes.Series, store)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    back, err := datatypes.Convert(wide, datatypes.MTypeWideMatrix,
//	        datatypes.MTypeLongFrame, datatypes.Series, store)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(back)
//	}
//
// The registry behind datatypes.Convert is built once at first use:
// identity conversions for every declared machine type, direct edges for
// each enabled backend, and hub-composed edges for everything else. Lookups
// are safe for concurrent use.
//
// # Packages
//
//   - datatypes: conversion registry, closure builder, availability gate
//   - datatypes/adapter: representation backends (gonum wide matrix,
//     row-major records, cty object values)
//   - dataframe: the long-format hub frame and dtype normalization
//   - pkg/errors: typed errors, warnings and the warning handler
//   - pkg/log: structured logging setup and attribute keys
package tsgo
