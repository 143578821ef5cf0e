// Package propgrid implements a property grid control on top of a native
// grid handler.
//
// The interesting part of the package is the metadata registry. A Registry
// holds one TypeRegistry per Go struct type and, under it, one PropRegistry
// per exported field. Each PropRegistry carries an ItemParams bag of editor
// overrides (label, choices, read-only, number format, validator) that can be
// set without touching the struct itself. Its Constructed view inherits any
// unset override from the same-named field of the base type, where the base
// of a struct is its first embedded struct:
//
//	type ShapeBase struct{ Width float64 }
//	type Rectangle struct{ ShapeBase }
//
//	reg := propgrid.NewRegistry()
//	reg.PropRegistryByName(reflect.TypeOf(ShapeBase{}), "Width").Params().SetLabel("Width (px)")
//	label, _ := reg.PropRegistryByName(reflect.TypeOf(Rectangle{}), "Width").Constructed().Label()
//	// label == "Width (px)"
//
// PropertyGrid turns a struct into editor rows, pushes values to the native
// side and commits user edits back into the struct. Failures while reading or
// writing a bound value are reported to the errors package handler and never
// returned; the row keeps showing its previous value.
//
// Controls are UI-thread affine. Only the registries and the choices cache
// are safe for concurrent use.
package propgrid
