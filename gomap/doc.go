// Package gomap maps Go values to and from SLONE trees.
//
// Marshal turns structs, maps, and slices into trees; Unmarshal fills
// Go values back in. Numbers and bools travel as string values with
// the "num" and "bool" type tags, matching what the format bridges
// produce, so a struct marshaled here converts cleanly to JSON or
// YAML as well.
//
// Struct fields use the `slone` tag: a name, optionally followed by
// ",omitempty"; "-" skips the field.
package gomap
