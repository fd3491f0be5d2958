// Package ensure normalizes slices to a bounds-checked length by trimming or
// padding them at either end.
//
// Start a chain on a slice, state the bound, and pick how to correct it:
//
//	history := []string{"A", "B", "C", "D"}
//	ensure.That(&history).HasNoMoreThan(3).Elements().ByShifting()
//	// history is now [B C D]
//
//	slots := []string{"A", "B", "C", "D"}
//	ensure.That(&slots).HasAtLeast(6).Elements().ByPushing(" ")
//	// slots is now [A B C D " " " "]
//
// The slice is only changed when it is out of bounds. Trimming uses
// [Chain.ByPopping] (end) or [Chain.ByShifting] (start); growing uses
// [Chain.ByPushing] (end) or [Chain.ByUnshifting] (start) with an optional
// pad value that defaults to the zero value of the element type.
//
// [ThatPath] reaches a slice nested in structs, maps and slices by property
// path. [Policy] is the declarative form of a chain and can be loaded from
// YAML or JSON, used as an `ensure` struct tag with [Struct], or turned into
// a read-only validation [Rule] for ozzo-validation and OpenAPI schemas.
package ensure
