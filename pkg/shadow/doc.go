// Package shadow builds live, reactive mirrors of schema-shaped values.
//
// A shadow value is created from a schema and an "original" snapshot:
//
//	person, err := shadow.New(map[string]any{
//	    "name":   "person",
//	    "schema": map[string]any{"name": []any{}, "age": []any{}},
//	}, map[string]any{"name": "joe"})
//
//	obj := person.(*shadow.Object)
//	obj.Get("name")           // "joe", subscribes the running computation
//	obj.Set("name", "sam")    // invalidates computations that read "name"
//	obj.Node().HasChanges()   // true
//	obj.Node().Changes()      // map[string]any{"name": "sam"}
//
// Every schema node is backed by a Node: a PropertyNode for scalars, an
// ObjectNode for fixed field sets, an ArrayNode for homogeneous lists and
// a DictNode for homogeneous string-keyed maps. The visible values
// (*Property, *Object, *Array, *Dict) route every field access through an
// accessor table bound to the child node, so each field keeps its own
// reactive cell across whole-value replacement.
//
// # Reactivity
//
// Reads register dependencies on the reactive.Runtime the value was built
// with (WithRuntime). Arrays and dicts also carry a shape dependency that
// changes only when elements are added or removed. Array mutators (Push,
// Pop, Splice, ...) read their snapshot untracked, so calling one inside
// a computation never makes that computation depend on its own write.
//
// # Baselines
//
// The original snapshot is the baseline HasChanges and Changes compare
// against. ResetOriginal replaces the baseline for the whole subtree and
// overwrites the live value with it; Reset reverts to the current baseline.
//
// # Validation
//
// Check, Errors and Match delegate to a schema.Evaluator, passing the
// node's current value and the clone of the whole document.
package shadow
