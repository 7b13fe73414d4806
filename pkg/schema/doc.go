// Package schema describes the shape of shadow values and validates them.
//
// A Schema node is one of four kinds:
//
//   - Scalar: a single value, optionally constrained by rules
//   - Object: a closed set of named fields, each with its own schema
//   - Array:  an ordered list whose elements share one item schema
//   - Dict:   a string-keyed map whose values share one item schema
//
// Schemas are usually written as loose descriptions and turned into
// Schema values with Normalize:
//
//	person, err := schema.Normalize(map[string]any{
//	    "name": "person",
//	    "schema": map[string]any{
//	        "name": []any{"value != nil"},
//	        "age":  []any{},
//	    },
//	})
//
// or loaded from YAML, where mapping order is preserved:
//
//	name: bank
//	schema:
//	  routingNumber: []
//	  employees:
//	    isArray: true
//	    schema:
//	      name: ["value != nil"]
//	  safe:
//	    combination: []
//
// # Rules
//
// A rule is a Go function or an expr-lang expression evaluated with two
// variables: value (the node's current value) and root (the whole
// document). Expressions must return a boolean.
//
// # Evaluation
//
// Evaluator is the validation capability consumed by shadow nodes. The
// RuleEvaluator returned by NewEvaluator walks a value alongside its schema
// and reports every failing rule as an ErrorDescriptor.
package schema
