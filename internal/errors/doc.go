// Package errors provides structured, coded errors for shadow.
//
// Every error carries a short code (e.g. "S100") that maps to a category,
// a one-line message and a longer explanation:
//
//   - schema:     malformed or contradictory schema descriptions (S001-S099)
//   - validation: values rejected by schema rules (S100-S199)
//   - runtime:    engine and reactive runtime failures (S200-S299)
//   - config:     shadowctl configuration problems (S300-S399)
//   - cli:        command line usage errors (S400-S499)
//
// # Usage
//
//	err := errors.New("S002").
//	    WithDetail(`field "employees" declares both isArray and isDict`).
//	    WithSuggestion("Pick one collection kind per schema node")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR S002: Conflicting collection kinds
//	//
//	//   field "employees" declares both isArray and isDict
//	//
//	//   Hint: Pick one collection kind per schema node
package errors
