package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

// ErrorDescriptor describes one failing rule.
type ErrorDescriptor struct {
	// Path locates the value in the document ("employees.0.name").
	// Empty for the root.
	Path string `json:"path"`

	// Schema is the name of the schema the rule belongs to.
	Schema string `json:"schema,omitempty"`

	// Rule is the failing rule's name.
	Rule string `json:"rule"`

	// Message is the rule's message, or a generic one.
	Message string `json:"message"`

	// Value is the value the rule rejected.
	Value any `json:"value,omitempty"`

	// Err is set when the rule itself failed to evaluate.
	Err error `json:"-"`
}

// String returns a compact one-line description.
func (d ErrorDescriptor) String() string {
	path := d.Path
	if path == "" {
		path = "$"
	}
	if d.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", path, d.Message, d.Err)
	}
	return fmt.Sprintf("%s: %s", path, d.Message)
}

// ValidationError is returned by Check when a value fails its schema.
type ValidationError struct {
	Errors []ErrorDescriptor
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	base := serrors.New("S100").Error()
	switch len(e.Errors) {
	case 0:
		return base
	case 1:
		return base + ": " + e.Errors[0].String()
	default:
		return fmt.Sprintf("%s: %s (and %d more)", base, e.Errors[0].String(), len(e.Errors)-1)
	}
}

// Unwrap exposes the S100 code so errors.Is(err, errors.New("S100")) matches.
func (e *ValidationError) Unwrap() error {
	return serrors.New("S100")
}

// Evaluator validates values against schema nodes. root is the whole
// document the value belongs to, so rules can look outside their subtree.
type Evaluator interface {
	// Check returns a *ValidationError when value is invalid.
	Check(s *Schema, value, root any) error

	// Errors appends every failing rule to acc and returns it.
	Errors(s *Schema, value, root any, acc []ErrorDescriptor) []ErrorDescriptor

	// Match reports whether value satisfies s.
	Match(s *Schema, value, root any) bool
}

// RuleEvaluator is the default Evaluator: it runs every rule of every
// schema node along the value's structure.
type RuleEvaluator struct {
	// FailFast stops at the first failing rule.
	FailFast bool
}

// NewEvaluator returns a RuleEvaluator that reports every failure.
func NewEvaluator() *RuleEvaluator {
	return &RuleEvaluator{}
}

// Check implements Evaluator.
func (e *RuleEvaluator) Check(s *Schema, value, root any) error {
	errs := e.Errors(s, value, root, nil)
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// Errors implements Evaluator.
func (e *RuleEvaluator) Errors(s *Schema, value, root any, acc []ErrorDescriptor) []ErrorDescriptor {
	acc, _ = e.walk(s, value, root, "", acc)
	return acc
}

// Match implements Evaluator. It stops at the first failure.
func (e *RuleEvaluator) Match(s *Schema, value, root any) bool {
	ff := RuleEvaluator{FailFast: true}
	errs, _ := ff.walk(s, value, root, "", nil)
	return len(errs) == 0
}

// walk evaluates s against value. The boolean result reports whether
// evaluation stopped early.
func (e *RuleEvaluator) walk(s *Schema, value, root any, path string, acc []ErrorDescriptor) ([]ErrorDescriptor, bool) {
	if s == nil {
		return acc, false
	}

	for _, r := range s.Rules {
		ok, err := r.Eval(value, root)
		if ok && err == nil {
			continue
		}
		acc = append(acc, describe(s, r, value, path, err))
		if e.FailFast {
			return acc, true
		}
	}

	var stop bool
	switch s.Kind {
	case Object:
		m, _ := toMap(value)
		for _, f := range s.Fields {
			if acc, stop = e.walk(f.Schema, m[f.Name], root, joinPath(path, f.Name), acc); stop {
				return acc, true
			}
		}
	case Array:
		items, _ := asList(value)
		item := s.ItemSchema()
		for i, v := range items {
			if acc, stop = e.walk(item, v, root, joinPath(path, strconv.Itoa(i)), acc); stop {
				return acc, true
			}
		}
	case Dict:
		m, _ := toMap(value)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		item := s.ItemSchema()
		for _, k := range keys {
			if acc, stop = e.walk(item, m[k], root, joinPath(path, k), acc); stop {
				return acc, true
			}
		}
	}
	return acc, false
}

func describe(s *Schema, r Rule, value any, path string, err error) ErrorDescriptor {
	msg := r.Message
	if msg == "" {
		if err != nil {
			msg = serrors.New("S102").Message
		} else {
			msg = fmt.Sprintf("rule %q failed", r.Name)
		}
	}
	return ErrorDescriptor{
		Path:    path,
		Schema:  s.Name,
		Rule:    r.Name,
		Message: msg,
		Value:   value,
		Err:     err,
	}
}

// toMap reads a mapping value as map[string]any.
func toMap(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	entries, ok := asEntries(value)
	if !ok {
		return nil, false
	}
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		m[e.key] = e.value
	}
	return m, true
}

// FormatErrors renders descriptors one per line.
func FormatErrors(errs []ErrorDescriptor) string {
	lines := make([]string, len(errs))
	for i, d := range errs {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}
