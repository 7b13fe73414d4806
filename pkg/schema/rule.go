package schema

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

// Rule constrains a single schema node's value.
type Rule struct {
	// Name identifies the rule in error descriptors.
	Name string

	// Message is reported when the rule fails. Defaults to a generic text.
	Message string

	eval func(value, root any) (bool, error)
}

// Func builds a rule from a Go predicate.
func Func(name string, fn func(value, root any) bool) Rule {
	return Rule{
		Name: name,
		eval: func(value, root any) (bool, error) {
			return fn(value, root), nil
		},
	}
}

// Expr compiles an expr-lang expression into a rule. The expression sees
// `value` and `root` and must evaluate to a boolean.
func Expr(src string) (Rule, error) {
	program, err := expr.Compile(src,
		expr.Env(map[string]any{"value": nil, "root": nil}),
		expr.AsBool(),
	)
	if err != nil {
		return Rule{}, serrors.New("S004").WithPath(src).Wrap(err)
	}
	return Rule{
		Name: src,
		eval: func(value, root any) (bool, error) {
			return runProgram(program, value, root)
		},
	}, nil
}

// MustExpr is like Expr but panics if the expression does not compile.
func MustExpr(src string) Rule {
	r, err := Expr(src)
	if err != nil {
		panic(err)
	}
	return r
}

// WithMessage returns a copy of the rule reporting msg on failure.
func (r Rule) WithMessage(msg string) Rule {
	r.Message = msg
	return r
}

// Eval runs the rule. A rule without a predicate always passes.
func (r Rule) Eval(value, root any) (bool, error) {
	if r.eval == nil {
		return true, nil
	}
	return r.eval(value, root)
}

func runProgram(program *vm.Program, value, root any) (bool, error) {
	out, err := expr.Run(program, map[string]any{"value": value, "root": root})
	if err != nil {
		return false, err
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("expression returned %T, want bool", out)
	}
	return ok, nil
}

// toRule converts one entry of a rule list.
func toRule(raw any, path string) (Rule, error) {
	switch r := raw.(type) {
	case Rule:
		return r, nil
	case *Rule:
		if r == nil {
			break
		}
		return *r, nil
	case string:
		return Expr(r)
	case func(value, root any) bool:
		return Func(fmt.Sprintf("%s#func", path), r), nil
	case func(value any) bool:
		return Func(fmt.Sprintf("%s#func", path), func(v, _ any) bool { return r(v) }), nil
	}
	return Rule{}, serrors.New("S003").WithPath(path).Wrap(fmt.Errorf("unsupported rule type %T", raw))
}
