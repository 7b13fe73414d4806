package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

func TestEvaluatorPerson(t *testing.T) {
	s := MustNormalize(personDescription)
	ev := NewEvaluator()

	errs := ev.Errors(s, map[string]any{}, nil, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Path)
	assert.Equal(t, "person", s.Name)

	assert.False(t, ev.Match(s, nil, nil))
	assert.True(t, ev.Match(s, map[string]any{"name": "joe"}, nil))

	err := ev.Check(s, map[string]any{"name": 7}, nil)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 1)
	assert.True(t, errors.Is(err, serrors.New("S100")))
	assert.Contains(t, err.Error(), "S100")

	assert.NoError(t, ev.Check(s, map[string]any{"name": "joe"}, nil))
}

func TestEvaluatorNestedPaths(t *testing.T) {
	s := MustNormalize(map[string]any{
		"employees": map[string]any{
			"isArray": true,
			"schema": map[string]any{
				"name": []any{"value != nil"},
			},
		},
		"labels": map[string]any{
			"isDict": true,
			"item":   []any{"value != ''"},
		},
	})

	doc := map[string]any{
		"employees": []any{
			map[string]any{"name": "a"},
			map[string]any{},
		},
		"labels": map[string]any{"b": "", "a": "x"},
	}

	errs := NewEvaluator().Errors(s, doc, doc, nil)
	require.Len(t, errs, 2)
	assert.Equal(t, "employees.1.name", errs[0].Path)
	assert.Equal(t, "labels.b", errs[1].Path)
	assert.Equal(t, "employees.1.name: rule \"value != nil\" failed\nlabels.b: rule \"value != ''\" failed", FormatErrors(errs))
}

func TestEvaluatorRootVisibleToRules(t *testing.T) {
	s := MustNormalize(map[string]any{
		"password": []any{},
		"confirm":  []any{"value == root.password"},
	})

	ev := NewEvaluator()
	doc := map[string]any{"password": "x", "confirm": "x"}
	assert.True(t, ev.Match(s, doc, doc))

	doc["confirm"] = "y"
	assert.False(t, ev.Match(s, doc, doc))
}

func TestEvaluatorRuleMessageAndRuntimeError(t *testing.T) {
	s := &Schema{Kind: Scalar, Rules: []Rule{
		Func("positive", func(v, _ any) bool {
			n, ok := v.(int)
			return ok && n > 0
		}).WithMessage("must be positive"),
		MustExpr("value.missing > 1"),
	}}

	errs := NewEvaluator().Errors(s, -1, nil, nil)
	require.Len(t, errs, 2)
	assert.Equal(t, "must be positive", errs[0].Message)
	assert.Equal(t, "positive", errs[0].Rule)
	assert.Error(t, errs[1].Err)
	assert.Equal(t, serrors.New("S102").Message, errs[1].Message)
}

func TestEvaluatorFailFast(t *testing.T) {
	s := MustNormalize([]any{"false", "false"})

	assert.Len(t, NewEvaluator().Errors(s, nil, nil, nil), 2)
	assert.Len(t, (&RuleEvaluator{FailFast: true}).Errors(s, nil, nil, nil), 1)
}

func TestEvaluatorAppendsToAccumulator(t *testing.T) {
	s := MustNormalize([]any{"false"})
	acc := []ErrorDescriptor{{Path: "earlier"}}

	got := NewEvaluator().Errors(s, 1, nil, acc)
	require.Len(t, got, 2)
	assert.Equal(t, "earlier", got[0].Path)
}
