// Package filter compiles user-supplied expressions for narrowing lists
// of catalog items, e.g. `Year > 2020 and Watchers > 50`. Expressions use
// the expr language and evaluate against an environment built from a
// single item.
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// CompiledFilter is a pre-compiled filter ready for evaluation.
type CompiledFilter struct {
	expression string
	program    *vm.Program
}

// Compile parses and compiles a filter expression.
func Compile(expression string) (*CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // item fields are injected per evaluation
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &CompiledFilter{
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the original filter expression.
func (f *CompiledFilter) Expression() string {
	return f.expression
}

// Matches evaluates the filter against one item environment.
func (f *CompiledFilter) Matches(env map[string]any) (bool, error) {
	merged := helperFunctions()
	for k, v := range env {
		merged[k] = v
	}

	result, err := expr.Run(f.program, merged)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     "expression did not evaluate to a boolean",
		}
	}
	return matched, nil
}

// helperFunctions returns the functions available inside expressions.
func helperFunctions() map[string]any {
	env := make(map[string]any, 8)
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
	return env
}
