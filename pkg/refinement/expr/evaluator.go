package expr

import (
	"fmt"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-formkit/pkg/refinement"
)

// Evaluator compiles refinement rules with expr-lang/expr and caches the
// resulting programs by rule text.
//
// Rules read record values by field name (`password == confirmPassword`) and
// caller extras through the `extras` map (`extras.minAge <= age`). Any
// expression that yields a bool is accepted: comparisons, `&&`, `||`, `!`,
// `len(x)`, `in`, and the rest of the expr-lang builtins.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

var _ refinement.Evaluator = (*Evaluator)(nil)

func New() *Evaluator {
	return &Evaluator{programs: make(map[string]*vm.Program)}
}

func (e *Evaluator) Eval(target, rule string, ctx refinement.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}

	program, err := e.compile(trimmed)
	if err != nil {
		return false, fmt.Errorf("%w: %s: compile %q: %v", refinement.ErrEvaluator, target, trimmed, err)
	}

	out, err := exprlang.Run(program, environment(ctx))
	if err != nil {
		return false, fmt.Errorf("%w: %s: run %q: %v", refinement.ErrEvaluator, target, trimmed, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("%w: %s: %q returned %T, want bool", refinement.ErrEvaluator, target, trimmed, out)
	}
	return ok, nil
}

// Compile validates a rule ahead of time so configuration errors surface at
// schema construction instead of on the first keystroke.
func (e *Evaluator) Compile(rule string) error {
	_, err := e.compile(strings.TrimSpace(rule))
	return err
}

func (e *Evaluator) compile(rule string) (*vm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[rule]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if program, ok := e.programs[rule]; ok {
		return program, nil
	}

	program, err := exprlang.Compile(rule, exprlang.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	e.programs[rule] = program
	return program, nil
}

func environment(ctx refinement.Context) map[string]any {
	env := make(map[string]any, len(ctx.Values)+1)
	for key, value := range ctx.Values {
		env[key] = value
	}
	extras := ctx.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	env["extras"] = extras
	return env
}
