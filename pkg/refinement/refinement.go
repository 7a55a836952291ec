package refinement

import "errors"

// ErrEvaluator marks rules an Evaluator could not compile or run.
var ErrEvaluator = errors.New("refinement: evaluator failure")

// Evaluator decides whether a whole-record rule holds. rule is an expression
// over the current values; target is the field the outcome is reported on.
type Evaluator interface {
	Eval(target, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the record under
// validation while Extras lets callers inject data that is not part of the
// record, reachable from rules through the `extras` identifier.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(target, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(target, rule string, ctx Context) (bool, error) {
	return fn(target, rule, ctx)
}
