// Package validation implements the form schema: an ordered list of per-field
// rules checked with go-playground/validator, followed by record-level
// refinements evaluated through pkg/refinement, followed by a pure transform
// into model.NormalizedRecord.
//
// Every rule runs on every pass. Violations accumulate into a single
// *ValidationFailure keyed by field name so renderers can show all current
// problems at once; a field may carry several messages. Values of the wrong
// kind are reported as a "type" violation on their field and skip that field's
// remaining rules. Only defects in the rules themselves (unknown validator
// tags, refinements that do not compile) are returned as ErrInvalidRule.
package validation
