// Package model defines the data shared by the validator, the controller and
// render collaborators: the fixed field set, the untyped Record under edit,
// the NormalizedRecord emitted after a successful validation pass and the
// ErrorMap keyed by field name. Field labels are i18n keys; renderers resolve
// them through pkg/i18n before display.
package model
