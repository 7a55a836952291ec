package form

import (
	"github.com/goliatone/go-formkit/pkg/model"
)

// State tracks the values under edit and the errors of the latest validation
// pass. It is intentionally small; the Controller decides when it changes.
type State struct {
	values model.Record
	errors model.ErrorMap
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill model.Record, errs model.ErrorMap) *State {
	return &State{
		values: cloneValues(prefill),
		errors: errs.Clone(),
	}
}

// Values returns a copy of the current values.
func (s *State) Values() model.Record {
	if s == nil {
		return nil
	}
	return cloneValues(s.values)
}

// Errors returns a copy of the current error map.
func (s *State) Errors() model.ErrorMap {
	if s == nil {
		return nil
	}
	return s.errors.Clone()
}

// ErrorsFor returns the messages attached to field.
func (s *State) ErrorsFor(field string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return append([]string(nil), s.errors[field]...)
}

// GetValue returns the value stored for field.
func (s *State) GetValue(field string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[field]
	return v, ok
}

// SetValue stores value for field.
func (s *State) SetValue(field string, value any) {
	if s.values == nil {
		s.values = make(model.Record)
	}
	s.values[field] = value
}

// SetErrors replaces the error map.
func (s *State) SetErrors(errs model.ErrorMap) {
	s.errors = errs.Clone()
}

func cloneValues(src model.Record) model.Record {
	if len(src) == 0 {
		return make(model.Record)
	}
	return src.Clone()
}
