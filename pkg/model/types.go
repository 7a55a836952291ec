package model

import "strings"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeEnum    FieldType = "enum"
)

// Canonical field names. They double as JSON/YAML keys and error map keys.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldURL             = "url"
	FieldAgree           = "agree"
	FieldSelect          = "select"
	FieldRole            = "role"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Roles lists the accepted role literals.
var Roles = []string{RoleAdmin, RoleUser}

// SelectOptions is the fixed option set offered by the select input.
var SelectOptions = []string{"opcao1", "opcao2", "opcao3"}

// Field describes one input of the form.
type Field struct {
	Name    string    `json:"name"`
	Type    FieldType `json:"type"`
	Label   string    `json:"label,omitempty"`
	Secret  bool      `json:"secret,omitempty"`
	Options []string  `json:"options,omitempty"`
}

var fields = []Field{
	{Name: FieldFirstName, Type: FieldTypeString, Label: "field.firstName"},
	{Name: FieldLastName, Type: FieldTypeString, Label: "field.lastName"},
	{Name: FieldEmail, Type: FieldTypeString, Label: "field.email"},
	{Name: FieldPassword, Type: FieldTypeString, Label: "field.password", Secret: true},
	{Name: FieldConfirmPassword, Type: FieldTypeString, Label: "field.confirmPassword", Secret: true},
	{Name: FieldURL, Type: FieldTypeString, Label: "field.url"},
	{Name: FieldAgree, Type: FieldTypeBoolean, Label: "field.agree"},
	{Name: FieldSelect, Type: FieldTypeEnum, Label: "field.select", Options: SelectOptions},
	{Name: FieldRole, Type: FieldTypeEnum, Label: "field.role", Options: Roles},
}

// Fields returns the fixed, ordered field set. The returned slice is a copy.
func Fields() []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Options = append([]string(nil), f.Options...)
		out[i] = f
	}
	return out
}

// Lookup returns the field definition for name.
func Lookup(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, f := range fields {
		if f.Name == name {
			f.Options = append([]string(nil), f.Options...)
			return f, true
		}
	}
	return Field{}, false
}

// Record is the in-progress, unvalidated set of field values. Values are kept
// untyped so a collaborator handing over the wrong kind is reported as a rule
// violation instead of failing to compile or panicking.
type Record map[string]any

// Defaults returns a fresh record holding the mount-time values.
func Defaults() Record {
	return Record{
		FieldFirstName:       "",
		FieldLastName:        "",
		FieldEmail:           "",
		FieldPassword:        "",
		FieldConfirmPassword: "",
		FieldURL:             "",
		FieldAgree:           false,
		FieldSelect:          "",
		FieldRole:            "",
	}
}

// Clone returns a shallow copy; all supported values are scalars.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the value for name when it holds a string.
func (r Record) String(name string) (string, bool) {
	v, ok := r[name].(string)
	return v, ok
}

// Bool returns the value for name when it holds a bool.
func (r Record) Bool(name string) (bool, bool) {
	v, ok := r[name].(bool)
	return v, ok
}

// NormalizedRecord is the output of a successful validation pass.
type NormalizedRecord struct {
	FirstName       string `json:"firstName" yaml:"firstName"`
	LastName        string `json:"lastName" yaml:"lastName"`
	Email           string `json:"email" yaml:"email"`
	Password        string `json:"password" yaml:"password"`
	ConfirmPassword string `json:"confirmPassword" yaml:"confirmPassword"`
	URL             string `json:"url" yaml:"url"`
	Agree           bool   `json:"agree" yaml:"agree"`
	Select          string `json:"select" yaml:"select"`
	Role            string `json:"role" yaml:"role"`
}

// Map flattens the record into field-name keyed values.
func (n NormalizedRecord) Map() map[string]any {
	return map[string]any{
		FieldFirstName:       n.FirstName,
		FieldLastName:        n.LastName,
		FieldEmail:           n.Email,
		FieldPassword:        n.Password,
		FieldConfirmPassword: n.ConfirmPassword,
		FieldURL:             n.URL,
		FieldAgree:           n.Agree,
		FieldSelect:          n.Select,
		FieldRole:            n.Role,
	}
}

// ErrorMap maps a field name to its current violation messages. A missing key
// means the field has no error.
type ErrorMap map[string][]string

// Clone deep copies the map.
func (m ErrorMap) Clone() ErrorMap {
	if m == nil {
		return ErrorMap{}
	}
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Add appends message to field, skipping blanks.
func (m ErrorMap) Add(field, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	m[field] = append(m[field], message)
}
