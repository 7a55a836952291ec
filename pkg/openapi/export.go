package openapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

const (
	// RefinementsExtension carries the cross-field rules.
	RefinementsExtension = "x-formkit-refinements"
	// MessageExtension carries the message key of a field rule.
	MessageExtension = "x-formkit-messages"
	// LabelExtension carries the translation key of a field label.
	LabelExtension = "x-formkit-label"
	// SchemaName is the component name used by Document.
	SchemaName = "Registration"
)

// Export converts schema into an OpenAPI object schema. Every field is listed
// as required because the record always carries all of them.
func Export(schema *validation.Schema) (*openapi3.Schema, error) {
	if schema == nil {
		return nil, errors.New("openapi: schema is nil")
	}

	out := openapi3.NewObjectSchema()
	out.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}

	for _, f := range model.Fields() {
		out.Properties[f.Name] = openapi3.NewSchemaRef("", propertyFor(f))
		out.Required = append(out.Required, f.Name)
	}

	for _, rule := range schema.Rules() {
		ref, ok := out.Properties[rule.Field]
		if !ok {
			return nil, fmt.Errorf("openapi: rule for unknown field %q", rule.Field)
		}
		if err := applyTag(ref.Value, rule.Tag); err != nil {
			return nil, fmt.Errorf("openapi: field %s: %w", rule.Field, err)
		}
		if key := strings.TrimSpace(rule.Message); key != "" {
			addMessage(ref.Value, rule.Tag, key)
		}
	}

	if refinements := schema.Refinements(); len(refinements) > 0 {
		ext := make([]map[string]any, 0, len(refinements))
		for _, ref := range refinements {
			ext = append(ext, map[string]any{
				"target":  ref.Target,
				"expr":    ref.Expr,
				"message": ref.Message,
			})
		}
		out.Extensions = map[string]any{RefinementsExtension: ext}
	}
	return out, nil
}

// Document wraps the exported schema in a minimal OpenAPI document with a
// single component.
func Document(ctx context.Context, schema *validation.Schema, title, version string) (*openapi3.T, error) {
	exported, err := Export(schema)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = "formkit"
	}
	if strings.TrimSpace(version) == "" {
		version = "1.0.0"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{SchemaName: openapi3.NewSchemaRef("", exported)},
		},
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

func propertyFor(f model.Field) *openapi3.Schema {
	var s *openapi3.Schema
	switch f.Type {
	case model.FieldTypeBoolean:
		s = openapi3.NewBoolSchema()
	default:
		s = openapi3.NewStringSchema()
	}
	if f.Secret {
		s.Format = "password"
		s.WriteOnly = true
	}
	s.Extensions = map[string]any{LabelExtension: f.Label}
	return s
}

// applyTag maps the validator tags the form uses onto schema keywords. Tags
// without an OpenAPI counterpart are left to the message extension.
func applyTag(s *openapi3.Schema, tag string) error {
	optional := false
	for _, part := range strings.Split(tag, ",") {
		name, param, _ := strings.Cut(strings.TrimSpace(part), "=")
		switch name {
		case "":
		case "omitempty":
			optional = true
		case "required":
			if s.MinLength < 1 {
				s.MinLength = 1
			}
		case "min":
			n, err := strconv.ParseUint(param, 10, 64)
			if err != nil {
				return fmt.Errorf("min=%s: %w", param, err)
			}
			s.MinLength = n
		case "max":
			n, err := strconv.ParseUint(param, 10, 64)
			if err != nil {
				return fmt.Errorf("max=%s: %w", param, err)
			}
			s.MaxLength = openapi3.Uint64Ptr(n)
		case "email":
			s.Format = "email"
		case "url":
			s.Format = "uri"
		case "oneof":
			for _, option := range strings.Fields(param) {
				s.Enum = append(s.Enum, option)
			}
			if optional {
				s.Enum = append(s.Enum, "")
			}
		}
	}
	return nil
}

func addMessage(s *openapi3.Schema, tag, key string) {
	messages, _ := s.Extensions[MessageExtension].(map[string]string)
	if messages == nil {
		messages = map[string]string{}
	}
	messages[strings.TrimSpace(tag)] = key
	s.Extensions[MessageExtension] = messages
}
