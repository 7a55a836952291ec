package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFields_OrderAndIsolation(t *testing.T) {
	got := Fields()
	names := make([]string, 0, len(got))
	for _, f := range got {
		names = append(names, f.Name)
	}
	want := []string{"firstName", "lastName", "email", "password", "confirmPassword", "url", "agree", "select", "role"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	got[7].Options[0] = "mutated"
	if f, _ := Lookup(FieldSelect); f.Options[0] != "opcao1" {
		t.Fatalf("Fields leaked internal options slice")
	}
}

func TestLookup(t *testing.T) {
	f, ok := Lookup(" password ")
	if !ok || !f.Secret || f.Type != FieldTypeString {
		t.Fatalf("unexpected lookup result %+v (%v)", f, ok)
	}
	if _, ok := Lookup("nickname"); ok {
		t.Fatalf("expected unknown field to miss")
	}
}

func TestDefaultsCoverEveryField(t *testing.T) {
	defaults := Defaults()
	for _, f := range Fields() {
		v, ok := defaults[f.Name]
		if !ok {
			t.Fatalf("missing default for %s", f.Name)
		}
		switch f.Type {
		case FieldTypeBoolean:
			if v != false {
				t.Fatalf("%s default = %v, want false", f.Name, v)
			}
		default:
			if v != "" {
				t.Fatalf("%s default = %v, want empty string", f.Name, v)
			}
		}
	}
}

func TestRecordAccessors(t *testing.T) {
	r := Record{FieldEmail: "a@b.com", FieldAgree: true, FieldFirstName: 42}
	if v, ok := r.String(FieldEmail); !ok || v != "a@b.com" {
		t.Fatalf("String(email) = %q, %v", v, ok)
	}
	if _, ok := r.String(FieldFirstName); ok {
		t.Fatalf("String on a non-string value should report false")
	}
	if v, ok := r.Bool(FieldAgree); !ok || !v {
		t.Fatalf("Bool(agree) = %v, %v", v, ok)
	}

	clone := r.Clone()
	clone[FieldEmail] = "x@y.com"
	if r[FieldEmail] != "a@b.com" {
		t.Fatalf("Clone shares storage with the original")
	}
}

func TestErrorMap(t *testing.T) {
	var nilMap ErrorMap
	if got := nilMap.Clone(); got == nil || len(got) != 0 {
		t.Fatalf("Clone of nil map = %#v, want empty map", got)
	}

	m := ErrorMap{}
	m.Add(FieldEmail, "  ")
	m.Add(FieldEmail, "Email is required")
	m.Add(FieldEmail, "Invalid email address")
	if diff := cmp.Diff(ErrorMap{FieldEmail: {"Email is required", "Invalid email address"}}, m); diff != "" {
		t.Fatalf("error map mismatch (-want +got):\n%s", diff)
	}

	clone := m.Clone()
	clone[FieldEmail][0] = "changed"
	if m[FieldEmail][0] != "Email is required" {
		t.Fatalf("Clone shares message slices")
	}
}

func TestNormalizedRecordMap(t *testing.T) {
	n := NormalizedRecord{FirstName: "Ana", Agree: true, Role: RoleUser}
	m := n.Map()
	if len(m) != len(Fields()) {
		t.Fatalf("Map has %d keys, want %d", len(m), len(Fields()))
	}
	if m[FieldFirstName] != "Ana" || m[FieldAgree] != true || m[FieldRole] != "user" {
		t.Fatalf("unexpected map %v", m)
	}
}
