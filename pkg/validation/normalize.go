package validation

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Normalize is the default transform: both password fields upper-cased, url
// lower-cased, everything else copied. It is cosmetic, not a hashing step.
func Normalize(record model.Record) model.NormalizedRecord {
	str := func(name string) string {
		v, _ := record.String(name)
		return v
	}
	agree, _ := record.Bool(model.FieldAgree)

	return model.NormalizedRecord{
		FirstName:       str(model.FieldFirstName),
		LastName:        str(model.FieldLastName),
		Email:           str(model.FieldEmail),
		Password:        strings.ToUpper(str(model.FieldPassword)),
		ConfirmPassword: strings.ToUpper(str(model.FieldConfirmPassword)),
		URL:             strings.ToLower(str(model.FieldURL)),
		Agree:           agree,
		Select:          str(model.FieldSelect),
		Role:            str(model.FieldRole),
	}
}
