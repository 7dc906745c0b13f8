// Package rules holds ozzo-validation rules shared by the services.
package rules

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NotBlank rejects strings that are empty after trimming whitespace.
// Pointers are dereferenced first; a nil pointer is blank.
var NotBlank = validation.By(func(value interface{}) error {
	value, _ = validation.Indirect(value)
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
})
