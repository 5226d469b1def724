package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports which invariant a profile record violates. Manual
// import recovers from it by re-prompting; it is never surfaced as a hard
// failure.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid profile: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid profile: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// dateLayouts are the accepted date formats for experience and education
// entries, most specific first.
var dateLayouts = []string{"2006-01", "2006"}

// ParseDate parses a "YYYY-MM" or "YYYY" date string. The second return is
// false for empty strings and open-ended markers like "present".
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "present") {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Validate checks the profile invariants: required name/email, non-empty
// title/company on experience entries, non-empty degree/school on education
// entries, and chronological ordering of experience dates when both parse.
func (p *Profile) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		var invalid validator.ValidationErrors
		field := "profile"
		if ok := asValidationErrors(err, &invalid); ok && len(invalid) > 0 {
			field = invalid[0].Namespace()
		}
		return &ValidationError{Field: field, Message: "required field missing or malformed", Cause: err}
	}

	for i, exp := range p.Experience {
		start, okStart := ParseDate(exp.StartDate)
		end, okEnd := ParseDate(exp.EndDate)
		if okStart && okEnd && start.After(end) {
			return &ValidationError{
				Field:   fmt.Sprintf("experience[%d]", i),
				Message: fmt.Sprintf("start date %s is after end date %s", exp.StartDate, exp.EndDate),
			}
		}
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if errs, ok := err.(validator.ValidationErrors); ok {
		*target = errs
		return true
	}
	return false
}
