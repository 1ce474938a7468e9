package ds

import (
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Record is implemented by every persisted catalog entity.
type Record interface {
	TableName() string
	Key() uint
}

// Defaulter fills server-assigned defaults before a write.
type Defaulter interface {
	ApplyDefaults(now time.Time)
}

// FieldViolation is a single failed validation rule.
type FieldViolation struct {
	Field string
	Rule  string
}

// ValidationError lists every rule a record failed.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	v := e.Violations[0]
	msg := "validation failed: " + v.Field + " " + v.Rule
	if len(e.Violations) > 1 {
		msg += " (and more)"
	}
	return msg
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the `validate` tags of a record.
func Validate(rec any) error {
	err := instance().Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Violations: make([]FieldViolation, 0, len(verrs))}
	for _, fe := range verrs {
		out.Violations = append(out.Violations, FieldViolation{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
