// Package validation checks user supplied values (configuration files,
// query parameters) against validator struct tags and reports the first
// failure in a readable form.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	MaxNameLength = 1024
	MaxDepthLimit = 10000
	MinBatchSize  = 1
	MaxBatchSize  = 10_000_000
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)
}

// fieldName reports fields by their yaml, json or form key so messages
// match what the user actually wrote.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"yaml", "json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// PathRequest is a critical-path query. To may be empty, meaning "the
// heaviest path of any length from From".
type PathRequest struct {
	From     string `form:"from" json:"from" validate:"required,max=1024"`
	To       string `form:"to" json:"to" validate:"omitempty,max=1024"`
	MaxDepth int    `form:"max_depth" json:"max_depth" validate:"omitempty,min=1,max=10000"`
}

// Struct validates v using its validate tags
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	return formatValidationError(validate.Struct(v))
}

// ValidatePathRequest validates a path query
func ValidatePathRequest(req *PathRequest) error {
	if req == nil {
		return errors.New("path request cannot be nil")
	}
	if err := Struct(req); err != nil {
		return err
	}
	if err := ValidateName(req.From); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	if req.To != "" {
		if err := ValidateName(req.To); err != nil {
			return fmt.Errorf("to: %w", err)
		}
	}
	return nil
}

// ValidateBatchSize validates an importer batch size
func ValidateBatchSize(size int) error {
	if size < MinBatchSize {
		return fmt.Errorf("batch size must be at least %d, got %d", MinBatchSize, size)
	}
	if size > MaxBatchSize {
		return fmt.Errorf("batch size must not exceed %d, got %d", MaxBatchSize, size)
	}
	return nil
}

// ValidateName validates a node name given on the command line
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name %q exceeds maximum length of %d characters", name, MaxNameLength)
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("name %q contains whitespace", name)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %v", field, param, e.Value())
		case "hostname_port":
			return fmt.Errorf("%s: must be host:port, got %v", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
