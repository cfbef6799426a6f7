package validation

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxIdentifierLength = 256
	MaxLabelLength      = 256
)

func init() {
	validate = validator.New()
}

// NodeElement is a node as supplied by the editing collaborator.
type NodeElement struct {
	ID    string `json:"id" validate:"required,max=256"`
	Label string `json:"label" validate:"max=256"`
}

// EdgeElement is an edge as supplied by the editing collaborator. Weight and
// Sign are left untyped; the graph builder coerces them exactly once.
type EdgeElement struct {
	ID       string `json:"id" validate:"max=256"`
	Source   string `json:"source" validate:"required,max=256"`
	Target   string `json:"target" validate:"required,max=256"`
	Weight   any    `json:"weight"`
	Sign     any    `json:"sign"`
	Directed bool   `json:"directed"`
}

// ValidateNodeElement validates a node element before it enters a snapshot.
func ValidateNodeElement(el *NodeElement) error {
	if el == nil {
		return errors.New("node element cannot be nil")
	}

	if err := validate.Struct(el); err != nil {
		return formatValidationError(err)
	}

	if err := ValidateIdentifier(el.ID); err != nil {
		return fmt.Errorf("ID: %w", err)
	}

	return nil
}

// ValidateEdgeElement validates an edge element before it enters a snapshot.
func ValidateEdgeElement(el *EdgeElement) error {
	if el == nil {
		return errors.New("edge element cannot be nil")
	}

	if err := validate.Struct(el); err != nil {
		return formatValidationError(err)
	}

	if el.ID != "" {
		if err := ValidateIdentifier(el.ID); err != nil {
			return fmt.Errorf("ID: %w", err)
		}
	}
	if err := ValidateIdentifier(el.Source); err != nil {
		return fmt.Errorf("Source: %w", err)
	}
	if err := ValidateIdentifier(el.Target); err != nil {
		return fmt.Errorf("Target: %w", err)
	}

	return nil
}

// ValidateIdentifier rejects empty identifiers, identifiers that exceed
// MaxIdentifierLength and identifiers containing control characters.
func ValidateIdentifier(id string) error {
	if id == "" {
		return errors.New("identifier cannot be empty")
	}
	if len(id) > MaxIdentifierLength {
		return fmt.Errorf("identifier exceeds maximum length of %d characters", MaxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return fmt.Errorf("identifier %q contains control characters", id)
		}
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
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
