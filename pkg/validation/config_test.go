package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("logging")
	cv.Required("level", "")

	if !cv.HasErrors() {
		t.Error("Expected error for empty required field")
	}

	cv2 := NewConfigValidator("logging")
	cv2.Required("level", "info")

	if cv2.HasErrors() {
		t.Error("Expected no error for non-empty required field")
	}
}

func TestConfigValidator_RangeInt(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		expectErr bool
	}{
		{"below minimum", 0, true},
		{"at minimum", 1, false},
		{"in range", 100, false},
		{"at maximum", 10000, false},
		{"above maximum", 10001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("pagerank")
			cv.RangeInt("max_iterations", tt.value, 1, 10000)

			if cv.HasErrors() != tt.expectErr {
				t.Errorf("RangeInt(%d) error = %v, want %v", tt.value, cv.HasErrors(), tt.expectErr)
			}
		})
	}
}

func TestConfigValidator_RangeFloat(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		expectErr bool
	}{
		{"zero", 0, false},
		{"typical damping", 0.85, false},
		{"one", 1, false},
		{"negative", -0.1, true},
		{"above one", 1.01, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("pagerank")
			cv.RangeFloat("damping_factor", tt.value, 0, 1)

			if cv.HasErrors() != tt.expectErr {
				t.Errorf("RangeFloat(%v) error = %v, want %v", tt.value, cv.HasErrors(), tt.expectErr)
			}
		})
	}
}

func TestConfigValidator_PositiveFloat(t *testing.T) {
	for _, bad := range []float64{0, -1e-6, math.NaN(), math.Inf(1)} {
		cv := NewConfigValidator("hits")
		cv.PositiveFloat("tolerance", bad)
		if !cv.HasErrors() {
			t.Errorf("Expected error for %v", bad)
		}
	}

	cv := NewConfigValidator("hits")
	cv.PositiveFloat("tolerance", 1e-6).Finite("tolerance", 1e-6)
	if cv.HasErrors() {
		t.Errorf("Unexpected errors: %v", cv.Errors())
	}
}

func TestConfigValidator_RangeDuration(t *testing.T) {
	cv := NewConfigValidator("engine")
	cv.RangeDuration("run_timeout", 0, 0, time.Hour)
	cv.RangeDuration("run_timeout", 2*time.Hour, 0, time.Hour)

	if len(cv.Errors()) != 1 {
		t.Errorf("Expected 1 error, got %d", len(cv.Errors()))
	}
}

func TestConfigValidator_OneOf(t *testing.T) {
	allowed := []string{"debug", "info", "warn", "error"}

	cv := NewConfigValidator("logging")
	cv.OneOf("level", "info", allowed)
	if cv.HasErrors() {
		t.Error("Expected no error for allowed value")
	}

	cv.OneOf("level", "verbose", allowed)
	if !cv.HasErrors() {
		t.Error("Expected error for disallowed value")
	}
	if !strings.Contains(cv.Validate().Error(), `logging.level: value "verbose"`) {
		t.Errorf("Unexpected message: %v", cv.Validate())
	}
}

func TestConfigValidator_CustomWraps(t *testing.T) {
	sentinel := errors.New("not writable")

	cv := NewConfigValidator("metrics")
	cv.Custom("textfile", func() error { return sentinel })

	if !errors.Is(cv.Validate(), sentinel) {
		t.Errorf("Expected wrapped sentinel, got %v", cv.Validate())
	}
}

func TestConfigValidator_When(t *testing.T) {
	cv := NewConfigValidator("metrics")
	cv.When(false, func(v *ConfigValidator) { v.Required("textfile", "") })
	if cv.HasErrors() {
		t.Error("Validations should not run when condition is false")
	}

	cv.When(true, func(v *ConfigValidator) { v.Required("textfile", "") })
	if !cv.HasErrors() {
		t.Error("Validations should run when condition is true")
	}
}

func TestConfigValidator_ValidateJoinsErrors(t *testing.T) {
	cv := NewConfigValidator("repair")
	cv.Positive("max_iterations", 0).RangeInt("max_iterations", 0, 1, 10)

	err := cv.Validate()
	if err == nil {
		t.Fatal("Expected error")
	}
	if got := strings.Count(err.Error(), "repair.max_iterations"); got != 2 {
		t.Errorf("Expected both errors in message, got %q", err.Error())
	}

	if NewConfigValidator("empty").Validate() != nil {
		t.Error("Expected nil error when nothing failed")
	}
}

type fakeSection struct{ err error }

func (f *fakeSection) Validate() error { return f.err }

func TestValidateAll(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	err := ValidateAll(&fakeSection{}, &fakeSection{err: first}, &fakeSection{err: second})
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Errorf("Expected both section errors, got %v", err)
	}

	if err := ValidateAll(&fakeSection{}, nil); err == nil {
		t.Error("Expected error for nil section")
	}
	if err := ValidateAll(&fakeSection{}); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}

func TestDefaultOr(t *testing.T) {
	if DefaultOr("", "info") != "info" {
		t.Error("Expected default for zero string")
	}
	if DefaultOr(5, 200) != 5 {
		t.Error("Expected non-zero value to be kept")
	}
}
