package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "layer %s: negative height", "equity")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	expected := "INVALID_CONFIG: layer equity: negative height"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidFormat, cause, "decode chart")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "x"), ErrCodeInvalidInput, true},
		{"different code", New(ErrCodeInvalidInput, "x"), ErrCodeNotFound, false},
		{"wrapped by fmt", fmt.Errorf("ctx: %w", New(ErrCodeInvalidPath, "x")), ErrCodeInvalidPath, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("import: %w", New(ErrCodeFileNotFound, "chart.toml not found"))
	if got := GetCode(err); got != ErrCodeFileNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeFileNotFound)
	}
	if got := UserMessage(err); got != "chart.toml not found" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestJoin(t *testing.T) {
	if err := Join(ErrCodeInvalidConfig, "invalid chart"); err != nil {
		t.Errorf("Join() with no errors = %v, want nil", err)
	}
	if err := Join(ErrCodeInvalidConfig, "invalid chart", nil, nil); err != nil {
		t.Errorf("Join() with nil errors = %v, want nil", err)
	}

	a, b := errors.New("a"), errors.New("b")
	err := Join(ErrCodeInvalidConfig, "invalid chart", a, nil, b)
	if !Is(err, ErrCodeInvalidConfig) {
		t.Errorf("Join() code = %v", GetCode(err))
	}
	if !errors.Is(err, a) || !errors.Is(err, b) {
		t.Error("Join() should wrap every problem")
	}
}
