package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrForbidden", ErrForbidden},
		{"ErrValidation", ErrValidation},
		{"ErrInvalidState", ErrInvalidState},
		{"ErrConflict", ErrConflict},
		{"ErrNotImplemented", ErrNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrorf_WrapsSentinel(t *testing.T) {
	err := Errorf(ErrInvalidState, "meeting %s already concluded", "m-1")

	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "invalid state: meeting m-1 already concluded", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"not found", ErrNotFound, KindNotFound},
		{"forbidden", Errorf(ErrForbidden, "x"), KindForbidden},
		{"validation", Errorf(ErrValidation, "x"), KindValidation},
		{"invalid state", Errorf(ErrInvalidState, "x"), KindInvalidState},
		{"conflict wrapped twice", fmt.Errorf("adding party: %w", Errorf(ErrConflict, "x")), KindConflict},
		{"infrastructure", errors.New("disk full"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
