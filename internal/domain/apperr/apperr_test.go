package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{name: "unauthenticated", err: Unauthenticated("token expired"), kind: ErrUnauthenticated},
		{name: "forbidden", err: Forbidden("only officers"), kind: ErrForbidden},
		{name: "validation", err: Validation("email %s already registered", "a@b.c"), kind: ErrValidation},
		{name: "not found", err: NotFound("cooperative not found"), kind: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
			assert.Equal(t, tt.err.Error(), Message(wrapped, "fallback"))
		})
	}
}

func TestMessageFallsBackForPlainErrors(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("boom"), "internal server error"))
}

func TestValidationFormatsMessage(t *testing.T) {
	err := Validation("email %s already registered", "a@b.c")
	assert.Equal(t, "email a@b.c already registered", err.Error())
	assert.False(t, errors.Is(err, ErrNotFound))
}
