package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	plain := NewNotFound("blog not found")
	assert.Equal(t, "blog not found", plain.Error())

	wrapped := NewStore("failed to fetch posts", errors.New("disk full"))
	assert.Equal(t, "failed to fetch posts: disk full", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("key not found")
	err := NewStore("lookup failed", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(fmt.Errorf("handler: %w", err), cause))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{NotFound, http.StatusNotFound},
		{Unauthorized, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{Validation, http.StatusBadRequest},
		{Store, http.StatusInternalServerError},
		{Unknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := &Error{Kind: tt.kind}
		assert.Equal(t, tt.want, err.StatusCode())
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Forbidden, KindOf(NewForbidden("not yours")))
	assert.Equal(t, Forbidden, KindOf(fmt.Errorf("wrapped: %w", NewForbidden("not yours"))))
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.Equal(t, Unknown, KindOf(nil))
}

func TestFieldsOf(t *testing.T) {
	fields := []FieldError{{Field: "email", Rule: "unique", Message: "already registered"}}
	err := NewValidation(fields)

	assert.Equal(t, fields, FieldsOf(err))
	assert.Nil(t, FieldsOf(errors.New("plain")))
}
