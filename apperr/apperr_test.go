package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
	}{
		{"bad request", BadRequest("nope"), http.StatusBadRequest},
		{"unauthorized", Unauthorized(), http.StatusUnauthorized},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"constraint", Constraint("duplicate"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", Unauthorized())
	assert.Equal(t, http.StatusUnauthorized, StatusOf(wrapped))
}
