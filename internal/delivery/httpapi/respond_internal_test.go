package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/lingua/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errBadRequest, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", service.ErrInvalidInput), http.StatusBadRequest},
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrCourseNotFound, http.StatusNotFound},
		{service.ErrUserProgressNotFound, http.StatusNotFound},
		{service.ErrHeartsFull, http.StatusConflict},
		{service.ErrNotEnoughPoints, http.StatusConflict},
		{service.ErrCourseEmpty, http.StatusConflict},
		{fmt.Errorf("upsert: %w", service.ErrConflict), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestParseIdentity(t *testing.T) {
	_, err := parseIdentity("Basic abc", []byte("s"))
	assert.ErrorIs(t, err, errInvalidToken)

	_, err = parseIdentity("Bearer ", []byte("s"))
	assert.ErrorIs(t, err, errInvalidToken)
}
