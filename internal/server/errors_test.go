package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/content-toolkit/internal/content"
	"github.com/jonathan/content-toolkit/internal/profile"
	"github.com/jonathan/content-toolkit/internal/progress"
	"github.com/jonathan/content-toolkit/internal/reset"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "completed", Message: "is required"}
	assert.Equal(t, "validation error: completed - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidStepID", &progress.InvalidStepIDError{StepID: 10}, http.StatusBadRequest},
		{"InvalidContentItem", &content.InvalidContentItemError{Field: "title", Message: "must not be empty"}, http.StatusBadRequest},
		{"InvalidStage", &content.InvalidStageError{Stage: "nurture"}, http.StatusBadRequest},
		{"InvalidProfile", &profile.InvalidProfileError{Field: "name", Message: "too long"}, http.StatusBadRequest},
		{"ConfirmationRequired", reset.ErrConfirmationRequired, http.StatusBadRequest},
		{"NotFound", &content.NotFoundError{ID: "x"}, http.StatusNotFound},
		{"wrapped NotFound", fmt.Errorf("remove: %w", &content.NotFoundError{ID: "x"}), http.StatusNotFound},
		{"NotLoaded", content.ErrNotLoaded, http.StatusServiceUnavailable},
		{"reset partial", &reset.Error{ClearErr: errors.New("disk")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
