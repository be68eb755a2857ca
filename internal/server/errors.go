package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/content-toolkit/internal/content"
	"github.com/jonathan/content-toolkit/internal/profile"
	"github.com/jonathan/content-toolkit/internal/progress"
	"github.com/jonathan/content-toolkit/internal/reset"
	"github.com/jonathan/content-toolkit/internal/storage"
)

// maxBodyBytes bounds request bodies; the largest legitimate one is the
// generated copy blob.
const maxBodyBytes = 1 << 20

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		stepErr       *progress.InvalidStepIDError
		itemErr       *content.InvalidContentItemError
		stageErr      *content.InvalidStageError
		profileErr    *profile.InvalidProfileError
		notFoundErr   *content.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &stepErr),
		errors.As(err, &itemErr),
		errors.As(err, &stageErr),
		errors.As(err, &profileErr),
		errors.Is(err, reset.ErrConfirmationRequired):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.Is(err, progress.ErrNotLoaded),
		errors.Is(err, content.ErrNotLoaded),
		errors.Is(err, profile.ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// failure writes err with the status chosen by HTTPStatus.
func (s *Server) failure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}

// mutationResponse writes body for a mutation that returned err. A storage
// write failure does not fail the request: the change is live in memory, so
// body is still returned with a "warning" field.
func (s *Server) mutationResponse(w http.ResponseWriter, status int, body map[string]any, err error) {
	if err != nil && !storage.IsWriteError(err) {
		s.failure(w, err)
		return
	}
	if err != nil {
		s.metrics.writeFailures.Inc()
		s.logger.Warn("change applied but not saved", zap.Error(err))
		body["warning"] = "change applied but not saved: " + err.Error()
	}
	s.jsonResponse(w, status, body)
}

// decodeBody decodes a JSON request body into dst. An empty body is
// accepted only when allowEmpty is set.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}
