// Package reset wipes all toolkit state behind an explicit confirmation.
package reset

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrConfirmationRequired is returned when ResetAll is called without
// confirmation. Nothing is touched in that case.
var ErrConfirmationRequired = errors.New("reset requires explicit confirmation")

// Clearer removes every persisted key the toolkit owns.
type Clearer interface {
	ClearAll() error
}

// Resetter restores one model to its initial state.
type Resetter interface {
	Reset() error
}

// Error reports a reset whose in-memory part completed but whose persisted
// part did not. The running session is clean; the stored copy may not be.
type Error struct {
	ClearErr error
	SaveErr  error
}

func (e *Error) Error() string {
	switch {
	case e.ClearErr != nil && e.SaveErr != nil:
		return fmt.Sprintf("reset incomplete: clear storage: %v; save defaults: %v", e.ClearErr, e.SaveErr)
	case e.ClearErr != nil:
		return fmt.Sprintf("reset incomplete: clear storage: %v", e.ClearErr)
	default:
		return fmt.Sprintf("reset incomplete: save defaults: %v", e.SaveErr)
	}
}

func (e *Error) Unwrap() []error {
	var errs []error
	if e.ClearErr != nil {
		errs = append(errs, e.ClearErr)
	}
	if e.SaveErr != nil {
		errs = append(errs, e.SaveErr)
	}
	return errs
}

// Controller coordinates the storage wipe and the model resets.
type Controller struct {
	store  Clearer
	models []Resetter
	logger *zap.Logger
}

// NewController resets models in the order given, after clearing store.
func NewController(store Clearer, logger *zap.Logger, models ...Resetter) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{store: store, models: models, logger: logger}
}

// ResetAll clears storage and then resets every model, even when the clear
// fails. It returns *Error when any persistence step failed so the caller
// never reports a partial reset as success.
func (c *Controller) ResetAll(confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	clearErr := c.store.ClearAll()
	if clearErr != nil {
		c.logger.Error("reset: storage clear failed, resetting in-memory state anyway", zap.Error(clearErr))
	}

	var saveErrs []error
	for _, m := range c.models {
		if err := m.Reset(); err != nil {
			saveErrs = append(saveErrs, err)
		}
	}
	saveErr := errors.Join(saveErrs...)
	if saveErr != nil {
		c.logger.Error("reset: saving defaults failed", zap.Error(saveErr))
	}

	if clearErr != nil || saveErr != nil {
		return &Error{ClearErr: clearErr, SaveErr: saveErr}
	}
	c.logger.Info("toolkit state reset")
	return nil
}
