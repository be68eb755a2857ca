package content

import (
	"errors"
	"fmt"

	"github.com/jonathan/content-toolkit/internal/types"
)

// ErrNotLoaded is returned by mutations issued before Load.
var ErrNotLoaded = errors.New("content library not loaded")

// InvalidContentItemError rejects an item that fails validation.
type InvalidContentItemError struct {
	Field   string
	Message string
}

func (e *InvalidContentItemError) Error() string {
	return fmt.Sprintf("invalid content item: %s %s", e.Field, e.Message)
}

// InvalidStageError rejects a stage outside the five fixed keys.
type InvalidStageError struct {
	Stage string
}

func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("invalid stage %q", e.Stage)
}

// NotFoundError reports an unknown content id.
type NotFoundError struct {
	ID types.ContentID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content item not found: %s", e.ID)
}
