package preference

import (
	"errors"
	"fmt"

	"vcarpool/models"
)

var (
	// ErrUnknownSlot means the slot is not one of the slots currently displayed.
	ErrUnknownSlot = errors.New("slot is not part of this week's schedule")
	// ErrInvalidLevel means the requested level is not a selectable category.
	ErrInvalidLevel = errors.New("unknown preference level")
	// ErrDraftNotFound means no draft is stored for the session and week.
	ErrDraftNotFound = errors.New("preference draft not found or expired")
)

// CapExceededError reports that a category already holds as many slots as it may.
type CapExceededError struct {
	Level models.PreferenceLevel
	Limit int
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("You can only select up to %d %s slots.", e.Limit, e.Level)
}

// IsCapExceeded reports whether err is a cap violation and returns it.
func IsCapExceeded(err error) (*CapExceededError, bool) {
	var capErr *CapExceededError
	if errors.As(err, &capErr) {
		return capErr, true
	}
	return nil, false
}
