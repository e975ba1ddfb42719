package utils

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewHandle returns a fresh connection handle. Handles are never
// reused, so a stale handle can't resolve to a newer connection.
func NewHandle() string {
	id, err := uuid.NewRandom()
	if err != nil {
		// Fallback to timestamp if entropy is unavailable.
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return id.String()
}
