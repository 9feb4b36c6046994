package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewOrderNumber returns a short human-facing order reference like
// "FD-9F1C3A2B". Uniqueness is best-effort; the ObjectID remains the key.
func NewOrderNumber() string {
	id := uuid.New().String()
	return "FD-" + strings.ToUpper(id[:8])
}
