package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewTestID generates a test artifact ID with the "test_" prefix.
// Format: test_<unix-millis>_<8-char random suffix>
//
// Uniqueness is best-effort: the millisecond timestamp plus the random
// suffix make collisions improbable, but there is no global counter.
func NewTestID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("test_%d_%s", time.Now().UnixMilli(), suffix)
}
