package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderID returns "<unix millis>-<8 random hex chars>". The timestamp
// keeps ids roughly sortable; the suffix separates submits in the same ms.
func NewOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}
