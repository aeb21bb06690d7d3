package utils

import (
	"strconv"
	"time"
)

// GenerateReceiptNumber builds the default receipt number: prefix followed by
// the Unix time in milliseconds.
func GenerateReceiptNumber(prefix string, now time.Time) string {
	return prefix + strconv.FormatInt(now.UnixMilli(), 10)
}
