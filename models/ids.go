package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entity id prefixes
const (
	PaymentCollectionPrefix = "paycol"
	PaymentSessionPrefix    = "payses"
	PaymentPrefix           = "pay"
	CapturePrefix           = "capt"
	RefundPrefix            = "ref"
)

// GenerateID returns a new unique id such as "pay_1c6f0e5d8a0b4b8e9f3c2d1a0b9c8d7e".
func GenerateID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// now truncates to milliseconds to match the precision timestamps are
// stored with in mongo.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Now returns the current time at storage precision.
func Now() time.Time {
	return now()
}
