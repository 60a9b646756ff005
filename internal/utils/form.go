package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yukikurage/auction-house/internal/constants"
)

var (
	ErrInvalidNumber = errors.New("not a valid number")
	ErrInvalidTime   = errors.New("not a valid time, expected YYYY-MM-DD HH:MM:SS")
)

// ParseAmount parses a money amount from a form field. NaN and infinities are rejected.
func ParseAmount(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidNumber
	}
	return value, nil
}

// ParseEndTime parses an auction end time in constants.EndTimeLayout as UTC.
// The "T" separator produced by datetime-local inputs is accepted as well.
func ParseEndTime(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrInvalidTime
	}

	layouts := []string{constants.EndTimeLayout, "2006-01-02T15:04:05", "2006-01-02T15:04"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTime
}

// ParseID parses a positive numeric path parameter.
func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
