// Package idgen creates ids shaped like the ones ClickUp hands out: short
// base-36 strings for tasks and decimal strings for everything else.
package idgen

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// TaskIDLength is the number of base-36 characters in a task id.
const TaskIDLength = 7

// TaskID creates a new task id such as "9hz4k2a".
func TaskID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	s := strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 36)
	if len(s) < TaskIDLength {
		s = strings.Repeat("0", TaskIDLength-len(s)) + s
	}
	return s[len(s)-TaskIDLength:], nil
}

// NumericID creates a new decimal id for teams, spaces, projects, lists and
// comments.
func NumericID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return strconv.FormatUint(uint64(u.ID()), 10), nil
}

// MustTaskID is TaskID, panicking on error.
func MustTaskID() string {
	id, err := TaskID()
	if err != nil {
		panic(err)
	}
	return id
}

// MustNumericID is NumericID, panicking on error.
func MustNumericID() string {
	id, err := NumericID()
	if err != nil {
		panic(err)
	}
	return id
}
