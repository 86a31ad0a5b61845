package core

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// ID is an opaque entity identifier, unique within a collection across
// process restarts.
type ID string

// NewID derives an identifier from the wall clock in milliseconds plus a
// 48-bit random suffix, so bulk inserts within the same millisecond cannot
// collide.
func NewID() ID {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		// Fall back to the nanosecond clock; still perturbed per call.
		return ID(millis + "-" + strconv.FormatInt(time.Now().UnixNano(), 36))
	}
	return ID(millis + "-" + hex.EncodeToString(suffix))
}

// UnmarshalJSON tolerates legacy numeric ids (the old records used epoch
// millis as raw numbers) by keeping their decimal form as the string value.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		*id = ID(s[1 : len(s)-1])
		return nil
	}
	*id = ID(s)
	return nil
}
