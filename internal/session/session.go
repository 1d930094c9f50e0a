// Package session derives visit identifiers for click correlation.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// IDLength is the length of a session identifier in hex characters.
const IDLength = 16

// Resolve derives a session id from the click's gclid, the client IP
// and the resolution instant. Either input string may be empty.
//
// The instant is part of the hash input, so the same click replayed at
// a different time yields a different id: a session identifies a visit,
// not the underlying ad click.
func Resolve(gclid, ipAddress string, now time.Time) string {
	sum := sha256.Sum256([]byte(gclid + ipAddress + now.Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])[:IDLength]
}
