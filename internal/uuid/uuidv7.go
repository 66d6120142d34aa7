package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 for the current instant. UUIDv7 values sort by
// creation time, which keeps primary key indexes append-mostly.
func New() string {
	return NewAt(time.Now())
}

// NewAt generates a UUIDv7 whose 48-bit timestamp prefix is t in Unix milliseconds.
//
// Layout (RFC 9562):
// - 48 bits: Unix timestamp in milliseconds
// - 4 bits: version (0111)
// - 12 bits: random
// - 2 bits: variant (10)
// - 62 bits: random
func NewAt(t time.Time) string {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], uint64(t.UnixMilli())<<16)

	if _, err := rand.Read(b[6:]); err != nil {
		return googleuuid.New().String()
	}

	b[6] = (b[6] & 0x0f) | 0x70
	b[8] = (b[8] & 0x3f) | 0x80

	return googleuuid.UUID(b).String()
}

// Parse validates s and returns it in canonical lowercase form.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid reports whether s is a valid UUID of any version.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}

// Time extracts the embedded timestamp of a UUIDv7. ok is false for other versions.
func Time(s string) (t time.Time, ok bool) {
	parsed, err := googleuuid.Parse(s)
	if err != nil || parsed.Version() != 7 {
		return time.Time{}, false
	}
	ms := binary.BigEndian.Uint64(parsed[0:8]) >> 16
	return time.UnixMilli(int64(ms)), true
}
