package helpers

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
)

// Confirmation code bounds. Codes are always six digits with a non-zero
// leading digit, so the emailed value survives copy-paste without padding
// ambiguity.
const (
	codeMin  = 100000
	codeSpan = 900000
)

// NewConfirmationCode generates a uniformly random 6-digit confirmation code
// in 100000..999999.
func NewConfirmationCode() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint64(b[:]) % codeSpan
	return strconv.FormatUint(codeMin+n, 10), nil
}
