package session

import (
	"crypto/md5" //nolint:gosec // dictated by the device firmware
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Response computes the login response for challenge and password:
//
//	challenge + "-" + hex(md5(utf16le(challenge + "-" + password)))
//
// The hex digest is lowercase. Characters above U+00FF are replaced with '.'
// before hashing, which is what the firmware does on its side.
func Response(challenge, password string) (string, error) {
	text := latin1Safe(challenge + "-" + password)

	encoded, _, err := transform.String(utf16le.NewEncoder(), text)
	if err != nil {
		return "", fmt.Errorf("encode utf-16le: %w", err)
	}

	sum := md5.Sum([]byte(encoded)) //nolint:gosec
	return challenge + "-" + hex.EncodeToString(sum[:]), nil
}

func latin1Safe(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '.'
		}
		return r
	}, s)
}
