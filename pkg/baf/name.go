package baf

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// On-disk name field: 1-byte length followed by up to 255 UTF-8 bytes,
// zero-padded to 256 bytes total.
const nameFieldSize = 256

// forbiddenNameChars are rejected anywhere in an item name.
const forbiddenNameChars = "/\\\n\r\x00"

// CheckName reports whether name is a valid item name: 1..=255 bytes of
// valid UTF-8 containing none of '/', '\', '\n', '\r', NUL.
func CheckName(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty: %w", ErrInvalidName)
	}

	if len(name) > maxNameLen {
		return fmt.Errorf("name is longer than %d bytes: %w", maxNameLen, ErrInvalidName)
	}

	if i := strings.IndexAny(name, forbiddenNameChars); i >= 0 {
		return fmt.Errorf("name contains forbidden character %q: %w", name[i], ErrInvalidName)
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("name is not valid UTF-8: %w", ErrInvalidName)
	}

	return nil
}

// encodeName serializes a validated name into a 256-byte field in buf.
func encodeName(buf []byte, name string) {
	_ = buf[nameFieldSize-1]

	clear(buf[:nameFieldSize])
	buf[0] = byte(len(name))
	copy(buf[1:], name)
}

// decodeName parses a 256-byte name field, validating the result.
func decodeName(buf []byte) (string, error) {
	_ = buf[nameFieldSize-1]

	n := int(buf[0])
	name := string(buf[1 : 1+n])

	if err := CheckName(name); err != nil {
		return "", err
	}

	return name, nil
}
