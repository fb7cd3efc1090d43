package baf

import (
	"errors"
	"strings"
	"testing"
)

func Test_CheckName_Accepts_Lengths_1_To_255(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 254, 255} {
		if err := CheckName(strings.Repeat("a", n)); err != nil {
			t.Fatalf("length %d: %v", n, err)
		}
	}
}

func Test_CheckName_Rejects_Invalid_Names(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "256 bytes", input: strings.Repeat("a", 256)},
		{name: "slash", input: "a/b"},
		{name: "backslash", input: `a\b`},
		{name: "newline", input: "a\nb"},
		{name: "carriage return", input: "a\rb"},
		{name: "nul", input: "a\x00b"},
		{name: "invalid utf8", input: "a\xffb"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if err := CheckName(tc.input); !errors.Is(err, ErrInvalidName) {
				t.Fatalf("CheckName(%q) = %v, want ErrInvalidName", tc.input, err)
			}
		})
	}
}

func Test_Name_Field_Round_Trips(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a", "héllo wörld", strings.Repeat("x", 255)} {
		buf := make([]byte, nameFieldSize)
		encodeName(buf, name)

		got, err := decodeName(buf)
		if err != nil {
			t.Fatalf("decodeName(%q): %v", name, err)
		}

		if got != name {
			t.Fatalf("got %q, want %q", got, name)
		}
	}
}

func Test_DecodeName_Rejects_Invalid_Bytes(t *testing.T) {
	t.Parallel()

	buf := make([]byte, nameFieldSize)
	buf[0] = 2
	buf[1] = 0xff
	buf[2] = 0xfe

	if _, err := decodeName(buf); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("got %v, want ErrInvalidName", err)
	}
}
