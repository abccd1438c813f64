// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"testing"
)

func TestEncodeModifiedUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"empty", "", nil},
		{"ascii", "hi", []byte{'h', 'i'}},
		{"nul", "\x00", []byte{0xC0, 0x80}},
		{"nul in middle", "a\x00b", []byte{'a', 0xC0, 0x80, 'b'}},
		{"two byte", "é", []byte{0xC3, 0xA9}}, // U+00E9 LATIN SMALL LETTER E WITH ACUTE
		{"three byte", "中", []byte{0xE4, 0xB8, 0xAD}},
		{
			"supplementary as surrogate pair",
			"\U0001F600", // GRINNING FACE, outside the BMP
			[]byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80},
		},
		{
			"replacement character is a valid scalar value, not an encoding error",
			"�",
			[]byte{0xEF, 0xBF, 0xBD},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := encodeModifiedUTF8(tc.in)
			if err != nil {
				t.Fatalf("encodeModifiedUTF8(%q): %v", tc.in, err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("encodeModifiedUTF8(%q) = % X, want % X", tc.in, got, tc.want)
			}
		})
	}
}

func TestModifiedUTF8RoundTrip(t *testing.T) {
	strs := []string{
		"", "hello, world", "\x00", "a\x00\x00b",
		"é中\U0001F600", "café", "�",
	}
	for _, s := range strs {
		enc, err := encodeModifiedUTF8(s)
		if err != nil {
			t.Fatalf("encode(%q): %v", s, err)
		}
		dec, err := decodeModifiedUTF8(enc)
		if err != nil {
			t.Fatalf("decode(% X): %v", enc, err)
		}
		if dec != s {
			t.Fatalf("round trip %q -> % X -> %q", s, enc, dec)
		}
	}
}

func TestDecodeModifiedUTF8Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"standard four-byte utf8 form", []byte{0xF0, 0x9F, 0x98, 0x80}},
		{"lone high surrogate", []byte{0xED, 0xA0, 0xBD}},
		{"lone low surrogate", []byte{0xED, 0xB8, 0x80}},
		{"truncated two byte", []byte{0xC3}},
		{"truncated three byte", []byte{0xE4, 0xB8}},
		{"overlong ascii", []byte{0xC0, 0xBF}},
		{"bad continuation byte", []byte{0xC3, 0x00}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeModifiedUTF8(tc.in); err == nil {
				t.Fatalf("decodeModifiedUTF8(% X): expected error, got none", tc.in)
			}
		})
	}
}

func TestDecodeModifiedUTF8NUL(t *testing.T) {
	got, err := decodeModifiedUTF8([]byte{0xC0, 0x80})
	if err != nil {
		t.Fatalf("decode NUL: %v", err)
	}
	if got != "\x00" {
		t.Fatalf("decode NUL = %q, want %q", got, "\x00")
	}
}
