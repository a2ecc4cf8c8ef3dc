// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestEncode(t *testing.T) {
	payload, err := Encode("/local/domain/0/name", "mydomain")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte("/local/domain/0/name\x00mydomain\x00")
	if !bytes.Equal(payload, want) {
		t.Errorf("Encode = %q, want %q", payload, want)
	}
	if len(payload) != 30 {
		t.Errorf("payload length = %d, want 30", len(payload))
	}
}

func TestEncodeEmpty(t *testing.T) {
	payload, err := Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(payload) != 0 {
		t.Errorf("Encode() = %q, want empty", payload)
	}
}

func TestEncodeEmbeddedNUL(t *testing.T) {
	_, err := Encode("a\x00b")
	if !errors.Is(err, ErrEmbeddedNUL) {
		t.Fatalf("Encode with embedded NUL: got %v, want ErrEmbeddedNUL", err)
	}
}

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name   string
		buffer []byte
		value  string
		ok     bool
	}{
		{"empty buffer means no value", nil, "", false},
		{"trailing NUL stripped", []byte("guest\x00"), "guest", true},
		{"no trailing NUL kept whole", []byte("guest"), "guest", true},
		{"bare NUL is an empty value", []byte{0}, "", true},
		{"only one trailing NUL stripped", []byte("guest\x00\x00"), "guest\x00", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			value, ok, err := DecodeString(test.buffer)
			if err != nil {
				t.Fatalf("DecodeString(%q): %v", test.buffer, err)
			}
			if ok != test.ok || value != test.value {
				t.Errorf("DecodeString(%q) = %q, %v; want %q, %v",
					test.buffer, value, ok, test.value, test.ok)
			}
		})
	}
}

func TestDecodeStringInvalidUTF8(t *testing.T) {
	_, _, err := DecodeString([]byte{0xff, 0xfe, 0x00})
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("DecodeString(invalid UTF-8): got %v, want ErrInvalidEncoding", err)
	}
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name   string
		buffer []byte
		want   []string
	}{
		{"driver reply with final NUL", []byte("vm\x00guest\x00\x00"), []string{"vm", "guest"}},
		{"no final NUL", []byte("vm\x00guest\x00"), []string{"vm", "guest"}},
		{"unterminated last entry", []byte("vm\x00guest"), []string{"vm", "guest"}},
		{"empty reply", nil, nil},
		{"single final NUL only", []byte{0}, nil},
		{"interior empty entry preserved", []byte("a\x00\x00b\x00"), []string{"a", "", "b"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			values, err := DecodeList(test.buffer)
			if err != nil {
				t.Fatalf("DecodeList(%q): %v", test.buffer, err)
			}
			if !reflect.DeepEqual(values, test.want) {
				t.Errorf("DecodeList(%q) = %q, want %q", test.buffer, values, test.want)
			}
		})
	}
}

func TestDecodeListInvalidSegment(t *testing.T) {
	_, err := DecodeList([]byte("ok\x00\xff\xfe\x00"))
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("DecodeList with invalid segment: got %v, want ErrInvalidEncoding", err)
	}
}

func TestRoundTrip(t *testing.T) {
	sequences := [][]string{
		{"/local/domain/0/name"},
		{"/local/domain/0/name", "mydomain"},
		{"vm", "guest", "control"},
		{"", "üñïçödé", "value with spaces"},
		{"", "", "x"},
	}
	for _, sequence := range sequences {
		payload, err := Encode(sequence...)
		if err != nil {
			t.Fatalf("Encode(%q): %v", sequence, err)
		}
		decoded, err := DecodeList(payload)
		if err != nil {
			t.Fatalf("DecodeList(Encode(%q)): %v", sequence, err)
		}
		if !reflect.DeepEqual(decoded, sequence) {
			t.Errorf("round trip of %q = %q", sequence, decoded)
		}
	}
}
