// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements the NUL-delimited string framing used by
// the xeniface store interface. Every request body is one or more
// UTF-8 strings, each followed by exactly one NUL byte, concatenated
// with no length prefix or other framing. Replies use the same
// convention: a single NUL-terminated value for reads, a run of
// NUL-terminated names (optionally followed by one final NUL) for
// directory listings.
package wire

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"
)

// Errors returned by the codec.
var (
	// ErrInvalidEncoding is returned when a payload segment is not
	// valid UTF-8.
	ErrInvalidEncoding = errors.New("wire: payload is not valid UTF-8")

	// ErrEmbeddedNUL is returned by Encode when a value contains a
	// NUL byte. NUL is the frame delimiter; an embedded one would
	// desynchronize every decoder downstream.
	ErrEmbeddedNUL = errors.New("wire: value contains an embedded NUL byte")
)

// Encode builds a request payload from the given values: each value's
// bytes followed by a single NUL, in argument order.
func Encode(values ...string) ([]byte, error) {
	size := len(values)
	for _, value := range values {
		size += len(value)
	}

	payload := make([]byte, 0, size)
	for _, value := range values {
		if strings.IndexByte(value, 0) >= 0 {
			return nil, ErrEmbeddedNUL
		}
		payload = append(payload, value...)
		payload = append(payload, 0)
	}
	return payload, nil
}

// DecodeString decodes a single NUL-terminated value. An empty buffer
// means "no value" (ok is false). Otherwise at most one trailing NUL
// is stripped and the remainder must be valid UTF-8. A buffer without
// a trailing NUL decodes to its full contents: the driver terminates
// replies, but a reply truncated at the output-buffer boundary may
// arrive without the final NUL.
func DecodeString(buffer []byte) (value string, ok bool, err error) {
	if len(buffer) == 0 {
		return "", false, nil
	}
	if buffer[len(buffer)-1] == 0 {
		buffer = buffer[:len(buffer)-1]
	}
	if !utf8.Valid(buffer) {
		return "", false, ErrInvalidEncoding
	}
	return string(buffer), true, nil
}

// DecodeList decodes a run of NUL-terminated values. The buffer is
// split at every NUL byte (each segment keeps its delimiter) and each
// segment is decoded like DecodeString. A single trailing empty
// segment — the optional final NUL some replies carry — is dropped;
// empty values elsewhere in the list are preserved. Any segment that
// is not valid UTF-8 fails the whole call.
func DecodeList(buffer []byte) ([]string, error) {
	var values []string
	for len(buffer) > 0 {
		var segment []byte
		if i := bytes.IndexByte(buffer, 0); i >= 0 {
			segment, buffer = buffer[:i+1], buffer[i+1:]
		} else {
			segment, buffer = buffer, nil
		}

		value, _, err := DecodeString(segment)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	if n := len(values); n > 0 && values[n-1] == "" {
		values = values[:n-1]
	}
	return values, nil
}
