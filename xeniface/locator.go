// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package xeniface

import "log/slog"

// Device-path detail retrieval uses a fixed buffer overlaying the
// variable-length SP_DEVICE_INTERFACE_DETAIL_DATA_W structure: a
// 4-byte cbSize header followed by the path as UTF-16.
const (
	// maxDetailPathChars is the UTF-16 capacity of the fixed detail
	// buffer. Interface paths are device-instance strings of the form
	// \\?\...{guid}; they are nowhere near this long in practice, but
	// the length reported by the OS is checked against the capacity
	// before any copy, never trusted.
	maxDetailPathChars = 4094

	// detailBufferBytes is the total capacity of the fixed detail
	// buffer in bytes: the cbSize header plus the path array.
	detailBufferBytes = 4 + 2*maxDetailPathChars
)

// candidateSource is one non-restartable pass over the device
// interfaces of a class. It exists so the skip-and-continue filtering
// below is testable without a live device tree; the Windows
// implementation wraps the SetupDi enumeration calls.
type candidateSource interface {
	// advance moves to the next interface. False means the pass is
	// exhausted.
	advance() bool

	// detailLength reports the byte length the OS requires for the
	// current interface's detail record.
	detailLength() (uint32, error)

	// readDetail fetches the current interface's detail record and
	// returns the device path. The reported length is guaranteed by
	// the caller to fit the fixed buffer.
	readDetail(length uint32) (string, error)
}

// nextUsablePath advances the source to the next candidate whose
// detail record fits the fixed buffer and can be retrieved. Oversized
// or failing candidates are logged and skipped; a single bad entry
// never aborts the scan.
func nextUsablePath(source candidateSource) (string, bool) {
	for source.advance() {
		length, err := source.detailLength()
		if err != nil {
			slog.Warn("probing device interface detail length", "error", err)
			continue
		}
		if int64(length) > detailBufferBytes {
			slog.Warn("device interface detail too large, skipping candidate",
				"length", length, "capacity", detailBufferBytes)
			continue
		}
		path, err := source.readDetail(length)
		if err != nil {
			slog.Warn("reading device interface detail, skipping candidate", "error", err)
			continue
		}
		return path, true
	}
	return "", false
}
