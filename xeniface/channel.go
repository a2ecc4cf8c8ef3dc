// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package xeniface

import (
	"errors"
	"log/slog"
)

// ErrDeviceNotFound is returned by Open when no xeniface device
// interface is present or none of the enumerated candidates could be
// opened. It is distinct from per-request I/O failures so callers can
// tell "no device" apart from "device refused the request".
var ErrDeviceNotFound = errors.New("xeniface: no usable xeniface device found")

// firstOpenable returns the handle from the first candidate that open
// accepts, trying candidates strictly in enumeration order. Open
// failures on individual candidates are logged and skipped; a
// sequence that yields no openable candidate — including an empty
// one — is ErrDeviceNotFound, never a generic I/O error.
func firstOpenable[H any](next func() (string, bool), open func(string) (H, error)) (H, error) {
	for {
		path, ok := next()
		if !ok {
			break
		}
		slog.Debug("trying xeniface device", "path", path)
		handle, err := open(path)
		if err != nil {
			slog.Warn("unable to open xeniface device", "path", path, "error", err)
			continue
		}
		slog.Debug("opened xeniface device", "path", path)
		return handle, nil
	}
	var none H
	return none, ErrDeviceNotFound
}
