// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package store

import "github.com/xenguest/xenstore/xeniface"

// New locates and opens the first usable xeniface device instance and
// returns a client bound to it. Returns xeniface.ErrDeviceNotFound
// when no device of the interface class is present or openable.
func New() (*Client, error) {
	channel, err := xeniface.Open()
	if err != nil {
		return nil, err
	}
	return &Client{conn: channel}, nil
}
