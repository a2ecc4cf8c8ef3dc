// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"

	"github.com/xenguest/xenstore/lib/wire"
	"github.com/xenguest/xenstore/xeniface"
)

// replyBufferSize bounds a single read or directory reply. The driver
// publishes no maximum, so this is a hard cap, not a starting size:
// a reply that does not fit makes the control request fail at the OS
// level and that failure is surfaced to the caller — values are never
// silently truncated and the buffer never grows.
const replyBufferSize = 4096

// conn is the control-channel surface the client needs. It is
// satisfied by *xeniface.Channel and by fakes in tests.
type conn interface {
	Issue(code uint32, input, output []byte) (uint32, error)
	Close() error
}

// Client issues XenStore operations over one xeniface control
// channel. Construct it with New; the zero value is not usable.
type Client struct {
	conn conn
}

// List enumerates the immediate children of the key at path, in the
// order the driver returned them.
func (c *Client) List(path string) ([]string, error) {
	request, err := wire.Encode(path)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", path, err)
	}
	reply := make([]byte, replyBufferSize)
	length, err := c.conn.Issue(xeniface.StoreDirectory, request, reply)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", path, err)
	}
	children, err := wire.DecodeList(reply[:length])
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", path, err)
	}
	return children, nil
}

// Read returns the value of the key at path. A key with no value
// reads as the empty string.
func (c *Client) Read(path string) (string, error) {
	request, err := wire.Encode(path)
	if err != nil {
		return "", fmt.Errorf("store: read %s: %w", path, err)
	}
	reply := make([]byte, replyBufferSize)
	length, err := c.conn.Issue(xeniface.StoreRead, request, reply)
	if err != nil {
		return "", fmt.Errorf("store: read %s: %w", path, err)
	}
	value, _, err := wire.DecodeString(reply[:length])
	if err != nil {
		return "", fmt.Errorf("store: read %s: %w", path, err)
	}
	return value, nil
}

// Write sets the value of the key at path, creating the key if it
// does not exist.
func (c *Client) Write(path, value string) error {
	request, err := wire.Encode(path, value)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if _, err := c.conn.Issue(xeniface.StoreWrite, request, nil); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	return nil
}

// Remove deletes the key at path and its subtree.
func (c *Client) Remove(path string) error {
	request, err := wire.Encode(path)
	if err != nil {
		return fmt.Errorf("store: remove %s: %w", path, err)
	}
	if _, err := c.conn.Issue(xeniface.StoreRemove, request, nil); err != nil {
		return fmt.Errorf("store: remove %s: %w", path, err)
	}
	return nil
}

// Close releases the underlying device handle. Watches created from
// this client hold their own duplicated handles and tear down
// independently.
func (c *Client) Close() error {
	return c.conn.Close()
}
