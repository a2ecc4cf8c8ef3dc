// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package store

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows"

	"github.com/xenguest/xenstore/xeniface"
)

// watchConn is the capability surface watch registration needs from
// the connection beyond plain requests: handle duplication for
// teardown and the watch primitives. *xeniface.Channel satisfies it.
type watchConn interface {
	conn
	AddWatch(path string, event windows.Handle) (xeniface.WatchToken, error)
	Clone() (*xeniface.Channel, error)
}

// Watch registers a watch on path and returns the live session. The
// driver signals the session's event object whenever path or its
// subtree changes; the session converts each signal into one item on
// Watch.Notifications. Tear the session down with Watch.Close.
func (c *Client) Watch(path string) (*Watch, error) {
	device, ok := c.conn.(watchConn)
	if !ok {
		return nil, fmt.Errorf("store: watch %s: connection does not support watches", path)
	}

	event, err := newWinEvent()
	if err != nil {
		return nil, fmt.Errorf("store: watch %s: %w", path, err)
	}

	// Duplicate the channel handle before registering: teardown must
	// be able to deregister without any ordering dependency on the
	// primary handle's lifetime.
	teardown, err := device.Clone()
	if err != nil {
		event.close()
		return nil, fmt.Errorf("store: watch %s: %w", path, err)
	}

	token, err := device.AddWatch(path, event.signal)
	if err != nil {
		if closeErr := teardown.Close(); closeErr != nil {
			slog.Warn("closing teardown handle", "path", path, "error", closeErr)
		}
		event.close()
		return nil, fmt.Errorf("store: watch %s: %w", path, err)
	}

	deregister := func() {
		defer teardown.Close()
		if err := teardown.RemoveWatch(token); err != nil {
			slog.Warn("removing xenstore watch", "path", path, "error", err)
		}
	}
	return newWatch(path, event, deregister), nil
}

// winEvent backs a watch with two manual-reset kernel events: signal
// is handed to the driver at registration, stop is private and
// unblocks the pump during teardown.
type winEvent struct {
	signal    windows.Handle
	stopEvent windows.Handle
}

func newWinEvent() (*winEvent, error) {
	// Manual-reset, initially unset. The driver sets it; the session
	// resets it after observing each signal.
	signal, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("creating watch event: %w", err)
	}
	stop, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		windows.CloseHandle(signal)
		return nil, fmt.Errorf("creating watch stop event: %w", err)
	}
	return &winEvent{signal: signal, stopEvent: stop}, nil
}

func (e *winEvent) wait() (bool, error) {
	handles := []windows.Handle{e.stopEvent, e.signal}
	status, err := windows.WaitForMultipleObjects(handles, false, windows.INFINITE)
	switch status {
	case windows.WAIT_OBJECT_0:
		return false, nil
	case windows.WAIT_OBJECT_0 + 1:
		return true, nil
	case windows.WAIT_FAILED:
		return false, fmt.Errorf("waiting on watch event: %w", err)
	default:
		return false, fmt.Errorf("waiting on watch event: unexpected status %#x", status)
	}
}

func (e *winEvent) reset() error {
	return windows.ResetEvent(e.signal)
}

func (e *winEvent) stop() {
	if err := windows.SetEvent(e.stopEvent); err != nil {
		slog.Warn("signaling watch stop event", "error", err)
	}
}

func (e *winEvent) close() error {
	signalErr := windows.CloseHandle(e.signal)
	stopErr := windows.CloseHandle(e.stopEvent)
	if signalErr != nil {
		return signalErr
	}
	return stopErr
}
