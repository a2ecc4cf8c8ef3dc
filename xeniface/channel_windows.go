// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package xeniface

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Channel owns one open handle to a xeniface device instance and
// issues buffered control requests against it. The kernel serializes
// DeviceIoControl per call, so a Channel is safe for concurrent
// independent requests without client-side locking; each call blocks
// its goroutine until the driver completes it.
type Channel struct {
	handle windows.Handle
}

// Open enumerates the present xeniface device interfaces and opens
// the first candidate that accepts a shared read/write open, in
// enumeration order. Candidates that fail to open are logged and
// skipped. Returns ErrDeviceNotFound when the scan yields no usable
// device.
func Open() (*Channel, error) {
	locator, err := NewLocator()
	if err != nil {
		return nil, fmt.Errorf("xeniface: enumerating device interfaces: %w", err)
	}
	defer locator.Close()

	handle, err := firstOpenable(locator.Next, openDevice)
	if err != nil {
		return nil, err
	}
	return &Channel{handle: handle}, nil
}

// openDevice opens one device path for simultaneous shared read and
// write. The device must already exist; nothing is created.
func openDevice(path string) (windows.Handle, error) {
	pathPointer, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return windows.InvalidHandle, err
	}
	return windows.CreateFile(
		pathPointer,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
}

// Issue performs one blocking control request: the given code with
// input as the request body and output, when non-nil, as the receive
// buffer. Returns the actual reply length reported by the OS, which
// never exceeds len(output). OS failures are wrapped with the control
// code for diagnostics; the original errno stays reachable through
// errors.Is / errors.As.
func (c *Channel) Issue(code uint32, input, output []byte) (uint32, error) {
	var inputPointer, outputPointer *byte
	if len(input) > 0 {
		inputPointer = &input[0]
	}
	if len(output) > 0 {
		outputPointer = &output[0]
	}

	var replyLength uint32
	err := windows.DeviceIoControl(
		c.handle,
		code,
		inputPointer,
		uint32(len(input)),
		outputPointer,
		uint32(len(output)),
		&replyLength,
		nil,
	)
	if err != nil {
		return 0, fmt.Errorf("xeniface: control request %#x: %w", code, err)
	}
	// Buffered transfers cannot legitimately report more bytes than
	// the buffer holds; treat it as a driver fault rather than index
	// past the reply.
	if int64(replyLength) > int64(len(output)) {
		return 0, fmt.Errorf("xeniface: control request %#x: reply length %d exceeds %d-byte buffer",
			code, replyLength, len(output))
	}
	return replyLength, nil
}

// Clone duplicates the device handle. The duplicate is independently
// owned and refers to the same device instance, so a watch teardown
// can issue its deregistration without any ordering dependency on the
// primary handle's lifetime.
func (c *Channel) Clone() (*Channel, error) {
	process := windows.CurrentProcess()
	var duplicate windows.Handle
	err := windows.DuplicateHandle(
		process, c.handle, process, &duplicate,
		0, false, windows.DUPLICATE_SAME_ACCESS,
	)
	if err != nil {
		return nil, fmt.Errorf("xeniface: duplicating device handle: %w", err)
	}
	return &Channel{handle: duplicate}, nil
}

// Close releases the device handle. Safe to call more than once.
func (c *Channel) Close() error {
	if c.handle == 0 || c.handle == windows.InvalidHandle {
		return nil
	}
	err := windows.CloseHandle(c.handle)
	c.handle = windows.InvalidHandle
	if err != nil {
		return fmt.Errorf("xeniface: closing device handle: %w", err)
	}
	return nil
}
