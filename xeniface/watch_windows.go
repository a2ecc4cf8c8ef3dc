// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package xeniface

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

// storeAddWatchIn mirrors the driver's XENIFACE_STORE_ADD_WATCH_IN:
//
//	PCHAR  Path;       // NUL-terminated path to a XenStore key
//	ULONG  PathLength; // size of Path in bytes, including the NUL
//	HANDLE Event;      // signaled each time the watch fires
//
// Go's natural field alignment matches the MSVC layout on both 386
// and amd64 (on 64-bit, four padding bytes follow pathLength so the
// handle lands on a pointer boundary).
type storeAddWatchIn struct {
	path       uintptr
	pathLength uint32
	event      windows.Handle
}

// AddWatch registers a watch on path, tied to the given event object.
// The driver signals the event whenever the path or its subtree
// changes. The returned token is the only way to deregister the
// watch; it is 1:1 bound to the event passed here and must be
// released with RemoveWatch before the event object is destroyed.
//
// The event should be manual-reset and unset; the caller resets it
// after observing each signal.
func (c *Channel) AddWatch(path string, event windows.Handle) (WatchToken, error) {
	pathBytes, err := windows.ByteSliceFromString(path)
	if err != nil {
		return WatchToken{}, fmt.Errorf("xeniface: watch path %q: %w", path, err)
	}

	request := storeAddWatchIn{
		path:       uintptr(unsafe.Pointer(&pathBytes[0])),
		pathLength: uint32(len(pathBytes)),
		event:      event,
	}

	var token WatchToken
	_, err = c.Issue(
		StoreAddWatch,
		unsafe.Slice((*byte)(unsafe.Pointer(&request)), unsafe.Sizeof(request)),
		token[:],
	)
	// The driver captures the path during the ioctl; the buffer must
	// stay reachable until the call returns.
	runtime.KeepAlive(pathBytes)
	if err != nil {
		return WatchToken{}, err
	}
	return token, nil
}

// RemoveWatch deregisters the watch identified by token. The token is
// passed back to the driver verbatim; it has no client-side meaning.
func (c *Channel) RemoveWatch(token WatchToken) error {
	_, err := c.Issue(StoreRemoveWatch, token[:], nil)
	return err
}
