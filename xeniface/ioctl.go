// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package xeniface

// IOCTL control codes for the xeniface store interface, derived with
// the Windows CTL_CODE formula. These are stable driver ABI.
//
// Bit layout: deviceType << 16 | access << 14 | function << 2 | method
const (
	// fileDeviceUnknown is the device-type tag xeniface registers
	// under (FILE_DEVICE_UNKNOWN).
	fileDeviceUnknown = 0x22

	// methodBuffered: the I/O manager copies the input buffer into
	// kernel space and copies the output buffer back (METHOD_BUFFERED).
	methodBuffered = 0

	// fileAnyAccess: no specific access rights required beyond an
	// open handle (FILE_ANY_ACCESS).
	fileAnyAccess = 0
)

// ctlCode encodes a full control code from its parts, mirroring the
// CTL_CODE macro from winioctl.h.
func ctlCode(deviceType, function, method, access uint32) uint32 {
	return deviceType<<16 | access<<14 | function<<2 | method
}

// Store operation control codes. Function numbers are the driver's
// IOCTL_XENIFACE_STORE_* assignments.
const (
	// StoreRead reads a value. Input: NUL-terminated key path.
	// Output: NUL-terminated value.
	StoreRead = fileDeviceUnknown<<16 | fileAnyAccess<<14 | 0x800<<2 | methodBuffered

	// StoreWrite writes a value. Input: NUL-terminated key path,
	// NUL-terminated value, final NUL terminator. No output.
	StoreWrite = fileDeviceUnknown<<16 | fileAnyAccess<<14 | 0x801<<2 | methodBuffered

	// StoreDirectory enumerates immediate children. Input:
	// NUL-terminated key path. Output: NUL-terminated child names
	// followed by a final NUL.
	StoreDirectory = fileDeviceUnknown<<16 | fileAnyAccess<<14 | 0x802<<2 | methodBuffered

	// StoreRemove removes a key. Input: NUL-terminated key path.
	// No output.
	StoreRemove = fileDeviceUnknown<<16 | fileAnyAccess<<14 | 0x803<<2 | methodBuffered

	// StoreAddWatch registers a watch. Input: the add-watch request
	// record (path pointer, path byte length, event handle). Output:
	// an opaque pointer-width token.
	StoreAddWatch = fileDeviceUnknown<<16 | fileAnyAccess<<14 | 0x805<<2 | methodBuffered

	// StoreRemoveWatch deregisters a watch. Input: the token from
	// StoreAddWatch. No output.
	StoreRemoveWatch = fileDeviceUnknown<<16 | fileAnyAccess<<14 | 0x806<<2 | methodBuffered
)
