// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

// Package xeniface talks to the Xen xeniface platform device on a
// Windows guest. It discovers device instances by interface class
// GUID, opens a control channel, and issues the buffered IOCTLs the
// driver exposes for XenStore access, including watch registration
// backed by a kernel event object.
//
// Everything here is plumbing: the store semantics live in the driver
// and are surfaced by the store package built on top of this one.
// All Windows API access is confined to *_windows.go files; the
// enumeration and control-code logic is portable and tested with
// fakes.
package xeniface
