// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

// Package store is a XenStore client for Windows guests, built on the
// xeniface control channel. It provides the four primitive operations
// (List, Read, Write, Remove), change notification via Watch, and a
// deferred-result adapter for callers that want channel-shaped APIs.
//
// # Errors
//
// Callers see a small, closed set of error kinds regardless of the
// underlying OS failure, with the original error preserved for
// diagnostics through the %w chain:
//
//   - xeniface.ErrDeviceNotFound: no device could be opened.
//   - wire.ErrInvalidEncoding: a reply was not valid UTF-8.
//   - wire.ErrEmbeddedNUL: a request argument contained a NUL byte.
//   - anything else wraps the Windows errno from the failed control
//     request (path not found, permission denied, reply too large for
//     the fixed buffer, ...).
//
// # Concurrency
//
// The client spawns no goroutines for request/response operations;
// each call performs one blocking DeviceIoControl on the caller's
// goroutine and the kernel serializes concurrent requests, so one
// Client is safe for concurrent use without extra locking. A Watch
// owns one internal goroutine that waits on the kernel event and is
// joined by Close.
package store
