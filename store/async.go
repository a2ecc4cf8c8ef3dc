// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package store

// Result carries the outcome of one deferred store operation.
type Result[T any] struct {
	Value T
	Err   error
}

// Async presents the client's operations as deferred computations
// delivered on single-use channels. This is an API-shape adapter, not
// overlapped I/O: the device only supports synchronous control
// requests, so each call still blocks one goroutine for the full
// duration of the underlying DeviceIoControl and cannot be cancelled
// once started. Watch notifications (Client.Watch) are the only
// genuinely event-driven part of the system.
type Async struct {
	client *Client
}

// NewAsync wraps a client. The adapter shares the client's device
// handle; closing the client invalidates the adapter.
func NewAsync(client *Client) *Async {
	return &Async{client: client}
}

// deferred runs one blocking call on its own goroutine and delivers
// the outcome on a buffered channel, so the result is ready to
// receive the moment the call completes whether or not anyone is
// listening yet.
func deferred[T any](call func() (T, error)) <-chan Result[T] {
	result := make(chan Result[T], 1)
	go func() {
		value, err := call()
		result <- Result[T]{Value: value, Err: err}
	}()
	return result
}

// deferredErr is deferred for operations with no return value.
func deferredErr(call func() error) <-chan error {
	result := make(chan error, 1)
	go func() {
		result <- call()
	}()
	return result
}

// List defers Client.List.
func (a *Async) List(path string) <-chan Result[[]string] {
	return deferred(func() ([]string, error) { return a.client.List(path) })
}

// Read defers Client.Read.
func (a *Async) Read(path string) <-chan Result[string] {
	return deferred(func() (string, error) { return a.client.Read(path) })
}

// Write defers Client.Write.
func (a *Async) Write(path, value string) <-chan error {
	return deferredErr(func() error { return a.client.Write(path, value) })
}

// Remove defers Client.Remove.
func (a *Async) Remove(path string) <-chan error {
	return deferredErr(func() error { return a.client.Remove(path) })
}
