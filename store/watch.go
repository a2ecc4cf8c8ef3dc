// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"log/slog"
	"sync"
)

// watchEvent abstracts the kernel event object backing a watch so the
// session lifecycle below is testable without a driver. The Windows
// implementation waits on the driver-signaled event together with a
// private stop event.
type watchEvent interface {
	// wait blocks until the driver signals the watch (true) or the
	// session is stopped (false).
	wait() (signaled bool, err error)

	// reset returns the event to the unset state so the next driver
	// signal is observable.
	reset() error

	// stop unblocks a pending or future wait with signaled=false.
	// It may be called concurrently with wait.
	stop()

	// close releases the event objects. Must not be called while a
	// wait is pending.
	close() error
}

// Watch is a live subscription to changes under one XenStore path.
// Notifications delivers the watched path once per driver signal
// until Close is called; a torn-down watch is not restartable.
type Watch struct {
	path          string
	event         watchEvent
	deregister    func()
	notifications chan string
	done          chan struct{}
	pumpExited    chan struct{}
	closeOnce     sync.Once
}

// newWatch starts the notification pump for an already-registered
// watch. deregister is invoked exactly once during Close, after the
// pump has exited and before the event is released.
func newWatch(path string, event watchEvent, deregister func()) *Watch {
	watch := &Watch{
		path:          path,
		event:         event,
		deregister:    deregister,
		notifications: make(chan string),
		done:          make(chan struct{}),
		pumpExited:    make(chan struct{}),
	}
	go watch.pump()
	return watch
}

// Path returns the watched path.
func (w *Watch) Path() string {
	return w.path
}

// Notifications is the stream of watch firings. Each received string
// is the watched path; the driver does not report which key under it
// changed. The channel is unbuffered — a signal is held until the
// consumer takes it — and closes when the watch is torn down or the
// event wait fails.
func (w *Watch) Notifications() <-chan string {
	return w.notifications
}

// pump waits for driver signals and forwards them as notifications.
// The event is reset before each delivery so a signal arriving while
// the consumer still holds the current item registers as the next
// one.
func (w *Watch) pump() {
	defer close(w.pumpExited)
	defer close(w.notifications)
	for {
		signaled, err := w.event.wait()
		if err != nil {
			slog.Error("waiting on watch event", "path", w.path, "error", err)
			return
		}
		if !signaled {
			return
		}
		if err := w.event.reset(); err != nil {
			slog.Error("resetting watch event", "path", w.path, "error", err)
		}
		select {
		case w.notifications <- w.path:
		case <-w.done:
			return
		}
	}
}

// Close tears the watch down: it stops the pump, waits for it to
// exit, issues the deregistration exactly once, and releases the
// event objects — in that order, so the driver-issued token never
// outlives the event it was registered with. Deregistration and
// event-release failures are logged, never returned: teardown has no
// caller awaiting a result. Close is idempotent and safe to call
// whether or not any notification was ever consumed.
func (w *Watch) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		w.event.stop()
		<-w.pumpExited
		w.deregister()
		if err := w.event.close(); err != nil {
			slog.Warn("closing watch event", "path", w.path, "error", err)
		}
	})
}
