// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package xeniface

import (
	"errors"
	"testing"
)

// pathSequence mimics a locator pass over a fixed candidate list.
func pathSequence(paths ...string) func() (string, bool) {
	index := 0
	return func() (string, bool) {
		if index >= len(paths) {
			return "", false
		}
		path := paths[index]
		index++
		return path, true
	}
}

func TestFirstOpenableNoCandidates(t *testing.T) {
	_, err := firstOpenable(pathSequence(), func(path string) (int, error) {
		t.Fatalf("open called with no candidates (path %q)", path)
		return 0, nil
	})
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Fatalf("error = %v, want ErrDeviceNotFound", err)
	}
}

func TestFirstOpenableAllCandidatesFail(t *testing.T) {
	var tried []string
	_, err := firstOpenable(pathSequence(`\\?\a`, `\\?\b`), func(path string) (int, error) {
		tried = append(tried, path)
		return 0, errors.New("access denied")
	})
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Fatalf("error = %v, want ErrDeviceNotFound", err)
	}
	if len(tried) != 2 {
		t.Errorf("tried %d candidates, want all 2", len(tried))
	}
}

func TestFirstOpenableStopsAtFirstSuccess(t *testing.T) {
	var tried []string
	handle, err := firstOpenable(pathSequence(`\\?\a`, `\\?\b`, `\\?\c`), func(path string) (int, error) {
		tried = append(tried, path)
		if path == `\\?\b` {
			return 42, nil
		}
		return 0, errors.New("access denied")
	})
	if err != nil {
		t.Fatalf("firstOpenable: %v", err)
	}
	if handle != 42 {
		t.Errorf("handle = %d, want 42", handle)
	}
	if len(tried) != 2 || tried[0] != `\\?\a` || tried[1] != `\\?\b` {
		t.Errorf("tried = %q, want strict enumeration order stopping at first success", tried)
	}
}
