// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package xeniface

import (
	"errors"
	"testing"
)

// fakeCandidate is one enumerated device interface in a fakeSource.
type fakeCandidate struct {
	path        string
	length      uint32
	lengthError error
	detailError error
}

type fakeSource struct {
	candidates []fakeCandidate
	index      int
}

func (s *fakeSource) advance() bool {
	s.index++
	return s.index <= len(s.candidates)
}

func (s *fakeSource) current() fakeCandidate {
	return s.candidates[s.index-1]
}

func (s *fakeSource) detailLength() (uint32, error) {
	candidate := s.current()
	return candidate.length, candidate.lengthError
}

func (s *fakeSource) readDetail(length uint32) (string, error) {
	candidate := s.current()
	if candidate.detailError != nil {
		return "", candidate.detailError
	}
	return candidate.path, nil
}

// drain collects every path the filtering loop yields from a source.
func drain(source candidateSource) []string {
	var paths []string
	for {
		path, ok := nextUsablePath(source)
		if !ok {
			return paths
		}
		paths = append(paths, path)
	}
}

func TestNextUsablePathYieldsAllCandidates(t *testing.T) {
	source := &fakeSource{candidates: []fakeCandidate{
		{path: `\\?\xeniface#0`, length: 64},
		{path: `\\?\xeniface#1`, length: 64},
	}}
	paths := drain(source)
	if len(paths) != 2 || paths[0] != `\\?\xeniface#0` || paths[1] != `\\?\xeniface#1` {
		t.Errorf("paths = %q, want both candidates in order", paths)
	}
}

func TestNextUsablePathSkipsOversizedCandidate(t *testing.T) {
	source := &fakeSource{candidates: []fakeCandidate{
		{path: `\\?\xeniface#0`, length: 64},
		{path: `\\?\oversized`, length: detailBufferBytes + 2},
		{path: `\\?\xeniface#2`, length: 64},
	}}
	paths := drain(source)
	if len(paths) != 2 || paths[0] != `\\?\xeniface#0` || paths[1] != `\\?\xeniface#2` {
		t.Errorf("paths = %q, want the two in-bounds candidates", paths)
	}
}

func TestNextUsablePathSkipsFailingCandidates(t *testing.T) {
	source := &fakeSource{candidates: []fakeCandidate{
		{lengthError: errors.New("length probe failed")},
		{path: `\\?\broken`, length: 64, detailError: errors.New("detail fetch failed")},
		{path: `\\?\xeniface#2`, length: 64},
	}}
	paths := drain(source)
	if len(paths) != 1 || paths[0] != `\\?\xeniface#2` {
		t.Errorf("paths = %q, want only the healthy candidate", paths)
	}
}

func TestNextUsablePathEmptySource(t *testing.T) {
	if path, ok := nextUsablePath(&fakeSource{}); ok {
		t.Errorf("empty source yielded %q", path)
	}
}

func TestNextUsablePathAcceptsExactCapacity(t *testing.T) {
	source := &fakeSource{candidates: []fakeCandidate{
		{path: `\\?\exact`, length: detailBufferBytes},
	}}
	paths := drain(source)
	if len(paths) != 1 {
		t.Errorf("exact-capacity candidate skipped")
	}
}
