// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package xeniface

import "testing"

// TestStoreControlCodes pins the encoded control codes against both
// the CTL_CODE formula and the literal values observed on the wire,
// so a change to either the formula or a function number is caught.
func TestStoreControlCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     uint32
		function uint32
		want     uint32
	}{
		{"read", StoreRead, 0x800, 0x222000},
		{"write", StoreWrite, 0x801, 0x222004},
		{"directory", StoreDirectory, 0x802, 0x222008},
		{"remove", StoreRemove, 0x803, 0x22200C},
		{"add-watch", StoreAddWatch, 0x805, 0x222014},
		{"remove-watch", StoreRemoveWatch, 0x806, 0x222018},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.code != test.want {
				t.Errorf("code = %#x, want %#x", test.code, test.want)
			}
			formula := ctlCode(fileDeviceUnknown, test.function, methodBuffered, fileAnyAccess)
			if test.code != formula {
				t.Errorf("code = %#x, CTL_CODE formula gives %#x", test.code, formula)
			}
		})
	}
}
