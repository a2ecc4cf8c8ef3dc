// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package xeniface

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"
)

// interfaceClassGUID is the well-known device interface class the
// xeniface driver registers: b2cfb085-aa5e-47e1-8bf7-9793f3154565.
var interfaceClassGUID = windows.GUID{
	Data1: 0xb2cfb085,
	Data2: 0xaa5e,
	Data3: 0x47e1,
	Data4: [8]byte{0x8b, 0xf7, 0x97, 0x93, 0xf3, 0x15, 0x45, 0x65},
}

// SetupDiGetClassDevs flags: restrict the set to device interfaces of
// the class that are currently present.
const (
	digcfPresent         = 0x00000002
	digcfDeviceInterface = 0x00000010
)

// The device-interface half of setupapi is not exported by
// golang.org/x/sys/windows, so the four calls the locator needs are
// bound directly.
var (
	setupapi = windows.NewLazySystemDLL("setupapi.dll")

	procSetupDiGetClassDevsW             = setupapi.NewProc("SetupDiGetClassDevsW")
	procSetupDiEnumDeviceInterfaces      = setupapi.NewProc("SetupDiEnumDeviceInterfaces")
	procSetupDiGetDeviceInterfaceDetailW = setupapi.NewProc("SetupDiGetDeviceInterfaceDetailW")
	procSetupDiDestroyDeviceInfoList     = setupapi.NewProc("SetupDiDestroyDeviceInfoList")
)

// deviceInterfaceData mirrors SP_DEVICE_INTERFACE_DATA.
type deviceInterfaceData struct {
	cbSize             uint32
	interfaceClassGUID windows.GUID
	flags              uint32
	reserved           uintptr
}

// interfaceDetail overlays the variable-length
// SP_DEVICE_INTERFACE_DETAIL_DATA_W with a fixed path array, giving a
// detailBufferBytes-capacity receive buffer whose layout the OS call
// expects: a cbSize header immediately followed by the UTF-16 path.
// The required length reported by the OS is checked against the
// capacity before this buffer is ever passed to a copy.
type interfaceDetail struct {
	cbSize uint32
	path   [maxDetailPathChars]uint16
}

// detailHeaderSize is the value cbSize must carry: the C
// sizeof(SP_DEVICE_INTERFACE_DETAIL_DATA_W), which is 6 on 32-bit
// (packed) and 8 on 64-bit (one WCHAR padded to pointer alignment).
func detailHeaderSize() uint32 {
	if unsafe.Sizeof(uintptr(0)) == 8 {
		return 8
	}
	return 6
}

// Locator is one enumeration pass over the currently-present xeniface
// device interfaces. A pass is lazy and non-restartable: create a new
// Locator to scan again. Close must be called to release the
// device-info list.
type Locator struct {
	devInfo windows.Handle
	index   uint32
	data    deviceInterfaceData
	detail  *interfaceDetail
}

// NewLocator opens a device-info list for the xeniface interface
// class, restricted to present interfaces.
func NewLocator() (*Locator, error) {
	guid := interfaceClassGUID
	handle, _, callErr := procSetupDiGetClassDevsW.Call(
		uintptr(unsafe.Pointer(&guid)),
		0,
		0,
		uintptr(digcfPresent|digcfDeviceInterface),
	)
	if windows.Handle(handle) == windows.InvalidHandle {
		return nil, fmt.Errorf("xeniface: SetupDiGetClassDevs: %w", callErr)
	}
	return &Locator{
		devInfo: windows.Handle(handle),
		detail:  new(interfaceDetail),
	}, nil
}

// Next yields the next usable device path, skipping candidates whose
// detail record is oversized or cannot be retrieved. False means the
// pass is exhausted.
func (l *Locator) Next() (string, bool) {
	return nextUsablePath(l)
}

// Close destroys the device-info list. Failures are logged; there is
// nothing a caller could do with them.
func (l *Locator) Close() {
	if l.devInfo == 0 {
		return
	}
	ok, _, callErr := procSetupDiDestroyDeviceInfoList.Call(uintptr(l.devInfo))
	if ok == 0 {
		slog.Warn("destroying device info list", "error", callErr)
	}
	l.devInfo = 0
}

// advance implements candidateSource over SetupDiEnumDeviceInterfaces.
func (l *Locator) advance() bool {
	l.data = deviceInterfaceData{cbSize: uint32(unsafe.Sizeof(l.data))}
	guid := interfaceClassGUID
	ok, _, _ := procSetupDiEnumDeviceInterfaces.Call(
		uintptr(l.devInfo),
		0,
		uintptr(unsafe.Pointer(&guid)),
		uintptr(l.index),
		uintptr(unsafe.Pointer(&l.data)),
	)
	l.index++
	return ok != 0
}

// detailLength probes the byte length the OS requires for the current
// interface's detail record. The probe call fails with
// ERROR_INSUFFICIENT_BUFFER by construction; only the reported length
// is wanted.
func (l *Locator) detailLength() (uint32, error) {
	var required uint32
	ok, _, callErr := procSetupDiGetDeviceInterfaceDetailW.Call(
		uintptr(l.devInfo),
		uintptr(unsafe.Pointer(&l.data)),
		0,
		0,
		uintptr(unsafe.Pointer(&required)),
		0,
	)
	if ok == 0 && !errors.Is(callErr, windows.ERROR_INSUFFICIENT_BUFFER) {
		return 0, fmt.Errorf("probing interface detail length: %w", callErr)
	}
	return required, nil
}

// readDetail fetches the current interface's detail record into the
// fixed buffer and extracts the device path. The caller has already
// verified that length fits the buffer.
func (l *Locator) readDetail(length uint32) (string, error) {
	l.detail.cbSize = detailHeaderSize()
	ok, _, callErr := procSetupDiGetDeviceInterfaceDetailW.Call(
		uintptr(l.devInfo),
		uintptr(unsafe.Pointer(&l.data)),
		uintptr(unsafe.Pointer(l.detail)),
		uintptr(length),
		0,
		0,
	)
	if ok == 0 {
		return "", fmt.Errorf("fetching interface detail: %w", callErr)
	}
	return windows.UTF16ToString(l.detail.path[:]), nil
}
