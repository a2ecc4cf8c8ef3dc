// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

package xeniface

import "unsafe"

// WatchToken is the opaque identifier the driver returns when a watch
// is registered. It is a kernel-side pointer echoed back as bytes and
// carries no meaning to the client beyond "pass this to
// StoreRemoveWatch to deregister the same watch". Client code must
// not interpret its contents.
type WatchToken [unsafe.Sizeof(uintptr(0))]byte
