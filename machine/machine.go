// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package machine - the boundary between the host and the virtual machine
//
// the machine is an opaque module, the host only steps it, reads its
// frame geometry and forwards input to it.  While stepping, the machine
// calls back into the host through Callbacks.
//
// all calls in both directions happen on a single goroutine, a callback
// never overlaps another Step
package machine

import (
	"strings"

	"github.com/bitmark-inc/vxthost/fault"
)

// Variant - CPU variant selected at initialisation
type Variant int

// supported variants
const (
	Intel8088 Variant = iota
	NecV20
)

// ParseVariant - variant from a configuration name
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(name) {
	case "", "8088", "i8088":
		return Intel8088, nil
	case "v20", "necv20":
		return NecV20, nil
	default:
		return Intel8088, fault.ErrInvalidVariant
	}
}

// String - variant name
func (v Variant) String() string {
	switch v {
	case Intel8088:
		return "8088"
	case NecV20:
		return "v20"
	default:
		return "*unknown*"
	}
}

// Module - operations exported by the machine
type Module interface {
	Initialise(variant Variant) error

	// Step - run up to cycles, returns the number actually executed
	Step(cycles uint64) uint64

	FrameWidth() int
	FrameHeight() int
	// FrameBufferOffset - offset of the RGBA frame in shared memory
	FrameBufferOffset() int

	SendKey(wire byte)
	SendMouse(dx int, dy int, buttons uint8)
}

// Callbacks - operations the host provides to the machine
//
// ptr and size address a range of shared memory, offset is a byte
// offset into the disk image
type Callbacks interface {
	Log(ptr uint32, size uint32)
	TimeMicros() float64
	SpeakerFrequency(hz float64)
	BorderColor(rgb uint32)
	DiskRead(ptr uint32, size uint32, offset uint32)
	DiskWrite(ptr uint32, size uint32, offset uint32)
	DiskSize() uint32
	Shutdown()
}
