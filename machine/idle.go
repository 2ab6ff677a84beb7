// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package machine

import (
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/vxthost/fault"
)

// geometry of the idle machine frame
const (
	idleWidth  = 640
	idleHeight = 200
)

// layout of the idle machine in shared memory
const (
	idleFrameOffset  = 0
	idleFrameSize    = idleWidth * idleHeight * bytesPerPixel
	idleBootOffset   = idleFrameOffset + idleFrameSize
	idleBootSize     = 512
	idleLogOffset    = idleBootOffset + idleBootSize
	idleLogSize      = 256
	idleMemoryNeeded = idleLogOffset + idleLogSize
)

// boot sector signature, little endian at offset 510
const bootSignature = 0xaa55

// Idle - a machine that executes no instructions
//
// every requested cycle is consumed so the pacer can be exercised
// without a real machine linked in.  At initialisation it reads the boot
// sector through the disk callback and reports it through the log
// callback.
type Idle struct {
	memory    *Memory
	callbacks Callbacks
	variant   Variant
	cycles    uint64
	keyCount  uint64
	lastKey   byte
}

// NewIdle - create an idle machine
func NewIdle(memory *Memory, callbacks Callbacks) (*Idle, error) {
	if memory.Size() < idleMemoryNeeded {
		return nil, fault.ErrInvalidMemoryPages
	}
	return &Idle{
		memory:    memory,
		callbacks: callbacks,
	}, nil
}

// Initialise - probe the boot sector
func (m *Idle) Initialise(variant Variant) error {
	m.variant = variant
	m.cycles = 0

	message := fmt.Sprintf("idle machine: %s  disk: %d bytes", variant, m.callbacks.DiskSize())
	if m.callbacks.DiskSize() >= idleBootSize {
		m.callbacks.DiskRead(idleBootOffset, idleBootSize, 0)
		boot := m.memory.Slice(idleBootOffset, idleBootSize)
		if bootSignature == binary.LittleEndian.Uint16(boot[510:]) {
			message += "  bootable"
		} else {
			message += "  not bootable"
		}
	}
	m.log(message)
	return nil
}

// Step - consume all cycles
func (m *Idle) Step(cycles uint64) uint64 {
	m.cycles += cycles
	return cycles
}

// Cycles - total consumed since initialisation
func (m *Idle) Cycles() uint64 {
	return m.cycles
}

// FrameWidth - in pixels
func (m *Idle) FrameWidth() int { return idleWidth }

// FrameHeight - in pixels
func (m *Idle) FrameHeight() int { return idleHeight }

// FrameBufferOffset - always the start of memory
func (m *Idle) FrameBufferOffset() int { return idleFrameOffset }

// SendKey - keys are counted, nothing reads them
func (m *Idle) SendKey(wire byte) {
	m.keyCount += 1
	m.lastKey = wire
}

// Keys - number of scan codes received and the most recent one
func (m *Idle) Keys() (uint64, byte) {
	return m.keyCount, m.lastKey
}

// SendMouse - ignored
func (m *Idle) SendMouse(dx int, dy int, buttons uint8) {}

func (m *Idle) log(message string) {
	n := copy(m.memory.Slice(idleLogOffset, idleLogSize), message)
	m.callbacks.Log(idleLogOffset, uint32(n))
}
