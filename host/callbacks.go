// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host

import (
	"github.com/bitmark-inc/vxthost/fault"
	"github.com/bitmark-inc/vxthost/mode"
)

// the machine calls these during Step, so always on the loop goroutine

// Log - a message written by the machine into shared memory
func (h *Host) Log(ptr uint32, size uint32) {
	h.vmLog.Info(h.memory.String(ptr, size))
}

// TimeMicros - microseconds since the host was created
func (h *Host) TimeMicros() float64 {
	return h.now() * 1000
}

// SpeakerFrequency - tone to play, zero for silence
func (h *Host) SpeakerFrequency(hz float64) {
	if hz != h.speaker {
		h.speaker = hz
		h.vmLog.Debugf("speaker: %g Hz", hz)
	}
}

// BorderColor - colour around the frame as 0xRRGGBB
func (h *Host) BorderColor(rgb uint32) {
	if rgb != h.borderColor {
		h.borderColor = rgb
		h.vmLog.Debugf("border: #%06x", rgb)
	}
}

// DiskRead - copy size bytes of the image at offset into memory at ptr
func (h *Host) DiskRead(ptr uint32, size uint32, offset uint32) {
	h.checkDisk("read", size, offset)
	h.disk.Read(h.memory.Slice(ptr, size), int(offset))
}

// DiskWrite - copy size bytes of memory at ptr into the image at offset
func (h *Host) DiskWrite(ptr uint32, size uint32, offset uint32) {
	h.checkDisk("write", size, offset)
	h.disk.Write(h.memory.Slice(ptr, size), int(offset))
}

// DiskSize - image size in bytes
func (h *Host) DiskSize() uint32 {
	return uint32(h.disk.Size())
}

// an access outside the image is a machine fault, nothing can continue
func (h *Host) checkDisk(operation string, size uint32, offset uint32) {
	if uint64(offset)+uint64(size) > uint64(h.disk.Size()) {
		fault.Panicf("disk %s: %d bytes at offset: %d  outside image of: %d bytes", operation, size, offset, h.disk.Size())
	}
}

// Shutdown - the machine has powered off
//
// the loop keeps ticking but the pacer requests nothing more
func (h *Host) Shutdown() {
	if h.halted {
		return
	}
	h.halted = true
	h.pacer.Halt()
	mode.Set(mode.Halted)

	if "" != h.configuration.ReturnURL {
		h.log.Infof("redirect: %s", h.configuration.ReturnURL)
	} else {
		h.log.Info(HaltedMessage)
	}
	close(h.halt)
}
