// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockstore - the disk image seen by the machine
//
// the image is held in memory for the whole session, reads and writes
// are byte ranges into it.  Every write reports the full content of
// each 512 byte sector it touched so the persistence layer can save it.
//
// there is no locking, all calls come from inside a machine step on
// the host loop goroutine
package blockstore

import (
	"github.com/bitmark-inc/logger"
)

// SectorSize - unit of persistence
const SectorSize = 512

// DirtyHandler - receives a copy of each modified sector
type DirtyHandler interface {
	OnDirty(sector int, data []byte)
}

// Store - owner of the disk image
type Store struct {
	log     *logger.L
	image   []byte
	handler DirtyHandler
}

// New - take ownership of image
//
// handler may be nil when nothing needs to know about writes
func New(image []byte, handler DirtyHandler, log *logger.L) *Store {
	return &Store{
		log:     log,
		image:   image,
		handler: handler,
	}
}

// Size - of the image in bytes
func (s *Store) Size() int {
	return len(s.image)
}

// Image - the underlying bytes, only for the restore pass
func (s *Store) Image() []byte {
	return s.image
}

// Read - fill into from the image starting at offset
//
// an out of range offset panics
func (s *Store) Read(into []byte, offset int) {
	copy(into, s.image[offset:offset+len(into)])
}

// Write - copy from into the image at offset, then report each touched sector
//
// an out of range offset panics
func (s *Store) Write(from []byte, offset int) {
	copy(s.image[offset:offset+len(from)], from)

	if nil == s.handler || 0 == len(from) {
		return
	}

	first := offset / SectorSize
	last := (offset + len(from) - 1) / SectorSize
	for sector := first; sector <= last; sector += 1 {
		start := sector * SectorSize
		end := start + SectorSize
		if end > len(s.image) {
			end = len(s.image)
		}
		data := make([]byte, end-start)
		copy(data, s.image[start:end])

		s.log.Debugf("dirty sector: %d", sector)
		s.handler.OnDirty(sector, data)
	}
}
