// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package machine

import (
	"github.com/bitmark-inc/vxthost/fault"
)

// PageSize - unit of shared memory allocation
const PageSize = 65536

// DefaultPages - shared memory size used by the web host
const DefaultPages = 350

// Memory - shared memory between host and machine, fixed size for
// the whole session
type Memory struct {
	data []byte
}

// NewMemory - allocate pages of shared memory
func NewMemory(pages int) (*Memory, error) {
	if pages <= 0 {
		return nil, fault.ErrInvalidMemoryPages
	}
	return &Memory{
		data: make([]byte, pages*PageSize),
	}, nil
}

// Size - in bytes
func (m *Memory) Size() int {
	return len(m.data)
}

// Slice - a view of size bytes at ptr
//
// panics if the range is outside the memory, this is a contract
// breach by the machine
func (m *Memory) Slice(ptr uint32, size uint32) []byte {
	return m.data[ptr : uint64(ptr)+uint64(size)]
}

// String - text of len bytes at ptr, each byte is one character
func (m *Memory) String(ptr uint32, size uint32) string {
	b := m.Slice(ptr, size)
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}
