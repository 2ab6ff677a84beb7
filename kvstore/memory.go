// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvstore

import (
	"sync"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/vxthost/fault"
)

// Memory - session only store, contents are lost on exit
type Memory struct {
	sync.Mutex
	cache  *cache.Cache
	quota  int
	used   int
	closed bool
}

// NewMemory - empty store limited to quota bytes
func NewMemory(quota int) *Memory {
	return &Memory{
		cache: cache.New(cache.NoExpiration, 0),
		quota: quota,
	}
}

// Used - bytes counted against the quota
func (m *Memory) Used() int {
	m.Lock()
	defer m.Unlock()
	return m.used
}

// Quota - bytes allowed
func (m *Memory) Quota() int {
	return m.quota
}

// Keys - all keys in order
func (m *Memory) Keys() ([]string, error) {
	m.Lock()
	defer m.Unlock()

	if m.closed {
		return nil, fault.ErrStoreClosed
	}

	items := m.cache.Items()
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	return sortedKeys(keys), nil
}

// Get - value for key, false if absent
func (m *Memory) Get(key string) (string, bool, error) {
	m.Lock()
	defer m.Unlock()

	if m.closed {
		return "", false, fault.ErrStoreClosed
	}

	obj, found := m.cache.Get(key)
	if !found {
		return "", false, nil
	}
	return obj.(string), true, nil
}

// Put - store value under key
func (m *Memory) Put(key string, value string) error {
	m.Lock()
	defer m.Unlock()

	if m.closed {
		return fault.ErrStoreClosed
	}

	used := m.used + entrySize(key, value)
	if obj, found := m.cache.Get(key); found {
		used -= entrySize(key, obj.(string))
	}
	if used > m.quota {
		return fault.ErrQuotaExceeded
	}

	m.cache.Set(key, value, cache.NoExpiration)
	m.used = used
	return nil
}

// Clear - delete every key
func (m *Memory) Clear() error {
	m.Lock()
	defer m.Unlock()

	if m.closed {
		return fault.ErrStoreClosed
	}

	m.cache.Flush()
	m.used = 0
	return nil
}

// Close - later calls fail with ErrStoreClosed
func (m *Memory) Close() error {
	m.Lock()
	defer m.Unlock()

	m.closed = true
	m.cache.Flush()
	return nil
}
