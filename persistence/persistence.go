// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package persistence - keep modified disk sectors across sessions
//
// sectors are saved under "<signature> <index>" where the signature is
// the CRC-32 of the disk image as it was first loaded, so changes made
// to one image are never applied to another.  The value is the sector
// content as a JSON array of byte values.
//
// writes are queued and saved in batches by Flush, if the store rejects
// a write the whole store is emptied and persistence stays off for the
// rest of the session
//
// a Cache is not safe for concurrent use, the host calls it only from
// its loop goroutine
package persistence

import (
	"encoding/json"
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vxthost/blockstore"
	"github.com/bitmark-inc/vxthost/counter"
	"github.com/bitmark-inc/vxthost/fault"
	"github.com/bitmark-inc/vxthost/kvstore"
)

// StorageFullWarning - shown to the user when the store rejects a write
const StorageFullWarning = "persistent storage is full, all persistent data will be deleted"

// Cache - write behind cache of dirty sectors
type Cache struct {
	log       *logger.L
	store     kvstore.Store
	warn      func(message string)
	enabled   bool
	signature string

	// pending sectors in the order they were first dirtied
	order   []int
	pending map[int][]byte

	Restored counter.Counter
	Written  counter.Counter
}

// New - create a cache over store
//
// a nil store gives a disabled cache that silently discards everything,
// warn is called with a message for the user if the store fills up
func New(store kvstore.Store, log *logger.L, warn func(message string)) *Cache {
	if nil == warn {
		warn = func(string) {}
	}
	return &Cache{
		log:     log,
		store:   store,
		warn:    warn,
		enabled: nil != store,
		pending: make(map[int][]byte),
	}
}

// Signature - CRC-32 of the image as an unsigned decimal string
func Signature(image []byte) string {
	return strconv.FormatUint(uint64(crc32.ChecksumIEEE(image)), 10)
}

// Key - store key of a sector
func Key(signature string, sector int) string {
	return signature + " " + strconv.Itoa(sector)
}

// ParseKey - split a store key into signature and sector index
func ParseKey(key string) (string, int, error) {
	parts := strings.SplitN(key, " ", 2)
	if 2 != len(parts) || "" == parts[0] {
		return "", 0, fault.ErrInvalidSectorKey
	}
	sector, err := strconv.Atoi(parts[1])
	if nil != err || sector < 0 {
		return "", 0, fault.ErrInvalidSectorKey
	}
	return parts[0], sector, nil
}

// Encode - sector bytes as a JSON array of numbers
func Encode(data []byte) string {
	values := make([]int, len(data))
	for i, b := range data {
		values[i] = int(b)
	}
	buffer, _ := json.Marshal(values)
	return string(buffer)
}

// Decode - JSON array of numbers back to sector bytes
func Decode(value string) ([]byte, error) {
	values := []int{}
	err := json.Unmarshal([]byte(value), &values)
	if nil != err {
		return nil, err
	}
	if blockstore.SectorSize != len(values) {
		return nil, fault.ErrSectorDataLength
	}
	data := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fault.ErrSectorDataLength
		}
		data[i] = byte(v)
	}
	return data, nil
}

// Enabled - false if there is no store or it has failed
func (c *Cache) Enabled() bool {
	return c.enabled
}

// Signature - of the image given to Start
func (c *Cache) Signature() string {
	return c.signature
}

// Pending - number of sectors waiting for Flush
func (c *Cache) Pending() int {
	return len(c.order)
}

// Clear - remove everything from the store, including other images
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	c.log.Warn("clear persistent storage")
	return c.store.Clear()
}

// Start - fingerprint the image and apply every sector saved for it
//
// must be called before the machine runs, returns the number of
// sectors restored
func (c *Cache) Start(image []byte) (int, error) {
	c.signature = Signature(image)

	if !c.enabled {
		return 0, nil
	}

	c.log.Infof("image signature: %s", c.signature)

	keys, err := c.store.Keys()
	if nil != err {
		c.log.Errorf("list keys error: %s", err)
		c.enabled = false
		return 0, err
	}

	restored := 0
	for _, key := range keys {
		signature, sector, err := ParseKey(key)
		if nil != err {
			c.log.Warnf("key: %q  error: %s", key, err)
			continue
		}
		if signature != c.signature {
			continue
		}

		offset := sector * blockstore.SectorSize
		if offset+blockstore.SectorSize > len(image) {
			c.log.Warnf("key: %q  error: %s", key, fault.ErrSectorOutOfRange)
			continue
		}

		value, found, err := c.store.Get(key)
		if nil != err {
			c.log.Errorf("get: %q  error: %s", key, err)
			continue
		}
		if !found {
			continue
		}

		data, err := Decode(value)
		if nil != err {
			c.log.Warnf("key: %q  error: %s", key, err)
			continue
		}

		copy(image[offset:], data)
		c.log.Debugf("restore sector: %d", sector)
		restored += 1
	}

	c.Restored.Add(uint64(restored))
	c.log.Infof("restored sectors: %d", restored)

	return restored, nil
}

// OnDirty - queue a sector to be saved
//
// a sector already queued keeps its place and takes the newer content
func (c *Cache) OnDirty(sector int, data []byte) {
	if !c.enabled {
		return
	}
	if _, ok := c.pending[sector]; !ok {
		c.order = append(c.order, sector)
	}
	c.pending[sector] = data
}

// Flush - save all queued sectors in order, returns the number written
func (c *Cache) Flush() int {
	if !c.enabled || 0 == len(c.order) {
		return 0
	}

	written := 0
	for _, sector := range c.order {
		key := Key(c.signature, sector)
		err := c.store.Put(key, Encode(c.pending[sector]))
		if nil != err {
			c.fail(key, err)
			break
		}
		written += 1
	}

	c.order = nil
	c.pending = make(map[int][]byte)

	if written > 0 {
		c.Written.Add(uint64(written))
		c.log.Infof("%d sectors written", written)
	}
	return written
}

// the store is unusable, drop everything it holds and stop using it
func (c *Cache) fail(key string, err error) {
	c.log.Criticalf("put: %q  error: %s", key, err)
	c.warn(StorageFullWarning)

	c.enabled = false

	err = c.store.Clear()
	if nil != err {
		c.log.Errorf("clear error: %s", err)
	}
}

// String - summary for the statistics log
func (c *Cache) String() string {
	return fmt.Sprintf("enabled: %t  pending: %d  restored: %d  written: %d",
		c.enabled, len(c.order), c.Restored.Uint64(), c.Written.Uint64())
}
