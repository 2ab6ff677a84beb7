// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kvstore - small durable string key/value stores with a quota
//
// the quota counts the bytes of every key and value held, a Put that
// would take the total over the quota fails with ErrQuotaExceeded and
// leaves the store unchanged
package kvstore

import (
	"sort"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vxthost/fault"
)

// DefaultQuota - bytes allowed when the configuration gives none
const DefaultQuota = 5 * 1024 * 1024

// store types
const (
	TypeLevelDB = "leveldb"
	TypeMemory  = "memory"
	TypeNone    = "none"
)

// Store - operations on a key/value store
type Store interface {
	Keys() ([]string, error)
	Get(key string) (string, bool, error)
	Put(key string, value string) error
	Clear() error
	Close() error
}

// Configuration - select and size a store
type Configuration struct {
	Store     string `gluamapper:"store" json:"store"`
	Directory string `gluamapper:"directory" json:"directory"`
	Quota     int    `gluamapper:"quota" json:"quota"`
}

// Open - create the store described by the configuration
//
// returns ErrPersistenceUnavailable when persistence is switched off or
// the durable store cannot be opened
func Open(configuration Configuration, log *logger.L) (Store, error) {
	quota := configuration.Quota
	if quota <= 0 {
		quota = DefaultQuota
	}

	switch strings.ToLower(configuration.Store) {
	case TypeLevelDB:
		store, err := OpenLevelDB(configuration.Directory, quota)
		if nil != err {
			log.Errorf("open: %q  error: %s", configuration.Directory, err)
			return nil, fault.ErrPersistenceUnavailable
		}
		log.Infof("leveldb: %q  quota: %d  used: %d", configuration.Directory, quota, store.Used())
		return store, nil

	case "", TypeMemory:
		log.Infof("memory  quota: %d", quota)
		return NewMemory(quota), nil

	case TypeNone:
		log.Info("persistence disabled")
		return nil, fault.ErrPersistenceUnavailable

	default:
		return nil, fault.ErrInvalidStoreType
	}
}

// bytes counted against the quota for one entry
func entrySize(key string, value string) int {
	return len(key) + len(value)
}

func sortedKeys(keys []string) []string {
	sort.Strings(keys)
	return keys
}
