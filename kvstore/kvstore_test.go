// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvstore_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vxthost/fault"
	"github.com/bitmark-inc/vxthost/kvstore"
)

const (
	dir         = "testing"
	logCategory = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(dir)
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", logCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(dir)
	os.Exit(rc)
}

// behaviour shared by every backend
func exercise(t *testing.T, name string, store kvstore.Store) {
	keys, err := store.Keys()
	assert.Nil(t, err, "%s: keys", name)
	assert.Equal(t, 0, len(keys), "%s: empty", name)

	_, found, err := store.Get("absent")
	assert.Nil(t, err, "%s: get absent", name)
	assert.False(t, found, "%s: absent found", name)

	assert.Nil(t, store.Put("b 1", "[1,2]"), "%s: put", name)
	assert.Nil(t, store.Put("a 0", "[0]"), "%s: put", name)

	value, found, err := store.Get("b 1")
	assert.Nil(t, err, "%s: get", name)
	assert.True(t, found, "%s: found", name)
	assert.Equal(t, "[1,2]", value, "%s: value", name)

	keys, _ = store.Keys()
	assert.Equal(t, []string{"a 0", "b 1"}, keys, "%s: sorted keys", name)

	// 3+3 + 3+5 used out of 20, replacing a value only counts the difference
	assert.Nil(t, store.Put("b 1", "[1,2,3]"), "%s: replace", name)
	assert.Equal(t, fault.ErrQuotaExceeded, store.Put("c 2", "[0,0]"), "%s: over quota", name)

	_, found, _ = store.Get("c 2")
	assert.False(t, found, "%s: rejected put stored", name)

	assert.Nil(t, store.Clear(), "%s: clear", name)
	keys, _ = store.Keys()
	assert.Equal(t, 0, len(keys), "%s: cleared", name)
	assert.Nil(t, store.Put("c 2", "[0,0]"), "%s: put after clear", name)

	assert.Nil(t, store.Close(), "%s: close", name)
	_, err = store.Keys()
	assert.Equal(t, fault.ErrStoreClosed, err, "%s: keys after close", name)
	assert.Equal(t, fault.ErrStoreClosed, store.Put("d", "e"), "%s: put after close", name)
}

func TestMemory(t *testing.T) {
	exercise(t, "memory", kvstore.NewMemory(20))
}

func TestLevelDB(t *testing.T) {
	store, err := kvstore.OpenLevelDB(filepath.Join(dir, "exercise.leveldb"), 20)
	if !assert.Nil(t, err, "open") {
		return
	}
	exercise(t, "leveldb", store)
}

func TestLevelDBUsageSurvivesReopen(t *testing.T) {
	name := filepath.Join(dir, "reopen.leveldb")

	store, err := kvstore.OpenLevelDB(name, 100)
	if !assert.Nil(t, err, "open") {
		return
	}
	assert.Nil(t, store.Put("123 0", "[1,2,3]"), "put")
	assert.Nil(t, store.Put("123 1", "[4]"), "put")
	assert.Nil(t, store.Put("456 0", "[5]"), "put")
	assert.Nil(t, store.Close(), "close")

	store, err = kvstore.OpenLevelDB(name, 100)
	if !assert.Nil(t, err, "reopen") {
		return
	}
	defer store.Close()

	assert.Equal(t, 12+8+8, store.Used(), "used after reopen")

	keys, err := store.KeysWithPrefix("123 ")
	assert.Nil(t, err, "prefix keys")
	assert.Equal(t, []string{"123 0", "123 1"}, keys, "prefix keys")

	value, found, _ := store.Get("123 0")
	assert.True(t, found, "found after reopen")
	assert.Equal(t, "[1,2,3]", value, "value after reopen")
}

func TestOpen(t *testing.T) {
	log := logger.New(logCategory)

	store, err := kvstore.Open(kvstore.Configuration{Store: "none"}, log)
	assert.Nil(t, store, "none store")
	assert.Equal(t, fault.ErrPersistenceUnavailable, err, "none")

	_, err = kvstore.Open(kvstore.Configuration{Store: "floppy"}, log)
	assert.Equal(t, fault.ErrInvalidStoreType, err, "unknown type")

	store, err = kvstore.Open(kvstore.Configuration{Store: "memory"}, log)
	assert.Nil(t, err, "memory")
	assert.Equal(t, kvstore.DefaultQuota, store.(*kvstore.Memory).Quota(), "default quota")
	store.Close()

	store, err = kvstore.Open(kvstore.Configuration{
		Store:     "LevelDB",
		Directory: filepath.Join(dir, "open.leveldb"),
		Quota:     1000,
	}, log)
	assert.Nil(t, err, "leveldb")
	assert.IsType(t, &kvstore.LevelDB{}, store, "leveldb type")
	store.Close()
}
