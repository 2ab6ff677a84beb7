// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvstore

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/vxthost/fault"
)

// LevelDB - durable store in a LevelDB directory
type LevelDB struct {
	sync.Mutex
	database *leveldb.DB
	quota    int
	used     int
}

// OpenLevelDB - open or create the database in directory
//
// the bytes already held are summed so the quota applies across sessions
func OpenLevelDB(directory string, quota int) (*LevelDB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}

	db, err := leveldb.OpenFile(directory, opt)
	if nil != err {
		return nil, err
	}

	used := 0
	iter := db.NewIterator(nil, nil)
	for iter.Next() {
		used += len(iter.Key()) + len(iter.Value())
	}
	iter.Release()
	err = iter.Error()
	if nil != err {
		db.Close()
		return nil, err
	}

	return &LevelDB{
		database: db,
		quota:    quota,
		used:     used,
	}, nil
}

// Used - bytes counted against the quota
func (l *LevelDB) Used() int {
	l.Lock()
	defer l.Unlock()
	return l.used
}

// Quota - bytes allowed
func (l *LevelDB) Quota() int {
	return l.quota
}

// Keys - all keys in order
func (l *LevelDB) Keys() ([]string, error) {
	return l.KeysWithPrefix("")
}

// KeysWithPrefix - keys starting with prefix, in order
func (l *LevelDB) KeysWithPrefix(prefix string) ([]string, error) {
	l.Lock()
	defer l.Unlock()

	if nil == l.database {
		return nil, fault.ErrStoreClosed
	}

	var r *ldb_util.Range
	if "" != prefix {
		r = ldb_util.BytesPrefix([]byte(prefix))
	}

	keys := make([]string, 0)
	iter := l.database.NewIterator(r, nil)
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Release()
	return keys, iter.Error()
}

// Get - value for key, false if absent
func (l *LevelDB) Get(key string) (string, bool, error) {
	l.Lock()
	defer l.Unlock()

	if nil == l.database {
		return "", false, fault.ErrStoreClosed
	}

	value, err := l.database.Get([]byte(key), nil)
	if leveldb.ErrNotFound == err {
		return "", false, nil
	}
	if nil != err {
		return "", false, err
	}
	return string(value), true, nil
}

// Put - store value under key
func (l *LevelDB) Put(key string, value string) error {
	l.Lock()
	defer l.Unlock()

	if nil == l.database {
		return fault.ErrStoreClosed
	}

	used := l.used + entrySize(key, value)
	old, err := l.database.Get([]byte(key), nil)
	if nil == err {
		used -= entrySize(key, string(old))
	} else if leveldb.ErrNotFound != err {
		return err
	}

	if used > l.quota {
		return fault.ErrQuotaExceeded
	}

	err = l.database.Put([]byte(key), []byte(value), nil)
	if nil != err {
		return err
	}
	l.used = used
	return nil
}

// Clear - delete every key
func (l *LevelDB) Clear() error {
	l.Lock()
	defer l.Unlock()

	if nil == l.database {
		return fault.ErrStoreClosed
	}

	batch := new(leveldb.Batch)
	iter := l.database.NewIterator(nil, nil)
	for iter.Next() {
		batch.Delete(append([]byte{}, iter.Key()...))
	}
	iter.Release()
	err := iter.Error()
	if nil != err {
		return err
	}

	err = l.database.Write(batch, nil)
	if nil != err {
		return err
	}
	l.used = 0
	return nil
}

// Close - release the database, later calls fail with ErrStoreClosed
func (l *LevelDB) Close() error {
	l.Lock()
	defer l.Unlock()

	if nil == l.database {
		return nil
	}
	err := l.database.Close()
	l.database = nil
	return err
}
