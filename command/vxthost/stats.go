// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vxthost/background"
	"github.com/bitmark-inc/vxthost/host"
	"github.com/bitmark-inc/vxthost/input"
	"github.com/bitmark-inc/vxthost/persistence"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// periodic memory and throughput statistics
func memstats(h *host.Host, keyboard *input.Translator, cache *persistence.Cache) background.Process {

	log := logger.New("memory")

	return &background.Periodic{
		Interval: statsDelay,
		Tick: func(now time.Time) {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			text, err := json.Marshal(m)
			if nil != err {
				log.Errorf("marshal error: %s", err)
			} else {
				log.Debugf("stats: %s", text)
			}
			a := m.Alloc / mega
			t := m.TotalAlloc / mega
			s := m.Sys / mega
			log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, s)

			log.Infof("steps: %d  keys: %d  dropped input: %d",
				h.Steps.Uint64(), h.Keys.Uint64(), h.DroppedInputs.Uint64())
			log.Infof("keyboard emitted: %d  dropped: %d",
				keyboard.Emitted.Uint64(), keyboard.Dropped.Uint64())
			log.Infof("persistence restored: %d  written: %d",
				cache.Restored.Uint64(), cache.Written.Uint64())
		},
	}
}
