// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

import (
	"sync"
	"time"
)

// Process - interface for a background task
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a running set of processes
type T struct {
	sync.Mutex
	shutdown []chan struct{}
	finished sync.WaitGroup
	stopped  bool
}

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make([]chan struct{}, len(processes)),
	}

	for i, p := range processes {
		shutdown := make(chan struct{})
		register.shutdown[i] = shutdown
		register.finished.Add(1)
		go func(p Process) {
			defer register.finished.Done()
			p.Run(args, shutdown)
		}(p)
	}
	return register
}

// Stop - signal all processes and wait for them to finish
//
// calling Stop more than once is harmless
func (t *T) Stop() {
	t.Lock()
	if !t.stopped {
		t.stopped = true
		for _, shutdown := range t.shutdown {
			close(shutdown)
		}
	}
	t.Unlock()

	t.finished.Wait()
}

// Periodic - a process that calls a function at a fixed interval
type Periodic struct {
	Interval time.Duration
	Tick     func(now time.Time)
}

// Run - call Tick on every interval until shutdown
func (p *Periodic) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			return
		case now := <-ticker.C:
			p.Tick(now)
		}
	}
}
