// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vxthost/background"
)

type bg1 struct {
	count int
}

const (
	initialCount1 = 246
	finalCount1   = 987654321
	initialCount2 = 777
	finalCount2   = 897645312
)

func TestBackground(t *testing.T) {

	proc1 := &bg1{
		count: initialCount1,
	}
	proc2 := &bg1{
		count: initialCount2,
	}

	// list of background processes to start
	var processes = background.Processes{
		proc1,
		proc2,
	}

	p := background.Start(processes, t)
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	assert.Equal(t, finalCount1, proc1.count, "stop failed")
	assert.Equal(t, finalCount2, proc2.count, "stop failed")

	// second stop must not block or panic
	p.Stop()
}

func (state *bg1) Run(args interface{}, shutdown <-chan struct{}) {

	t := args.(*testing.T)

	n := 0
	if initialCount1 == state.count {
		n = 1
	} else if initialCount2 == state.count {
		n = 2
	} else {
		t.Errorf("initialisation failed: unexpected initial count: %d", state.count)
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}
		state.count += 9
		time.Sleep(time.Millisecond)
	}

	// test for the stop operation
	switch n {
	case 1:
		state.count = finalCount1
	case 2:
		state.count = finalCount2
	default:
		t.Errorf("unexpected n: %d", n)
	}
}

func TestPeriodic(t *testing.T) {
	var ticks int32

	p := &background.Periodic{
		Interval: 5 * time.Millisecond,
		Tick: func(_ time.Time) {
			atomic.AddInt32(&ticks, 1)
		},
	}

	h := background.Start(background.Processes{p}, nil)
	time.Sleep(60 * time.Millisecond)
	h.Stop()

	n := atomic.LoadInt32(&ticks)
	assert.True(t, n > 0, "periodic never ticked")

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, atomic.LoadInt32(&ticks), "periodic ticked after stop")
}
