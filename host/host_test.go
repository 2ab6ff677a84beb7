// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host_test

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vxthost/background"
	"github.com/bitmark-inc/vxthost/blockstore"
	"github.com/bitmark-inc/vxthost/fault"
	"github.com/bitmark-inc/vxthost/host"
	"github.com/bitmark-inc/vxthost/kvstore"
	"github.com/bitmark-inc/vxthost/machine"
	"github.com/bitmark-inc/vxthost/machine/mocks"
	"github.com/bitmark-inc/vxthost/mode"
	"github.com/bitmark-inc/vxthost/persistence"
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
	_ = mode.Initialise()

	rc := m.Run()

	_ = mode.Finalise()
	logger.Finalise()
	_ = os.RemoveAll(dir)
	os.Exit(rc)
}

// poll until done returns true or give up after a few seconds
func waitFor(t *testing.T, message string, done func() bool) bool {
	for i := 0; i < 300; i += 1 {
		if done() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("timed out waiting for: %s", message)
	return false
}

func newHost(t *testing.T, store kvstore.Store) *host.Host {
	mode.Set(mode.Stopped)
	cache := persistence.New(store, logger.New(logCategory), nil)
	h, err := host.New(host.Configuration{MemoryPages: machine.DefaultPages}, cache)
	if !assert.Nil(t, err, "new host") {
		t.FailNow()
	}
	return h
}

func TestLoadWithoutMachine(t *testing.T) {
	h := newHost(t, nil)
	assert.Equal(t, fault.ErrNotReady, h.Load(make([]byte, 512)), "no machine")
}

func TestLoadBadImage(t *testing.T) {
	h := newHost(t, nil)
	idle, _ := machine.NewIdle(h.Memory(), h)
	assert.Nil(t, h.Attach(idle), "attach")

	assert.Equal(t, fault.ErrImageEmpty, h.Load([]byte{}), "empty")
	assert.Equal(t, fault.ErrImageSizeNotSectorSized, h.Load(make([]byte, 513)), "odd size")
	assert.True(t, mode.IsNot(mode.Ready), "not ready")
}

func TestInvalidFrequency(t *testing.T) {
	_, err := host.New(host.Configuration{Frequency: -1}, persistence.New(nil, logger.New(logCategory), nil))
	assert.Equal(t, fault.ErrInvalidFrequency, err, "negative frequency")

	h := newHost(t, nil)
	assert.Equal(t, fault.ErrInvalidFrequency, h.SetFrequency(0), "zero")
}

func TestRunRequiresReady(t *testing.T) {
	h := newHost(t, nil)
	mode.Set(mode.Loading)

	done := make(chan struct{})
	shutdown := make(chan struct{})
	go func() {
		h.Run(nil, shutdown)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		close(shutdown)
		t.Error("run started while loading")
	}
	assert.True(t, mode.Is(mode.Loading), "mode unchanged")
}

func TestCallbacks(t *testing.T) {
	h := newHost(t, nil)
	idle, _ := machine.NewIdle(h.Memory(), h)
	_ = h.Attach(idle)

	image := make([]byte, 2*blockstore.SectorSize)
	image[700] = 0x5a
	assert.Nil(t, h.Load(image), "load")
	assert.True(t, mode.Is(mode.Ready), "ready")

	assert.Equal(t, uint32(1024), h.DiskSize(), "disk size")

	m := h.Memory()
	h.DiskRead(2000000, 2, 699)
	assert.Equal(t, []byte{0, 0x5a}, m.Slice(2000000, 2), "read")

	copy(m.Slice(2000010, 3), []byte{7, 8, 9})
	h.DiskWrite(2000010, 3, 1021)
	assert.Equal(t, []byte{7, 8, 9}, image[1021:], "write")

	t1 := h.TimeMicros()
	time.Sleep(2 * time.Millisecond)
	assert.True(t, h.TimeMicros()-t1 >= 2000, "time advances in microseconds")

	assert.Panics(t, func() { h.DiskRead(0, 2, 1023) }, "read outside image")
	assert.Panics(t, func() { h.DiskWrite(0, 1, 1024) }, "write outside image")
}

func TestTwoSectorScenario(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := kvstore.NewMemory(kvstore.DefaultQuota)
	h := newHost(t, store)

	image := make([]byte, 4*blockstore.SectorSize)
	original := append([]byte{}, image...)

	var written int32
	module := mocks.NewMockModule(ctl)
	module.EXPECT().Initialise(machine.Intel8088).Return(nil).Times(1)
	module.EXPECT().Step(gomock.Any()).DoAndReturn(func(cycles uint64) uint64 {
		if atomic.CompareAndSwapInt32(&written, 0, 1) {
			copy(h.Memory().Slice(0, 4), []byte{1, 2, 3, 4})
			h.DiskWrite(0, 4, blockstore.SectorSize-2)
		}
		return cycles
	}).AnyTimes()

	assert.Nil(t, h.Attach(module), "attach")
	assert.Nil(t, h.Load(image), "load")

	processes := background.Start(background.Processes{h}, nil)
	waitFor(t, "disk write", func() bool { return 1 == atomic.LoadInt32(&written) })
	processes.Stop()

	signature := persistence.Signature(original)
	keys, _ := store.Keys()
	assert.Equal(t, []string{signature + " 0", signature + " 1"}, keys, "two sectors saved")

	next := append([]byte{}, original...)
	cache := persistence.New(store, logger.New(logCategory), nil)
	restored, err := cache.Start(next)
	assert.Nil(t, err, "restore")
	assert.Equal(t, 2, restored, "restored")
	assert.Equal(t, image, next, "image reproduced")
	assert.Equal(t, []byte{1, 2, 3, 4}, next[blockstore.SectorSize-2:blockstore.SectorSize+2], "written bytes")
}

func TestShutdown(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	h := newHost(t, nil)

	var steps int32
	module := mocks.NewMockModule(ctl)
	module.EXPECT().Initialise(gomock.Any()).Return(nil)
	module.EXPECT().SendMouse(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	module.EXPECT().SendKey(byte(0x1c)).Times(1)
	module.EXPECT().Step(gomock.Any()).DoAndReturn(func(cycles uint64) uint64 {
		atomic.AddInt32(&steps, 1)
		h.Shutdown()
		return cycles
	}).Times(1)

	_ = h.Attach(module)
	_ = h.Load(make([]byte, blockstore.SectorSize))

	processes := background.Start(background.Processes{h}, nil)
	defer processes.Stop()

	select {
	case <-h.Halted():
	case <-time.After(3 * time.Second):
		t.Fatal("no halt")
	}
	assert.True(t, mode.Is(mode.Halted), "mode halted")

	h.SendMouse(1, 1, 0)
	h.SendKey(0x1c)
	waitFor(t, "key delivered", func() bool { return 1 == h.Keys.Uint64() })
	assert.Equal(t, uint64(1), h.DroppedInputs.Uint64(), "mouse dropped after halt")

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&steps), "no steps after halt")
}

func TestFrameAndInput(t *testing.T) {
	h := newHost(t, nil)
	idle, _ := machine.NewIdle(h.Memory(), h)
	_ = h.Attach(idle)
	_ = h.Load(make([]byte, 2*blockstore.SectorSize))

	processes := background.Start(background.Processes{h}, nil)

	frame, ok := h.Frame()
	assert.True(t, ok, "frame answered")
	assert.Equal(t, 640, frame.Width, "width")
	assert.Equal(t, 200, frame.Height, "height")
	assert.Equal(t, 640*200*4, len(frame.Pixels), "pixels")

	h.SendKey(0x1e)
	h.SendKey(0x9e)
	waitFor(t, "keys delivered", func() bool { return 2 == h.Keys.Uint64() })
	assert.Nil(t, h.SetFrequency(8), "new frequency")
	waitFor(t, "cycles stepped", func() bool { return h.Steps.Uint64() > 0 })

	processes.Stop()

	assert.True(t, idle.Cycles() > 0, "machine stepped")
	count, last := idle.Keys()
	assert.Equal(t, uint64(2), count, "keys received")
	assert.Equal(t, byte(0x9e), last, "release code last")
}
