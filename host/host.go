// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package host - drives the machine on a single goroutine
//
// the loop goroutine owns the machine, its memory, the disk image and
// the persistence queue.  Other goroutines only reach the loop through
// channels: translated input, frequency changes and frame requests.
package host

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vxthost/blockstore"
	"github.com/bitmark-inc/vxthost/counter"
	"github.com/bitmark-inc/vxthost/fault"
	"github.com/bitmark-inc/vxthost/machine"
	"github.com/bitmark-inc/vxthost/mode"
	"github.com/bitmark-inc/vxthost/persistence"
	"github.com/bitmark-inc/vxthost/scheduler"
)

// HaltedMessage - logged on shutdown when there is nowhere to return to
const HaltedMessage = "System halted!"

// loop timing
const (
	stepInterval   = time.Millisecond
	reportInterval = time.Second
	flushInterval  = time.Second
	frameTimeout   = time.Second
)

// channel sizes
const (
	inputQueueSize     = 256
	frequencyQueueSize = 4
)

// Configuration - host settings
type Configuration struct {
	Frequency   float64
	Variant     machine.Variant
	MemoryPages int
	ReturnURL   string
	IgnoreMouse bool
}

type inputKind int

const (
	keyInput inputKind = iota
	mouseInput
)

type inputEvent struct {
	kind    inputKind
	wire    byte
	dx      int
	dy      int
	buttons uint8
}

// Host - the runtime around one machine
type Host struct {
	log     *logger.L
	vmLog   *logger.L
	diskLog *logger.L

	configuration Configuration
	epoch         time.Time

	memory *machine.Memory
	module machine.Module
	disk   *blockstore.Store
	cache  *persistence.Cache
	pacer  *scheduler.Pacer
	state  scheduler.State

	input     chan inputEvent
	frequency chan float64
	frames    chan chan machine.Frame
	halt      chan struct{}

	// loop only
	halted      bool
	width       int
	height      int
	speaker     float64
	borderColor uint32

	Steps         counter.Counter
	Keys          counter.Counter
	DroppedInputs counter.Counter
}

// New - create a host with its shared memory, the cache may be disabled
func New(configuration Configuration, cache *persistence.Cache) (*Host, error) {
	if 0 == configuration.MemoryPages {
		configuration.MemoryPages = machine.DefaultPages
	}
	if 0 == configuration.Frequency {
		configuration.Frequency = scheduler.DefaultFrequency
	}

	memory, err := machine.NewMemory(configuration.MemoryPages)
	if nil != err {
		return nil, err
	}

	if configuration.Frequency < 0 {
		return nil, fault.ErrInvalidFrequency
	}

	log := logger.New("host")
	log.Info("initialising…")

	return &Host{
		log:           log,
		vmLog:         logger.New("machine"),
		diskLog:       logger.New("disk"),
		configuration: configuration,
		epoch:         time.Now(),
		memory:        memory,
		cache:         cache,
		input:         make(chan inputEvent, inputQueueSize),
		frequency:     make(chan float64, frequencyQueueSize),
		frames:        make(chan chan machine.Frame),
		halt:          make(chan struct{}),
	}, nil
}

// Memory - shared memory for constructing the machine
func (h *Host) Memory() *machine.Memory {
	return h.memory
}

// Attach - the machine to drive, before Load
func (h *Host) Attach(module machine.Module) error {
	pacer, err := scheduler.New(module, h.configuration.Frequency, logger.New("scheduler"))
	if nil != err {
		return err
	}
	h.module = module
	h.pacer = pacer
	return nil
}

// Load - take the disk image, restore saved sectors and initialise the machine
//
// on success the mode becomes Ready and Run may start
func (h *Host) Load(image []byte) error {
	if nil == h.module {
		return fault.ErrNotReady
	}
	if 0 == len(image) {
		return fault.ErrImageEmpty
	}
	if 0 != len(image)%blockstore.SectorSize {
		return fault.ErrImageSizeNotSectorSized
	}

	mode.Set(mode.Loading)

	restored, err := h.cache.Start(image)
	if nil != err {
		h.log.Warnf("restore failed, persistence disabled: %s", err)
	}
	h.log.Infof("image: %d bytes  signature: %s  restored sectors: %d", len(image), h.cache.Signature(), restored)

	h.disk = blockstore.New(image, h.cache, h.diskLog)

	err = h.module.Initialise(h.configuration.Variant)
	if nil != err {
		h.log.Errorf("initialise machine: %s  error: %s", h.configuration.Variant, err)
		return err
	}

	mode.Set(mode.Ready)
	return nil
}

// Halted - closed once the machine has asked to shut down
func (h *Host) Halted() <-chan struct{} {
	return h.halt
}

// SendKey - queue a scan code for the machine
func (h *Host) SendKey(wire byte) {
	h.enqueue(inputEvent{kind: keyInput, wire: wire})
}

// SendMouse - queue pointer movement for the machine
func (h *Host) SendMouse(dx int, dy int, buttons uint8) {
	if h.configuration.IgnoreMouse {
		return
	}
	h.enqueue(inputEvent{kind: mouseInput, dx: dx, dy: dy, buttons: buttons})
}

func (h *Host) enqueue(event inputEvent) {
	select {
	case h.input <- event:
	default:
		h.DroppedInputs.Increment()
		h.log.Warn("input queue full, event dropped")
	}
}

// SetFrequency - change the target frequency from any goroutine
func (h *Host) SetFrequency(frequency float64) error {
	if frequency <= 0 {
		return fault.ErrInvalidFrequency
	}
	select {
	case h.frequency <- frequency:
		return nil
	default:
		h.log.Warnf("frequency change: %g MHz dropped", frequency)
		return nil
	}
}

// Frame - snapshot of the current picture, false if the loop did not answer
func (h *Host) Frame() (machine.Frame, bool) {
	reply := make(chan machine.Frame, 1)
	select {
	case h.frames <- reply:
	case <-time.After(frameTimeout):
		return machine.Frame{}, false
	}
	return <-reply, true
}

// called on the loop goroutine
func (h *Host) capture() machine.Frame {
	frame := machine.Capture(h.module, h.memory)
	if frame.Width != h.width || frame.Height != h.height {
		h.width = frame.Width
		h.height = frame.Height
		h.log.Infof("resolution: %dx%d", frame.Width, frame.Height)
	}
	return frame
}

// milliseconds since the host was created
func (h *Host) now() float64 {
	return float64(time.Since(h.epoch)) / float64(time.Millisecond)
}
