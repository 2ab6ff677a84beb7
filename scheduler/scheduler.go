// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scheduler - pace the machine against the wall clock
//
// each tick converts the time since the previous tick into a number of
// machine cycles at the target frequency.  The count is capped at 15ms
// worth of cycles so a stalled host does not try to catch up in one
// burst, the lost time is simply dropped.
package scheduler

import (
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vxthost/fault"
)

// cycles per millisecond at 1 MHz
const cyclesPerMillisecond = 1000

// the most wall clock time a single tick may cover
const maximumTickMilliseconds = 15

// frequency once halted, caps every tick at zero cycles
const haltedFrequency = 1.0 / 1000000

// DefaultFrequency - original IBM PC/XT clock in MHz
const DefaultFrequency = 4.77

// Stepper - the part of the machine the pacer drives
type Stepper interface {
	Step(cycles uint64) uint64
}

// State - carried between ticks
type State struct {
	WallClockLast    float64 // milliseconds
	CycleAccumulator uint64  // executed since the last report
}

// Pacer - converts elapsed time into machine steps
type Pacer struct {
	log       *logger.L
	module    Stepper
	frequency float64
	halted    bool
}

// New - create a pacer for module at frequency MHz
func New(module Stepper, frequency float64, log *logger.L) (*Pacer, error) {
	if !validFrequency(frequency) {
		return nil, fault.ErrInvalidFrequency
	}
	log.Infof("target frequency: %g MHz", frequency)
	return &Pacer{
		log:       log,
		module:    module,
		frequency: frequency,
	}, nil
}

func validFrequency(frequency float64) bool {
	return frequency > 0 && !math.IsInf(frequency, 0) && !math.IsNaN(frequency)
}

// Frequency - current target in MHz
func (p *Pacer) Frequency() float64 {
	return p.frequency
}

// Halted - true after Halt
func (p *Pacer) Halted() bool {
	return p.halted
}

// Cap - the most cycles one tick can request
func (p *Pacer) Cap() uint64 {
	return uint64(math.Round(p.frequency * maximumTickMilliseconds * cyclesPerMillisecond))
}

// Cycles - cycles owed for delta milliseconds, zero if delta is not positive
func (p *Pacer) Cycles(delta float64) uint64 {
	if delta <= 0 || math.IsNaN(delta) {
		return 0
	}
	cycles := delta * p.frequency * cyclesPerMillisecond
	limit := p.frequency * maximumTickMilliseconds * cyclesPerMillisecond
	if cycles > limit {
		cycles = limit
	}
	return uint64(math.Round(cycles))
}

// Tick - step the machine for the time elapsed up to now
//
// the accumulator counts what the machine executed, which may differ
// from what was requested
func (p *Pacer) Tick(state *State, now float64) (requested uint64, executed uint64) {
	requested = p.Cycles(now - state.WallClockLast)
	state.WallClockLast = now

	if 0 == requested {
		return 0, 0
	}

	executed = p.module.Step(requested)
	state.CycleAccumulator += executed
	return requested, executed
}

// Report - effective frequency since the previous report, in MHz
//
// assumes reports are one second apart, the accumulator is reset
func (p *Pacer) Report(state *State) float64 {
	mhz := float64(state.CycleAccumulator) / 1000000
	state.CycleAccumulator = 0
	p.log.Infof("effective frequency: %.2f MHz", mhz)
	return mhz
}

// Halt - stop requesting cycles, ticks continue but step nothing
func (p *Pacer) Halt() {
	if p.halted {
		return
	}
	p.halted = true
	p.frequency = haltedFrequency
	p.log.Info("halted")
}

// SetFrequency - change the target, ignored once halted
func (p *Pacer) SetFrequency(frequency float64) error {
	if !validFrequency(frequency) {
		return fault.ErrInvalidFrequency
	}
	if p.halted {
		p.log.Warnf("ignore frequency: %g MHz after halt", frequency)
		return nil
	}
	if frequency != p.frequency {
		p.log.Infof("target frequency: %g MHz", frequency)
		p.frequency = frequency
	}
	return nil
}
