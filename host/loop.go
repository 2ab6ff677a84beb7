// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host

import (
	"time"

	"github.com/bitmark-inc/vxthost/mode"
)

// Run - the host loop, a background process
//
// nothing runs until Load has put the mode into Ready
func (h *Host) Run(args interface{}, shutdown <-chan struct{}) {
	log := h.log

	if mode.IsNot(mode.Ready) {
		log.Errorf("not started, mode: %s", mode.String())
		return
	}

	log.Info("starting…")
	mode.Set(mode.Running)

	step := time.NewTicker(stepInterval)
	defer step.Stop()
	report := time.NewTicker(reportInterval)
	defer report.Stop()
	flush := time.NewTicker(flushInterval)
	defer flush.Stop()

	h.state.WallClockLast = h.now()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-step.C:
			_, executed := h.pacer.Tick(&h.state, h.now())
			if 0 != executed {
				h.Steps.Increment()
			}

		case <-report.C:
			h.pacer.Report(&h.state)

		case <-flush.C:
			h.cache.Flush()

		case event := <-h.input:
			h.deliver(event)

		case frequency := <-h.frequency:
			err := h.pacer.SetFrequency(frequency)
			if nil != err {
				log.Errorf("set frequency: %g  error: %s", frequency, err)
			}

		case reply := <-h.frames:
			reply <- h.capture()
		}
	}

	log.Info("shutting down…")
	n := h.cache.Flush()
	log.Infof("final flush: %d sectors  %s", n, h.cache)
	log.Info("stopped")
}

// pass one input event to the machine
func (h *Host) deliver(event inputEvent) {
	switch event.kind {
	case keyInput:
		h.Keys.Increment()
		h.module.SendKey(event.wire)
	case mouseInput:
		if h.halted {
			h.DroppedInputs.Increment()
			return
		}
		h.module.SendMouse(event.dx, event.dy, event.buttons)
	}
}
