// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package input

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/vxthost/counter"
	"github.com/bitmark-inc/vxthost/fault"
	"github.com/bitmark-inc/vxthost/scancode"
)

// unknown key messages allowed per second, and burst
const (
	unmappedLogRate  = 2
	unmappedLogBurst = 10
)

// Translator - convert raw key events to scan codes for one source
type Translator struct {
	log     *logger.L
	source  scancode.Source
	sink    Sink
	limiter *rate.Limiter

	Emitted counter.Counter
	Dropped counter.Counter
}

// New - create a translator that sends to sink
func New(source scancode.Source, sink Sink, log *logger.L) *Translator {
	return &Translator{
		log:     log,
		source:  source,
		sink:    sink,
		limiter: rate.NewLimiter(rate.Every(time.Second/unmappedLogRate), unmappedLogBurst),
	}
}

// Translate - send the scan code of a key press or release to the sink
//
// returns a DropError when nothing was sent:
//   ErrAlreadyConsumed - some other handler took the event first
//   ErrAutoRepeat      - key held down, the event is still consumed
//   ErrUnmappedInput   - no scan code, the event is left for the source
func (t *Translator) Translate(event Event, release bool) (scancode.Event, error) {
	if event.Consumed() {
		t.Dropped.Increment()
		return scancode.Event{}, fault.ErrAlreadyConsumed
	}

	if event.Repeat() {
		event.Consume()
		t.Dropped.Increment()
		return scancode.Event{}, fault.ErrAutoRepeat
	}

	code, ok := scancode.Resolve(t.source, event.Symbol(), event.Location())
	if !ok {
		t.Dropped.Increment()
		if t.limiter.Allow() {
			t.log.Warnf("unknown %s key: %q", t.source, event.Symbol())
		}
		return scancode.Event{}, fault.ErrUnmappedInput
	}

	scan := scancode.Event{
		Code:    code,
		Release: release,
	}
	t.sink.SendKey(scan.Wire())
	event.Consume()
	t.Emitted.Increment()

	t.log.Tracef("%s key: %q  wire: 0x%02x", t.source, event.Symbol(), scan.Wire())

	return scan, nil
}

// Handle - translate and discard the drop reason
func (t *Translator) Handle(event Event, release bool) {
	_, err := t.Translate(event, release)
	if nil != err && !fault.IsErrDrop(err) {
		t.log.Errorf("translate: %q  error: %s", event.Symbol(), err)
	}
}

// Press - handle a key going down
func (t *Translator) Press(event Event) {
	t.Handle(event, false)
}

// Release - handle a key coming up
func (t *Translator) Release(event Event) {
	t.Handle(event, true)
}

// Mouse - forward relative pointer movement and the button state
func (t *Translator) Mouse(dx int, dy int, buttons uint8) {
	t.sink.SendMouse(dx, dy, buttons)
}
