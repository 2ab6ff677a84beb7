// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package input

import (
	"github.com/bitmark-inc/vxthost/scancode"
)

// Event - a raw key event from an input source
//
// Consume marks the event as handled so the source does not also apply
// its default action to it
type Event interface {
	Symbol() string
	Location() scancode.Location
	Repeat() bool
	Consumed() bool
	Consume()
}

// KeyEvent - a plain key event, for sources without their own event type
type KeyEvent struct {
	Key        string
	Position   scancode.Location
	AutoRepeat bool
	Handled    bool
}

// Symbol - key name
func (e *KeyEvent) Symbol() string { return e.Key }

// Location - key position
func (e *KeyEvent) Location() scancode.Location { return e.Position }

// Repeat - true if generated by holding the key down
func (e *KeyEvent) Repeat() bool { return e.AutoRepeat }

// Consumed - true if already handled
func (e *KeyEvent) Consumed() bool { return e.Handled }

// Consume - mark as handled
func (e *KeyEvent) Consume() { e.Handled = true }

// Sink - receiver of translated events, normally the machine boundary
type Sink interface {
	SendKey(wire byte)
	SendMouse(dx int, dy int, buttons uint8)
}
