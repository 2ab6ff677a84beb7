// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package input

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vxthost/scancode"
)

// Layout - name of an on-screen keyboard layout
type Layout string

// the two layouts of the on-screen keyboard
const (
	DefaultLayout Layout = "default"
	ShiftLayout   Layout = "shift"
)

// button that flips between the layouts
const lockButton = "{lock}"

// Model F style button rows, space separated button ids
var modelF = map[Layout][]string{
	DefaultLayout: {
		"F1 F2 F3 F4 F5 F6 F7 F8 F9 F10 scrl num",
		"{esc} 1 2 3 4 5 6 7 8 9 0 - = {bksp}",
		"{tab} q w e r t y u i o p [ ] {enter}",
		"{lock} a s d f g h j k l ; ' ~ print",
		"shift \\ z x c v b n m , . /",
		"ctrl {alt} {space} {delete}",
	},
	ShiftLayout: {
		"up down left right pgup pgdown home end ins scrl num",
		"{esc} ! @ # $ % ^ & * ( ) _ + {bksp}",
		"{tab} Q W E R T Y U I O P { } {enter}",
		"{lock} A S D F G H J K L : \" ` print",
		"shift | Z X C V B N M < > ?",
		"ctrl {alt} {space} {delete}",
	},
}

// VirtualKeyboard - the on-screen keyboard
type VirtualKeyboard struct {
	sync.RWMutex
	translator *Translator
	layout     Layout
}

// button presses never repeat and have no location
type buttonEvent struct {
	id       string
	consumed bool
}

func (b *buttonEvent) Symbol() string              { return b.id }
func (b *buttonEvent) Location() scancode.Location { return scancode.Standard }
func (b *buttonEvent) Repeat() bool                { return false }
func (b *buttonEvent) Consumed() bool              { return b.consumed }
func (b *buttonEvent) Consume()                    { b.consumed = true }

// NewVirtualKeyboard - on-screen keyboard sending to sink
func NewVirtualKeyboard(sink Sink, log *logger.L) *VirtualKeyboard {
	return &VirtualKeyboard{
		translator: New(scancode.Virtual, sink, log),
		layout:     DefaultLayout,
	}
}

// Press - a button went down
//
// the lock button also switches layout, before and regardless of
// sending its own scan code
func (k *VirtualKeyboard) Press(button string) (scancode.Event, error) {
	if lockButton == button {
		k.Lock()
		if ShiftLayout == k.layout {
			k.layout = DefaultLayout
		} else {
			k.layout = ShiftLayout
		}
		k.Unlock()
	}
	return k.translator.Translate(&buttonEvent{id: button}, false)
}

// Release - a button went up
func (k *VirtualKeyboard) Release(button string) (scancode.Event, error) {
	return k.translator.Translate(&buttonEvent{id: button}, true)
}

// Layout - the active layout
func (k *VirtualKeyboard) Layout() Layout {
	k.RLock()
	defer k.RUnlock()
	return k.layout
}

// Rows - button rows of the active layout
func (k *VirtualKeyboard) Rows() []string {
	rows := modelF[k.Layout()]
	result := make([]string, len(rows))
	copy(result, rows)
	return result
}

// Translator - access to the statistics counters
func (k *VirtualKeyboard) Translator() *Translator {
	return k.translator
}
