// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package input_test

import (
	"strings"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vxthost/fault"
	"github.com/bitmark-inc/vxthost/input"
	"github.com/bitmark-inc/vxthost/scancode"
)

func TestVirtualLockToggle(t *testing.T) {
	r := &recorder{}
	kb := input.NewVirtualKeyboard(r, logger.New(logCategory))

	assert.Equal(t, input.DefaultLayout, kb.Layout())

	scan, err := kb.Press("{lock}")
	assert.Nil(t, err)
	assert.Equal(t, scancode.Code(58), scan.Code, "lock still sends its code")
	assert.Equal(t, input.ShiftLayout, kb.Layout(), "press did not toggle")

	// release does not toggle back
	_, err = kb.Release("{lock}")
	assert.Nil(t, err)
	assert.Equal(t, input.ShiftLayout, kb.Layout(), "release toggled")

	_, _ = kb.Press("{lock}")
	assert.Equal(t, input.DefaultLayout, kb.Layout(), "second press did not toggle back")

	assert.Equal(t, []byte{58, 58 | 0x80, 58}, r.keys)
}

func TestVirtualShiftDoesNotToggle(t *testing.T) {
	r := &recorder{}
	kb := input.NewVirtualKeyboard(r, logger.New(logCategory))

	_, _ = kb.Press("shift")
	assert.Equal(t, input.DefaultLayout, kb.Layout())
	assert.Equal(t, []byte{42}, r.keys)
}

func TestVirtualUnmapped(t *testing.T) {
	r := &recorder{}
	kb := input.NewVirtualKeyboard(r, logger.New(logCategory))

	_, err := kb.Press("{unknown}")
	assert.Equal(t, fault.ErrUnmappedInput, err)
	assert.Empty(t, r.keys)
	assert.Equal(t, uint64(1), kb.Translator().Dropped.Uint64())
}

// every button shown in either layout sends a scan code
func TestVirtualLayoutsMapped(t *testing.T) {
	r := &recorder{}
	kb := input.NewVirtualKeyboard(r, logger.New(logCategory))

	for _, layout := range []input.Layout{input.DefaultLayout, input.ShiftLayout} {
		if kb.Layout() != layout {
			_, _ = kb.Press("{lock}")
		}
		for _, row := range kb.Rows() {
			for _, button := range strings.Fields(row) {
				_, ok := scancode.Lookup(scancode.Virtual, button)
				assert.True(t, ok, "%s layout button %q has no scan code", layout, button)
			}
		}
	}
}
