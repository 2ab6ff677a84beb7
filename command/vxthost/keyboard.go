// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vxthost/input"
	"github.com/bitmark-inc/vxthost/scancode"
)

// characters typed with shift held on a US layout
const shiftedCharacters = "~!@#$%^&*()_+{}|:\"<>?ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// prefix of a line of on-screen button ids
const buttonPrefix = "!"

// typist - turns lines of text into key presses
//
// a line starting with "!" is a space separated list of on-screen
// keyboard buttons, each pressed and released in turn
type typist struct {
	log      *logger.L
	keyboard *input.Translator
	buttons  *input.VirtualKeyboard
}

func (t *typist) run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, buttonPrefix) {
			t.press(strings.Fields(strings.TrimPrefix(line, buttonPrefix)))
			continue
		}
		t.typeLine(line)
	}
	if err := scanner.Err(); nil != err {
		t.log.Errorf("read error: %s", err)
	}
	t.log.Info("input closed")
}

func (t *typist) typeLine(line string) {
	for _, c := range line {
		symbol := string(c)
		if strings.ContainsRune(shiftedCharacters, c) {
			t.keyboard.Press(&input.KeyEvent{Key: "Shift", Position: scancode.Left})
			t.tap(symbol)
			t.keyboard.Release(&input.KeyEvent{Key: "Shift", Position: scancode.Left})
		} else {
			t.tap(symbol)
		}
	}
	t.tap("Enter")
}

func (t *typist) tap(symbol string) {
	t.keyboard.Press(&input.KeyEvent{Key: symbol})
	t.keyboard.Release(&input.KeyEvent{Key: symbol})
}

func (t *typist) press(buttons []string) {
	if nil == t.buttons {
		t.log.Warn("on-screen keyboard is disabled")
		return
	}
	for _, button := range buttons {
		_, err := t.buttons.Press(button)
		if nil != err {
			t.log.Warnf("button: %q  error: %s", button, err)
			continue
		}
		_, _ = t.buttons.Release(button)
	}
	t.log.Debugf("layout: %s", t.buttons.Layout())
}
