// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scancode - map input symbols to XT keyboard scan codes
//
// two tables share the same scan code space:
//
//   Physical - key names as reported by a hardware keyboard
//   Virtual  - button identifiers of the on-screen keyboard
//
// the scan code identifies the key position only, the shifted and
// unshifted symbols of a key both give the same code
package scancode

// Code - XT scan code, range 1..127
type Code uint8

// ReleaseMask - bit set in the wire value of a key release
const ReleaseMask = 0x80

// scan codes that are only reachable through a location override
const (
	LeftShift  Code = 42
	RightShift Code = 54
	Digit5     Code = 6
	Keypad5    Code = 76
)

// Event - a key press or release ready for the machine
type Event struct {
	Code    Code
	Release bool
}

// Wire - the byte sent to the machine
func (e Event) Wire() byte {
	if e.Release {
		return byte(e.Code) | ReleaseMask
	}
	return byte(e.Code)
}

// FromWire - split a wire value back into an event
func FromWire(b byte) Event {
	return Event{
		Code:    Code(b &^ ReleaseMask),
		Release: 0 != b&ReleaseMask,
	}
}

// Location - which of several identical keys produced the symbol
type Location int

// possible locations
const (
	Standard Location = iota
	Left
	Right
	Numpad
)

// Source - selects the symbol table
type Source int

// the input sources
const (
	Physical Source = iota
	Virtual
)

// String - source name for log messages
func (s Source) String() string {
	switch s {
	case Physical:
		return "physical"
	case Virtual:
		return "virtual"
	default:
		return "*unknown*"
	}
}

// Lookup - the base scan code for a symbol
//
// second parameter is false if the symbol is not mapped
func Lookup(source Source, symbol string) (Code, bool) {
	var table map[string]Code
	switch source {
	case Physical:
		table = physicalTable
	case Virtual:
		table = virtualTable
	default:
		return 0, false
	}
	code, ok := table[symbol]
	return code, ok
}

// Resolve - the scan code for a symbol at a location
//
// applies the two location overrides to the base code:
//   shift on the right       -> right shift
//   digit 5 on the keypad    -> keypad 5
func Resolve(source Source, symbol string, location Location) (Code, bool) {
	code, ok := Lookup(source, symbol)
	if !ok {
		return 0, false
	}
	switch {
	case LeftShift == code && Right == location:
		return RightShift, true
	case Digit5 == code && Numpad == location:
		return Keypad5, true
	}
	return code, true
}

// Symbols - all symbols of a source, unordered
func Symbols(source Source) []string {
	var table map[string]Code
	switch source {
	case Physical:
		table = physicalTable
	case Virtual:
		table = virtualTable
	default:
		return nil
	}
	symbols := make([]string, 0, len(table))
	for s := range table {
		symbols = append(symbols, s)
	}
	return symbols
}
