// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scancode

// symbols shared by both keyboards, the printable characters and the
// function keys
var commonTable = map[string]Code{
	"1": 2, "!": 2,
	"2": 3, "@": 3,
	"3": 4, "#": 4,
	"4": 5, "$": 5,
	// keypad 5 by location override
	"5": 6, "%": 6,
	"6": 7, "^": 7,
	"7": 8, "&": 8,
	"8": 9, "*": 9,
	"9": 10, "(": 10,
	"0": 11, ")": 11,
	"-": 12, "_": 12,
	"=": 13, "+": 13,
	"q": 16, "Q": 16,
	"w": 17, "W": 17,
	"e": 18, "E": 18,
	"r": 19, "R": 19,
	"t": 20, "T": 20,
	"y": 21, "Y": 21,
	"u": 22, "U": 22,
	"i": 23, "I": 23,
	"o": 24, "O": 24,
	"p": 25, "P": 25,
	"[": 26, "{": 26,
	"]": 27, "}": 27,
	"a": 30, "A": 30,
	"s": 31, "S": 31,
	"d": 32, "D": 32,
	"f": 33, "F": 33,
	"g": 34, "G": 34,
	"h": 35, "H": 35,
	"j": 36, "J": 36,
	"k": 37, "K": 37,
	"l": 38, "L": 38,
	";": 39, ":": 39,
	"'": 40, "\"": 40,
	"`": 41, "~": 41,
	"|": 43, "\\": 43,
	"z": 44, "Z": 44,
	"x": 45, "X": 45,
	"c": 46, "C": 46,
	"v": 47, "V": 47,
	"b": 48, "B": 48,
	"n": 49, "N": 49,
	"m": 50, "M": 50,
	",": 51, "<": 51,
	".": 52, ">": 52,
	"/": 53, "?": 53,
	" ": 57,

	"F1":  59,
	"F2":  60,
	"F3":  61,
	"F4":  62,
	"F5":  63,
	"F6":  64,
	"F7":  65,
	"F8":  66,
	"F9":  67,
	"F10": 68,
}

// hardware keyboard key names
var physicalKeys = map[string]Code{
	"Escape":      1,
	"Backspace":   14,
	"Tab":         15,
	"Enter":       28,
	"Control":     29,
	"Shift":       42,
	"PrintScreen": 55,
	"Alt":         56,
	"CapsLock":    58,
	"NumLock":     69,
	"ScrollLock":  70,
	"Home":        71,
	"ArrowUp":     72,
	"PageUp":      73,
	"Subtract":    74,
	"ArrowLeft":   75,
	"ArrowRight":  77,
	"Add":         78,
	"End":         79,
	"ArrowDown":   80,
	"PageDown":    81,
	"Insert":      82,
	"Delete":      83,
}

// on-screen keyboard button identifiers
var virtualKeys = map[string]Code{
	"{esc}":    1,
	"{bksp}":   14,
	"{tab}":    15,
	"{enter}":  28,
	"ctrl":     29,
	"shift":    42,
	"print":    55,
	"{alt}":    56,
	"{space}":  57,
	"{lock}":   58,
	"num":      69,
	"scrl":     70,
	"home":     71,
	"up":       72,
	"pgup":     73,
	"left":     75,
	"right":    77,
	"end":      79,
	"down":     80,
	"pgdown":   81,
	"ins":      82,
	"{delete}": 83,
}

var (
	physicalTable = merge(commonTable, physicalKeys)
	virtualTable  = merge(commonTable, virtualKeys)
)

func merge(tables ...map[string]Code) map[string]Code {
	n := 0
	for _, t := range tables {
		n += len(t)
	}
	result := make(map[string]Code, n)
	for _, t := range tables {
		for k, v := range t {
			result[k] = v
		}
	}
	return result
}
