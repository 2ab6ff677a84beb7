// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

// delay before the final panic so the log file can be written
const panicDelay = 100 * time.Millisecond

// channel for the last attempt to log something
var log *logger.L

// Initialise - setup the critical log channel
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data and release the channel
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// Criticalf - log a formatted critical message prefixed by the caller position
func Criticalf(format string, arguments ...interface{}) {
	criticalf(2, format, arguments...)
}

// Panicf - log a formatted critical message and panic
//
// used for contract breaches between the host and the machine, such as
// a disk access outside the image
func Panicf(format string, arguments ...interface{}) {
	criticalf(2, format, arguments...)
	finalPanic(fmt.Sprintf(format, arguments...))
}

// PanicIfError - panic only when err is not nil
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	s := fmt.Sprintf("%s failed with error: %s", message, err)
	criticalf(2, "%s", s)
	finalPanic(s)
}

func finalPanic(message string) {
	time.Sleep(panicDelay)
	panic(message)
}

func criticalf(depth int, format string, arguments ...interface{}) {
	if _, file, line, ok := runtime.Caller(depth); ok {
		a := make([]interface{}, 2, 2+len(arguments))
		a[0] = file
		a[1] = line
		format = "(%q:%d) " + format
		arguments = append(a, arguments...)
	}

	// logger channel may not be set up yet
	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	log.Criticalf(format, arguments...)
	log.Flush()
}
