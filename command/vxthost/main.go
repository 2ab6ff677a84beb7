// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vxthost/background"
	"github.com/bitmark-inc/vxthost/fault"
	"github.com/bitmark-inc/vxthost/host"
	"github.com/bitmark-inc/vxthost/input"
	"github.com/bitmark-inc/vxthost/kvstore"
	"github.com/bitmark-inc/vxthost/machine"
	"github.com/bitmark-inc/vxthost/mode"
	"github.com/bitmark-inc/vxthost/persistence"
	"github.com/bitmark-inc/vxthost/scancode"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
		{Long: "keyboard", HasArg: getoptions.NO_ARGUMENT, Short: 'k'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		fmt.Printf("%s: version: %s\n", program, version)
		return
	}

	if len(options["help"]) > 0 {
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] [--keyboard] --config-file=FILE\n", program)
		fmt.Printf("       --keyboard  type lines from standard input, \"!\" lines are on-screen buttons\n")
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	quiet := len(options["quiet"]) > 0
	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise()
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// persistent storage is optional, run without it if unavailable
	log.Info("initialise storage")
	store, err := kvstore.Open(theConfiguration.Store(), logger.New("kvstore"))
	if fault.IsErrNotFound(err) {
		log.Warnf("storage: %s", err)
	} else if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	} else {
		defer store.Close()
	}

	warn := func(message string) {
		log.Warn(message)
		if !quiet {
			fmt.Printf("\n%s\n", message)
		}
	}
	cache := persistence.New(store, logger.New("persistence"), warn)

	if theConfiguration.Persistence.Clear {
		err = cache.Clear()
		if nil != err {
			log.Errorf("clear storage error: %s", err)
		}
	}

	log.Infof("disk image: %q", theConfiguration.Disk.Image)
	image, err := ioutil.ReadFile(theConfiguration.Disk.Image)
	if nil != err {
		log.Criticalf("disk image read error: %s", err)
		exitwithstatus.Message("disk image: %q  read error: %s", theConfiguration.Disk.Image, err)
	}

	variant, _ := machine.ParseVariant(theConfiguration.Machine.Variant)
	h, err := host.New(host.Configuration{
		Frequency:   theConfiguration.TargetFrequency,
		Variant:     variant,
		MemoryPages: theConfiguration.Machine.MemoryPages,
		ReturnURL:   theConfiguration.Shutdown.ReturnURL,
		IgnoreMouse: !theConfiguration.Input.Mouse,
	}, cache)
	if nil != err {
		log.Criticalf("host initialise error: %s", err)
		exitwithstatus.Message("host initialise error: %s", err)
	}

	module, err := machine.NewIdle(h.Memory(), h)
	if nil != err {
		log.Criticalf("machine initialise error: %s", err)
		exitwithstatus.Message("machine initialise error: %s", err)
	}

	err = h.Attach(module)
	if nil != err {
		log.Criticalf("machine attach error: %s", err)
		exitwithstatus.Message("machine attach error: %s", err)
	}

	// restore must finish before the first step
	err = h.Load(image)
	if nil != err {
		log.Criticalf("load error: %s", err)
		exitwithstatus.Message("load error: %s", err)
	}

	// input sources
	inputLog := logger.New("input")
	keyboard := input.New(scancode.Physical, h, inputLog)
	var buttons *input.VirtualKeyboard
	if theConfiguration.Input.Touch {
		buttons = input.NewVirtualKeyboard(h, inputLog)
		for _, row := range buttons.Rows() {
			inputLog.Debugf("on-screen row: %s", row)
		}
	}

	processes := background.Processes{h}

	watcher, err := newConfigWatcher(configurationFile, h, theConfiguration.TargetFrequency, logger.New("watcher"))
	if nil != err {
		log.Warnf("configuration watcher error: %s", err)
	} else {
		processes = append(processes, watcher)
	}

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		processes = append(processes, memstats(h, keyboard, cache))
	}

	running := background.Start(processes, nil)

	if len(options["keyboard"]) > 0 {
		t := &typist{
			log:      inputLog,
			keyboard: keyboard,
			buttons:  buttons,
		}
		go t.run(os.Stdin)
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if !quiet {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	halted := h.Halted()
wait:
	for {
		select {
		case sig := <-ch:
			log.Infof("received signal: %v", sig)
			if !quiet {
				fmt.Printf("\nreceived signal: %v\n", sig)
				fmt.Printf("\nshutting down…\n")
			}
			break wait

		case <-halted:
			halted = nil
			if !quiet {
				if "" != theConfiguration.Shutdown.ReturnURL {
					fmt.Printf("\nreturn to: %s\n", theConfiguration.Shutdown.ReturnURL)
				} else {
					fmt.Printf("\n%s\n", host.HaltedMessage)
				}
			}
		}
	}

	log.Info("shutting down…")
	running.Stop()
	mode.Set(mode.Stopped)
}
