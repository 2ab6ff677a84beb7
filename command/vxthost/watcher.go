// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// FrequencySetter - receives the reloaded target frequency
type FrequencySetter interface {
	SetFrequency(frequency float64) error
}

// watch the configuration file and apply a changed target frequency
type configWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	target   FrequencySetter
	current  float64
}

func newConfigWatcher(fileName string, target FrequencySetter, current float64, log *logger.L) (*configWatcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	// editors often replace the file, so watch its directory
	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		target:   target,
		current:  current,
	}, nil
}

// Run - background process
func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log

	log.Info("starting…")
	defer w.watcher.Close()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if path.Base(event.Name) != path.Base(w.filePath) {
				continue
			}
			log.Debugf("file event: %v", event)
			if watcherEventFileChange(event) {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}

	log.Info("stopped")
}

// re-read the configuration, only the target frequency can change
// while running
func (w *configWatcher) reload() {
	c, err := getConfiguration(w.filePath)
	if nil != err {
		w.log.Errorf("reload: %q  error: %s", w.filePath, err)
		return
	}

	if c.TargetFrequency == w.current {
		return
	}

	w.log.Infof("target frequency: %g MHz -> %g MHz", w.current, c.TargetFrequency)
	err = w.target.SetFrequency(c.TargetFrequency)
	if nil != err {
		w.log.Errorf("set frequency: %g  error: %s", c.TargetFrequency, err)
		return
	}
	w.current = c.TargetFrequency
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
