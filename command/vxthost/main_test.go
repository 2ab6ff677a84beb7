// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vxthost/input"
	"github.com/bitmark-inc/vxthost/kvstore"
	"github.com/bitmark-inc/vxthost/scancode"
)

const (
	dir         = "testing"
	logCategory = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(dir)
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", logCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(dir)
	os.Exit(rc)
}

const configText = `
local M = {}
M.data_directory = "."
M.target_frequency = %s
M.machine = { variant = "v20" }
M.disk = { image = "dos.img" }
M.persistence = { store = "memory", clear = true }
M.shutdown = { return_url = "https://example.com/" }
M.logging = { directory = "." }
return M
`

func writeConfiguration(t *testing.T, directory string, frequency string) string {
	fileName := filepath.Join(directory, "vxthost.conf")
	err := ioutil.WriteFile(fileName, []byte(fmt.Sprintf(configText, frequency)), 0600)
	if !assert.Nil(t, err, "write configuration") {
		t.FailNow()
	}
	return fileName
}

func TestGetConfiguration(t *testing.T) {
	directory, _ := ioutil.TempDir("", "vxthost")
	defer os.RemoveAll(directory)
	directory, _ = filepath.EvalSymlinks(directory)

	c, err := getConfiguration(writeConfiguration(t, directory, "8"))
	if !assert.Nil(t, err, "configuration") {
		return
	}

	assert.Equal(t, 8.0, c.TargetFrequency, "frequency")
	assert.Equal(t, "v20", c.Machine.Variant, "variant")
	assert.Equal(t, 350, c.Machine.MemoryPages, "default pages")
	assert.Equal(t, filepath.Join(directory, "dos.img"), c.Disk.Image, "absolute image")
	assert.Equal(t, filepath.Join(directory, defaultPersistenceDirectory), c.Persistence.Directory, "absolute store")
	assert.True(t, c.Persistence.Clear, "clear")
	assert.True(t, c.Input.Mouse, "mouse default")
	assert.False(t, c.Input.Touch, "touch default")
	assert.Equal(t, "https://example.com/", c.Shutdown.ReturnURL, "return url")

	s := c.Store()
	assert.Equal(t, kvstore.TypeMemory, s.Store, "store type")
	assert.Equal(t, kvstore.DefaultQuota, s.Quota, "default quota")
}

func TestGetConfigurationInvalid(t *testing.T) {
	directory, _ := ioutil.TempDir("", "vxthost")
	defer os.RemoveAll(directory)

	_, err := getConfiguration(writeConfiguration(t, directory, "-1"))
	assert.NotNil(t, err, "negative frequency")

	_, err = getConfiguration(filepath.Join(directory, "absent.conf"))
	assert.NotNil(t, err, "missing file")
}

type recorder struct {
	sync.Mutex
	keys []byte
}

func (r *recorder) SendKey(wire byte) {
	r.Lock()
	r.keys = append(r.keys, wire)
	r.Unlock()
}

func (r *recorder) SendMouse(dx int, dy int, buttons uint8) {}

func (r *recorder) get() []byte {
	r.Lock()
	defer r.Unlock()
	return append([]byte{}, r.keys...)
}

func TestTypist(t *testing.T) {
	log := logger.New(logCategory)
	r := &recorder{}
	typer := &typist{
		log:      log,
		keyboard: input.New(scancode.Physical, r, log),
		buttons:  input.NewVirtualKeyboard(r, log),
	}

	typer.run(strings.NewReader("aB\n!{lock} shift nosuch\n"))

	expected := []byte{
		30, 30 | 0x80, // a
		42, 48, 48 | 0x80, 42 | 0x80, // B with left shift
		28, 28 | 0x80, // Enter
		58, 58 | 0x80, // {lock}
		42, 42 | 0x80, // shift
	}
	assert.Equal(t, expected, r.get(), "scan codes")
	assert.Equal(t, input.ShiftLayout, typer.buttons.Layout(), "layout toggled")
}

func TestTypistWithoutButtons(t *testing.T) {
	log := logger.New(logCategory)
	r := &recorder{}
	typer := &typist{
		log:      log,
		keyboard: input.New(scancode.Physical, r, log),
	}

	typer.run(strings.NewReader("!{esc}\n"))
	assert.Equal(t, 0, len(r.get()), "buttons ignored")
}

type frequencies struct {
	sync.Mutex
	values []float64
}

func (f *frequencies) SetFrequency(frequency float64) error {
	f.Lock()
	f.values = append(f.values, frequency)
	f.Unlock()
	return nil
}

func (f *frequencies) last() (float64, bool) {
	f.Lock()
	defer f.Unlock()
	if 0 == len(f.values) {
		return 0, false
	}
	return f.values[len(f.values)-1], true
}

func TestConfigWatcher(t *testing.T) {
	directory, _ := ioutil.TempDir("", "vxthost")
	defer os.RemoveAll(directory)

	fileName := writeConfiguration(t, directory, "4.77")
	target := &frequencies{}

	w, err := newConfigWatcher(fileName, target, 4.77, logger.New(logCategory))
	if !assert.Nil(t, err, "watcher") {
		return
	}

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		w.Run(nil, shutdown)
		close(done)
	}()

	writeConfiguration(t, directory, "9.54")

	found := false
	for i := 0; i < 300 && !found; i += 1 {
		time.Sleep(10 * time.Millisecond)
		if f, ok := target.last(); ok && 9.54 == f {
			found = true
		}
	}
	assert.True(t, found, "frequency reloaded")

	close(shutdown)
	<-done
}
