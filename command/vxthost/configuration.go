// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vxthost/configuration"
	"github.com/bitmark-inc/vxthost/kvstore"
	"github.com/bitmark-inc/vxthost/machine"
	"github.com/bitmark-inc/vxthost/scheduler"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultDiskImage            = "disk.img"
	defaultPersistenceDirectory = "persistence.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "vxthost.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
)

type MachineType struct {
	Variant     string `gluamapper:"variant" json:"variant"`
	MemoryPages int    `gluamapper:"memory_pages" json:"memory_pages"`
}

type DiskType struct {
	Image string `gluamapper:"image" json:"image"`
}

type PersistenceType struct {
	Store     string `gluamapper:"store" json:"store"`
	Directory string `gluamapper:"directory" json:"directory"`
	Quota     int    `gluamapper:"quota" json:"quota"`
	Clear     bool   `gluamapper:"clear" json:"clear"`
}

type InputType struct {
	Touch bool `gluamapper:"touch" json:"touch"`
	Mouse bool `gluamapper:"mouse" json:"mouse"`
}

type ShutdownType struct {
	ReturnURL string `gluamapper:"return_url" json:"return_url"`
}

type Configuration struct {
	DataDirectory   string  `gluamapper:"data_directory" json:"data_directory"`
	PidFile         string  `gluamapper:"pidfile" json:"pidfile"`
	TargetFrequency float64 `gluamapper:"target_frequency" json:"target_frequency"`

	Machine     MachineType          `gluamapper:"machine" json:"machine"`
	Disk        DiskType             `gluamapper:"disk" json:"disk"`
	Persistence PersistenceType      `gluamapper:"persistence" json:"persistence"`
	Input       InputType            `gluamapper:"input" json:"input"`
	Shutdown    ShutdownType         `gluamapper:"shutdown" json:"shutdown"`
	Logging     logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Store - persistence section as a key/value store selection
func (c *Configuration) Store() kvstore.Configuration {
	return kvstore.Configuration{
		Store:     c.Persistence.Store,
		Directory: c.Persistence.Directory,
		Quota:     c.Persistence.Quota,
	}
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:   defaultDataDirectory,
		PidFile:         "", // no PidFile by default
		TargetFrequency: scheduler.DefaultFrequency,

		Machine: MachineType{
			Variant:     machine.Intel8088.String(),
			MemoryPages: machine.DefaultPages,
		},

		Disk: DiskType{
			Image: defaultDiskImage,
		},

		Persistence: PersistenceType{
			Store:     kvstore.TypeLevelDB,
			Directory: defaultPersistenceDirectory,
			Quota:     kvstore.DefaultQuota,
		},

		Input: InputType{
			Touch: false,
			Mouse: true,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	if options.TargetFrequency <= 0 {
		return nil, fmt.Errorf("target_frequency: %g must be positive", options.TargetFrequency)
	}

	if _, err := machine.ParseVariant(options.Machine.Variant); nil != err {
		return nil, fmt.Errorf("machine variant: %q  error: %s", options.Machine.Variant, err)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Disk.Image,
		&options.Persistence.Directory,
		&options.Logging.Directory,
	}
	if "" != options.PidFile {
		mustBeAbsolute = append(mustBeAbsolute, &options.PidFile)
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// fail if the log directory does not exist
	if fileInfo, err := os.Stat(options.Logging.Directory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.Logging.Directory)
	}

	return options, nil
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
