// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vxthost/kvstore"
)

type metadata struct {
	store   *kvstore.LevelDB
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "vxtstore"
	app.Usage = "inspect the persistent sector store of vxthost"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "store, s",
			Value: "",
			Usage: "*LevelDB store `DIRECTORY`",
		},
		cli.IntFlag{
			Name:  "quota, q",
			Value: kvstore.DefaultQuota,
			Usage: " store quota `BYTES`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "signature",
			Usage:     "print the signature of a disk image",
			ArgsUsage: "IMAGE",
			Action:    runSignature,
		},
		{
			Name:      "list",
			Usage:     "list stored sectors",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "signature, g",
					Value: "",
					Usage: "+only sectors of image `SIGNATURE`",
				},
				cli.StringFlag{
					Name:  "image, i",
					Value: "",
					Usage: "+only sectors of disk image `FILE`",
				},
			},
			Action: runList,
		},
		{
			Name:      "dump",
			Usage:     "hex dump of a stored sector",
			ArgsUsage: "SIGNATURE SECTOR",
			Action:    runDump,
		},
		{
			Name:      "clear",
			Usage:     "delete everything in the store",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "yes, y",
					Usage: "*confirm deletion",
				},
			},
			Action: runClear,
		},
		{
			Name:  "version",
			Usage: "display vxtstore version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// open the store
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// these commands do not use the store
		command := c.Args().Get(0)
		if "" == command || "version" == command || "signature" == command || "help" == command {
			return nil
		}

		directory := c.GlobalString("store")
		if "" == directory {
			return fmt.Errorf("store directory is required")
		}

		if verbose {
			fmt.Fprintf(e, "store: %q\n", directory)
		}

		store, err := kvstore.OpenLevelDB(directory, c.GlobalInt("quota"))
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			store:   store,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		return m.store.Close()
	}

	return app
}
