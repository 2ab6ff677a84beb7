// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runClear(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if !c.Bool("yes") {
		return fmt.Errorf("clear needs --yes")
	}

	used := m.store.Used()
	err := m.store.Clear()
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "released: %d bytes\n", used)
	}
	fmt.Fprintf(m.w, "cleared\n")
	return nil
}
