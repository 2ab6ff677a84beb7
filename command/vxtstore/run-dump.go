// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vxthost/fault"
	"github.com/bitmark-inc/vxthost/persistence"
)

func runDump(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if 2 != c.NArg() {
		return fmt.Errorf("signature and sector are required")
	}
	signature := c.Args().Get(0)
	sector, err := strconv.Atoi(c.Args().Get(1))
	if nil != err || sector < 0 {
		return fault.ErrInvalidSectorKey
	}

	key := persistence.Key(signature, sector)
	value, found, err := m.store.Get(key)
	if nil != err {
		return err
	}
	if !found {
		return fmt.Errorf("key: %q not found", key)
	}

	data, err := persistence.Decode(value)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "%s\n%s", key, hex.Dump(data))
	return nil
}
