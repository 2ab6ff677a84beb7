// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vxthost/blockstore"
	"github.com/bitmark-inc/vxthost/persistence"
)

type signatureResult struct {
	Image     string `json:"image"`
	Size      int    `json:"size"`
	Sectors   int    `json:"sectors"`
	Signature string `json:"signature"`
}

func runSignature(c *cli.Context) error {

	fileName := c.Args().First()
	if "" == fileName {
		return fmt.Errorf("image file name is required")
	}

	image, err := ioutil.ReadFile(fileName)
	if nil != err {
		return err
	}

	return printJson(c.App.Writer, signatureResult{
		Image:     fileName,
		Size:      len(image),
		Sectors:   len(image) / blockstore.SectorSize,
		Signature: persistence.Signature(image),
	})
}
