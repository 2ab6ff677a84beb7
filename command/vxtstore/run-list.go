// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vxthost/persistence"
)

type listResult struct {
	Used    int              `json:"used"`
	Quota   int              `json:"quota"`
	Images  map[string][]int `json:"images"`
	Invalid []string         `json:"invalid,omitempty"`
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	signature := c.String("signature")
	imageFile := c.String("image")
	if "" != signature && "" != imageFile {
		return fmt.Errorf("only one of signature or image is allowed")
	}

	if "" != imageFile {
		image, err := ioutil.ReadFile(imageFile)
		if nil != err {
			return err
		}
		signature = persistence.Signature(image)
	}

	prefix := ""
	if "" != signature {
		prefix = signature + " "
	}

	if m.verbose {
		fmt.Fprintf(m.e, "prefix: %q\n", prefix)
	}

	keys, err := m.store.KeysWithPrefix(prefix)
	if nil != err {
		return err
	}

	result := listResult{
		Used:   m.store.Used(),
		Quota:  m.store.Quota(),
		Images: make(map[string][]int),
	}
	for _, key := range keys {
		s, sector, err := persistence.ParseKey(key)
		if nil != err {
			result.Invalid = append(result.Invalid, key)
			continue
		}
		result.Images[s] = append(result.Images[s], sector)
	}
	for _, sectors := range result.Images {
		sort.Ints(sectors)
	}

	return printJson(m.w, result)
}
