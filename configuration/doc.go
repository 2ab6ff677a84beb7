// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// the file is an ordinary Lua chunk that returns a table, so base Lua
// is available for computing values, reading the environment with
// os.getenv and so on.  The global arg[0] is the file name.
package configuration
