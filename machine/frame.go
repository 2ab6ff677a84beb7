// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package machine

// bytes per pixel of the frame buffer
const bytesPerPixel = 4

// Frame - the current picture, RGBA, row major
type Frame struct {
	Width  int
	Height int
	Pixels []byte
}

// Capture - copy the current frame out of shared memory
func Capture(module Module, memory *Memory) Frame {
	width := module.FrameWidth()
	height := module.FrameHeight()
	offset := module.FrameBufferOffset()

	pixels := make([]byte, width*height*bytesPerPixel)
	copy(pixels, memory.Slice(uint32(offset), uint32(len(pixels))))

	return Frame{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
