// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inkplate6color

import "fmt"

// background is the byte written by a clear: two white pixels.
const background = byte(White)<<4 | byte(White)

// Framebuffer is a packed 4-bit per pixel image in the physical orientation
// of the panel.
//
// Each byte holds two horizontally adjacent pixels: the high nibble is the
// even column, the low nibble the odd column.
type Framebuffer struct {
	cols, rows int
	pix        []byte
}

// NewFramebuffer returns a cleared framebuffer. cols must be even.
func NewFramebuffer(cols, rows int) *Framebuffer {
	f := &Framebuffer{
		cols: cols,
		rows: rows,
		pix:  make([]byte, cols*rows/2),
	}
	f.Clear()
	return f
}

// Clear resets every pixel to white.
func (f *Framebuffer) Clear() {
	for i := range f.pix {
		f.pix[i] = background
	}
}

// Len returns the size of the buffer in bytes.
func (f *Framebuffer) Len() int {
	return len(f.pix)
}

// Bytes returns the packed pixels. The slice aliases the buffer and must not
// be modified.
func (f *Framebuffer) Bytes() []byte {
	if len(f.pix) != f.cols*f.rows/2 {
		panic(fmt.Sprintf("inkplate6color: framebuffer is %d bytes, want %d", len(f.pix), f.cols*f.rows/2))
	}
	return f.pix
}

// ColorAt returns the ink at physical position (px, py). Positions outside
// of the panel return White.
func (f *Framebuffer) ColorAt(px, py int) Color {
	if px < 0 || py < 0 || px >= f.cols || py >= f.rows {
		return White
	}
	i, shift := f.offset(px, py)
	return Color(f.pix[i]>>shift) & 0x0F
}

// SetColor stores the ink c at physical position (px, py), leaving the other
// pixel of the byte untouched. Only the low 3 bits of c are kept.
func (f *Framebuffer) SetColor(px, py int, c Color) {
	if px < 0 || py < 0 || px >= f.cols || py >= f.rows {
		return
	}
	i, shift := f.offset(px, py)
	f.pix[i] = f.pix[i]&^(0x0F<<shift) | byte(c&0x07)<<shift
}

// offset returns the byte index and the bit shift of the nibble holding
// pixel (px, py).
func (f *Framebuffer) offset(px, py int) (int, uint) {
	return f.cols*py/2 + px/2, uint(4 * (1 - px&1))
}
