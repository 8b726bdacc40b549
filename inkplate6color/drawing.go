// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inkplate6color

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Width returns the logical width for the current rotation.
func (d *Dev) Width() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, _ := logicalSize(d.rotation, d.opts.Width, d.opts.Height)
	return w
}

// Height returns the logical height for the current rotation.
func (d *Dev) Height() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, h := logicalSize(d.rotation, d.opts.Width, d.opts.Height)
	return h
}

// SetRotation sets the rotation in 90° steps; r is taken modulo 4. Odd
// rotations swap the logical width and height. The framebuffer content is
// not moved.
func (d *Dev) SetRotation(r int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rotation = normalizeRotation(r)
}

// Rotation returns the current rotation, in 0..3.
func (d *Dev) Rotation() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rotation
}

// ClearDisplay resets the framebuffer to white. The panel is not refreshed.
func (d *Dev) ClearDisplay() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buffer.Clear()
}

// WritePixel sets the logical pixel (x, y) to c. Positions outside of the
// logical bounds are ignored.
func (d *Dev) WritePixel(x, y int, c Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writePixelLocked(x, y, c)
}

// writePixelLocked is the only place where pixels are written.
func (d *Dev) writePixelLocked(x, y int, c Color) {
	px, py, ok := toPhysical(d.rotation, d.opts.Width, d.opts.Height, x, y)
	if !ok {
		return
	}
	d.buffer.SetColor(px, py, c)
}

// WriteFastHLine draws w pixels to the right of (x, y).
func (d *Dev) WriteFastHLine(x, y, w int, c Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < w; i++ {
		d.writePixelLocked(x+i, y, c)
	}
}

// WriteFastVLine draws h pixels below (x, y).
func (d *Dev) WriteFastVLine(x, y, h int, c Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < h; i++ {
		d.writePixelLocked(x, y+i, c)
	}
}

// WriteFillRect fills the w x h rectangle whose top left corner is (x, y).
func (d *Dev) WriteFillRect(x, y, w, h int, c Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fillRectLocked(x, y, w, h, c)
}

// FillScreen paints every logical pixel with c.
func (d *Dev) FillScreen(c Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, h := logicalSize(d.rotation, d.opts.Width, d.opts.Height)
	d.fillRectLocked(0, 0, w, h, c)
}

func (d *Dev) fillRectLocked(x, y, w, h int, c Color) {
	for j := 0; j < w; j++ {
		for i := 0; i < h; i++ {
			d.writePixelLocked(x+j, y+i, c)
		}
	}
}

// DrawBitmap draws the w x h 1 bit per pixel image data with its top left
// corner at (x, y). Rows are ceil(w/8) bytes, most significant bit first.
// Pixels for set bits are painted with c; pixels for clear bits are left
// untouched.
func (d *Dev) DrawBitmap(x, y int, data []byte, w, h int, c Color) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	stride := (w + 7) / 8
	if len(data) < stride*h {
		return fmt.Errorf("inkplate6color: %dx%d bitmap needs %d bytes, got %d", w, h, stride*h, len(data))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for j := 0; j < h; j++ {
		row := data[j*stride : (j+1)*stride]
		for i := 0; i < w; i++ {
			if row[i/8]&(0x80>>uint(i%8)) != 0 {
				d.writePixelLocked(x+i, y+j, c)
			}
		}
	}
	return nil
}

// ColorModel implements display.Drawer. Colors are mapped to the closest ink.
func (d *Dev) ColorModel() color.Model {
	return Palette
}

// Bounds implements display.Drawer. It is the logical area for the current
// rotation.
func (d *Dev) Bounds() image.Rectangle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return canvas{d}.Bounds()
}

// At implements image.Image.
func (d *Dev) At(x, y int) color.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	return canvas{d}.At(x, y)
}

// Set implements draw.Image. The color is replaced by the closest ink.
func (d *Dev) Set(x, y int, c color.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	canvas{d}.Set(x, y, c)
}

// Draw implements display.Drawer.
//
// It copies src into the framebuffer without dithering, then calls Display.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	draw.Draw(canvas{d}, r, src, sp, draw.Src)
	d.mu.Unlock()
	return d.Display()
}

// canvas is a draw.Image view of the device for callers already holding
// d.mu.
type canvas struct {
	d *Dev
}

func (cv canvas) ColorModel() color.Model {
	return Palette
}

func (cv canvas) Bounds() image.Rectangle {
	w, h := logicalSize(cv.d.rotation, cv.d.opts.Width, cv.d.opts.Height)
	return image.Rect(0, 0, w, h)
}

func (cv canvas) At(x, y int) color.Color {
	px, py, ok := toPhysical(cv.d.rotation, cv.d.opts.Width, cv.d.opts.Height, x, y)
	if !ok {
		return color.Transparent
	}
	return cv.d.buffer.ColorAt(px, py)
}

func (cv canvas) Set(x, y int, c color.Color) {
	var ink Color
	if i, ok := c.(Color); ok {
		ink = i
	} else {
		ink = Color(Palette.Index(c))
	}
	cv.d.writePixelLocked(x, y, ink)
}
