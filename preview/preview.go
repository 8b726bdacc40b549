// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package preview implements a display.Drawer that renders a 7-colour panel
// image on the terminal using ANSI color codes.
//
// It lets you check a layout before spending a 30 seconds refresh on the real
// panel.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"

	"github.com/GermanBionicSystems/inkplate/inkplate6color"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for the preview.
type Opts struct {
	// Scale is the number of panel pixels per character cell in each
	// direction. Defaults to 8.
	Scale int
	// Palette maps the inks to terminal colors. Defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Mono prints one letter per ink instead of colored blocks.
	Mono bool
	// W receives the output. Defaults to stdout, in which case Mono is forced
	// when stdout is not a terminal.
	W io.Writer

	_ struct{}
}

// letters is the Mono rendering of each ink.
var letters = [...]byte{'#', '.', 'g', 'b', 'r', 'y', 'o'}

// Dev renders a panel sized image to a terminal.
type Dev struct {
	w      io.Writer
	scale  int
	mono   bool
	blocks [len(letters)]string

	img *image.Paletted
	buf bytes.Buffer
}

// New returns a preview of a width x height panel.
func New(width, height int, opts *Opts) *Dev {
	var o Opts
	if opts != nil {
		o = *opts
	}
	if o.Scale <= 0 {
		o.Scale = 8
	}
	if o.Palette == nil {
		o.Palette = ansi256.Default
	}
	if o.W == nil {
		o.W = colorable.NewColorableStdout()
		fd := os.Stdout.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			o.Mono = true
		}
	}
	img := image.NewPaletted(image.Rect(0, 0, width, height), inkplate6color.Palette)
	draw.Draw(img, img.Bounds(), &image.Uniform{C: inkplate6color.White}, image.Point{}, draw.Src)
	d := &Dev{
		w:     o.W,
		scale: o.Scale,
		mono:  o.Mono,
		img:   img,
	}
	for i := range d.blocks {
		d.blocks[i] = o.Palette.Block(color.NRGBAModel.Convert(inkplate6color.Palette[i]).(color.NRGBA))
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("preview.Dev{%dx%d, 1:%d}", d.img.Rect.Dx(), d.img.Rect.Dy(), d.scale)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	if d.mono {
		return nil
	}
	_, err := io.WriteString(d.w, "\033[0m")
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return inkplate6color.Palette
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.img.Rect
}

// Draw implements display.Drawer.
//
// Colors are mapped to the closest ink, as the panel does, then the whole
// image is printed.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.img, r, src, sp, draw.Src)
	return d.refresh()
}

// Ink returns the ink at (x, y) of the last drawn image.
func (d *Dev) Ink(x, y int) inkplate6color.Color {
	return inkplate6color.Color(d.img.ColorIndexAt(x, y))
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	b := d.img.Rect
	for y := b.Min.Y; y < b.Max.Y; y += d.scale {
		for x := b.Min.X; x < b.Max.X; x += d.scale {
			i := d.img.ColorIndexAt(x, y)
			if d.mono {
				_ = d.buf.WriteByte(letters[i])
			} else {
				_, _ = d.buf.WriteString(d.blocks[i])
			}
		}
		if !d.mono {
			_, _ = d.buf.WriteString("\033[0m")
		}
		_ = d.buf.WriteByte('\n')
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
