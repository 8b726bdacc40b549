// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/inkplate/inkplate6color"
)

// renderTestCard draws one bar per ink, a few shapes and a title.
func renderTestCard(w, h int) (image.Image, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	fw, fh := float64(w), float64(h)

	dc := gg.NewContext(w, h)
	dc.SetColor(inkplate6color.White)
	dc.Clear()

	bar := fw / float64(len(inkplate6color.Palette))
	for i, c := range inkplate6color.Palette {
		dc.SetColor(c)
		dc.DrawRectangle(float64(i)*bar, 0, bar, fh/3)
		dc.Fill()
	}

	dc.SetColor(inkplate6color.Red)
	dc.DrawCircle(fw/4, fh/2+fh/12, fh/8)
	dc.Fill()
	dc.SetColor(inkplate6color.Blue)
	dc.DrawRoundedRectangle(fw/2, fh/2-fh/24, fw/3, fh/4, fh/32)
	dc.Fill()
	dc.SetColor(inkplate6color.Black)
	dc.SetLineWidth(3)
	dc.DrawLine(0, fh/3+4, fw, fh/3+4)
	dc.Stroke()

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: fh / 14}))
	dc.SetColor(inkplate6color.Black)
	dc.DrawStringAnchored("Inkplate 6COLOR", fw/2, fh*7/8, 0.5, 0.5)
	return dc.Image(), nil
}

// renderText returns a white canvas with text in its center.
func renderText(w, h int, text string, c inkplate6color.Color) image.Image {
	img := image.NewPaletted(image.Rect(0, 0, w, h), inkplate6color.Palette)
	draw.Draw(img, img.Bounds(), &image.Uniform{C: inkplate6color.White}, image.Point{}, draw.Src)
	drawText(img, text, c)
	return img
}

// drawText writes text in the center of dst with the 7x13 bitmap font.
func drawText(dst draw.Image, text string, c inkplate6color.Color) {
	face := basicfont.Face7x13
	b := dst.Bounds()
	x := (b.Dx() - font.MeasureString(face, text).Round()) / 2
	y := (b.Dy() + face.Ascent) / 2
	d := font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{C: c},
		Face: face,
		Dot:  fixed.P(b.Min.X+x, b.Min.Y+y),
	}
	d.DrawString(text)
}
