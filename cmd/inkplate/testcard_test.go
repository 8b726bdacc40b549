// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image"
	"testing"

	"github.com/GermanBionicSystems/inkplate/inkplate6color"
	"github.com/GermanBionicSystems/inkplate/preview"
)

func TestRenderTestCard(t *testing.T) {
	img, err := render("testcard", 600, 448, "", inkplate6color.Black)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 600, 448) {
		t.Fatalf("Bounds() = %v", got)
	}

	var buf bytes.Buffer
	p := preview.New(600, 448, &preview.Opts{Mono: true, W: &buf})
	if err := show(p, img); err != nil {
		t.Fatal(err)
	}
	// One bar per ink across the top.
	for i, want := range []inkplate6color.Color{inkplate6color.Black, inkplate6color.White, inkplate6color.Green, inkplate6color.Blue, inkplate6color.Red, inkplate6color.Yellow, inkplate6color.Orange} {
		x := i*600/7 + 600/14
		if got := p.Ink(x, 50); got != want {
			t.Errorf("bar %d = %v, want %v", i, got, want)
		}
	}
}

func TestRenderText(t *testing.T) {
	img, err := render("text", 200, 40, "Hi", inkplate6color.Red)
	if err != nil {
		t.Fatal(err)
	}

	inks := map[inkplate6color.Color]int{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			inks[inkplate6color.Color(img.(*image.Paletted).ColorIndexAt(x, y))]++
		}
	}
	if inks[inkplate6color.Red] == 0 {
		t.Error("no text drawn")
	}
	if len(inks) != 2 {
		t.Errorf("inks used: %v, want white and red only", inks)
	}
}

func TestRenderUnknown(t *testing.T) {
	if _, err := render("mandelbrot", 10, 10, "", inkplate6color.Black); err == nil {
		t.Error("render() accepted an unknown image")
	}
}
