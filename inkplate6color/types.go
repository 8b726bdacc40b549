// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inkplate6color

import (
	"fmt"
	"image/color"
)

// Color is one of the seven inks of the panel. It is the value stored in each
// nibble of the framebuffer.
type Color uint8

// Inks supported by the panel.
const (
	Black Color = iota
	White
	Green
	Blue
	Red
	Yellow
	Orange
)

var colorNames = [...]string{"black", "white", "green", "blue", "red", "yellow", "orange"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Set sets the Color to a value represented by the string s. Set implements the flag.Value interface.
func (c *Color) Set(s string) error {
	for i, n := range colorNames {
		if n == s {
			*c = Color(i)
			return nil
		}
	}
	return fmt.Errorf("unknown color %q: expected either black, white, green, blue, red, yellow or orange", s)
}

// Palette approximates the inks in sRGB. The index of each entry is its
// Color value.
var Palette = color.Palette{
	color.NRGBA{0, 0, 0, 255},       // Black
	color.NRGBA{255, 255, 255, 255}, // White
	color.NRGBA{0, 255, 0, 255},     // Green
	color.NRGBA{0, 0, 255, 255},     // Blue
	color.NRGBA{255, 0, 0, 255},     // Red
	color.NRGBA{255, 255, 0, 255},   // Yellow
	color.NRGBA{255, 140, 0, 255},   // Orange
}

// RGBA implements color.Color. Reserved values are transparent.
func (c Color) RGBA() (r, g, b, a uint32) {
	if int(c) >= len(Palette) {
		return color.Transparent.RGBA()
	}
	return Palette[c].RGBA()
}

// PanelState is the power state of the panel controller.
type PanelState int

// Panel states.
const (
	// Uninitialized is the state before the first successful Init.
	Uninitialized PanelState = iota
	// Active means the controller is powered and accepts image data.
	Active
	// Sleeping means the controller is in deep sleep; Wake runs Init again.
	Sleeping
)

func (s PanelState) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Active:
		return "Active"
	case Sleeping:
		return "Sleeping"
	default:
		return fmt.Sprintf("PanelState(%d)", int(s))
	}
}
