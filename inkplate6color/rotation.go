// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inkplate6color

// normalizeRotation folds r into 0..3, negative values included.
func normalizeRotation(r int) int {
	r %= 4
	if r < 0 {
		r += 4
	}
	return r
}

// logicalSize returns the width and height seen by callers for a panel of
// cols x rows physical pixels.
func logicalSize(rotation, cols, rows int) (int, int) {
	if rotation&1 == 1 {
		return rows, cols
	}
	return cols, rows
}

// toPhysical maps the logical position (x, y) to the physical position in
// the framebuffer. ok is false when (x, y) is outside of the logical bounds.
//
// Rotation 2 is the native orientation of the panel; rotation 0 shows the
// image upside down relative to it, which matches the board's mounting.
func toPhysical(rotation, cols, rows, x, y int) (px, py int, ok bool) {
	w, h := logicalSize(rotation, cols, rows)
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, 0, false
	}
	switch rotation {
	case 0:
		return cols - 1 - x, rows - 1 - y, true
	case 1:
		return cols - 1 - y, x, true
	case 3:
		return y, rows - 1 - x, true
	default:
		return x, y, true
	}
}
