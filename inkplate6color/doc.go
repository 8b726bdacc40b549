// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package inkplate6color drives the 600x448 seven colour e-paper panel of the
// Soldered Inkplate 6COLOR board.
//
// The panel is controlled by a UC8159 compatible controller over a four wire
// SPI link: the SPI data lines, a data/command (DC) line, a chip select (CS)
// line driven by this package, a reset (RST) line and a BUSY input which the
// controller drives High when it is ready for the next command.
//
// Pixels are kept in a packed framebuffer with two pixels per byte. Drawing
// only touches this buffer; nothing is shown until Display is called.
//
// # Datasheet
//
// https://www.orientdisplay.com/wp-content/uploads/2022/09/UC8159c.pdf
//
// # Product page
//
// https://soldered.com/product/inkplate-6color-color-e-paper-board/
package inkplate6color
