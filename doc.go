// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package inkplate is a container for the Inkplate 6COLOR drivers.
//
// The panel is driven by inkplate6color, the board peripherals behind the
// GPIO expander by board and pcal6416a. preview prints panel images on a
// terminal.
package inkplate
