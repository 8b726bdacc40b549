// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package board

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/mcp23xxx"
)

// MCP23017 is the expander of the earlier board revisions, with the same pin
// numbering as the PCAL6416A: GPA0..GPA7 are 0..7, GPB0..GPB7 are 8..15.
type MCP23017 struct {
	*mcp23xxx.Dev
}

// NewMCP23017 opens the MCP23017 at addr.
func NewMCP23017(bus i2c.Bus, addr uint16) (*MCP23017, error) {
	d, err := mcp23xxx.NewI2C(bus, mcp23xxx.MCP23017, addr)
	if err != nil {
		return nil, fmt.Errorf("board: mcp23017: %w", err)
	}
	return &MCP23017{Dev: d}, nil
}

// Pin implements Expander.
func (m *MCP23017) Pin(n int) (gpio.PinIO, error) {
	port, bit := n/8, n%8
	if n < 0 || port >= len(m.Pins) || bit >= len(m.Pins[port]) {
		return nil, fmt.Errorf("board: mcp23017 pin %d out of range", n)
	}
	return m.Pins[port][bit], nil
}
