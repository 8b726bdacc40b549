// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcal6416a drives the NXP PCAL6416A 16-bit I²C GPIO expander.
//
// It is register compatible with the TCA6416A and adds per pin pull-up and
// pull-down resistors. The Inkplate boards use it for the SD card power
// switch, the touchpads and the battery measurement switch.
//
// Pins are numbered 0 to 15: P0_0..P0_7 then P1_0..P1_7.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/PCAL6416A.pdf
package pcal6416a

import (
	"fmt"
	"strconv"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

// NumPins is the number of pins of the chip.
const NumPins = 16

// Dev is a handle to a PCAL6416A.
type Dev struct {
	// Pins is indexed by pin number.
	Pins []Pin

	mu    sync.Mutex
	c     i2c.Dev
	ports [2]*port
}

// New opens a PCAL6416A at addr, which must be 0x20 or 0x21 depending on the
// ADDR strap.
//
// The pins are registered in gpioreg as PCAL6416A_<addr>_P<port>_<bit>, for
// example PCAL6416A_20_P1_5.
func New(bus i2c.Bus, addr uint16) (*Dev, error) {
	if addr != 0x20 && addr != 0x21 {
		return nil, fmt.Errorf("pcal6416a: invalid address %#x, expected 0x20 or 0x21", addr)
	}
	d := &Dev{c: i2c.Dev{Bus: bus, Addr: addr}}
	prefix := "PCAL6416A_" + strconv.FormatInt(int64(addr), 16)
	for i := range d.ports {
		d.ports[i] = newPort(&d.c, uint8(i))
		// Pre-cache the direction; every other register is read on first use.
		if _, err := d.ports[i].config.read(false); err != nil {
			return nil, err
		}
	}

	d.Pins = make([]Pin, NumPins)
	for n := range d.Pins {
		bit := uint8(n % 8)
		p := &expanderPin{
			d:    d,
			name: prefix + "_P" + strconv.Itoa(n/8) + "_" + strconv.Itoa(int(bit)),
			num:  n,
			p:    d.ports[n/8],
			bit:  bit,
		}
		d.Pins[n] = p
		// Ignore registration failure.
		_ = gpioreg.Register(p)
	}
	return d, nil
}

// Pin returns pin n, 0..15.
func (d *Dev) Pin(n int) (gpio.PinIO, error) {
	if n < 0 || n >= len(d.Pins) {
		return nil, fmt.Errorf("pcal6416a: pin %d out of range 0..%d", n, NumPins-1)
	}
	return d.Pins[n], nil
}

// Close removes the pins from gpioreg.
func (d *Dev) Close() error {
	for _, p := range d.Pins {
		if err := gpioreg.Unregister(p.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("pcal6416a.Dev{%s}", &d.c)
}
