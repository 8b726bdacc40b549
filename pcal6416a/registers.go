// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcal6416a

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// Register addresses of port 0. The port 1 register always follows at +1.
const (
	regInput      = 0x00
	regOutput     = 0x02
	regPolarity   = 0x04
	regConfig     = 0x06 // 1 = input
	regPullEnable = 0x46
	regPullSelect = 0x48 // 1 = pull-up
)

// register is one 8 bit register of the expander with a write-through cache.
// Callers hold Dev.mu.
type register struct {
	c     *i2c.Dev
	addr  uint8
	valid bool
	value uint8
}

func (r *register) read(cached bool) (uint8, error) {
	if cached && r.valid {
		return r.value, nil
	}
	var b [1]byte
	if err := r.c.Tx([]byte{r.addr}, b[:]); err != nil {
		return 0, fmt.Errorf("pcal6416a: failed to read register %#02x: %w", r.addr, err)
	}
	r.valid = true
	r.value = b[0]
	return b[0], nil
}

func (r *register) write(v uint8) error {
	if r.valid && r.value == v {
		return nil
	}
	if err := r.c.Tx([]byte{r.addr, v}, nil); err != nil {
		return fmt.Errorf("pcal6416a: failed to write register %#02x: %w", r.addr, err)
	}
	r.valid = true
	r.value = v
	return nil
}

func (r *register) setBit(bit uint8, on bool) error {
	v, err := r.read(true)
	if err != nil {
		return err
	}
	if on {
		v |= 1 << bit
	} else {
		v &^= 1 << bit
	}
	return r.write(v)
}

func (r *register) bit(bit uint8, cached bool) (bool, error) {
	v, err := r.read(cached)
	return v&(1<<bit) != 0, err
}

// port is the register bank of 8 pins.
type port struct {
	input      register
	output     register
	polarity   register
	config     register
	pullEnable register
	pullSelect register
}

func newPort(c *i2c.Dev, n uint8) *port {
	return &port{
		input:      register{c: c, addr: regInput + n},
		output:     register{c: c, addr: regOutput + n},
		polarity:   register{c: c, addr: regPolarity + n},
		config:     register{c: c, addr: regConfig + n},
		pullEnable: register{c: c, addr: regPullEnable + n},
		pullSelect: register{c: c, addr: regPullSelect + n},
	}
}
