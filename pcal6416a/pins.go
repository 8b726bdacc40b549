// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcal6416a

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Pin is a gpio.PinIO with the polarity inversion of the PCAL6416A.
type Pin interface {
	gpio.PinIO
	pin.PinFunc
	// SetPolarityInverted inverts the level reported by Read when p is true.
	SetPolarityInverted(p bool) error
	// IsPolarityInverted reports whether Read reports the inverted level.
	IsPolarityInverted() (bool, error)
}

type expanderPin struct {
	d    *Dev
	name string
	num  int
	p    *port
	bit  uint8
}

func (p *expanderPin) String() string {
	return p.name
}

func (p *expanderPin) Name() string {
	return p.name
}

// Number returns the pin number on the chip, 0..15. P1_0 is 8.
func (p *expanderPin) Number() int {
	return p.num
}

func (p *expanderPin) Function() string {
	return string(p.Func())
}

// Halt turns the pin into a floating input.
func (p *expanderPin) Halt() error {
	return p.In(gpio.Float, gpio.NoEdge)
}

func (p *expanderPin) In(pull gpio.Pull, edge gpio.Edge) error {
	// The interrupt line is not routed to the host.
	if edge != gpio.NoEdge {
		return errors.New("pcal6416a: edge detection not supported")
	}

	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	switch pull {
	case gpio.PullUp, gpio.PullDown:
		if err := p.p.pullSelect.setBit(p.bit, pull == gpio.PullUp); err != nil {
			return err
		}
		if err := p.p.pullEnable.setBit(p.bit, true); err != nil {
			return err
		}
	case gpio.Float:
		if err := p.p.pullEnable.setBit(p.bit, false); err != nil {
			return err
		}
	case gpio.PullNoChange:
	default:
		return fmt.Errorf("pcal6416a: unsupported pull %s", pull)
	}
	return p.p.config.setBit(p.bit, true)
}

// Read returns the level at the pin. It is always read from the chip.
func (p *expanderPin) Read() gpio.Level {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	v, _ := p.p.input.bit(p.bit, false)
	return gpio.Level(v)
}

func (p *expanderPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

// Pull returns the configured pull resistor.
func (p *expanderPin) Pull() gpio.Pull {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	en, err := p.p.pullEnable.bit(p.bit, true)
	if err != nil {
		return gpio.PullNoChange
	}
	if !en {
		return gpio.Float
	}
	up, err := p.p.pullSelect.bit(p.bit, true)
	if err != nil {
		return gpio.PullNoChange
	}
	if up {
		return gpio.PullUp
	}
	return gpio.PullDown
}

func (p *expanderPin) DefaultPull() gpio.Pull {
	return gpio.Float
}

// Out sets the output latch before turning the pin into an output, so the pin
// never glitches to the previous level.
func (p *expanderPin) Out(l gpio.Level) error {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	if err := p.p.output.setBit(p.bit, l == gpio.High); err != nil {
		return err
	}
	return p.p.config.setBit(p.bit, false)
}

func (p *expanderPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("pcal6416a: PWM is not supported")
}

func (p *expanderPin) Func() pin.Func {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	in, err := p.p.config.bit(p.bit, true)
	if err != nil {
		return pin.FuncNone
	}
	if in {
		return gpio.IN
	}
	return gpio.OUT
}

func (p *expanderPin) SupportedFuncs() []pin.Func {
	return supportedFuncs[:]
}

func (p *expanderPin) SetFunc(f pin.Func) error {
	switch f {
	case gpio.IN:
		return p.In(gpio.PullNoChange, gpio.NoEdge)
	case gpio.OUT:
		p.d.mu.Lock()
		defer p.d.mu.Unlock()
		return p.p.config.setBit(p.bit, false)
	default:
		return errors.New("pcal6416a: function not supported: " + string(f))
	}
}

func (p *expanderPin) SetPolarityInverted(inv bool) error {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	return p.p.polarity.setBit(p.bit, inv)
}

func (p *expanderPin) IsPolarityInverted() (bool, error) {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	return p.p.polarity.bit(p.bit, true)
}

var supportedFuncs = [...]pin.Func{gpio.IN, gpio.OUT}
