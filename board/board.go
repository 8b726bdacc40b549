// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package board exposes the peripherals of the Inkplate 6COLOR board that sit
// behind its I²C GPIO expander: the micro SD card power switch, the three
// touchpads and the battery voltage divider.
//
// The panel itself is driven by package inkplate6color.
//
// # More Details
//
// https://inkplate.readthedocs.io/en/latest/hardware.html
package board

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Expander pins used by the board.
const (
	PinBatteryMOS = 9
	PinTouchpad1  = 10
	PinTouchpad2  = 11
	PinTouchpad3  = 12
	PinSDEnable   = 13
)

// NumExpanderPins is the number of pins of the on-board expander.
const NumExpanderPins = 16

const (
	sdSettle      = 5 * time.Millisecond
	batterySettle = time.Millisecond
)

// batteryScale converts a 12 bit ADC reading to the battery voltage: the
// ESP32 reference is 1.1V, the 11dB attenuation is x3.548133892 and the
// divider halves the battery voltage.
const batteryScale = 1.1 * 3.548133892 * 2 / 4095

// Expander is a GPIO expander with numbered pins.
//
// It is implemented by *pcal6416a.Dev and by *MCP23017.
type Expander interface {
	Pin(n int) (gpio.PinIO, error)
}

// ADC samples the battery voltage divider. analog.PinADC implements it.
type ADC interface {
	Read() (analog.Sample, error)
}

// Board is a handle to the board peripherals.
type Board struct {
	mu       sync.Mutex
	exp      Expander
	adc      ADC
	sdEnable gpio.PinIO
	batMOS   gpio.PinIO
	touch    [3]gpio.PinIO

	sleep func(time.Duration)
}

// New configures the expander pins used by the board.
//
// adc may be nil when the battery is not measured. The touchpads become
// inputs with pull-up and the battery divider is switched off.
func New(exp Expander, adc ADC) (*Board, error) {
	b := &Board{exp: exp, adc: adc, sleep: time.Sleep}
	var err error
	if b.sdEnable, err = exp.Pin(PinSDEnable); err != nil {
		return nil, fmt.Errorf("board: sd enable: %w", err)
	}
	if b.batMOS, err = exp.Pin(PinBatteryMOS); err != nil {
		return nil, fmt.Errorf("board: battery switch: %w", err)
	}
	if err := b.batMOS.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("board: battery switch: %w", err)
	}
	for i := range b.touch {
		if b.touch[i], err = exp.Pin(PinTouchpad1 + i); err != nil {
			return nil, fmt.Errorf("board: touchpad %d: %w", i+1, err)
		}
		if err := b.touch[i].In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("board: touchpad %d: %w", i+1, err)
		}
	}
	return b, nil
}

// ExpanderPin returns pin n of the expander for general use.
func (b *Board) ExpanderPin(n int) (gpio.PinIO, error) {
	return b.exp.Pin(n)
}

// SDCardSleep cuts the power of the micro SD card.
func (b *Board) SDCardSleep() error {
	return b.sdPower(gpio.High)
}

// SDCardWake powers the micro SD card. The card still has to be mounted by the
// host.
func (b *Board) SDCardWake() error {
	return b.sdPower(gpio.Low)
}

// sdPower drives the active low SD_ENABLE line.
func (b *Board) sdPower(l gpio.Level) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.sdEnable.Out(l); err != nil {
		return fmt.Errorf("board: sd enable: %w", err)
	}
	b.sleep(sdSettle)
	return nil
}

// ReadTouchpad reports whether touchpad n, 1 to 3, is touched.
func (b *Board) ReadTouchpad(n int) (bool, error) {
	if n < 1 || n > len(b.touch) {
		return false, fmt.Errorf("board: touchpad %d out of range 1..%d", n, len(b.touch))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.touch[n-1].Read() == gpio.High, nil
}

// ReadBattery switches the divider on, samples it and switches it off again.
func (b *Board) ReadBattery() (physic.ElectricPotential, error) {
	if b.adc == nil {
		return 0, errors.New("board: no battery ADC")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.batMOS.Out(gpio.High); err != nil {
		return 0, fmt.Errorf("board: battery switch: %w", err)
	}
	b.sleep(batterySettle)
	s, err := b.adc.Read()
	if err2 := b.batMOS.Out(gpio.Low); err == nil {
		err = err2
	}
	if err != nil {
		return 0, fmt.Errorf("board: battery: %w", err)
	}
	return BatteryVoltage(s.Raw), nil
}

// BatteryVoltage converts a raw 12 bit ADC reading of the divider.
func BatteryVoltage(raw int32) physic.ElectricPotential {
	return physic.ElectricPotential(float64(raw) * batteryScale * float64(physic.Volt))
}

// SetExpanderLowPower drives every expander pin low, which draws the least
// current in deep sleep. The touchpads and the SD card stop working until the
// board is reopened.
func (b *Board) SetExpanderLowPower() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for n := 0; n < NumExpanderPins; n++ {
		p, err := b.exp.Pin(n)
		if err != nil {
			return fmt.Errorf("board: expander pin %d: %w", n, err)
		}
		if err := p.Out(gpio.Low); err != nil {
			return fmt.Errorf("board: expander pin %d: %w", n, err)
		}
	}
	return nil
}
