// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inkplate6color

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Opts defines the panel geometry and the timing of the controller protocol.
//
// Zero durations and frequencies are replaced by the values of DefaultOpts.
type Opts struct {
	// Physical resolution of the panel. Width must be even since two
	// horizontally adjacent pixels share one byte.
	Width  int
	Height int

	// Rotation is the initial rotation, in 90° steps. See Dev.SetRotation.
	Rotation int

	// InitTimeout bounds the wait for the controller to report ready after
	// a hardware reset.
	InitTimeout time.Duration
	// RefreshTimeout bounds each busy wait of the refresh handshake.
	RefreshTimeout time.Duration
	// PollInterval is the delay between two reads of the BUSY line.
	PollInterval time.Duration

	// SPIFrequency is the SPI clock.
	SPIFrequency physic.Frequency
}

// DefaultOpts is the configuration of the Inkplate 6COLOR panel.
var DefaultOpts = Opts{
	Width:          600,
	Height:         448,
	InitTimeout:    10 * time.Second,
	RefreshTimeout: 32 * time.Second,
	PollInterval:   time.Millisecond,
	SPIFrequency:   2 * physic.MegaHertz,
}

// withDefaults returns a copy of o with missing values taken from
// DefaultOpts.
func (o *Opts) withDefaults() Opts {
	if o == nil {
		return DefaultOpts
	}
	r := *o
	if r.Width == 0 && r.Height == 0 {
		r.Width = DefaultOpts.Width
		r.Height = DefaultOpts.Height
	}
	if r.InitTimeout <= 0 {
		r.InitTimeout = DefaultOpts.InitTimeout
	}
	if r.RefreshTimeout <= 0 {
		r.RefreshTimeout = DefaultOpts.RefreshTimeout
	}
	if r.PollInterval <= 0 {
		r.PollInterval = DefaultOpts.PollInterval
	}
	if r.SPIFrequency <= 0 {
		r.SPIFrequency = DefaultOpts.SPIFrequency
	}
	return r
}

func (o *Opts) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New("inkplate6color: width and height must be positive")
	}
	if o.Width%2 != 0 {
		return errors.New("inkplate6color: width must be even")
	}
	if o.Width > 0xFFFF || o.Height > 0xFFFF {
		return errors.New("inkplate6color: resolution does not fit the resolution register")
	}
	return nil
}
