// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inkplate6color

import (
	"bytes"
	"errors"
	"fmt"
	"image/draw"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
var _ draw.Image = &Dev{}

var (
	// ErrInitTimeout is returned by Init when the controller does not report
	// ready after a reset.
	ErrInitTimeout = errors.New("panel did not become ready after reset")
	// ErrRefreshTimeout is returned by Display and Clean when one of the
	// busy waits of the refresh handshake expires.
	ErrRefreshTimeout = errors.New("panel did not complete refresh")
)

// Dev is a handle to the panel.
//
// All methods are safe for concurrent use. Display and Clean hold the device
// for the whole transfer and refresh.
type Dev struct {
	mu sync.Mutex

	c         conn.Conn
	maxTxSize int

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	opts     Opts
	state    PanelState
	rotation int
	buffer   *Framebuffer

	now   func() time.Time
	sleep func(time.Duration)
}

// New opens a handle to the panel. The panel is not touched until Init.
//
// opts may be nil to use DefaultOpts.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	o := opts.withDefaults()
	if err := o.validate(); err != nil {
		return nil, err
	}

	c, err := p.Connect(o.SPIFrequency, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("inkplate6color: failed to connect over spi: %w", err)
	}

	// Get the maxTxSize from the conn if it implements the conn.Limits interface,
	// otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096
	}

	if err := busy.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("inkplate6color: failed to configure busy pin: %w", err)
	}
	if err := cs.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("inkplate6color: failed to deassert chip select: %w", err)
	}

	return &Dev{
		c:         c,
		maxTxSize: maxTxSize,
		dc:        dc,
		cs:        cs,
		rst:       rst,
		busy:      busy,
		opts:      o,
		rotation:  normalizeRotation(o.Rotation),
		buffer:    NewFramebuffer(o.Width, o.Height),
		now:       time.Now,
		sleep:     time.Sleep,
	}, nil
}

// Init resets the controller and programs its registers.
//
// On success the panel is Active. If the controller does not report ready
// within Opts.InitTimeout the returned error wraps ErrInitTimeout. On any
// failure the panel is Uninitialized, since the controller may have been
// reset.
func (d *Dev) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initLocked()
}

func (d *Dev) initLocked() error {
	eh := errorHandler{d: d, timeout: ErrInitTimeout}
	initPanel(&eh, &d.opts)
	if eh.err != nil {
		d.state = Uninitialized
		return eh.err
	}
	d.state = Active
	return nil
}

// Wake brings the panel out of deep sleep by running Init again.
func (d *Dev) Wake() error {
	return d.Init()
}

// Sleep puts an Active panel in deep sleep. It does nothing in other states.
func (d *Dev) Sleep() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Active {
		return nil
	}
	eh := errorHandler{d: d}
	sleepPanel(&eh)
	if eh.err != nil {
		return eh.err
	}
	d.state = Sleeping
	return nil
}

// PanelState returns the power state of the panel.
func (d *Dev) PanelState() PanelState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SetPanelState wakes the panel when active is true and puts it in deep
// sleep otherwise.
func (d *Dev) SetPanelState(active bool) error {
	if active {
		return d.Wake()
	}
	return d.Sleep()
}

// Display sends the framebuffer to the panel and refreshes it. It does
// nothing unless the panel is Active.
func (d *Dev) Display() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refreshLocked(d.buffer.Bytes())
}

// Clean refreshes the panel with a white image without touching the
// framebuffer, to flush charge left by previous images. It does nothing
// unless the panel is Active.
func (d *Dev) Clean() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refreshLocked(bytes.Repeat([]byte{background}, d.buffer.Len()))
}

func (d *Dev) refreshLocked(pix []byte) error {
	if d.state != Active {
		return nil
	}
	eh := errorHandler{d: d, timeout: ErrRefreshTimeout}
	refreshPanel(&eh, &d.opts, pix)
	return eh.err
}

// Halt implements conn.Resource. It puts the panel in deep sleep; the image
// stays visible.
func (d *Dev) Halt() error {
	return d.Sleep()
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("inkplate6color.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.opts.Width, d.opts.Height)
}
