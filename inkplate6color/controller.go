// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inkplate6color

import (
	"encoding/binary"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Commands
const (
	panelSetting            byte = 0x00
	powerSetting            byte = 0x01
	powerOffSequenceSetting byte = 0x03
	// powerOff is the register the Inkplate firmware toggles around a
	// refresh. The UC8159 datasheet lists 0x04 as power on; the panel only
	// completes a refresh with this exact sequence.
	powerOff                   byte = 0x04
	boosterSoftStart           byte = 0x06
	deepSleep                  byte = 0x07
	dataStartTransmission      byte = 0x10
	displayRefresh             byte = 0x12
	pllControl                 byte = 0x30
	temperatureSensor          byte = 0x40
	vcomAndDataIntervalSetting byte = 0x50
	tconSetting                byte = 0x60
	resolutionSetting          byte = 0x61
	powerSaving                byte = 0xE3
)

// deepSleepCheck is the check code the controller requires after deepSleep.
const deepSleepCheck byte = 0xA5

// Delays of the protocol.
const (
	resetHold     = time.Millisecond
	initSettle    = 100 * time.Millisecond
	refreshSettle = 200 * time.Millisecond
	sleepGuard    = 10 * time.Millisecond
	sleepSettle   = 100 * time.Millisecond
)

// controller is the set of primitives the protocol sequences are written
// against.
type controller interface {
	sendCommand(cmd byte)
	sendData(data []byte)
	rstOut(l gpio.Level)
	// waitFor blocks until the BUSY line reads l or timeout expires.
	waitFor(l gpio.Level, timeout time.Duration)
	delay(d time.Duration)
	// release drives RST, DC and CS low.
	release()
}

// resolution returns the payload of resolutionSetting: the horizontal then
// the vertical resolution, both big endian.
func resolution(opts *Opts) []byte {
	var b [4]byte
	binary.BigEndian.PutUint16(b[0:], uint16(opts.Width))
	binary.BigEndian.PutUint16(b[2:], uint16(opts.Height))
	return b[:]
}

func resetPanel(ctrl controller) {
	ctrl.rstOut(gpio.Low)
	ctrl.delay(resetHold)
	ctrl.rstOut(gpio.High)
	ctrl.delay(resetHold)
}

// initPanel resets the controller and programs the power and timing
// registers.
func initPanel(ctrl controller, opts *Opts) {
	resetPanel(ctrl)

	// The controller holds BUSY low until its internal reset completes.
	ctrl.waitFor(gpio.High, opts.InitTimeout)

	// Resolution from registers, LUT from OTP, DC-DC on, scan up, shift right.
	ctrl.sendCommand(panelSetting)
	ctrl.sendData([]byte{0xEF, 0x08})

	ctrl.sendCommand(powerSetting)
	ctrl.sendData([]byte{0x37, 0x00, 0x23, 0x23})

	// Power off VDH and VDL after 1 frame.
	ctrl.sendCommand(powerOffSequenceSetting)
	ctrl.sendData([]byte{0x00})

	ctrl.sendCommand(boosterSoftStart)
	ctrl.sendData([]byte{0xC7, 0xC7, 0x1D})

	ctrl.sendCommand(pllControl)
	ctrl.sendData([]byte{0x3C})

	// Internal temperature sensor.
	ctrl.sendCommand(temperatureSensor)
	ctrl.sendData([]byte{0x00})

	ctrl.sendCommand(vcomAndDataIntervalSetting)
	ctrl.sendData([]byte{0x37})

	// Gate/source non-overlap period.
	ctrl.sendCommand(tconSetting)
	ctrl.sendData([]byte{0x20})

	ctrl.sendCommand(resolutionSetting)
	ctrl.sendData(resolution(opts))

	ctrl.sendCommand(powerSaving)
	ctrl.sendData([]byte{0xAA})

	ctrl.delay(initSettle)

	ctrl.sendCommand(vcomAndDataIntervalSetting)
	ctrl.sendData([]byte{0x37})
}

// refreshPanel transfers pix and runs the refresh handshake. The busy
// waits follow the charge pump of the panel and must stay in this order.
func refreshPanel(ctrl controller, opts *Opts, pix []byte) {
	ctrl.sendCommand(resolutionSetting)
	ctrl.sendData(resolution(opts))

	ctrl.sendCommand(dataStartTransmission)
	ctrl.sendData(pix)

	ctrl.sendCommand(powerOff)
	ctrl.waitFor(gpio.High, opts.RefreshTimeout)

	ctrl.sendCommand(displayRefresh)
	ctrl.waitFor(gpio.High, opts.RefreshTimeout)

	ctrl.sendCommand(powerOff)
	ctrl.waitFor(gpio.Low, opts.RefreshTimeout)

	ctrl.delay(refreshSettle)
}

// sleepPanel puts the controller in deep sleep and parks the control lines.
func sleepPanel(ctrl controller) {
	ctrl.delay(sleepGuard)

	ctrl.sendCommand(deepSleep)
	ctrl.sendData([]byte{deepSleepCheck})

	ctrl.delay(sleepSettle)
	ctrl.release()
}
