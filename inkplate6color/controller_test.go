// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inkplate6color

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/conn/v3/gpio"
)

type record struct {
	op   string
	cmd  byte
	data []byte
	l    gpio.Level
	d    time.Duration
}

func cmdRecord(cmd byte, data ...byte) record {
	return record{op: "cmd", cmd: cmd, data: data}
}

type fakeController []record

func (r *fakeController) sendCommand(cmd byte) {
	*r = append(*r, record{op: "cmd", cmd: cmd})
}

func (r *fakeController) sendData(data []byte) {
	cur := &(*r)[len(*r)-1]
	cur.data = append(cur.data, data...)
}

func (r *fakeController) rstOut(l gpio.Level) {
	*r = append(*r, record{op: "rst", l: l})
}

func (r *fakeController) waitFor(l gpio.Level, timeout time.Duration) {
	*r = append(*r, record{op: "wait", l: l, d: timeout})
}

func (r *fakeController) delay(d time.Duration) {
	*r = append(*r, record{op: "delay", d: d})
}

func (r *fakeController) release() {
	*r = append(*r, record{op: "release"})
}

func diffRecords(got fakeController, want []record) string {
	return cmp.Diff([]record(got), want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{}))
}

func TestResolution(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Opts
		want []byte
	}{
		{name: "inkplate 6color", opts: DefaultOpts, want: []byte{0x02, 0x58, 0x01, 0xC0}},
		{name: "640x400", opts: Opts{Width: 640, Height: 400}, want: []byte{0x02, 0x80, 0x01, 0x90}},
		{name: "small", opts: Opts{Width: 8, Height: 2}, want: []byte{0x00, 0x08, 0x00, 0x02}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(resolution(&tc.opts), tc.want); diff != "" {
				t.Errorf("resolution() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestInitPanel(t *testing.T) {
	opts := DefaultOpts
	var got fakeController

	initPanel(&got, &opts)

	want := []record{
		{op: "rst", l: gpio.Low},
		{op: "delay", d: time.Millisecond},
		{op: "rst", l: gpio.High},
		{op: "delay", d: time.Millisecond},
		{op: "wait", l: gpio.High, d: 10 * time.Second},
		cmdRecord(panelSetting, 0xEF, 0x08),
		cmdRecord(powerSetting, 0x37, 0x00, 0x23, 0x23),
		cmdRecord(powerOffSequenceSetting, 0x00),
		cmdRecord(boosterSoftStart, 0xC7, 0xC7, 0x1D),
		cmdRecord(pllControl, 0x3C),
		cmdRecord(temperatureSensor, 0x00),
		cmdRecord(vcomAndDataIntervalSetting, 0x37),
		cmdRecord(tconSetting, 0x20),
		cmdRecord(resolutionSetting, 0x02, 0x58, 0x01, 0xC0),
		cmdRecord(powerSaving, 0xAA),
		{op: "delay", d: 100 * time.Millisecond},
		cmdRecord(vcomAndDataIntervalSetting, 0x37),
	}
	if diff := diffRecords(got, want); diff != "" {
		t.Errorf("initPanel() difference (-got +want):\n%s", diff)
	}
}

func TestRefreshPanel(t *testing.T) {
	opts := DefaultOpts
	opts.RefreshTimeout = 5 * time.Second
	pix := bytes.Repeat([]byte{0x42}, 16)
	var got fakeController

	refreshPanel(&got, &opts, pix)

	want := []record{
		cmdRecord(resolutionSetting, 0x02, 0x58, 0x01, 0xC0),
		cmdRecord(dataStartTransmission, pix...),
		cmdRecord(powerOff),
		{op: "wait", l: gpio.High, d: 5 * time.Second},
		cmdRecord(displayRefresh),
		{op: "wait", l: gpio.High, d: 5 * time.Second},
		cmdRecord(powerOff),
		{op: "wait", l: gpio.Low, d: 5 * time.Second},
		{op: "delay", d: 200 * time.Millisecond},
	}
	if diff := diffRecords(got, want); diff != "" {
		t.Errorf("refreshPanel() difference (-got +want):\n%s", diff)
	}
}

func TestSleepPanel(t *testing.T) {
	var got fakeController

	sleepPanel(&got)

	want := []record{
		{op: "delay", d: 10 * time.Millisecond},
		cmdRecord(deepSleep, 0xA5),
		{op: "delay", d: 100 * time.Millisecond},
		{op: "release"},
	}
	if diff := diffRecords(got, want); diff != "" {
		t.Errorf("sleepPanel() difference (-got +want):\n%s", diff)
	}
}
