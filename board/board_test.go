// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package board

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/mcp23xxx"
)

// event is a pin write, a delay or an ADC sample, in order.
type event struct {
	Pin   int
	Level gpio.Level
	Delay time.Duration
	ADC   bool
}

type recorder struct {
	events []event
}

// recordingPin logs every Out call.
type recordingPin struct {
	gpiotest.Pin
	r   *recorder
	err error
}

func (p *recordingPin) Out(l gpio.Level) error {
	if p.err != nil {
		return p.err
	}
	p.r.events = append(p.r.events, event{Pin: p.Num, Level: l})
	return p.Pin.Out(l)
}

type fakeExpander struct {
	r    *recorder
	pins [NumExpanderPins]*recordingPin
}

func newFakeExpander() *fakeExpander {
	e := &fakeExpander{r: &recorder{}}
	for i := range e.pins {
		e.pins[i] = &recordingPin{Pin: gpiotest.Pin{N: "P" + strconv.Itoa(i), Num: i}, r: e.r}
	}
	return e
}

func (e *fakeExpander) Pin(n int) (gpio.PinIO, error) {
	if n < 0 || n >= len(e.pins) {
		return nil, fmt.Errorf("no pin %d", n)
	}
	return e.pins[n], nil
}

type fakeADC struct {
	r   *recorder
	raw int32
	err error
}

func (a *fakeADC) Read() (analog.Sample, error) {
	a.r.events = append(a.r.events, event{ADC: true})
	return analog.Sample{Raw: a.raw}, a.err
}

func newBoard(t *testing.T, raw int32) (*Board, *fakeExpander, *fakeADC) {
	t.Helper()
	e := newFakeExpander()
	a := &fakeADC{r: e.r, raw: raw}
	b, err := New(e, a)
	if err != nil {
		t.Fatal(err)
	}
	b.sleep = func(d time.Duration) {
		e.r.events = append(e.r.events, event{Delay: d})
	}
	e.r.events = nil
	return b, e, a
}

func TestNew(t *testing.T) {
	e := newFakeExpander()

	if _, err := New(e, nil); err != nil {
		t.Fatal(err)
	}

	want := []event{{Pin: PinBatteryMOS, Level: gpio.Low}}
	if diff := cmp.Diff(e.r.events, want); diff != "" {
		t.Errorf("New() difference (-got +want):\n%s", diff)
	}
	for _, n := range []int{PinTouchpad1, PinTouchpad2, PinTouchpad3} {
		if p := e.pins[n].Pull(); p != gpio.PullUp {
			t.Errorf("touchpad pin %d pull = %s, want PullUp", n, p)
		}
	}
}

func TestNewError(t *testing.T) {
	e := newFakeExpander()
	e.pins[PinBatteryMOS].err = errors.New("nack")

	if _, err := New(e, nil); err == nil {
		t.Fatal("New() succeeded with a failing expander")
	}
}

func TestSDCard(t *testing.T) {
	b, e, _ := newBoard(t, 0)

	if err := b.SDCardSleep(); err != nil {
		t.Fatal(err)
	}
	if err := b.SDCardWake(); err != nil {
		t.Fatal(err)
	}

	want := []event{
		{Pin: PinSDEnable, Level: gpio.High},
		{Delay: 5 * time.Millisecond},
		{Pin: PinSDEnable, Level: gpio.Low},
		{Delay: 5 * time.Millisecond},
	}
	if diff := cmp.Diff(e.r.events, want); diff != "" {
		t.Errorf("difference (-got +want):\n%s", diff)
	}
}

func TestReadTouchpad(t *testing.T) {
	b, e, _ := newBoard(t, 0)
	e.pins[PinTouchpad2].L = gpio.Low
	e.pins[PinTouchpad3].L = gpio.High

	for n, want := range map[int]bool{2: false, 3: true} {
		got, err := b.ReadTouchpad(n)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("ReadTouchpad(%d) = %t, want %t", n, got, want)
		}
	}
	for _, n := range []int{0, 4} {
		if _, err := b.ReadTouchpad(n); err == nil {
			t.Errorf("ReadTouchpad(%d) succeeded", n)
		}
	}
}

func TestReadBattery(t *testing.T) {
	b, e, _ := newBoard(t, 2048)

	v, err := b.ReadBattery()
	if err != nil {
		t.Fatal(err)
	}

	if diff := v - 3903900*physic.MicroVolt; diff < -physic.MicroVolt || diff > physic.MicroVolt {
		t.Errorf("ReadBattery() = %s, want 3.9039V", v)
	}
	want := []event{
		{Pin: PinBatteryMOS, Level: gpio.High},
		{Delay: time.Millisecond},
		{ADC: true},
		{Pin: PinBatteryMOS, Level: gpio.Low},
	}
	if diff := cmp.Diff(e.r.events, want); diff != "" {
		t.Errorf("ReadBattery() difference (-got +want):\n%s", diff)
	}
}

func TestReadBatteryADCError(t *testing.T) {
	b, e, a := newBoard(t, 0)
	a.err = errors.New("adc busy")

	if _, err := b.ReadBattery(); err == nil {
		t.Fatal("ReadBattery() succeeded")
	}
	if e.pins[PinBatteryMOS].Read() != gpio.Low {
		t.Error("battery divider left on")
	}
}

func TestReadBatteryNoADC(t *testing.T) {
	b, err := New(newFakeExpander(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.ReadBattery(); err == nil {
		t.Fatal("ReadBattery() succeeded without an ADC")
	}
}

func TestBatteryVoltage(t *testing.T) {
	for raw, want := range map[int32]physic.ElectricPotential{
		0:    0,
		4095: 7805894 * physic.MicroVolt,
	} {
		if diff := BatteryVoltage(raw) - want; diff < -physic.MicroVolt || diff > physic.MicroVolt {
			t.Errorf("BatteryVoltage(%d) = %s, want %s", raw, BatteryVoltage(raw), want)
		}
	}
}

func TestSetExpanderLowPower(t *testing.T) {
	b, e, _ := newBoard(t, 0)

	if err := b.SetExpanderLowPower(); err != nil {
		t.Fatal(err)
	}

	var want []event
	for n := 0; n < NumExpanderPins; n++ {
		want = append(want, event{Pin: n, Level: gpio.Low})
	}
	if diff := cmp.Diff(e.r.events, want); diff != "" {
		t.Errorf("SetExpanderLowPower() difference (-got +want):\n%s", diff)
	}
}

func TestExpanderPin(t *testing.T) {
	b, e, _ := newBoard(t, 0)

	p, err := b.ExpanderPin(3)
	if err != nil {
		t.Fatal(err)
	}
	if p != gpio.PinIO(e.pins[3]) {
		t.Errorf("ExpanderPin(3) = %s", p)
	}
}

func TestMCP23017PinRange(t *testing.T) {
	m := &MCP23017{Dev: &mcp23xxx.Dev{}}

	for _, n := range []int{-1, 0, 16} {
		if _, err := m.Pin(n); err == nil {
			t.Errorf("Pin(%d) succeeded on an empty expander", n)
		}
	}
}
