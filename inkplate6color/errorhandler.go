// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inkplate6color

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler implements controller on top of the device pins. The first
// error stops all further bus traffic, delays included.
type errorHandler struct {
	d *Dev
	// timeout is wrapped into the error reported when a busy wait expires.
	timeout error
	err     error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

func (eh *errorHandler) cTx(w []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, nil)
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	eh.cTx([]byte{cmd})
	eh.csOut(gpio.High)
}

// sendData sends data as one transaction. Payloads larger than the
// connection allows are split while CS stays asserted.
func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.High)
	eh.csOut(gpio.Low)
	for len(data) > 0 && eh.err == nil {
		n := len(data)
		if n > eh.d.maxTxSize {
			n = eh.d.maxTxSize
		}
		eh.cTx(data[:n])
		data = data[n:]
	}
	eh.csOut(gpio.High)
}

func (eh *errorHandler) waitFor(l gpio.Level, timeout time.Duration) {
	if eh.err != nil {
		return
	}
	deadline := eh.d.now().Add(timeout)
	for eh.d.busy.Read() != l {
		if !eh.d.now().Before(deadline) {
			eh.err = fmt.Errorf("inkplate6color: busy line not %s after %s: %w", l, timeout, eh.timeout)
			return
		}
		eh.d.sleep(eh.d.opts.PollInterval)
	}
}

func (eh *errorHandler) delay(d time.Duration) {
	if eh.err != nil {
		return
	}
	eh.d.sleep(d)
}

func (eh *errorHandler) release() {
	eh.rstOut(gpio.Low)
	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
}
