// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcal6416a_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/inkplate/pcal6416a"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	dev, err := pcal6416a.New(bus, 0x20)
	if err != nil {
		log.Fatalln(err)
	}
	defer dev.Close()

	// The Inkplate touchpads pull the line low.
	for n := 10; n <= 12; n++ {
		pin := dev.Pins[n]
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			log.Fatalln(err)
		}
		fmt.Printf("%s\t%s\n", pin.Name(), pin.Read())
	}
}
