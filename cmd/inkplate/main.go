// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// inkplate drives an Inkplate 6COLOR panel and its board peripherals.
//
// Usage:
//
//	inkplate [flags] [testcard|text|clean|sleep|touch|sd-sleep|sd-wake|lowpower]
//
// With -preview, images are printed on the terminal and no hardware is used.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/GermanBionicSystems/inkplate/board"
	"github.com/GermanBionicSystems/inkplate/inkplate6color"
	"github.com/GermanBionicSystems/inkplate/internal/config"
	"github.com/GermanBionicSystems/inkplate/pcal6416a"
	"github.com/GermanBionicSystems/inkplate/preview"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func openPanel(cfg *config.Config) (*inkplate6color.Dev, func(), error) {
	p, err := spireg.Open(cfg.Panel.SPI)
	if err != nil {
		return nil, nil, err
	}
	pins := map[string]gpio.PinIO{}
	for _, name := range []string{cfg.Panel.DC, cfg.Panel.CS, cfg.Panel.RST, cfg.Panel.Busy} {
		pin := gpioreg.ByName(name)
		if pin == nil {
			p.Close()
			return nil, nil, fmt.Errorf("no pin %q", name)
		}
		pins[name] = pin
	}
	dev, err := inkplate6color.New(p, pins[cfg.Panel.DC], pins[cfg.Panel.CS], pins[cfg.Panel.RST], pins[cfg.Panel.Busy], cfg.PanelOpts())
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	log.Printf("%s", dev)
	if err := dev.Init(); err != nil {
		p.Close()
		return nil, nil, err
	}
	return dev, func() {
		if err := dev.Halt(); err != nil {
			log.Printf("failed to put the panel to sleep: %v", err)
		}
		p.Close()
	}, nil
}

func openBoard(cfg *config.Config) (*board.Board, func(), error) {
	if cfg.Expander.Kind == config.ExpanderNone {
		return nil, nil, errors.New("the configuration has no expander")
	}
	bus, err := i2creg.Open(cfg.Expander.Bus)
	if err != nil {
		return nil, nil, err
	}
	var exp board.Expander
	closer := func() { bus.Close() }
	switch cfg.Expander.Kind {
	case config.ExpanderPCAL6416A:
		d, err := pcal6416a.New(bus, cfg.Expander.Addr)
		if err != nil {
			bus.Close()
			return nil, nil, err
		}
		exp = d
		closer = func() {
			d.Close()
			bus.Close()
		}
	case config.ExpanderMCP23017:
		d, err := board.NewMCP23017(bus, cfg.Expander.Addr)
		if err != nil {
			bus.Close()
			return nil, nil, err
		}
		exp = d
	}
	// The ESP32 ADC that measures the battery has no periph driver.
	b, err := board.New(exp, nil)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return b, closer, nil
}

// render draws the image for cmd on a w x h canvas.
func render(cmd string, w, h int, text string, c inkplate6color.Color) (image.Image, error) {
	switch cmd {
	case "testcard":
		return renderTestCard(w, h)
	case "text":
		return renderText(w, h, text, c), nil
	default:
		return nil, fmt.Errorf("unknown image %q", cmd)
	}
}

func show(d display.Drawer, img image.Image) error {
	return d.Draw(d.Bounds(), img, image.Point{})
}

func runPreview(cfg *config.Config, cmd, text string, c inkplate6color.Color) error {
	w, h := cfg.Panel.Width, cfg.Panel.Height
	if cfg.Panel.Rotation%2 != 0 {
		w, h = h, w
	}
	img, err := render(cmd, w, h, text, c)
	if err != nil {
		return err
	}
	p := preview.New(w, h, &preview.Opts{Scale: cfg.Preview.Scale, Mono: cfg.Preview.Mono})
	defer p.Halt()
	return show(p, img)
}

func runPanel(cfg *config.Config, cmd, text string, c inkplate6color.Color) error {
	dev, closer, err := openPanel(cfg)
	if err != nil {
		return err
	}
	defer closer()

	switch cmd {
	case "clean":
		return dev.Clean()
	case "sleep":
		// closer puts the panel in deep sleep.
		return nil
	case "text":
		dev.ClearDisplay()
		drawText(dev, text, c)
		return dev.Display()
	}
	img, err := render(cmd, dev.Width(), dev.Height(), text, c)
	if err != nil {
		return err
	}
	return show(dev, img)
}

func runBoard(cfg *config.Config, cmd string) error {
	b, closer, err := openBoard(cfg)
	if err != nil {
		return err
	}
	defer closer()

	switch cmd {
	case "touch":
		for n := 1; n <= 3; n++ {
			touched, err := b.ReadTouchpad(n)
			if err != nil {
				return err
			}
			fmt.Printf("touchpad %d: %t\n", n, touched)
		}
		return nil
	case "sd-sleep":
		return b.SDCardSleep()
	case "sd-wake":
		return b.SDCardWake()
	case "lowpower":
		return b.SetExpanderLowPower()
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func mainImpl() error {
	configPath := flag.String("config", "inkplate.yaml", "path to the YAML configuration")
	writeConfig := flag.Bool("write-config", false, "write the effective configuration to -config and exit")
	rotation := flag.Int("rotation", -1, "rotation in 90° steps, overrides the configuration")
	usePreview := flag.Bool("preview", false, "print the image on the terminal instead of the panel")
	text := flag.String("text", "Hello from periph!", "text of the text command")
	c := inkplate6color.Black
	flag.Var(&c, "color", "ink of the text command: black, white, green, blue, red, yellow or orange")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	cmd := "testcard"
	switch flag.NArg() {
	case 0:
	case 1:
		cmd = flag.Arg(0)
	default:
		return errors.New("too many arguments")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *rotation >= 0 {
		cfg.Panel.Rotation = *rotation
	}
	if *writeConfig {
		return config.Save(*configPath, cfg)
	}
	log.Printf("panel %dx%d on %q, expander %s@%#x", cfg.Panel.Width, cfg.Panel.Height, cfg.Panel.SPI, cfg.Expander.Kind, cfg.Expander.Addr)

	if *usePreview {
		return runPreview(cfg, cmd, *text, c)
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	switch cmd {
	case "testcard", "text", "clean", "sleep":
		return runPanel(cfg, cmd, *text, c)
	default:
		return runBoard(cfg, cmd)
	}
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "inkplate: %s.\n", err)
		os.Exit(1)
	}
}
