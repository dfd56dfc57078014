// evtest prints the events decoded from the terminal until Esc is
// pressed twice in a row
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mgutz/ansi"
	"github.com/xyproto/tvinput"
)

var (
	keyColor     = ansi.ColorFunc("green+b")
	mouseColor   = ansi.ColorFunc("cyan")
	commandColor = ansi.ColorFunc("yellow")
	noteColor    = ansi.ColorFunc("black+h")
)

func main() {
	configFile := flag.String("config", "", "YAML file with input options")
	flag.Parse()

	opts := tvinput.DefaultOptions()
	if *configFile != "" {
		var err error
		if opts, err = tvinput.LoadOptions(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	opts.Logger = tvinput.NewDebugLogger()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts tvinput.Options) error {
	mux, err := tvinput.NewMultiplexer()
	if err != nil {
		return err
	}
	defer mux.Close()

	if err := addSources(mux, opts); err != nil {
		return err
	}

	fmt.Print(noteColor("Press Esc twice to exit") + "\r\n")
	escCount := 0
	var ev tvinput.Event
	for escCount < 2 {
		if err := mux.WaitForEvents(time.Second); err != nil {
			return err
		}
		for escCount < 2 && mux.GetEvent(&ev) {
			printEvent(ev)
			if ev.What == tvinput.EvKeyDown && ev.KeyDown.KeyCode == tvinput.KbEsc {
				escCount++
			} else {
				escCount = 0
			}
		}
	}
	fmt.Print("bye!\r\n")
	return nil
}

func printEvent(ev tvinput.Event) {
	switch ev.What {
	case tvinput.EvKeyDown:
		fmt.Print(keyColor(ev.String()) + "\r\n")
	case tvinput.EvMouse:
		fmt.Print(mouseColor(ev.String()) + "\r\n")
	case tvinput.EvCommand:
		fmt.Print(commandColor(ev.String()) + "\r\n")
	}
}
