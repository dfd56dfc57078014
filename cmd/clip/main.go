//go:build unix

// clip copies its arguments, or stdin, to the system clipboard through
// the terminal. With -get it prints the clipboard contents instead.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/xyproto/tvinput"
)

func main() {
	get := flag.Bool("get", false, "print the clipboard contents")
	wait := flag.Duration("wait", 2*time.Second, "how long to wait for the terminal")
	flag.Parse()

	opts := tvinput.DefaultOptions()
	opts.Mouse = false
	opts.BracketedPaste = false
	opts.ProbeCapabilities = *get
	opts.Logger = tvinput.NewDebugLogger()

	var err error
	if *get {
		err = paste(opts, *wait)
	} else {
		err = copyText(opts)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "clip:", err)
		os.Exit(1)
	}
}

func copyText(opts tvinput.Options) error {
	text := strings.Join(flag.Args(), " ")
	if flag.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		text = string(data)
	}
	term, err := tvinput.OpenTerminal(opts)
	if err != nil {
		return err
	}
	defer term.Close()
	return term.SetClipboardText(text)
}

func paste(opts tvinput.Options, wait time.Duration) error {
	term, err := tvinput.OpenTerminal(opts)
	if err != nil {
		return err
	}
	mux, err := tvinput.NewMultiplexer()
	if err != nil {
		term.Close()
		return err
	}
	defer mux.Close()
	mux.AddSource(term)

	deadline := time.Now().Add(wait)
	var (
		ev        tvinput.Event
		text      string
		requested bool
		received  bool
	)
	for !received && time.Now().Before(deadline) {
		if err := mux.WaitForEvents(time.Until(deadline)); err != nil {
			return err
		}
		for mux.GetEvent(&ev) {
			// keys typed while waiting are dropped
		}
		st := term.State()
		if !requested && st.GotResponse {
			if !st.HasOSC52 {
				return errors.New("the terminal does not report OSC 52 support")
			}
			requested = term.RequestClipboardText(func(s string) {
				text = s
				received = true
			})
		}
	}
	if !received {
		return errors.New("no clipboard reply from the terminal")
	}
	fmt.Print(text)
	return nil
}
