//go:build unix

package main

import (
	"os"

	"github.com/xyproto/tvinput"
)

func addSources(mux *tvinput.Multiplexer, opts tvinput.Options) error {
	term, err := tvinput.OpenTerminal(opts)
	if err != nil {
		return err
	}
	mux.AddSource(term)
	resize, err := tvinput.NewResizeSource(int(os.Stdout.Fd()))
	if err != nil {
		return err
	}
	mux.AddSource(resize)
	return nil
}
