//go:build windows

package main

import "github.com/xyproto/tvinput"

func addSources(mux *tvinput.Multiplexer, opts tvinput.Options) error {
	console, err := tvinput.OpenConsole(opts)
	if err != nil {
		return err
	}
	mux.AddSource(console)
	return nil
}
