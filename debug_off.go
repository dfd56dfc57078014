//go:build !tvinputdebug

package tvinput

const debugChecks = false
