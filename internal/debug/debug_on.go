//go:build debug

// Package debug provides zero-cost-when-disabled tracing for the DTD
// scanner's recursive-descent calls. Build with -tags debug to enable it.
package debug

import (
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
)

// Enabled reports whether the debug build tag is active.
const Enabled = true

var logger = log.New(os.Stdout, "|DTD DEBUG| ", 0)

// Printf prints a debug trace line. Only available if compiled with "debug" tag.
func Printf(f string, args ...interface{}) {
	logger.Printf(f, args...)
}

// Dump pretty-prints values (e.g. a Token or scanner state) for debugging.
func Dump(v ...interface{}) {
	spew.Dump(v...)
}
