package utils

import (
	"bytes"
	"runtime/debug"
)

// Stack returns the formatted stack trace of the calling goroutine, dropping
// the first skip frames (each frame is a function line plus a file line).
func Stack(skip int) []byte {
	lines := bytes.Split(debug.Stack(), []byte("\n"))
	// first line is the goroutine header
	drop := 1 + skip*2
	if drop >= len(lines) {
		return debug.Stack()
	}
	out := append([][]byte{lines[0]}, lines[drop:]...)
	return bytes.Join(out, []byte("\n"))
}
