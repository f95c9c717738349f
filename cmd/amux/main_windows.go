//go:build windows

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "gridmux is not supported on Windows; it requires a POSIX PTY.")
	os.Exit(1)
}
