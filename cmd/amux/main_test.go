//go:build !windows

package main

import (
	"os"
	"testing"

	"github.com/gridmux/gridmux/internal/messages"
)

func TestWriteFrame_SkipsNilAndSkipMarkers(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	writeFrame(nil)
	writeFrame(&messages.Render{Skip: true, Frame: "should not appear"})
	writeFrame(&messages.Render{Frame: "hello"})

	w.Close()
	buf := make([]byte, 64)
	n, _ := r.Read(buf)
	if got := string(buf[:n]); got != "hello" {
		t.Fatalf("writeFrame output = %q, want %q", got, "hello")
	}
}

func TestHome_FallsBackWhenUnset(t *testing.T) {
	t.Setenv("HOME", "")
	if h := home(); h != "/" {
		t.Fatalf("home() = %q, want %q", h, "/")
	}
}
