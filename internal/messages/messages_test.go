package messages

import (
	"errors"
	"testing"
)

func TestServerError_ErrorUnwrapsUnderlyingMessage(t *testing.T) {
	e := ServerError{Err: errors.New("pty read failed"), Trace: "goroutine 1 [running]:"}
	if got := e.Error(); got != "pty read failed" {
		t.Fatalf("ServerError.Error() = %q, want %q", got, "pty read failed")
	}
}
