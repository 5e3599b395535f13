package kernel

import "testing"

func TestKernelError(t *testing.T) {
	err := &Error{
		Module:  "rt0",
		Message: "kernel entry routine returned",
	}

	if err.Error() != err.Message {
		t.Fatalf("expected err.Error() to return %q; got %q", err.Message, err.Error())
	}
}
