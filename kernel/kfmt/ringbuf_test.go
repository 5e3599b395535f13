package kfmt

import (
	"io"
	"testing"
)

func TestRingBufferReadWrite(t *testing.T) {
	var rb ringBuffer

	if n, err := rb.Write([]byte("hello boot")); n != 10 || err != nil {
		t.Fatalf("expected Write to report (10, nil); got (%d, %v)", n, err)
	}

	p := make([]byte, 4)
	if n, err := rb.Read(p); n != 4 || err != nil || string(p[:n]) != "hell" {
		t.Fatalf("unexpected first read: (%d, %v, %q)", n, err, string(p[:n]))
	}

	p = make([]byte, 16)
	if n, err := rb.Read(p); n != 6 || err != nil || string(p[:n]) != "o boot" {
		t.Fatalf("unexpected second read: (%d, %v, %q)", n, err, string(p[:n]))
	}

	if n, err := rb.Read(p); n != 0 || err != io.EOF {
		t.Fatalf("expected drained buffer to report io.EOF; got (%d, %v)", n, err)
	}
}

func TestRingBufferOverwritesOldestData(t *testing.T) {
	var rb ringBuffer

	for i := 0; i < earlyBufferSize; i++ {
		rb.Write([]byte{'x'})
	}
	rb.Write([]byte("tail"))

	drained := make([]byte, 0, earlyBufferSize)
	p := make([]byte, 100)
	for {
		n, err := rb.Read(p)
		drained = append(drained, p[:n]...)
		if err == io.EOF {
			break
		}
	}

	if len(drained) != earlyBufferSize {
		t.Fatalf("expected a full buffer to drain %d bytes; got %d", earlyBufferSize, len(drained))
	}

	if got := string(drained[len(drained)-4:]); got != "tail" {
		t.Fatalf("expected the most recent write to survive the wrap; got %q", got)
	}

	if got := drained[0]; got != 'x' {
		t.Fatalf("expected the oldest surviving byte to be 'x'; got %q", got)
	}
}
