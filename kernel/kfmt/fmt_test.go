package kfmt

import (
	"bytes"
	"testing"
)

func TestFprintf(t *testing.T) {
	specs := []struct {
		format string
		args   []interface{}
		exp    string
	}{
		{"no verbs", nil, "no verbs"},
		{"literal %% character", nil, "literal % character"},
		{"%s", []interface{}{"foo"}, "foo"},
		{"%s", []interface{}{[]byte("bar")}, "bar"},
		{"[%6s]", []interface{}{"foo"}, "[   foo]"},
		{"%d", []interface{}{42}, "42"},
		{"%d", []interface{}{-123}, "-123"},
		{"%5d", []interface{}{42}, "   42"},
		{"%d", []interface{}{uint64(0)}, "0"},
		{"%x", []interface{}{uint32(0x1badb002)}, "1badb002"},
		{"%8x", []interface{}{255}, "000000ff"},
		{"%o", []interface{}{8}, "10"},
		{"%t|%t", []interface{}{true, false}, "true|false"},
		{"%d KiB free", []interface{}{uintptr(16)}, "16 KiB free"},
		{"%d", nil, "(MISSING)"},
		{"%t", []interface{}{"not a bool"}, "%!(WRONGTYPE)"},
		{"%d", []interface{}{"not an int"}, "%!(WRONGTYPE)"},
		{"%s", []interface{}{42}, "%!(WRONGTYPE)"},
		{"%q", nil, "%!(NOVERB)"},
		{"%", nil, "%!(NOVERB)"},
		{"", []interface{}{42}, "%!(EXTRA)"},
		{"magic: 0x%x flags: 0x%x", []interface{}{uint32(0x2badb002), uint32(3)}, "magic: 0x2badb002 flags: 0x3"},
	}

	for specIndex, spec := range specs {
		var buf bytes.Buffer
		Fprintf(&buf, spec.format, spec.args...)

		if got := buf.String(); got != spec.exp {
			t.Errorf("[spec %d] expected Fprintf(%q) to produce %q; got %q", specIndex, spec.format, spec.exp, got)
		}
	}
}

func TestPrintfBeforeAndAfterSinkRegistration(t *testing.T) {
	defer func() {
		outputSink = nil
		earlyPrintBuffer = ringBuffer{}
	}()
	outputSink = nil
	earlyPrintBuffer = ringBuffer{}

	// Output generated before a sink exists must be buffered.
	Printf("booting, stack at 0x%x\n", uintptr(0x110000))

	var buf bytes.Buffer
	SetOutputSink(&buf)

	if exp := "booting, stack at 0x110000\n"; buf.String() != exp {
		t.Fatalf("expected SetOutputSink to replay the early buffer %q; got %q", exp, buf.String())
	}

	// Output generated after a sink exists must bypass the buffer.
	Printf("mem map ok")

	if exp := "booting, stack at 0x110000\nmem map ok"; buf.String() != exp {
		t.Fatalf("expected %q; got %q", exp, buf.String())
	}
}
