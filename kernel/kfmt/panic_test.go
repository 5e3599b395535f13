package kfmt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Working-From-Home/TacOS/kernel"
	"github.com/Working-From-Home/TacOS/kernel/cpu"
)

func TestPanic(t *testing.T) {
	defer func() {
		cpuHaltFn = cpu.Halt
		outputSink = nil
		earlyPrintBuffer = ringBuffer{}
		cpu.EnableInterrupts()
	}()

	var haltCalled bool
	cpuHaltFn = func() {
		haltCalled = true
	}

	t.Run("with kernel error", func(t *testing.T) {
		haltCalled = false
		var buf bytes.Buffer
		SetOutputSink(&buf)
		cpu.EnableInterrupts()

		Panic(&kernel.Error{Module: "rt0", Message: "kernel entry routine returned"})

		exp := "\n!!! KERNEL PANIC !!!\n[rt0] unrecoverable error: kernel entry routine returned\nSystem halted.\n"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !haltCalled {
			t.Fatal("expected Panic to invoke the halt primitive")
		}

		if cpu.InterruptsEnabled() {
			t.Fatal("expected Panic to disable interrupts before halting")
		}
	})

	t.Run("with plain error", func(t *testing.T) {
		haltCalled = false
		var buf bytes.Buffer
		SetOutputSink(&buf)

		Panic(errors.New("something broke"))

		exp := "\n!!! KERNEL PANIC !!!\n[rt] unrecoverable error: something broke\nSystem halted.\n"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !haltCalled {
			t.Fatal("expected Panic to invoke the halt primitive")
		}
	})

	t.Run("without error", func(t *testing.T) {
		haltCalled = false
		var buf bytes.Buffer
		SetOutputSink(&buf)

		Panic(nil)

		exp := "\n!!! KERNEL PANIC !!!\nSystem halted.\n"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !haltCalled {
			t.Fatal("expected Panic to invoke the halt primitive")
		}
	})
}
