package kfmt

import (
	"github.com/Working-From-Home/TacOS/kernel"
	"github.com/Working-From-Home/TacOS/kernel/cpu"
)

var (
	// cpuHaltFn is mocked by tests and is automatically inlined by the
	// compiler.
	cpuHaltFn = cpu.Halt

	errRuntimePanic = &kernel.Error{Module: "rt", Message: "unknown cause"}
)

// Panic is the designated sink for unrecoverable conditions: it disables
// interrupts, prints the supplied error (if not nil) and permanently parks
// the processor. Calls to Panic never return.
func Panic(e interface{}) {
	cpu.DisableInterrupts()

	var err *kernel.Error

	switch t := e.(type) {
	case *kernel.Error:
		err = t
	case string:
		errRuntimePanic.Message = t
		err = errRuntimePanic
	case error:
		errRuntimePanic.Message = t.Error()
		err = errRuntimePanic
	}

	Printf("\n!!! KERNEL PANIC !!!\n")
	if err != nil {
		Printf("[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	Printf("System halted.\n")

	cpuHaltFn()
}
