// Package rt0 implements the hand-off sequence that runs the instant the
// boot loader jumps to the kernel entry symbol: zero the uninitialized data
// region, establish the boot stack, transfer control to the kernel entry
// routine and, should control ever come back, park the processor for good.
//
// The sequence is strictly linear and runs exactly once, in a single
// execution context, before any runtime service exists. Nothing here may
// allocate, and nothing here recovers: every failure mode ends in the halt
// guard.
package rt0

import (
	"github.com/Working-From-Home/TacOS/kernel/cpu"
	"github.com/Working-From-Home/TacOS/kernel/mem"
	"github.com/Working-From-Home/TacOS/kernel/multiboot"
)

// State identifies a step of the boot sequence.
type State uint8

const (
	// StateReset is the state at the moment the loader honors the
	// register contract and jumps to the entry symbol.
	StateReset State = iota

	// StateZeroBSS covers clearing the uninitialized data region.
	StateZeroBSS

	// StateInitStack covers establishing the boot stack pointer.
	StateInitStack

	// StateInvokeKernel covers the hand-off call.
	StateInvokeKernel

	// StateHalted is terminal. No transition leaves it.
	StateHalted
)

// KernelEntry is the signature of the kernel entry routine for images whose
// descriptor requests loader services: it receives the boot information
// pointer exactly as the loader supplied it.
type KernelEntry func(bootInfo uintptr)

// LegacyKernelEntry is the older entry signature, used when the descriptor
// requests nothing from the loader and no environment pointer is defined.
type LegacyKernelEntry func()

// cpuHaltFn is mocked by tests and is automatically inlined by the compiler.
var cpuHaltFn = cpu.Halt

// Trampoline drives the hand-off from the boot loader to the kernel. The
// loader validates the boot descriptor, honors the register contract and
// jumps; everything after that jump is this type's job.
//
// The loader's response magic is deliberately forwarded without validation
// and the interrupt state inherited from the loader is left untouched until
// the halt guard runs: that is how all deployed variants behave, and this
// layer trusts the loader that just finished loading it.
type Trampoline struct {
	// Descriptor is the boot descriptor compiled into the image head.
	// Its flags select which entry signature the hand-off call uses.
	Descriptor multiboot.Header

	// Regs holds the loader-populated entry registers. The zeroing and
	// stack steps must leave these values intact; they live here, never
	// in the not-yet-zeroed region.
	Regs RegisterSet

	// BSS is the uninitialized data region. Until the hand-off call it
	// is owned exclusively by this sequence; ownership passes to the
	// kernel runtime with the call, by convention rather than handshake.
	BSS mem.Region

	// Stack is the boot stack region. When left as the zero value it is
	// carved out of the tail of BSS.
	Stack mem.Region

	// Entry and LegacyEntry are the kernel entry routines for the
	// current and the legacy contract. Only the one selected by the
	// descriptor flags is required. Mismatching signature and descriptor
	// is a build-time contract violation, not a runtime-checked one.
	Entry       KernelEntry
	LegacyEntry LegacyKernelEntry

	state State
	sp    uintptr
}

// Boot runs the boot sequence to completion. On hardware it never returns:
// either the kernel entry routine takes over for good, or the halt guard
// parks the processor. It returns only in hosted harnesses that stub out
// the halt primitive.
func (t *Trampoline) Boot() {
	if out := t.run(); !out.IsFatal() {
		t.invoke(out.BootInfo())
		// The kernel entry routine returned; there is nothing left to
		// run and nowhere to report it. Fall through to the guard.
	}
	t.halt()
}

// run executes the pre-kernel steps in order and reports the hand-off
// decision.
func (t *Trampoline) run() Outcome {
	// Nothing may read a global before this completes; "globals start at
	// zero" is established here and nowhere else.
	t.state = StateZeroBSS
	t.BSS.Zero()

	t.state = StateInitStack
	if t.Stack == (mem.Region{}) {
		t.Stack = t.BSS.StackRegion(mem.BootStackSize)
	}
	t.sp = t.Stack.StackTop()

	t.state = StateInvokeKernel
	if t.Descriptor.WantsMemoryMap() {
		if t.Entry == nil {
			return Fatal()
		}
		return Proceed(t.Regs.BootInfo)
	}

	if t.LegacyEntry == nil {
		return Fatal()
	}
	return Proceed(0)
}

// invoke performs the hand-off call using the signature selected by the
// boot descriptor.
func (t *Trampoline) invoke(bootInfo uintptr) {
	if t.Descriptor.WantsMemoryMap() {
		t.Entry(bootInfo)
		return
	}

	t.LegacyEntry()
}

// halt enters the terminal state: interrupts off, processor parked forever.
func (t *Trampoline) halt() {
	t.state = StateHalted
	cpu.DisableInterrupts()
	cpuHaltFn()
}

// State returns the step the boot sequence is currently in.
func (t *Trampoline) State() State {
	return t.state
}

// StackPointer returns the stack pointer established for the kernel, or
// zero if stack establishment has not run yet.
func (t *Trampoline) StackPointer() uintptr {
	return t.sp
}
