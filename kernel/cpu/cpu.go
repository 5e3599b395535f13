// Package cpu models the small set of processor primitives the boot sequence
// depends on: the interrupt flag and the ability to park the processor.
//
// On real hardware these map to the cli/sti/hlt instructions emitted by the
// rt0 assembly. The Go implementations below keep the interrupt flag as an
// explicit value so the hand-off sequence can be exercised by a hosted test
// harness.
package cpu

// interruptsOn tracks the processor interrupt flag. The boot loader commonly
// jumps to the kernel with interrupts disabled but the protocol does not
// guarantee it; the initial value here mirrors that uncertainty by assuming
// nothing was turned off for us.
var interruptsOn = true

// EnableInterrupts enables interrupt handling.
func EnableInterrupts() {
	interruptsOn = true
}

// DisableInterrupts disables interrupt handling.
func DisableInterrupts() {
	interruptsOn = false
}

// InterruptsEnabled returns the state of the interrupt flag.
func InterruptsEnabled() bool {
	return interruptsOn
}

// Halt stops instruction execution and parks the processor forever. There is
// no way out of this state; callers that need to observe a halt (e.g. tests)
// must stub out their reference to Halt before triggering it.
func Halt() {
	DisableInterrupts()
	for {
	}
}
