package rt0

type outcomeKind uint8

const (
	outcomeProceed outcomeKind = iota
	outcomeFatal
)

// Outcome is the tagged result of the pre-kernel boot steps. A Proceed
// outcome carries the boot information pointer and maps to the hand-off
// call; a Fatal outcome maps to the halt guard. Production hardware has no
// use for the distinction (both paths are taken immediately), but the tag
// makes the never-returns contract observable from a hosted harness.
type Outcome struct {
	kind     outcomeKind
	bootInfo uintptr
}

// Proceed returns an outcome that transfers control to the kernel entry
// routine, forwarding bootInfo.
func Proceed(bootInfo uintptr) Outcome {
	return Outcome{kind: outcomeProceed, bootInfo: bootInfo}
}

// Fatal returns an outcome that routes to the halt guard.
func Fatal() Outcome {
	return Outcome{kind: outcomeFatal}
}

// IsFatal returns true if the outcome routes to the halt guard.
func (o Outcome) IsFatal() bool {
	return o.kind == outcomeFatal
}

// BootInfo returns the boot information pointer carried by a Proceed
// outcome. It is zero for Fatal outcomes and for legacy boots that
// requested no loader services.
func (o Outcome) BootInfo() uintptr {
	return o.bootInfo
}
