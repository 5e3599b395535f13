package mem

// stackAlign is the alignment the ABI requires of the stack pointer at a
// call boundary.
const stackAlign = 16

// Region describes a contiguous byte range [Start, End) whose bounds are
// fixed at link time. The uninitialized data region (the .bss range plus the
// boot stack at its tail) is the only Region the boot sequence owns; it owns
// it exclusively until the hand-off call, after which the kernel runtime
// takes over.
//
// In the kernel image the bounds come from linker-provided symbols. Hosted
// harnesses overlay a Region on a buffer they allocate themselves.
type Region struct {
	Start, End uintptr
}

// Size returns the region length in bytes.
func (r Region) Size() uintptr {
	return r.End - r.Start
}

// Contains returns true if addr falls within [Start, End).
func (r Region) Contains(addr uintptr) bool {
	return addr >= r.Start && addr < r.End
}

// Zero fills the region with zeroes. Globals start out at whatever the
// loader left in memory; nothing may read or write a byte of the region
// before Zero has run. Zeroing an empty region is a no-op and touches no
// byte outside of it.
//
// The caller must ensure Start <= End. Inverted bounds are a link-layout
// bug and are not detected here.
func (r Region) Zero() {
	Memset(r.Start, 0, r.End-r.Start)
}

// StackRegion carves the size-byte sub-region at the tail of r that serves
// as the boot stack.
func (r Region) StackRegion(size Size) Region {
	return Region{Start: r.End - uintptr(size), End: r.End}
}

// StackTop returns the initial stack pointer for a stack occupying r.
// Stacks grow downward towards Start, so the pointer begins at End rounded
// down to the required ABI alignment. There is no guard page below Start;
// overflowing the stack silently corrupts whatever the region abuts.
func (r Region) StackTop() uintptr {
	return r.End &^ (stackAlign - 1)
}
