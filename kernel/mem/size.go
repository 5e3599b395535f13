package mem

// Size represents a memory block size in bytes.
type Size uint64

// Common memory block sizes.
const (
	Byte Size = 1
	Kb        = 1024 * Byte
	Mb        = 1024 * Kb
)

// BootStackSize is the size of the stack region carved out of the tail of
// the uninitialized data region for the kernel boot stack.
const BootStackSize = 16 * Kb
