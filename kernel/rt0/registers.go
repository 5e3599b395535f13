package rt0

// RegisterSet describes the loader side of the hand-off contract: the values
// the boot protocol guarantees to have placed in specific registers at the
// moment control reaches the kernel entry symbol. It is consumed by the
// trampoline and by test doubles standing in for a real loader.
//
// This is version 1 of the contract, the only one in use: Magic maps to EAX
// and BootInfo maps to EBX.
type RegisterSet struct {
	// Magic is the loader response magic (multiboot.LoaderMagic when a
	// compliant loader did the jump). The boot sequence forwards it
	// without checking it; see the trust note on Trampoline.
	Magic uint32

	// BootInfo is the address of the boot information structure. Its
	// layout belongs to the loader protocol, not to this layer, which
	// treats the value as opaque and forwards it byte-for-byte. It is
	// only meaningful when the boot descriptor requested loader services.
	BootInfo uintptr
}
