package multiboot

const (
	// BootMagic is the value a kernel image embeds in its boot descriptor
	// so a scanning loader recognizes the image as bootable.
	BootMagic uint32 = 0x1badb002

	// LoaderMagic is the value a compliant loader places in the magic
	// entry register right before jumping to the kernel entry symbol. The
	// boot sequence forwards it without validating it; it trusts the
	// loader that just loaded it.
	LoaderMagic uint32 = 0x2badb002

	// HeaderAlign is the required alignment of the boot descriptor within
	// the image.
	HeaderAlign = 4

	// HeaderScanWindow is the number of bytes at the head of the image the
	// loader scans (at HeaderAlign steps) looking for the boot descriptor.
	HeaderScanWindow = 8192
)

// HeaderFlag describes a service the image requests from the loader via its
// boot descriptor.
type HeaderFlag uint32

const (
	// FlagPageAlignModules asks the loader to align any boot modules it
	// loads on page boundaries.
	FlagPageAlignModules HeaderFlag = 1 << 0

	// FlagMemoryInfo asks the loader to describe the physical memory map
	// through the boot information structure. Setting it also changes the
	// hand-off contract: the boot information pointer register becomes
	// meaningful and must be forwarded to the kernel entry routine.
	FlagMemoryInfo HeaderFlag = 1 << 1
)

// Header is the boot descriptor: the read-only record compiled into the head
// of the kernel image that a loader reads exactly once to decide whether the
// image is a valid boot target and which services it requests. It is never
// touched again after the loader accepts the image.
type Header struct {
	Magic    uint32
	Flags    HeaderFlag
	Checksum uint32
}

// NewHeader returns a descriptor requesting the supplied loader services.
// The checksum is picked so that Magic + Flags + Checksum wraps around to
// zero, which is the invariant loaders verify before accepting the image.
func NewHeader(flags HeaderFlag) Header {
	return Header{
		Magic:    BootMagic,
		Flags:    flags,
		Checksum: -(BootMagic + uint32(flags)),
	}
}

// Valid returns true if the descriptor carries the boot magic and its three
// fields sum to zero mod 2^32. A descriptor failing this check is rejected
// by the loader and execution never reaches the kernel.
func (h Header) Valid() bool {
	return h.Magic == BootMagic && h.Magic+uint32(h.Flags)+h.Checksum == 0
}

// WantsMemoryMap returns true if the descriptor asked the loader for a
// physical memory map.
func (h Header) WantsMemoryMap() bool {
	return h.Flags&FlagMemoryInfo != 0
}
