// Package multiboot provides the two halves of the loader protocol the
// kernel speaks: the boot descriptor the loader reads out of the image
// before starting it (header.go) and the boot information structure the
// loader hands back through the entry registers, parsed here.
package multiboot

import "unsafe"

// infoFlag describes which parts of the boot information structure the
// loader actually filled in.
type infoFlag uint32

// nolint
const (
	infoFlagMemSizes infoFlag = 1 << iota
	infoFlagBootDevice
	infoFlagCmdline
	infoFlagModules
	infoFlagSymsAout
	infoFlagSymsElf
	infoFlagMemoryMap
	infoFlagDrives
	infoFlagConfigTable
	infoFlagLoaderName
)

// info mirrors the fixed portion of the boot information structure. All
// fields are 32-bit so the overlay carries no compiler padding.
type info struct {
	flags          infoFlag
	memLower       uint32
	memUpper       uint32
	bootDevice     uint32
	cmdline        uint32
	modsCount      uint32
	modsAddr       uint32
	syms           [4]uint32
	mmapLength     uint32
	mmapAddr       uint32
	drivesLength   uint32
	drivesAddr     uint32
	configTable    uint32
	bootLoaderName uint32
}

// mmapEntry mirrors one raw memory map record. The 64-bit base and length
// values sit at 4-byte offsets in the wire format, so they are kept as
// 32-bit halves to avoid compiler padding in the overlay.
type mmapEntry struct {
	size      uint32
	baseLow   uint32
	baseHigh  uint32
	lenLow    uint32
	lenHigh   uint32
	entryType uint32
}

// MemoryEntryType defines the type of a MemoryMapEntry.
type MemoryEntryType uint32

const (
	// MemAvailable indicates that the memory region is available for use.
	MemAvailable MemoryEntryType = iota + 1

	// MemReserved indicates that the memory region is not available for use.
	MemReserved

	// MemAcpiReclaimable indicates a memory region that holds ACPI info
	// that can be reused by the OS.
	MemAcpiReclaimable

	// MemNvs indicates memory that must be preserved when hibernating.
	MemNvs

	// Any value >= memUnknown will be mapped to MemReserved.
	memUnknown
)

// String returns a human-readable description for this entry type. The
// returned values are static strings so calling this does not allocate.
func (t MemoryEntryType) String() string {
	switch t {
	case MemAvailable:
		return "available"
	case MemAcpiReclaimable:
		return "acpi"
	case MemNvs:
		return "nvs"
	default:
		return "reserved"
	}
}

// MemoryMapEntry describes a physical memory region reported by the loader.
type MemoryMapEntry struct {
	// The physical address for this memory region.
	PhysAddress uint64

	// The length of the memory region.
	Length uint64

	// The type of this entry.
	Type MemoryEntryType
}

// MemRegionVisitor defines a visitor function that gets invoked by
// VisitMemRegions for each memory region provided by the boot loader. The
// visitor must return true to continue or false to abort the scan.
type MemRegionVisitor func(entry *MemoryMapEntry) bool

var (
	infoData uintptr

	// mapPhys translates a physical address found inside the boot
	// information structure into a pointer the kernel can dereference.
	// With paging not yet enabled the mapping is the identity; tests
	// overlay loader data on heap buffers and substitute their own
	// translation.
	mapPhys = func(addr uint32) uintptr { return uintptr(addr) }
)

// SetInfoPtr records the address of the boot information structure handed
// over by the loader. This function must be invoked before any other
// function exported by this package.
func SetInfoPtr(ptr uintptr) {
	infoData = ptr
}

// getInfo overlays the info struct on the recorded pointer. It returns nil
// if no pointer has been recorded, which is the case for images whose
// descriptor requested no loader services.
func getInfo() *info {
	if infoData == 0 {
		return nil
	}

	return (*info)(unsafe.Pointer(infoData))
}

// VisitMemRegions invokes the supplied visitor for each memory region
// described by the boot information structure. It is a no-op if the loader
// did not supply a memory map.
func VisitMemRegions(visitor MemRegionVisitor) {
	data := getInfo()
	if data == nil || data.flags&infoFlagMemoryMap == 0 {
		return
	}

	curPtr := mapPhys(data.mmapAddr)
	endPtr := curPtr + uintptr(data.mmapLength)

	for curPtr < endPtr {
		raw := (*mmapEntry)(unsafe.Pointer(curPtr))

		entry := MemoryMapEntry{
			PhysAddress: uint64(raw.baseLow) | uint64(raw.baseHigh)<<32,
			Length:      uint64(raw.lenLow) | uint64(raw.lenHigh)<<32,
			Type:        MemoryEntryType(raw.entryType),
		}

		// Mark unknown entry types as reserved
		if entry.Type == 0 || entry.Type >= memUnknown {
			entry.Type = MemReserved
		}

		if !visitor(&entry) {
			return
		}

		// The size field counts the bytes that follow it, so the
		// stride to the next record includes the field itself.
		curPtr += uintptr(raw.size) + 4
	}
}

// LoaderName returns the NUL-terminated name the boot loader recorded about
// itself, or nil if the loader did not provide one. The returned slice
// aliases loader-owned memory and performs no allocation.
func LoaderName() []byte {
	data := getInfo()
	if data == nil || data.flags&infoFlagLoaderName == 0 || data.bootLoaderName == 0 {
		return nil
	}

	return cString(mapPhys(data.bootLoaderName))
}

// Cmdline returns the kernel command line recorded by the loader, or nil if
// none was passed.
func Cmdline() []byte {
	data := getInfo()
	if data == nil || data.flags&infoFlagCmdline == 0 || data.cmdline == 0 {
		return nil
	}

	return cString(mapPhys(data.cmdline))
}

// cString overlays a byte slice on the NUL-terminated string at addr.
func cString(addr uintptr) []byte {
	var length uintptr
	for *(*byte)(unsafe.Pointer(addr + length)) != 0 {
		length++
	}

	if length == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)
}
