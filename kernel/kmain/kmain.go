package kmain

import (
	"github.com/Working-From-Home/TacOS/kernel"
	"github.com/Working-From-Home/TacOS/kernel/kfmt"
	"github.com/Working-From-Home/TacOS/kernel/multiboot"
)

var errKmainReturned = &kernel.Error{Module: "kmain", Message: "nothing left to run"}

// Kmain is the kernel entry routine the boot trampoline hands control to
// once the uninitialized data region is zeroed and the boot stack is in
// place. It receives the boot information pointer exactly as the loader
// supplied it.
//
// Kmain is not expected to return. If it does, the trampoline parks the
// processor; the explicit panic below makes sure the same thing happens
// with a diagnostic when the code after the hand-off runs out.
//
//go:noinline
func Kmain(bootInfo uintptr) {
	multiboot.SetInfoPtr(bootInfo)

	kfmt.Printf("TacOS starting\n")
	if name := multiboot.LoaderName(); name != nil {
		kfmt.Printf("loaded by: %s\n", name)
	}
	if cmdline := multiboot.Cmdline(); cmdline != nil {
		kfmt.Printf("cmdline: %s\n", cmdline)
	}

	var available, reserved uint64
	multiboot.VisitMemRegions(func(region *multiboot.MemoryMapEntry) bool {
		kfmt.Printf("mem: 0x%16x + 0x%16x %s\n", region.PhysAddress, region.Length, region.Type.String())

		if region.Type == multiboot.MemAvailable {
			available += region.Length
		} else {
			reserved += region.Length
		}
		return true
	})
	kfmt.Printf("mem: %d KiB available, %d KiB reserved\n", available/1024, reserved/1024)

	// The memory manager, scheduler and drivers hook in here. Until they
	// exist the only correct thing left to do is to stop.
	kfmt.Panic(errKmainReturned)
}
