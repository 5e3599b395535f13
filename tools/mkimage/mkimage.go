// mkimage stamps the boot descriptor into a kernel image and verifies that
// a scanning loader will locate and accept it. It exists so that descriptor
// mistakes surface at build time instead of as a silently ignored image.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/Working-From-Home/TacOS/kernel/multiboot"
)

// descriptorSize is the wire size of the magic/flags/checksum record.
const descriptorSize = 12

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[mkimage] error: %s\n", err.Error())
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: mkimage [flags] stamp|verify image\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	var (
		profilePath = flag.String("profile", "boot.toml", "boot profile describing the image variant and requested loader services")
		offset      = flag.Uint("offset", 0, "image offset where the descriptor is stamped")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
	}

	imagePath := flag.Arg(1)

	switch cmd := flag.Arg(0); cmd {
	case "stamp":
		p, err := loadProfile(*profilePath)
		if err != nil {
			exit(err)
		}

		if err = stampImage(imagePath, p, uint32(*offset)); err != nil {
			exit(err)
		}

		if p.Variant == "flat" {
			fmt.Printf("%s: stamped flat-boot descriptor (flags 0x%08x, load address 0x%08x)\n", imagePath, uint32(p.headerFlags()), p.LoadAddr)
		} else {
			fmt.Printf("%s: stamped descriptor (flags 0x%08x) at offset %d\n", imagePath, uint32(p.headerFlags()), *offset)
		}
	case "verify":
		h, off, err := scanImage(imagePath)
		if err != nil {
			exit(err)
		}

		fmt.Printf("%s: descriptor at offset %d: magic 0x%08x flags 0x%08x checksum 0x%08x\n", imagePath, off, h.Magic, uint32(h.Flags), h.Checksum)
		if h.WantsMemoryMap() {
			fmt.Println("  requests: loader memory map")
		}
		if h.Flags&multiboot.FlagPageAlignModules != 0 {
			fmt.Println("  requests: page-aligned modules")
		}
	default:
		exit(fmt.Errorf("unknown command %q", cmd))
	}
}

// stampImage writes the descriptor built from p into the image at the given
// offset, enforcing the placement rules a scanning loader relies on.
func stampImage(path string, p *profile, offset uint32) error {
	if p.Variant == "flat" && offset != 0 {
		return fmt.Errorf("flat images carry the descriptor at offset 0; got %d", offset)
	}

	if offset%multiboot.HeaderAlign != 0 {
		return fmt.Errorf("offset %d is not %d-byte aligned", offset, multiboot.HeaderAlign)
	}

	if offset+descriptorSize > multiboot.HeaderScanWindow {
		return fmt.Errorf("offset %d puts the descriptor outside the %d byte loader scan window", offset, multiboot.HeaderScanWindow)
	}

	img, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if int(offset)+descriptorSize > len(img) {
		return fmt.Errorf("%s: image is only %d bytes; cannot stamp a descriptor at offset %d", path, len(img), offset)
	}

	h := multiboot.NewHeader(p.headerFlags())
	binary.LittleEndian.PutUint32(img[offset:], h.Magic)
	binary.LittleEndian.PutUint32(img[offset+4:], uint32(h.Flags))
	binary.LittleEndian.PutUint32(img[offset+8:], h.Checksum)

	return os.WriteFile(path, img, 0644)
}

// scanImage locates a valid descriptor the way a loader does: a linear scan
// of the image head at the protocol alignment, accepting the first record
// whose fields satisfy the checksum invariant.
func scanImage(path string) (multiboot.Header, int, error) {
	img, err := os.ReadFile(path)
	if err != nil {
		return multiboot.Header{}, 0, err
	}

	window := len(img)
	if window > multiboot.HeaderScanWindow {
		window = multiboot.HeaderScanWindow
	}

	for off := 0; off+descriptorSize <= window; off += multiboot.HeaderAlign {
		h := multiboot.Header{
			Magic:    binary.LittleEndian.Uint32(img[off:]),
			Flags:    multiboot.HeaderFlag(binary.LittleEndian.Uint32(img[off+4:])),
			Checksum: binary.LittleEndian.Uint32(img[off+8:]),
		}

		if h.Valid() {
			return h, off, nil
		}
	}

	return multiboot.Header{}, 0, fmt.Errorf("%s: no valid boot descriptor within the first %d bytes", path, window)
}
