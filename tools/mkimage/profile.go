package main

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/Working-From-Home/TacOS/kernel/multiboot"
)

// profile describes how a kernel image gets packaged for a particular boot
// path. Two shapes are in use: "multiboot" images are linked as relocatable
// objects and located by the loader's header scan, while "flat" images are
// linked at a fixed load address for direct legacy boot. The descriptor is
// identical in both; only linkage and placement rules differ.
type profile struct {
	Variant          string `toml:"variant"`
	PageAlignModules bool   `toml:"page_align_modules"`
	MemoryMap        bool   `toml:"memory_map"`
	LoadAddr         uint32 `toml:"load_addr"`
}

func loadProfile(path string) (*profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p profile
	if err = toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	switch p.Variant {
	case "multiboot":
	case "flat":
		if p.LoadAddr == 0 {
			return nil, fmt.Errorf("%s: flat images require a load_addr", path)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported variant %q", path, p.Variant)
	}

	return &p, nil
}

// headerFlags maps the requested loader services to descriptor flag bits.
func (p *profile) headerFlags() multiboot.HeaderFlag {
	var flags multiboot.HeaderFlag
	if p.PageAlignModules {
		flags |= multiboot.FlagPageAlignModules
	}
	if p.MemoryMap {
		flags |= multiboot.FlagMemoryInfo
	}

	return flags
}
