package layout

import (
	"fmt"
	"strings"
)

var (
	arch64 = map[string]bool{
		"x86_64": true, "amd64": true, "aarch64": true, "aarch64_be": true,
		"arm64": true, "arm64e": true, "riscv64": true, "ppc64": true,
		"ppc64le": true, "powerpc64": true, "powerpc64le": true, "s390x": true,
		"mips64": true, "mips64el": true, "sparcv9": true, "loongarch64": true,
		"wasm64": true,
	}
	arch32 = map[string]bool{
		"arm": true, "armeb": true, "thumb": true, "thumbeb": true,
		"riscv32": true, "wasm32": true, "mips": true, "mipsel": true,
		"ppc": true, "powerpc": true, "sparc": true, "loongarch32": true,
	}
	archX86 = map[string]bool{
		"i386": true, "i486": true, "i586": true, "i686": true, "x86": true,
	}
)

// ForTriple returns a data layout for the architecture of an LLVM target
// triple. The empty triple selects the 64-bit defaults of NewDataLayout.
func ForTriple(triple string) (*DataLayout, error) {
	calc := NewLayoutCalculator()
	if triple == "" {
		return NewDataLayoutFor(calc), nil
	}

	arch, _, _ := strings.Cut(triple, "-")
	switch {
	case arch64[arch]:
	case arch32[arch], strings.HasPrefix(arch, "armv"), strings.HasPrefix(arch, "thumbv"):
		calc.TargetPointerSize = 4
	case archX86[arch]:
		// 32-bit x86 aligns double to 4 bytes except on Windows.
		calc.TargetPointerSize = 4
		if !strings.Contains(triple, "windows") {
			calc.DoubleAlignment = 4
		}
	default:
		return nil, fmt.Errorf("unsupported target architecture %q", arch)
	}
	return NewDataLayoutFor(calc), nil
}
