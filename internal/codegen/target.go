package codegen

import (
	"github.com/Masterminds/semver/v3"

	"github.com/nativets-lang/nativets/internal/errors"
)

// SupportedLLVM is the range of LLVM releases whose textual IR the generator
// emits. Pointers are typed, so releases after the switch to opaque pointers
// are excluded.
const SupportedLLVM = ">= 7.0.0, < 17.0.0"

// CheckTarget validates that the configured LLVM version can consume the
// emitted IR.
func CheckTarget(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.InvalidConfig("llvm_version", err.Error())
	}
	c, err := semver.NewConstraint(SupportedLLVM)
	if err != nil {
		return errors.Internal("bad LLVM constraint %q: %v", SupportedLLVM, err)
	}
	if !c.Check(v) {
		return errors.UnsupportedTarget(v.String(), SupportedLLVM)
	}
	return nil
}
