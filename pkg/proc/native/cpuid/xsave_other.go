//go:build !amd64

package cpuid

import "github.com/go-delve/tdep/pkg/proc/amd64util"

// HostXCR0 returns 0, the host is not an amd64 machine.
func HostXCR0() amd64util.XstateFeatures {
	return 0
}

// AMD64XstateMaxSize returns the size of an XSAVE area holding every
// known component.
func AMD64XstateMaxSize() int {
	return amd64util.XstateMaxKnownSize
}
