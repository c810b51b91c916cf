package cpuid

import (
	"sync"

	"github.com/go-delve/tdep/pkg/proc/amd64util"
)

var (
	xstateMaxSize         int
	loadXstateMaxSizeOnce sync.Once

	hostXCR0         amd64util.XstateFeatures
	loadHostXCR0Once sync.Once
)

func cpuid(axIn, cxIn uint32) (axOut, bxOut, cxOut, dxOut uint32)

func xgetbv(index uint32) (eax, edx uint32)

// osxsave reports whether the processor supports XSAVE and the operating
// system enabled it (Vol. 2A, Table 3-10, OSXSAVE bit).
func osxsave() bool {
	_, _, cx, _ := cpuid(0x01, 0x00)
	return cx&(1<<27) != 0
}

// HostXCR0 returns the XSAVE feature mask enabled by the kernel on the
// current machine. Processes traced on this machine see the same mask.
func HostXCR0() amd64util.XstateFeatures {
	loadHostXCR0Once.Do(func() {
		if !osxsave() {
			// XSAVE not supported by this processor, FXSAVE still saves
			// the x87 and SSE state.
			hostXCR0 = amd64util.XstateLegacy
			return
		}
		lo, hi := xgetbv(0)
		hostXCR0 = amd64util.XstateFeatures(uint64(hi)<<32 | uint64(lo))
	})
	return hostXCR0
}

// AMD64XstateMaxSize returns the maximum size of the xstate area.
func AMD64XstateMaxSize() int {
	loadXstateMaxSizeOnce.Do(func() {
		// See Intel 64 and IA-32 Architecture Software Developer's Manual, Vol. 1
		// chapter 13.2 and Vol. 2A CPUID instruction for a description of all the
		// magic constants.
		if !osxsave() {
			xstateMaxSize = amd64util.XstateMaxKnownSize
			return
		}

		_, bx, _, _ := cpuid(0x0d, 0x00) // processor extended state enumeration main leaf
		xstateMaxSize = int(bx)
	})
	return xstateMaxSize
}
