package cpuid

import (
	"testing"

	"github.com/go-delve/tdep/pkg/proc/amd64util"
)

func TestHostXCR0(t *testing.T) {
	xcr0 := HostXCR0()
	if !xcr0.Has(amd64util.XstateLegacy) {
		t.Fatalf("x87/SSE state missing from %v", xcr0)
	}
	if HostXCR0() != xcr0 {
		t.Errorf("HostXCR0 not stable")
	}
	t.Logf("host XCR0 %#x (%v)", uint64(xcr0), xcr0)
}

func TestAMD64XstateMaxSize(t *testing.T) {
	n := AMD64XstateMaxSize()
	if n < 512+64 {
		t.Errorf("xstate area size %d", n)
	}
	if HostXCR0().Has(amd64util.XstateAVX) && n < amd64util.XsaveYMMHi128+256 {
		t.Errorf("AVX enabled but xstate area size is %d", n)
	}
}

func TestXgetbv(t *testing.T) {
	if !osxsave() {
		t.Skip("XSAVE not enabled")
	}
	lo, hi := xgetbv(0)
	xcr0 := uint64(hi)<<32 | uint64(lo)
	if xcr0&1 == 0 {
		t.Fatalf("XCR0 %#x: x87 bit must always be set", xcr0)
	}
	// Vol. 1, 13.3: XCR0 only enables components enumerated by
	// CPUID.(EAX=0DH,ECX=0).
	ax, _, _, dx := cpuid(0x0d, 0x00)
	supported := uint64(dx)<<32 | uint64(ax)
	if xcr0&^supported != 0 {
		t.Errorf("XCR0 %#x enables components not supported by the processor (%#x)", xcr0, supported)
	}
	if got := uint64(HostXCR0()); got != xcr0 {
		t.Errorf("HostXCR0() = %#x, xgetbv(0) = %#x", got, xcr0)
	}
}
