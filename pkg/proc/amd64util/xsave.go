package amd64util

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// XstateFeatures is a set of XSAVE state components, with the same bit
// layout as the XCR0 register. See Section 13.1 (and following) of Intel®
// 64 and IA-32 Architectures Software Developer’s Manual, Volume 1: Basic
// Architecture.
type XstateFeatures uint64

const (
	XstateX87      XstateFeatures = 1 << 0
	XstateSSE      XstateFeatures = 1 << 1
	XstateAVX      XstateFeatures = 1 << 2
	XstateBNDREGS  XstateFeatures = 1 << 3
	XstateBNDCSR   XstateFeatures = 1 << 4
	XstateOpmask   XstateFeatures = 1 << 5
	XstateZMMHi256 XstateFeatures = 1 << 6
	XstateHi16ZMM  XstateFeatures = 1 << 7
	XstatePKRU     XstateFeatures = 1 << 9

	// XstateLegacy is the x87/SSE state every amd64 processor saves.
	XstateLegacy = XstateX87 | XstateSSE
	// XstateMPX is the memory protection extensions bounds state.
	XstateMPX = XstateBNDREGS | XstateBNDCSR
	// XstateAVX512 is the AVX-512 state (opmask, upper ZMM0-15, ZMM16-31).
	XstateAVX512 = XstateOpmask | XstateZMMHi256 | XstateHi16ZMM

	// XstateAll is every component a register description can use.
	XstateAll = XstateLegacy | XstateAVX | XstateMPX | XstateAVX512 | XstatePKRU
)

var xstateNames = []struct {
	f    XstateFeatures
	name string
}{
	{XstateX87, "x87"},
	{XstateSSE, "sse"},
	{XstateAVX, "avx"},
	{XstateBNDREGS, "bndregs"},
	{XstateBNDCSR, "bndcsr"},
	{XstateOpmask, "opmask"},
	{XstateZMMHi256, "zmm_hi256"},
	{XstateHi16ZMM, "hi16_zmm"},
	{XstatePKRU, "pkru"},
}

var xstateGroups = map[string]XstateFeatures{
	"legacy": XstateLegacy,
	"mpx":    XstateMPX,
	"avx512": XstateAVX512,
	"all":    XstateAll,
	"none":   0,
}

// Has reports whether every component of g is in f.
func (f XstateFeatures) Has(g XstateFeatures) bool {
	return f&g == g
}

func (f XstateFeatures) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	rest := f
	for _, n := range xstateNames {
		if f&n.f != 0 {
			parts = append(parts, n.name)
			rest &^= n.f
		}
	}
	for bit := 0; rest != 0; bit++ {
		if rest&(1<<bit) != 0 {
			parts = append(parts, "bit"+strconv.Itoa(bit))
			rest &^= 1 << bit
		}
	}
	return strings.Join(parts, "|")
}

// ParseXstateFeatures parses either a number (any base accepted by
// strconv.ParseUint, e.g. "0x2e7") or a list of component and group names
// separated by '|' or ',' (e.g. "avx|avx512|pkru").
func ParseXstateFeatures(s string) (XstateFeatures, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseUint(s, 0, 64); err == nil {
		return XstateFeatures(n), nil
	}
	var f XstateFeatures
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.ToLower(strings.TrimSpace(part))
		if g, ok := xstateGroups[part]; ok {
			f |= g
			continue
		}
		found := false
		for _, n := range xstateNames {
			if n.name == part {
				f |= n.f
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown xstate component %q", part)
		}
	}
	return f, nil
}

// Offsets of the state components inside a standard format (non compacted)
// XSAVE area.
const (
	XsaveFCW       = 0
	XsaveFSW       = 2
	XsaveFTW       = 4
	XsaveFOP       = 6
	XsaveFIOFF     = 8
	XsaveFISEG     = 12
	XsaveFOOFF     = 16
	XsaveFOSEG     = 20
	XsaveMXCSR     = 24
	XsaveST0       = 32  // 16 bytes per register
	XsaveXMM0      = 160 // 16 bytes per register
	XsaveYMMHi128  = 576 // 16 bytes per register
	XsaveBND0      = 960 // 16 bytes per register
	XsaveBNDCFGU   = 1024
	XsaveBNDSTATUS = 1032
	XsaveK0        = 1088 // 8 bytes per register
	XsaveZMMHi256  = 1152 // 32 bytes per register
	XsaveHi16ZMM   = 1664 // 64 bytes per register, XMM/YMM/ZMM parts in order
	XsavePKRU      = 2688
)

const (
	_XSTATE_MAX_KNOWN_SIZE = 2969

	// Linux stores a copy of XCR0 in the software reserved bytes of the
	// legacy region (struct _fpx_sw_bytes in arch/x86/include/uapi/asm/sigcontext.h).
	_XSAVE_XCR0_OFFSET = 464

	_XSAVE_HEADER_START = 512
	_XSAVE_HEADER_LEN   = 64
)

// XstateMaxKnownSize is the size of an XSAVE area holding every component
// up to PKRU.
const XstateMaxKnownSize = _XSTATE_MAX_KNOWN_SIZE

// XCR0FromXsave returns the value of XCR0 recorded by the kernel in an
// XSAVE area obtained with PTRACE_GETREGSET(NT_X86_XSTATE) or from the
// NT_X86_XSTATE note of a core file.
// The second return value is false if the area is too short or does not
// contain a plausible XCR0 (the x87 bit is architecturally always set).
func XCR0FromXsave(xsave []byte) (XstateFeatures, bool) {
	if len(xsave) < _XSAVE_XCR0_OFFSET+8 {
		return 0, false
	}
	xcr0 := XstateFeatures(binary.LittleEndian.Uint64(xsave[_XSAVE_XCR0_OFFSET:]))
	if xcr0&XstateX87 == 0 {
		return 0, false
	}
	return xcr0, true
}

// XstateBV returns the XSTATE_BV field of the XSAVE header, i.e. the set of
// components whose state is not in its initial configuration.
// The second return value is false if the area is truncated or uses the
// compacted format, which is never exposed through ptrace.
func XstateBV(xsave []byte) (XstateFeatures, bool) {
	if _XSAVE_HEADER_START+_XSAVE_HEADER_LEN > len(xsave) {
		return 0, false
	}
	xsaveheader := xsave[_XSAVE_HEADER_START : _XSAVE_HEADER_START+_XSAVE_HEADER_LEN]
	xstateBV := binary.LittleEndian.Uint64(xsaveheader[0:8])
	xcompBV := binary.LittleEndian.Uint64(xsaveheader[8:16])
	if xcompBV&(1<<63) != 0 {
		// compact format not supported
		return 0, false
	}
	return XstateFeatures(xstateBV), true
}
