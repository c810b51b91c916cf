package amd64util

import (
	"encoding/binary"
	"testing"
)

func TestXstateFeaturesString(t *testing.T) {
	for _, tc := range []struct {
		f   XstateFeatures
		out string
	}{
		{0, "none"},
		{XstateLegacy, "x87|sse"},
		{XstateLegacy | XstateAVX, "x87|sse|avx"},
		{XstateAll, "x87|sse|avx|bndregs|bndcsr|opmask|zmm_hi256|hi16_zmm|pkru"},
		{XstateAVX | 1<<17, "avx|bit17"},
	} {
		if got := tc.f.String(); got != tc.out {
			t.Errorf("%#x: got %q expected %q", uint64(tc.f), got, tc.out)
		}
	}
}

func TestParseXstateFeatures(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out XstateFeatures
	}{
		{"", 0},
		{"0x2ff", XstateAll},
		{"0x2e7", XstateLegacy | XstateAVX | XstateAVX512 | XstatePKRU},
		{"7", XstateLegacy | XstateAVX},
		{"avx|avx512", XstateAVX | XstateAVX512},
		{"legacy, mpx", XstateLegacy | XstateMPX},
		{"AVX|pkru", XstateAVX | XstatePKRU},
		{"none", 0},
	} {
		got, err := ParseXstateFeatures(tc.in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.out {
			t.Errorf("%q: got %v expected %v", tc.in, got, tc.out)
		}
	}
	if _, err := ParseXstateFeatures("avx|sse5"); err == nil {
		t.Errorf("expected error for unknown component")
	}
}

func TestXCR0FromXsave(t *testing.T) {
	xsave := make([]byte, XstateMaxKnownSize)
	if _, ok := XCR0FromXsave(xsave); ok {
		t.Errorf("zero XCR0 should not be accepted")
	}
	binary.LittleEndian.PutUint64(xsave[464:], uint64(XstateAll))
	xcr0, ok := XCR0FromXsave(xsave)
	if !ok || xcr0 != XstateAll {
		t.Errorf("got %v %v, expected %v", xcr0, ok, XstateAll)
	}
	if _, ok := XCR0FromXsave(xsave[:470]); ok {
		t.Errorf("truncated area should not be accepted")
	}
}

func TestXstateBV(t *testing.T) {
	xsave := make([]byte, XstateMaxKnownSize)
	binary.LittleEndian.PutUint64(xsave[512:], uint64(XstateLegacy|XstateAVX))
	bv, ok := XstateBV(xsave)
	if !ok || bv != XstateLegacy|XstateAVX {
		t.Errorf("got %v %v", bv, ok)
	}
	binary.LittleEndian.PutUint64(xsave[520:], 1<<63)
	if _, ok := XstateBV(xsave); ok {
		t.Errorf("compacted format should be rejected")
	}
	if _, ok := XstateBV(xsave[:512]); ok {
		t.Errorf("truncated area should be rejected")
	}
}
