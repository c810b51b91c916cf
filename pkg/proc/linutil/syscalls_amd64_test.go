package linutil

import (
	"testing"

	"github.com/go-delve/tdep/pkg/sysno"
)

func TestTranslate(t *testing.T) {
	for _, tc := range []struct {
		raw  uint64
		mode ABIMode
		id   sysno.ID
	}{
		{9, ABINative, sysno.Mmap},
		{0, ABINative, sysno.Read},
		{13, ABINative, sysno.RtSigaction},
		{56, ABINative, sysno.Clone},
		{202, ABINative, sysno.Futex},
		{293, ABINative, sysno.Pipe2},
		{318, ABINative, sysno.Getrandom},
		{AMD64X32SyscallBit + 9, ABICompat, sysno.Mmap},
		{AMD64X32SyscallBit + 512, ABICompat, sysno.RtSigaction},
		{AMD64X32SyscallBit + 542, ABICompat, sysno.Getsockopt},
		{AMD64X32SyscallBit + 277, ABICompat, sysno.SyncFileRange},
	} {
		id, ok := Translate(tc.raw, tc.mode)
		if !ok || id != tc.id {
			t.Errorf("Translate(%#x, %v) = %v, %v; expected %v", tc.raw, tc.mode, id, ok, tc.id)
		}
	}
}

func TestTranslateUnmapped(t *testing.T) {
	for _, tc := range []struct {
		raw  uint64
		mode ABIMode
	}{
		{134, ABINative},
		{174, ABINative},
		{280, ABINative},
		{292, ABINative},
		{317, ABINative},
		{319, ABINative},
		{AMD64X32SyscallBit + 9, ABINative},
		{9, ABICompat},
		{AMD64X32SyscallBit + 13, ABICompat},
		{AMD64X32SyscallBit + 180, ABICompat},
		{AMD64X32SyscallBit + 293, ABICompat},
		{AMD64X32SyscallBit + 318, ABICompat},
		{AMD64X32SyscallBit + 511, ABICompat},
		{AMD64X32SyscallBit + 543, ABICompat},
		{^uint64(0), ABINative},
		{^uint64(0), ABICompat},
	} {
		if id, ok := Translate(tc.raw, tc.mode); ok {
			t.Errorf("Translate(%#x, %v) = %v, expected unmapped", tc.raw, tc.mode, id)
		}
	}
}

// Literal x32 numbers of the entry points that are not shared with amd64.
var x32HighRegionWant = map[sysno.ID]uint64{
	sysno.RtSigaction:      0x40000200,
	sysno.RtSigreturn:      0x40000201,
	sysno.Ioctl:            0x40000202,
	sysno.Readv:            0x40000203,
	sysno.Writev:           0x40000204,
	sysno.Recvfrom:         0x40000205,
	sysno.Sendmsg:          0x40000206,
	sysno.Recvmsg:          0x40000207,
	sysno.Execve:           0x40000208,
	sysno.Ptrace:           0x40000209,
	sysno.RtSigpending:     0x4000020a,
	sysno.RtSigtimedwait:   0x4000020b,
	sysno.RtSigqueueinfo:   0x4000020c,
	sysno.Sigaltstack:      0x4000020d,
	sysno.TimerCreate:      0x4000020e,
	sysno.MqNotify:         0x4000020f,
	sysno.KexecLoad:        0x40000210,
	sysno.Waitid:           0x40000211,
	sysno.SetRobustList:    0x40000212,
	sysno.GetRobustList:    0x40000213,
	sysno.Vmsplice:         0x40000214,
	sysno.MovePages:        0x40000215,
	sysno.Preadv:           0x40000216,
	sysno.Pwritev:          0x40000217,
	sysno.RtTgsigqueueinfo: 0x40000218,
	sysno.Recvmmsg:         0x40000219,
	sysno.Sendmmsg:         0x4000021a,
	sysno.ProcessVmReadv:   0x4000021b,
	sysno.ProcessVmWritev:  0x4000021c,
	sysno.Setsockopt:       0x4000021d,
	sysno.Getsockopt:       0x4000021e,
}

func TestCompatRoundTrip(t *testing.T) {
	for _, id := range sysno.All() {
		native, nok := RawNumber(id, ABINative)
		compat, cok := RawNumber(id, ABICompat)
		if !nok && !cok {
			t.Errorf("%v has no raw number in any personality", id)
			continue
		}
		if want, high := x32HighRegionWant[id]; high {
			if !cok || compat != want {
				t.Errorf("%v: x32 raw number %#x (%v), expected %#x", id, compat, cok, want)
			}
			continue
		}
		if nok && cok && compat != AMD64X32SyscallBit+native {
			t.Errorf("%v: x32 raw number %#x, expected %#x", id, compat, AMD64X32SyscallBit+native)
		}
		if cok && compat-AMD64X32SyscallBit >= AMD64X32HighRegion {
			t.Errorf("%v: unexpected high region number %#x", id, compat)
		}
	}
}

func TestRawNumberRoundTrip(t *testing.T) {
	for _, mode := range []ABIMode{ABINative, ABICompat} {
		for _, id := range sysno.All() {
			raw, ok := RawNumber(id, mode)
			if !ok {
				continue
			}
			back, ok := Translate(raw, mode)
			if !ok || back != id {
				t.Errorf("%v: %v -> %#x -> %v", mode, id, raw, back)
			}
		}
	}
	if _, ok := RawNumber(sysno.Invalid, ABINative); ok {
		t.Errorf("Invalid has a raw number")
	}
}

func TestCompatGaps(t *testing.T) {
	for _, id := range []sysno.ID{sysno.Nfsservctl, sysno.Pipe2, sysno.Getrandom} {
		if raw, ok := RawNumber(id, ABICompat); ok {
			t.Errorf("%v has x32 number %#x", id, raw)
		}
	}
	for _, id := range []sysno.ID{sysno.Preadv, sysno.Pwritev, sysno.Recvmmsg} {
		if raw, ok := RawNumber(id, ABINative); ok {
			t.Errorf("%v has amd64 number %d", id, raw)
		}
	}
}

func TestSyscallTable(t *testing.T) {
	for _, tc := range []struct {
		mode  ABIMode
		n     int
		first SyscallEntry
		last  SyscallEntry
	}{
		{ABINative, 268, SyscallEntry{0, sysno.Read}, SyscallEntry{318, sysno.Getrandom}},
		{ABICompat, 272, SyscallEntry{AMD64X32SyscallBit, sysno.Read}, SyscallEntry{AMD64X32SyscallBit + 542, sysno.Getsockopt}},
	} {
		tbl := SyscallTable(tc.mode)
		if len(tbl) != tc.n {
			t.Errorf("%v: %d entries, expected %d", tc.mode, len(tbl), tc.n)
		}
		if tbl[0] != tc.first || tbl[len(tbl)-1] != tc.last {
			t.Errorf("%v: table spans %v .. %v", tc.mode, tbl[0], tbl[len(tbl)-1])
		}
		for i := 1; i < len(tbl); i++ {
			if tbl[i].Raw <= tbl[i-1].Raw {
				t.Fatalf("%v: table not sorted at %d", tc.mode, i)
			}
		}
	}
}

func TestInvalidABIModePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("no panic")
		}
	}()
	Translate(0, ABIMode(7))
}

func TestParseABIMode(t *testing.T) {
	for in, want := range map[string]ABIMode{"amd64": ABINative, "native": ABINative, "X32": ABICompat, " compat ": ABICompat} {
		got, err := ParseABIMode(in)
		if err != nil || got != want {
			t.Errorf("ParseABIMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseABIMode("i386"); err == nil {
		t.Errorf("i386 accepted")
	}
}
