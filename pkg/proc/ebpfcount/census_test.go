package ebpfcount

import (
	"testing"

	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/sysno"
)

func TestMakeCounts(t *testing.T) {
	const x32 = linutil.AMD64X32SyscallBit
	counts := makeCounts(map[uint64]uint64{
		0:          5,
		1:          9,
		134:        2,
		x32 + 512:  5,
		x32 + 13:   1,
		^uint64(0): 1,
	})
	want := []Count{
		{1, linutil.ABINative, sysno.Write, 9},
		{0, linutil.ABINative, sysno.Read, 5},
		{x32 + 512, linutil.ABICompat, sysno.RtSigaction, 5},
		{134, linutil.ABINative, sysno.Invalid, 2},
		{x32 + 13, linutil.ABICompat, sysno.Invalid, 1},
		{^uint64(0), linutil.ABINative, sysno.Invalid, 1},
	}
	if len(counts) != len(want) {
		t.Fatalf("got %v", counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("%d: got %+v expected %+v", i, counts[i], want[i])
		}
	}
}
