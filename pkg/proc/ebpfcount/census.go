// Package ebpfcount counts the system calls issued on the machine, or by
// one process, with an eBPF program attached to the raw_syscalls:sys_enter
// tracepoint.
package ebpfcount

import (
	"sort"

	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/sysno"
)

// Count is the number of times a raw system call number was seen.
type Count struct {
	Raw uint64
	ABI linutil.ABIMode
	ID  sysno.ID // Invalid if Raw is not a system call of ABI
	N   uint64
}

// rawABI returns the personality that issued a raw system call number:
// x32 numbers have AMD64X32SyscallBit set.
func rawABI(raw uint64) linutil.ABIMode {
	if raw&linutil.AMD64X32SyscallBit != 0 && raw>>32 == 0 {
		return linutil.ABICompat
	}
	return linutil.ABINative
}

// makeCounts translates the raw counts of the tracepoint map, sorting them
// by decreasing count.
func makeCounts(raw map[uint64]uint64) []Count {
	r := make([]Count, 0, len(raw))
	for nr, n := range raw {
		c := Count{Raw: nr, ABI: rawABI(nr), N: n}
		c.ID, _ = linutil.Translate(nr, c.ABI)
		r = append(r, c)
	}
	sort.Slice(r, func(i, j int) bool {
		if r[i].N != r[j].N {
			return r[i].N > r[j].N
		}
		return r[i].Raw < r[j].Raw
	})
	return r
}
