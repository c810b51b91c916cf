//go:build linux && amd64

package ebpfcount

import (
	"errors"
	"fmt"

	"github.com/cilium/ebpf"
	"github.com/cilium/ebpf/asm"
	"github.com/cilium/ebpf/link"
	"github.com/cilium/ebpf/rlimit"

	"github.com/go-delve/tdep/pkg/logflags"
)

const (
	maxEntries = 1024

	// offset of the system call number in the context of the
	// raw_syscalls:sys_enter tracepoint
	// (/sys/kernel/tracing/events/raw_syscalls/sys_enter/format)
	sysEnterIDOffset = 8

	_BPF_NOEXIST = 1
)

// Census is a loaded and attached system call counter.
type Census struct {
	counts *ebpf.Map
	prog   *ebpf.Program
	links  []link.Link
}

// Load loads the counting program and attaches it. If pid is not zero only
// system calls made by the threads of process pid are counted.
func Load(pid int) (*Census, error) {
	if err := rlimit.RemoveMemlock(); err != nil {
		return nil, fmt.Errorf("could not remove memlock limit: %v", err)
	}
	c := &Census{}
	var err error
	c.counts, err = ebpf.NewMap(&ebpf.MapSpec{
		Name:       "syscall_counts",
		Type:       ebpf.Hash,
		KeySize:    8,
		ValueSize:  8,
		MaxEntries: maxEntries,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create map: %w", err)
	}
	c.prog, err = ebpf.NewProgram(&ebpf.ProgramSpec{
		Name:         "count_syscalls",
		Type:         ebpf.TracePoint,
		License:      "GPL",
		Instructions: program(pid, c.counts.FD()),
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("could not load program: %w", err)
	}
	tp, err := link.Tracepoint("raw_syscalls", "sys_enter", c.prog, nil)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("could not attach to raw_syscalls:sys_enter: %w", err)
	}
	c.links = append(c.links, tp)
	logflags.SyscallsLogger().Debugf("census attached (pid filter %d)", pid)
	return c, nil
}

// program returns the instructions of the counting program:
//
//	if pid != 0 && bpf_get_current_pid_tgid()>>32 != pid { return 0 }
//	key := ctx->id
//	if p := bpf_map_lookup_elem(counts, &key); p != nil { atomic_add(p, 1); return 0 }
//	one := 1
//	if bpf_map_update_elem(counts, &key, &one, BPF_NOEXIST) != 0 {
//		// lost the race with another CPU
//		if p := bpf_map_lookup_elem(counts, &key); p != nil { atomic_add(p, 1) }
//	}
//	return 0
func program(pid int, countsFD int) asm.Instructions {
	var insns asm.Instructions
	insns = append(insns, asm.Mov.Reg(asm.R6, asm.R1))
	if pid != 0 {
		insns = append(insns,
			asm.FnGetCurrentPidTgid.Call(),
			asm.RSh.Imm(asm.R0, 32),
			asm.JNE.Imm(asm.R0, int32(pid), "exit"),
		)
	}
	insns = append(insns,
		asm.LoadMem(asm.R1, asm.R6, sysEnterIDOffset, asm.DWord),
		asm.StoreMem(asm.RFP, -8, asm.R1, asm.DWord),

		asm.LoadMapPtr(asm.R1, countsFD),
		asm.Mov.Reg(asm.R2, asm.RFP),
		asm.Add.Imm(asm.R2, -8),
		asm.FnMapLookupElem.Call(),
		asm.JEq.Imm(asm.R0, 0, "insert"),
		asm.Mov.Imm(asm.R1, 1),
		asm.StoreXAdd(asm.R0, asm.R1, asm.DWord),
		asm.Ja.Label("exit"),

		asm.StoreImm(asm.RFP, -16, 1, asm.DWord).WithSymbol("insert"),
		asm.LoadMapPtr(asm.R1, countsFD),
		asm.Mov.Reg(asm.R2, asm.RFP),
		asm.Add.Imm(asm.R2, -8),
		asm.Mov.Reg(asm.R3, asm.RFP),
		asm.Add.Imm(asm.R3, -16),
		asm.Mov.Imm(asm.R4, _BPF_NOEXIST),
		asm.FnMapUpdateElem.Call(),
		asm.JEq.Imm(asm.R0, 0, "exit"),

		asm.LoadMapPtr(asm.R1, countsFD),
		asm.Mov.Reg(asm.R2, asm.RFP),
		asm.Add.Imm(asm.R2, -8),
		asm.FnMapLookupElem.Call(),
		asm.JEq.Imm(asm.R0, 0, "exit"),
		asm.Mov.Imm(asm.R1, 1),
		asm.StoreXAdd(asm.R0, asm.R1, asm.DWord),

		asm.Mov.Imm(asm.R0, 0).WithSymbol("exit"),
		asm.Return(),
	)
	return insns
}

// Snapshot returns the current counts, most frequent first.
func (c *Census) Snapshot() ([]Count, error) {
	raw := make(map[uint64]uint64)
	var k, v uint64
	it := c.counts.Iterate()
	for it.Next(&k, &v) {
		raw[k] = v
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("could not read counts: %w", err)
	}
	return makeCounts(raw), nil
}

// Close detaches the program and releases its resources.
func (c *Census) Close() error {
	var errs []error
	for _, l := range c.links {
		errs = append(errs, l.Close())
	}
	c.links = nil
	if c.prog != nil {
		errs = append(errs, c.prog.Close())
	}
	if c.counts != nil {
		errs = append(errs, c.counts.Close())
	}
	return errors.Join(errs...)
}
