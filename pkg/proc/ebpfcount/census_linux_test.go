//go:build linux && amd64

package ebpfcount

import (
	"os"
	"testing"

	"github.com/cilium/ebpf/asm"

	"github.com/go-delve/tdep/pkg/sysno"
)

func TestProgramLabels(t *testing.T) {
	for _, pid := range []int{0, 1234} {
		insns := program(pid, 3)
		symbols := map[string]bool{}
		for _, ins := range insns {
			if sym := ins.Symbol(); sym != "" {
				symbols[sym] = true
			}
		}
		for i, ins := range insns {
			if ref := ins.Reference(); ref != "" && !symbols[ref] {
				t.Errorf("pid %d: instruction %d jumps to undefined label %q", pid, i, ref)
			}
		}
		if insns[len(insns)-1].OpCode.JumpOp() != asm.Exit {
			t.Errorf("pid %d: program does not end with exit", pid)
		}
	}
}

func TestCensus(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("loading eBPF programs requires root")
	}
	c, err := Load(os.Getpid())
	if err != nil {
		t.Skipf("could not load census: %v", err)
	}
	defer c.Close()
	for i := 0; i < 10; i++ {
		os.Getppid()
	}
	counts, err := c.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	for _, cnt := range counts {
		if cnt.ID == sysno.Getppid {
			if cnt.N < 10 {
				t.Errorf("getppid counted %d times", cnt.N)
			}
			return
		}
	}
	t.Errorf("getppid not counted: %v", counts)
}
