package linutil

import (
	"testing"

	"github.com/go-delve/tdep/pkg/proc/amd64util"
)

func TestRestartSyscall(t *testing.T) {
	regs := &AMD64PtraceRegs{Orig_rax: 35}
	if raw, ok := regs.RestartSyscall(); !ok || raw != 35 {
		t.Errorf("RestartSyscall() = %d, %v", raw, ok)
	}
	regs.CancelRestart()
	if _, ok := regs.RestartSyscall(); ok {
		t.Errorf("restart pending after CancelRestart")
	}
	if int64(regs.SyscallNumber()) != -1 {
		t.Errorf("orig_rax = %#x", regs.Orig_rax)
	}
}

func TestPtraceRegsGetSet(t *testing.T) {
	d := Resolve(amd64util.XstateAll, ABINative)
	regs := &AMD64PtraceRegs{Rax: 1, R15: 2, Rip: 0x401000, Eflags: 0xffffffff00000246, Gs: 0x2b}
	for _, tc := range []struct {
		name string
		val  uint64
	}{
		{"rax", 1},
		{"r15", 2},
		{"rip", 0x401000},
		{"eflags", 0x246},
		{"gs", 0x2b},
	} {
		reg, _ := d.Register(tc.name)
		v, err := regs.Get(reg)
		if err != nil || v != tc.val {
			t.Errorf("%s: %#x %v", tc.name, v, err)
		}
	}

	restart, _ := d.Register(RestartRegisterName)
	if err := regs.Set(restart, 202); err != nil {
		t.Fatal(err)
	}
	if regs.Orig_rax != 202 {
		t.Errorf("orig_rax = %d", regs.Orig_rax)
	}

	xmm0, _ := d.Register("xmm0")
	if _, err := regs.Get(xmm0); err == nil {
		t.Errorf("xmm0 read from the gregset")
	}
	if err := regs.Set(xmm0, 1); err == nil {
		t.Errorf("xmm0 written to the gregset")
	}
}

func TestPtraceRegsSize(t *testing.T) {
	if AMD64PtraceRegsSize != 27*8 {
		t.Errorf("user_regs_struct size %d", AMD64PtraceRegsSize)
	}
}
