package linutil

import (
	"fmt"
	"unsafe"
)

// AMD64PtraceRegs is the struct used by the linux kernel to return the
// general purpose registers for AMD64 CPUs (user_regs_struct). x32
// processes use the same layout.
type AMD64PtraceRegs struct {
	R15      uint64
	R14      uint64
	R13      uint64
	R12      uint64
	Rbp      uint64
	Rbx      uint64
	R11      uint64
	R10      uint64
	R9       uint64
	R8       uint64
	Rax      uint64
	Rcx      uint64
	Rdx      uint64
	Rsi      uint64
	Rdi      uint64
	Orig_rax uint64
	Rip      uint64
	Cs       uint64
	Eflags   uint64
	Rsp      uint64
	Ss       uint64
	Fs_base  uint64
	Gs_base  uint64
	Ds       uint64
	Es       uint64
	Fs       uint64
	Gs       uint64
}

// AMD64PtraceRegsSize is the size of user_regs_struct.
const AMD64PtraceRegsSize = int(unsafe.Sizeof(AMD64PtraceRegs{}))

// PC returns the value of RIP register.
func (r *AMD64PtraceRegs) PC() uint64 {
	return r.Rip
}

// SP returns the value of RSP register.
func (r *AMD64PtraceRegs) SP() uint64 {
	return r.Rsp
}

// SyscallNumber returns the raw number of the system call the thread is
// stopped in. Only meaningful at a syscall entry or exit stop.
func (r *AMD64PtraceRegs) SyscallNumber() uint64 {
	return r.Orig_rax
}

// RestartSyscall returns the raw number of the system call the kernel will
// restart when the thread resumes after a signal. The second return value
// is false if no restart is pending (orig_rax is negative).
func (r *AMD64PtraceRegs) RestartSyscall() (uint64, bool) {
	if int64(r.Orig_rax) < 0 {
		return 0, false
	}
	return r.Orig_rax, true
}

// CancelRestart prevents the kernel from restarting an interrupted
// system call, for example before calling a function in the target.
func (r *AMD64PtraceRegs) CancelRestart() {
	r.Orig_rax = ^uint64(0)
}

// ptr returns a pointer to the register of r described by reg.
func (r *AMD64PtraceRegs) ptr(reg RegisterInfo) (*uint64, error) {
	if reg.GregsetOffset < 0 || reg.GregsetOffset+8 > AMD64PtraceRegsSize || reg.GregsetOffset%8 != 0 {
		return nil, fmt.Errorf("register %s is not a general purpose register", reg.Name)
	}
	return (*uint64)(unsafe.Add(unsafe.Pointer(r), reg.GregsetOffset)), nil
}

// Get returns the value of the general purpose register reg, truncated to
// the register's size.
func (r *AMD64PtraceRegs) Get(reg RegisterInfo) (uint64, error) {
	p, err := r.ptr(reg)
	if err != nil {
		return 0, err
	}
	v := *p
	if reg.BitSize < 64 {
		v &= 1<<reg.BitSize - 1
	}
	return v, nil
}

// Set changes the value of the general purpose register reg.
func (r *AMD64PtraceRegs) Set(reg RegisterInfo, v uint64) error {
	p, err := r.ptr(reg)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
