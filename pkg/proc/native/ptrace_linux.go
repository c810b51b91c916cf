//go:build linux && amd64

package native

import (
	"syscall"
	"unsafe"

	sys "golang.org/x/sys/unix"

	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/proc/native/cpuid"
)

const _NT_X86_XSTATE = 0x202

// ptraceAttach executes the sys.PtraceAttach call.
func ptraceAttach(pid int) error {
	return sys.PtraceAttach(pid)
}

// ptraceDetach calls ptrace(PTRACE_DETACH).
func ptraceDetach(tid, sig int) error {
	_, _, err := sys.Syscall6(sys.SYS_PTRACE, sys.PTRACE_DETACH, uintptr(tid), 1, uintptr(sig), 0, 0)
	if err != syscall.Errno(0) {
		return err
	}
	return nil
}

// ptraceSetOptions calls ptrace(PTRACE_SETOPTIONS).
func ptraceSetOptions(tid, options int) error {
	return sys.PtraceSetOptions(tid, options)
}

// ptraceSyscall resumes tid until the next system call entry or exit,
// delivering signal sig.
func ptraceSyscall(tid, sig int) error {
	return sys.PtraceSyscall(tid, sig)
}

// ptraceGetRegs returns the general purpose registers of tid.
func ptraceGetRegs(tid int) (*linutil.AMD64PtraceRegs, error) {
	var regs linutil.AMD64PtraceRegs
	_, _, err := syscall.Syscall6(syscall.SYS_PTRACE, sys.PTRACE_GETREGS, uintptr(tid), 0, uintptr(unsafe.Pointer(&regs)), 0, 0)
	if err != syscall.Errno(0) {
		return nil, err
	}
	return &regs, nil
}

// ptraceSetRegs changes the general purpose registers of tid.
func ptraceSetRegs(tid int, regs *linutil.AMD64PtraceRegs) error {
	_, _, err := syscall.Syscall6(syscall.SYS_PTRACE, sys.PTRACE_SETREGS, uintptr(tid), 0, uintptr(unsafe.Pointer(regs)), 0, 0)
	if err != syscall.Errno(0) {
		return err
	}
	return nil
}

// ptraceGetXsave returns the XSAVE area of tid, or nil if the kernel or the
// CPU do not support PTRACE_GETREGSET(NT_X86_XSTATE).
func ptraceGetXsave(tid int) ([]byte, error) {
	xstateargs := make([]byte, cpuid.AMD64XstateMaxSize())
	iov := sys.Iovec{Base: &xstateargs[0], Len: uint64(len(xstateargs))}
	_, _, err := syscall.Syscall6(syscall.SYS_PTRACE, sys.PTRACE_GETREGSET, uintptr(tid), _NT_X86_XSTATE, uintptr(unsafe.Pointer(&iov)), 0, 0)
	if err != syscall.Errno(0) {
		if err == syscall.ENODEV || err == syscall.EIO || err == syscall.EINVAL {
			// ignore ENODEV, it just means this CPU or kernel doesn't support XSTATE, see https://github.com/go-delve/delve/issues/1022
			// also ignore EIO, it means that we are running on an old kernel (pre 2.6.34) and PTRACE_GETREGSET is not implemented
			// also ignore EINVAL, it means the kernel itself does not support the NT_X86_XSTATE argument (but does support PTRACE_GETREGSET)
			return nil, nil
		}
		return nil, err
	}
	return xstateargs[:iov.Len], nil
}
