package linutil

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/arch/x86/x86asm"

	"github.com/go-delve/tdep/pkg/sysno"
)

// The signal trampoline installed by glibc (__restore_rt) is
//
//	mov $__NR_rt_sigreturn, %rax   (48 c7 c0 0f 00 00 00)
//	syscall                        (0f 05)
//
// on amd64, and
//
//	mov $__NR_rt_sigreturn, %eax   (b8 01 02 00 40)
//	syscall                        (0f 05)
//
// on x32.

// SigtrampCode returns the machine code of the signal trampoline of the
// personality mode.
func SigtrampCode(mode ABIMode) []byte {
	mode.mustBeValid()
	nr, _ := RawNumber(sysno.RtSigreturn, mode)
	var code []byte
	switch mode {
	case ABINative:
		code = []byte{0x48, 0xc7, 0xc0, 0, 0, 0, 0}
		binary.LittleEndian.PutUint32(code[3:], uint32(nr))
	case ABICompat:
		code = []byte{0xb8, 0, 0, 0, 0}
		binary.LittleEndian.PutUint32(code[1:], uint32(nr))
	}
	return append(code, 0x0f, 0x05)
}

// IsSyscallInstruction reports whether code starts with a SYSCALL
// instruction.
func IsSyscallInstruction(code []byte) bool {
	inst, err := x86asm.Decode(code, 64)
	return err == nil && inst.Op == x86asm.SYSCALL
}

// IsSigtramp reports whether code starts with the signal trampoline of the
// personality mode.
func IsSigtramp(code []byte, mode ABIMode) bool {
	mode.mustBeValid()
	nr, _ := RawNumber(sysno.RtSigreturn, mode)
	inst, err := x86asm.Decode(code, 64)
	if err != nil || inst.Op != x86asm.MOV {
		return false
	}
	dst, _ := inst.Args[0].(x86asm.Reg)
	imm, ok := inst.Args[1].(x86asm.Imm)
	if !ok || uint64(imm) != nr {
		return false
	}
	switch mode {
	case ABINative:
		if dst != x86asm.RAX {
			return false
		}
	case ABICompat:
		if dst != x86asm.EAX {
			return false
		}
	}
	return IsSyscallInstruction(code[inst.Len:])
}

// SigtrampStart returns the offset into code of the start of a signal
// trampoline containing the instruction at code[pc:]. The second return
// value is false if code[pc:] is not part of a trampoline.
func SigtrampStart(code []byte, pc int, mode ABIMode) (int, bool) {
	n := len(SigtrampCode(mode))
	for _, start := range []int{pc, pc - (n - 2)} {
		if start >= 0 && start < len(code) && IsSigtramp(code[start:], mode) {
			return start, true
		}
	}
	return 0, false
}

// Disassemble returns the GNU syntax of the instructions in code,
// assuming it is loaded at address pc.
func Disassemble(code []byte, pc uint64) ([]string, error) {
	var r []string
	for len(code) > 0 {
		inst, err := x86asm.Decode(code, 64)
		if err != nil {
			return r, fmt.Errorf("could not decode instruction at %#x: %v", pc, err)
		}
		r = append(r, x86asm.GNUSyntax(inst, pc, nil))
		code = code[inst.Len:]
		pc += uint64(inst.Len)
	}
	return r, nil
}
