package regnum

import (
	"fmt"
	"strconv"
	"strings"
)

// The mapping between hardware registers and DWARF registers is specified
// in the System V ABI AMD64 Architecture Processor Supplement v. 1.0 page 61,
// figure 3.36
// https://gitlab.com/x86-psABIs/x86-64-ABI/-/tree/master
//
// The x32 ABI uses the same numbering.

const (
	AMD64_Rax     = 0
	AMD64_Rdx     = 1
	AMD64_Rcx     = 2
	AMD64_Rbx     = 3
	AMD64_Rsi     = 4
	AMD64_Rdi     = 5
	AMD64_Rbp     = 6
	AMD64_Rsp     = 7
	AMD64_R8      = 8 // R9 through R15 follow
	AMD64_Rip     = 16
	AMD64_XMM0    = 17 // XMM1 through XMM15 follow
	AMD64_ST0     = 33 // ST(1) through ST(7) follow
	AMD64_MM0     = 41 // MM1 through MM7 follow
	AMD64_Rflags  = 49
	AMD64_Es      = 50
	AMD64_Cs      = 51
	AMD64_Ss      = 52
	AMD64_Ds      = 53
	AMD64_Fs      = 54
	AMD64_Gs      = 55
	AMD64_Fs_base = 58
	AMD64_Gs_base = 59
	AMD64_Tr      = 62
	AMD64_Ldtr    = 63
	AMD64_MXCSR   = 64
	AMD64_CW      = 65
	AMD64_SW      = 66
	AMD64_XMM16   = 67  // XMM17 through XMM31 follow
	AMD64_K0      = 118 // K1 through K7 follow

	_AMD64_MaxRegNum = AMD64_K0 + 7
)

// amd64DwarfToName uses the register names of the Linux target
// descriptions (lower case, "eflags", "st0", "fctrl", "fs_base", ...).
var amd64DwarfToName = func() map[uint64]string {
	r := map[uint64]string{
		AMD64_Rax:     "rax",
		AMD64_Rdx:     "rdx",
		AMD64_Rcx:     "rcx",
		AMD64_Rbx:     "rbx",
		AMD64_Rsi:     "rsi",
		AMD64_Rdi:     "rdi",
		AMD64_Rbp:     "rbp",
		AMD64_Rsp:     "rsp",
		AMD64_Rip:     "rip",
		AMD64_Rflags:  "eflags",
		AMD64_Es:      "es",
		AMD64_Cs:      "cs",
		AMD64_Ss:      "ss",
		AMD64_Ds:      "ds",
		AMD64_Fs:      "fs",
		AMD64_Gs:      "gs",
		AMD64_Fs_base: "fs_base",
		AMD64_Gs_base: "gs_base",
		AMD64_Tr:      "tr",
		AMD64_Ldtr:    "ldtr",
		AMD64_MXCSR:   "mxcsr",
		AMD64_CW:      "fctrl",
		AMD64_SW:      "fstat",
	}
	for i := 0; i < 8; i++ {
		r[uint64(AMD64_R8+i)] = "r" + strconv.Itoa(8+i)
		r[uint64(AMD64_ST0+i)] = "st" + strconv.Itoa(i)
		r[uint64(AMD64_MM0+i)] = "mm" + strconv.Itoa(i)
		r[uint64(AMD64_K0+i)] = "k" + strconv.Itoa(i)
	}
	for i := 0; i < 16; i++ {
		r[uint64(AMD64_XMM0+i)] = "xmm" + strconv.Itoa(i)
		r[uint64(AMD64_XMM16+i)] = "xmm" + strconv.Itoa(16+i)
	}
	return r
}()

var amd64NameToDwarf = func() map[string]int {
	r := make(map[string]int, len(amd64DwarfToName)+2)
	for regNum, regName := range amd64DwarfToName {
		r[regName] = int(regNum)
	}
	r["rflags"] = AMD64_Rflags
	r["cw"] = AMD64_CW
	r["sw"] = AMD64_SW
	return r
}()

// AMD64NameToDwarf returns the DWARF register number of the register
// called name, or -1 if the register has no DWARF number (orig_rax, the
// YMM/ZMM upper halves, MPX and PKRU registers).
func AMD64NameToDwarf(name string) int {
	n, ok := amd64NameToDwarf[strings.ToLower(name)]
	if !ok {
		return -1
	}
	return n
}

func AMD64MaxRegNum() uint64 {
	return _AMD64_MaxRegNum
}

func AMD64ToName(num uint64) string {
	name, ok := amd64DwarfToName[num]
	if ok {
		return name
	}
	return fmt.Sprintf("unknown%d", num)
}
