package linutil

import (
	"fmt"
	"strconv"

	"github.com/go-delve/tdep/pkg/dwarf/regnum"
	"github.com/go-delve/tdep/pkg/proc/amd64util"
)

// Feature names of the register groups, as used in target description XML.
const (
	FeatureCore     = "org.gnu.gdb.i386.core"
	FeatureSSE      = "org.gnu.gdb.i386.sse"
	FeatureAVX      = "org.gnu.gdb.i386.avx"
	FeatureMPX      = "org.gnu.gdb.i386.mpx"
	FeatureAVX512   = "org.gnu.gdb.i386.avx512"
	FeaturePKeys    = "org.gnu.gdb.i386.pkeys"
	FeatureSegments = "org.gnu.gdb.i386.segments"
	FeatureLinux    = "org.gnu.gdb.i386.linux"
)

// RestartRegisterName is the name of the register holding the system call
// number the kernel will restart when the thread resumes.
const RestartRegisterName = "orig_rax"

// RegisterInfo describes one register of a Description.
type RegisterInfo struct {
	Name    string
	Regnum  int // position in the description
	BitSize int
	Feature string

	// GregsetOffset is the byte offset of the register in AMD64PtraceRegs
	// (user_regs_struct), -1 if it is not a general purpose register.
	GregsetOffset int
	// XsaveOffset is the byte offset of the register in a standard format
	// XSAVE area, -1 if the register is not saved there.
	XsaveOffset int
	// DwarfRegnum is the DWARF register number, -1 if there is none.
	DwarfRegnum int
}

// Description is the register layout of a traced amd64 or x32 process.
// Descriptions are created once, during package initialization, and must
// not be modified.
type Description struct {
	Name     string
	ABI      ABIMode
	Requires amd64util.XstateFeatures
	PtrSize  int

	Registers []RegisterInfo

	byName map[string]int
}

// NumRegs returns the number of registers in the description, restart
// register included.
func (d *Description) NumRegs() int {
	return len(d.Registers)
}

// RestartRegnum returns the position of the restart register, which
// immediately follows the last architectural register.
func (d *Description) RestartRegnum() int {
	return len(d.Registers) - 1
}

// Register returns the register called name.
func (d *Description) Register(name string) (RegisterInfo, bool) {
	i, ok := d.byName[name]
	if !ok {
		return RegisterInfo{}, false
	}
	return d.Registers[i], true
}

// Features returns the register groups of the description in order.
func (d *Description) Features() []string {
	var r []string
	for _, reg := range d.Registers {
		if len(r) == 0 || r[len(r)-1] != reg.Feature {
			r = append(r, reg.Feature)
		}
	}
	return r
}

func (d *Description) String() string {
	return d.Name
}

// Resolve returns the register description for a process running under
// the personality mode on a CPU/kernel combination that enables the
// XSAVE components in caps. Resolve always returns a description: the
// least capable entry of each catalog has no requirements.
//
// The x32 personality has no MPX or PKRU support, those components are
// ignored in compat mode.
func Resolve(caps amd64util.XstateFeatures, mode ABIMode) *Description {
	mode.mustBeValid()
	if mode == ABICompat {
		caps &^= amd64util.XstateMPX | amd64util.XstatePKRU
	}
	for _, d := range catalogs[mode] {
		if caps.Has(d.Requires) {
			return d
		}
	}
	panic("unreachable")
}

// Catalog returns every description of the personality mode, from the
// most to the least capable. The returned slice must not be modified.
func Catalog(mode ABIMode) []*Description {
	mode.mustBeValid()
	return catalogs[mode]
}

// DescriptionByName returns the description called name
// (e.g. "amd64-avx-linux").
func DescriptionByName(name string) (*Description, bool) {
	for _, cat := range catalogs {
		for _, d := range cat {
			if d.Name == name {
				return d, true
			}
		}
	}
	return nil, false
}

type catalogEntry struct {
	name     string
	requires amd64util.XstateFeatures
}

// Catalog entries in order of precedence. When two entries are
// incomparable (avx-mpx and avx-avx512) the first one wins.
var (
	amd64Catalog = []catalogEntry{
		{"amd64-avx-mpx-avx512-pku-linux", amd64util.XstateAVX | amd64util.XstateMPX | amd64util.XstateAVX512 | amd64util.XstatePKRU},
		{"amd64-avx-avx512-linux", amd64util.XstateAVX | amd64util.XstateAVX512},
		{"amd64-avx-mpx-linux", amd64util.XstateAVX | amd64util.XstateMPX},
		{"amd64-mpx-linux", amd64util.XstateMPX},
		{"amd64-avx-linux", amd64util.XstateAVX},
		{"amd64-linux", 0},
	}

	x32Catalog = []catalogEntry{
		{"x32-avx-avx512-linux", amd64util.XstateAVX | amd64util.XstateAVX512},
		{"x32-avx-linux", amd64util.XstateAVX},
		{"x32-linux", 0},
	}
)

var catalogs = [2][]*Description{
	ABINative: buildCatalog(ABINative, amd64Catalog),
	ABICompat: buildCatalog(ABICompat, x32Catalog),
}

func buildCatalog(mode ABIMode, entries []catalogEntry) []*Description {
	r := make([]*Description, len(entries))
	for i, e := range entries {
		r[i] = newDescription(e.name, mode, e.requires)
	}
	if err := checkCatalog(r); err != nil {
		panic(fmt.Sprintf("linutil: bad %s register description catalog: %v", mode, err))
	}
	return r
}

// checkCatalog verifies that every entry of cat can be selected by
// Resolve and that Resolve can not fail.
func checkCatalog(cat []*Description) error {
	if len(cat) == 0 {
		return fmt.Errorf("empty catalog")
	}
	if last := cat[len(cat)-1]; last.Requires != 0 {
		return fmt.Errorf("least capable description %s has requirements %s", last.Name, last.Requires)
	}
	for i := range cat {
		for j := i + 1; j < len(cat); j++ {
			if cat[j].Requires.Has(cat[i].Requires) {
				return fmt.Errorf("description %s is shadowed by %s", cat[j].Name, cat[i].Name)
			}
		}
		if cat[i].Requires&amd64util.XstateLegacy != 0 {
			return fmt.Errorf("description %s requires legacy state", cat[i].Name)
		}
		last := cat[i].Registers[cat[i].RestartRegnum()]
		if last.Name != RestartRegisterName {
			return fmt.Errorf("description %s ends with %s", cat[i].Name, last.Name)
		}
	}
	return nil
}

// gregset offsets, in 8 byte words, of the registers in user_regs_struct.
var amd64GregsetSlots = map[string]int{
	"rax": 10, "rbx": 5, "rcx": 11, "rdx": 12,
	"rsi": 13, "rdi": 14, "rbp": 4, "rsp": 19,
	"r8": 9, "r9": 8, "r10": 7, "r11": 6,
	"r12": 3, "r13": 2, "r14": 1, "r15": 0,
	"rip": 16, "eflags": 18,
	"cs": 17, "ss": 20, "ds": 23, "es": 24, "fs": 25, "gs": 26,
	"fs_base": 21, "gs_base": 22,
	"orig_rax": 15,
}

type descBuilder struct {
	d *Description
}

func (b *descBuilder) add(feature, name string, bitSize, xsaveOff int) {
	greg := -1
	if slot, ok := amd64GregsetSlots[name]; ok {
		greg = slot * 8
	}
	b.d.byName[name] = len(b.d.Registers)
	b.d.Registers = append(b.d.Registers, RegisterInfo{
		Name:          name,
		Regnum:        len(b.d.Registers),
		BitSize:       bitSize,
		Feature:       feature,
		GregsetOffset: greg,
		XsaveOffset:   xsaveOff,
		DwarfRegnum:   regnum.AMD64NameToDwarf(name),
	})
}

func newDescription(name string, mode ABIMode, requires amd64util.XstateFeatures) *Description {
	d := &Description{
		Name:     name,
		ABI:      mode,
		Requires: requires,
		PtrSize:  8,
		byName:   make(map[string]int),
	}
	if mode == ABICompat {
		d.PtrSize = 4
	}
	b := &descBuilder{d}
	itoa := strconv.Itoa

	for _, reg := range []string{"rax", "rbx", "rcx", "rdx", "rsi", "rdi", "rbp", "rsp"} {
		b.add(FeatureCore, reg, 64, -1)
	}
	for i := 8; i < 16; i++ {
		b.add(FeatureCore, "r"+itoa(i), 64, -1)
	}
	b.add(FeatureCore, "rip", 64, -1)
	b.add(FeatureCore, "eflags", 32, -1)
	for _, reg := range []string{"cs", "ss", "ds", "es", "fs", "gs"} {
		b.add(FeatureCore, reg, 32, -1)
	}
	for i := 0; i < 8; i++ {
		b.add(FeatureCore, "st"+itoa(i), 80, amd64util.XsaveST0+16*i)
	}
	b.add(FeatureCore, "fctrl", 32, amd64util.XsaveFCW)
	b.add(FeatureCore, "fstat", 32, amd64util.XsaveFSW)
	b.add(FeatureCore, "ftag", 32, amd64util.XsaveFTW)
	b.add(FeatureCore, "fiseg", 32, amd64util.XsaveFISEG)
	b.add(FeatureCore, "fioff", 32, amd64util.XsaveFIOFF)
	b.add(FeatureCore, "foseg", 32, amd64util.XsaveFOSEG)
	b.add(FeatureCore, "fooff", 32, amd64util.XsaveFOOFF)
	b.add(FeatureCore, "fop", 32, amd64util.XsaveFOP)

	for i := 0; i < 16; i++ {
		b.add(FeatureSSE, "xmm"+itoa(i), 128, amd64util.XsaveXMM0+16*i)
	}
	b.add(FeatureSSE, "mxcsr", 32, amd64util.XsaveMXCSR)

	if requires.Has(amd64util.XstateAVX) {
		for i := 0; i < 16; i++ {
			b.add(FeatureAVX, "ymm"+itoa(i)+"h", 128, amd64util.XsaveYMMHi128+16*i)
		}
	}

	if requires.Has(amd64util.XstateMPX) {
		for i := 0; i < 4; i++ {
			b.add(FeatureMPX, "bnd"+itoa(i)+"raw", 128, amd64util.XsaveBND0+16*i)
		}
		b.add(FeatureMPX, "bndcfgu", 64, amd64util.XsaveBNDCFGU)
		b.add(FeatureMPX, "bndstatus", 64, amd64util.XsaveBNDSTATUS)
	}

	if requires.Has(amd64util.XstateAVX512) {
		for i := 16; i < 32; i++ {
			b.add(FeatureAVX512, "xmm"+itoa(i), 128, amd64util.XsaveHi16ZMM+64*(i-16))
		}
		for i := 16; i < 32; i++ {
			b.add(FeatureAVX512, "ymm"+itoa(i)+"h", 128, amd64util.XsaveHi16ZMM+64*(i-16)+16)
		}
		for i := 0; i < 8; i++ {
			b.add(FeatureAVX512, "k"+itoa(i), 64, amd64util.XsaveK0+8*i)
		}
		for i := 0; i < 16; i++ {
			b.add(FeatureAVX512, "zmm"+itoa(i)+"h", 256, amd64util.XsaveZMMHi256+32*i)
		}
		for i := 16; i < 32; i++ {
			b.add(FeatureAVX512, "zmm"+itoa(i)+"h", 256, amd64util.XsaveHi16ZMM+64*(i-16)+32)
		}
	}

	if requires.Has(amd64util.XstatePKRU) {
		b.add(FeaturePKeys, "pkru", 32, amd64util.XsavePKRU)
	}

	b.add(FeatureSegments, "fs_base", 64, -1)
	b.add(FeatureSegments, "gs_base", 64, -1)

	b.add(FeatureLinux, RestartRegisterName, 64, -1)
	return d
}
