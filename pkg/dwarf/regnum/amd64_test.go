package regnum

import "testing"

func TestAMD64NameToDwarf(t *testing.T) {
	for _, tc := range []struct {
		name string
		num  int
	}{
		{"rax", AMD64_Rax},
		{"RDX", AMD64_Rdx},
		{"r15", 15},
		{"rip", AMD64_Rip},
		{"xmm0", AMD64_XMM0},
		{"xmm15", 32},
		{"st0", AMD64_ST0},
		{"st7", 40},
		{"eflags", 49},
		{"rflags", 49},
		{"fs_base", 58},
		{"mxcsr", 64},
		{"fctrl", 65},
		{"fstat", 66},
		{"xmm16", 67},
		{"xmm31", 82},
		{"k0", 118},
		{"k7", 125},
		{"orig_rax", -1},
		{"ymm0h", -1},
		{"pkru", -1},
	} {
		if got := AMD64NameToDwarf(tc.name); got != tc.num {
			t.Errorf("%s: got %d expected %d", tc.name, got, tc.num)
		}
	}
}

func TestAMD64ToName(t *testing.T) {
	for num := uint64(0); num <= AMD64MaxRegNum(); num++ {
		name, ok := amd64DwarfToName[num]
		if !ok {
			if got := AMD64ToName(num); got[:7] != "unknown" {
				t.Errorf("%d: expected unknown, got %q", num, got)
			}
			continue
		}
		if back := AMD64NameToDwarf(name); back != int(num) {
			t.Errorf("%d -> %q -> %d", num, name, back)
		}
	}
}
