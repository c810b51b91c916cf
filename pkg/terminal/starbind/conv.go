package starbind

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/sysno"
)

// interfaceToStarlarkValue converts the arguments passed to the main
// function of a script into starlark values.
func interfaceToStarlarkValue(v interface{}) starlark.Value {
	switch v := v.(type) {
	case uint8:
		return starlark.MakeUint64(uint64(v))
	case uint16:
		return starlark.MakeUint64(uint64(v))
	case uint32:
		return starlark.MakeUint64(uint64(v))
	case uint64:
		return starlark.MakeUint64(v)
	case uint:
		return starlark.MakeUint64(uint64(v))
	case int32:
		return starlark.MakeInt64(int64(v))
	case int64:
		return starlark.MakeInt64(v)
	case int:
		return starlark.MakeInt(v)
	case bool:
		return starlark.Bool(v)
	case string:
		return starlark.String(v)
	case []string:
		r := make([]starlark.Value, len(v))
		for i := range v {
			r[i] = starlark.String(v[i])
		}
		return starlark.NewList(r)
	case sysno.ID:
		return syscallName(v)
	case *linutil.Description:
		return descriptionValue(v)
	case nil:
		return starlark.None
	case error:
		return starlark.String(v.Error())
	}
	return starlark.String(fmt.Sprintf("%v", v))
}

func syscallName(id sysno.ID) starlark.Value {
	if id == sysno.Invalid {
		return starlark.None
	}
	return starlark.String(id.String())
}

func registerValue(reg linutil.RegisterInfo) starlark.Value {
	return starlarkstruct.FromStringDict(starlark.String("register"), starlark.StringDict{
		"name":           starlark.String(reg.Name),
		"regnum":         starlark.MakeInt(reg.Regnum),
		"bitsize":        starlark.MakeInt(reg.BitSize),
		"feature":        starlark.String(reg.Feature),
		"dwarf_regnum":   starlark.MakeInt(reg.DwarfRegnum),
		"gregset_offset": starlark.MakeInt(reg.GregsetOffset),
		"xsave_offset":   starlark.MakeInt(reg.XsaveOffset),
	})
}

func descriptionValue(desc *linutil.Description) starlark.Value {
	if desc == nil {
		return starlark.None
	}
	regs := make([]starlark.Value, len(desc.Registers))
	for i := range desc.Registers {
		regs[i] = registerValue(desc.Registers[i])
	}
	return starlarkstruct.FromStringDict(starlark.String("description"), starlark.StringDict{
		"name":           starlark.String(desc.Name),
		"abi":            starlark.String(desc.ABI.String()),
		"requires":       starlark.MakeUint64(uint64(desc.Requires)),
		"ptr_size":       starlark.MakeInt(desc.PtrSize),
		"num_regs":       starlark.MakeInt(desc.NumRegs()),
		"restart_regnum": starlark.MakeInt(desc.RestartRegnum()),
		"features":       interfaceToStarlarkValue(desc.Features()),
		"registers":      starlark.NewList(regs),
	})
}

// unpackABI parses the optional abi argument of a builtin, an empty string
// selects def.
func unpackABI(abi string, def linutil.ABIMode) (linutil.ABIMode, error) {
	if abi == "" {
		return def, nil
	}
	return linutil.ParseABIMode(abi)
}

// unpackUint64 converts an integer argument of a builtin.
func unpackUint64(name string, v starlark.Int) (uint64, error) {
	n, ok := v.Uint64()
	if !ok {
		return 0, fmt.Errorf("%s out of range: %v", name, v)
	}
	return n, nil
}
