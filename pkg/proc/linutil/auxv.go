package linutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	_AT_NULL         = 0
	_AT_ENTRY        = 9
	_AT_HWCAP2       = 26
	_AT_SYSINFO_EHDR = 33
	_AT_MINSIGSTKSZ  = 51
)

// AuxvInfo holds the entries of the ELF auxiliary vector of a process that
// matter for register access.
type AuxvInfo struct {
	Entry       uint64 // AT_ENTRY
	VDSO        uint64 // AT_SYSINFO_EHDR
	HWCap2      uint64 // AT_HWCAP2
	MinSigStkSz uint64 // AT_MINSIGSTKSZ, the signal frame size including the XSAVE area
}

// ParseAuxv decodes the auxiliary vector auxv of a process whose pointers
// are ptrSize bytes long (8 for amd64, 4 for x32).
// For a description of the auxiliary vector (auxv) format see:
// System V Application Binary Interface, AMD64 Architecture Processor
// Supplement, section 3.4.3.
func ParseAuxv(auxv []byte, ptrSize int) (AuxvInfo, error) {
	var info AuxvInfo
	rd := bytes.NewReader(auxv)
	for {
		tag, err := readUintRaw(rd, binary.LittleEndian, ptrSize)
		if err != nil {
			if err == io.EOF {
				return info, nil
			}
			return info, err
		}
		val, err := readUintRaw(rd, binary.LittleEndian, ptrSize)
		if err != nil {
			return info, fmt.Errorf("truncated auxiliary vector: %v", err)
		}

		switch tag {
		case _AT_NULL:
			return info, nil
		case _AT_ENTRY:
			info.Entry = val
		case _AT_SYSINFO_EHDR:
			info.VDSO = val
		case _AT_HWCAP2:
			info.HWCap2 = val
		case _AT_MINSIGSTKSZ:
			info.MinSigStkSz = val
		}
	}
}

// readUintRaw reads an integer of ptrSize bytes, with the specified byte order, from reader.
func readUintRaw(reader io.Reader, order binary.ByteOrder, ptrSize int) (uint64, error) {
	switch ptrSize {
	case 4:
		var n uint32
		if err := binary.Read(reader, order, &n); err != nil {
			return 0, err
		}
		return uint64(n), nil
	case 8:
		var n uint64
		if err := binary.Read(reader, order, &n); err != nil {
			return 0, err
		}
		return n, nil
	}
	return 0, fmt.Errorf("not supported ptr size %d", ptrSize)
}
