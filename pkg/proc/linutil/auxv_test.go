package linutil

import (
	"encoding/binary"
	"testing"
)

func encodeAuxv(ptrSize int, kv ...uint64) []byte {
	buf := make([]byte, len(kv)*ptrSize)
	for i, v := range kv {
		if ptrSize == 4 {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
		} else {
			binary.LittleEndian.PutUint64(buf[i*8:], v)
		}
	}
	return buf
}

func TestParseAuxv(t *testing.T) {
	for _, ptrSize := range []int{8, 4} {
		auxv := encodeAuxv(ptrSize,
			_AT_SYSINFO_EHDR, 0x7000,
			_AT_ENTRY, 0x401000,
			_AT_MINSIGSTKSZ, 3632,
			_AT_NULL, 0,
			_AT_ENTRY, 0xdead)
		info, err := ParseAuxv(auxv, ptrSize)
		if err != nil {
			t.Fatal(err)
		}
		if info.Entry != 0x401000 || info.VDSO != 0x7000 || info.MinSigStkSz != 3632 {
			t.Errorf("ptrSize %d: %+v", ptrSize, info)
		}
	}
	if _, err := ParseAuxv(encodeAuxv(8, _AT_ENTRY)[:8], 8); err == nil {
		t.Errorf("truncated auxv accepted")
	}
	if _, err := ParseAuxv(encodeAuxv(8, _AT_ENTRY, 1), 2); err == nil {
		t.Errorf("bad pointer size accepted")
	}
}
