package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/linutil"
)

func TestLoadDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	c, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if c.DefaultABI != "" || c.UnknownSyscall != "" || c.RecordTargets != nil {
		t.Errorf("default config not empty: %#v", c)
	}
	buf, err := os.ReadFile(filepath.Join(dir, "tdep", "config.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(buf), "# unknown-syscall: skip") {
		t.Errorf("default config file not written:\n%s", buf)
	}
	if abi, err := c.ABI(); err != nil || abi != linutil.ABINative {
		t.Errorf("default ABI %v %v", abi, err)
	}
}

func TestSaveConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	n := 8
	in := &Config{DefaultABI: "x32", UnknownSyscall: "abort", RecordTargets: &n, XCR0Override: "x87|sse|avx"}
	if err := createConfigPath(); err != nil {
		t.Fatal(err)
	}
	if err := SaveConfig(in); err != nil {
		t.Fatal(err)
	}
	out, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if out.DefaultABI != "x32" || out.UnknownSyscall != "abort" || out.RecordTargets == nil || *out.RecordTargets != 8 {
		t.Fatalf("loaded %#v", out)
	}
	if abi, err := out.ABI(); err != nil || abi != linutil.ABICompat {
		t.Errorf("ABI %v %v", abi, err)
	}
	xcr0, ok, err := out.XCR0()
	if err != nil || !ok || xcr0 != amd64util.XstateLegacy|amd64util.XstateAVX {
		t.Errorf("XCR0 %v %v %v", xcr0, ok, err)
	}
}

func TestBadConfig(t *testing.T) {
	c := &Config{DefaultABI: "i386", XCR0Override: "avx|sse9"}
	if _, err := c.ABI(); err == nil {
		t.Errorf("bad ABI accepted")
	}
	if _, _, err := c.XCR0(); err == nil {
		t.Errorf("bad xcr0 accepted")
	}
	var nilConfig *Config
	if _, ok, err := nilConfig.XCR0(); ok || err != nil {
		t.Errorf("nil config has an override")
	}
}
