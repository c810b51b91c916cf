package terminal

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-delve/tdep/pkg/config"
	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/ebpfcount"
	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/proc/native"
	"github.com/go-delve/tdep/pkg/sysno"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestUseColor(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	for _, tc := range []struct {
		mode string
		want bool
	}{{"always", true}, {"never", false}, {"auto", false}, {"", false}} {
		got, err := useColor(f, tc.mode)
		if err != nil || got != tc.want {
			t.Errorf("useColor(%q) = %v, %v", tc.mode, got, err)
		}
	}
	if _, err := useColor(f, "sometimes"); err == nil {
		t.Errorf("bad color mode accepted")
	}
}

func TestPaint(t *testing.T) {
	out := NewPlainOutput(new(bytes.Buffer))
	if s := out.Paint(NameStyle, "read"); s != "read" {
		t.Errorf("plain output painted %q", s)
	}
	out.colorEscapes = defaultColorEscapes
	if s := out.Paint(NameStyle, "read"); s != "\x1b[32mread\x1b[0m" {
		t.Errorf("got %q", s)
	}
	if s := out.Paint(NormalStyle, "read"); s != "read" {
		t.Errorf("normal style painted %q", s)
	}
}

func TestTranscript(t *testing.T) {
	var term, transcript bytes.Buffer
	out := NewPlainOutput(&term)
	out.TranscribeTo(nopCloser{&transcript})
	out.Echo(">>> ")
	out.Write([]byte("hello\n"))
	if err := out.CloseTranscript(); err != nil {
		t.Fatal(err)
	}
	out.Write([]byte("after\n"))
	if term.String() != "hello\nafter\n" {
		t.Errorf("terminal output %q", term.String())
	}
	if transcript.String() != ">>> hello\n" {
		t.Errorf("transcript %q", transcript.String())
	}
}

type failingCloser struct{}

func (failingCloser) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (failingCloser) Close() error { return nil }

func TestTranscriptWriteCount(t *testing.T) {
	var term bytes.Buffer
	out := NewPlainOutput(&term)
	out.TranscribeTo(failingCloser{})
	defer out.CloseTranscript()
	// larger than the transcript buffer, so the failing write is not deferred
	p := bytes.Repeat([]byte("x"), 8192)
	n, err := out.Write(p)
	if n != len(p) {
		t.Errorf("Write returned %d, terminal received %d", n, term.Len())
	}
	if err == nil {
		t.Errorf("transcript error not reported")
	}
}

func TestConcurrentWrite(t *testing.T) {
	const (
		writers = 8
		lines   = 200
		line    = "[1234] getpid() = 1234\n"
	)
	var buf bytes.Buffer
	out := NewPlainOutput(&buf)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < lines; j++ {
				out.Write([]byte(line))
			}
		}()
	}
	wg.Wait()
	got := strings.SplitAfter(buf.String(), "\n")
	got = got[:len(got)-1]
	if len(got) != writers*lines {
		t.Fatalf("got %d lines, want %d", len(got), writers*lines)
	}
	for i, l := range got {
		if l != line {
			t.Fatalf("line %d mangled: %q", i, l)
		}
	}
}

func TestPrintTranslation(t *testing.T) {
	var buf bytes.Buffer
	out := NewPlainOutput(&buf)
	out.PrintTranslation(0, linutil.ABINative)
	out.PrintTranslation(linutil.AMD64X32SyscallBit+512, linutil.ABICompat)
	out.PrintTranslation(13, linutil.ABICompat)
	want := "amd64 0x0: read\nx32 0x40000200: rt_sigaction\nx32 0xd: unknown system call\n"
	if buf.String() != want {
		t.Errorf("got %q\nwant %q", buf.String(), want)
	}
}

func TestPrintSyscallTable(t *testing.T) {
	var buf bytes.Buffer
	NewPlainOutput(&buf).PrintSyscallTable(linutil.ABICompat)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1+len(linutil.SyscallTable(linutil.ABICompat)) {
		t.Fatalf("%d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "0x40000000") || !strings.HasSuffix(lines[1], "read") {
		t.Errorf("first entry %q", lines[1])
	}
}

func TestPrintDescription(t *testing.T) {
	var buf bytes.Buffer
	desc := linutil.Resolve(amd64util.XstateLegacy, linutil.ABINative)
	NewPlainOutput(&buf).PrintDescription(desc, true)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2+desc.NumRegs() {
		t.Fatalf("%d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "amd64-linux (amd64, 60 registers") {
		t.Errorf("header %q", lines[0])
	}
	if last := lines[len(lines)-1]; !strings.Contains(last, "orig_rax") || !strings.Contains(last, linutil.FeatureLinux) {
		t.Errorf("last register %q", last)
	}
}

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	out := NewPlainOutput(&buf)
	out.PrintEvent(native.SyscallEvent{Tid: 7, Entry: true, Raw: 35, ID: sysno.Nanosleep})
	out.PrintEvent(native.SyscallEvent{Tid: 7, Raw: 35, ID: sysno.Nanosleep, Ret: -4, Restart: true})
	out.PrintEvent(native.SyscallEvent{Tid: 7, Raw: 999, Ret: -38})
	want := "[7] nanosleep(...)\n[7] nanosleep = -4 (restart)\n[7] syscall_0x3e7 = -38\n"
	if buf.String() != want {
		t.Errorf("got %q\nwant %q", buf.String(), want)
	}
}

func TestPrintCounts(t *testing.T) {
	var buf bytes.Buffer
	NewPlainOutput(&buf).PrintCounts([]ebpfcount.Count{{Raw: 1, ABI: linutil.ABINative, ID: sysno.Write, N: 10}})
	if !strings.Contains(buf.String(), "10") || !strings.Contains(buf.String(), "write") {
		t.Errorf("got %q", buf.String())
	}
}

func TestConfigure(t *testing.T) {
	conf := &config.Config{}
	if err := ConfigureSet(conf, "default-abi", "x32"); err != nil {
		t.Fatal(err)
	}
	if conf.DefaultABI != "x32" {
		t.Errorf("default-abi = %q", conf.DefaultABI)
	}
	if err := ConfigureSet(conf, "record-targets", "16"); err != nil {
		t.Fatal(err)
	}
	if conf.RecordTargets == nil || *conf.RecordTargets != 16 {
		t.Errorf("record-targets = %v", conf.RecordTargets)
	}
	if err := ConfigureSet(conf, "default-abi", "i386"); err == nil {
		t.Errorf("invalid abi accepted")
	}
	if conf.DefaultABI != "x32" {
		t.Errorf("invalid value not rolled back: %q", conf.DefaultABI)
	}
	if err := ConfigureSet(conf, "nonexistent", "1"); err == nil {
		t.Errorf("unknown key accepted")
	}
	if err := ConfigureSet(conf, "record-targets", ""); err != nil || conf.RecordTargets != nil {
		t.Errorf("reset failed: %v %v", conf.RecordTargets, err)
	}

	var buf bytes.Buffer
	if err := ConfigureList(&buf, conf); err != nil {
		t.Fatal(err)
	}
	values := map[string]string{}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			values[fields[0]] = strings.Join(fields[1:], " ")
		}
	}
	if values["default-abi"] != "x32" {
		t.Errorf("list output %q", buf.String())
	}
	if values["record-targets"] != "<not defined>" {
		t.Errorf("list output %q", buf.String())
	}
}
