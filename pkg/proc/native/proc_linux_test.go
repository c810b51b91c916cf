//go:build linux && amd64

package native

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"os/exec"
	"testing"

	sys "golang.org/x/sys/unix"

	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/proc/native/cpuid"
	"github.com/go-delve/tdep/pkg/sysno"
)

func TestExecutableABI(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	abi, err := ExecutableABI(exe)
	if err != nil {
		t.Fatal(err)
	}
	if abi != linutil.ABINative {
		t.Errorf("test executable is %v", abi)
	}
	if _, err := ExecutableABI("/proc/self/status"); err == nil {
		t.Errorf("non ELF file accepted")
	}
}

func TestResolveXCR0(t *testing.T) {
	xsave := make([]byte, 576)
	binary.LittleEndian.PutUint64(xsave[464:], uint64(amd64util.XstateLegacy|amd64util.XstateAVX))

	if xcr0, src := resolveXCR0(xsave, amd64util.XstateAll); xcr0 != amd64util.XstateAll || src != "override" {
		t.Errorf("override: %v %s", xcr0, src)
	}
	if xcr0, src := resolveXCR0(xsave, 0); xcr0 != amd64util.XstateLegacy|amd64util.XstateAVX || src != "xsave" {
		t.Errorf("xsave: %v %s", xcr0, src)
	}
	if xcr0, src := resolveXCR0(nil, 0); xcr0 != cpuid.HostXCR0() || src != "cpuid" {
		t.Errorf("fallback: %v %s", xcr0, src)
	}
}

func TestStatus(t *testing.T) {
	switch s := status(os.Getpid()); s {
	case 'R', 'S':
	default:
		t.Errorf("status of the test process: %q", s)
	}
	if s := status(-1); s != 0 {
		t.Errorf("status of a missing process: %q", s)
	}
}

func TestTraceSyscalls(t *testing.T) {
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not found")
	}
	tgt, err := Launch([]string{path}, Options{})
	if err != nil {
		if errors.Is(err, sys.EPERM) {
			t.Skipf("ptrace not permitted: %v", err)
		}
		t.Fatal(err)
	}
	if tgt.ABI != linutil.ABINative {
		t.Errorf("ABI %v", tgt.ABI)
	}
	if tgt.Desc != linutil.Resolve(tgt.XCR0, tgt.ABI) {
		t.Errorf("description %s for %v", tgt.Desc.Name, tgt.XCR0)
	}
	if tgt.Auxv.Entry == 0 {
		t.Errorf("entry point not found in auxv")
	}

	var events []SyscallEvent
	err = tgt.TraceSyscalls(context.Background(), func(ev SyscallEvent) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !tgt.Exited() {
		t.Errorf("target did not exit")
	}
	if len(events) == 0 {
		t.Fatal("no system calls")
	}
	last := events[len(events)-1]
	if !last.Entry || last.ID != sysno.ExitGroup {
		t.Errorf("last event %v", last)
	}
	for i, ev := range events {
		// recent libcs use calls past the end of the table (prlimit64,
		// rseq), those must be reported as unknown rather than guessed.
		id, ok := linutil.Translate(ev.Raw, tgt.ABI)
		switch {
		case ev.ID == sysno.Invalid && ok:
			t.Errorf("event %d: system call %#x reported unknown but translates to %v", i, ev.Raw, id)
		case ev.ID != sysno.Invalid && ev.ID != id:
			t.Errorf("event %d: system call %#x reported as %v, translates to %v", i, ev.Raw, ev.ID, id)
		}
		if !ev.Entry && (i == 0 || events[i-1].Raw != ev.Raw) {
			t.Errorf("event %d: exit of %v without entry", i, ev)
		}
	}
}

func TestTraceSyscallsCancel(t *testing.T) {
	path, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not found")
	}
	tgt, err := Launch([]string{path, "10"}, Options{Pty: true})
	if err != nil {
		if errors.Is(err, sys.EPERM) {
			t.Skipf("ptrace not permitted: %v", err)
		}
		t.Fatal(err)
	}
	if tgt.Pty == nil {
		t.Errorf("no pty")
	}
	ctx, cancel := context.WithCancel(context.Background())
	err = tgt.TraceSyscalls(ctx, func(ev SyscallEvent) error {
		if ev.Entry && (ev.ID == sysno.Nanosleep || ev.ID == sysno.ClockNanosleep) {
			cancel()
		}
		return nil
	})
	if err != context.Canceled {
		t.Errorf("TraceSyscalls returned %v", err)
	}
	if err := tgt.Detach(true); err != nil {
		t.Errorf("Detach: %v", err)
	}
}
