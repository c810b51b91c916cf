package record

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/sysno"
)

func newRecorder(t *testing.T, cfg Config) *Recorder {
	r, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRecordNative(t *testing.T) {
	r := newRecorder(t, Config{})
	desc := r.Attach(1, linutil.ABINative, amd64util.XstateLegacy|amd64util.XstateAVX)
	if desc.Name != "amd64-avx-linux" {
		t.Errorf("description %s", desc.Name)
	}
	if _, err := r.SyscallEntry(1, 9); err != nil {
		t.Fatal(err)
	}
	if _, err := r.SyscallExit(1, 9, 0x7f0000000000); err != nil {
		t.Fatal(err)
	}
	e, err := r.SyscallEntry(1, 134)
	if err != nil || e.ID != sysno.Invalid {
		t.Fatalf("unknown syscall under skip policy: %v %v", e, err)
	}
	log, err := r.Log(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 || log[0].ID != sysno.Mmap || log[0].Exit || log[1].ID != sysno.Mmap || !log[1].Exit || log[1].Seq != 1 {
		t.Errorf("log %v", log)
	}
	if recorded, skipped, _ := r.Stats(1); recorded != 2 || skipped != 1 {
		t.Errorf("stats %d %d", recorded, skipped)
	}
}

func TestRecordCompat(t *testing.T) {
	r := newRecorder(t, Config{Policy: PolicyAbort})
	desc := r.Attach(2, linutil.ABICompat, amd64util.XstateAll)
	if desc.Name != "x32-avx-avx512-linux" {
		t.Errorf("description %s", desc.Name)
	}
	e, err := r.SyscallEntry(2, linutil.AMD64X32SyscallBit+512)
	if err != nil || e.ID != sysno.RtSigaction {
		t.Fatalf("%v %v", e, err)
	}
	_, err = r.SyscallEntry(2, 13)
	var unknown *UnknownSyscallError
	if !errors.As(err, &unknown) || unknown.Raw != 13 || unknown.ABI != linutil.ABICompat || unknown.Target != 2 {
		t.Fatalf("expected UnknownSyscallError, got %v", err)
	}
	if log, _ := r.Log(2); len(log) != 1 {
		t.Errorf("log %v", log)
	}
}

func TestNotAttached(t *testing.T) {
	r := newRecorder(t, Config{})
	if _, err := r.SyscallEntry(3, 0); !errors.Is(err, ErrNotAttached) {
		t.Errorf("got %v", err)
	}
	r.Attach(3, linutil.ABINative, 0)
	if !r.Detach(3) {
		t.Errorf("Detach returned false")
	}
	if r.Detach(3) {
		t.Errorf("second Detach returned true")
	}
	if _, err := r.Log(3); !errors.Is(err, ErrNotAttached) {
		t.Errorf("got %v", err)
	}
}

func TestEviction(t *testing.T) {
	r := newRecorder(t, Config{MaxTargets: 2})
	r.Attach(1, linutil.ABINative, 0)
	r.Attach(2, linutil.ABINative, 0)
	if _, err := r.SyscallEntry(1, 0); err != nil {
		t.Fatal(err)
	}
	r.Attach(3, linutil.ABINative, 0)
	if _, err := r.Log(2); !errors.Is(err, ErrNotAttached) {
		t.Errorf("least recently used target not evicted: %v", err)
	}
	if _, err := r.Log(1); err != nil {
		t.Errorf("target 1 evicted: %v", err)
	}
}

func TestConcurrentRecording(t *testing.T) {
	r := newRecorder(t, Config{})
	const n = 8
	var wg sync.WaitGroup
	for id := 0; id < n; id++ {
		r.Attach(id, linutil.ABINative, amd64util.XstateAll)
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				r.SyscallEntry(id, 39)
				r.SyscallExit(id, 39, int64(id))
			}
		}(id)
	}
	wg.Wait()
	for id := 0; id < n; id++ {
		log, err := r.Log(id)
		if err != nil {
			t.Fatal(err)
		}
		if len(log) != 200 {
			t.Errorf("target %d: %d entries", id, len(log))
		}
		for i, e := range log {
			if e.Seq != i || e.ID != sysno.Getpid {
				t.Errorf("target %d: entry %d is %v", id, i, e)
				break
			}
		}
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": PolicySkip, "skip": PolicySkip, "ABORT": PolicyAbort} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("ignore"); err == nil {
		t.Errorf("bad policy accepted")
	}
}
