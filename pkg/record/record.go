// Package record normalizes the system calls of traced processes into
// per-process logs of canonical system call identifiers.
package record

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/go-delve/tdep/pkg/logflags"
	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/sysno"
)

// Policy is what the recorder does with a system call number that has no
// canonical identifier in the personality of the target.
type Policy uint8

const (
	// PolicySkip leaves the system call out of the log.
	PolicySkip Policy = iota
	// PolicyAbort returns an *UnknownSyscallError for the system call.
	PolicyAbort
)

func (p Policy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyAbort:
		return "abort"
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// ParsePolicy parses "skip" or "abort". The empty string is PolicySkip.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return PolicySkip, nil
	case "abort":
		return PolicyAbort, nil
	}
	return 0, fmt.Errorf("unknown unknown-syscall policy %q (must be skip or abort)", s)
}

// DefaultMaxTargets is the number of targets a recorder keeps state for
// when Config.MaxTargets is zero.
const DefaultMaxTargets = 64

// Config configures a Recorder.
type Config struct {
	Policy Policy
	// MaxTargets is the maximum number of targets the recorder keeps state
	// for, the least recently used target is forgotten first.
	MaxTargets int
}

// ErrNotAttached is returned for targets the recorder does not know,
// either because Attach was never called or because they were evicted.
var ErrNotAttached = errors.New("target not attached")

// UnknownSyscallError is returned under PolicyAbort for a system call
// number that can not be translated.
type UnknownSyscallError struct {
	Target int
	Raw    uint64
	ABI    linutil.ABIMode
}

func (err *UnknownSyscallError) Error() string {
	return fmt.Sprintf("target %d: unknown %s system call %#x", err.Target, err.ABI, err.Raw)
}

// Entry is a recorded system call entry or exit.
type Entry struct {
	Seq  int
	Raw  uint64
	ID   sysno.ID
	Exit bool
	Ret  int64 // only set for exits
}

func (e Entry) String() string {
	if e.Exit {
		return fmt.Sprintf("#%d %s = %d", e.Seq, e.ID, e.Ret)
	}
	return fmt.Sprintf("#%d %s", e.Seq, e.ID)
}

type target struct {
	abi     linutil.ABIMode
	desc    *linutil.Description
	log     []Entry
	seq     int
	skipped int
}

// Recorder keeps the system call logs of a set of targets. It is safe for
// concurrent use.
type Recorder struct {
	mu      sync.Mutex
	policy  Policy
	targets *lru.Cache
}

// New returns a new Recorder.
func New(cfg Config) (*Recorder, error) {
	size := cfg.MaxTargets
	if size == 0 {
		size = DefaultMaxTargets
	}
	targets, err := lru.NewWithEvict(size, func(key, _ interface{}) {
		logflags.RecordLogger().Warnf("target %v evicted", key)
	})
	if err != nil {
		return nil, err
	}
	return &Recorder{policy: cfg.Policy, targets: targets}, nil
}

// Attach starts recording target id, running under the personality mode
// with XSAVE features caps, and returns its register description.
// Attaching an already attached target discards its log.
func (r *Recorder) Attach(id int, mode linutil.ABIMode, caps amd64util.XstateFeatures) *linutil.Description {
	desc := linutil.Resolve(caps, mode)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets.Add(id, &target{abi: mode, desc: desc})
	logflags.RecordLogger().Debugf("target %d attached, %s, %s", id, mode, desc.Name)
	return desc
}

// Detach stops recording target id and returns false if it was not
// attached.
func (r *Recorder) Detach(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.targets.Remove(id)
}

// lookup must be called with r.mu held.
func (r *Recorder) lookup(id int) (*target, error) {
	v, ok := r.targets.Get(id)
	if !ok {
		return nil, fmt.Errorf("target %d: %w", id, ErrNotAttached)
	}
	return v.(*target), nil
}

// SyscallEntry records the entry of target id into the system call with
// raw number raw.
// If raw can not be translated the returned Entry has ID == sysno.Invalid
// and, depending on the policy, either nothing is recorded and the error
// is nil or the error is an *UnknownSyscallError.
func (r *Recorder) SyscallEntry(id int, raw uint64) (Entry, error) {
	return r.record(id, Entry{Raw: raw})
}

// SyscallExit records the exit of target id from the system call with raw
// number raw, returning ret.
func (r *Recorder) SyscallExit(id int, raw uint64, ret int64) (Entry, error) {
	return r.record(id, Entry{Raw: raw, Exit: true, Ret: ret})
}

func (r *Recorder) record(id int, e Entry) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tgt, err := r.lookup(id)
	if err != nil {
		return e, err
	}
	var ok bool
	e.ID, ok = linutil.Translate(e.Raw, tgt.abi)
	if !ok {
		switch r.policy {
		case PolicyAbort:
			return e, &UnknownSyscallError{Target: id, Raw: e.Raw, ABI: tgt.abi}
		default:
			tgt.skipped++
			if logflags.Record() {
				logflags.RecordLogger().Debugf("target %d: skipping unknown %s system call %#x", id, tgt.abi, e.Raw)
			}
			return e, nil
		}
	}
	e.Seq = tgt.seq
	tgt.seq++
	tgt.log = append(tgt.log, e)
	return e, nil
}

// Log returns a copy of the log of target id.
func (r *Recorder) Log(id int) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tgt, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return append([]Entry(nil), tgt.log...), nil
}

// Stats returns the number of recorded and skipped events of target id.
func (r *Recorder) Stats(id int) (recorded, skipped int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tgt, err := r.lookup(id)
	if err != nil {
		return 0, 0, err
	}
	return len(tgt.log), tgt.skipped, nil
}

// Description returns the register description of target id.
func (r *Recorder) Description(id int) (*linutil.Description, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tgt, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return tgt.desc, nil
}
