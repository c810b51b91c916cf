//go:build !linux || !amd64

package native

import (
	"context"
	"os"

	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/sysno"
)

// Options configures how a target is launched or attached to.
type Options struct {
	XCR0 amd64util.XstateFeatures
	Pty  bool
	Dir  string
}

// Target is a process traced through ptrace.
type Target struct {
	Pid        int
	Path       string
	ABI        linutil.ABIMode
	XCR0       amd64util.XstateFeatures
	XCR0Source string
	Desc       *linutil.Description
	Auxv       linutil.AuxvInfo
	Pty        *os.File
}

// SyscallEvent is a system call entry or exit of a thread of a target.
type SyscallEvent struct {
	Tid     int
	Entry   bool
	Raw     uint64
	ID      sysno.ID
	ABI     linutil.ABIMode
	Ret     int64
	Restart bool
}

// Launch returns ErrNativeBackendDisabled.
func Launch(_ []string, _ Options) (*Target, error) {
	return nil, ErrNativeBackendDisabled
}

// Attach returns ErrNativeBackendDisabled.
func Attach(_ int, _ Options) (*Target, error) {
	return nil, ErrNativeBackendDisabled
}

// ExecutableABI returns ErrNativeBackendDisabled.
func ExecutableABI(_ string) (linutil.ABIMode, error) {
	return 0, ErrNativeBackendDisabled
}

func (t *Target) TraceSyscalls(_ context.Context, _ func(SyscallEvent) error) error {
	return ErrNativeBackendDisabled
}

func (t *Target) Registers(_ int) (*linutil.AMD64PtraceRegs, error) {
	return nil, ErrNativeBackendDisabled
}

func (t *Target) CancelRestart(_ int) error {
	return ErrNativeBackendDisabled
}

func (t *Target) Detach(_ bool) error {
	return ErrNativeBackendDisabled
}

func (t *Target) Exited() bool {
	return true
}

func (ev SyscallEvent) String() string {
	return ev.ID.String()
}
