//go:build linux && amd64

package native

import (
	"context"
	"fmt"

	sys "golang.org/x/sys/unix"

	"github.com/go-delve/tdep/pkg/logflags"
	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/sysno"
)

// Kernel internal error numbers returned by an interrupted system call
// that will be restarted (include/linux/errno.h).
const (
	_ERESTARTSYS           = 512
	_ERESTARTNOINTR        = 513
	_ERESTARTNOHAND        = 514
	_ERESTART_RESTARTBLOCK = 516
)

// SyscallEvent is a system call entry or exit of a thread of a target.
type SyscallEvent struct {
	Tid   int
	Entry bool // false for exits
	Raw   uint64
	// ID is the canonical identifier of Raw, Invalid if Raw is not a
	// system call of the target's personality.
	ID  sysno.ID
	ABI linutil.ABIMode
	// Ret is the return value, only set on exit.
	Ret int64
	// Restart is set on exit if the kernel will restart the system call
	// after the thread handles a signal.
	Restart bool
}

func (ev SyscallEvent) String() string {
	name := ev.ID.String()
	if ev.ID == sysno.Invalid {
		name = fmt.Sprintf("syscall_%#x", ev.Raw)
	}
	if ev.Entry {
		return fmt.Sprintf("[%d] %s(...)", ev.Tid, name)
	}
	s := fmt.Sprintf("[%d] %s = %d", ev.Tid, name, ev.Ret)
	if ev.Restart {
		s += " (restart)"
	}
	return s
}

// TraceSyscalls resumes the target and calls fn for every system call
// entry and exit of its threads, until the target exits, fn returns an
// error or ctx is cancelled.
// It returns nil when the target exits.
func (t *Target) TraceSyscalls(ctx context.Context, fn func(SyscallEvent) error) error {
	dbp := t.dbp
	if dbp.exited {
		return fmt.Errorf("process %d has exited", t.Pid)
	}
	log := logflags.NativeLogger().WithField("pid", t.Pid)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// wake up wait4
			_ = sys.Kill(t.Pid, sys.SIGSTOP)
		case <-stop:
		}
	}()

	resume := func(tid, sig int) error {
		var err error
		dbp.execPtraceFunc(func() { err = ptraceSyscall(tid, sig) })
		if err == sys.ESRCH {
			// thread exited while stopped
			return nil
		}
		return err
	}

	for tid := range dbp.threads {
		if err := resume(tid, 0); err != nil {
			return err
		}
	}

	// threads created by the target that have not reported their initial
	// SIGSTOP yet
	newThreads := make(map[int]bool)

	for {
		wpid, status, err := dbp.wait(-1, 0)
		if err != nil {
			if err == sys.EINTR {
				continue
			}
			return err
		}
		if status == nil {
			continue
		}

		switch {
		case status.Exited() || status.Signaled():
			delete(dbp.threads, wpid)
			if wpid == t.Pid {
				log.Debugf("target exited (%v)", *status)
				dbp.postExit()
				t.closePty()
				return nil
			}
			continue

		case !status.Stopped():
			continue
		}

		if _, known := dbp.threads[wpid]; !known {
			dbp.threads[wpid] = false
			newThreads[wpid] = true
		}

		sig := status.StopSignal()
		switch {
		case sig == sys.SIGTRAP|0x80:
			var regs *linutil.AMD64PtraceRegs
			dbp.execPtraceFunc(func() { regs, err = ptraceGetRegs(wpid) })
			if err != nil {
				return fmt.Errorf("could not read registers of %d: %v", wpid, err)
			}
			ev := t.syscallEvent(wpid, regs)
			if ev.ID == sysno.Invalid {
				logflags.SyscallsLogger().Debugf("%d: unknown %v system call %#x", wpid, t.ABI, ev.Raw)
			}
			if err := fn(ev); err != nil {
				return err
			}
			if err := resume(wpid, 0); err != nil {
				return err
			}

		case sig == sys.SIGTRAP && status.TrapCause() == sys.PTRACE_EVENT_CLONE:
			var newtid uint
			dbp.execPtraceFunc(func() { newtid, err = sys.PtraceGetEventMsg(wpid) })
			if err == nil {
				log.Debugf("new thread %d", newtid)
				if _, known := dbp.threads[int(newtid)]; !known {
					dbp.threads[int(newtid)] = false
					newThreads[int(newtid)] = true
				}
			}
			if err := resume(wpid, 0); err != nil {
				return err
			}

		case sig == sys.SIGSTOP && ctx.Err() != nil:
			return ctx.Err()

		case sig == sys.SIGSTOP && newThreads[wpid]:
			delete(newThreads, wpid)
			if err := resume(wpid, 0); err != nil {
				return err
			}

		default:
			if err := resume(wpid, int(sig)); err != nil {
				return err
			}
		}
	}
}

func (t *Target) syscallEvent(tid int, regs *linutil.AMD64PtraceRegs) SyscallEvent {
	dbp := t.dbp
	entry := !dbp.threads[tid]
	dbp.threads[tid] = entry

	ev := SyscallEvent{Tid: tid, Entry: entry, Raw: regs.SyscallNumber(), ABI: t.ABI}
	ev.ID, _ = linutil.Translate(ev.Raw, t.ABI)
	if !entry {
		ev.Ret = int64(regs.Rax)
		switch -ev.Ret {
		case _ERESTARTSYS, _ERESTARTNOINTR, _ERESTARTNOHAND, _ERESTART_RESTARTBLOCK:
			_, ev.Restart = regs.RestartSyscall()
		}
	}
	return ev
}

// Registers returns the general purpose registers of thread tid, which
// must be stopped.
func (t *Target) Registers(tid int) (*linutil.AMD64PtraceRegs, error) {
	if t.dbp.exited {
		return nil, fmt.Errorf("process %d has exited", t.Pid)
	}
	var regs *linutil.AMD64PtraceRegs
	var err error
	t.dbp.execPtraceFunc(func() { regs, err = ptraceGetRegs(tid) })
	return regs, err
}

// CancelRestart stops the kernel from restarting the system call thread
// tid was executing when it was interrupted by a signal.
func (t *Target) CancelRestart(tid int) error {
	regs, err := t.Registers(tid)
	if err != nil {
		return err
	}
	if _, pending := regs.RestartSyscall(); !pending {
		return nil
	}
	regs.CancelRestart()
	t.dbp.execPtraceFunc(func() { err = ptraceSetRegs(tid, regs) })
	return err
}
