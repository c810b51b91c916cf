//go:build linux && amd64

package native

import (
	"os"
	"runtime"

	"github.com/go-delve/tdep/pkg/logflags"
	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/linutil"
)

// Options configures how a target is launched or attached to.
type Options struct {
	// XCR0 replaces the XSAVE feature mask read from the target when it is
	// not zero.
	XCR0 amd64util.XstateFeatures
	// Pty runs a launched target on a new pseudo-terminal, available as
	// Target.Pty.
	Pty bool
	// Dir is the working directory of a launched target.
	Dir string
}

// Target is a process traced through ptrace.
type Target struct {
	Pid  int
	Path string // executable, as found in /proc/<pid>/exe
	ABI  linutil.ABIMode
	// XCR0 is the XSAVE feature mask of the target and XCR0Source tells
	// where it came from ("xsave", "cpuid" or "override").
	XCR0       amd64util.XstateFeatures
	XCR0Source string
	Desc       *linutil.Description
	Auxv       linutil.AuxvInfo

	// Pty is the controlling side of the terminal of a target launched
	// with Options.Pty, nil otherwise.
	Pty *os.File

	dbp *nativeProcess
}

type nativeProcess struct {
	pid     int
	threads map[int]bool // thread id -> currently inside a system call

	// ptrace must be called from the thread that attached, every ptrace
	// call goes through execPtraceFunc.
	ptraceChan     chan func()
	ptraceDoneChan chan interface{}

	childProcess     bool // this process was launched, not attached to
	exited, detached bool
}

// newProcess returns an initialized nativeProcess struct. Before returning,
// it will also launch a goroutine in order to handle ptrace(2)
// functions. For more information, see the documentation on
// `handlePtraceFuncs`.
func newProcess(pid int) *nativeProcess {
	dbp := &nativeProcess{
		pid:            pid,
		threads:        make(map[int]bool),
		ptraceChan:     make(chan func()),
		ptraceDoneChan: make(chan interface{}),
	}
	go dbp.handlePtraceFuncs()
	return dbp
}

func (dbp *nativeProcess) handlePtraceFuncs() {
	// We must ensure here that we are running on the same thread during
	// while invoking the ptrace(2) syscall. This is due to the fact that ptrace(2) expects
	// all commands after PTRACE_ATTACH to come from the same thread.
	runtime.LockOSThread()

	for fn := range dbp.ptraceChan {
		fn()
		dbp.ptraceDoneChan <- nil
	}
}

func (dbp *nativeProcess) execPtraceFunc(fn func()) {
	dbp.ptraceChan <- fn
	<-dbp.ptraceDoneChan
}

func (dbp *nativeProcess) postExit() {
	if dbp.exited {
		return
	}
	dbp.exited = true
	close(dbp.ptraceChan)
	close(dbp.ptraceDoneChan)
}

// Detach from the target, killing it if kill is true.
func (t *Target) Detach(kill bool) (err error) {
	dbp := t.dbp
	if dbp.exited {
		return nil
	}
	if kill && dbp.childProcess {
		err = killProcess(dbp.pid)
		if err == nil {
			_, _, err = dbp.wait(dbp.pid, 0)
		}
		dbp.postExit()
		t.closePty()
		return err
	}
	dbp.execPtraceFunc(func() {
		err = dbp.detach(kill)
		if err != nil {
			return
		}
		if kill {
			err = killProcess(dbp.pid)
		}
	})
	dbp.detached = true
	dbp.postExit()
	t.closePty()
	logflags.NativeLogger().Debugf("detached from %d", dbp.pid)
	return
}

// Exited reports whether the target has exited.
func (t *Target) Exited() bool {
	return t.dbp.exited && !t.dbp.detached
}

func (t *Target) closePty() {
	if t.Pty != nil {
		t.Pty.Close()
		t.Pty = nil
	}
}
