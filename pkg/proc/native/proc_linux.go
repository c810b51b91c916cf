//go:build linux && amd64

package native

import (
	"bufio"
	"debug/elf"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	sys "golang.org/x/sys/unix"

	"github.com/go-delve/tdep/pkg/logflags"
	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/proc/native/cpuid"
)

// Process statuses
const (
	statusZombie = 'Z'

	// Kernel 2.6 has TraceStop as T, on modern kernels it is a job control
	// stop.
	statusStopped = 'T'
)

var errI386 = errors.New("i386 processes are not supported")

// Launch creates and begins tracing a new process. First entry in
// `cmd` is the program to run, and then rest are the arguments
// to be supplied to that process. The process is stopped after execve.
func Launch(cmd []string, opts Options) (*Target, error) {
	if len(cmd) == 0 {
		return nil, errors.New("no command to launch")
	}
	var (
		process *exec.Cmd
		ptmx    *os.File
		err     error
	)

	dbp := newProcess(0)
	dbp.execPtraceFunc(func() {
		process = exec.Command(cmd[0])
		process.Args = cmd
		process.Dir = opts.Dir
		process.SysProcAttr = &syscall.SysProcAttr{
			Ptrace:  true,
			Setpgid: !opts.Pty,
		}
		if opts.Pty {
			var tty *os.File
			ptmx, tty, err = pty.Open()
			if err != nil {
				return
			}
			defer tty.Close()
			process.Stdin, process.Stdout, process.Stderr = tty, tty, tty
			process.SysProcAttr.Setsid = true
			process.SysProcAttr.Setctty = true
		} else {
			process.Stdin, process.Stdout, process.Stderr = os.Stdin, os.Stdout, os.Stderr
		}
		err = process.Start()
	})
	if err != nil {
		if ptmx != nil {
			ptmx.Close()
		}
		dbp.postExit()
		return nil, err
	}
	dbp.pid = process.Process.Pid
	dbp.childProcess = true
	t := &Target{Pid: dbp.pid, Pty: ptmx, dbp: dbp}
	_, _, err = dbp.wait(dbp.pid, 0)
	if err != nil {
		_ = t.Detach(true)
		return nil, fmt.Errorf("waiting for target execve failed: %s", err)
	}
	if err := t.initialize(opts, sys.PTRACE_O_EXITKILL); err != nil {
		_ = t.Detach(true)
		return nil, err
	}
	return t, nil
}

// Attach to an existing process with the given PID.
func Attach(pid int, opts Options) (*Target, error) {
	dbp := newProcess(pid)

	var err error
	dbp.execPtraceFunc(func() { err = ptraceAttach(dbp.pid) })
	if err != nil {
		dbp.postExit()
		return nil, err
	}
	dbp.threads[pid] = false
	t := &Target{Pid: pid, dbp: dbp}
	_, _, err = dbp.wait(dbp.pid, 0)
	if err != nil {
		_ = t.Detach(false)
		return nil, err
	}

	if err := t.initialize(opts, 0); err != nil {
		_ = t.Detach(false)
		return nil, err
	}
	return t, nil
}

// initialize determines the personality and the register description of a
// stopped target.
func (t *Target) initialize(opts Options, options int) error {
	log := logflags.NativeLogger().WithField("pid", t.Pid)
	dbp := t.dbp
	dbp.threads[t.Pid] = false

	var err error
	dbp.execPtraceFunc(func() {
		err = ptraceSetOptions(t.Pid, sys.PTRACE_O_TRACESYSGOOD|sys.PTRACE_O_TRACECLONE|options)
	})
	if err != nil {
		return fmt.Errorf("could not set ptrace options: %v", err)
	}

	t.Path = findExecutable("", t.Pid)
	t.ABI, err = executableABI(t.Path)
	if err != nil {
		return err
	}

	var xsave []byte
	dbp.execPtraceFunc(func() { xsave, err = ptraceGetXsave(t.Pid) })
	if err != nil {
		return fmt.Errorf("could not read xstate: %v", err)
	}
	t.XCR0, t.XCR0Source = resolveXCR0(xsave, opts.XCR0)
	t.Desc = linutil.Resolve(t.XCR0, t.ABI)

	if auxv, err := os.ReadFile(fmt.Sprintf("/proc/%d/auxv", t.Pid)); err == nil {
		t.Auxv, err = linutil.ParseAuxv(auxv, t.Desc.PtrSize)
		if err != nil {
			log.Warnf("could not parse auxiliary vector: %v", err)
		}
	}

	logflags.TdescLogger().WithFields(logflags.Fields{"pid": t.Pid, "abi": t.ABI.String()}).Debugf("xcr0 %#x (%s, from %s) -> %s, %d registers", uint64(t.XCR0), t.XCR0, t.XCR0Source, t.Desc.Name, t.Desc.NumRegs())
	return nil
}

// resolveXCR0 picks the XSAVE feature mask of a target: override if set,
// then the copy the kernel keeps in the XSAVE area, then the host's.
func resolveXCR0(xsave []byte, override amd64util.XstateFeatures) (amd64util.XstateFeatures, string) {
	if override != 0 {
		return override, "override"
	}
	if xcr0, ok := amd64util.XCR0FromXsave(xsave); ok {
		return xcr0, "xsave"
	}
	return cpuid.HostXCR0(), "cpuid"
}

// ExecutableABI returns the personality a process running the executable
// at path uses.
func ExecutableABI(path string) (linutil.ABIMode, error) {
	return executableABI(path)
}

func executableABI(path string) (linutil.ABIMode, error) {
	f, err := elf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open executable: %v", err)
	}
	defer f.Close()
	switch {
	case f.Machine == elf.EM_X86_64 && f.Class == elf.ELFCLASS64:
		return linutil.ABINative, nil
	case f.Machine == elf.EM_X86_64 && f.Class == elf.ELFCLASS32:
		return linutil.ABICompat, nil
	case f.Machine == elf.EM_386:
		return 0, errI386
	}
	return 0, fmt.Errorf("unsupported executable %s (%v %v)", path, f.Class, f.Machine)
}

func findExecutable(path string, pid int) string {
	if path == "" {
		path = fmt.Sprintf("/proc/%d/exe", pid)
	}
	return path
}

func status(pid int) rune {
	f, err := os.Open(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return '\000'
	}
	defer f.Close()
	rd := bufio.NewReader(f)

	// The second field of /proc/pid/stat is the name of the task in
	// parentheses, it can contain both spaces and parentheses. The state
	// follows the last closing parenthesis.
	line, _ := rd.ReadString('\n')
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] == ')' {
			if i+2 < len(line) {
				return rune(line[i+2])
			}
			break
		}
	}
	return '\000'
}

func (dbp *nativeProcess) wait(pid, options int) (int, *sys.WaitStatus, error) {
	var s sys.WaitStatus
	if (dbp == nil) || (pid != dbp.pid) || (options != 0) {
		wpid, err := sys.Wait4(pid, &s, sys.WALL|options, nil)
		return wpid, &s, err
	}
	// If we call wait4/waitpid on a thread that is the leader of its group,
	// with options == 0, while ptracing and the thread leader has exited leaving
	// zombies of its own then waitpid hangs forever this is apparently intended
	// behaviour in the linux kernel because it's just so convenient.
	// Therefore we call wait4 in a loop with WNOHANG, sleeping a while between
	// calls and exiting when either wait4 succeeds or we find out that the thread
	// has become a zombie.
	// References:
	// https://sourceware.org/bugzilla/show_bug.cgi?id=12702
	// https://sourceware.org/bugzilla/show_bug.cgi?id=10095
	for {
		wpid, err := sys.Wait4(pid, &s, sys.WNOHANG|sys.WALL|options, nil)
		if err != nil {
			return 0, nil, err
		}
		if wpid != 0 {
			return wpid, &s, err
		}
		if status(pid) == statusZombie {
			return pid, nil, nil
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func (dbp *nativeProcess) detach(kill bool) error {
	for threadID := range dbp.threads {
		err := ptraceDetach(threadID, 0)
		if err != nil && err != sys.ESRCH {
			return err
		}
	}
	if kill {
		return nil
	}
	// For some reason the process will sometimes enter stopped state after a
	// detach, this doesn't happen immediately either.
	// We have to wait a bit here, then check if the main thread is stopped and
	// SIGCONT it if it is.
	time.Sleep(50 * time.Millisecond)
	if s := status(dbp.pid); s == statusStopped {
		_ = sys.Kill(dbp.pid, sys.SIGCONT)
	}
	return nil
}

func killProcess(pid int) error {
	return sys.Kill(pid, sys.SIGKILL)
}
