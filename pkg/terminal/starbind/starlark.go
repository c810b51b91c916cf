// Package starbind exposes the system call tables and the register
// descriptions to starlark scripts.
package starbind

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"

	"github.com/go-delve/tdep/pkg/logflags"
	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/sysno"
)

const (
	translateBuiltinName    = "translate"
	rawNumberBuiltinName    = "raw_number"
	syscallTableBuiltinName = "syscall_table"
	completeBuiltinName     = "complete"
	resolveBuiltinName      = "resolve"
	descriptionBuiltinName  = "description"
	catalogBuiltinName      = "catalog"
	parseXCR0BuiltinName    = "parse_xcr0"
	readFileBuiltinName     = "read_file"
	writeFileBuiltinName    = "write_file"
	helpBuiltinName         = "help"
	tdepContextName         = "tdep_context"
)

func init() {
	resolve.AllowNestedDef = true
	resolve.AllowLambda = true
	resolve.AllowFloat = true
	resolve.AllowSet = true
	resolve.AllowBitwise = true
	resolve.AllowRecursion = true
	resolve.AllowGlobalReassign = true
}

// Env is the environment used to evaluate starlark scripts.
type Env struct {
	env       starlark.StringDict
	doc       map[string]string
	contextMu sync.Mutex
	thread    *starlark.Thread
	cancelfn  context.CancelFunc

	abi linutil.ABIMode
	out EchoWriter
}

type builtinFn func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// New creates a new starlark binding environment. Builtins that take an
// optional abi argument use abi when it is omitted.
func New(out EchoWriter, abi linutil.ABIMode) *Env {
	env := &Env{
		env: starlark.StringDict{},
		doc: map[string]string{},
		abi: abi,
		out: out,
	}

	builtin := func(name, args, descr string, fn builtinFn) {
		env.env[name] = starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := isCancelled(thread); err != nil {
				return starlark.None, err
			}
			v, err := fn(thread, b, args, kwargs)
			return v, decorateError(thread, err)
		})
		env.doc[name] = name + args + "\n\n" + name + " " + descr
	}

	builtin(translateBuiltinName, "(Raw, ABI)", "returns the name of the system call with raw number Raw, or None. ABI is \"amd64\" or \"x32\".",
		func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var raw starlark.Int
			var abi string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "raw", &raw, "abi?", &abi); err != nil {
				return nil, err
			}
			mode, err := unpackABI(abi, env.abi)
			if err != nil {
				return nil, err
			}
			nr, err := unpackUint64("raw", raw)
			if err != nil {
				return nil, err
			}
			id, _ := linutil.Translate(nr, mode)
			return syscallName(id), nil
		})

	builtin(rawNumberBuiltinName, "(Name, ABI)", "returns the raw number of system call Name, or None if it does not exist in ABI.",
		func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name, abi string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "abi?", &abi); err != nil {
				return nil, err
			}
			mode, err := unpackABI(abi, env.abi)
			if err != nil {
				return nil, err
			}
			id, ok := sysno.Lookup(name)
			if !ok {
				return nil, unknownSyscallError(name)
			}
			raw, ok := linutil.RawNumber(id, mode)
			if !ok {
				return starlark.None, nil
			}
			return starlark.MakeUint64(raw), nil
		})

	builtin(syscallTableBuiltinName, "(ABI)", "returns the list of (raw, name) pairs of the system calls of ABI.",
		func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var abi string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "abi?", &abi); err != nil {
				return nil, err
			}
			mode, err := unpackABI(abi, env.abi)
			if err != nil {
				return nil, err
			}
			table := linutil.SyscallTable(mode)
			r := make([]starlark.Value, len(table))
			for i, e := range table {
				r[i] = starlark.Tuple{starlark.MakeUint64(e.Raw), syscallName(e.ID)}
			}
			return starlark.NewList(r), nil
		})

	builtin(completeBuiltinName, "(Prefix)", "returns the names of the system calls starting with Prefix.",
		func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var prefix string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "prefix", &prefix); err != nil {
				return nil, err
			}
			return interfaceToStarlarkValue(syscallNames(sysno.Complete(prefix))), nil
		})

	builtin(resolveBuiltinName, "(XCR0, ABI)", "returns the register description of a target with XSAVE feature mask XCR0.",
		func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var xcr0 starlark.Value
			var abi string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "xcr0", &xcr0, "abi?", &abi); err != nil {
				return nil, err
			}
			mode, err := unpackABI(abi, env.abi)
			if err != nil {
				return nil, err
			}
			caps, err := unpackXCR0(xcr0)
			if err != nil {
				return nil, err
			}
			return descriptionValue(linutil.Resolve(caps, mode)), nil
		})

	builtin(descriptionBuiltinName, "(Name)", "returns the register description called Name, or None.",
		func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name); err != nil {
				return nil, err
			}
			desc, _ := linutil.DescriptionByName(name)
			return descriptionValue(desc), nil
		})

	builtin(catalogBuiltinName, "(ABI)", "returns the names of the register descriptions of ABI, most capable first.",
		func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var abi string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "abi?", &abi); err != nil {
				return nil, err
			}
			mode, err := unpackABI(abi, env.abi)
			if err != nil {
				return nil, err
			}
			var names []string
			for _, desc := range linutil.Catalog(mode) {
				names = append(names, desc.Name)
			}
			return interfaceToStarlarkValue(names), nil
		})

	builtin(parseXCR0BuiltinName, "(Text)", "parses an XSAVE feature mask, either a number or a list of components such as \"x87|sse|avx\".",
		func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var s string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "text", &s); err != nil {
				return nil, err
			}
			xcr0, err := amd64util.ParseXstateFeatures(s)
			if err != nil {
				return nil, err
			}
			return starlark.MakeUint64(uint64(xcr0)), nil
		})

	builtin(readFileBuiltinName, "(Path)", "reads a file.",
		func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var path string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "path", &path); err != nil {
				return nil, err
			}
			buf, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			return starlark.String(string(buf)), nil
		})

	builtin(writeFileBuiltinName, "(Path, Text)", "writes text to the specified file.",
		func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("wrong number of arguments")
			}
			path, ok := args[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("first argument of write_file was not a string")
			}
			text := args[1].String()
			if s, ok := args[1].(starlark.String); ok {
				text = string(s)
			}
			return starlark.None, os.WriteFile(string(path), []byte(text), 0640)
		})

	env.env[helpBuiltinName] = starlark.NewBuiltin(helpBuiltinName, env.help)
	env.doc[helpBuiltinName] = helpBuiltinName + "(Object)\n\n" + helpBuiltinName + " prints help for Object."

	return env
}

func (env *Env) help(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	switch len(args) {
	case 0:
		fmt.Fprintln(env.out, "Available builtins:")
		bins := make([]string, 0, len(env.env))
		for name, value := range env.env {
			if _, ok := value.(*starlark.Builtin); ok {
				bins = append(bins, name)
			}
		}
		sort.Strings(bins)
		for _, bin := range bins {
			fmt.Fprintf(env.out, "\t%s\n", bin)
		}
	case 1:
		switch x := args[0].(type) {
		case *starlark.Builtin:
			if env.doc[x.Name()] != "" {
				fmt.Fprintf(env.out, "%s\n", env.doc[x.Name()])
			} else {
				fmt.Fprintf(env.out, "no help for builtin %s\n", x.Name())
			}
		case *starlark.Function:
			fmt.Fprintf(env.out, "user defined function %s\n", x.Name())
			if doc := x.Doc(); doc != "" {
				fmt.Fprintln(env.out, doc)
			}
		default:
			fmt.Fprintf(env.out, "no help for object of type %T\n", args[0])
		}
	default:
		fmt.Fprintln(env.out, "wrong number of arguments ", len(args))
	}
	return starlark.None, nil
}

func unknownSyscallError(name string) error {
	if sug := sysno.Suggest(name); len(sug) > 0 {
		return fmt.Errorf("unknown system call %q, did you mean %s?", name, strings.Join(syscallNames(sug), ", "))
	}
	return fmt.Errorf("unknown system call %q", name)
}

func syscallNames(ids []sysno.ID) []string {
	r := make([]string, len(ids))
	for i := range ids {
		r[i] = ids[i].String()
	}
	return r
}

func unpackXCR0(v starlark.Value) (amd64util.XstateFeatures, error) {
	switch v := v.(type) {
	case starlark.Int:
		n, err := unpackUint64("xcr0", v)
		return amd64util.XstateFeatures(n), err
	case starlark.String:
		return amd64util.ParseXstateFeatures(string(v))
	}
	return 0, fmt.Errorf("xcr0 must be an int or a string, got %s", v.Type())
}

// Redirect redirects starlark output to out.
func (env *Env) Redirect(out EchoWriter) {
	env.out = out
	if env.thread != nil {
		env.thread.Print = env.printFunc()
	}
}

func (env *Env) printFunc() func(_ *starlark.Thread, msg string) {
	return func(_ *starlark.Thread, msg string) { fmt.Fprintln(env.out, msg) }
}

// Execute executes a script. Path is the name of the file to execute and
// source is the source code to execute.
// Source can be either a []byte, a string or a io.Reader. If source is nil
// Execute will execute the file specified by 'path'.
// After the file is executed if a function named mainFnName exists it will be called, passing args to it.
func (env *Env) Execute(path string, source interface{}, mainFnName string, args []interface{}) (_ starlark.Value, _err error) {
	defer func() {
		err := recover()
		if err == nil {
			return
		}
		_err = fmt.Errorf("panic executing starlark script: %v", err)
		fmt.Fprintf(env.out, "panic executing starlark script: %v\n", err)
		for i := 0; ; i++ {
			pc, file, line, ok := runtime.Caller(i)
			if !ok {
				break
			}
			fname := "<unknown>"
			fn := runtime.FuncForPC(pc)
			if fn != nil {
				fname = fn.Name()
			}
			fmt.Fprintf(env.out, "%s\n\tin %s:%d\n", fname, file, line)
		}
	}()

	logflags.ScriptLogger().Debugf("executing %s", path)

	thread := env.newThread()
	globals, err := starlark.ExecFile(thread, path, source, env.env)
	if err != nil {
		return starlark.None, err
	}

	env.exportGlobals(globals)

	return env.callMain(thread, globals, mainFnName, args)
}

// exportGlobals saves globals with a name starting with a capital letter
// into the environment.
func (env *Env) exportGlobals(globals starlark.StringDict) {
	for name, val := range globals {
		if name[0] >= 'A' && name[0] <= 'Z' {
			env.env[name] = val
		}
	}
}

// Cancel cancels the execution of a currently running script or function.
func (env *Env) Cancel() {
	if env == nil {
		return
	}
	env.contextMu.Lock()
	if env.cancelfn != nil {
		env.cancelfn()
		env.cancelfn = nil
	}
	if env.thread != nil {
		env.thread.Cancel("user interrupt")
	}
	env.contextMu.Unlock()
}

func (env *Env) newThread() *starlark.Thread {
	thread := &starlark.Thread{
		Print: env.printFunc(),
	}
	env.contextMu.Lock()
	var ctx context.Context
	ctx, env.cancelfn = context.WithCancel(context.Background())
	env.thread = thread
	env.contextMu.Unlock()
	thread.SetLocal(tdepContextName, ctx)
	return thread
}

// callMain calls the main function in globals, if one was defined.
func (env *Env) callMain(thread *starlark.Thread, globals starlark.StringDict, mainFnName string, args []interface{}) (starlark.Value, error) {
	if mainFnName == "" {
		return starlark.None, nil
	}
	mainval := globals[mainFnName]
	if mainval == nil {
		return starlark.None, nil
	}
	mainfn, ok := mainval.(*starlark.Function)
	if !ok {
		return starlark.None, fmt.Errorf("%s is not a function", mainFnName)
	}
	if mainfn.NumParams() != len(args) {
		return starlark.None, fmt.Errorf("wrong number of arguments for %s", mainFnName)
	}
	argtuple := make(starlark.Tuple, len(args))
	for i := range args {
		argtuple[i] = interfaceToStarlarkValue(args[i])
	}
	return starlark.Call(thread, mainfn, argtuple, nil)
}

func isCancelled(thread *starlark.Thread) error {
	if ctx, ok := thread.Local(tdepContextName).(context.Context); ok {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return nil
}

func decorateError(thread *starlark.Thread, err error) error {
	if err == nil {
		return nil
	}
	pos := thread.CallFrame(1).Pos
	if pos.Col > 0 {
		return fmt.Errorf("%s:%d:%d: %v", pos.Filename(), pos.Line, pos.Col, err)
	}
	return fmt.Errorf("%s:%d: %v", pos.Filename(), pos.Line, err)
}

// EchoWriter is where scripts write their output. Echo writes only to the
// transcript, if there is one.
type EchoWriter interface {
	io.Writer
	Echo(string)
	Flush()
}
