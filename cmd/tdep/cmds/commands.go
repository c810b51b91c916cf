package cmds

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/cosiner/argv"
	"github.com/spf13/cobra"

	"github.com/go-delve/tdep/pkg/config"
	"github.com/go-delve/tdep/pkg/logflags"
	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/ebpfcount"
	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/proc/native"
	"github.com/go-delve/tdep/pkg/proc/native/cpuid"
	"github.com/go-delve/tdep/pkg/record"
	"github.com/go-delve/tdep/pkg/sysno"
	"github.com/go-delve/tdep/pkg/terminal"
	"github.com/go-delve/tdep/pkg/terminal/starbind"
	"github.com/go-delve/tdep/pkg/version"
)

var (
	// log is whether to log debug statements.
	log bool
	// logOutput is a comma separated list of components that should produce debug output.
	logOutput string
	// logDest is the file path or file descriptor where logs should go.
	logDest string
	// abi is the personality of raw system call numbers and register
	// descriptions given on the command line.
	abi linutil.ABIMode
	// color is "auto", "always" or "never".
	color string
	// xcr0 replaces the XSAVE feature mask of traced targets.
	xcr0 string

	lookupPrefix   bool
	resolveVerbose bool

	tracePid     int
	traceCmdline string
	tracePty     bool
	traceQuiet   bool

	censusPid      int
	censusDuration time.Duration

	configList bool
	configSave bool

	// transcriptPath is a file receiving a copy of the output of trace,
	// script and repl.
	transcriptPath     string
	transcriptTruncate bool

	// out is where commands print their results, set up before every
	// command runs.
	out  *terminal.Output
	conf *config.Config
)

const tdepCommandLongDesc = `tdep translates the system calls and register layouts of amd64 and x32
Linux processes.

Raw system call numbers only mean something together with the personality
that issued them: tdep maps them to architecture independent names, picks
the register description matching the XSAVE features of a process, and can
trace or count the system calls of live processes.`

// New returns an initialized command tree.
func New() *cobra.Command {
	var err error
	conf, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	rootCommand := &cobra.Command{
		Use:           "tdep",
		Short:         "tdep translates amd64 and x32 Linux system calls and register layouts.",
		Long:          tdepCommandLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logflags.Setup(log, logOutput, logDest); err != nil {
				return err
			}
			if !cmd.Flags().Changed("abi") {
				mode, err := conf.ABI()
				if err != nil {
					return err
				}
				abi = mode
			}
			if !cmd.Flags().Changed("color") && conf.Color != "" {
				color = conf.Color
			}
			var err error
			if f, ok := cmd.OutOrStdout().(*os.File); ok {
				out, err = terminal.NewOutput(f, color)
			} else {
				out = terminal.NewPlainOutput(cmd.OutOrStdout())
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logflags.Close()
		},
	}

	rootCommand.PersistentFlags().BoolVarP(&log, "log", "", false, "Enable logging.")
	rootCommand.PersistentFlags().StringVarP(&logOutput, "log-output", "", "", `Comma separated list of components that should produce debug output (see 'tdep help log')`)
	rootCommand.PersistentFlags().StringVarP(&logDest, "log-dest", "", "", "Writes logs to the specified file or file descriptor (see 'tdep help log').")
	rootCommand.PersistentFlags().VarP(&abi, "abi", "a", "Personality of raw system call numbers and register descriptions: amd64 or x32.")
	rootCommand.PersistentFlags().StringVarP(&color, "color", "", "auto", "Colorize output: auto, always or never.")
	rootCommand.PersistentFlags().StringVarP(&xcr0, "xcr0", "", "", "XSAVE feature mask to use instead of the one reported by traced processes.")

	// 'translate' subcommand.
	translateCommand := &cobra.Command{
		Use:   "translate raw...",
		Short: "Translates raw system call numbers to system call names.",
		Long: `Translates raw system call numbers to system call names.

Numbers can be written in decimal or, with a 0x prefix, in hexadecimal. x32
numbers include the x32 bit (0x40000000).`,
		Args: cobra.MinimumNArgs(1),
		RunE: translateCmd,
	}
	rootCommand.AddCommand(translateCommand)

	// 'lookup' subcommand.
	lookupCommand := &cobra.Command{
		Use:   "lookup name...",
		Short: "Prints the raw numbers of system calls.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  lookupCmd,
	}
	lookupCommand.Flags().BoolVarP(&lookupPrefix, "prefix", "p", false, "Print every system call whose name starts with the arguments.")
	rootCommand.AddCommand(lookupCommand)

	// 'table' subcommand.
	rootCommand.AddCommand(&cobra.Command{
		Use:   "table",
		Short: "Prints the system call table of the selected personality.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out.PrintSyscallTable(abi)
		},
	})

	// 'resolve' subcommand.
	resolveCommand := &cobra.Command{
		Use:   "resolve xcr0",
		Short: "Prints the register description of a process with the given XSAVE features.",
		Long: `Prints the register description of a process with the given XSAVE features.

The XSAVE feature mask (XCR0) is either a number or a list of components
separated by '|', for example "x87|sse|avx|avx512".`,
		Args: cobra.ExactArgs(1),
		RunE: resolveCmd,
	}
	resolveCommand.Flags().BoolVarP(&resolveVerbose, "verbose", "v", false, "Print every register.")
	rootCommand.AddCommand(resolveCommand)

	// 'catalog' subcommand.
	rootCommand.AddCommand(&cobra.Command{
		Use:   "catalog",
		Short: "Lists the register descriptions of the selected personality, most capable first.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out.PrintCatalog(abi)
		},
	})

	// 'host' subcommand.
	rootCommand.AddCommand(&cobra.Command{
		Use:   "host",
		Short: "Prints the XSAVE features of this machine and the register descriptions they select.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out.PrintXCR0(cpuid.HostXCR0(), "cpuid")
		},
	})

	// 'sigtramp' subcommand.
	rootCommand.AddCommand(&cobra.Command{
		Use:   "sigtramp",
		Short: "Disassembles the signal trampoline of the selected personality.",
		Args:  cobra.NoArgs,
		RunE:  sigtrampCmd,
	})

	// 'attach' subcommand.
	rootCommand.AddCommand(&cobra.Command{
		Use:   "attach pid",
		Short: "Prints the personality and the register description of a running process.",
		Long: `Attaches to a running process, prints its personality, XSAVE features and
register description, then detaches leaving it running.`,
		Args: cobra.ExactArgs(1),
		RunE: attachCmd,
	})

	// 'trace' subcommand.
	traceCommand := &cobra.Command{
		Use:   "trace [-- program args...]",
		Short: "Traces the system calls of a process.",
		Long: `Traces the system calls of a process.

The process is either started from the arguments after '--' (or from
--cmdline) or attached to with --pid. Every system call entry and exit is
printed and recorded, the unknown-syscall configuration option selects what
happens to system calls that can not be translated.`,
		RunE: traceCmd,
	}
	traceCommand.Flags().IntVarP(&tracePid, "pid", "p", 0, "Pid to attach to.")
	traceCommand.Flags().StringVarP(&traceCmdline, "cmdline", "c", "", "Command line of the program to start, split like a shell would.")
	traceCommand.Flags().BoolVarP(&tracePty, "pty", "", false, "Run the program on a new pseudo-terminal.")
	traceCommand.Flags().BoolVarP(&traceQuiet, "quiet", "q", false, "Only print the summary.")
	addTranscriptFlags(traceCommand)
	rootCommand.AddCommand(traceCommand)

	// 'census' subcommand.
	censusCommand := &cobra.Command{
		Use:   "census",
		Short: "Counts system calls with an eBPF program.",
		Long: `Counts system calls with an eBPF program attached to the raw_syscalls:sys_enter
tracepoint, for every process or for the one selected with --pid, until
--duration elapses or tdep is interrupted. Requires root.`,
		Args: cobra.NoArgs,
		RunE: censusCmd,
	}
	censusCommand.Flags().IntVarP(&censusPid, "pid", "p", 0, "Only count system calls of this process.")
	censusCommand.Flags().DurationVarP(&censusDuration, "duration", "d", 0, "Stop counting after this long.")
	rootCommand.AddCommand(censusCommand)

	// 'script' subcommand.
	scriptCommand := &cobra.Command{
		Use:   "script file [args...]",
		Short: "Executes a starlark script.",
		Long: `Executes a starlark script.

If the script defines a function called main it is called with the remaining
arguments. Run 'tdep repl' and type help() for the list of builtins.`,
		Args: cobra.MinimumNArgs(1),
		RunE: scriptCmd,
	}
	addTranscriptFlags(scriptCommand)
	rootCommand.AddCommand(scriptCommand)

	// 'repl' subcommand.
	replCommand := &cobra.Command{
		Use:   "repl",
		Short: "Starts an interactive starlark session.",
		Long: `Starts an interactive starlark session.

With --transcript the prompts, the input and the output of the session are
appended to a file.`,
		Args: cobra.NoArgs,
		RunE: replCmd,
	}
	addTranscriptFlags(replCommand)
	rootCommand.AddCommand(replCommand)

	// 'config' subcommand.
	configCommand := &cobra.Command{
		Use:   "config [-list | -save] [key [value]]",
		Short: "Prints or changes the configuration.",
		Long: `Prints or changes the configuration.

	tdep config --list
	tdep config --save key value

Without a value the key is reset to its default. Changes are only written to
the configuration file with --save.`,
		Args: cobra.MaximumNArgs(2),
		RunE: configCmd,
	}
	configCommand.Flags().BoolVarP(&configList, "list", "l", false, "Print the configuration.")
	configCommand.Flags().BoolVarP(&configSave, "save", "s", false, "Save the configuration.")
	rootCommand.AddCommand(configCommand)

	// 'version' subcommand.
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Prints version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(out, "tdep\n%s\n", version.TdepVersion)
			if log {
				fmt.Fprintln(out, version.BuildInfo())
			}
		},
	}
	rootCommand.AddCommand(versionCommand)

	rootCommand.AddCommand(&cobra.Command{
		Use:   "log",
		Short: "Help about logging flags.",
		Long: `Logging can be enabled by specifying the --log flag and using the
--log-output flag to select which components should produce logs.

The argument of --log-output must be a comma separated list of component
names selected from this list:


	syscalls	Log untranslatable system call numbers
	tdesc		Log register description selection (default)
	native		Log ptrace operations on traced processes
	record		Log recorder decisions
	script		Log starlark script execution

Additionally --log-dest can be used to specify where the logs should be
written.
If the argument is a number it will be interpreted as a file descriptor,
otherwise as a file path.

`,
	})

	rootCommand.DisableAutoGenTag = true

	return rootCommand
}

func parseRaw(s string) (uint64, error) {
	raw, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid system call number %q", s)
	}
	return raw, nil
}

func translateCmd(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		raw, err := parseRaw(arg)
		if err != nil {
			return err
		}
		out.PrintTranslation(raw, abi)
	}
	return nil
}

func lookupCmd(cmd *cobra.Command, args []string) error {
	for _, name := range args {
		if lookupPrefix {
			ids := sysno.Complete(name)
			if len(ids) == 0 {
				return fmt.Errorf("no system call starts with %q", name)
			}
			for _, id := range ids {
				out.PrintRawNumbers(id)
			}
			continue
		}
		id, ok := sysno.Lookup(name)
		if !ok {
			return unknownSyscallError(name)
		}
		out.PrintRawNumbers(id)
	}
	return nil
}

func unknownSyscallError(name string) error {
	sug := sysno.Suggest(name)
	if len(sug) == 0 {
		return fmt.Errorf("unknown system call %q", name)
	}
	names := make([]string, len(sug))
	for i := range sug {
		names[i] = sug[i].String()
	}
	return fmt.Errorf("unknown system call %q, did you mean %s?", name, strings.Join(names, ", "))
}

func resolveCmd(cmd *cobra.Command, args []string) error {
	caps, err := amd64util.ParseXstateFeatures(args[0])
	if err != nil {
		return err
	}
	out.PrintDescription(linutil.Resolve(caps, abi), resolveVerbose)
	return nil
}

func sigtrampCmd(cmd *cobra.Command, args []string) error {
	code := linutil.SigtrampCode(abi)
	insts, err := linutil.Disassemble(code, 0)
	if err != nil {
		return err
	}
	for _, inst := range insts {
		fmt.Fprintf(out, "\t%s\n", inst)
	}
	return nil
}

// nativeOptions returns the options used to launch or attach to targets.
func nativeOptions() (native.Options, error) {
	var opts native.Options
	if xcr0 != "" {
		caps, err := amd64util.ParseXstateFeatures(xcr0)
		if err != nil {
			return opts, err
		}
		opts.XCR0 = caps
	} else if caps, ok, err := conf.XCR0(); err != nil {
		return opts, err
	} else if ok {
		opts.XCR0 = caps
	}
	opts.Pty = tracePty
	return opts, nil
}

func printTarget(t *native.Target) {
	fmt.Fprintf(out, "process %d (%s), %s\n", t.Pid, t.Path, t.ABI)
	out.PrintXCR0(t.XCR0, t.XCR0Source)
	fmt.Fprint(out, "target\t")
	out.PrintDescription(t.Desc, false)
	if t.Auxv.Entry != 0 {
		fmt.Fprintf(out, "entry %#x, vdso %#x\n", t.Auxv.Entry, t.Auxv.VDSO)
	}
}

func attachCmd(cmd *cobra.Command, args []string) error {
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid pid: %s", args[0])
	}
	opts, err := nativeOptions()
	if err != nil {
		return err
	}
	t, err := native.Attach(pid, opts)
	if err != nil {
		return err
	}
	printTarget(t)
	return t.Detach(false)
}

// splitArgs returns the arguments after '--'.
func splitArgs(cmd *cobra.Command, args []string) ([]string, []string) {
	if cmd.ArgsLenAtDash() >= 0 {
		return args[:cmd.ArgsLenAtDash()], args[cmd.ArgsLenAtDash():]
	}
	return args, []string{}
}

// traceProgram returns the command line of the program to trace.
func traceProgram(cmd *cobra.Command, args []string) ([]string, error) {
	tdepArgs, targetArgs := splitArgs(cmd, args)
	if len(tdepArgs) > 0 {
		return nil, fmt.Errorf("unexpected arguments %q, the program to trace goes after '--'", tdepArgs)
	}
	if traceCmdline != "" {
		if len(targetArgs) > 0 {
			return nil, errors.New("--cmdline and '--' can not be used together")
		}
		cmdlines, err := argv.Argv(traceCmdline,
			func(s string) (string, error) {
				return "", fmt.Errorf("backtick not supported in '%s'", s)
			},
			nil)
		if err != nil {
			return nil, err
		}
		if len(cmdlines) != 1 {
			return nil, errors.New("--cmdline can not contain pipes")
		}
		return cmdlines[0], nil
	}
	return targetArgs, nil
}

func traceCmd(cmd *cobra.Command, args []string) (err error) {
	policy, err := record.ParsePolicy(conf.UnknownSyscall)
	if err != nil {
		return err
	}
	closeTranscript, err := startTranscript()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeTranscript(); err == nil {
			err = cerr
		}
	}()
	rcfg := record.Config{Policy: policy}
	if conf.RecordTargets != nil {
		rcfg.MaxTargets = *conf.RecordTargets
	}
	rec, err := record.New(rcfg)
	if err != nil {
		return err
	}

	opts, err := nativeOptions()
	if err != nil {
		return err
	}

	var t *native.Target
	switch {
	case tracePid != 0:
		if len(args) > 0 || traceCmdline != "" {
			return errors.New("--pid can not be used with a program to start")
		}
		t, err = native.Attach(tracePid, opts)
	default:
		var program []string
		program, err = traceProgram(cmd, args)
		if err != nil {
			return err
		}
		if len(program) == 0 {
			return errors.New("you must provide a program to start or a pid")
		}
		t, err = native.Launch(program, opts)
	}
	if err != nil {
		return err
	}
	if t.Pty != nil {
		go copyPty(t.Pty)
	}

	if !traceQuiet {
		printTarget(t)
	}
	rec.Attach(t.Pid, t.ABI, t.XCR0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = t.TraceSyscalls(ctx, func(ev native.SyscallEvent) error {
		if !traceQuiet {
			out.PrintEvent(ev)
		}
		if ev.Entry {
			_, err := rec.SyscallEntry(t.Pid, ev.Raw)
			return err
		}
		_, err := rec.SyscallExit(t.Pid, ev.Raw, ev.Ret)
		return err
	})
	if !t.Exited() {
		if derr := t.Detach(tracePid == 0); derr != nil && err == nil {
			err = derr
		}
	}
	if recorded, skipped, serr := rec.Stats(t.Pid); serr == nil {
		fmt.Fprintf(out, "%d events recorded, %d skipped\n", recorded, skipped)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func copyPty(pty *os.File) {
	buf := make([]byte, 4096)
	for {
		n, err := pty.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func censusCmd(cmd *cobra.Command, args []string) error {
	c, err := ebpfcount.Load(censusPid)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if censusDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, censusDuration)
		defer cancel()
	}
	<-ctx.Done()

	counts, err := c.Snapshot()
	if err != nil {
		return err
	}
	out.PrintCounts(counts)
	return nil
}

func addTranscriptFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&transcriptPath, "transcript", "", "", "Appends a copy of the output to this file.")
	cmd.Flags().BoolVarP(&transcriptTruncate, "transcript-truncate", "", false, "Truncates the transcript file before writing to it.")
}

// startTranscript starts copying out to transcriptPath, if set. The
// returned function closes the transcript.
func startTranscript() (func() error, error) {
	if transcriptPath == "" {
		return func() error { return nil }, nil
	}
	flags := os.O_APPEND | os.O_WRONLY | os.O_CREATE
	if transcriptTruncate {
		flags |= os.O_TRUNC
	}
	fh, err := os.OpenFile(transcriptPath, flags, 0660)
	if err != nil {
		return nil, fmt.Errorf("could not open transcript: %v", err)
	}
	out.TranscribeTo(fh)
	return out.CloseTranscript, nil
}

func replCmd(cmd *cobra.Command, args []string) (err error) {
	closeTranscript, err := startTranscript()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeTranscript(); err == nil {
			err = cerr
		}
	}()
	return starbind.New(out, abi).REPL()
}

func scriptCmd(cmd *cobra.Command, args []string) (err error) {
	closeTranscript, err := startTranscript()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeTranscript(); err == nil {
			err = cerr
		}
	}()
	env := starbind.New(out, abi)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		env.Cancel()
	}()
	mainArgs := make([]interface{}, len(args)-1)
	for i := range mainArgs {
		mainArgs[i] = args[i+1]
	}
	v, err := env.Execute(args[0], nil, "main", mainArgs)
	if err != nil {
		return err
	}
	if v != nil && v.String() != "None" {
		fmt.Fprintln(out, v)
	}
	return nil
}

func configCmd(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		if !configList && !configSave {
			return errors.New("wrong number of arguments to \"config\"")
		}
	case 1:
		if err := terminal.ConfigureSet(conf, args[0], ""); err != nil {
			return err
		}
	case 2:
		if err := terminal.ConfigureSet(conf, args[0], args[1]); err != nil {
			return err
		}
	}
	if configSave {
		if err := config.SaveConfig(conf); err != nil {
			return err
		}
	}
	if configList || len(args) == 0 {
		return terminal.ConfigureList(out, conf)
	}
	return nil
}
