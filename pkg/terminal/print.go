package terminal

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/ebpfcount"
	"github.com/go-delve/tdep/pkg/proc/linutil"
	"github.com/go-delve/tdep/pkg/proc/native"
	"github.com/go-delve/tdep/pkg/sysno"
)

func (out *Output) newTabWriter() *tabwriter.Writer {
	w := new(tabwriter.Writer)
	w.Init(out, 0, 8, 2, ' ', 0)
	return w
}

func (out *Output) syscallName(id sysno.ID, raw uint64) string {
	if id == sysno.Invalid {
		return out.Paint(UnknownStyle, fmt.Sprintf("syscall_%#x", raw))
	}
	return out.Paint(NameStyle, id.String())
}

// PrintTranslation prints the canonical name of the raw system call number
// raw of the personality mode.
func (out *Output) PrintTranslation(raw uint64, mode linutil.ABIMode) {
	id, ok := linutil.Translate(raw, mode)
	if !ok {
		fmt.Fprintf(out, "%s %s: %s\n", mode, out.Paint(NumberStyle, fmt.Sprintf("%#x", raw)), out.Paint(UnknownStyle, "unknown system call"))
		return
	}
	fmt.Fprintf(out, "%s %s: %s\n", mode, out.Paint(NumberStyle, fmt.Sprintf("%#x", raw)), out.syscallName(id, raw))
}

// PrintRawNumbers prints the raw numbers of id under both personalities.
func (out *Output) PrintRawNumbers(id sysno.ID) {
	w := out.newTabWriter()
	fmt.Fprintf(w, "%s\t", out.syscallName(id, 0))
	for _, mode := range []linutil.ABIMode{linutil.ABINative, linutil.ABICompat} {
		if raw, ok := linutil.RawNumber(id, mode); ok {
			fmt.Fprintf(w, "%s=%s\t", mode, out.Paint(NumberStyle, fmt.Sprintf("%#x", raw)))
		} else {
			fmt.Fprintf(w, "%s=%s\t", mode, out.Paint(UnknownStyle, "-"))
		}
	}
	fmt.Fprintln(w)
	w.Flush()
}

// PrintSyscallTable prints the system call table of mode.
func (out *Output) PrintSyscallTable(mode linutil.ABIMode) {
	w := out.newTabWriter()
	fmt.Fprintln(w, out.Paint(HeaderStyle, "raw\tdecimal\tname"))
	for _, e := range linutil.SyscallTable(mode) {
		fmt.Fprintf(w, "%#x\t%d\t%s\n", e.Raw, e.Raw, out.syscallName(e.ID, e.Raw))
	}
	w.Flush()
}

// PrintDescription prints the name of desc and, if verbose, its registers.
func (out *Output) PrintDescription(desc *linutil.Description, verbose bool) {
	fmt.Fprintf(out, "%s (%s, %d registers, requires %s)\n", out.Paint(NameStyle, desc.Name), desc.ABI, desc.NumRegs(), desc.Requires)
	if !verbose {
		return
	}
	w := out.newTabWriter()
	fmt.Fprintln(w, out.Paint(HeaderStyle, "regnum\tname\tbits\tdwarf\tfeature"))
	for _, reg := range desc.Registers {
		dwarf := "-"
		if reg.DwarfRegnum >= 0 {
			dwarf = fmt.Sprint(reg.DwarfRegnum)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", reg.Regnum, reg.Name, reg.BitSize, dwarf, out.Paint(FeatureStyle, reg.Feature))
	}
	w.Flush()
}

// PrintCatalog prints the register descriptions of mode, most capable
// first.
func (out *Output) PrintCatalog(mode linutil.ABIMode) {
	for _, desc := range linutil.Catalog(mode) {
		out.PrintDescription(desc, false)
	}
}

// PrintXCR0 prints an XSAVE feature mask and the description it resolves
// to under both personalities.
func (out *Output) PrintXCR0(xcr0 amd64util.XstateFeatures, source string) {
	fmt.Fprintf(out, "xcr0 %s (%s) from %s\n", out.Paint(NumberStyle, fmt.Sprintf("%#x", uint64(xcr0))), xcr0, source)
	for _, mode := range []linutil.ABIMode{linutil.ABINative, linutil.ABICompat} {
		fmt.Fprintf(out, "%s\t", mode)
		out.PrintDescription(linutil.Resolve(xcr0, mode), false)
	}
}

// PrintEvent prints a system call event of a traced target.
func (out *Output) PrintEvent(ev native.SyscallEvent) {
	name := out.syscallName(ev.ID, ev.Raw)
	if ev.Entry {
		fmt.Fprintf(out, "[%d] %s(...)\n", ev.Tid, name)
		return
	}
	if ev.Restart {
		fmt.Fprintf(out, "[%d] %s = %d %s\n", ev.Tid, name, ev.Ret, out.Paint(FeatureStyle, "(restart)"))
		return
	}
	fmt.Fprintf(out, "[%d] %s = %d\n", ev.Tid, name, ev.Ret)
}

// PrintCounts prints system call counts collected by ebpfcount.
func (out *Output) PrintCounts(counts []ebpfcount.Count) {
	w := out.newTabWriter()
	fmt.Fprintln(w, out.Paint(HeaderStyle, "count\tabi\traw\tname"))
	for _, c := range counts {
		fmt.Fprintf(w, "%d\t%s\t%#x\t%s\n", c.N, c.ABI, c.Raw, out.syscallName(c.ID, c.Raw))
	}
	w.Flush()
}
