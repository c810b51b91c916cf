package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Style describes the style of a chunk of text.
type Style uint8

const (
	NormalStyle Style = iota
	HeaderStyle
	NameStyle
	NumberStyle
	UnknownStyle
	FeatureStyle
)

var defaultColorEscapes = map[Style]string{
	HeaderStyle:  "\x1b[1m",
	NameStyle:    "\x1b[32m",
	NumberStyle:  "\x1b[34m",
	UnknownStyle: "\x1b[31m",
	FeatureStyle: "\x1b[2m",
}

const resetEscape = "\x1b[0m"

// Output writes to a terminal and also, optionally, to a buffered
// transcript file. It can be written to from multiple goroutines, each
// Write is atomic.
type Output struct {
	mu           sync.Mutex
	w            io.Writer
	colorEscapes map[Style]string

	file *bufio.Writer
	fh   io.Closer
}

// NewOutput returns an Output writing to f. Color is "auto", "always" or
// "never", auto colorizes only if f is a terminal.
func NewOutput(f *os.File, color string) (*Output, error) {
	on, err := useColor(f, color)
	if err != nil {
		return nil, err
	}
	out := &Output{w: f}
	if on {
		out.w = colorable.NewColorable(f)
		out.colorEscapes = defaultColorEscapes
	}
	return out, nil
}

// NewPlainOutput returns an Output writing to w without colors.
func NewPlainOutput(w io.Writer) *Output {
	return &Output{w: w}
}

func useColor(f *os.File, color string) (bool, error) {
	switch strings.ToLower(color) {
	case "", "auto":
		if strings.ToLower(os.Getenv("TERM")) == "dumb" || os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	}
	return false, fmt.Errorf("unknown color mode %q (must be auto, always or never)", color)
}

// Write writes p to the terminal and, if it is active, to the transcript.
// The byte count is the terminal's.
func (out *Output) Write(p []byte) (int, error) {
	out.mu.Lock()
	defer out.mu.Unlock()
	n, err := out.w.Write(p)
	if err == nil && out.file != nil {
		_, err = out.file.Write(p)
	}
	return n, err
}

// Paint returns s wrapped in the escape sequences of style, or s if the
// output is not colorized.
func (out *Output) Paint(style Style, s string) string {
	esc := out.colorEscapes[style]
	if esc == "" {
		return s
	}
	return esc + s + resetEscape
}

// Echo outputs str only to the optional transcript file.
func (out *Output) Echo(str string) {
	out.mu.Lock()
	defer out.mu.Unlock()
	if out.file != nil {
		out.file.WriteString(str)
	}
}

// Flush flushes the optional transcript file.
func (out *Output) Flush() {
	out.mu.Lock()
	defer out.mu.Unlock()
	if out.file != nil {
		out.file.Flush()
	}
}

// TranscribeTo starts transcribing the output to fh, closing the previous
// transcript.
func (out *Output) TranscribeTo(fh io.WriteCloser) {
	out.mu.Lock()
	defer out.mu.Unlock()
	out.closeTranscript()
	out.fh = fh
	out.file = bufio.NewWriter(fh)
}

// CloseTranscript closes the optional transcript file.
func (out *Output) CloseTranscript() error {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.closeTranscript()
}

func (out *Output) closeTranscript() error {
	if out.file == nil {
		return nil
	}
	out.file.Flush()
	err := out.fh.Close()
	out.file = nil
	out.fh = nil
	return err
}
