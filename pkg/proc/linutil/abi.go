package linutil

import (
	"fmt"
	"strings"
)

// ABIMode is the personality a traced amd64 process runs under.
type ABIMode uint8

const (
	// ABINative is the LP64 amd64 personality.
	ABINative ABIMode = iota
	// ABICompat is the ILP32 x32 personality: amd64 instructions and
	// registers, 32 bit pointers and a separate system call number space.
	ABICompat
)

func (mode ABIMode) String() string {
	switch mode {
	case ABINative:
		return "amd64"
	case ABICompat:
		return "x32"
	default:
		return fmt.Sprintf("ABIMode(%d)", uint8(mode))
	}
}

// Set implements pflag.Value.
func (mode *ABIMode) Set(s string) error {
	m, err := ParseABIMode(s)
	if err != nil {
		return err
	}
	*mode = m
	return nil
}

// Type implements pflag.Value.
func (mode *ABIMode) Type() string { return "abi" }

// ParseABIMode parses the name of an ABI mode.
func ParseABIMode(s string) (ABIMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "amd64", "native", "64", "lp64":
		return ABINative, nil
	case "x32", "compat", "ilp32":
		return ABICompat, nil
	}
	return 0, fmt.Errorf("unknown ABI %q (must be amd64 or x32)", s)
}

// mustBeValid panics if mode is not one of the defined ABI modes. Modes
// are set by the process control layer, never taken from user input
// without going through ParseABIMode, so an invalid one is a bug.
func (mode ABIMode) mustBeValid() {
	if mode != ABINative && mode != ABICompat {
		panic(fmt.Sprintf("linutil: invalid ABI mode %d", uint8(mode)))
	}
}
