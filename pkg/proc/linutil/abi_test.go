package linutil

import (
	"testing"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*ABIMode)(nil)

func TestABIModeFlag(t *testing.T) {
	var mode ABIMode
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&mode, "abi", "")
	if err := fs.Parse([]string{"--abi", "ilp32"}); err != nil {
		t.Fatal(err)
	}
	if mode != ABICompat {
		t.Errorf("got %v", mode)
	}
	if fs.Lookup("abi").Value.String() != "x32" {
		t.Errorf("flag prints as %q", fs.Lookup("abi").Value.String())
	}
	if err := fs.Parse([]string{"--abi", "i386"}); err == nil {
		t.Errorf("invalid abi accepted")
	}
}
