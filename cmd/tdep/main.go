package main

import (
	"os"

	"github.com/go-delve/tdep/cmd/tdep/cmds"
	"github.com/go-delve/tdep/pkg/version"
)

// Build is the git sha of this binaries build.
var Build string

func main() {
	if Build != "" {
		version.TdepVersion.Build = Build
	}
	if err := cmds.New().Execute(); err != nil {
		os.Exit(1)
	}
}
