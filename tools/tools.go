//go:build tools

// Package tools pins the code generators used by go:generate directives so
// that their versions are tracked in go.mod.
package tools

import (
	_ "golang.org/x/tools/cmd/stringer"
)
