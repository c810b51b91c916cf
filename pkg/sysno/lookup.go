package sysno

import (
	"strings"

	"github.com/derekparker/trie"
	"golang.org/x/exp/slices"
)

var (
	byName = make(map[string]ID, numIDs)
	names  = trie.New()
)

func init() {
	for _, id := range All() {
		byName[id.String()] = id
		names.Add(id.String(), id)
	}
}

func normalizeName(name string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "sys_")
}

// Lookup returns the identifier of the system call called name. A leading
// "sys_" is ignored, so both "rt_sigaction" and "sys_rt_sigaction" work.
func Lookup(name string) (ID, bool) {
	id, ok := byName[normalizeName(name)]
	return id, ok
}

// Complete returns the identifiers whose name starts with prefix, sorted
// by name.
func Complete(prefix string) []ID {
	return fromKeys(names.PrefixSearch(normalizeName(prefix)))
}

// Suggest returns the identifiers whose name fuzzily matches name, for
// "did you mean" messages.
func Suggest(name string) []ID {
	return fromKeys(names.FuzzySearch(normalizeName(name)))
}

func fromKeys(keys []string) []ID {
	slices.Sort(keys)
	r := make([]ID, 0, len(keys))
	for _, k := range keys {
		if id, ok := byName[k]; ok {
			r = append(r, id)
		}
	}
	return r
}
