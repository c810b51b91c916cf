//go:build !linux || !amd64

package ebpfcount

import "errors"

var errDisabled = errors.New("eBPF system call census is only supported on linux/amd64")

// Census is a loaded and attached system call counter.
type Census struct{}

// Load returns an error, eBPF is not available on this platform.
func Load(pid int) (*Census, error) {
	return nil, errDisabled
}

func (c *Census) Snapshot() ([]Count, error) {
	return nil, errDisabled
}

func (c *Census) Close() error {
	return nil
}
