package native

import "errors"

// ErrNativeBackendDisabled is returned by every entry point of the
// package on platforms other than linux/amd64.
var ErrNativeBackendDisabled = errors.New("native backend disabled during compilation")
