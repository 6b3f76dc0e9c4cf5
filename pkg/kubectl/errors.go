package kubectl

import (
	"errors"
	"fmt"
)

var (
	// ErrToolUnavailable is returned when the kubectl binary cannot be found
	// or started.
	ErrToolUnavailable = errors.New("kubectl unavailable")

	// ErrClusterUnreachable is returned when kubectl ran but could not talk
	// to the cluster.
	ErrClusterUnreachable = errors.New("cluster unreachable")
)

// BuildError reports an operation option that failed validation. It is
// always produced before any subprocess is spawned.
type BuildError struct {
	Option string
	Reason string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("invalid option %q: %s", e.Option, e.Reason)
}
