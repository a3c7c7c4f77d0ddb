package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports a chain that cannot be set up: missing tree
	// builder result, bad widget list, rejected widget options.
	ErrConfiguration = errors.New("chain: configuration error")
	// ErrConsistency reports an event or element id that does not resolve to
	// a tree node. The widget state and the tree have diverged.
	ErrConsistency = errors.New("chain: widget and tree out of sync")
)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func consistencyErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConsistency, fmt.Sprintf(format, args...))
}
