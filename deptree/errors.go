package deptree

import (
	"errors"
	"fmt"
)

var (
	ErrNoNodes      = errors.New("no nodes given")
	ErrNodeNotFound = errors.New("node not in tree")
)

// TreeConstructionError reports a head array that does not encode a single
// rooted, acyclic tree. Node is the offending 0-based token index, or -1
// when the violation concerns the whole array.
type TreeConstructionError struct {
	Node   int
	Reason string
}

func (e *TreeConstructionError) Error() string {
	if e.Node < 0 {
		return fmt.Sprintf("dependency tree: %s", e.Reason)
	}

	return fmt.Sprintf("dependency tree: node %d: %s", e.Node, e.Reason)
}
