package graph

import "errors"

// ErrNilNode is returned when a nil node or a node without ID is added.
var ErrNilNode = errors.New("node is nil or has no ID")

// ErrDuplicateNode is returned when two nodes share an ID.
var ErrDuplicateNode = errors.New("duplicate node")

// ErrUnknownDependency is returned when a node depends on an ID that is not in the graph.
var ErrUnknownDependency = errors.New("unknown dependency")

// ErrCycle is returned when the dependencies form a cycle.
var ErrCycle = errors.New("dependency cycle")
