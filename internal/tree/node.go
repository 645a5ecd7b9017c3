// Package tree stores a parsed syntax tree in arena form and answers
// location-keyed searches over it. Nodes live in a flat slice indexed by
// NodeID; parents reference children by ID, never by pointer, so the
// structure is acyclic by construction.
package tree

import "github.com/standardbeagle/srcspan/internal/source"

// NodeID identifies a node within one Tree. IDs are dense and 1-based;
// NoNode (0) means "no node" and doubles as the synthetic file-level
// placeholder when comments have nothing to attach to.
type NodeID uint32

const NoNode NodeID = 0

// Flags is the per-node flag bitset carried through from the producer.
type Flags uint16

const (
	// FlagMissing marks a node the upstream parser inserted during error
	// recovery; such nodes commonly have zero-width locations.
	FlagMissing Flags = 1 << iota
	// FlagExtra marks a node that can appear anywhere in the grammar
	// (tree-sitter "extra" nodes).
	FlagExtra
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Child is one ordered child reference. Field carries the producer's field
// label and may be empty for unlabelled children.
type Child struct {
	Field string
	ID    NodeID
}

// Node is one syntax-tree entity. Its Location fully contains every child's
// Location, and sibling Locations are disjoint and in byte order; both are
// parser-level invariants this package relies on without enforcing.
type Node struct {
	ID       NodeID
	Kind     string
	Flags    Flags
	Loc      source.Location
	Children []Child
}
