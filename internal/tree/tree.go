package tree

import "github.com/standardbeagle/srcspan/internal/source"

// Tree is the arena. The zero value is empty; nodes are appended with
// AddNode and wired with AppendChild, then the tree is treated as immutable.
type Tree struct {
	nodes []Node
	root  NodeID
}

// New returns an empty tree with capacity for hint nodes.
func New(hint int) *Tree {
	return &Tree{nodes: make([]Node, 0, hint)}
}

// AddNode allocates a node in the arena and returns its ID.
func (t *Tree) AddNode(kind string, loc source.Location, flags Flags) NodeID {
	id := NodeID(len(t.nodes) + 1)
	t.nodes = append(t.nodes, Node{ID: id, Kind: kind, Flags: flags, Loc: loc})
	return id
}

// AppendChild attaches child to parent under the given field label.
// Children must be appended in source order.
func (t *Tree) AppendChild(parent NodeID, field string, child NodeID) {
	p := t.Node(parent)
	p.Children = append(p.Children, Child{Field: field, ID: child})
}

// SetRoot marks the tree's root node.
func (t *Tree) SetRoot(id NodeID) { t.root = id }

// Root returns the root node's ID, or NoNode for an empty tree.
func (t *Tree) Root() NodeID { return t.root }

// Node returns the node for id, or nil for NoNode and out-of-range IDs.
func (t *Tree) Node(id NodeID) *Node {
	if id == NoNode || int(id) > len(t.nodes) {
		return nil
	}
	return &t.nodes[id-1]
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }
