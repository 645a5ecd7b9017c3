package tree

// Tunnel resolves a 1-based line and 0-based byte column to the path of
// nodes enclosing that point, ordered root to innermost. The coordinate is
// validated through the buffer's inverse lookup, so an out-of-range line or
// column surfaces as *source.BoundsError.
//
// At each level the children are scanned in field order and the first child
// whose location contains the offset is entered. Sibling locations are
// disjoint, so field order alone breaks ties; no overlap heuristics apply.
func (t *Tree) Tunnel(line, column int) ([]NodeID, error) {
	root := t.Node(t.root)
	if root == nil {
		return nil, nil
	}

	offset, err := root.Loc.Buf.OffsetOf(line, column)
	if err != nil {
		return nil, err
	}

	var path []NodeID
	if !root.Loc.Contains(offset) {
		return path, nil
	}

	for node := root; node != nil; {
		path = append(path, node.ID)
		var next *Node
		for _, c := range node.Children {
			child := t.Node(c.ID)
			if child != nil && child.Loc.Contains(offset) {
				next = child
				break
			}
		}
		node = next
	}
	return path, nil
}

// BreadthFirstSearch explores nodes level by level starting at start (itself
// level 0) and returns the first node satisfying pred. The tree is finite
// and acyclic, so exhaustion terminates without visited-set bookkeeping.
func (t *Tree) BreadthFirstSearch(start NodeID, pred func(*Node) bool) (NodeID, bool) {
	first := t.Node(start)
	if first == nil {
		return NoNode, false
	}

	queue := []NodeID{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		node := t.Node(id)
		if pred(node) {
			return id, true
		}
		for _, c := range node.Children {
			if c.ID != NoNode {
				queue = append(queue, c.ID)
			}
		}
	}
	return NoNode, false
}
