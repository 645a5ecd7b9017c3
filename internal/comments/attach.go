package comments

import (
	"sort"

	"github.com/standardbeagle/srcspan/internal/tree"
)

// NodeComments holds the comments attached to one node, in original source
// order within each sequence.
type NodeComments struct {
	Leading  []Comment
	Trailing []Comment
}

// Result maps nodes to their attached comments. It is built once by Attach
// and read-only thereafter. tree.NoNode keys the synthetic file-level
// placeholder used when a comment has no node to attach to.
type Result struct {
	nodes map[tree.NodeID]*NodeComments
}

// Leading returns the comments attached before the node.
func (r *Result) Leading(id tree.NodeID) []Comment {
	if nc := r.nodes[id]; nc != nil {
		return nc.Leading
	}
	return nil
}

// Trailing returns the comments attached after the node.
func (r *Result) Trailing(id tree.NodeID) []Comment {
	if nc := r.nodes[id]; nc != nil {
		return nc.Trailing
	}
	return nil
}

// FileLevel returns comments that had no node to attach to.
func (r *Result) FileLevel() []Comment { return r.Leading(tree.NoNode) }

// IDs returns the node IDs carrying comments, ascending. tree.NoNode is
// included when file-level comments exist.
func (r *Result) IDs() []tree.NodeID {
	ids := make([]tree.NodeID, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count returns the total number of attached comments.
func (r *Result) Count() int {
	n := 0
	for _, nc := range r.nodes {
		n += len(nc.Leading) + len(nc.Trailing)
	}
	return n
}

func (r *Result) add(id tree.NodeID, c Comment, trailing bool) {
	nc := r.nodes[id]
	if nc == nil {
		nc = &NodeComments{}
		r.nodes[id] = nc
	}
	if trailing {
		nc.Trailing = append(nc.Trailing, c)
	} else {
		nc.Leading = append(nc.Leading, c)
	}
}

// Attach assigns every comment to exactly one node as either leading or
// trailing. It never fails: a comment with no candidates lands on the
// file-level placeholder. Comments arrive sorted by start offset; the order
// is validated and a violating list is stably re-sorted into a private copy,
// since attachment must stay total.
//
// Candidates per comment come from one containment descent from the root:
// left is the nearest node ending at or before the comment along the descent
// path, enclosing is the innermost node containing the comment, and right is
// the first following sibling at the innermost level. The rules, in order:
//
//  1. left ends on the comment's start line: trailing to left.
//  2. right exists: leading to right.
//  3. enclosing exists: trailing to it when content precedes the comment
//     inside it, otherwise leading.
//  4. left exists on an earlier line with nothing following: trailing to left.
//  5. no candidates: file-level placeholder.
func Attach(t *tree.Tree, list []Comment) *Result {
	res := &Result{nodes: make(map[tree.NodeID]*NodeComments)}

	if !sort.SliceIsSorted(list, func(i, j int) bool { return list[i].Loc.Start < list[j].Loc.Start }) {
		sorted := make([]Comment, len(list))
		copy(sorted, list)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Loc.Start < sorted[j].Loc.Start })
		list = sorted
	}

	for _, c := range list {
		attachOne(t, res, c)
	}
	return res
}

func attachOne(t *tree.Tree, res *Result, c Comment) {
	left, enclosing, right := nearestTargets(t, c)

	switch {
	case left != tree.NoNode && endLine(t, left) == startLine(c):
		res.add(left, c, true)
	case right != tree.NoNode:
		res.add(right, c, false)
	case enclosing != tree.NoNode:
		res.add(enclosing, c, left != tree.NoNode)
	case left != tree.NoNode:
		res.add(left, c, true)
	default:
		res.add(tree.NoNode, c, false)
	}
}

// nearestTargets walks one top-down containment descent. At every level the
// children are scanned in field order: nodes ending before the comment
// update left, the child containing the comment is entered, and the first
// node starting after the comment closes the scan. right is therefore only
// taken from the innermost level, so a comment inside a block can never
// attach to a node outside it. Sibling disjointness makes the walk
// deterministic without overlap heuristics.
func nearestTargets(t *tree.Tree, c Comment) (left, enclosing, right tree.NodeID) {
	root := t.Node(t.Root())
	if root == nil {
		return tree.NoNode, tree.NoNode, tree.NoNode
	}

	if !root.Loc.ContainsLocation(c.Loc) {
		switch {
		case root.Loc.End <= c.Loc.Start:
			return root.ID, tree.NoNode, tree.NoNode
		case root.Loc.Start >= c.Loc.End:
			return tree.NoNode, tree.NoNode, root.ID
		}
		// Straddles the root boundary; treat the root as enclosing.
	}
	enclosing = root.ID

	node := root
	for {
		var next *tree.Node
		for _, ch := range node.Children {
			child := t.Node(ch.ID)
			if child == nil {
				continue
			}
			switch {
			case child.Loc.End <= c.Loc.Start:
				left = child.ID
			case child.Loc.ContainsLocation(c.Loc):
				next = child
			case child.Loc.Start >= c.Loc.End:
				right = child.ID
			default:
				// Partial overlap breaks the sibling invariant; skip it.
				continue
			}
			if next != nil || right != tree.NoNode {
				break
			}
		}
		if next == nil {
			return left, enclosing, right
		}
		enclosing = next.ID
		node = next
	}
}

func endLine(t *tree.Tree, id tree.NodeID) int {
	loc := t.Node(id).Loc
	end := loc.End
	if end > loc.Start {
		end-- // half-open range: the last byte decides the line
	}
	return loc.Buf.LineForOffset(end)
}

func startLine(c Comment) int {
	return c.Loc.Buf.LineForOffset(c.Loc.Start)
}
