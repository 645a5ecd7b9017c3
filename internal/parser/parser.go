// Package parser adapts tree-sitter parse trees into the arena form the
// position and comment machinery consumes. It plays the upstream-parser role:
// it hands over an immutable buffer, an immutable tree, and a comment list
// sorted by start offset.
package parser

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/srcspan/internal/comments"
	"github.com/standardbeagle/srcspan/internal/source"
	"github.com/standardbeagle/srcspan/internal/tree"
)

// Parser wraps one grammar. It is not safe for concurrent use; callers take
// one Parser per goroutine, matching the converter ownership model.
type Parser struct {
	lang  Language
	inner *tree_sitter.Parser
}

// New builds a parser for the given language.
func New(lang Language) (*Parser, error) {
	inner, err := newTSParser(lang)
	if err != nil {
		return nil, err
	}
	return &Parser{lang: lang, inner: inner}, nil
}

// Close releases the underlying parser.
func (p *Parser) Close() {
	p.inner.Close()
}

// Result is one finished parse: the buffer, the arena tree over it, and the
// comment tokens diverted out of the tree, sorted by start offset.
type Result struct {
	Buffer   *source.Buffer
	Tree     *tree.Tree
	Comments []comments.Comment
}

// Parse parses content and builds the arena tree from the named nodes.
// Comment nodes do not enter the tree; they are collected into the comment
// list with their inline/standalone classification. encoding is the declared
// source encoding, empty for UTF-8.
func (p *Parser) Parse(content []byte, encoding string) (*Result, error) {
	tsTree := p.inner.Parse(content, nil)
	if tsTree == nil {
		return nil, fmt.Errorf("parse failed for language %q", p.lang)
	}
	defer tsTree.Close()

	buf := source.NewBuffer(content, encoding)
	res := &Result{Buffer: buf, Tree: tree.New(64)}

	root := tsTree.RootNode()
	rootID := res.addNode(root)
	res.Tree.SetRoot(rootID)
	res.build(root, rootID)
	return res, nil
}

func (res *Result) build(tsNode *tree_sitter.Node, id tree.NodeID) {
	count := tsNode.ChildCount()
	for i := uint(0); i < count; i++ {
		child := tsNode.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		if child.Kind() == "comment" {
			res.addComment(child)
			continue
		}
		childID := res.addNode(child)
		res.Tree.AppendChild(id, tsNode.FieldNameForChild(uint32(i)), childID)
		res.build(child, childID)
	}
}

func (res *Result) addNode(tsNode *tree_sitter.Node) tree.NodeID {
	loc := source.NewLocation(res.Buffer, int(tsNode.StartByte()), int(tsNode.EndByte()))
	var flags tree.Flags
	if tsNode.IsMissing() {
		flags |= tree.FlagMissing
	}
	if tsNode.IsExtra() {
		flags |= tree.FlagExtra
	}
	return res.Tree.AddNode(tsNode.Kind(), loc, flags)
}

func (res *Result) addComment(tsNode *tree_sitter.Node) {
	start, end := int(tsNode.StartByte()), int(tsNode.EndByte())
	res.Comments = append(res.Comments, comments.Comment{
		Loc:  source.NewLocation(res.Buffer, start, end),
		Kind: classify(res.Buffer, start),
		Text: string(res.Buffer.Content()[start:end]),
	})
}

// classify marks a comment inline when code precedes it on its line.
func classify(buf *source.Buffer, start int) comments.Kind {
	lineStart := buf.LineStart(buf.LineForOffset(start))
	for _, c := range buf.Content()[lineStart:start] {
		if c != ' ' && c != '\t' {
			return comments.Inline
		}
	}
	return comments.Standalone
}
