package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/standardbeagle/srcspan/internal/comments"
	"github.com/standardbeagle/srcspan/internal/tree"
)

// TestMain ensures no goroutines leak from the cgo-backed parsers.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const goSample = `package main

// add sums two ints.
func add(a, b int) int {
	return a + b // fast path
}
`

const pythonSample = `# module comment
def add(a, b):
    # explain
    return a + b
`

func parseSample(t *testing.T, lang Language, src string) *Result {
	t.Helper()
	p, err := New(lang)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	res, err := p.Parse([]byte(src), "")
	require.NoError(t, err)
	return res
}

func TestParse_Go(t *testing.T) {
	res := parseSample(t, LanguageGo, goSample)

	root := res.Tree.Node(res.Tree.Root())
	require.NotNil(t, root)
	assert.Equal(t, "source_file", root.Kind)
	assert.Equal(t, 0, root.Loc.Start)

	funcID, ok := res.Tree.BreadthFirstSearch(res.Tree.Root(), func(n *tree.Node) bool {
		return n.Kind == "function_declaration"
	})
	require.True(t, ok)
	assert.NotEqual(t, tree.NoNode, funcID)

	require.Len(t, res.Comments, 2)
	assert.Equal(t, "// add sums two ints.", res.Comments[0].Text)
	assert.Equal(t, comments.Standalone, res.Comments[0].Kind)
	assert.Equal(t, "// fast path", res.Comments[1].Text)
	assert.Equal(t, comments.Inline, res.Comments[1].Kind)
}

func TestParse_Python(t *testing.T) {
	res := parseSample(t, LanguagePython, pythonSample)

	require.Len(t, res.Comments, 2)
	assert.Equal(t, "# module comment", res.Comments[0].Text)
	assert.Equal(t, "# explain", res.Comments[1].Text)
	for _, c := range res.Comments {
		assert.Equal(t, comments.Standalone, c.Kind)
	}
}

// Parent locations must contain child locations everywhere in a real parse,
// and the comment list must arrive sorted.
func TestParse_Invariants(t *testing.T) {
	for _, lang := range Languages() {
		src := goSample
		if lang == LanguagePython {
			src = pythonSample
		}
		t.Run(string(lang), func(t *testing.T) {
			res := parseSample(t, lang, src)

			var check func(id tree.NodeID)
			check = func(id tree.NodeID) {
				node := res.Tree.Node(id)
				for _, c := range node.Children {
					child := res.Tree.Node(c.ID)
					assert.True(t, node.Loc.ContainsLocation(child.Loc),
						"%s %s should contain %s %s", node.Kind, node.Loc, child.Kind, child.Loc)
					check(c.ID)
				}
			}
			check(res.Tree.Root())

			for i := 1; i < len(res.Comments); i++ {
				assert.LessOrEqual(t, res.Comments[i-1].Loc.Start, res.Comments[i].Loc.Start)
			}
		})
	}
}

// End to end: parse, attach, and require total coverage with a same-line
// comment landing as trailing.
func TestParse_AttachEndToEnd(t *testing.T) {
	res := parseSample(t, LanguageGo, goSample)

	attached := comments.Attach(res.Tree, res.Comments)
	assert.Equal(t, len(res.Comments), attached.Count())

	var trailingHost tree.NodeID
	for _, id := range attached.IDs() {
		for _, c := range attached.Trailing(id) {
			if c.Text == "// fast path" {
				trailingHost = id
			}
		}
	}
	require.NotEqual(t, tree.NoNode, trailingHost, "// fast path should trail a node on its line")
	host := res.Tree.Node(trailingHost)
	assert.Equal(t, res.Buffer.LineForOffset(host.Loc.End-1),
		res.Buffer.LineForOffset(attached.Trailing(trailingHost)[0].Loc.Start))
}

func TestNew_UnknownLanguage(t *testing.T) {
	_, err := New(Language("ruby"))
	require.Error(t, err)
}
