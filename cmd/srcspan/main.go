package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/srcspan/internal/comments"
	"github.com/standardbeagle/srcspan/internal/parser"
	"github.com/standardbeagle/srcspan/internal/source"
	"github.com/standardbeagle/srcspan/internal/tree"
)

var Version = "0.1.0"

func main() {
	app := &cli.App{
		Name:                   "srcspan",
		Usage:                  "Source position lookups and comment attachment for parsed code",
		Version:                Version,
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			positionCommand(),
			tunnelCommand(),
			commentsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func positionCommand() *cli.Command {
	return &cli.Command{
		Name:      "position",
		Usage:     "Show line/column and character/code-unit offsets for a byte offset",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "offset",
				Aliases:  []string{"o"},
				Usage:    "Byte offset to resolve",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "encoding",
				Aliases: []string{"e"},
				Usage:   "Declared source encoding",
				Value:   "UTF-8",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no input files")
			}
			return forEachFile(c.Args().Slice(), func(path string, content []byte) (string, error) {
				return formatPosition(path, content, c.String("encoding"), c.Int("offset"))
			})
		},
	}
}

func tunnelCommand() *cli.Command {
	return &cli.Command{
		Name:      "tunnel",
		Usage:     "Show the node path enclosing a line/column coordinate",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "line",
				Usage:    "1-based line",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "column",
				Usage: "0-based byte column",
			},
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "Grammar to parse with (go, python)",
				Value:   "go",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no input files")
			}
			lang := parser.Language(c.String("lang"))
			line, column := c.Int("line"), c.Int("column")
			return forEachFile(c.Args().Slice(), func(path string, content []byte) (string, error) {
				return formatTunnel(path, content, lang, line, column)
			})
		},
	}
}

func commentsCommand() *cli.Command {
	return &cli.Command{
		Name:      "comments",
		Usage:     "Parse files and show which node each comment attaches to",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "Grammar to parse with (go, python)",
				Value:   "go",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no input files")
			}
			lang := parser.Language(c.String("lang"))
			return forEachFile(c.Args().Slice(), func(path string, content []byte) (string, error) {
				return formatComments(path, content, lang)
			})
		},
	}
}

// forEachFile processes files concurrently and prints results in argument
// order. Each worker owns its parser and converter; only the immutable file
// contents are shared.
func forEachFile(paths []string, process func(path string, content []byte) (string, error)) error {
	outputs := make([]string, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out, err := process(path, content)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, out := range outputs {
		fmt.Print(out)
	}
	return nil
}

func formatPosition(path string, content []byte, encoding string, offset int) (string, error) {
	buf := source.NewBuffer(content, encoding)
	conv, err := source.NewConverter(buf)
	if err != nil {
		return "", err
	}

	utf16, err := conv.CodeUnitOffset(offset, "UTF-16")
	if err != nil {
		return "", err
	}
	utf32, err := conv.CodeUnitOffset(offset, "UTF-32")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s @%d\n", path, offset)
	fmt.Fprintf(&b, "  line %d, column %d\n", buf.LineForOffset(offset), buf.ColumnForOffset(offset))
	fmt.Fprintf(&b, "  characters %d, utf-16 units %d, utf-32 units %d\n",
		conv.CharacterOffset(offset), utf16, utf32)
	return b.String(), nil
}

func formatTunnel(path string, content []byte, lang parser.Language, line, column int) (string, error) {
	p, err := parser.New(lang)
	if err != nil {
		return "", err
	}
	defer p.Close()

	res, err := p.Parse(content, "")
	if err != nil {
		return "", err
	}
	nodePath, err := res.Tree.Tunnel(line, column)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d:%d\n", path, line, column)
	for depth, id := range nodePath {
		node := res.Tree.Node(id)
		fmt.Fprintf(&b, "  %s%s %s\n", strings.Repeat("  ", depth), node.Kind, node.Loc)
	}
	return b.String(), nil
}

func formatComments(path string, content []byte, lang parser.Language) (string, error) {
	p, err := parser.New(lang)
	if err != nil {
		return "", err
	}
	defer p.Close()

	res, err := p.Parse(content, "")
	if err != nil {
		return "", err
	}
	attached := comments.Attach(res.Tree, res.Comments)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d comment(s)\n", path, attached.Count())
	for _, id := range attached.IDs() {
		b.WriteString(formatNodeComments(res.Tree, attached, id))
	}
	return b.String(), nil
}

func formatNodeComments(t *tree.Tree, res *comments.Result, id tree.NodeID) string {
	label := "<file>"
	if node := t.Node(id); node != nil {
		label = fmt.Sprintf("%s %s", node.Kind, node.Loc)
	}

	var b strings.Builder
	for _, c := range res.Leading(id) {
		fmt.Fprintf(&b, "  leading  %-30s %s %q\n", label, c.Kind, c.Text)
	}
	for _, c := range res.Trailing(id) {
		fmt.Fprintf(&b, "  trailing %-30s %s %q\n", label, c.Kind, c.Text)
	}
	return b.String()
}
