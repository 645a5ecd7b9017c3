package parser

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Language selects a grammar for the adapter.
type Language string

const (
	LanguageGo     Language = "go"
	LanguagePython Language = "python"
)

// Languages lists the supported grammars.
func Languages() []Language {
	return []Language{LanguageGo, LanguagePython}
}

func newTSParser(lang Language) (*tree_sitter.Parser, error) {
	var language *tree_sitter.Language
	switch lang {
	case LanguageGo:
		language = tree_sitter.NewLanguage(tree_sitter_go.Language())
	case LanguagePython:
		language = tree_sitter.NewLanguage(tree_sitter_python.Language())
	default:
		return nil, fmt.Errorf("unknown language %q", lang)
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		parser.Close()
		return nil, fmt.Errorf("set language %q: %w", lang, err)
	}
	return parser, nil
}
