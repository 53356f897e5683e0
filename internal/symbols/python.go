package symbols

import (
	"context"
	"errors"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/joescharf/connoisseur/internal/models"
)

// Python is the precise strategy: a tree-sitter walk collecting every
// function/method definition and class definition, at any nesting depth.
type Python struct {
	parser *sitter.Parser
}

// NewPython returns a Python strategy with a configured parser.
func NewPython() *Python {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Python{parser: parser}
}

// Extract parses text and walks the syntax tree. Invalid syntax yields a
// *ParseError and an empty table rather than partial results.
func (p *Python) Extract(text string) (models.SymbolTable, error) {
	src := []byte(text)

	tree, err := p.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return sortedTable(nil, nil), &ParseError{Err: err}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return sortedTable(nil, nil), &ParseError{Err: errors.New("invalid python syntax")}
	}

	functions := make(map[string]struct{})
	classes := make(map[string]struct{})
	walk(root, src, functions, classes)

	return sortedTable(functions, classes), nil
}

func walk(node *sitter.Node, src []byte, functions, classes map[string]struct{}) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "function_definition":
			if name := child.ChildByFieldName("name"); name != nil {
				functions[name.Content(src)] = struct{}{}
			}
		case "class_definition":
			if name := child.ChildByFieldName("name"); name != nil {
				classes[name.Content(src)] = struct{}{}
			}
		}
		walk(child, src, functions, classes)
	}
}
