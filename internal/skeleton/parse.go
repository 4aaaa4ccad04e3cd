package skeleton

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// ErrUnparseable is returned when source text is not valid Python 3.
var ErrUnparseable = errors.New("source is not parseable python")

// indentUnit is used for bodies written on the same line as their header.
const indentUnit = "    "

var pythonLanguage = sitter.NewLanguage(python.Language())

// parse builds the statement view of source. Source is decoded per its
// encoding declaration first. Any failure, including a panic in the parser
// binding, is reported as ErrUnparseable.
func parse(source []byte) (m Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = Module{}, fmt.Errorf("%w: %v", ErrUnparseable, r)
		}
	}()

	source, err = decodeSource(source)
	if err != nil {
		return Module{}, err
	}
	if bytes.IndexByte(source, 0) >= 0 {
		return Module{}, fmt.Errorf("%w: source contains a null byte", ErrUnparseable)
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(pythonLanguage); err != nil {
		return Module{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return Module{}, fmt.Errorf("%w: parser returned no tree", ErrUnparseable)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return Module{}, fmt.Errorf("%w: syntax error", ErrUnparseable)
	}
	if err := checkPython3(root, source); err != nil {
		return Module{}, err
	}

	c := &converter{source: source}
	return Module{Stmts: c.statements(root, ""), Newline: lineEnding(source)}, nil
}

// lineEnding returns the terminator of the first line: "\r\n" or "\n".
func lineEnding(source []byte) string {
	if i := bytes.IndexByte(source, '\n'); i > 0 && source[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// converter turns tree-sitter nodes into Stmt values. Everything it returns
// is copied out of the tree, so the tree can be closed afterwards.
type converter struct {
	source []byte
}

// statements converts the statements of a module or block whose statements
// sit at indent.
func (c *converter) statements(n *sitter.Node, indent string) []Stmt {
	var stmts []Stmt
	for _, child := range namedChildren(n) {
		stmts = append(stmts, c.statement(child, indent))
	}
	return stmts
}

func (c *converter) statement(n *sitter.Node, indent string) Stmt {
	switch n.Kind() {
	case "expression_statement":
		return c.expressionStatement(n)
	case "class_definition":
		return c.classDef(n, n, indent)
	case "function_definition":
		return c.funcDef(n, n, indent)
	case "decorated_definition":
		def := n.ChildByFieldName("definition")
		if def == nil {
			break
		}
		switch def.Kind() {
		case "class_definition":
			return c.classDef(n, def, indent)
		case "function_definition":
			return c.funcDef(n, def, indent)
		}
	}
	return Other{Kind: n.Kind()}
}

func (c *converter) expressionStatement(n *sitter.Node) Stmt {
	exprs := namedChildren(n)
	if len(exprs) != 1 {
		return Other{Kind: n.Kind()}
	}

	expr := exprs[0]
	switch expr.Kind() {
	case "string":
		if c.isPlainString(expr) {
			return Docstring{Text: c.text(expr)}
		}
	case "assignment":
		if name, ok := c.simpleAssignment(expr); ok {
			return Assignment{Name: name, Text: c.text(n)}
		}
	}
	return Other{Kind: expr.Kind()}
}

// isPlainString reports whether a string node is a literal without
// formatting, i.e. not an f-string or t-string.
func (c *converter) isPlainString(n *sitter.Node) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "interpolation":
			return false
		case "string_start":
			prefix := strings.ToLower(strings.TrimRight(c.text(child), `"'`))
			if strings.ContainsAny(prefix, "ft") {
				return false
			}
		}
	}
	return true
}

// simpleAssignment matches `name = value` with exactly one target and no
// annotation, returning the target name.
func (c *converter) simpleAssignment(n *sitter.Node) (string, bool) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if left == nil || right == nil || n.ChildByFieldName("type") != nil {
		return "", false
	}
	if left.Kind() != "identifier" {
		return "", false
	}
	switch right.Kind() {
	case "assignment", "augmented_assignment":
		// a = b = value
		return "", false
	}
	return c.text(left), true
}

// classDef converts def, which is outer itself or the definition wrapped by
// the decorated_definition outer.
func (c *converter) classDef(outer, def *sitter.Node, indent string) Stmt {
	body := def.ChildByFieldName("body")
	bodyIndent := c.bodyIndent(body, indent)
	return ClassDef{
		Name:       c.text(def.ChildByFieldName("name")),
		Header:     c.header(outer, def),
		BodyIndent: bodyIndent,
		Body:       c.statements(body, bodyIndent),
	}
}

func (c *converter) funcDef(outer, def *sitter.Node, indent string) Stmt {
	body := def.ChildByFieldName("body")
	bodyIndent := c.bodyIndent(body, indent)
	return FuncDef{
		Name:       c.text(def.ChildByFieldName("name")),
		Header:     c.header(outer, def),
		BodyIndent: bodyIndent,
		Body:       c.statements(body, bodyIndent),
	}
}

// header returns the source from the start of outer through the colon that
// opens def's body. Decorators, parameters and annotations come along verbatim.
func (c *converter) header(outer, def *sitter.Node) string {
	end := def.EndByte()
	if body := def.ChildByFieldName("body"); body != nil {
		end = body.StartByte()
	}
	for i := uint(0); i < def.ChildCount(); i++ {
		if child := def.Child(i); child.Kind() == ":" {
			end = child.EndByte()
		}
	}
	return strings.TrimRight(string(c.source[outer.StartByte():end]), " \t\r\n")
}

// bodyIndent returns the indentation of the first statement in body, or one
// level deeper than parent when the body shares a line with its header.
func (c *converter) bodyIndent(body *sitter.Node, parent string) string {
	if stmts := namedChildren(body); len(stmts) > 0 {
		if indent, ok := leadingIndent(c.source, stmts[0].StartByte()); ok {
			return indent
		}
	}
	return parent + indentUnit
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(c.source[n.StartByte():n.EndByte()])
}

// leadingIndent returns the whitespace between the start of the line and
// offset. ok is false when something other than whitespace precedes offset.
func leadingIndent(source []byte, offset uint) (string, bool) {
	lineStart := bytes.LastIndexByte(source[:offset], '\n') + 1
	prefix := source[lineStart:offset]
	if len(bytes.Trim(prefix, " \t\f")) != 0 {
		return "", false
	}
	return string(prefix), true
}

// namedChildren returns the named children of n, skipping comments and
// other extras.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var children []*sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil || child.IsExtra() {
			continue
		}
		children = append(children, child)
	}
	return children
}
