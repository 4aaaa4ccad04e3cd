package skeleton

import (
	"bytes"
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// The grammar also parses Python 2. These string prefixes are the ones a
// Python 3 tokenizer accepts.
var python3StringPrefixes = map[string]bool{
	"": true, "r": true, "u": true, "b": true, "br": true, "rb": true,
	"f": true, "fr": true, "rf": true, "t": true, "tr": true, "rt": true,
}

// Expressions that cannot follow `print >>` when it is read as a Python 3
// shift.
var nonShiftOperands = map[string]bool{
	"lambda":           true,
	"not_operator":     true,
	"named_expression": true,
}

// python3Checker walks a syntax tree looking for input a Python 3 parser
// rejects but the grammar accepts: Python 2 syntax, stray characters the
// lexer skipped, and blocks whose statements are not aligned.
type python3Checker struct {
	source []byte
	// covered is the end of the last token seen. Bytes between tokens
	// must be whitespace.
	covered uint
}

func checkPython3(root *sitter.Node, source []byte) error {
	c := &python3Checker{source: source}
	if err := c.visit(root, false); err != nil {
		return err
	}
	return c.gap(uint(len(source)), root)
}

func (c *python3Checker) visit(n *sitter.Node, inString bool) error {
	if err := c.check(n); err != nil {
		return err
	}

	// String contents are not tokens, so a string is covered as a whole.
	isString := n.Kind() == "string"
	if !inString && (isString || n.ChildCount() == 0) {
		if err := c.gap(n.StartByte(), n); err != nil {
			return err
		}
		if n.EndByte() > c.covered {
			c.covered = n.EndByte()
		}
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		if err := c.visit(n.Child(i), inString || isString); err != nil {
			return err
		}
	}
	return nil
}

// gap fails when anything but whitespace sits between the last token and end.
func (c *python3Checker) gap(end uint, at *sitter.Node) error {
	if end <= c.covered {
		return nil
	}
	text := c.source[c.covered:end]
	if c.covered == 0 {
		text = bytes.TrimPrefix(text, utf8BOM)
	}
	for _, ch := range text {
		switch ch {
		case ' ', '\t', '\f', '\r', '\n':
		default:
			return c.reject(at, fmt.Sprintf("invalid character %q", ch))
		}
	}
	return nil
}

func (c *python3Checker) check(n *sitter.Node) error {
	switch n.Kind() {
	case "print_statement":
		return c.checkPrint(n)
	case "exec_statement":
		return c.reject(n, "exec statement")
	case "<>":
		return c.reject(n, "'<>' operator")
	case "integer":
		return c.checkInteger(n)
	case "string_start":
		if strings.HasSuffix(c.text(n), "`") {
			return c.reject(n, "backtick expression")
		}
		prefix := strings.ToLower(strings.TrimRight(c.text(n), `"'`))
		if !python3StringPrefixes[prefix] {
			return c.reject(n, fmt.Sprintf("string prefix %q", prefix))
		}
	case "identifier":
		if text := c.text(n); text == "async" || text == "await" {
			return c.reject(n, fmt.Sprintf("keyword %q used as a name", text))
		}
	case "parameters", "lambda_parameters":
		return c.checkParameters(n)
	case "raise_statement":
		if childOfKind(n, "expression_list") != nil {
			return c.reject(n, "raise with a comma")
		}
	case "except_clause":
		if fieldCount(n, "value") > 1 {
			return c.reject(n, "except with a comma")
		}
	case "module":
		return c.checkModule(n)
	case "block":
		return c.checkBlock(n)
	}
	return nil
}

// checkPrint accepts `print >> f, x`, which Python 3 reads as a tuple whose
// first element is a shift. Any other print statement is Python 2.
func (c *python3Checker) checkPrint(n *sitter.Node) error {
	chevron := childOfKind(n, "chevron")
	if chevron == nil {
		return c.reject(n, "print statement")
	}
	if target := chevron.NamedChild(0); target != nil && nonShiftOperands[target.Kind()] {
		return c.reject(n, "print statement")
	}
	return nil
}

func (c *python3Checker) checkInteger(n *sitter.Node) error {
	text := strings.ToLower(c.text(n))
	switch {
	case strings.HasSuffix(text, "l"):
		return c.reject(n, "long integer suffix")
	case strings.HasSuffix(text, "j"),
		strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0o"), strings.HasPrefix(text, "0b"):
		return nil
	case strings.HasPrefix(text, "0") && strings.Trim(text, "0_") != "":
		return c.reject(n, "leading zeros in a decimal integer")
	}
	return nil
}

func (c *python3Checker) checkParameters(n *sitter.Node) error {
	for _, param := range namedChildren(n) {
		switch param.Kind() {
		case "tuple_pattern":
			return c.reject(param, "tuple parameter")
		case "default_parameter":
			if name := param.ChildByFieldName("name"); name != nil && name.Kind() == "tuple_pattern" {
				return c.reject(param, "tuple parameter")
			}
		}
	}
	return nil
}

// checkModule requires top-level statements that start a line to start it
// at column zero.
func (c *python3Checker) checkModule(n *sitter.Node) error {
	for _, stmt := range namedChildren(n) {
		if indent, ok := leadingIndent(c.source, stmt.StartByte()); ok && indent != "" {
			return c.reject(stmt, "unexpected indent")
		}
	}
	return nil
}

// checkBlock requires every statement of a block that starts a line to be
// indented like the first one. A block opened on its header's line may not
// continue on the next lines.
func (c *python3Checker) checkBlock(n *sitter.Node) error {
	stmts := namedChildren(n)
	if len(stmts) == 0 {
		return nil
	}
	first, firstOK := leadingIndent(c.source, stmts[0].StartByte())
	for _, stmt := range stmts[1:] {
		indent, ok := leadingIndent(c.source, stmt.StartByte())
		if !ok {
			continue // after a semicolon
		}
		if !firstOK {
			return c.reject(stmt, "unexpected indent")
		}
		if indentColumns(indent) != indentColumns(first) {
			return c.reject(stmt, "inconsistent indentation")
		}
	}
	return nil
}

func (c *python3Checker) reject(n *sitter.Node, what string) error {
	return fmt.Errorf("%w: %s at line %d", ErrUnparseable, what, n.StartPosition().Row+1)
}

func (c *python3Checker) text(n *sitter.Node) string {
	return string(c.source[n.StartByte():n.EndByte()])
}

// columns is an indentation measured with tabs to multiples of 8 and with
// tabs as a single column. Two indents are the same only if both agree.
type columns struct {
	tabbed, plain int
}

func indentColumns(indent string) columns {
	var cols columns
	for _, ch := range indent {
		switch ch {
		case ' ':
			cols.tabbed++
			cols.plain++
		case '\t':
			cols.tabbed = (cols.tabbed/8 + 1) * 8
			cols.plain++
		case '\f':
			cols = columns{}
		}
	}
	return cols
}

func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child.Kind() == kind {
			return child
		}
	}
	return nil
}

func fieldCount(n *sitter.Node, field string) int {
	count := 0
	for i := uint(0); i < n.ChildCount(); i++ {
		if n.FieldNameForChild(uint32(i)) == field {
			count++
		}
	}
	return count
}
