package skeleton

import "strings"

const (
	moduleGap = 2 // blank lines around top-level definitions
	memberGap = 1 // blank lines between class members
)

// renderer writes statements with the source's line terminator so that
// headers and multi-line literals copied from the source agree with it.
type renderer struct {
	b       strings.Builder
	newline string
}

func render(m Module) string {
	r := &renderer{newline: m.Newline}
	if r.newline == "" {
		r.newline = "\n"
	}
	r.writeBlock(m.Stmts, "", moduleGap)
	return r.b.String()
}

// writeBlock writes stmts at indent. Definitions are separated from their
// neighbours by gap blank lines; other statements are written back to back.
func (r *renderer) writeBlock(stmts []Stmt, indent string, gap int) {
	for i, stmt := range stmts {
		if i > 0 && (isDefinition(stmt) || isDefinition(stmts[i-1])) {
			r.b.WriteString(strings.Repeat(r.newline, gap))
		}
		r.writeStmt(stmt, indent)
	}
}

func (r *renderer) writeStmt(stmt Stmt, indent string) {
	switch s := stmt.(type) {
	case Docstring:
		r.writeLine(indent, s.Text)
	case Assignment:
		r.writeLine(indent, s.Text)
	case Placeholder:
		r.writeLine(indent, "...")
	case ClassDef:
		r.writeLine(indent, s.Header)
		r.writeBlock(s.Body, s.BodyIndent, memberGap)
	case FuncDef:
		r.writeLine(indent, s.Header)
		r.writeBlock(s.Body, s.BodyIndent, memberGap)
	}
}

func (r *renderer) writeLine(indent, text string) {
	r.b.WriteString(indent)
	r.b.WriteString(text)
	r.b.WriteString(r.newline)
}

func isDefinition(stmt Stmt) bool {
	switch stmt.(type) {
	case ClassDef, FuncDef:
		return true
	}
	return false
}
