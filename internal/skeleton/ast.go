package skeleton

// Stmt is a statement in the reduced view of a Python module.
//
// The set of implementations is closed: Docstring, Assignment, ClassDef,
// FuncDef, Other and Placeholder. Code that consumes a Stmt switches on the
// concrete type.
type Stmt interface {
	isStmt()
}

// Module is the ordered list of top-level statements of one source file.
type Module struct {
	Stmts []Stmt
	// Newline is the source's line terminator, "\n" or "\r\n".
	Newline string
}

// Docstring is a bare string-literal expression statement.
type Docstring struct {
	// Text is the literal exactly as written, prefix and quotes included.
	Text string
}

// Assignment is a simple `name = value` statement.
type Assignment struct {
	Name string
	// Text is the whole statement as written, possibly spanning lines.
	Text string
}

// ClassDef is a class definition, including any decorators.
type ClassDef struct {
	Name string
	// Header runs from the first decorator (or the class keyword) through the
	// colon that opens the body.
	Header string
	// BodyIndent is the leading whitespace of the body's statements.
	BodyIndent string
	Body       []Stmt
}

// FuncDef is a function or method definition, including any decorators.
type FuncDef struct {
	Name       string
	Header     string
	BodyIndent string
	Body       []Stmt
}

// Other is any statement the reduction never keeps (imports, control flow,
// calls, complex assignments, ...).
type Other struct {
	Kind string
}

// Placeholder stands in for an elided body and renders as `...`.
type Placeholder struct{}

func (Docstring) isStmt()   {}
func (Assignment) isStmt()  {}
func (ClassDef) isStmt()    {}
func (FuncDef) isStmt()     {}
func (Other) isStmt()       {}
func (Placeholder) isStmt() {}
