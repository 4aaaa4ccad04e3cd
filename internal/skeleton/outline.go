package skeleton

// DeclKind distinguishes the declarations listed by Outline.
type DeclKind string

const (
	DeclClass    DeclKind = "class"
	DeclFunction DeclKind = "function"
	DeclMethod   DeclKind = "method"
)

// Decl is a module-level class or function, or a method of a module-level
// class.
type Decl struct {
	Kind DeclKind
	Name string
	// Parent is the enclosing class name for methods.
	Parent string
}

// QualifiedName returns Class.method for methods and the bare name otherwise.
func (d Decl) QualifiedName() string {
	if d.Parent != "" {
		return d.Parent + "." + d.Name
	}
	return d.Name
}

// Outline lists the declarations a skeleton of source preserves, in source
// order. It returns ErrUnparseable when source does not parse.
func Outline(source string) ([]Decl, error) {
	m, err := parse([]byte(source))
	if err != nil {
		return nil, err
	}

	var decls []Decl
	for _, stmt := range m.Stmts {
		switch s := stmt.(type) {
		case ClassDef:
			decls = append(decls, Decl{Kind: DeclClass, Name: s.Name})
			for _, member := range s.Body {
				if fn, ok := member.(FuncDef); ok {
					decls = append(decls, Decl{Kind: DeclMethod, Name: fn.Name, Parent: s.Name})
				}
			}
		case FuncDef:
			decls = append(decls, Decl{Kind: DeclFunction, Name: s.Name})
		}
	}
	return decls, nil
}
