package skeleton

// reduceModule keeps the leading module docstring, every class and function
// (each reduced), and, when keepConstants is set, simple assignments.
func reduceModule(m Module, keepConstants bool) Module {
	var stmts []Stmt
	for i, stmt := range m.Stmts {
		switch s := stmt.(type) {
		case Docstring:
			if i == 0 {
				stmts = append(stmts, s)
			}
		case ClassDef:
			stmts = append(stmts, reduceClass(s))
		case FuncDef:
			stmts = append(stmts, reduceFunc(s))
		case Assignment:
			if keepConstants {
				stmts = append(stmts, s)
			}
		}
	}
	return Module{Stmts: stmts, Newline: m.Newline}
}

// reduceClass keeps the class docstring and its methods. A class left with
// nothing gets a placeholder body.
func reduceClass(c ClassDef) ClassDef {
	var body []Stmt
	for i, stmt := range c.Body {
		switch s := stmt.(type) {
		case Docstring:
			if i == 0 {
				body = append(body, s)
			}
		case FuncDef:
			body = append(body, reduceFunc(s))
		}
	}
	if len(body) == 0 {
		body = []Stmt{Placeholder{}}
	}
	c.Body = body
	return c
}

// reduceFunc replaces the body with its docstring, or with a placeholder
// when it has none.
func reduceFunc(f FuncDef) FuncDef {
	if len(f.Body) > 0 {
		if doc, ok := f.Body[0].(Docstring); ok {
			f.Body = []Stmt{doc}
			return f
		}
	}
	f.Body = []Stmt{Placeholder{}}
	return f
}
