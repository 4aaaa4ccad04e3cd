// Package skeleton reduces Python source files to their declarative skeleton.
//
// A skeleton keeps the module docstring, every top-level class and function
// with its decorators and signature, class and function docstrings, and
// optionally top-level `name = value` assignments. Function bodies are
// replaced by their docstring or by `...`, so the result is still valid
// Python that an LLM can read at a fraction of the token cost.
//
// Source that does not parse is returned unchanged.
package skeleton

// Result is the outcome of one transform.
type Result struct {
	// Text is the skeleton, or the original source when Parsed is false.
	Text string
	// Parsed reports whether the source parsed and was reduced.
	Parsed bool
}

// Reduce skeletonizes source and reports whether the reduction happened.
// It never fails: unparseable source comes back verbatim with Parsed false.
func Reduce(source string, keepConstants bool) Result {
	m, err := parse([]byte(source))
	if err != nil {
		return Result{Text: source}
	}
	return Result{Text: render(reduceModule(m, keepConstants)), Parsed: true}
}

// Skeletonize returns the skeleton of source. When keepConstants is true,
// top-level simple assignments are kept. Unparseable source is returned
// unchanged.
func Skeletonize(source string, keepConstants bool) string {
	return Reduce(source, keepConstants).Text
}

// Default is Skeletonize with constants kept.
func Default(source string) string {
	return Skeletonize(source, true)
}
