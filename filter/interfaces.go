package filter

// CompiledFilter is a compiled filter expression ready for evaluation.
type CompiledFilter interface {
	// Evaluate reports whether a decoded item matches the filter.
	Evaluate(item map[string]any) bool

	// Expression returns the original filter expression.
	Expression() string
}

// Compiler compiles filter expressions into executable filters.
type Compiler interface {
	// Compile parses and compiles a filter expression.
	Compile(expression string) (CompiledFilter, error)
}
