package filter

import (
	"encoding/json"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler() Compiler {
	return &exprCompiler{helperFuncs: createHelperFunctions()}
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // item fields are not known up front
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &exprFilter{
		expression: expression,
		program:    program,
	}, nil
}

// Evaluate evaluates the filter against one decoded item. Expressions that
// fail at runtime, for example by comparing a missing field to a number,
// count as no match.
func (f *exprFilter) Evaluate(item map[string]any) bool {
	env := createRuntimeEnvironment(item)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// Apply keeps the items matching the filter, preserving their order.
// Items that are not JSON objects are dropped.
func Apply(filter CompiledFilter, items []json.RawMessage) []json.RawMessage {
	matched := make([]json.RawMessage, 0, len(items))
	for _, raw := range items {
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		if filter.Evaluate(item) {
			matched = append(matched, raw)
		}
	}
	return matched
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds all helper functions to the provided map.
// Service payloads carry dates as ISO 8601 strings, which order correctly
// under plain string comparison, so the relative date helpers return
// RFC 3339 strings ready to compare against item fields.
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(value string) int {
		return int(time.Since(parseTime(value)).Hours() / 24)
	}
	env["daysAgo"] = func(days int) string {
		return time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	}
	env["monthsAgo"] = func(months int) string {
		return time.Now().UTC().AddDate(0, -months, 0).Format(time.RFC3339)
	}
	env["yearsAgo"] = func(years int) string {
		return time.Now().UTC().AddDate(-years, 0, 0).Format(time.RFC3339)
	}
	env["parseDate"] = parseTime
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Current time
	env["now"] = func() string {
		return time.Now().UTC().Format(time.RFC3339)
	}
}

// createRuntimeEnvironment creates the runtime environment for filter
// evaluation. The item's own fields win over helpers and the item binding.
func createRuntimeEnvironment(item map[string]any) map[string]any {
	env := make(map[string]any, len(item)+16)

	addHelperFunctions(env)
	env["item"] = item
	maps.Copy(env, item)

	return env
}

// parseTime accepts the date forms the service emits, full timestamps and
// plain dates alike. Unparseable input yields the zero time.
func parseTime(value string) time.Time {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
