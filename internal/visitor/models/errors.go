package models

import "strings"

// ValidationError reports every problem found in a submission or lookup key.
// Fields names the offending wire fields in the order they were found.
type ValidationError struct {
	Fields   []string
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(field, problem string) {
	e.Fields = append(e.Fields, field)
	e.Problems = append(e.Problems, problem)
}

// result returns nil when nothing was recorded.
func (e *ValidationError) result() error {
	if len(e.Problems) == 0 {
		return nil
	}
	e.Fields = dedupe(e.Fields)
	return e
}

// dedupe drops repeated field names, keeping first-seen order.
func dedupe(fields []string) []string {
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func newFieldError(field, problem string) *ValidationError {
	return &ValidationError{Fields: []string{field}, Problems: []string{problem}}
}
