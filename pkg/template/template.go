// Package template resolves task input references against workflow outputs.
//
// A declared input value that is a string of the exact form "{Name.Key}" is
// replaced by the workflow output stored under "Name.Key". Every other value
// passes through unchanged. A reference to an absent output resolves to nil
// rather than an error: the task body decides whether a missing input is
// fatal.
package template

import "strings"

// Resolve returns a copy of inputs with every reference replaced by the
// matching value from outputs. References nested inside map and slice values
// are resolved as well. The inputs map itself is never mutated.
func Resolve(inputs map[string]any, outputs map[string]any) map[string]any {
	if inputs == nil {
		return nil
	}

	resolved := make(map[string]any, len(inputs))
	for key, value := range inputs {
		resolved[key] = resolveValue(value, outputs)
	}

	return resolved
}

func resolveValue(value any, outputs map[string]any) any {
	switch v := value.(type) {
	case string:
		key, ok := ReferenceKey(v)
		if !ok {
			return v
		}

		return outputs[key]
	case map[string]any:
		nested := make(map[string]any, len(v))
		for k, item := range v {
			nested[k] = resolveValue(item, outputs)
		}

		return nested
	case []any:
		nested := make([]any, len(v))
		for i, item := range v {
			nested[i] = resolveValue(item, outputs)
		}

		return nested
	default:
		return value
	}
}

// ReferenceKey reports whether s has the exact reference form "{Name.Key}"
// and returns the output key ("Name.Key") when it does.
func ReferenceKey(s string) (string, bool) {
	if len(s) < 5 || !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return "", false
	}

	inner := s[1 : len(s)-1]
	if strings.ContainsAny(inner, "{}") {
		return "", false
	}

	dot := strings.Index(inner, ".")
	if dot <= 0 || dot == len(inner)-1 {
		return "", false
	}

	return inner, true
}
