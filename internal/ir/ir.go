// Package ir implements the hierarchical dataflow IR the compiler operates
// on: functions of straight-line tensor operations, task and schedule
// containers with explicit input/output boundaries, identity-based values
// with tracked use lists, and a dominance oracle over the nesting.
package ir

// Types returns the types of the given values, in order.
func Types(values []*Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Type
	}
	return out
}
