package dataflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"loom/internal/ir"
	"loom/internal/parser"
)

// parseFn builds a single-function IR module from source.
func parseFn(t *testing.T, source string) *ir.Function {
	t.Helper()
	mod, err := parser.ParseSource("test.tir", source)
	require.NoError(t, err)
	require.Len(t, mod.Funcs, 1)
	return mod.Funcs[0]
}

// entryKinds returns the kinds of the function's top-level operations in
// order.
func entryKinds(fn *ir.Function) []ir.Kind {
	var kinds []ir.Kind
	for _, op := range fn.Entry().Operations() {
		kinds = append(kinds, op.Kind())
	}
	return kinds
}

// bodyKinds returns the kinds of a container body's operations in order.
func bodyKinds(op *ir.Operation) []ir.Kind {
	var kinds []ir.Kind
	for _, inner := range op.Body().Operations() {
		kinds = append(kinds, inner.Kind())
	}
	return kinds
}

// topLevelTasks returns the task operations in the entry block, in order.
func topLevelTasks(fn *ir.Function) []*ir.Operation {
	var tasks []*ir.Operation
	for _, op := range fn.Entry().Operations() {
		if op.Kind() == ir.KindTask {
			tasks = append(tasks, op)
		}
	}
	return tasks
}

// collectPrimitives walks the whole function and returns every primitive
// operation together with its directly enclosing container (nil at entry
// level).
func collectPrimitives(fn *ir.Function) map[*ir.Operation]*ir.Operation {
	found := make(map[*ir.Operation]*ir.Operation)
	var walk func(b *ir.Block)
	walk = func(b *ir.Block) {
		for _, op := range b.Operations() {
			if op.Kind().IsPrimitive() {
				found[op] = op.EnclosingContainer()
			}
			if op.Body() != nil {
				walk(op.Body())
			}
		}
	}
	walk(fn.Entry())
	return found
}
