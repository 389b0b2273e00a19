package dataflow

import "loom/internal/ir"

// FuseOps groups the given operations into a new task. Members must be in
// program order; the task is created immediately before the first member,
// each member is moved into its body in order, and def-use edges across the
// boundary are rewired. This always succeeds even if the surrounding graph
// still needs further rewrites.
func FuseOps(fn *ir.Function, members []*ir.Operation) *ir.Operation {
	if len(members) == 0 {
		panic("dataflow: FuseOps requires at least one member")
	}
	memberSet := make(map[*ir.Operation]bool, len(members))
	for _, op := range members {
		memberSet[op] = true
	}

	b := computeBoundary(members)
	task := fn.NewOperation(ir.KindTask, b.inputs, ir.Types(b.outputs)...)
	members[0].Block().InsertBefore(task, members[0])
	body := fn.NewBlock(task)

	// Internal uses of each input switch to the matching boundary argument.
	for _, input := range b.inputs {
		arg := body.AddArgument(input.Type)
		input.ReplaceUsesIf(arg, func(owner *ir.Operation) bool {
			return memberSet[owner]
		})
	}

	// External uses of each output switch to the matching task result.
	for i, output := range b.outputs {
		result := task.Result(i)
		output.ReplaceUsesIf(result, func(owner *ir.Operation) bool {
			return !memberSet[owner]
		})
	}

	// The yield is appended after the external rewiring so its own operands
	// keep referring to the values produced inside the body.
	yield := fn.NewOperation(ir.KindYield, b.outputs)
	body.Append(yield)
	for _, op := range members {
		op.MoveBefore(yield)
	}
	return task
}

// insideContainer reports whether the operation already belongs to a task or
// schedule body, which removes it from consideration by every strategy.
func insideContainer(op *ir.Operation) bool {
	return op.EnclosingContainer() != nil
}
