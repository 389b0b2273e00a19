package dataflow

import "loom/internal/ir"

// WrapWithSchedule wraps the whole function body in a single schedule
// container. The schedule takes no inputs, its results mirror the function's
// return values, and the function's terminator is rewritten to return those
// results. Called exactly once per function, after both fusion rounds.
func WrapWithSchedule(fn *ir.Function) *ir.Operation {
	entry := fn.Entry()
	term := entry.Terminator()
	returnValues := append([]*ir.Value(nil), term.Operands()...)

	schedule := fn.NewOperation(ir.KindSchedule, nil, ir.Types(returnValues)...)
	entry.InsertBefore(schedule, entry.Operations()[0])
	body := fn.NewBlock(schedule)

	yield := fn.NewOperation(ir.KindYield, returnValues)
	body.Append(yield)
	for _, op := range append([]*ir.Operation(nil), entry.Operations()...) {
		if op == schedule || op == term {
			continue
		}
		op.MoveBefore(yield)
	}
	term.SetOperands(schedule.Results())
	return schedule
}
