package dataflow

import "loom/internal/ir"

// boundary is the cut induced by a prospective task's member set: inputs are
// values defined outside the set and used inside, outputs are values defined
// inside and used outside.
type boundary struct {
	inputs  []*ir.Value
	outputs []*ir.Value
}

// computeBoundary walks the members in their given order, operands before
// results, and records each boundary value once at its first encounter.
// Members may themselves be containers; they contribute as opaque units.
func computeBoundary(members []*ir.Operation) boundary {
	memberSet := make(map[*ir.Operation]bool, len(members))
	for _, op := range members {
		memberSet[op] = true
	}

	var b boundary
	seenIn := make(map[*ir.Value]bool)
	seenOut := make(map[*ir.Value]bool)
	for _, op := range members {
		for _, operand := range op.Operands() {
			if memberSet[operand.Def()] || seenIn[operand] {
				continue
			}
			seenIn[operand] = true
			b.inputs = append(b.inputs, operand)
		}
		for _, result := range op.Results() {
			if seenOut[result] {
				continue
			}
			for _, user := range result.Users() {
				if !memberSet[user] {
					seenOut[result] = true
					b.outputs = append(b.outputs, result)
					break
				}
			}
		}
	}
	return b
}
