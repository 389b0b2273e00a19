package ir

// Dominance for straight-line nested regions. With no branching, an operation
// dominates another iff it comes earlier in program order once both are lifted
// into their common block; a container dominates everything in its body.

// DomInfo answers dominance queries for one function. It is constructed once
// before a pass runs and consulted read-only; answers are derived from block
// positions, so operations created later (new containers spliced into the
// entry block) are covered without recomputation.
type DomInfo struct {
	fn *Function
}

// ComputeDominance builds the dominance oracle for fn.
func ComputeDominance(fn *Function) *DomInfo {
	return &DomInfo{fn: fn}
}

// Dominates reports whether every execution path reaching b has already
// executed a. Reflexively true for a == b.
func (d *DomInfo) Dominates(a, b *Operation) bool {
	if a == b {
		return true
	}
	// Lift b until it shares a block with a's chain. An operation with no
	// common block (detached) dominates nothing.
	blocksOfA := make(map[*Block]*Operation)
	for op := a; op != nil; {
		blk := op.Block()
		if blk == nil {
			break
		}
		blocksOfA[blk] = op
		op = blk.Parent()
	}
	for op := b; op != nil; {
		blk := op.Block()
		if blk == nil {
			return false
		}
		if anchorA, ok := blocksOfA[blk]; ok {
			if anchorA == op {
				// One encloses the other; only the enclosing container
				// dominates the interior, not the other way round.
				return anchorA == a
			}
			return blk.IndexOf(anchorA) < blk.IndexOf(op)
		}
		op = blk.Parent()
	}
	return false
}
