package dataflow

import "loom/internal/ir"

// strategy decides whether and how one candidate operation joins a task.
// apply reports whether a rewrite was performed; declining is not an error.
type strategy interface {
	name() string
	apply(fn *ir.Function, op *ir.Operation) bool
}

// outline builds a singleton task around any catalogued operation not yet
// inside a container. This is the base case that guarantees every catalogued
// primitive ends up in some task.
type outline struct{}

func (outline) name() string { return "outline" }

func (outline) apply(fn *ir.Function, op *ir.Operation) bool {
	if insideContainer(op) {
		return false
	}
	FuseOps(fn, []*ir.Operation{op})
	return true
}

// forwardFuse absorbs a producer operation into the task consuming one of its
// results. Among the task users, the dominating-most one is selected so the
// operation moves into the earliest consumer.
type forwardFuse struct {
	dom *ir.DomInfo
}

func (forwardFuse) name() string { return "forward-fuse" }

func (s forwardFuse) apply(fn *ir.Function, op *ir.Operation) bool {
	if insideContainer(op) {
		return false
	}
	var target *ir.Operation
	for _, result := range op.Results() {
		for _, user := range result.Users() {
			if user.Kind() != ir.KindTask {
				continue
			}
			if target == nil || s.dom.Dominates(user, target) {
				target = user
			}
		}
	}
	if target == nil {
		return false
	}
	FuseOps(fn, []*ir.Operation{op, target})
	return true
}

// backwardFuse absorbs a consumer operation into the task producing one of
// its operands. Among the task producers, the one dominated by every other
// candidate is selected so the operation joins its closest producer.
type backwardFuse struct {
	dom *ir.DomInfo
}

func (backwardFuse) name() string { return "backward-fuse" }

func (s backwardFuse) apply(fn *ir.Function, op *ir.Operation) bool {
	if insideContainer(op) {
		return false
	}
	var target *ir.Operation
	for _, operand := range op.Operands() {
		def := operand.Def()
		if def == nil || def.Kind() != ir.KindTask {
			continue
		}
		if target == nil || s.dom.Dominates(target, def) {
			target = def
		}
	}
	if target == nil {
		return false
	}
	FuseOps(fn, []*ir.Operation{target, op})
	return true
}

// constFuse fans a constant out to every task using it: each such use gets a
// private clone of the constant placed and fused into that task, so no task
// keeps a boundary input edge for constant data. The original constant stays
// behind for whatever non-task uses remain.
type constFuse struct{}

func (constFuse) name() string { return "const-fuse" }

func (constFuse) apply(fn *ir.Function, op *ir.Operation) bool {
	if insideContainer(op) {
		return false
	}
	changed := false
	for {
		use := firstTaskUse(op)
		if use == nil {
			break
		}
		node := use.Owner
		clone := op.Clone(fn)
		node.Block().InsertBefore(clone, node)
		node.SetOperand(use.Index, clone.Result(0))
		FuseOps(fn, []*ir.Operation{clone, node})
		changed = true
	}
	return changed
}

func firstTaskUse(op *ir.Operation) *ir.Use {
	for _, result := range op.Results() {
		for _, u := range result.Uses() {
			if u.Owner.Kind() == ir.KindTask {
				return u
			}
		}
	}
	return nil
}
