package ir

import "fmt"

// Verify checks the structural invariants of a function's dataflow graph:
// terminator discipline, container boundary completeness, use-list
// consistency, and value visibility. It returns the first violation found.
func Verify(fn *Function) error {
	return verifyBlock(fn.Entry(), KindReturn)
}

func verifyBlock(b *Block, termKind Kind) error {
	term := b.Terminator()
	if term == nil {
		return fmt.Errorf("block has no terminator")
	}
	if term.Kind() != termKind {
		return fmt.Errorf("block terminated by %s, want %s", term.Kind(), termKind)
	}
	for i, op := range b.Operations() {
		if op.Kind().IsTerminator() && op != term {
			return fmt.Errorf("terminator %s in the middle of a block", op.Kind())
		}
		if op.Block() != b {
			return fmt.Errorf("operation %s has a stale block link", op.Kind())
		}
		for idx, operand := range op.Operands() {
			if err := verifyVisible(b, i, op, operand); err != nil {
				return err
			}
			if !hasUse(operand, op, idx) {
				return fmt.Errorf("missing use record for operand %d of %s", idx, op.Kind())
			}
		}
		if op.Kind().IsContainer() {
			if err := verifyContainer(op); err != nil {
				return err
			}
		} else if op.Body() != nil {
			return fmt.Errorf("%s carries a body block", op.Kind())
		}
	}
	return nil
}

func verifyContainer(op *Operation) error {
	body := op.Body()
	if body == nil {
		return fmt.Errorf("%s has no body", op.Kind())
	}
	if len(body.Args()) != op.NumOperands() {
		return fmt.Errorf("%s has %d operands but %d body arguments",
			op.Kind(), op.NumOperands(), len(body.Args()))
	}
	term := body.Terminator()
	if term == nil || term.Kind() != KindYield {
		return fmt.Errorf("%s body is not terminated by yield", op.Kind())
	}
	if term.NumOperands() != len(op.Results()) {
		return fmt.Errorf("%s yields %d values but declares %d results",
			op.Kind(), term.NumOperands(), len(op.Results()))
	}
	return verifyBlock(body, KindYield)
}

// verifyVisible checks that an operand is defined before its use within the
// current nesting: a block argument, or the result of an earlier operation.
// Task bodies may only reference outside values through their declared
// boundary arguments; schedule bodies capture the surrounding function, so
// visibility ascends through them.
func verifyVisible(b *Block, opIndex int, op *Operation, v *Value) error {
	blk, idx := b, opIndex
	for {
		if v.IsBlockArg() && v.OwnerBlock() == blk {
			return nil
		}
		if def := v.Def(); def != nil && def.Block() == blk {
			if blk.IndexOf(def) < idx {
				return nil
			}
			return fmt.Errorf("value %%%d used by %s before its definition", v.ID(), op.Kind())
		}
		parent := blk.Parent()
		if parent == nil {
			return fmt.Errorf("value %%%d is not visible to %s", v.ID(), op.Kind())
		}
		if parent.Kind() != KindSchedule {
			return fmt.Errorf("value %%%d leaks into %s body without a boundary argument",
				v.ID(), parent.Kind())
		}
		blk = parent.Block()
		idx = blk.IndexOf(parent)
	}
}

func hasUse(v *Value, owner *Operation, index int) bool {
	for _, u := range v.Uses() {
		if u.Owner == owner && u.Index == index {
			return true
		}
	}
	return false
}
