package ir

// Core IR structures for the tensor dataflow graph. Operations live in ordered
// blocks, reference values by identity, and every value tracks its uses so
// passes can rewire def-use edges structurally.

// Module is a collection of functions, typically one source file.
type Module struct {
	Name  string
	Funcs []*Function
}

// Function holds a single entry block. Parameters are the entry block's
// arguments.
type Function struct {
	Name  string
	entry *Block

	nextValueID int
}

// NewFunction creates an empty function with an entry block.
func NewFunction(name string) *Function {
	fn := &Function{Name: name}
	fn.entry = &Block{fn: fn}
	return fn
}

// Entry returns the function's entry block.
func (f *Function) Entry() *Block { return f.entry }

// Params returns the function parameters (the entry block arguments).
func (f *Function) Params() []*Value { return f.entry.Args() }

func (f *Function) newValue(typ string, def *Operation, owner *Block) *Value {
	v := &Value{id: f.nextValueID, Type: typ, def: def, owner: owner}
	f.nextValueID++
	return v
}

// Value is produced by exactly one operation, or is a block argument.
// Values are referenced by identity and never copied.
type Value struct {
	id    int
	Type  string
	def   *Operation // producing operation; nil for block arguments
	owner *Block     // owning block for block arguments
	uses  []*Use
}

// Use records one operand slot referencing a value.
type Use struct {
	Owner *Operation
	Index int
}

// ID returns the value's creation-order identifier.
func (v *Value) ID() int { return v.id }

// Def returns the producing operation, or nil for block arguments.
func (v *Value) Def() *Operation { return v.def }

// IsBlockArg reports whether the value is a block boundary argument.
func (v *Value) IsBlockArg() bool { return v.def == nil }

// OwnerBlock returns the block declaring this value as an argument, or nil.
func (v *Value) OwnerBlock() *Block { return v.owner }

// Uses returns the value's uses in first-use order.
func (v *Value) Uses() []*Use { return v.uses }

// Users returns the distinct operations using this value, in first-use order.
func (v *Value) Users() []*Operation {
	var users []*Operation
	seen := make(map[*Operation]bool)
	for _, u := range v.uses {
		if !seen[u.Owner] {
			seen[u.Owner] = true
			users = append(users, u.Owner)
		}
	}
	return users
}

// ReplaceUsesIf rewires every use whose owning operation satisfies pred to
// refer to repl instead.
func (v *Value) ReplaceUsesIf(repl *Value, pred func(owner *Operation) bool) {
	for _, u := range append([]*Use(nil), v.uses...) {
		if pred(u.Owner) {
			u.Owner.SetOperand(u.Index, repl)
		}
	}
}

func (v *Value) addUse(owner *Operation, index int) {
	v.uses = append(v.uses, &Use{Owner: owner, Index: index})
}

func (v *Value) removeUse(owner *Operation, index int) {
	for i, u := range v.uses {
		if u.Owner == owner && u.Index == index {
			v.uses = append(v.uses[:i], v.uses[i+1:]...)
			return
		}
	}
}

// Operation is a node in the dataflow graph: a kind tag, ordered operands and
// results, and for container kinds a single body block.
type Operation struct {
	kind Kind
	Attr string // constant payload for KindConst, empty otherwise

	operands []*Value
	results  []*Value
	body     *Block // only for container kinds
	block    *Block // enclosing block, nil while detached
}

// NewOperation creates a detached operation with one result per result type.
// Operand uses are registered immediately.
func (f *Function) NewOperation(kind Kind, operands []*Value, resultTypes ...string) *Operation {
	op := &Operation{kind: kind}
	for _, v := range operands {
		op.operands = append(op.operands, v)
		v.addUse(op, len(op.operands)-1)
	}
	for _, typ := range resultTypes {
		op.results = append(op.results, f.newValue(typ, op, nil))
	}
	return op
}

// NewBlock creates an empty body block attached to the given container
// operation.
func (f *Function) NewBlock(parent *Operation) *Block {
	b := &Block{fn: f, parent: parent}
	parent.body = b
	return b
}

// Kind returns the operation's kind tag.
func (op *Operation) Kind() Kind { return op.kind }

// Operands returns the ordered operand values.
func (op *Operation) Operands() []*Value { return op.operands }

// Operand returns the i-th operand.
func (op *Operation) Operand(i int) *Value { return op.operands[i] }

// NumOperands returns the operand count.
func (op *Operation) NumOperands() int { return len(op.operands) }

// SetOperand replaces the i-th operand, keeping use lists consistent.
func (op *Operation) SetOperand(i int, v *Value) {
	old := op.operands[i]
	if old == v {
		return
	}
	old.removeUse(op, i)
	op.operands[i] = v
	v.addUse(op, i)
}

// SetOperands replaces the whole operand list, keeping use lists consistent.
func (op *Operation) SetOperands(values []*Value) {
	for i, old := range op.operands {
		old.removeUse(op, i)
	}
	op.operands = nil
	for _, v := range values {
		op.operands = append(op.operands, v)
		v.addUse(op, len(op.operands)-1)
	}
}

// Results returns the ordered result values.
func (op *Operation) Results() []*Value { return op.results }

// Result returns the i-th result.
func (op *Operation) Result(i int) *Value { return op.results[i] }

// Block returns the enclosing block, or nil while the operation is detached.
func (op *Operation) Block() *Block { return op.block }

// Body returns the container body block, or nil for primitives.
func (op *Operation) Body() *Block { return op.body }

// EnclosingContainer returns the container operation whose body directly
// holds op, or nil if op sits in a function entry block.
func (op *Operation) EnclosingContainer() *Operation {
	if op.block == nil {
		return nil
	}
	return op.block.parent
}

// MoveBefore detaches the operation from its current block and inserts it
// immediately before ref, which may live in a different block.
func (op *Operation) MoveBefore(ref *Operation) {
	if op.block != nil {
		op.block.remove(op)
	}
	ref.block.InsertBefore(op, ref)
}

// Clone returns a detached copy of the operation with the same kind, operands
// and attribute, and fresh result values of the same types. Container bodies
// are not cloned.
func (op *Operation) Clone(f *Function) *Operation {
	types := make([]string, len(op.results))
	for i, r := range op.results {
		types[i] = r.Type
	}
	clone := f.NewOperation(op.kind, op.operands, types...)
	clone.Attr = op.Attr
	return clone
}

// Block is an ordered sequence of operations, the last of which is the block
// terminator, plus optional boundary arguments supplied by the enclosing
// container (or by the caller, for the entry block).
type Block struct {
	fn     *Function
	parent *Operation // enclosing container, nil for the entry block
	args   []*Value
	ops    []*Operation
}

// Fn returns the function owning this block.
func (b *Block) Fn() *Function { return b.fn }

// Parent returns the container operation whose body this block is, or nil
// for a function entry block.
func (b *Block) Parent() *Operation { return b.parent }

// Args returns the block's boundary arguments in order.
func (b *Block) Args() []*Value { return b.args }

// AddArgument appends a boundary argument of the given type.
func (b *Block) AddArgument(typ string) *Value {
	arg := b.fn.newValue(typ, nil, b)
	b.args = append(b.args, arg)
	return arg
}

// Operations returns the block's operations in order.
func (b *Block) Operations() []*Operation { return b.ops }

// Terminator returns the block's final operation if it is a terminator kind,
// else nil.
func (b *Block) Terminator() *Operation {
	if len(b.ops) == 0 {
		return nil
	}
	last := b.ops[len(b.ops)-1]
	if !last.kind.IsTerminator() {
		return nil
	}
	return last
}

// Append adds a detached operation at the end of the block.
func (b *Block) Append(op *Operation) {
	op.block = b
	b.ops = append(b.ops, op)
}

// InsertBefore inserts a detached operation immediately before ref.
func (b *Block) InsertBefore(op, ref *Operation) {
	i := b.indexOf(ref)
	if i < 0 {
		panic("ir: insertion point not in block")
	}
	op.block = b
	b.ops = append(b.ops, nil)
	copy(b.ops[i+1:], b.ops[i:])
	b.ops[i] = op
}

// IndexOf returns the position of op within the block, or -1.
func (b *Block) IndexOf(op *Operation) int { return b.indexOf(op) }

func (b *Block) indexOf(op *Operation) int {
	for i, o := range b.ops {
		if o == op {
			return i
		}
	}
	return -1
}

func (b *Block) remove(op *Operation) {
	i := b.indexOf(op)
	if i < 0 {
		return
	}
	b.ops = append(b.ops[:i], b.ops[i+1:]...)
	op.block = nil
}
