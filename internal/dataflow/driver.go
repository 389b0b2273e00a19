// Package dataflow transforms flat tensor functions into hierarchical
// dataflow graphs: primitive operations are grouped into task containers
// connected only through declared boundaries, and the whole body is wrapped
// in a single schedule container.
package dataflow

import (
	"github.com/tliron/commonlog"

	"loom/internal/ir"
)

var log = commonlog.GetLogger("loom.dataflow")

// Policy names the fusion strategy the driver applies to an operation kind.
type Policy int

const (
	PolicyOutline Policy = iota
	PolicyForwardFuse
	PolicyBackwardFuse
	PolicyConstFuse
)

// PolicyTable maps catalogued operation kinds to their fusion policy.
type PolicyTable map[ir.Kind]Policy

// Round 1 establishes the coarse compute-node structure: compute kinds are
// outlined, adjacent clamps and transposes are pulled backward into the task
// producing their operand, and reshapes are pushed forward into their
// consumer.
func round1Policies() PolicyTable {
	return PolicyTable{
		ir.KindConv2D:    PolicyOutline,
		ir.KindAvgPool2D: PolicyOutline,
		ir.KindMaxPool2D: PolicyOutline,
		ir.KindMatMul:    PolicyOutline,
		ir.KindMul:       PolicyOutline,
		ir.KindAdd:       PolicyOutline,
		ir.KindSub:       PolicyOutline,
		ir.KindRsqrt:     PolicyOutline,
		ir.KindClamp:     PolicyBackwardFuse,
		ir.KindTranspose: PolicyBackwardFuse,
		ir.KindReshape:   PolicyForwardFuse,
	}
}

// Round 2 outlines any transpose that survived round 1 (a transpose feeding a
// task is a producer, not a consumer, and backward fusion never fires for it)
// and fans constants out so every task owns a private clone.
func round2Policies() PolicyTable {
	return PolicyTable{
		ir.KindTranspose: PolicyOutline,
		ir.KindConst:     PolicyConstFuse,
	}
}

// Pass is a whole-function IR transformation.
type Pass interface {
	Name() string
	Apply(fn *ir.Function) bool // reports whether changes were made
	Description() string
}

// CreateDataflow is the task-formation pass: two fixpoint strategy rounds
// followed by the terminal schedule wrap.
type CreateDataflow struct{}

func (p *CreateDataflow) Name() string {
	return "Create Dataflow"
}

func (p *CreateDataflow) Description() string {
	return "Groups tensor operations into task nodes and wraps the body in a schedule"
}

func (p *CreateDataflow) Apply(fn *ir.Function) bool {
	dom := ir.ComputeDominance(fn)
	applyUntilNoMatch(fn, strategiesFor(round1Policies(), dom))
	applyUntilNoMatch(fn, strategiesFor(round2Policies(), dom))
	WrapWithSchedule(fn)
	return true
}

func strategiesFor(table PolicyTable, dom *ir.DomInfo) map[ir.Kind]strategy {
	strategies := make(map[ir.Kind]strategy, len(table))
	for kind, policy := range table {
		switch policy {
		case PolicyOutline:
			strategies[kind] = outline{}
		case PolicyForwardFuse:
			strategies[kind] = forwardFuse{dom: dom}
		case PolicyBackwardFuse:
			strategies[kind] = backwardFuse{dom: dom}
		case PolicyConstFuse:
			strategies[kind] = constFuse{}
		}
	}
	return strategies
}

// applyUntilNoMatch drives the registered strategies to a fixpoint over the
// function's top-level operations. Each sweep walks a snapshot of the entry
// block in program order; operations absorbed into a task earlier in the same
// sweep are skipped, and the loop ends when a full sweep changes nothing.
func applyUntilNoMatch(fn *ir.Function, strategies map[ir.Kind]strategy) {
	for {
		changed := false
		snapshot := append([]*ir.Operation(nil), fn.Entry().Operations()...)
		for _, op := range snapshot {
			if op.Block() != fn.Entry() {
				continue
			}
			st, ok := strategies[op.Kind()]
			if !ok {
				continue
			}
			if st.apply(fn, op) {
				log.Debugf("%s fired on %s in @%s", st.name(), op.Kind(), fn.Name)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// Pipeline runs a sequence of passes over every function of a module.
type Pipeline struct {
	passes []Pass
}

// NewPipeline creates the default pipeline with the dataflow pass installed.
func NewPipeline() *Pipeline {
	p := &Pipeline{}
	p.AddPass(&CreateDataflow{})
	return p
}

// AddPass appends a pass to the pipeline.
func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// Run executes all passes on every function of the module.
func (p *Pipeline) Run(m *ir.Module) {
	for _, pass := range p.passes {
		for _, fn := range m.Funcs {
			if pass.Apply(fn) {
				log.Infof("%s: rewrote @%s", pass.Name(), fn.Name)
			}
		}
	}
}
