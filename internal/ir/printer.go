package ir

import (
	"fmt"
	"strings"
)

// Printer provides pretty-printing for the dataflow IR.
type Printer struct {
	indent  int
	output  strings.Builder
	names   map[*Value]string
	nextVal int
	nextArg int
}

// NewPrinter creates a new IR printer.
func NewPrinter() *Printer {
	return &Printer{names: make(map[*Value]string)}
}

// PrintModule returns the string representation of a module.
func PrintModule(m *Module) string {
	var sb strings.Builder
	for i, fn := range m.Funcs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(Print(fn))
	}
	return sb.String()
}

// Print returns the string representation of a function.
func Print(fn *Function) string {
	p := NewPrinter()
	p.printFunction(fn)
	return p.output.String()
}

// Helper methods

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

// name assigns printer-local SSA names in traversal order so output stays
// stable regardless of how many values a pass allocated along the way.
func (p *Printer) name(v *Value) string {
	if n, ok := p.names[v]; ok {
		return n
	}
	var n string
	if v.IsBlockArg() {
		n = fmt.Sprintf("%%arg%d", p.nextArg)
		p.nextArg++
	} else {
		n = fmt.Sprintf("%%%d", p.nextVal)
		p.nextVal++
	}
	p.names[v] = n
	return n
}

func (p *Printer) nameList(values []*Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = p.name(v)
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) typeList(values []*Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Type
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) printFunction(fn *Function) {
	params := make([]string, len(fn.Params()))
	for i, v := range fn.Params() {
		params[i] = fmt.Sprintf("%s: %s", p.name(v), v.Type)
	}
	p.writeLine("func @%s(%s) {", fn.Name, strings.Join(params, ", "))
	p.indent++
	for _, op := range fn.Entry().Operations() {
		p.printOperation(op)
	}
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printOperation(op *Operation) {
	switch {
	case op.Kind().IsTerminator():
		if op.NumOperands() == 0 {
			p.writeLine("%s", op.Kind())
		} else {
			p.writeLine("%s %s", op.Kind(), p.nameList(op.Operands()))
		}
	case op.Kind().IsContainer():
		p.printContainer(op)
	case op.Kind() == KindConst:
		p.writeLine("%s = const %s : %s", p.name(op.Result(0)), op.Attr, op.Result(0).Type)
	default:
		p.writeLine("%s = %s(%s) : %s",
			p.nameList(op.Results()), op.Kind(), p.nameList(op.Operands()),
			p.typeList(op.Results()))
	}
}

func (p *Printer) printContainer(op *Operation) {
	head := fmt.Sprintf("%s(%s)", op.Kind(), p.nameList(op.Operands()))
	if len(op.Results()) > 0 {
		head = fmt.Sprintf("%s = %s", p.nameList(op.Results()), head)
	}
	p.writeLine("%s {", head)
	p.indent++
	if args := op.Body().Args(); len(args) > 0 {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = fmt.Sprintf("%s: %s", p.name(a), a.Type)
		}
		p.writeLine("^body(%s):", strings.Join(parts, ", "))
	}
	for _, inner := range op.Body().Operations() {
		p.printOperation(inner)
	}
	p.indent--
	if len(op.Results()) > 0 {
		p.writeLine("} : %s", p.typeList(op.Results()))
	} else {
		p.writeLine("}")
	}
}
