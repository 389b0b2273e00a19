// Package parser reads the textual tensor-program form (.tir) and lowers it
// to the dataflow IR, resolving SSA names and reporting positioned
// diagnostics.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"

	"loom/internal/ir"
)

var tirParser = participle.MustBuild[Program](
	participle.Lexer(tirLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// ParseFile parses a .tir file into an IR module.
func ParseFile(path string) (*ir.Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses source text into an IR module. The returned error is
// either a participle.Error with position information or a lowering
// diagnostic prefixed with its source position.
func ParseSource(path, source string) (*ir.Module, error) {
	program, err := tirParser.ParseString(path, source)
	if err != nil {
		return nil, err
	}
	mod := &ir.Module{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	for _, f := range program.Funcs {
		fn, err := lowerFunc(f)
		if err != nil {
			return nil, err
		}
		mod.Funcs = append(mod.Funcs, fn)
	}
	return mod, nil
}

func lowerFunc(f *Func) (*ir.Function, error) {
	fn := ir.NewFunction(strings.TrimPrefix(f.Name, "@"))
	scope := make(map[string]*ir.Value)

	for _, p := range f.Params {
		name := strings.TrimPrefix(p.Name, "%")
		if _, exists := scope[name]; exists {
			return nil, errAt(p.Pos, "duplicate parameter %%%s", name)
		}
		scope[name] = fn.Entry().AddArgument(p.Type)
	}

	for _, stmt := range f.Stmts {
		if err := lowerStmt(fn, scope, stmt); err != nil {
			return nil, err
		}
	}

	values, err := resolveAll(scope, f.Ret.Values, f.Ret.Pos)
	if err != nil {
		return nil, err
	}
	fn.Entry().Append(fn.NewOperation(ir.KindReturn, values))
	return fn, nil
}

func lowerStmt(fn *ir.Function, scope map[string]*ir.Value, stmt *Stmt) error {
	kind, ok := ir.KindByName(stmt.Op)
	if !ok {
		return errAt(stmt.Pos, "unknown operation %q", stmt.Op)
	}
	if !kind.IsPrimitive() {
		return errAt(stmt.Pos, "%q cannot appear in source programs", stmt.Op)
	}
	if kind == ir.KindConst && len(stmt.Args) > 0 {
		return errAt(stmt.Pos, "const takes no operands")
	}
	if kind != ir.KindConst && stmt.Attr != "" {
		return errAt(stmt.Pos, "%q takes no attribute", stmt.Op)
	}
	if len(stmt.Types) != len(stmt.Results) {
		return errAt(stmt.Pos, "%d results but %d result types", len(stmt.Results), len(stmt.Types))
	}

	args, err := resolveAll(scope, stmt.Args, stmt.Pos)
	if err != nil {
		return err
	}
	op := fn.NewOperation(kind, args, stmt.Types...)
	op.Attr = stmt.Attr
	fn.Entry().Append(op)

	for i, res := range stmt.Results {
		name := strings.TrimPrefix(res, "%")
		if _, exists := scope[name]; exists {
			return errAt(stmt.Pos, "value %%%s redefined", name)
		}
		scope[name] = op.Result(i)
	}
	return nil
}

func resolveAll(scope map[string]*ir.Value, refs []string, pos lexer.Position) ([]*ir.Value, error) {
	var values []*ir.Value
	for _, ref := range refs {
		name := strings.TrimPrefix(ref, "%")
		v, ok := scope[name]
		if !ok {
			return nil, errAt(pos, "use of undefined value %%%s", name)
		}
		values = append(values, v)
	}
	return values, nil
}

func errAt(pos lexer.Position, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...))
}

// ReportParseError prints a friendly caret-style parse error message.
func ReportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(0, pos.Column-1)) + "^"

	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", pe.Message())
}
