package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Parse tree for the textual tensor-program form. Programs are flat: each
// function is a straight line of primitive operations ending in a return.
// Containers only ever appear in printed output, never in source.

type Program struct {
	Funcs []*Func `@@*`
}

type Func struct {
	Pos    lexer.Position
	Name   string   `"func" @FuncRef "("`
	Params []*Param `[ @@ { "," @@ } ] ")" "{"`
	Stmts  []*Stmt  `@@*`
	Ret    *Return  `@@ "}"`
}

type Param struct {
	Pos  lexer.Position
	Name string `@ValueRef ":"`
	Type string `@(TensorType | Ident)`
}

type Stmt struct {
	Pos     lexer.Position
	Results []string `@ValueRef { "," @ValueRef } "="`
	Op      string   `@Ident`
	Attr    string   `[ @Number ]`
	Args    []string `[ "(" [ @ValueRef { "," @ValueRef } ] ")" ]`
	Types   []string `":" @(TensorType | Ident) { "," @(TensorType | Ident) }`
}

type Return struct {
	Pos    lexer.Position
	Values []string `"return" [ @ValueRef { "," @ValueRef } ]`
}
