package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var tirLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// Tensor types must match before identifiers
		{"TensorType", `tensor<[^>]*>`, nil},

		// SSA value and function references
		{"ValueRef", `%[a-zA-Z0-9_]+`, nil},
		{"FuncRef", `@[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Keywords and identifiers
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Numeric literals (constant payloads)
		{"Number", `-?[0-9]+(\.[0-9]+)?`, nil},

		// Punctuation
		{"Punct", `[(){}:,=]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
