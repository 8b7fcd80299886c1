// Package bearlangc translates BearLang source text into C++ source text.
package bearlangc

import (
	"bearlangc/pkg/codegen"
	"bearlangc/pkg/config"
	"bearlangc/pkg/lexer"
	"bearlangc/pkg/parser"
)

// Translate runs the full lexer -> parser -> code generator pipeline over
// source and returns a complete C++ translation unit. On any lexical or
// syntactic error it returns no output and a non-nil error; it never
// panics and never touches the filesystem or a process's standard streams.
func Translate(source string) (string, error) {
	return TranslateWithConfig(source, config.New())
}

// TranslateWithConfig is Translate with an explicit codegen configuration,
// letting a host opt into the off-by-default cin.tie/boolalpha preamble
// toggles.
func TranslateWithConfig(source string, cfg *config.Config) (string, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return "", err
	}
	prog, err := parser.ParseProgram(tokens)
	if err != nil {
		return "", err
	}
	return codegen.Generate(prog, cfg), nil
}
