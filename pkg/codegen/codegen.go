// Package codegen walks a BearLang Program and emits a single C++
// translation unit as a string, performing block-scoped name mangling
// along the way.
package codegen

import (
	"fmt"
	"strings"

	"bearlangc/pkg/ast"
	"bearlangc/pkg/config"
)

// symbol maps one BearLang identifier to its mangled C++ name within a
// single scope frame.
type symbol struct {
	Name    string
	Mangled string
	Next    *symbol
}

// scope is one frame of the mangler's scope stack.
type scope struct {
	Symbols *symbol
	Parent  *scope
}

func newScope(parent *scope) *scope { return &scope{Parent: parent} }

// Context holds the per-invocation mutable state of one generate() call:
// the mangler's scope stack and its monotonically increasing counter.
type Context struct {
	cfg          *config.Config
	currentScope *scope
	counter      int
}

func newContext(cfg *config.Config) *Context {
	return &Context{cfg: cfg, currentScope: newScope(nil)}
}

func (ctx *Context) enterScope() { ctx.currentScope = newScope(ctx.currentScope) }

func (ctx *Context) exitScope() {
	if ctx.currentScope.Parent != nil {
		ctx.currentScope = ctx.currentScope.Parent
	}
}

// declare introduces name in the current scope with a fresh vr_<N> mangled
// identifier and returns it.
func (ctx *Context) declare(name string) string {
	mangled := fmt.Sprintf("vr_%d", ctx.counter)
	ctx.counter++
	ctx.currentScope.Symbols = &symbol{Name: name, Mangled: mangled, Next: ctx.currentScope.Symbols}
	return mangled
}

// resolve walks the scope stack from innermost outward. If name was never
// declared, it is emitted unchanged (a free reference).
func (ctx *Context) resolve(name string) string {
	for s := ctx.currentScope; s != nil; s = s.Parent {
		for sym := s.Symbols; sym != nil; sym = sym.Next {
			if sym.Name == name {
				return sym.Mangled
			}
		}
	}
	return name
}

// Generate emits a complete C++ translation unit for prog. It never fails:
// all validation is the parser's responsibility.
func Generate(prog *ast.Program, cfg *config.Config) string {
	if cfg == nil {
		cfg = config.New()
	}
	ctx := newContext(cfg)

	var body strings.Builder
	for _, stmt := range prog.Statements {
		ctx.emitStatement(&body, 1, stmt)
	}

	var out strings.Builder
	out.WriteString("#include <cmath>\n")
	out.WriteString("#include <iostream>\n")
	out.WriteString("#include <string>\n\n")
	out.WriteString("int main() {\n")
	out.WriteString("    std::ios_base::sync_with_stdio(false);\n")
	if cfg.IsEnabled(config.EmitCinTie) {
		out.WriteString("    std::cin.tie(nullptr);\n")
	}
	if cfg.IsEnabled(config.EmitBoolalpha) {
		out.WriteString("    std::cout << std::boolalpha;\n")
	}
	out.WriteString(body.String())
	out.WriteString("    return 0;\n")
	out.WriteString("}\n")
	return out.String()
}

func indent(level int) string {
	return strings.Repeat("    ", level)
}

func (ctx *Context) emitBlock(out *strings.Builder, level int, body []*ast.Node) {
	for _, stmt := range body {
		ctx.emitStatement(out, level, stmt)
	}
}

func (ctx *Context) emitStatement(out *strings.Builder, level int, node *ast.Node) {
	switch node.Kind {
	case ast.VarDecl:
		data := node.Data.(ast.VarDeclData)
		mangled := ctx.declare(data.Name)
		out.WriteString(indent(level))
		out.WriteString(data.Type.CppType())
		out.WriteByte(' ')
		out.WriteString(mangled)
		if data.Initializer != nil {
			out.WriteString(" = ")
			out.WriteString(ctx.emitExpr(data.Initializer))
		} else {
			out.WriteString("{}")
		}
		out.WriteString(";\n")

	case ast.Assign:
		data := node.Data.(ast.AssignData)
		out.WriteString(indent(level))
		out.WriteString(ctx.resolve(data.Name))
		out.WriteString(" = ")
		out.WriteString(ctx.emitExpr(data.Value))
		out.WriteString(";\n")

	case ast.Input:
		data := node.Data.(ast.InputData)
		out.WriteString(indent(level))
		out.WriteString("std::cin >> ")
		out.WriteString(ctx.resolve(data.Name))
		out.WriteString(";\n")

	case ast.Output:
		data := node.Data.(ast.OutputData)
		out.WriteString(indent(level))
		out.WriteString("std::cout << ")
		out.WriteString(ctx.emitExpr(data.Value))
		out.WriteString(" << std::endl;\n")

	case ast.If:
		ctx.emitIf(out, level, node.Data.(ast.IfData))

	case ast.While:
		data := node.Data.(ast.WhileData)
		out.WriteString(indent(level))
		out.WriteString("while (")
		out.WriteString(ctx.emitExpr(data.Condition))
		out.WriteString(") {\n")
		ctx.enterScope()
		ctx.emitBlock(out, level+1, data.Body)
		ctx.exitScope()
		out.WriteString(indent(level))
		out.WriteString("}\n")

	case ast.ForRange:
		ctx.emitForRange(out, level, node.Data.(ast.ForRangeData))

	default:
		panic(fmt.Sprintf("codegen: unhandled statement kind %v", node.Kind))
	}
}

func (ctx *Context) emitIf(out *strings.Builder, level int, data ast.IfData) {
	for i, branch := range data.Branches {
		out.WriteString(indent(level))
		if i == 0 {
			out.WriteString("if (")
		} else {
			out.WriteString("else if (")
		}
		out.WriteString(ctx.emitExpr(branch.Condition))
		out.WriteString(") {\n")
		ctx.enterScope()
		ctx.emitBlock(out, level+1, branch.Body)
		ctx.exitScope()
		out.WriteString(indent(level))
		out.WriteString("}\n")
	}
	if data.HasElse {
		out.WriteString(indent(level))
		out.WriteString("else {\n")
		ctx.enterScope()
		ctx.emitBlock(out, level+1, data.ElseBranch)
		ctx.exitScope()
		out.WriteString(indent(level))
		out.WriteString("}\n")
	}
}

func (ctx *Context) emitForRange(out *strings.Builder, level int, data ast.ForRangeData) {
	ctx.enterScope()
	mangled := ctx.declare(data.Name)
	cppType := data.Type.CppType()

	out.WriteString(indent(level))
	out.WriteString("for (")
	out.WriteString(cppType)
	out.WriteByte(' ')
	out.WriteString(mangled)
	out.WriteString(" = ")
	out.WriteString(ctx.emitExpr(data.From))
	out.WriteString("; ")
	out.WriteString(mangled)
	out.WriteString(" <= ")
	out.WriteString(ctx.emitExpr(data.To))
	out.WriteString("; ++")
	out.WriteString(mangled)
	out.WriteString(") {\n")
	ctx.emitBlock(out, level+1, data.Body)
	out.WriteString(indent(level))
	out.WriteString("}\n")
	ctx.exitScope()
}

func (ctx *Context) emitExpr(node *ast.Node) string {
	switch node.Kind {
	case ast.Literal:
		data := node.Data.(ast.LiteralData)
		switch data.Type {
		case ast.Boolean:
			if data.BoolValue {
				return "true"
			}
			return "false"
		case ast.String:
			return escapeString(data.Text)
		default:
			return data.Text
		}

	case ast.Variable:
		data := node.Data.(ast.VariableData)
		return ctx.resolve(data.Name)

	case ast.Unary:
		data := node.Data.(ast.UnaryData)
		return fmt.Sprintf("%s(%s)", data.Op, ctx.emitExpr(data.Operand))

	case ast.Binary:
		data := node.Data.(ast.BinaryData)
		if data.Op == "^" {
			return fmt.Sprintf("std::pow(%s, %s)", ctx.emitExpr(data.Left), ctx.emitExpr(data.Right))
		}
		return fmt.Sprintf("(%s %s %s)", ctx.emitExpr(data.Left), data.Op, ctx.emitExpr(data.Right))

	default:
		panic(fmt.Sprintf("codegen: unhandled expression kind %v", node.Kind))
	}
}

// escapeString wraps value in double quotes, re-escaping \, ", \n and \t.
// Decoding then re-encoding is idempotent: the emitted quoted text is a
// byte-for-byte round trip of the lexer's decoded payload.
func escapeString(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
