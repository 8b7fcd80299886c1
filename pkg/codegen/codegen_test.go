package codegen

import (
	"strings"
	"testing"

	"bearlangc/pkg/ast"
	"bearlangc/pkg/config"
	"bearlangc/pkg/lexer"
	"bearlangc/pkg/parser"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	prog, err := parser.ParseProgram(tokens)
	if err != nil {
		t.Fatalf("ParseProgram error: %v", err)
	}
	return Generate(prog, config.New())
}

func TestPreambleOnlySyncWithStdio(t *testing.T) {
	out := generate(t, "")
	if !strings.Contains(out, "std::ios_base::sync_with_stdio(false);") {
		t.Error("missing sync_with_stdio(false)")
	}
	if strings.Contains(out, "cin.tie") || strings.Contains(out, "boolalpha") {
		t.Error("cin.tie/boolalpha must be off by default")
	}
}

func TestEmptyProgramReturnsZero(t *testing.T) {
	out := generate(t, "")
	if !strings.Contains(out, "int main() {") || !strings.Contains(out, "return 0;\n}\n") {
		t.Errorf("unexpected frame: %s", out)
	}
}

func TestGreetingEmission(t *testing.T) {
	out := generate(t, `вывод "Привет"`+"\n")
	if !strings.Contains(out, `std::cout << "Привет" << std::endl;`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestPowerEmitsStdPow(t *testing.T) {
	out := generate(t, "целое x = 2 ^ 3 ^ 2\n")
	if !strings.Contains(out, "std::pow(2, std::pow(3, 2))") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestForRangeMangling(t *testing.T) {
	src := "целое n = 3\nдля (целое i от 1 до n)\n    вывод i\n"
	out := generate(t, src)
	if !strings.Contains(out, "int vr_0 = 3;") {
		t.Errorf("expected n to mangle to vr_0: %s", out)
	}
	if !strings.Contains(out, "for (int vr_1 = 1; vr_1 <= vr_0; ++vr_1) {") {
		t.Errorf("unexpected for-range emission: %s", out)
	}
}

func TestIfElseIfElseEmission(t *testing.T) {
	src := "целое n = 5\n" +
		"если (n < 0)\n" +
		"    вывод \"neg\"\n" +
		"иначе если (n == 0)\n" +
		"    вывод \"zero\"\n" +
		"иначе\n" +
		"    вывод \"pos\"\n"
	out := generate(t, src)
	for _, want := range []string{"if (", "else if (", "else {"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in: %s", want, out)
		}
	}
}

func TestScopeShadowingDistinctNames(t *testing.T) {
	src := "целое x = 1\n" +
		"пока (x < 3)\n" +
		"    целое x = 10\n" +
		"    вывод x\n" +
		"    x = x + 1\n"
	out := generate(t, src)
	if !strings.Contains(out, "int vr_0 = 1;") {
		t.Errorf("outer x should mangle to vr_0: %s", out)
	}
	if !strings.Contains(out, "int vr_1 = 10;") {
		t.Errorf("inner x should mangle to a fresh name vr_1: %s", out)
	}
	if !strings.Contains(out, "while ((vr_0 < 3))") {
		t.Errorf("while condition should reference outer x: %s", out)
	}
	if !strings.Contains(out, "vr_1 = (vr_1 + 1);") {
		t.Errorf("assignment after inner decl should reference inner x: %s", out)
	}
}

func TestStringReescapingRoundTrip(t *testing.T) {
	src := `вывод "a\nb\t\"\\c"` + "\n"
	out := generate(t, src)
	if !strings.Contains(out, `"a\nb\t\"\\c"`) {
		t.Errorf("unexpected re-escaped literal: %s", out)
	}
}

func TestUnaryAlwaysParenthesized(t *testing.T) {
	tokens, err := lexer.Tokenize("целое x = -1\n")
	if err != nil {
		t.Fatal(err)
	}
	prog, err := parser.ParseProgram(tokens)
	if err != nil {
		t.Fatal(err)
	}
	decl := prog.Statements[0].Data.(ast.VarDeclData)
	if decl.Initializer.Kind != ast.Unary {
		t.Fatalf("expected Unary, got %v", decl.Initializer.Kind)
	}
	out := Generate(prog, config.New())
	if !strings.Contains(out, "-(1)") {
		t.Errorf("expected parenthesized unary: %s", out)
	}
}

func TestVarDeclWithoutInitializerValueInitializes(t *testing.T) {
	out := generate(t, "целое x\n")
	if !strings.Contains(out, "int vr_0{};") {
		t.Errorf("expected value-initialization: %s", out)
	}
}

func TestOptInPreambleToggles(t *testing.T) {
	tokens, _ := lexer.Tokenize("")
	prog, _ := parser.ParseProgram(tokens)
	cfg := config.New()
	cfg.Set(config.EmitCinTie, true)
	cfg.Set(config.EmitBoolalpha, true)
	out := Generate(prog, cfg)
	if !strings.Contains(out, "std::cin.tie(nullptr);") {
		t.Error("expected cin.tie to be emitted when toggled on")
	}
	if !strings.Contains(out, "std::cout << std::boolalpha;") {
		t.Error("expected boolalpha to be emitted when toggled on")
	}
}
