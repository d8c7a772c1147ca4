package symbols

import (
	"testing"

	"github.com/sourceprism/prism/pkg/models"
	"github.com/sourceprism/prism/pkg/parser"
)

func extract(t *testing.T, lang parser.Language, src string) []models.Symbol {
	t.Helper()
	p := parser.New()
	defer p.Close()
	res, err := p.Parse([]byte(src), lang, "test."+string(lang))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return NewExtractor(nil).Extract(res)
}

func find(syms []models.Symbol, name string, kind models.SymbolKind) *models.Symbol {
	for i := range syms {
		if syms[i].Name == name && syms[i].Kind == kind {
			return &syms[i]
		}
	}
	return nil
}

func TestExtractTypeScriptKinds(t *testing.T) {
	src := `
export function visible() {}
function hidden() {}
const total = 1;
export const shared = 2;

class Session {
  start() {}
  static create() {}
}
`
	syms := extract(t, parser.LangTypeScript, src)

	cases := []struct {
		name     string
		kind     models.SymbolKind
		exported bool
	}{
		{"visible", models.KindFunction, true},
		{"hidden", models.KindFunction, false},
		{"total", models.KindVariable, false},
		{"shared", models.KindVariable, true},
		{"Session", models.KindClass, false},
		{"start", models.KindMethod, false},
		{"create", models.KindMethod, false},
	}
	for _, tc := range cases {
		sym := find(syms, tc.name, tc.kind)
		if sym == nil {
			t.Errorf("missing %s %s", tc.kind, tc.name)
			continue
		}
		if sym.IsExported != tc.exported {
			t.Errorf("%s: exported = %v, want %v", tc.name, sym.IsExported, tc.exported)
		}
	}

	if sym := find(syms, "create", models.KindMethod); sym != nil && !sym.IsStatic {
		t.Error("create should be static")
	}
	if sym := find(syms, "start", models.KindMethod); sym != nil && sym.EnclosingClass != "Session" {
		t.Errorf("start enclosing class = %q, want Session", sym.EnclosingClass)
	}
}

func TestExtractExportAliases(t *testing.T) {
	src := `
function impl() {}
export { impl as run };
`
	syms := extract(t, parser.LangTypeScript, src)
	sym := find(syms, "impl", models.KindFunction)
	if sym == nil {
		t.Fatal("missing impl")
	}
	if !sym.IsExported {
		t.Error("impl is re-exported by name and should be exported")
	}
}

func TestExtractPythonSymbols(t *testing.T) {
	src := `
TIMEOUT = 30

def fetch():
    local = 1
    return local

class Client:
    def __init__(self):
        pass

    def send(self, payload):
        pass

    @staticmethod
    def version():
        return 1
`
	syms := extract(t, parser.LangPython, src)

	if sym := find(syms, "TIMEOUT", models.KindVariable); sym == nil {
		t.Error("missing module-level variable TIMEOUT")
	}
	if sym := find(syms, "fetch", models.KindFunction); sym == nil || sym.IsExported {
		t.Error("fetch should be a non-exported function")
	}
	if sym := find(syms, "__init__", models.KindMethod); sym == nil || !sym.IsExported {
		t.Error("__init__ is a dunder and should be exported")
	}
	if sym := find(syms, "send", models.KindMethod); sym == nil || sym.EnclosingClass != "Client" {
		t.Error("send should be a method of Client")
	}
	if sym := find(syms, "version", models.KindMethod); sym == nil || !sym.IsStatic {
		t.Error("version should be static")
	}
	// Function-local assignments are not module-level variables.
	if sym := find(syms, "local", models.KindVariable); sym != nil {
		t.Error("function-local assignment should not produce a variable symbol")
	}
}

func TestExtractParameters(t *testing.T) {
	src := `
def process(payload, retries=3, *args, **kwargs):
    pass
`
	syms := extract(t, parser.LangPython, src)
	for _, name := range []string{"payload", "retries", "args", "kwargs"} {
		if find(syms, name, models.KindParameter) == nil {
			t.Errorf("missing parameter %s", name)
		}
	}
}

func TestExtractFunctionExpressionParameters(t *testing.T) {
	src := `
const handler = (evt, ctx) => evt.id;
const send = function(payload) { return payload; };
items.map(item => item.id);
`
	syms := extract(t, parser.LangTypeScript, src)
	for _, name := range []string{"evt", "ctx", "payload", "item"} {
		if find(syms, name, models.KindParameter) == nil {
			t.Errorf("missing parameter %s", name)
		}
	}
	// Anonymous function values contribute parameters but no function symbol.
	if find(syms, "handler", models.KindFunction) != nil {
		t.Error("arrow value should not produce a function symbol")
	}
}

func TestExtractLambdaParameters(t *testing.T) {
	src := `
transform = lambda value, factor=2: value * factor
`
	syms := extract(t, parser.LangPython, src)
	for _, name := range []string{"value", "factor"} {
		if find(syms, name, models.KindParameter) == nil {
			t.Errorf("missing parameter %s", name)
		}
	}
	if find(syms, "transform", models.KindVariable) == nil {
		t.Error("missing variable transform")
	}
}

func TestExtractDestructuring(t *testing.T) {
	src := `
const { host, port: p } = options;
const [first, second] = items;
`
	syms := extract(t, parser.LangTypeScript, src)
	for _, name := range []string{"host", "p", "first", "second"} {
		if find(syms, name, models.KindVariable) == nil {
			t.Errorf("missing destructured variable %s", name)
		}
	}
	if find(syms, "port", models.KindVariable) != nil {
		t.Error("pair key 'port' does not bind and should not be a symbol")
	}
}

func TestExtractDecoratedIsExported(t *testing.T) {
	src := `
@app.route("/health")
def health():
    return "ok"
`
	syms := extract(t, parser.LangPython, src)
	sym := find(syms, "health", models.KindFunction)
	if sym == nil {
		t.Fatal("missing health")
	}
	if !sym.IsExported {
		t.Error("decorated function should be exported")
	}
}

func TestExtractMiddlewareLifecycleExported(t *testing.T) {
	src := `
class CorrelationMiddleware:
    def dispatch(self, request):
        pass

    def helper(self):
        pass
`
	syms := extract(t, parser.LangPython, src)
	if sym := find(syms, "dispatch", models.KindMethod); sym == nil || !sym.IsExported {
		t.Error("dispatch on a *Middleware class should be exported")
	}
	if sym := find(syms, "helper", models.KindMethod); sym == nil || sym.IsExported {
		t.Error("helper is not a lifecycle method and should stay non-exported")
	}
}

func TestExtractNestedConfigClassExported(t *testing.T) {
	src := `
class Settings:
    class Config:
        pass
`
	syms := extract(t, parser.LangPython, src)
	if sym := find(syms, "Config", models.KindClass); sym == nil || !sym.IsExported {
		t.Error("nested Config class should be exported")
	}
	if sym := find(syms, "Settings", models.KindClass); sym == nil || sym.IsExported {
		t.Error("top-level Settings class should not be exported by default")
	}
}

func TestExtractLastWriteWins(t *testing.T) {
	src := `
def setup():
    pass

def setup():
    return 1
`
	syms := extract(t, parser.LangPython, src)
	var count int
	var last models.Symbol
	for _, s := range syms {
		if s.Name == "setup" && s.Kind == models.KindFunction {
			count++
			last = s
		}
	}
	if count != 1 {
		t.Fatalf("got %d setup symbols, want 1", count)
	}
	if last.Start.Row != 4 {
		t.Errorf("kept symbol starts at row %d, want the later definition (row 4)", last.Start.Row)
	}
}
