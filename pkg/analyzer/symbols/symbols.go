// Package symbols walks one file's syntax tree and emits the flat list of
// declared symbols, each tagged with an export/visibility judgment derived
// from syntax plus language- and framework-specific rules.
package symbols

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/sourceprism/prism/pkg/analyzer/lang"
	"github.com/sourceprism/prism/pkg/config"
	"github.com/sourceprism/prism/pkg/models"
	"github.com/sourceprism/prism/pkg/parser"
)

// Extractor emits Symbols from a parsed file.
type Extractor struct {
	rules *config.RuleSet
}

// NewExtractor creates an extractor with the given framework rules.
func NewExtractor(rules *config.RuleSet) *Extractor {
	if rules == nil {
		rules = config.CompileRules(config.DefaultConfig().Frameworks)
	}
	return &Extractor{rules: rules}
}

// walkState is the ambient traversal state, threaded explicitly through
// the recursive walk so the extractor stays re-entrant.
type walkState struct {
	exportedNames   map[string]bool
	enclosingClass  string
	enclosingFunc   string
	inExport        bool
	middlewareClass bool
	decorated       bool
	decoratorText   string
}

// Extract performs a single recursive descent over the syntax tree and
// returns one Symbol per declaration, in traversal order. Declarations
// sharing kind, name, enclosing class, and file collapse into one entry;
// the last one wins.
func (e *Extractor) Extract(res *parser.ParseResult) []models.Symbol {
	tbl := newTable()
	st := walkState{exportedNames: CollectExportedNames(res)}
	e.walk(res.Tree.RootNode(), res, st, tbl)
	return tbl.ordered()
}

func (e *Extractor) walk(node *sitter.Node, res *parser.ParseResult, st walkState, tbl *table) {
	nodeType := node.Type()

	switch {
	case nodeType == "export_statement":
		st.inExport = true

	case nodeType == "decorated_definition":
		st.decorated = true
		st.decoratorText = parser.GetNodeText(node, res.Source)

	case lang.IsClassNode(res.Language, nodeType):
		e.emitClass(node, res, st, tbl)
		return // emitClass recurses with updated state

	case lang.IsFunctionNode(res.Language, nodeType) || lang.IsMethodDefinition(res.Language, nodeType):
		e.emitFunction(node, res, st, tbl)
		return // emitFunction recurses with updated state

	case lang.IsFunctionExpression(res.Language, nodeType):
		// Arrow functions, function expressions, and lambdas declare no
		// symbol of their own, but their formal parameters are still bound
		// names inside the body.
		e.emitParameters(node, res, st, "", tbl)

	case nodeType == "variable_declarator":
		e.emitDeclarator(node, res, st, tbl)

	case nodeType == "assignment" && res.Language == parser.LangPython:
		e.emitPythonAssignment(node, res, st, tbl)
	}

	for i := range int(node.NamedChildCount()) {
		e.walk(node.NamedChild(i), res, st, tbl)
	}
}

func (e *Extractor) emitClass(node *sitter.Node, res *parser.ParseResult, st walkState, tbl *table) {
	name := lang.NameOf(node, res.Source)
	if name == "" {
		return
	}

	// A nested class literally named Config follows the settings-class
	// idiom and is always treated as exported.
	configClass := name == "Config" && st.enclosingClass != ""

	tbl.put(models.Symbol{
		ID:             models.SymbolID(models.KindClass, name, st.enclosingClass, res.Path),
		Name:           name,
		Kind:           models.KindClass,
		FilePath:       res.Path,
		Start:          position(node.StartPoint()),
		End:            position(node.EndPoint()),
		EnclosingClass: st.enclosingClass,
		IsExported:     e.isExported(name, st) || configClass,
	})

	inner := st
	inner.enclosingClass = name
	inner.middlewareClass = e.rules.IsMiddlewareClass(name)
	inner.inExport = false
	inner.decorated = false
	inner.decoratorText = ""
	for i := range int(node.NamedChildCount()) {
		e.walk(node.NamedChild(i), res, inner, tbl)
	}
}

func (e *Extractor) emitFunction(node *sitter.Node, res *parser.ParseResult, st walkState, tbl *table) {
	name := lang.NameOf(node, res.Source)
	if name == "" {
		// Anonymous functions contribute no symbol, but their bodies
		// may still declare variables and nested functions.
		inner := st
		inner.decorated = false
		for i := range int(node.NamedChildCount()) {
			e.walk(node.NamedChild(i), res, inner, tbl)
		}
		return
	}

	kind := models.KindFunction
	if st.enclosingClass != "" {
		kind = models.KindMethod
	}

	exported := e.isExported(name, st)
	if kind == models.KindMethod && st.middlewareClass && e.rules.IsLifecycleMethod(name) {
		// Frameworks call middleware lifecycle methods by convention,
		// so they are exported regardless of actual export syntax.
		exported = true
	}

	tbl.put(models.Symbol{
		ID:             models.SymbolID(kind, name, st.enclosingClass, res.Path),
		Name:           name,
		Kind:           kind,
		FilePath:       res.Path,
		Start:          position(node.StartPoint()),
		End:            position(node.EndPoint()),
		EnclosingClass: st.enclosingClass,
		IsExported:     exported,
		IsStatic:       isStatic(node, st, res),
	})

	e.emitParameters(node, res, st, name, tbl)

	inner := st
	inner.enclosingFunc = name
	inner.inExport = false
	inner.decorated = false
	inner.decoratorText = ""
	if body := node.ChildByFieldName("body"); body != nil {
		e.walk(body, res, inner, tbl)
	}
}

// emitParameters emits one parameter Symbol per formal parameter. They are
// never dead-code candidates but are tracked for variable-usage queries.
func (e *Extractor) emitParameters(fn *sitter.Node, res *parser.ParseResult, st walkState, _ string, tbl *table) {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		// A bare single-parameter arrow (`x => x`) carries the identifier
		// directly in the parameter field.
		if p := fn.ChildByFieldName("parameter"); p != nil && p.Type() == "identifier" {
			tbl.put(models.Symbol{
				ID:             models.SymbolID(models.KindParameter, parser.GetNodeText(p, res.Source), st.enclosingClass, res.Path),
				Name:           parser.GetNodeText(p, res.Source),
				Kind:           models.KindParameter,
				FilePath:       res.Path,
				Start:          position(p.StartPoint()),
				End:            position(p.EndPoint()),
				EnclosingClass: st.enclosingClass,
			})
		}
		return
	}

	for _, id := range parameterIdentifiers(params, res.Source) {
		tbl.put(models.Symbol{
			ID:             models.SymbolID(models.KindParameter, id.name, st.enclosingClass, res.Path),
			Name:           id.name,
			Kind:           models.KindParameter,
			FilePath:       res.Path,
			Start:          position(id.node.StartPoint()),
			End:            position(id.node.EndPoint()),
			EnclosingClass: st.enclosingClass,
		})
	}
}

// emitDeclarator handles one TS/JS variable declarator, covering both
// plain identifiers and destructuring patterns.
func (e *Extractor) emitDeclarator(node *sitter.Node, res *parser.ParseResult, st walkState, tbl *table) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	if nameNode.Type() == "identifier" {
		e.emitVariable(nameNode, res, st, tbl)
		return
	}
	for _, id := range patternIdentifiers(nameNode, res.Source) {
		e.emitVariable(id.node, res, st, tbl)
	}
}

// emitPythonAssignment treats module-scope assignment targets as variable
// declarations; nested assignments are plain writes, not declarations.
func (e *Extractor) emitPythonAssignment(node *sitter.Node, res *parser.ParseResult, st walkState, tbl *table) {
	if !lang.IsModuleScope(node) {
		return
	}
	left := node.ChildByFieldName("left")
	if left == nil {
		return
	}

	switch left.Type() {
	case "identifier":
		e.emitVariable(left, res, st, tbl)
	case "pattern_list", "tuple_pattern":
		for i := range int(left.NamedChildCount()) {
			if target := left.NamedChild(i); target.Type() == "identifier" {
				e.emitVariable(target, res, st, tbl)
			}
		}
	}
}

func (e *Extractor) emitVariable(nameNode *sitter.Node, res *parser.ParseResult, st walkState, tbl *table) {
	name := parser.GetNodeText(nameNode, res.Source)
	if name == "" {
		return
	}
	tbl.put(models.Symbol{
		ID:             models.SymbolID(models.KindVariable, name, st.enclosingClass, res.Path),
		Name:           name,
		Kind:           models.KindVariable,
		FilePath:       res.Path,
		Start:          position(nameNode.StartPoint()),
		End:            position(nameNode.EndPoint()),
		EnclosingClass: st.enclosingClass,
		IsExported:     e.isExported(name, st),
	})
}

// isExported is an ordered OR over independent visibility predicates.
// The union deliberately biases toward not flagging exported-looking code
// as dead: false negatives are preferred over false positives for public
// API surface.
func (e *Extractor) isExported(name string, st walkState) bool {
	switch {
	case st.exportedNames[name]:
		return true
	case st.inExport:
		return true
	case config.IsDunder(name):
		return true
	case st.decorated:
		// Decorator-driven registration is an external call site static
		// analysis cannot see.
		return true
	}
	return false
}

func isStatic(node *sitter.Node, st walkState, res *parser.ParseResult) bool {
	// TS/JS: a `static` keyword child on the method definition.
	for i := range int(node.ChildCount()) {
		if node.Child(i).Type() == "static" {
			return true
		}
	}
	// Python: a @staticmethod/@classmethod decorator on the definition.
	if res.Language == parser.LangPython && st.decorated {
		return strings.Contains(st.decoratorText, "@staticmethod") ||
			strings.Contains(st.decoratorText, "@classmethod")
	}
	return false
}

func position(p sitter.Point) models.Position {
	return models.Position{Row: p.Row, Column: p.Column}
}

// identRef pairs a bound identifier with its node.
type identRef struct {
	name string
	node *sitter.Node
}

// patternIdentifiers returns every identifier bound by a destructuring
// pattern. Binding targets are declarations, not reads.
func patternIdentifiers(pattern *sitter.Node, source []byte) []identRef {
	var ids []identRef
	parser.WalkNamed(pattern, source, func(n *sitter.Node, src []byte) bool {
		switch n.Type() {
		case "identifier", "shorthand_property_identifier_pattern":
			ids = append(ids, identRef{name: parser.GetNodeText(n, src), node: n})
		case "pair_pattern":
			// Only the value side binds; the key is a property name.
			if value := n.ChildByFieldName("value"); value != nil {
				for _, id := range patternIdentifiers(value, src) {
					ids = append(ids, id)
				}
			}
			return false
		}
		return true
	})
	return ids
}

// parameterIdentifiers returns every formal parameter name in a
// parameters node, across all three grammars.
func parameterIdentifiers(params *sitter.Node, source []byte) []identRef {
	var ids []identRef
	for i := range int(params.NamedChildCount()) {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			ids = append(ids, identRef{name: parser.GetNodeText(p, source), node: p})
		case "required_parameter", "optional_parameter":
			if pat := p.ChildByFieldName("pattern"); pat != nil {
				if pat.Type() == "identifier" {
					ids = append(ids, identRef{name: parser.GetNodeText(pat, source), node: pat})
				} else {
					ids = append(ids, patternIdentifiers(pat, source)...)
				}
			}
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				ids = append(ids, identRef{name: parser.GetNodeText(name, source), node: name})
			}
		case "typed_parameter":
			if inner := p.NamedChild(0); inner != nil && inner.Type() == "identifier" {
				ids = append(ids, identRef{name: parser.GetNodeText(inner, source), node: inner})
			}
		case "assignment_pattern":
			if left := p.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
				ids = append(ids, identRef{name: parser.GetNodeText(left, source), node: left})
			}
		case "rest_pattern", "list_splat_pattern", "dictionary_splat_pattern":
			if inner := p.NamedChild(0); inner != nil && inner.Type() == "identifier" {
				ids = append(ids, identRef{name: parser.GetNodeText(inner, source), node: inner})
			}
		case "object_pattern", "array_pattern":
			ids = append(ids, patternIdentifiers(p, source)...)
		}
	}
	return ids
}

// table accumulates symbols in traversal order with last-write-wins
// semantics on ID collisions.
type table struct {
	index map[string]int
	syms  []models.Symbol
}

func newTable() *table {
	return &table{index: make(map[string]int)}
}

func (t *table) put(sym models.Symbol) {
	if i, ok := t.index[sym.ID]; ok {
		t.syms[i] = sym
		return
	}
	t.index[sym.ID] = len(t.syms)
	t.syms = append(t.syms, sym)
}

func (t *table) ordered() []models.Symbol {
	return t.syms
}
