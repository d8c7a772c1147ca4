// Package refs resolves identifier occurrences against declared symbols.
// Matching is by bare name, not scope-resolved identity: cross-scope false
// positives are an accepted cost of keeping one resolver correct across
// three grammars. The walk never short-circuits on scope boundaries.
package refs

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/sourceprism/prism/pkg/analyzer/lang"
	"github.com/sourceprism/prism/pkg/models"
	"github.com/sourceprism/prism/pkg/parser"
)

// Resolver classifies identifier occurrences in parsed files.
type Resolver struct{}

// NewResolver creates a reference resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// lexicalContext carries the enclosing function and class through the
// walk as explicit parameters.
type lexicalContext struct {
	function string
	class    string
}

// Resolve finds every reference to target within one parsed file,
// classified by syntactic shape and tagged with lexical context.
func (r *Resolver) Resolve(res *parser.ParseResult, target models.Symbol) []models.Reference {
	var refs []models.Reference
	r.walkOccurrences(res, lexicalContext{}, res.Tree.RootNode(), func(node *sitter.Node, ctx lexicalContext) {
		if parser.GetNodeText(node, res.Source) != target.Name {
			return
		}
		if isDeclarationName(node, res.Language) || inImportExport(node, res.Language) {
			return
		}
		refs = append(refs, models.Reference{
			TargetSymbolID: target.ID,
			FilePath:       res.Path,
			Start:          models.Position{Row: node.StartPoint().Row, Column: node.StartPoint().Column},
			End:            models.Position{Row: node.EndPoint().Row, Column: node.EndPoint().Column},
			Context: models.RefContext{
				EnclosingFunction: ctx.function,
				EnclosingClass:    ctx.class,
				CallKind:          classifyOccurrence(node, res.Language, target.Kind),
			},
		})
	})
	return refs
}

// CountNames counts usable occurrences of every name in the set with a
// single walk over the file, regardless of how many symbols are being
// checked. Declaration name slots and import/export mentions never count.
func (r *Resolver) CountNames(res *parser.ParseResult, names map[string]struct{}) map[string]int {
	counts := make(map[string]int)
	r.walkOccurrences(res, lexicalContext{}, res.Tree.RootNode(), func(node *sitter.Node, _ lexicalContext) {
		name := parser.GetNodeText(node, res.Source)
		if _, ok := names[name]; !ok {
			return
		}
		if isDeclarationName(node, res.Language) || inImportExport(node, res.Language) {
			return
		}
		counts[name]++
	})
	return counts
}

// Track classifies every occurrence of name as a declaration, assignment,
// or read, for variable-usage queries.
func (r *Resolver) Track(res *parser.ParseResult, name string) []models.VariableUsage {
	lines := strings.Split(string(res.Source), "\n")
	var usages []models.VariableUsage

	r.walkOccurrences(res, lexicalContext{}, res.Tree.RootNode(), func(node *sitter.Node, ctx lexicalContext) {
		if parser.GetNodeText(node, res.Source) != name {
			return
		}
		if inImportExport(node, res.Language) {
			return
		}

		access := models.AccessRead
		switch {
		case isDeclarationName(node, res.Language):
			access = models.AccessDeclaration
		case isAssignmentTarget(node, res.Language):
			access = models.AccessAssignment
		}

		row := node.StartPoint().Row
		snippet := ""
		if int(row) < len(lines) {
			snippet = strings.TrimSpace(lines[row])
		}

		usages = append(usages, models.VariableUsage{
			Name:              name,
			FilePath:          res.Path,
			Line:              row + 1,
			Column:            node.StartPoint().Column,
			Access:            access,
			EnclosingFunction: ctx.function,
			EnclosingClass:    ctx.class,
			Snippet:           snippet,
		})
	})
	return usages
}

// walkOccurrences recurses through namedChildren, threading the lexical
// context and invoking visit on every identifier occurrence.
func (r *Resolver) walkOccurrences(res *parser.ParseResult, ctx lexicalContext, node *sitter.Node, visit func(*sitter.Node, lexicalContext)) {
	nodeType := node.Type()

	switch {
	case lang.IsClassNode(res.Language, nodeType):
		if name := lang.NameOf(node, res.Source); name != "" {
			ctx.class = name
		}
	case lang.IsFunctionNode(res.Language, nodeType), lang.IsMethodDefinition(res.Language, nodeType):
		if name := lang.NameOf(node, res.Source); name != "" {
			ctx.function = name
		}
	}

	if lang.IsIdentifier(nodeType) {
		visit(node, ctx)
	}

	for i := range int(node.NamedChildCount()) {
		r.walkOccurrences(res, ctx, node.NamedChild(i), visit)
	}
}

// classifyOccurrence determines the call kind of one occurrence,
// evaluated in precedence order at call-expression-shaped nodes:
// bare-identifier callee, member-chain tail, bare argument. Variable
// targets additionally classify non-call reads as direct or method.
func classifyOccurrence(node *sitter.Node, l parser.Language, kind models.SymbolKind) models.CallKind {
	parent := node.Parent()
	if parent == nil {
		return models.CallIndirect
	}

	// 1. Bare identifier callee.
	if lang.IsCallNode(l, parent.Type()) &&
		lang.SameNode(parent.ChildByFieldName(lang.CalleeField(parent.Type())), node) {
		return models.CallDirect
	}

	// 2. Last segment of a member-access chain used as a callee. The
	// receiver is not type-checked: a.b.name() and this.name() are
	// indistinguishable.
	if lang.IsMemberNode(l, parent.Type()) &&
		lang.SameNode(parent.ChildByFieldName(lang.MemberPropertyField(l)), node) {
		grand := parent.Parent()
		if grand != nil && lang.IsCallNode(l, grand.Type()) &&
			lang.SameNode(grand.ChildByFieldName(lang.CalleeField(grand.Type())), parent) {
			return models.CallMethod
		}
		if kind == models.KindVariable {
			return models.CallMethod
		}
		return models.CallIndirect
	}

	// 3. Bare identifier inside a call's argument list.
	if parent.Type() == lang.ArgumentsNodeType(l) {
		return models.CallCallback
	}

	if kind == models.KindVariable {
		return models.CallDirect
	}
	return models.CallIndirect
}

// isDeclarationName reports whether node occupies the name slot of a
// declaration: a variable declarator, function/class/method name, formal
// parameter, or destructuring binding target. Python module-scope
// assignment targets are declarations; nested ones are assignments.
func isDeclarationName(node *sitter.Node, l parser.Language) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	parentType := parent.Type()

	// Name slot of a function, class, or method declaration.
	switch parentType {
	case "function_declaration", "generator_function_declaration",
		"class_declaration", "class", "method_definition",
		"function_definition", "class_definition":
		if lang.SameNode(parent.ChildByFieldName("name"), node) {
			return true
		}
	}

	// Formal parameters.
	if inParameterList(node) {
		return isParameterBinding(node)
	}

	// Binding targets of a variable declarator, including destructuring.
	if declarator := ancestorOfType(node, "variable_declarator"); declarator != nil {
		if nameNode := declarator.ChildByFieldName("name"); nameNode != nil && within(node, nameNode) {
			// Pattern keys (pair_pattern keys) are property names, not
			// bindings, but everything else in the name slot binds.
			return node.Type() != "property_identifier" || lang.SameNode(node, nameNode)
		}
	}

	// Python: module-scope assignment left side.
	if l == parser.LangPython {
		if assign := ancestorOfType(node, "assignment"); assign != nil && lang.IsModuleScope(assign) {
			if left := assign.ChildByFieldName("left"); left != nil && within(node, left) {
				return true
			}
		}
	}

	return false
}

// isAssignmentTarget reports whether node is written by a plain or
// compound assignment or an increment/decrement operation.
func isAssignmentTarget(node *sitter.Node, l parser.Language) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}

	if lang.IsAssignmentNode(l, parent.Type()) &&
		lang.SameNode(parent.ChildByFieldName("left"), node) {
		return true
	}

	if parent.Type() == "update_expression" &&
		lang.SameNode(parent.ChildByFieldName("argument"), node) {
		return true
	}

	return false
}

// inImportExport reports whether node sits inside an import statement or
// an export clause. Being imported or re-exported never counts as a use.
func inImportExport(node *sitter.Node, l parser.Language) bool {
	if parser.HasAncestorOfType(node, lang.ImportNodeTypes(l)...) {
		return true
	}
	// `export default foo;` mentions foo without using it.
	if parent := node.Parent(); parent != nil && parent.Type() == "export_statement" {
		return true
	}
	return false
}

func inParameterList(node *sitter.Node) bool {
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		switch cur.Type() {
		case "formal_parameters", "parameters":
			return true
		case "statement_block", "block", "expression_statement":
			return false
		}
	}
	return false
}

// isParameterBinding distinguishes parameter names from expressions
// appearing inside parameter lists, such as default values.
func isParameterBinding(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}

	switch parent.Type() {
	case "formal_parameters", "parameters":
		return true
	case "required_parameter", "optional_parameter":
		return lang.SameNode(parent.ChildByFieldName("pattern"), node)
	case "default_parameter", "typed_default_parameter":
		return lang.SameNode(parent.ChildByFieldName("name"), node)
	case "typed_parameter":
		return lang.SameNode(parent.NamedChild(0), node)
	case "assignment_pattern":
		return lang.SameNode(parent.ChildByFieldName("left"), node)
	case "rest_pattern", "list_splat_pattern", "dictionary_splat_pattern":
		return true
	case "object_pattern", "array_pattern", "tuple_pattern":
		return true
	}
	return false
}

func ancestorOfType(node *sitter.Node, t string) *sitter.Node {
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		if cur.Type() == t {
			return cur
		}
	}
	return nil
}

// within reports whether node's span is contained in container's span.
func within(node, container *sitter.Node) bool {
	return node.StartByte() >= container.StartByte() && node.EndByte() <= container.EndByte()
}
