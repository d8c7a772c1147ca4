package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret the results.

func describeFindCallers() string {
	return `Finds every call site of a function or method across the project.

USE WHEN:
- Assessing the blast radius of a change before editing a function
- Checking whether a symbol is safe to rename or delete
- Understanding how an API is actually used

INTERPRETING RESULTS:
- call_type "direct": called as a bare identifier, e.g. helper()
- call_type "method": called as the last segment of a member chain, e.g. obj.helper(); the receiver is not type-checked, so same-named methods on other classes match too
- call_type "callback": passed as a bare argument, e.g. map(helper)
- call_type "indirect": any other occurrence of the name
- Matching is by name, not scope: results may include same-named symbols from other scopes

METRICS RETURNED:
- symbol: the resolved declaration (kind, location, export state)
- callers: file, line, column, call_type, enclosing function/class, snippet
- total_count: number of call sites found`
}

func describeFindDeadCode() string {
	return `Identifies functions, methods, classes, and variables that are never referenced anywhere in the analyzed scope.

USE WHEN:
- Cleaning up a codebase before refactoring
- Finding orphaned code after a feature removal
- Auditing a module for unused internals

INTERPRETING RESULTS:
- confidence "high": non-exported symbol with zero references, safest to remove
- confidence "low": exported symbol (only reported with include_exported), external consumers may exist
- confidence "medium": anything else
- Framework lifecycle methods (render, dispatch, process_request, ...) and classes named in configuration files are suppressed as false positives
- Dynamic dispatch (reflection, getattr, event registration) is invisible to this analysis; always review before deleting

METRICS RETURNED:
- unused_symbols: name, kind, file, lines, confidence, human-readable reason
- config_references: names found in configuration artifacts that suppress findings
- total_symbols, files_analyzed, files_skipped, warnings`
}

func describeTrackVariable() string {
	return `Tracks every declaration, assignment, and read of a variable name.

USE WHEN:
- Following how a value flows through a file or module
- Finding where a variable is mutated before a bug site
- Checking whether a variable is written but never read

INTERPRETING RESULTS:
- access "declaration": the binding site (let/const/var, parameter, Python module-scope assignment)
- access "assignment": a write to an existing binding, including compound assignment and increment/decrement
- access "read": every other occurrence
- Matching is by name across all scopes in the searched files

METRICS RETURNED:
- usages: file, line, column, access kind, enclosing function/class, source snippet
- summary: counts per access kind, total, files scanned`
}

func describeFindDuplicateCode() string {
	return `Detects near-identical code blocks eligible for extraction into a shared function.

USE WHEN:
- Hunting copy-paste duplication before a refactor
- Estimating how much of a module could be consolidated

INTERPRETING RESULTS:
- similarity is an estimated Jaccard similarity between normalized blocks; 1.0 means identical after whitespace/comment removal
- Blocks below the configured threshold (default 0.8) or shorter than min_lines (default 6 significant lines) are not reported
- Each suggestion pairs two locations and proposes an extraction

METRICS RETURNED:
- suggestions: block_a, block_b (file and line ranges), lines, similarity, suggestion text
- files_scanned, min_lines, threshold`
}

func describeListImportsExports() string {
	return `Lists the import and export statements of a single file.

USE WHEN:
- Mapping a file's external surface before moving or splitting it
- Checking what a module re-exports

INTERPRETING RESULTS:
- imports: statement text, source module, bound names, line
- exports: statement text, exported names (aliases resolved), line
- Python files have imports only; export entries are always empty`
}

func describeExtractCodeRange() string {
	return `Extracts a line range from a file, annotated with the innermost enclosing declaration.

USE WHEN:
- Pulling a snippet for review with its symbol context
- Confirming which function or class a line range belongs to

INTERPRETING RESULTS:
- code: the raw lines, 1-based inclusive range
- enclosing_symbol/enclosing_kind: innermost function, method, or class covering the whole range, when one exists`
}
