// Package parse drives the tree-sitter Java grammar over one source file
// and allocates one arena.Arena record per visited node.
package parse

import (
	"context"
	"strings"

	"github.com/jfmt/styler/internal/arena"
	"github.com/jfmt/styler/internal/debug"
	"github.com/jfmt/styler/internal/limits"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// kindToNodeType maps tree-sitter-java grammar node kinds to this
// package's closed NodeType set. Kinds absent from the map are allocated
// as arena.NodeUnknown; attribute payloads for the kinds that carry one
// are built in walker.allocate, not here.
var kindToNodeType = map[string]arena.NodeType{
	"program":                     arena.NodeCompilationUnit,
	"package_declaration":         arena.NodePackageDeclaration,
	"import_declaration":          arena.NodeImportDeclaration,
	"class_declaration":           arena.NodeClassDeclaration,
	"interface_declaration":       arena.NodeInterfaceDeclaration,
	"enum_declaration":            arena.NodeEnumDeclaration,
	"record_declaration":          arena.NodeRecordDeclaration,
	"annotation_type_declaration": arena.NodeAnnotationTypeDeclaration,
	"field_declaration":           arena.NodeFieldDeclaration,
	"method_declaration":          arena.NodeMethodDeclaration,
	"constructor_declaration":     arena.NodeConstructorDeclaration,
	"formal_parameter":            arena.NodeParameterDeclaration,
	"spread_parameter":            arena.NodeParameterDeclaration,
	"block":                       arena.NodeBlock,
	"expression_statement":        arena.NodeExpressionStatement,
	"if_statement":                arena.NodeIfStatement,
	"for_statement":               arena.NodeForStatement,
	"enhanced_for_statement":      arena.NodeForStatement,
	"while_statement":             arena.NodeWhileStatement,
	"do_statement":                arena.NodeDoStatement,
	"switch_statement":            arena.NodeSwitchStatement,
	"switch_expression":           arena.NodeSwitchStatement,
	"try_statement":               arena.NodeTryStatement,
	"return_statement":            arena.NodeReturnStatement,
	"throw_statement":             arena.NodeThrowStatement,
	"break_statement":             arena.NodeBreakStatement,
	"continue_statement":          arena.NodeContinueStatement,
	"identifier":                  arena.NodeIdentifier,
	"binary_expression":           arena.NodeBinaryExpression,
	"unary_expression":            arena.NodeUnaryExpression,
	"field_access":                arena.NodeFieldAccess,
	"method_invocation":           arena.NodeMethodInvocation,
	"assignment_expression":       arena.NodeAssignment,
	"lambda_expression":           arena.NodeLambdaExpression,
	"module_declaration":          arena.NodeModuleDeclaration,
	"requires_module_directive":   arena.NodeRequiresDirective,
	"exports_module_directive":    arena.NodeExportsDirective,
	"opens_module_directive":      arena.NodeOpensDirective,
}

var literalKinds = map[string]bool{
	"decimal_integer_literal": true, "hex_integer_literal": true,
	"octal_integer_literal": true, "binary_integer_literal": true,
	"decimal_floating_point_literal": true, "hex_floating_point_literal": true,
	"true": true, "false": true, "character_literal": true,
	"string_literal": true, "null_literal": true,
}

// TreeSitterParser implements Parser using the tree-sitter Java grammar.
type TreeSitterParser struct {
	limits limits.SecurityLimits
}

// NewTreeSitterParser returns a parser bound to lim. A TreeSitterParser
// holds no tree-sitter state between calls: every Parse creates its own
// tree_sitter.Parser, mirroring setupJava's per-language lazy init but
// without the teacher's shared parser pool (this formatter processes one
// file per worker, so pooling buys nothing).
func NewTreeSitterParser(lim limits.SecurityLimits) *TreeSitterParser {
	return &TreeSitterParser{limits: lim}
}

func (p *TreeSitterParser) Parse(ctx context.Context, source []byte, path string) ParseResult {
	if len(source) == 0 {
		return Failure("empty source is not a valid Java compilation unit", nil)
	}
	if int64(len(source)) > p.limits.MaxSourceSizeBytes {
		return Failure(errSourceTooLarge.Error(), nil)
	}

	parser := tree_sitter.NewParser()
	language := tree_sitter.NewLanguage(tree_sitter_java.Language())
	if err := parser.SetLanguage(language); err != nil {
		return Failure("failed to configure java grammar", err)
	}

	parseCtx, cancel := context.WithTimeout(ctx, p.limits.ParsingTimeout)
	defer cancel()

	// tree-sitter's Go binding parses synchronously; a defensive copy of
	// the buffer is made because the C library may mutate it in place.
	buf := make([]byte, len(source))
	copy(buf, source)

	type parseOutcome struct {
		tree *tree_sitter.Tree
	}
	done := make(chan parseOutcome, 1)
	go func() {
		done <- parseOutcome{tree: parser.Parse(buf, nil)}
	}()

	var tree *tree_sitter.Tree
	select {
	case <-parseCtx.Done():
		go func() {
			if out := <-done; out.tree != nil {
				out.tree.Close()
			}
		}()
		return Failure("parse timed out", parseCtx.Err())
	case out := <-done:
		tree = out.tree
	}
	if tree == nil {
		return Failure("tree-sitter returned no tree", nil)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return Failure("tree-sitter produced an empty tree", nil)
	}

	a := newArenaForSource(len(source), p.limits)
	tracker := limits.NewDepthTracker(p.limits.MaxNodeDepth, func(depth int) {
		debug.LogParse("depth warning: %s reached depth %d", path, depth)
	})

	w := &walker{arena: a, source: buf, limits: p.limits, tracker: tracker}
	rootIdx, err := w.visit(root)
	if err != nil {
		a.Release()
		return Failure(err.Error(), nil)
	}

	return Success(ParsedData{Arena: a, Root: rootIdx, Source: string(source), FilePath: path})
}

type walker struct {
	arena     *arena.Arena
	source    []byte
	limits    limits.SecurityLimits
	tracker   *limits.DepthTracker
	nodeCount int
}

func (w *walker) visit(n *tree_sitter.Node) (arena.NodeIndex, error) {
	if n.Kind() == "ERROR" || n.IsMissing() {
		return arena.NullIndex, errSyntaxError
	}

	w.nodeCount++
	if w.nodeCount > w.limits.MaxTokenCount {
		return arena.NullIndex, errTokenCountOver
	}

	release, err := w.tracker.EnterScoped(n.Kind())
	if err != nil {
		return arena.NullIndex, err
	}
	defer release()

	start, end := uint32(n.StartByte()), uint32(n.EndByte())
	idx, err := w.allocate(n, start, end)
	if err != nil {
		return arena.NullIndex, err
	}

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if _, err := w.visit(child); err != nil {
			return arena.NullIndex, err
		}
	}
	return idx, nil
}

func (w *walker) allocate(n *tree_sitter.Node, start, end uint32) (arena.NodeIndex, error) {
	kind := n.Kind()
	if literalKinds[kind] {
		return w.arena.Allocate(arena.NodeLiteral, start, end)
	}

	switch kind {
	case "import_declaration":
		text := string(w.source[start:end])
		return w.arena.AllocateImport(start, end, arena.ImportAttribute{
			QualifiedName: importQualifiedName(text),
			IsStatic:      strings.Contains(text, "import static"),
		})
	case "package_declaration":
		text := string(w.source[start:end])
		return w.arena.AllocatePackage(start, end, arena.PackageAttribute{Name: packageName(text)})
	case "class_declaration", "interface_declaration", "enum_declaration",
		"record_declaration", "annotation_type_declaration":
		nt := kindToNodeType[kind]
		name, modifiers := typeDeclarationName(n, w.source)
		return w.arena.AllocateTypeDeclaration(nt, start, end, arena.TypeDeclarationAttribute{
			Name:       name,
			IsPublic:   modifiers["public"],
			IsFinal:    modifiers["final"],
			IsAbstract: modifiers["abstract"],
			IsStatic:   modifiers["static"],
		})
	case "formal_parameter", "spread_parameter":
		name, isVarargs := parameterName(n, w.source, kind == "spread_parameter")
		return w.arena.AllocateParameter(start, end, arena.ParameterAttribute{
			Name:      name,
			IsVarargs: isVarargs,
		})
	case "module_declaration":
		text := string(w.source[start:end])
		return w.arena.AllocateModuleDeclaration(start, end, arena.ModuleDeclarationAttribute{
			Name:   moduleDeclarationName(n, w.source),
			IsOpen: strings.HasPrefix(strings.TrimSpace(text), "open"),
		})
	case "requires_module_directive":
		text := string(w.source[start:end])
		return w.arena.AllocateRequiresDirective(start, end, arena.RequiresDirectiveAttribute{
			Module:       requiresModuleName(text),
			IsTransitive: strings.Contains(text, "transitive"),
			IsStatic:     strings.Contains(text, "static"),
		})
	case "exports_module_directive":
		pkg, targets := exportsOrOpensTargets(n, w.source, "exports")
		return w.arena.AllocateExportsDirective(start, end, arena.ExportsDirectiveAttribute{
			Package: pkg, TargetModules: targets,
		})
	case "opens_module_directive":
		pkg, targets := exportsOrOpensTargets(n, w.source, "opens")
		return w.arena.AllocateOpensDirective(start, end, arena.OpensDirectiveAttribute{
			Package: pkg, TargetModules: targets,
		})
	}

	nt, ok := kindToNodeType[kind]
	if !ok {
		nt = arena.NodeUnknown
	}
	return w.arena.Allocate(nt, start, end)
}

func importQualifiedName(text string) string {
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	text = strings.TrimPrefix(text, "import")
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "static")
	return strings.TrimSpace(text)
}

func packageName(text string) string {
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	text = strings.TrimPrefix(text, "package")
	return strings.TrimSpace(text)
}

func requiresModuleName(text string) string {
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func typeDeclarationName(n *tree_sitter.Node, source []byte) (string, map[string]bool) {
	modifiers := map[string]bool{}
	var name string
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			if name == "" {
				name = string(source[child.StartByte():child.EndByte()])
			}
		case "modifiers":
			modText := string(source[child.StartByte():child.EndByte()])
			for _, word := range strings.Fields(modText) {
				modifiers[word] = true
			}
		}
	}
	return name, modifiers
}

func parameterName(n *tree_sitter.Node, source []byte, isVarargs bool) (string, bool) {
	var name string
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == "identifier" {
			name = string(source[child.StartByte():child.EndByte()])
		}
	}
	return name, isVarargs
}

func moduleDeclarationName(n *tree_sitter.Node, source []byte) string {
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == "scoped_identifier" || child.Kind() == "identifier" {
			return string(source[child.StartByte():child.EndByte()])
		}
	}
	return ""
}

func exportsOrOpensTargets(n *tree_sitter.Node, source []byte, keyword string) (string, []string) {
	text := string(source[n.StartByte():n.EndByte()])
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	text = strings.TrimPrefix(text, keyword)
	text = strings.TrimSpace(text)

	parts := strings.SplitN(text, " to ", 2)
	pkg := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return pkg, nil
	}
	var targets []string
	for _, t := range strings.Split(parts[1], ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			targets = append(targets, t)
		}
	}
	return pkg, targets
}
