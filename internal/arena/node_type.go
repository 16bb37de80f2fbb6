package arena

// NodeType is a closed set of Java AST node kinds. Ordinals are stable
// within a process run (they are stored in the arena record) but are not
// guaranteed stable across versions of this package.
type NodeType uint32

const (
	NodeUnknown NodeType = iota

	// Compilation unit and top-level declarations.
	NodeCompilationUnit
	NodePackageDeclaration
	NodeImportDeclaration       // regular import
	NodeModuleImportDeclaration // JEP 511 "import module"
	NodeImplicitClassDeclaration // JEP 512

	// Type declarations.
	NodeClassDeclaration
	NodeInterfaceDeclaration
	NodeEnumDeclaration
	NodeRecordDeclaration
	NodeAnnotationTypeDeclaration

	// Member declarations.
	NodeFieldDeclaration
	NodeMethodDeclaration
	NodeConstructorDeclaration
	NodeParameterDeclaration

	// Statements.
	NodeBlock
	NodeExpressionStatement
	NodeIfStatement
	NodeForStatement
	NodeWhileStatement
	NodeDoStatement
	NodeSwitchStatement
	NodeTryStatement
	NodeReturnStatement
	NodeThrowStatement
	NodeBreakStatement
	NodeContinueStatement

	// Expressions.
	NodeIdentifier
	NodeLiteral
	NodeBinaryExpression
	NodeUnaryExpression
	NodeFieldAccess
	NodeMethodInvocation
	NodeAssignment
	NodeLambdaExpression

	// Module declarations (module-info.java).
	NodeModuleDeclaration
	NodeRequiresDirective
	NodeExportsDirective
	NodeOpensDirective
	NodeUsesDirective
	NodeProvidesDirective

	nodeTypeSentinel // keeps iota count; never assigned to a real node
)

// typeDeclarationKinds is the set of NodeType values that may carry a
// TypeDeclarationAttribute: the six JEP-512-aware type-declaration variants.
var typeDeclarationKinds = map[NodeType]bool{
	NodeClassDeclaration:          true,
	NodeInterfaceDeclaration:      true,
	NodeEnumDeclaration:           true,
	NodeRecordDeclaration:         true,
	NodeAnnotationTypeDeclaration: true,
	NodeImplicitClassDeclaration:  true,
}

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

var nodeTypeNames = map[NodeType]string{
	NodeCompilationUnit:           "compilation_unit",
	NodePackageDeclaration:        "package_declaration",
	NodeImportDeclaration:         "import_declaration",
	NodeModuleImportDeclaration:   "module_import_declaration",
	NodeImplicitClassDeclaration:  "implicit_class_declaration",
	NodeClassDeclaration:          "class_declaration",
	NodeInterfaceDeclaration:      "interface_declaration",
	NodeEnumDeclaration:           "enum_declaration",
	NodeRecordDeclaration:         "record_declaration",
	NodeAnnotationTypeDeclaration: "annotation_type_declaration",
	NodeFieldDeclaration:          "field_declaration",
	NodeMethodDeclaration:         "method_declaration",
	NodeConstructorDeclaration:    "constructor_declaration",
	NodeParameterDeclaration:      "parameter_declaration",
	NodeBlock:                     "block",
	NodeExpressionStatement:       "expression_statement",
	NodeIfStatement:               "if_statement",
	NodeForStatement:              "for_statement",
	NodeWhileStatement:            "while_statement",
	NodeDoStatement:               "do_statement",
	NodeSwitchStatement:           "switch_statement",
	NodeTryStatement:              "try_statement",
	NodeReturnStatement:           "return_statement",
	NodeThrowStatement:            "throw_statement",
	NodeBreakStatement:            "break_statement",
	NodeContinueStatement:         "continue_statement",
	NodeIdentifier:                "identifier",
	NodeLiteral:                   "literal",
	NodeBinaryExpression:          "binary_expression",
	NodeUnaryExpression:           "unary_expression",
	NodeFieldAccess:               "field_access",
	NodeMethodInvocation:          "method_invocation",
	NodeAssignment:                "assignment",
	NodeLambdaExpression:          "lambda_expression",
	NodeModuleDeclaration:         "module_declaration",
	NodeRequiresDirective:         "requires_directive",
	NodeExportsDirective:          "exports_directive",
	NodeOpensDirective:            "opens_directive",
	NodeUsesDirective:             "uses_directive",
	NodeProvidesDirective:         "provides_directive",
}
