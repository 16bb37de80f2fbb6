package arena

// AttributeKind tags which NodeAttribute variant a sidecar entry holds.
type AttributeKind uint8

const (
	AttrNone AttributeKind = iota
	AttrImport
	AttrModuleImport
	AttrPackage
	AttrTypeDeclaration
	AttrParameter
	AttrModuleDeclaration
	AttrRequiresDirective
	AttrExportsDirective
	AttrOpensDirective
)

// NodeAttribute is the sealed sum type for sparse, declaration-carried
// payload. Every variant is an immutable value type with structural
// equality; callers type-switch on Kind() to recover the concrete variant.
type NodeAttribute interface {
	Kind() AttributeKind
}

// ImportAttribute is attached to NodeImportDeclaration nodes.
type ImportAttribute struct {
	QualifiedName string
	IsStatic      bool
}

func (ImportAttribute) Kind() AttributeKind { return AttrImport }

// ModuleImportAttribute is attached to NodeModuleImportDeclaration nodes
// (JEP 511 "import module").
type ModuleImportAttribute struct {
	ModuleName string
}

func (ModuleImportAttribute) Kind() AttributeKind { return AttrModuleImport }

// PackageAttribute is attached to NodePackageDeclaration nodes.
type PackageAttribute struct {
	Name string
}

func (PackageAttribute) Kind() AttributeKind { return AttrPackage }

// TypeDeclarationAttribute is attached to any of the six type-declaration
// node kinds (class, interface, enum, record, annotation-type, implicit).
type TypeDeclarationAttribute struct {
	Name       string
	IsPublic   bool
	IsFinal    bool
	IsAbstract bool
	IsStatic   bool
}

func (TypeDeclarationAttribute) Kind() AttributeKind { return AttrTypeDeclaration }

// ParameterAttribute is attached to NodeParameterDeclaration nodes.
type ParameterAttribute struct {
	Name        string
	IsVarargs   bool
	IsFinal     bool
	IsReceiver  bool
}

func (ParameterAttribute) Kind() AttributeKind { return AttrParameter }

// ModuleDeclarationAttribute is attached to NodeModuleDeclaration nodes.
type ModuleDeclarationAttribute struct {
	Name   string
	IsOpen bool
}

func (ModuleDeclarationAttribute) Kind() AttributeKind { return AttrModuleDeclaration }

// RequiresDirectiveAttribute is attached to NodeRequiresDirective nodes.
type RequiresDirectiveAttribute struct {
	Module       string
	IsTransitive bool
	IsStatic     bool
}

func (RequiresDirectiveAttribute) Kind() AttributeKind { return AttrRequiresDirective }

// ExportsDirectiveAttribute is attached to NodeExportsDirective nodes.
type ExportsDirectiveAttribute struct {
	Package       string
	TargetModules []string
}

func (ExportsDirectiveAttribute) Kind() AttributeKind { return AttrExportsDirective }

// OpensDirectiveAttribute is attached to NodeOpensDirective nodes.
type OpensDirectiveAttribute struct {
	Package       string
	TargetModules []string
}

func (OpensDirectiveAttribute) Kind() AttributeKind { return AttrOpensDirective }

// attributeAllowedOn reports whether kind may be attached to a node of type t.
func attributeAllowedOn(kind AttributeKind, t NodeType) bool {
	switch kind {
	case AttrImport:
		return t == NodeImportDeclaration
	case AttrModuleImport:
		return t == NodeModuleImportDeclaration
	case AttrPackage:
		return t == NodePackageDeclaration
	case AttrTypeDeclaration:
		return typeDeclarationKinds[t]
	case AttrParameter:
		return t == NodeParameterDeclaration
	case AttrModuleDeclaration:
		return t == NodeModuleDeclaration
	case AttrRequiresDirective:
		return t == NodeRequiresDirective
	case AttrExportsDirective:
		return t == NodeExportsDirective
	case AttrOpensDirective:
		return t == NodeOpensDirective
	default:
		return false
	}
}

func attributesEqual(a, b NodeAttribute) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case ImportAttribute:
		bv := b.(ImportAttribute)
		return av == bv
	case ModuleImportAttribute:
		return av == b.(ModuleImportAttribute)
	case PackageAttribute:
		return av == b.(PackageAttribute)
	case TypeDeclarationAttribute:
		return av == b.(TypeDeclarationAttribute)
	case ParameterAttribute:
		return av == b.(ParameterAttribute)
	case ModuleDeclarationAttribute:
		return av == b.(ModuleDeclarationAttribute)
	case RequiresDirectiveAttribute:
		return av == b.(RequiresDirectiveAttribute)
	case ExportsDirectiveAttribute:
		bv := b.(ExportsDirectiveAttribute)
		return av.Package == bv.Package && stringSlicesEqual(av.TargetModules, bv.TargetModules)
	case OpensDirectiveAttribute:
		bv := b.(OpensDirectiveAttribute)
		return av.Package == bv.Package && stringSlicesEqual(av.TargetModules, bv.TargetModules)
	default:
		return false
	}
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
