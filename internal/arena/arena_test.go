package arena

import "testing"

func TestAllocateRoundTrip(t *testing.T) {
	a := New(4, DefaultMaxCapacity)

	idx, err := a.Allocate(NodeBlock, 10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}
	if a.NodeCount() != 1 {
		t.Fatalf("expected node count 1, got %d", a.NodeCount())
	}

	gotType, err := a.Type(idx)
	if err != nil || gotType != NodeBlock {
		t.Fatalf("Type() = %v, %v; want NodeBlock, nil", gotType, err)
	}
	if start, _ := a.Start(idx); start != 10 {
		t.Fatalf("Start() = %d, want 10", start)
	}
	if end, _ := a.End(idx); end != 20 {
		t.Fatalf("End() = %d, want 20", end)
	}
}

func TestAllocateRejectsEndBeforeStart(t *testing.T) {
	a := New(4, DefaultMaxCapacity)
	if _, err := a.Allocate(NodeBlock, 20, 10); err == nil {
		t.Fatal("expected error for end < start")
	}
	if a.NodeCount() != 0 {
		t.Fatalf("node count should remain 0 after failed allocation, got %d", a.NodeCount())
	}
}

func TestNodeCountIncrementsByOne(t *testing.T) {
	a := New(2, DefaultMaxCapacity)
	for i := 0; i < 10; i++ {
		before := a.NodeCount()
		if _, err := a.Allocate(NodeIdentifier, uint32(i), uint32(i+1)); err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
		if a.NodeCount() != before+1 {
			t.Fatalf("node count did not increment by exactly one at step %d", i)
		}
	}
}

func TestGrowthDoublesAndCapsAtMax(t *testing.T) {
	a := New(1, 4)
	for i := 0; i < 4; i++ {
		if _, err := a.Allocate(NodeIdentifier, 0, 1); err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
	}
	if _, err := a.Allocate(NodeIdentifier, 0, 1); err == nil {
		t.Fatal("expected allocation past max capacity to fail")
	}
	if a.NodeCount() != 4 {
		t.Fatalf("expected node count to remain 4 after capped failure, got %d", a.NodeCount())
	}
}

func TestArenaCapStress(t *testing.T) {
	a := New(16, 100_000)
	for i := 0; i < 100_000; i++ {
		if _, err := a.Allocate(NodeIdentifier, 0, 1); err != nil {
			t.Fatalf("allocation %d unexpectedly failed: %v", i, err)
		}
	}
	if _, err := a.Allocate(NodeIdentifier, 0, 1); err == nil {
		t.Fatal("expected the 100,001st allocation to fail")
	}
	if a.NodeCount() != 100_000 {
		t.Fatalf("node count = %d, want 100000", a.NodeCount())
	}
}

func TestGetOutOfRange(t *testing.T) {
	a := New(4, DefaultMaxCapacity)
	if _, err := a.Allocate(NodeBlock, 0, 1); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if _, err := a.Type(NullIndex); err == nil {
		t.Fatal("expected error for NullIndex")
	}
	if _, err := a.Type(NodeIndex(5)); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}

func TestImportAttributeRoundTrip(t *testing.T) {
	a := New(4, DefaultMaxCapacity)
	attr := ImportAttribute{QualifiedName: "java.util.List", IsStatic: false}
	idx, err := a.AllocateImport(0, 20, attr)
	if err != nil {
		t.Fatalf("AllocateImport: %v", err)
	}
	got, err := a.ImportAttributeOf(idx)
	if err != nil {
		t.Fatalf("ImportAttributeOf: %v", err)
	}
	if got != attr {
		t.Fatalf("got %+v, want %+v", got, attr)
	}
}

func TestAttributeGetterWrongNodeTypeFails(t *testing.T) {
	a := New(4, DefaultMaxCapacity)
	idx, err := a.AllocateImport(0, 20, ImportAttribute{QualifiedName: "java.util.List"})
	if err != nil {
		t.Fatalf("AllocateImport: %v", err)
	}
	if _, err := a.PackageAttributeOf(idx); err == nil {
		t.Fatal("expected error fetching package attribute off an import node")
	}
}

func TestTypeDeclarationAttributeAcceptsSixVariants(t *testing.T) {
	a := New(8, DefaultMaxCapacity)
	kinds := []NodeType{
		NodeClassDeclaration,
		NodeInterfaceDeclaration,
		NodeEnumDeclaration,
		NodeRecordDeclaration,
		NodeAnnotationTypeDeclaration,
		NodeImplicitClassDeclaration,
	}
	for _, k := range kinds {
		idx, err := a.AllocateTypeDeclaration(k, 0, 1, TypeDeclarationAttribute{Name: "Foo"})
		if err != nil {
			t.Fatalf("AllocateTypeDeclaration(%s): %v", k, err)
		}
		if _, err := a.TypeDeclarationAttributeOf(idx); err != nil {
			t.Fatalf("TypeDeclarationAttributeOf(%s): %v", k, err)
		}
	}
	if _, err := a.AllocateTypeDeclaration(NodeBlock, 0, 1, TypeDeclarationAttribute{Name: "Foo"}); err == nil {
		t.Fatal("expected error allocating type-declaration attribute on a block node")
	}
}

func TestArenaEqualByValue(t *testing.T) {
	a := New(4, DefaultMaxCapacity)
	b := New(4, DefaultMaxCapacity)
	if _, err := a.AllocateImport(0, 10, ImportAttribute{QualifiedName: "a.B"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AllocateImport(0, 10, ImportAttribute{QualifiedName: "a.B"}); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatal("expected structurally identical arenas to be equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("expected structurally identical arenas to hash identically")
	}

	c := New(4, DefaultMaxCapacity)
	if _, err := c.AllocateImport(0, 10, ImportAttribute{QualifiedName: "a.C"}); err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Fatal("expected arenas with different attributes to differ")
	}
}

func TestRelease(t *testing.T) {
	a := New(4, DefaultMaxCapacity)
	if _, err := a.Allocate(NodeBlock, 0, 1); err != nil {
		t.Fatal(err)
	}
	a.Release()
	if a.NodeCount() != 0 {
		t.Fatalf("expected node count 0 after release, got %d", a.NodeCount())
	}
}
