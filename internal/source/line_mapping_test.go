package source

import "testing"

func TestIdentityMapping(t *testing.T) {
	m := Identity(5)
	for i := 1; i <= 5; i++ {
		got, ok := m.Map(i)
		if !ok || got != i {
			t.Fatalf("Map(%d) = %d, %v; want %d, true", i, got, ok, i)
		}
	}
	if !m.IsIdentity() {
		t.Fatal("expected Identity() mapping to report IsIdentity() == true")
	}
}

func TestFromDiffNoChangeIsIdentity(t *testing.T) {
	src := "a\nb\nc\n"
	m := FromDiff(src, src)
	if !m.IsIdentity() {
		t.Fatal("expected unchanged source to produce the identity mapping")
	}
}

func TestFromDiffInsertedLineShiftsFollowing(t *testing.T) {
	original := "package p;\nclass A {}\n"
	final := "package p;\n\nclass A {}\n"

	m := FromDiff(original, final)
	line1, _ := m.Map(1)
	if line1 != 1 {
		t.Fatalf("line 1 should stay at 1, got %d", line1)
	}
	line2, _ := m.Map(2)
	if line2 != 3 {
		t.Fatalf("line 2 (class decl) should shift to 3, got %d", line2)
	}
}

func TestMapOutOfRange(t *testing.T) {
	m := Identity(2)
	if _, ok := m.Map(0); ok {
		t.Fatal("expected line 0 to be out of range")
	}
	if _, ok := m.Map(3); ok {
		t.Fatal("expected line 3 to be out of range for a 2-line mapping")
	}
}
