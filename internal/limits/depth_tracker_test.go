package limits

import "testing"

func TestBalancedEnterExitReturnsToZero(t *testing.T) {
	d := NewDepthTracker(10, nil)
	for i := 0; i < 5; i++ {
		if err := d.Enter("node"); err != nil {
			t.Fatalf("Enter: %v", err)
		}
	}
	for i := 0; i < 5; i++ {
		if err := d.Exit(); err != nil {
			t.Fatalf("Exit: %v", err)
		}
	}
	if d.Depth() != 0 {
		t.Fatalf("depth = %d, want 0", d.Depth())
	}
}

func TestEnterPastMaxFails(t *testing.T) {
	d := NewDepthTracker(3, nil)
	for i := 0; i < 3; i++ {
		if err := d.Enter("node"); err != nil {
			t.Fatalf("Enter %d: %v", i, err)
		}
	}
	if err := d.Enter("node"); err == nil {
		t.Fatal("expected error entering past max depth")
	}
}

func TestExitWithoutEnterFails(t *testing.T) {
	d := NewDepthTracker(10, nil)
	if err := d.Exit(); err == nil {
		t.Fatal("expected error exiting an empty tracker")
	}
}

func TestWarnFiresOnceAtThreshold(t *testing.T) {
	warnCount := 0
	d := NewDepthTracker(10, func(depth int) { warnCount++ })
	for i := 0; i < 10; i++ {
		if err := d.Enter("node"); err != nil {
			t.Fatalf("Enter %d: %v", i, err)
		}
	}
	if warnCount != 1 {
		t.Fatalf("warnCount = %d, want 1", warnCount)
	}
}

func TestEnterScopedReleasesOnDefer(t *testing.T) {
	d := NewDepthTracker(10, nil)
	func() {
		release, err := d.EnterScoped("node")
		if err != nil {
			t.Fatalf("EnterScoped: %v", err)
		}
		defer release()
		if d.Depth() != 1 {
			t.Fatalf("depth = %d, want 1", d.Depth())
		}
	}()
	if d.Depth() != 0 {
		t.Fatalf("depth = %d, want 0 after scope exit", d.Depth())
	}
}
