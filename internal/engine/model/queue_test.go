package model

import "testing"

func newGroup(t *testing.T, name string) *TexturedModel {
	t.Helper()
	md := CubeMesh()
	md.Name = name
	m, err := New(md)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return NewTextured(m, name+".png")
}

func TestQueueOrder(t *testing.T) {
	q := &Queue{}
	a := newGroup(t, "a")
	b := newGroup(t, "b")
	c := newGroup(t, "c")
	q.Add(a)
	q.Add(b)     // front
	q.AddTail(c) // back

	if q.First() != b {
		t.Error("Add must prepend")
	}
	if q.Groups[len(q.Groups)-1] != c {
		t.Error("AddTail must append")
	}
}

func TestNextNonEmptySkipsEmptyGroups(t *testing.T) {
	q := &Queue{}
	a := newGroup(t, "a")
	b := newGroup(t, "b")
	c := newGroup(t, "c")
	q.AddTail(a)
	q.AddTail(b)
	q.AddTail(c)

	ea := NewEntity(a)
	ec := NewEntity(c)
	_ = ea
	_ = ec

	// b is empty and gets skipped in both directions.
	if got := q.NextNonEmpty(a, true); got != c {
		t.Errorf("forward from a: got %v, want c", name(got))
	}
	if got := q.NextNonEmpty(c, true); got != a {
		t.Errorf("forward from c wraps: got %v, want a", name(got))
	}
	if got := q.NextNonEmpty(a, false); got != c {
		t.Errorf("backward from a wraps: got %v, want c", name(got))
	}
	if got := q.NextNonEmpty(nil, true); got != a {
		t.Errorf("forward from nil: got %v, want a", name(got))
	}
	if got := q.NextNonEmpty(nil, false); got != c {
		t.Errorf("backward from nil: got %v, want c", name(got))
	}
}

func TestNextNonEmptyAllEmpty(t *testing.T) {
	q := &Queue{}
	q.AddTail(newGroup(t, "a"))
	q.AddTail(newGroup(t, "b"))

	if got := q.NextNonEmpty(nil, true); got != nil {
		t.Errorf("all groups empty: got %v, want nil", name(got))
	}
}

func TestQueueUpdateAndRelease(t *testing.T) {
	q := &Queue{}
	g := newGroup(t, "a")
	gpu := &fakeGPU{}
	g.Model.SetGPU(gpu)
	q.AddTail(g)

	e := NewEntity(g)
	e.Pos.X = 5
	q.Update()
	if e.Transform[12] != 5 {
		t.Error("queue update did not run entity behaviors")
	}

	q.Release()
	if gpu.releases != 1 {
		t.Fatalf("GPU released %d times after queue release, want 1", gpu.releases)
	}
	if len(q.Groups) != 0 {
		t.Error("queue still holds groups after release")
	}
}

func name(g *TexturedModel) string {
	if g == nil {
		return "<nil>"
	}
	return g.Model.Name
}
