package elemid

import (
	"errors"
	"slices"
	"testing"

	"chainsel/internal/tree"
)

func TestRoundTrip(t *testing.T) {
	paths := []tree.Path{{0}, {7}, {0, 1}, {0, 1, 0, 4}, {10, 200, 3000}}
	for _, p := range paths {
		id := FromPath(p)
		got, err := ToPath(id)
		if err != nil {
			t.Fatalf("ToPath(%q): %v", id, err)
		}
		if !slices.Equal(got, p) {
			t.Fatalf("ToPath(FromPath(%v)) = %v", p, got)
		}
		got, err = ToPath(Decorate(id))
		if err != nil || !slices.Equal(got, p) {
			t.Fatalf("decorated round trip for %v = %v, %v", p, got, err)
		}
	}
}

func TestFromPathFormat(t *testing.T) {
	if got := FromPath(tree.Path{0, 1, 0, 4}); got != "t-0-1-0-4" {
		t.Fatalf("FromPath = %q", got)
	}
}

func TestToPathRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "t-", "x-0", "t-0--1", "t-a", "t-0-g", "t-g", "ui-multiselect-", "t--1"} {
		if _, err := ToPath(id); !errors.Is(err, ErrMalformed) {
			t.Fatalf("ToPath(%q) error = %v, want ErrMalformed", id, err)
		}
	}
}

func TestSiblingsShareGroup(t *testing.T) {
	parent := tree.Path{2, 5}
	want := GroupFor(parent)
	if want != "t-2-5-g" {
		t.Fatalf("GroupFor = %q", want)
	}
	for i := 0; i < 12; i++ {
		child := FromPath(parent.Child(i))
		if got := GroupForChildren(child); got != want {
			t.Fatalf("GroupForChildren(%q) = %q, want %q", child, got, want)
		}
		if got := GroupForChildren(Decorate(child)); got != want {
			t.Fatalf("decorated GroupForChildren(%q) = %q, want %q", child, got, want)
		}
	}
	if GroupFor(tree.Path{}) != "t-g" {
		t.Fatalf("top-level group = %q", GroupFor(tree.Path{}))
	}
	if GroupFor(tree.Path{1}) == GroupFor(tree.Path{2}) {
		t.Fatalf("different parents must not share a group")
	}
}

func TestIsGroup(t *testing.T) {
	if !IsGroup("t-0-g") || !IsGroup("t-g") {
		t.Fatalf("group ids not recognised")
	}
	if IsGroup("t-0-1") {
		t.Fatalf("option id treated as group")
	}
}
