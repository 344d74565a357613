package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected a valid uuid, got %q: %v", first, err)
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	seq := NewSequence("ball")
	for _, want := range []string{"ball-1", "ball-2", "ball-3"} {
		got, _ := seq.NewID()
		if got != want {
			t.Fatalf("got %s want %s", got, want)
		}
	}
}
