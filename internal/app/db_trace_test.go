package app

import (
	"strings"
	"testing"
)

func TestTraceQuery(t *testing.T) {
	t.Parallel()

	got := traceQuery(" SELECT id, striker_id\n  FROM balls \t WHERE innings_id = $1\n ORDER BY seq ")
	want := "SELECT id, striker_id FROM balls WHERE innings_id = $1 ORDER BY seq"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}

	long := traceQuery("SELECT " + strings.Repeat("x, ", 400) + "y FROM balls")
	if len(long) != maxTracedQueryLength+3 || !strings.HasSuffix(long, "...") {
		t.Fatalf("expected truncated query, got length %d", len(long))
	}
}
