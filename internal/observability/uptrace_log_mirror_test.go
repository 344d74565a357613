package observability

import (
	"errors"
	"testing"

	otellog "go.opentelemetry.io/otel/log"

	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

func TestIsQuietRequestLog(t *testing.T) {
	t.Parallel()

	if !isQuietRequestLog("http_request", []any{"http_method", "GET", "http_path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if !isQuietRequestLog("http_request", []any{"http_path", "/metrics"}) {
		t.Fatalf("expected metrics scrape log to be skipped")
	}
	if isQuietRequestLog("http_request", []any{"http_path", "/v1/matches/m1/balls"}) {
		t.Fatalf("did not expect scoring request log to be skipped")
	}
	if isQuietRequestLog("progression advanced", []any{"http_path", "/healthz"}) {
		t.Fatalf("did not expect non-request entry to be skipped")
	}
}

func TestLogAttributes(t *testing.T) {
	t.Parallel()

	attrs := logAttributes([]any{"match_id", "m-7", "wickets", 3, "error", errors.New("boom"), "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "match_id" || attrs[0].Value.AsString() != "m-7" {
		t.Fatalf("unexpected match_id attribute")
	}
	if attrs[1].Key != "wickets" || attrs[1].Value.AsInt64() != 3 {
		t.Fatalf("unexpected wickets attribute")
	}
	if attrs[2].Value.AsString() != "boom" {
		t.Fatalf("unexpected error attribute %q", attrs[2].Value.AsString())
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute")
	}
}

func TestLogValue_Composite(t *testing.T) {
	t.Parallel()

	v := logValue(map[string]any{"runs": 12, "overs": 2.3, "out": true}, 0)
	if v.Kind() != otellog.KindMap || len(v.AsMap()) != 3 {
		t.Fatalf("expected 3-entry map value, got %s", v.Kind())
	}

	s := logValue([]string{"t1", "t2"}, 0)
	if s.Kind() != otellog.KindSlice || len(s.AsSlice()) != 2 {
		t.Fatalf("expected 2-entry slice value, got %s", s.Kind())
	}
}

func TestSeverityFor(t *testing.T) {
	t.Parallel()

	if severityFor(logging.LevelWarn) != otellog.SeverityWarn {
		t.Fatalf("warn maps to wrong severity")
	}
	if severityFor(logging.LevelError) != otellog.SeverityError {
		t.Fatalf("error maps to wrong severity")
	}
}
