package observability

import (
	"context"
	"testing"

	"github.com/Tejas544/gully-scorer/internal/config"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

func TestUptraceSkipReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{name: "disabled", cfg: config.Config{UptraceDSN: "https://token@api.uptrace.dev?grpc=4317"}, want: "UPTRACE_ENABLED=false"},
		{name: "blank dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "   "}, want: "UPTRACE_DSN empty"},
		{name: "ready", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev?grpc=4317"}, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := uptraceSkipReason(tc.cfg); got != tc.want {
				t.Fatalf("uptraceSkipReason() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUptraceOptions_CoverServiceIdentity(t *testing.T) {
	t.Parallel()

	opts := uptraceOptions(config.Config{ServiceName: "gully-scorer-api", ServiceVersion: "dev", AppEnv: config.EnvDev})
	if len(opts) != 5 {
		t.Fatalf("expected 5 options, got %d", len(opts))
	}
}

func TestInitUptrace_DisabledIsNoop(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: true,
		ServiceName:    "gully-scorer-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}
