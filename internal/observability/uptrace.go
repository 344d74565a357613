package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/Tejas544/gully-scorer/internal/config"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

// uptraceSkipReason reports why telemetry export stays off, or "" when it should start.
func uptraceSkipReason(cfg config.Config) string {
	if !cfg.UptraceEnabled {
		return "UPTRACE_ENABLED=false"
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		return "UPTRACE_DSN empty"
	}
	return ""
}

func uptraceOptions(cfg config.Config) []uptrace.Option {
	return []uptrace.Option{
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	}
}

// InitUptrace installs the global OpenTelemetry providers and, when log export is on,
// mirrors every log entry to the OTel log pipeline. The returned func flushes and
// detaches both.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if reason := uptraceSkipReason(cfg); reason != "" {
		logging.SetMirror(nil)
		logger.Info("telemetry export off", "reason", reason)
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(uptraceOptions(cfg)...)

	var mirror logging.MirrorFunc
	if cfg.UptraceLogsEnabled {
		mirror = newUptraceLogMirror(cfg.ServiceVersion)
	}
	logging.SetMirror(mirror)

	logger.Info("telemetry export on",
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
		"logs", cfg.UptraceLogsEnabled,
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}
