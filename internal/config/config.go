package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                   string
	ServiceName              string
	ServiceVersion           string
	HTTPAddr                 string
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
	LogLevel                 logging.Level
	StoreDriver              string
	DBURL                    string
	DBDisablePreparedBinary  bool
	SeedDemo                 bool
	CacheEnabled             bool
	CacheTTL                 time.Duration
	CORSAllowedOrigins       []string
	AdminToken               string
	RateLimitRPS             float64
	RateLimitBurst           int
	StoreCircuitEnabled      bool
	StoreCircuitFailureCount int
	StoreCircuitOpenTimeout  time.Duration
	StoreCircuitHalfOpenReq  int
	ProgressionSweepInterval time.Duration
	ProgressionWorkers       int
	EventBuffer              int64
	EventMaxRetries          int
	MetricsEnabled           bool
	PprofEnabled             bool
	PprofAddr                string
	UptraceEnabled           bool
	UptraceDSN               string
	UptraceLogsEnabled       bool
	PyroscopeEnabled         bool
	PyroscopeServerAddress   string
	PyroscopeAppName         string
	PyroscopeAuthToken       string
	PyroscopeBasicAuthUser   string
	PyroscopeBasicAuthPass   string
	PyroscopeUploadRate      time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storeDriver, err := parseStoreDriver(getEnv("STORE_DRIVER", StoreMemory))
	if err != nil {
		return Config{}, err
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storeDriver == StorePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORE_DRIVER=postgres")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	seedDefault := "false"
	if appEnv == EnvDev && storeDriver == StoreMemory {
		seedDefault = "true"
	}
	seedDemo, err := strconv.ParseBool(getEnv("SEED_DEMO", seedDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SEED_DEMO: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	corsAllowedOrigins := splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if len(corsAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	adminToken := strings.TrimSpace(getEnv("ADMIN_TOKEN", ""))
	if appEnv == EnvProd && adminToken == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN is required when APP_ENV=prod")
	}

	rateLimitRPS, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
	}
	if rateLimitRPS < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	rateLimitBurst, err := getEnvAsInt("RATE_LIMIT_BURST", 40)
	if err != nil {
		return Config{}, fmt.Errorf("parse RATE_LIMIT_BURST: %w", err)
	}
	if rateLimitRPS > 0 && rateLimitBurst < 1 {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST must be >= 1")
	}

	storeCircuitEnabled, err := strconv.ParseBool(getEnv("STORE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STORE_CIRCUIT_ENABLED: %w", err)
	}
	storeCircuitFailureCount, err := getEnvAsInt("STORE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse STORE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if storeCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("STORE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	storeCircuitOpenTimeout, err := time.ParseDuration(getEnv("STORE_CIRCUIT_OPEN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STORE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if storeCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("STORE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	storeCircuitHalfOpenReq, err := getEnvAsInt("STORE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse STORE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if storeCircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("STORE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	sweepInterval, err := time.ParseDuration(getEnv("PROGRESSION_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROGRESSION_SWEEP_INTERVAL: %w", err)
	}
	if sweepInterval < 0 {
		return Config{}, fmt.Errorf("PROGRESSION_SWEEP_INTERVAL must be >= 0")
	}
	progressionWorkers, err := getEnvAsInt("PROGRESSION_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROGRESSION_WORKERS: %w", err)
	}
	if progressionWorkers < 1 {
		return Config{}, fmt.Errorf("PROGRESSION_WORKERS must be >= 1")
	}

	eventBuffer, err := getEnvAsInt("EVENT_BUFFER", 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_BUFFER: %w", err)
	}
	if eventBuffer < 1 {
		return Config{}, fmt.Errorf("EVENT_BUFFER must be >= 1")
	}
	eventMaxRetries, err := getEnvAsInt("EVENT_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse EVENT_MAX_RETRIES: %w", err)
	}
	if eventMaxRetries < 0 {
		return Config{}, fmt.Errorf("EVENT_MAX_RETRIES must be >= 0")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                   appEnv,
		ServiceName:              getEnv("APP_SERVICE_NAME", "gully-scorer-api"),
		ServiceVersion:           getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                 getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:              readTimeout,
		WriteTimeout:             writeTimeout,
		LogLevel:                 parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		StoreDriver:              storeDriver,
		DBURL:                    dbURL,
		DBDisablePreparedBinary:  dbDisablePreparedBinary,
		SeedDemo:                 seedDemo,
		CacheEnabled:             cacheEnabled,
		CacheTTL:                 cacheTTL,
		CORSAllowedOrigins:       corsAllowedOrigins,
		AdminToken:               adminToken,
		RateLimitRPS:             rateLimitRPS,
		RateLimitBurst:           rateLimitBurst,
		StoreCircuitEnabled:      storeCircuitEnabled,
		StoreCircuitFailureCount: storeCircuitFailureCount,
		StoreCircuitOpenTimeout:  storeCircuitOpenTimeout,
		StoreCircuitHalfOpenReq:  storeCircuitHalfOpenReq,
		ProgressionSweepInterval: sweepInterval,
		ProgressionWorkers:       progressionWorkers,
		EventBuffer:              int64(eventBuffer),
		EventMaxRetries:          eventMaxRetries,
		MetricsEnabled:           metricsEnabled,
		PprofEnabled:             pprofEnabled,
		PprofAddr:                pprofAddr,
		UptraceEnabled:           uptraceEnabled,
		UptraceDSN:               uptraceDSN,
		UptraceLogsEnabled:       uptraceLogsEnabled,
		PyroscopeEnabled:         pyroscopeEnabled,
		PyroscopeServerAddress:   pyroscopeServerAddress,
		PyroscopeAuthToken:       strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPass:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:      pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	level, err := logging.ParseLevel(v)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStoreDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StoreMemory, StorePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORE_DRIVER %q: valid values are %s, %s", v, StoreMemory, StorePostgres)
	}
}
