package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	DBURL                   string
	DBDisablePreparedBinary bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	CORSAllowedOrigins      []string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	LogLevel                logging.Level

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	GatekeeperBaseURL             string
	GatekeeperIntrospectPath      string
	GatekeeperAdminKey            string
	GatekeeperTimeout             time.Duration
	GatekeeperCircuitEnabled      bool
	GatekeeperCircuitFailureCount int
	GatekeeperCircuitOpenTimeout  time.Duration
	GatekeeperCircuitHalfOpenReq  int

	StatsFeedEnabled             bool
	StatsFeedBaseURL             string
	StatsFeedToken               string
	StatsFeedTimeout             time.Duration
	StatsFeedMaxRetries          int
	StatsFeedCircuitEnabled      bool
	StatsFeedCircuitFailureCount int
	StatsFeedCircuitOpenTimeout  time.Duration
	StatsFeedCircuitHalfOpenReq  int

	WebhookEnabled             bool
	WebhookURL                 string
	WebhookAuthToken           string
	WebhookTimeout             time.Duration
	WebhookMaxRetries          int
	WebhookCircuitEnabled      bool
	WebhookCircuitFailureCount int
	WebhookCircuitOpenTimeout  time.Duration
	WebhookCircuitHalfOpenReq  int

	OutboxBatchSize     int
	OutboxWorkers       int
	OutboxDrainInterval time.Duration
	OutboxMaxAttempts   int

	RosterSize          int
	BudgetCap           int64
	MaxPlayersPerCounty int

	InternalJobToken string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
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

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	gatekeeperTimeout, err := getEnvAsDuration("GATEKEEPER_TIMEOUT", "3s")
	if err != nil {
		return Config{}, err
	}
	gatekeeperCircuit, err := loadCircuitSettings("GATEKEEPER")
	if err != nil {
		return Config{}, err
	}

	statsFeedEnabled, err := strconv.ParseBool(getEnv("STATSFEED_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSFEED_ENABLED: %w", err)
	}
	statsFeedToken := strings.TrimSpace(getEnv("STATSFEED_TOKEN", ""))
	if statsFeedEnabled && statsFeedToken == "" {
		return Config{}, fmt.Errorf("STATSFEED_TOKEN is required when STATSFEED_ENABLED=true")
	}
	statsFeedTimeout, err := getEnvAsDuration("STATSFEED_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	statsFeedMaxRetries, err := getEnvAsInt("STATSFEED_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSFEED_MAX_RETRIES: %w", err)
	}
	if statsFeedMaxRetries < 0 {
		return Config{}, fmt.Errorf("STATSFEED_MAX_RETRIES must be >= 0")
	}
	statsFeedCircuit, err := loadCircuitSettings("STATSFEED")
	if err != nil {
		return Config{}, err
	}

	webhookEnabled, err := strconv.ParseBool(getEnv("WEBHOOK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WEBHOOK_ENABLED: %w", err)
	}
	webhookURL := strings.TrimSpace(getEnv("WEBHOOK_URL", ""))
	if webhookEnabled && webhookURL == "" {
		return Config{}, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_ENABLED=true")
	}
	webhookTimeout, err := getEnvAsDuration("WEBHOOK_TIMEOUT", "5s")
	if err != nil {
		return Config{}, err
	}
	webhookMaxRetries, err := getEnvAsInt("WEBHOOK_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse WEBHOOK_MAX_RETRIES: %w", err)
	}
	if webhookMaxRetries < 0 {
		return Config{}, fmt.Errorf("WEBHOOK_MAX_RETRIES must be >= 0")
	}
	webhookCircuit, err := loadCircuitSettings("WEBHOOK")
	if err != nil {
		return Config{}, err
	}

	outboxBatchSize, err := getEnvAsInt("OUTBOX_BATCH_SIZE", 100)
	if err != nil {
		return Config{}, fmt.Errorf("parse OUTBOX_BATCH_SIZE: %w", err)
	}
	if outboxBatchSize < 1 {
		return Config{}, fmt.Errorf("OUTBOX_BATCH_SIZE must be >= 1")
	}
	outboxWorkers, err := getEnvAsInt("OUTBOX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse OUTBOX_WORKERS: %w", err)
	}
	if outboxWorkers < 1 {
		return Config{}, fmt.Errorf("OUTBOX_WORKERS must be >= 1")
	}
	outboxDrainInterval, err := getEnvAsDuration("OUTBOX_DRAIN_INTERVAL", "30s")
	if err != nil {
		return Config{}, err
	}
	outboxMaxAttempts, err := getEnvAsInt("OUTBOX_MAX_ATTEMPTS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse OUTBOX_MAX_ATTEMPTS: %w", err)
	}
	if outboxMaxAttempts < 1 {
		return Config{}, fmt.Errorf("OUTBOX_MAX_ATTEMPTS must be >= 1")
	}

	rosterSize, err := getEnvAsInt("ROSTER_SIZE", 15)
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_SIZE: %w", err)
	}
	if rosterSize < 1 {
		return Config{}, fmt.Errorf("ROSTER_SIZE must be >= 1")
	}
	budgetCap, err := getEnvAsInt("BUDGET_CAP", 100)
	if err != nil {
		return Config{}, fmt.Errorf("parse BUDGET_CAP: %w", err)
	}
	if budgetCap < 1 {
		return Config{}, fmt.Errorf("BUDGET_CAP must be >= 1")
	}
	maxPlayersPerCounty, err := getEnvAsInt("MAX_PLAYERS_PER_COUNTY", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAX_PLAYERS_PER_COUNTY: %w", err)
	}
	if maxPlayersPerCounty < 1 {
		return Config{}, fmt.Errorf("MAX_PLAYERS_PER_COUNTY must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "60s")
	if err != nil {
		return Config{}, err
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "fantasy-gaa-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CacheEnabled:            cacheEnabled,
		CacheTTL:                cacheTTL,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		GatekeeperBaseURL:             getEnv("GATEKEEPER_BASE_URL", "http://localhost:8081"),
		GatekeeperIntrospectPath:      getEnv("GATEKEEPER_INTROSPECT_PATH", "/v1/auth/introspect"),
		GatekeeperAdminKey:            getEnv("GATEKEEPER_ADMIN_KEY", ""),
		GatekeeperTimeout:             gatekeeperTimeout,
		GatekeeperCircuitEnabled:      gatekeeperCircuit.enabled,
		GatekeeperCircuitFailureCount: gatekeeperCircuit.failureCount,
		GatekeeperCircuitOpenTimeout:  gatekeeperCircuit.openTimeout,
		GatekeeperCircuitHalfOpenReq:  gatekeeperCircuit.halfOpenMaxReq,

		StatsFeedEnabled:             statsFeedEnabled,
		StatsFeedBaseURL:             strings.TrimSpace(getEnv("STATSFEED_BASE_URL", "https://feed.gaastats.example.com/v1")),
		StatsFeedToken:               statsFeedToken,
		StatsFeedTimeout:             statsFeedTimeout,
		StatsFeedMaxRetries:          statsFeedMaxRetries,
		StatsFeedCircuitEnabled:      statsFeedCircuit.enabled,
		StatsFeedCircuitFailureCount: statsFeedCircuit.failureCount,
		StatsFeedCircuitOpenTimeout:  statsFeedCircuit.openTimeout,
		StatsFeedCircuitHalfOpenReq:  statsFeedCircuit.halfOpenMaxReq,

		WebhookEnabled:             webhookEnabled,
		WebhookURL:                 webhookURL,
		WebhookAuthToken:           strings.TrimSpace(getEnv("WEBHOOK_AUTH_TOKEN", "")),
		WebhookTimeout:             webhookTimeout,
		WebhookMaxRetries:          webhookMaxRetries,
		WebhookCircuitEnabled:      webhookCircuit.enabled,
		WebhookCircuitFailureCount: webhookCircuit.failureCount,
		WebhookCircuitOpenTimeout:  webhookCircuit.openTimeout,
		WebhookCircuitHalfOpenReq:  webhookCircuit.halfOpenMaxReq,

		OutboxBatchSize:     outboxBatchSize,
		OutboxWorkers:       outboxWorkers,
		OutboxDrainInterval: outboxDrainInterval,
		OutboxMaxAttempts:   outboxMaxAttempts,

		RosterSize:          rosterSize,
		BudgetCap:           int64(budgetCap),
		MaxPlayersPerCounty: maxPlayersPerCounty,

		InternalJobToken: strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.AppEnv == EnvProd && cfg.InternalJobToken == "" {
		return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when APP_ENV=prod")
	}

	return cfg, nil
}

type circuitSettings struct {
	enabled        bool
	failureCount   int
	openTimeout    time.Duration
	halfOpenMaxReq int
}

func loadCircuitSettings(prefix string) (circuitSettings, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return circuitSettings{}, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}

	failureCount, err := getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return circuitSettings{}, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if failureCount < 1 {
		return circuitSettings{}, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}

	openTimeout, err := time.ParseDuration(getEnv(prefix+"_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return circuitSettings{}, fmt.Errorf("parse %s_CIRCUIT_OPEN_TIMEOUT: %w", prefix, err)
	}
	if openTimeout <= 0 {
		return circuitSettings{}, fmt.Errorf("%s_CIRCUIT_OPEN_TIMEOUT must be > 0", prefix)
	}

	halfOpenMaxReq, err := getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return circuitSettings{}, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return circuitSettings{}, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return circuitSettings{
		enabled:        enabled,
		failureCount:   failureCount,
		openTimeout:    openTimeout,
		halfOpenMaxReq: halfOpenMaxReq,
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
