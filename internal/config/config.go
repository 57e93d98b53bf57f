package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mbarese/transfer-sim/internal/platform/logging"
)

// Environment names accepted in APP_ENV.
const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	DBURL                          string
	DBDisablePreparedBinary        bool
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	CORSAllowedOrigins             []string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
	SwaggerEnabled                 bool
	CurrentSeason                  string
	RatingSensitivity              float64
	PositionWeight                 float64
	MultiplierMin                  float64
	MultiplierMax                  float64
	DefaultRating                  float64
	SimulationPoolSize             int
	BatchMaxItems                  int
	UptraceEnabled                 bool
	UptraceDSN                     string
	UptraceLogsEnabled             bool
	UptraceCaptureRequestBody      bool
	UptraceRequestBodyMaxBytes     int
	BetterStackEnabled             bool
	BetterStackEndpoint            string
	BetterStackToken               string
	BetterStackTimeout             time.Duration
	BetterStackMinLevel            logging.Level
	HeartbeatEnabled               bool
	HeartbeatURL                   string
	HeartbeatInterval              time.Duration
	HeartbeatTimeout               time.Duration
	HeartbeatCircuitEnabled        bool
	HeartbeatCircuitFailureCount   int
	HeartbeatCircuitOpenTimeout    time.Duration
	HeartbeatCircuitHalfOpenMaxReq int
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	InternalJobToken               string
	LogLevel                       logging.Level
}

// Load reads the service configuration from the environment. Sections load
// in a fixed order: swagger defaults depend on AppEnv and the pyroscope app
// name defaults to ServiceName.
func Load() (Config, error) {
	var cfg Config

	sections := []func(*Config) error{
		loadService,
		loadHTTP,
		loadDatabase,
		loadCache,
		loadSimulation,
		loadUptrace,
		loadBetterStack,
		loadHeartbeat,
		loadProfiling,
	}
	for _, loadSection := range sections {
		if err := loadSection(&cfg); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func loadService(cfg *Config) error {
	appEnv, err := parseAppEnv(envString("APP_ENV", EnvDev))
	if err != nil {
		return err
	}

	cfg.AppEnv = appEnv
	cfg.ServiceName = envString("APP_SERVICE_NAME", "transfer-sim-api")
	cfg.ServiceVersion = envString("APP_SERVICE_VERSION", "dev")
	cfg.LogLevel = parseLogLevel(envString("APP_LOG_LEVEL", "info"))
	cfg.InternalJobToken = strings.TrimSpace(envString("INTERNAL_JOB_TOKEN", ""))
	return nil
}

func loadHTTP(cfg *Config) error {
	cfg.HTTPAddr = envString("APP_HTTP_ADDR", ":8080")

	readTimeout, err := envDuration("APP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return err
	}
	writeTimeout, err := envDuration("APP_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return err
	}
	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout

	cfg.CORSAllowedOrigins = csvValues(envString("CORS_ALLOWED_ORIGINS", "*"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	swaggerEnabled, err := envBool("SWAGGER_ENABLED", cfg.AppEnv != EnvProd)
	if err != nil {
		return err
	}
	cfg.SwaggerEnabled = swaggerEnabled
	return nil
}

func loadDatabase(cfg *Config) error {
	cfg.DBURL = strings.TrimSpace(envString("DB_URL", ""))

	disablePreparedBinary, err := envBool("DB_DISABLE_PREPARED_BINARY_RESULT", true)
	if err != nil {
		return err
	}
	cfg.DBDisablePreparedBinary = disablePreparedBinary
	return nil
}

func loadCache(cfg *Config) error {
	enabled, err := envBool("CACHE_ENABLED", true)
	if err != nil {
		return err
	}
	ttl, err := envDuration("CACHE_TTL", 300*time.Second)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}

	cfg.CacheEnabled = enabled
	cfg.CacheTTL = ttl
	return nil
}

func loadSimulation(cfg *Config) error {
	cfg.CurrentSeason = strings.TrimSpace(envString("CURRENT_SEASON", "2025-26"))
	if cfg.CurrentSeason == "" {
		return fmt.Errorf("CURRENT_SEASON cannot be empty")
	}

	sensitivity, err := envFloat("RATING_SENSITIVITY", 2.0)
	if err != nil {
		return err
	}
	if sensitivity <= 0 || sensitivity > 5 {
		return fmt.Errorf("RATING_SENSITIVITY must be in (0, 5]")
	}
	cfg.RatingSensitivity = sensitivity

	positionWeight, err := envFloat("POSITION_WEIGHT", 0.4)
	if err != nil {
		return err
	}
	if positionWeight < 0 || positionWeight > 1 {
		return fmt.Errorf("POSITION_WEIGHT must be in [0, 1]")
	}
	cfg.PositionWeight = positionWeight

	multiplierMin, err := envFloat("MULTIPLIER_MIN", 0.3)
	if err != nil {
		return err
	}
	if multiplierMin <= 0 {
		return fmt.Errorf("MULTIPLIER_MIN must be > 0")
	}
	multiplierMax, err := envFloat("MULTIPLIER_MAX", 3.0)
	if err != nil {
		return err
	}
	if multiplierMax <= multiplierMin {
		return fmt.Errorf("MULTIPLIER_MAX must be > MULTIPLIER_MIN")
	}
	cfg.MultiplierMin = multiplierMin
	cfg.MultiplierMax = multiplierMax

	defaultRating, err := envFloat("DEFAULT_RATING", 50)
	if err != nil {
		return err
	}
	if defaultRating <= 0 {
		return fmt.Errorf("DEFAULT_RATING must be > 0")
	}
	cfg.DefaultRating = defaultRating

	poolSize, err := envInt("SIMULATION_POOL_SIZE", 8)
	if err != nil {
		return err
	}
	if poolSize < 1 {
		return fmt.Errorf("SIMULATION_POOL_SIZE must be >= 1")
	}
	cfg.SimulationPoolSize = poolSize

	batchMaxItems, err := envInt("BATCH_MAX_ITEMS", 50)
	if err != nil {
		return err
	}
	if batchMaxItems < 1 {
		return fmt.Errorf("BATCH_MAX_ITEMS must be >= 1")
	}
	cfg.BatchMaxItems = batchMaxItems
	return nil
}

func loadUptrace(cfg *Config) error {
	enabled, err := envBool("UPTRACE_ENABLED", false)
	if err != nil {
		return err
	}
	dsn := strings.TrimSpace(envString("UPTRACE_DSN", ""))
	if dsn == "" {
		dsn = uptraceDSNFromOTLPHeaders(envString("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if enabled && dsn == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	logsEnabled, err := envBool("UPTRACE_LOGS_ENABLED", true)
	if err != nil {
		return err
	}
	captureRequestBody, err := envBool("UPTRACE_CAPTURE_REQUEST_BODY", true)
	if err != nil {
		return err
	}
	requestBodyMaxBytes, err := envInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return err
	}
	if requestBodyMaxBytes <= 0 {
		return fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	cfg.UptraceEnabled = enabled
	cfg.UptraceDSN = dsn
	cfg.UptraceLogsEnabled = logsEnabled
	cfg.UptraceCaptureRequestBody = captureRequestBody
	cfg.UptraceRequestBodyMaxBytes = requestBodyMaxBytes
	return nil
}

func loadBetterStack(cfg *Config) error {
	enabled, err := envBool("BETTERSTACK_ENABLED", false)
	if err != nil {
		return err
	}
	endpoint := strings.TrimSpace(envString("BETTERSTACK_ENDPOINT", ""))
	if enabled && endpoint == "" {
		return fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	timeout, err := envDuration("BETTERSTACK_TIMEOUT", 3*time.Second)
	if err != nil {
		return err
	}
	if timeout <= 0 {
		return fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}

	cfg.BetterStackEnabled = enabled
	cfg.BetterStackEndpoint = endpoint
	cfg.BetterStackToken = strings.TrimSpace(envString("BETTERSTACK_TOKEN", ""))
	cfg.BetterStackTimeout = timeout
	cfg.BetterStackMinLevel = parseLogLevel(envString("BETTERSTACK_MIN_LEVEL", "error"))
	return nil
}

func loadHeartbeat(cfg *Config) error {
	enabled, err := envBool("HEARTBEAT_ENABLED", false)
	if err != nil {
		return err
	}
	heartbeatURL := strings.TrimSpace(envString("HEARTBEAT_URL", ""))
	if enabled && heartbeatURL == "" {
		return fmt.Errorf("HEARTBEAT_URL is required when HEARTBEAT_ENABLED=true")
	}

	interval, err := envDuration("HEARTBEAT_INTERVAL", 60*time.Second)
	if err != nil {
		return err
	}
	if interval <= 0 {
		return fmt.Errorf("HEARTBEAT_INTERVAL must be > 0")
	}
	timeout, err := envDuration("HEARTBEAT_TIMEOUT", 5*time.Second)
	if err != nil {
		return err
	}
	if timeout <= 0 {
		return fmt.Errorf("HEARTBEAT_TIMEOUT must be > 0")
	}

	circuitEnabled, err := envBool("HEARTBEAT_CIRCUIT_ENABLED", true)
	if err != nil {
		return err
	}
	failureCount, err := envInt("HEARTBEAT_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return err
	}
	if failureCount < 1 {
		return fmt.Errorf("HEARTBEAT_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	openTimeout, err := envDuration("HEARTBEAT_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return err
	}
	if openTimeout <= 0 {
		return fmt.Errorf("HEARTBEAT_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	halfOpenMaxReq, err := envInt("HEARTBEAT_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return err
	}
	if halfOpenMaxReq < 1 {
		return fmt.Errorf("HEARTBEAT_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cfg.HeartbeatEnabled = enabled
	cfg.HeartbeatURL = heartbeatURL
	cfg.HeartbeatInterval = interval
	cfg.HeartbeatTimeout = timeout
	cfg.HeartbeatCircuitEnabled = circuitEnabled
	cfg.HeartbeatCircuitFailureCount = failureCount
	cfg.HeartbeatCircuitOpenTimeout = openTimeout
	cfg.HeartbeatCircuitHalfOpenMaxReq = halfOpenMaxReq
	return nil
}

func loadProfiling(cfg *Config) error {
	pprofEnabled, err := envBool("PPROF_ENABLED", false)
	if err != nil {
		return err
	}
	pprofAddr := strings.TrimSpace(envString("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	cfg.PprofEnabled = pprofEnabled
	cfg.PprofAddr = pprofAddr

	pyroscopeEnabled, err := envBool("PYROSCOPE_ENABLED", false)
	if err != nil {
		return err
	}
	serverAddress := strings.TrimSpace(envString("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && serverAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	uploadRate, err := envDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)
	if err != nil {
		return err
	}
	if uploadRate <= 0 {
		return fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}
	appName := strings.TrimSpace(envString("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if pyroscopeEnabled && appName == "" {
		return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = serverAddress
	cfg.PyroscopeAppName = appName
	cfg.PyroscopeAuthToken = strings.TrimSpace(envString("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(envString("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(envString("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeUploadRate = uploadRate
	return nil
}

var logLevelNames = map[string]logging.Level{
	"debug":   logging.LevelDebug,
	"info":    logging.LevelInfo,
	"warn":    logging.LevelWarn,
	"warning": logging.LevelWarn,
	"error":   logging.LevelError,
}

func parseLogLevel(v string) logging.Level {
	if level, ok := logLevelNames[strings.ToLower(strings.TrimSpace(v))]; ok {
		return level
	}
	return logging.LevelInfo
}

func parseAppEnv(v string) (string, error) {
	env := strings.ToLower(strings.TrimSpace(v))
	if env != EnvDev && env != EnvStage && env != EnvProd {
		return "", fmt.Errorf("invalid APP_ENV %q: must be one of %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
	return env, nil
}

// envString returns the raw value of key, or fallback when the variable is
// unset or blank.
func envString(key, fallback string) string {
	if v := os.Getenv(key); strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func csvValues(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func uptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(item, "=")
		if !ok {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(name), "uptrace-dsn") {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return ""
}
