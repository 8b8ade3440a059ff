package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultJSONPath = "config/app.json"
	DefaultEnvPath  = ".env"

	defaultAppEnv        = "local"
	defaultAppPort       = "3001"
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "cusineai"
	defaultTokenTTL      = "24h"
	defaultGenAIModel    = "gemini-1.5-flash"
	defaultGenAIBaseURL  = "https://generativelanguage.googleapis.com/"
	defaultGenAIVersion  = "v1beta"
	defaultGenAITimeout  = "60s"
	defaultCORSOrigin    = "http://localhost:5173"
	defaultMaxBodyBytes  = "1048576"
	defaultGenAIWorkers  = "0"
)

// Config is the fully resolved process configuration. It is built once by
// Load and handed to the kernel; nothing reads configuration after boot.
type Config struct {
	AppEnv  string
	AppPort string

	MongoURI      string
	MongoDatabase string

	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool

	GoogleAPIKey  string
	GenAIModel    string
	GenAIBaseURL  string
	GenAIVersion  string
	GenAITimeout  time.Duration
	GenAICacheTTL time.Duration
	// GenAIWorkers caps concurrent model calls when positive. The default 0
	// leaves every request to wait only on its own call.
	GenAIWorkers int

	CORSOrigin   string
	StrictStatus bool
	MaxBodyBytes int64

	RedisAddr     string
	RedisPassword string

	LogToMongo bool
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":         defaultAppEnv,
		"APP_PORT":        defaultAppPort,
		"MONGO_URI":       defaultMongoURI,
		"MONGO_DATABASE":  defaultMongoDatabase,
		"JWT_SECRET":      "",
		"TOKEN_TTL":       defaultTokenTTL,
		"COOKIE_SECURE":   "false",
		"GOOGLE_API_KEY":  "",
		"GENAI_MODEL":     defaultGenAIModel,
		"GENAI_BASE_URL":  defaultGenAIBaseURL,
		"GENAI_VERSION":   defaultGenAIVersion,
		"GENAI_TIMEOUT":   defaultGenAITimeout,
		"GENAI_CACHE_TTL": "0",
		"GENAI_WORKERS":   defaultGenAIWorkers,
		"CORS_ORIGIN":     defaultCORSOrigin,
		"STRICT_STATUS":   "true",
		"MAX_BODY_BYTES":  defaultMaxBodyBytes,
		"REDIS_ADDR":      "",
		"REDIS_PASSWORD":  "",
		"LOG_TO_MONGO":    "false",
	}
}

// Load reads the configuration and validates it for serving.
func Load(jsonPath, envPath string) (*Config, error) {
	cfg, err := Read(jsonPath, envPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read merges defaults, the optional JSON file, the optional dotenv file and
// finally the process environment (highest precedence). Missing files are
// not an error. Commands that only touch the database use Read directly and
// skip the serving secrets.
func Read(jsonPath, envPath string) (*Config, error) {
	values := defaultValues()

	if err := mergeJSONConfig(jsonPath, values); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err := mergeDotEnv(envPath, values); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	mergeProcessEnv(values)

	return fromValues(values)
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.GoogleAPIKey == "" {
		return errors.New("config: GOOGLE_API_KEY is required")
	}
	if c.MongoURI == "" {
		return errors.New("config: MONGO_URI is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "production", "prod":
		return true
	}
	return false
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.AppPort
}

func fromValues(v map[string]string) (*Config, error) {
	var (
		cfg = &Config{
			AppEnv:        v["APP_ENV"],
			AppPort:       v["APP_PORT"],
			MongoURI:      v["MONGO_URI"],
			MongoDatabase: v["MONGO_DATABASE"],
			JWTSecret:     v["JWT_SECRET"],
			GoogleAPIKey:  v["GOOGLE_API_KEY"],
			GenAIModel:    v["GENAI_MODEL"],
			GenAIBaseURL:  v["GENAI_BASE_URL"],
			GenAIVersion:  v["GENAI_VERSION"],
			CORSOrigin:    v["CORS_ORIGIN"],
			RedisAddr:     v["REDIS_ADDR"],
			RedisPassword: v["REDIS_PASSWORD"],
		}
		err error
	)

	if cfg.TokenTTL, err = parseDuration(v, "TOKEN_TTL"); err != nil {
		return nil, err
	}
	if cfg.GenAITimeout, err = parseDuration(v, "GENAI_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.GenAICacheTTL, err = parseDuration(v, "GENAI_CACHE_TTL"); err != nil {
		return nil, err
	}
	if cfg.CookieSecure, err = parseBool(v, "COOKIE_SECURE"); err != nil {
		return nil, err
	}
	if cfg.StrictStatus, err = parseBool(v, "STRICT_STATUS"); err != nil {
		return nil, err
	}
	if cfg.LogToMongo, err = parseBool(v, "LOG_TO_MONGO"); err != nil {
		return nil, err
	}

	n, err := strconv.ParseInt(v["MAX_BODY_BYTES"], 10, 64)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("config: MAX_BODY_BYTES must be a positive integer, got %q", v["MAX_BODY_BYTES"])
	}
	cfg.MaxBodyBytes = n

	w, err := strconv.Atoi(v["GENAI_WORKERS"])
	if err != nil || w < 0 {
		return nil, fmt.Errorf("config: GENAI_WORKERS must be a non-negative integer, got %q", v["GENAI_WORKERS"])
	}
	cfg.GenAIWorkers = w

	return cfg, nil
}

func parseDuration(v map[string]string, key string) (time.Duration, error) {
	raw := v[key]
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func parseBool(v map[string]string, key string) (bool, error) {
	b, err := strconv.ParseBool(v[key])
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	if path == "" {
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch tv := val.(type) {
		case string:
			s = tv
		case bool:
			s = strconv.FormatBool(tv)
		case float64:
			s = strconv.FormatFloat(tv, 'f', -1, 64)
		default:
			continue
		}
		put(out, key, s)
	}
	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if path == "" {
		return nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for key, val := range env {
		put(out, key, val)
	}
	return nil
}

// mergeProcessEnv overrides only the keys this service knows about.
func mergeProcessEnv(out map[string]string) {
	for key := range defaultValues() {
		if val, ok := os.LookupEnv(key); ok {
			put(out, key, val)
		}
	}
}

func put(out map[string]string, key, val string) {
	k := strings.ToUpper(strings.TrimSpace(key))
	v := strings.TrimSpace(val)
	if k == "" || v == "" {
		return
	}
	out[k] = v
}
