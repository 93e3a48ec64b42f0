package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const dateLayout = time.DateOnly

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// Locations are the display-only room labels offered by the dashboard.
	Locations []string

	DefaultStart time.Time
	DefaultEnd   time.Time
	// MaxRangeDays bounds the span of a single request.
	MaxRangeDays int

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// ConfigFile is the YAML file that was read, empty when none was found.
	ConfigFile string
}

// Load reads configuration from the environment and an optional YAML file.
// Environment variables win over the file, which wins over defaults. The file
// is CONFIG_FILE when set, else config.yaml in CONFIG_PATH (default ".").
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	for _, key := range []string{
		"app_env", "log_level", "http_addr", "locations",
		"default_start_date", "default_end_date", "max_range_days",
		"read_header_timeout", "shutdown_timeout",
	} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	configFile, err := readConfigFile(v)
	if err != nil {
		return Config{}, err
	}

	appEnv := strings.TrimSpace(v.GetString("app_env"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(v.GetString("log_level"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := ParseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	httpAddr := strings.TrimSpace(v.GetString("http_addr"))
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	locations := parseList(v.Get("locations"))
	if len(locations) == 0 {
		return Config{}, errors.New("invalid LOCATIONS: at least one location is required")
	}

	defaultStart, err := parseDate("DEFAULT_START_DATE", v.GetString("default_start_date"))
	if err != nil {
		return Config{}, err
	}
	defaultEnd, err := parseDate("DEFAULT_END_DATE", v.GetString("default_end_date"))
	if err != nil {
		return Config{}, err
	}

	maxRangeDaysStr := strings.TrimSpace(v.GetString("max_range_days"))
	maxRangeDays, err := strconv.Atoi(maxRangeDaysStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MAX_RANGE_DAYS %q: %w", maxRangeDaysStr, err)
	}
	if maxRangeDays <= 0 {
		return Config{}, fmt.Errorf("invalid MAX_RANGE_DAYS %d (must be > 0)", maxRangeDays)
	}

	readHeaderTimeout, err := parsePositiveDuration("READ_HEADER_TIMEOUT", v.GetString("read_header_timeout"))
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", v.GetString("shutdown_timeout"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		AppEnv:            appEnv,
		LogLevel:          level,
		HTTPAddr:          httpAddr,
		Locations:         locations,
		DefaultStart:      defaultStart,
		DefaultEnd:        defaultEnd,
		MaxRangeDays:      maxRangeDays,
		ReadHeaderTimeout: readHeaderTimeout,
		ShutdownTimeout:   shutdownTimeout,
		ConfigFile:        configFile,
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("locations", []string{"Tech 1", "Tech 2"})
	v.SetDefault("default_start_date", "2024-01-01")
	v.SetDefault("default_end_date", "2024-01-02")
	v.SetDefault("max_range_days", 366)
	v.SetDefault("read_header_timeout", "5s")
	v.SetDefault("shutdown_timeout", "10s")
}

// readConfigFile loads the optional YAML file. A missing default file is not
// an error; a missing explicit CONFIG_FILE is.
func readConfigFile(v *viper.Viper) (string, error) {
	if file := strings.TrimSpace(os.Getenv("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("read CONFIG_FILE %q: %w", file, err)
		}
		return v.ConfigFileUsed(), nil
	}

	dir := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(filepath.Clean(dir))
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// parseList accepts a comma-separated string (env) or a YAML list.
func parseList(raw any) []string {
	var items []string
	switch t := raw.(type) {
	case string:
		items = strings.Split(t, ",")
	case []string:
		items = t
	case []any:
		for _, item := range t {
			items = append(items, fmt.Sprint(item))
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseDate(name, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (expected YYYY-MM-DD): %w", name, s, err)
	}
	return t, nil
}

func parsePositiveDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q (must be > 0)", name, s)
	}
	return d, nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
