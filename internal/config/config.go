package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-validator/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	LogLevel           string
	ValidationTimeout  time.Duration
	MaxPages           int
	ArtifactDir        string
	ArtifactExt        string
	QPDFPath           string
	MuToolPath         string
	RenderResolution   int
	RenderUseSudo      bool
	KillGrace          time.Duration
	ProcessNiceness    int
	PageProber         string
	MaxUploadSize      int64
	StatsInterval      time.Duration
	SupabaseURL        string
	SupabaseKey        string
	CORSAllowedOrigins []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:         getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		ValidationTimeout:  getEnvSecondsOrDefault("VALIDATION_TIMEOUT_SECONDS", 60*time.Second),
		MaxPages:           getEnvIntOrDefault("MAX_PAGES", 0), // 0 means unbounded
		ArtifactDir:        getEnvOrDefault("ARTIFACT_DIR", os.TempDir()),
		ArtifactExt:        getEnvOrDefault("ARTIFACT_EXT", ".png"),
		QPDFPath:           getEnvOrDefault("QPDF_PATH", "qpdf"),
		MuToolPath:         getEnvOrDefault("MUTOOL_PATH", "/usr/bin/mutool"),
		RenderResolution:   getEnvIntOrDefault("RENDER_RESOLUTION", 10),
		RenderUseSudo:      getEnvBoolOrDefault("RENDER_USE_SUDO", false),
		KillGrace:          getEnvSecondsOrDefault("KILL_GRACE_SECONDS", 5*time.Second),
		ProcessNiceness:    getEnvIntOrDefault("PROCESS_NICENESS", 19),
		PageProber:         strings.ToLower(getEnvOrDefault("PAGE_PROBER", "qpdf")),
		MaxUploadSize:      getEnvInt64OrDefault("MAX_UPLOAD_SIZE", 50*1024*1024), // 50MB default
		StatsInterval:      getEnvSecondsOrDefault("STATS_INTERVAL_SECONDS", 60*time.Second),
		SupabaseURL:        getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:        getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetValidationTimeout returns the total time budget of one validation
func (c *AppConfig) GetValidationTimeout() time.Duration {
	return c.ValidationTimeout
}

// GetMaxPages returns the default page bound, 0 when unbounded
func (c *AppConfig) GetMaxPages() int {
	return c.MaxPages
}

// GetArtifactDir returns the directory for render artifacts and spooled uploads
func (c *AppConfig) GetArtifactDir() string {
	return c.ArtifactDir
}

// GetArtifactExt returns the render artifact extension
func (c *AppConfig) GetArtifactExt() string {
	return c.ArtifactExt
}

// GetQPDFPath returns the qpdf binary
func (c *AppConfig) GetQPDFPath() string {
	return c.QPDFPath
}

// GetMuToolPath returns the mutool binary
func (c *AppConfig) GetMuToolPath() string {
	return c.MuToolPath
}

// GetRenderResolution returns the render resolution hint
func (c *AppConfig) GetRenderResolution() int {
	return c.RenderResolution
}

// GetRenderUseSudo reports whether mutool runs through sudo
func (c *AppConfig) GetRenderUseSudo() bool {
	return c.RenderUseSudo
}

// GetKillGrace returns the delay between SIGTERM and SIGKILL
func (c *AppConfig) GetKillGrace() time.Duration {
	return c.KillGrace
}

// GetProcessNiceness returns the niceness of external checks
func (c *AppConfig) GetProcessNiceness() int {
	return c.ProcessNiceness
}

// GetPageProber returns the page count backend (qpdf or mupdf)
func (c *AppConfig) GetPageProber() string {
	return c.PageProber
}

// GetMaxUploadSize returns the maximum accepted upload size
func (c *AppConfig) GetMaxUploadSize() int64 {
	return c.MaxUploadSize
}

// GetStatsInterval returns how often aggregate stats are logged
func (c *AppConfig) GetStatsInterval() time.Duration {
	return c.StatsInterval
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetCORSAllowedOrigins returns the allowed CORS origins
func (c *AppConfig) GetCORSAllowedOrigins() []string {
	return c.CORSAllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// Accepts fractional seconds ("2.5"); negative values fall back to the default.
func getEnvSecondsOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.ParseFloat(value, 64); err == nil && seconds >= 0 {
			return time.Duration(seconds * float64(time.Second))
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
