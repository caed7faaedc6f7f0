package core

import (
	"fmt"
	"strings"
	"time"
)

// SimulatedDocument describes a host document seeded into the simulated host
// at startup. Parsed from PSAI_SIM_DOCUMENT ("name:WIDTHxHEIGHT@RESOLUTION").
type SimulatedDocument struct {
	Name       string  // Document name shown in the panel readout
	WidthPx    float64 // Width in pixels
	HeightPx   float64 // Height in pixels
	Resolution float64 // Pixels per inch
	Layers     int     // Initial layer count
}

// Config holds all configuration values for the panel bridge.
type Config struct {
	// Panel server
	PanelHost     string // Bind address for the panel UI server
	PanelPort     int    // Port for the panel UI server
	PanelPassword string // Optional password gate for the panel (empty = no auth)
	SecureCookies bool   // Set the Secure flag on session cookies (HTTPS only)

	// Preview generation
	PreviewLatency time.Duration // Simulated provider latency per generate
	LabelsPath     string        // Optional YAML file overriding display labels

	// Session journal
	JournalPath    string // SQLite database file for the workflow event journal
	MigrationsPath string // golang-migrate source URL for journal migrations

	// Simulated host
	SimDocument *SimulatedDocument // Optional document to seed at startup

	// Logging
	LogFile string // Log file path (rotated)
	DevMode bool   // Development mode: debug level, human-readable console

	// Lifecycle
	ShutdownTimeout time.Duration // Maximum time for graceful shutdown
}

// Default configuration values.
const (
	DefaultPanelHost       = "localhost"
	DefaultPanelPort       = 3800
	DefaultPreviewLatency  = 500 * time.Millisecond
	DefaultJournalPath     = "data/journal.db"
	DefaultMigrationsPath  = "file://journal/migrations"
	DefaultLogFile         = "panel-bridge.log"
	DefaultShutdownTimeout = 30 * time.Second
)

// LoadConfig loads configuration from environment variables with sensible
// defaults. Call godotenv.Load first if a .env file should be honored.
//
// Returns a *ConfigError when a value is present but unusable, so main can
// print the remediation action alongside the message.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		PanelHost:     GetEnvOrDefault("PSAI_PANEL_HOST", DefaultPanelHost),
		PanelPort:     ParseIntEnv("PSAI_PANEL_PORT", DefaultPanelPort),
		PanelPassword: GetEnvOrDefault("PSAI_PANEL_PASSWORD", ""),
		SecureCookies: ParseBoolEnv("PSAI_SECURE_COOKIES", false),

		PreviewLatency: ParseDurationEnv("PSAI_PREVIEW_LATENCY", DefaultPreviewLatency),
		LabelsPath:     GetEnvOrDefault("PSAI_LABELS_FILE", ""),

		JournalPath:    GetEnvOrDefault("PSAI_JOURNAL_PATH", DefaultJournalPath),
		MigrationsPath: GetEnvOrDefault("PSAI_MIGRATIONS_PATH", DefaultMigrationsPath),

		LogFile: GetEnvOrDefault("PSAI_LOG_FILE", DefaultLogFile),
		DevMode: ParseBoolEnv("PSAI_DEV_MODE", false),

		ShutdownTimeout: ParseDurationEnv("PSAI_SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	if cfg.PanelPort < 1 || cfg.PanelPort > 65535 {
		return nil, ErrInvalidPanelPort(cfg.PanelPort)
	}
	if cfg.PreviewLatency < 0 {
		return nil, ErrInvalidPreviewLatency(cfg.PreviewLatency.String())
	}
	if cfg.JournalPath == "" {
		return nil, ErrMissingJournalPath()
	}

	if raw := GetEnvOrDefault("PSAI_SIM_DOCUMENT", ""); raw != "" {
		doc, err := ParseSimulatedDocument(raw)
		if err != nil {
			return nil, err
		}
		cfg.SimDocument = doc
	}

	return cfg, nil
}

// ParseSimulatedDocument parses a PSAI_SIM_DOCUMENT value of the form
// "name:WIDTHxHEIGHT@RESOLUTION". Resolution is optional ("name:WIDTHxHEIGHT"
// defaults to 72 ppi). Layer count always starts at 1 (the background layer).
//
// Examples:
//
//	"Poster:1024x768@72"
//	"Untitled-1:800x600"
func ParseSimulatedDocument(raw string) (*SimulatedDocument, error) {
	name, dims, ok := strings.Cut(raw, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return nil, ErrInvalidSimDocument(raw, "expected name:WIDTHxHEIGHT[@RESOLUTION]")
	}

	resolution := 72.0
	if size, res, hasRes := strings.Cut(dims, "@"); hasRes {
		if _, err := fmt.Sscanf(res, "%f", &resolution); err != nil || resolution <= 0 {
			return nil, ErrInvalidSimDocument(raw, "resolution must be a positive number")
		}
		dims = size
	}

	var width, height float64
	if _, err := fmt.Sscanf(dims, "%fx%f", &width, &height); err != nil {
		return nil, ErrInvalidSimDocument(raw, "dimensions must be WIDTHxHEIGHT in pixels")
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSimDocument(raw, "dimensions must be positive")
	}

	return &SimulatedDocument{
		Name:       strings.TrimSpace(name),
		WidthPx:    width,
		HeightPx:   height,
		Resolution: resolution,
		Layers:     1,
	}, nil
}

// PanelAddr returns the host:port bind address for the panel server.
func (c *Config) PanelAddr() string {
	return fmt.Sprintf("%s:%d", c.PanelHost, c.PanelPort)
}

// AuthEnabled reports whether the panel password gate is active.
func (c *Config) AuthEnabled() bool {
	return c.PanelPassword != ""
}
