package docfill

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config contains all configuration options for the docfill engine
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// MaxExpansionPasses bounds the loop-expansion fixed point. Reaching the
	// ceiling stops expansion with whatever has been expanded so far.
	MaxExpansionPasses int
	// MaxWorkEntries is the number of indexed work-experience placeholder slots
	MaxWorkEntries int
	// MaxSkillCategories is the number of indexed skill-category placeholder slots
	MaxSkillCategories int
	// MaxEducationEntries is the number of indexed education placeholder slots
	MaxEducationEntries int
	// MaxCertifications is the number of indexed certification placeholder slots
	MaxCertifications int
	// ExportFormat is the binary format requested from the document API
	ExportFormat string
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:            "info",
		MaxExpansionPasses:  25,
		MaxWorkEntries:      10,
		MaxSkillCategories:  5,
		MaxEducationEntries: 2,
		MaxCertifications:   5,
		ExportFormat:        "pdf",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("DOCFILL_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(strings.TrimSpace(val))
	}

	if val := os.Getenv("DOCFILL_MAX_EXPANSION_PASSES"); val != "" {
		if passes, err := strconv.Atoi(val); err == nil {
			config.MaxExpansionPasses = passes
		}
	}

	if val := os.Getenv("DOCFILL_MAX_WORK_ENTRIES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxWorkEntries = n
		}
	}

	if val := os.Getenv("DOCFILL_MAX_SKILL_CATEGORIES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxSkillCategories = n
		}
	}

	if val := os.Getenv("DOCFILL_MAX_EDUCATION_ENTRIES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxEducationEntries = n
		}
	}

	if val := os.Getenv("DOCFILL_MAX_CERTIFICATIONS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxCertifications = n
		}
	}

	if val := os.Getenv("DOCFILL_EXPORT_FORMAT"); val != "" {
		config.ExportFormat = strings.ToLower(strings.TrimSpace(val))
	}

	return config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.MaxExpansionPasses <= 0 {
		return errors.New("max expansion passes must be positive")
	}

	if c.MaxWorkEntries <= 0 || c.MaxSkillCategories <= 0 ||
		c.MaxEducationEntries <= 0 || c.MaxCertifications <= 0 {
		return errors.New("placeholder slot bounds must be positive")
	}

	if c.ExportFormat == "" {
		return errors.New("export format cannot be empty")
	}

	return nil
}

// GetGlobalConfig returns a copy of the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}
