package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/substack/config"
	ConfigFileName    = "substack.yml"
)

// ValidJWTAlgorithms lists the HMAC algorithms tokens may be signed with.
var ValidJWTAlgorithms = []string{"HS256", "HS384", "HS512"}

// ValidLogLevels lists the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// SubStackConfig holds all SubStack configuration settings
type SubStackConfig struct {
	// JWTSecret signs and verifies access tokens
	JWTSecret string `yaml:"jwt_secret" json:"-"`

	// JWTAlgorithm is the HMAC algorithm used for access tokens
	JWTAlgorithm string `yaml:"jwt_algorithm" json:"jwt_algorithm"`

	// AccessTokenTTLMinutes is the lifetime of an access token
	AccessTokenTTLMinutes int `yaml:"access_token_ttl_minutes" json:"access_token_ttl_minutes"`

	// ResendAPIKey enables email delivery; without it emails are only logged
	ResendAPIKey string `yaml:"resend_api_key" json:"-"`

	// EmailFromAddress is the sender of reminder emails
	EmailFromAddress string `yaml:"email_from_address" json:"email_from_address"`

	// EnableScheduler runs the daily reminder job inside the server
	EnableScheduler bool `yaml:"enable_scheduler" json:"enable_scheduler"`

	// ReminderCheckHour is the UTC hour at which the reminder job runs
	ReminderCheckHour int `yaml:"reminder_check_hour" json:"reminder_check_hour"`

	// RedisURL, when set, guards the reminder job with a distributed lock
	RedisURL string `yaml:"redis_url" json:"redis_url"`

	// APIListLimitMax is the largest page size a list endpoint accepts
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// MaxCustomCategories caps the custom categories of a single user
	MaxCustomCategories int `yaml:"max_custom_categories" json:"max_custom_categories"`

	// ForgottenThresholdDays is the default idle period for forgotten subscriptions
	ForgottenThresholdDays int `yaml:"forgotten_threshold_days" json:"forgotten_threshold_days"`

	// LogLevel is the logrus level name
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is "text" or "json"
	LogFormat string `yaml:"log_format" json:"log_format"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// envOverrides mirrors SubStackConfig with pointers so unset variables
// can be told apart from zero values.
type envOverrides struct {
	JWTSecret              *string `env:"SUBSTACK_JWT_SECRET"`
	JWTAlgorithm           *string `env:"SUBSTACK_JWT_ALGORITHM"`
	AccessTokenTTLMinutes  *int    `env:"SUBSTACK_ACCESS_TOKEN_TTL_MINUTES"`
	ResendAPIKey           *string `env:"SUBSTACK_RESEND_API_KEY"`
	EmailFromAddress       *string `env:"SUBSTACK_EMAIL_FROM_ADDRESS"`
	EnableScheduler        *bool   `env:"SUBSTACK_ENABLE_SCHEDULER"`
	ReminderCheckHour      *int    `env:"SUBSTACK_REMINDER_CHECK_HOUR"`
	RedisURL               *string `env:"SUBSTACK_REDIS_URL"`
	APIListLimitMax        *int    `env:"SUBSTACK_API_LIST_LIMIT_MAX"`
	MaxCustomCategories    *int    `env:"SUBSTACK_MAX_CUSTOM_CATEGORIES"`
	ForgottenThresholdDays *int    `env:"SUBSTACK_FORGOTTEN_THRESHOLD_DAYS"`
	LogLevel               *string `env:"SUBSTACK_LOG_LEVEL"`
	LogFormat              *string `env:"SUBSTACK_LOG_FORMAT"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *SubStackConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *SubStackConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload loads and validates the configuration from file and environment
// and installs it as the global config. On error the previous config is
// left in place.
func Reload() (*SubStackConfig, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	Set(cfg)
	return cfg, nil
}

// Set replaces the global configuration. Tests use it to pin values.
func Set(cfg *SubStackConfig) {
	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
}

// Default returns a config holding only default values.
func Default() *SubStackConfig {
	cfg := newDefault()
	for _, name := range attributeNames() {
		cfg.sources[name] = "default"
	}
	return cfg
}

func newDefault() *SubStackConfig {
	return &SubStackConfig{
		JWTAlgorithm:           "HS256",
		AccessTokenTTLMinutes:  60 * 24,
		EmailFromAddress:       "SubStack <reminders@yourdomain.com>",
		EnableScheduler:        true,
		ReminderCheckHour:      9,
		APIListLimitMax:        100,
		MaxCustomCategories:    20,
		ForgottenThresholdDays: 30,
		LogLevel:               "info",
		LogFormat:              "text",
		sources:                make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*SubStackConfig, error) {
	config := Default()

	configPath := os.Getenv("SUBSTACK_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig SubStackConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig, data)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"jwt_secret", "jwt_algorithm", "access_token_ttl_minutes",
		"resend_api_key", "email_from_address", "enable_scheduler",
		"reminder_check_hour", "redis_url", "api_list_limit_max",
		"max_custom_categories", "forgotten_threshold_days",
		"log_level", "log_format",
	}
}

func (c *SubStackConfig) applyFileConfig(file *SubStackConfig, raw []byte) {
	if file.JWTSecret != "" {
		c.JWTSecret = file.JWTSecret
		c.sources["jwt_secret"] = "file"
	}
	if file.JWTAlgorithm != "" {
		c.JWTAlgorithm = file.JWTAlgorithm
		c.sources["jwt_algorithm"] = "file"
	}
	if file.AccessTokenTTLMinutes != 0 {
		c.AccessTokenTTLMinutes = file.AccessTokenTTLMinutes
		c.sources["access_token_ttl_minutes"] = "file"
	}
	if file.ResendAPIKey != "" {
		c.ResendAPIKey = file.ResendAPIKey
		c.sources["resend_api_key"] = "file"
	}
	if file.EmailFromAddress != "" {
		c.EmailFromAddress = file.EmailFromAddress
		c.sources["email_from_address"] = "file"
	}
	if file.RedisURL != "" {
		c.RedisURL = file.RedisURL
		c.sources["redis_url"] = "file"
	}
	if file.APIListLimitMax != 0 {
		c.APIListLimitMax = file.APIListLimitMax
		c.sources["api_list_limit_max"] = "file"
	}
	if file.MaxCustomCategories != 0 {
		c.MaxCustomCategories = file.MaxCustomCategories
		c.sources["max_custom_categories"] = "file"
	}
	if file.ForgottenThresholdDays != 0 {
		c.ForgottenThresholdDays = file.ForgottenThresholdDays
		c.sources["forgotten_threshold_days"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.LogFormat != "" {
		c.LogFormat = file.LogFormat
		c.sources["log_format"] = "file"
	}

	// Booleans and a zero hour are legitimate file values, so presence is
	// checked against the raw document instead of the zero value.
	var present map[string]interface{}
	if err := yaml.Unmarshal(raw, &present); err == nil {
		if _, ok := present["enable_scheduler"]; ok {
			c.EnableScheduler = file.EnableScheduler
			c.sources["enable_scheduler"] = "file"
		}
		if _, ok := present["reminder_check_hour"]; ok {
			c.ReminderCheckHour = file.ReminderCheckHour
			c.sources["reminder_check_hour"] = "file"
		}
	}
}

func (c *SubStackConfig) applyEnvConfig() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setString(&c.JWTSecret, overrides.JWTSecret, c.sources, "jwt_secret")
	setString(&c.JWTAlgorithm, overrides.JWTAlgorithm, c.sources, "jwt_algorithm")
	setInt(&c.AccessTokenTTLMinutes, overrides.AccessTokenTTLMinutes, c.sources, "access_token_ttl_minutes")
	setString(&c.ResendAPIKey, overrides.ResendAPIKey, c.sources, "resend_api_key")
	setString(&c.EmailFromAddress, overrides.EmailFromAddress, c.sources, "email_from_address")
	if overrides.EnableScheduler != nil {
		c.EnableScheduler = *overrides.EnableScheduler
		c.sources["enable_scheduler"] = "environment"
	}
	setInt(&c.ReminderCheckHour, overrides.ReminderCheckHour, c.sources, "reminder_check_hour")
	setString(&c.RedisURL, overrides.RedisURL, c.sources, "redis_url")
	setInt(&c.APIListLimitMax, overrides.APIListLimitMax, c.sources, "api_list_limit_max")
	setInt(&c.MaxCustomCategories, overrides.MaxCustomCategories, c.sources, "max_custom_categories")
	setInt(&c.ForgottenThresholdDays, overrides.ForgottenThresholdDays, c.sources, "forgotten_threshold_days")
	setString(&c.LogLevel, overrides.LogLevel, c.sources, "log_level")
	setString(&c.LogFormat, overrides.LogFormat, c.sources, "log_format")
	return nil
}

func setString(dst *string, val *string, sources map[string]string, name string) {
	if val == nil || *val == "" {
		return
	}
	*dst = *val
	sources[name] = "environment"
}

func setInt(dst *int, val *int, sources map[string]string, name string) {
	if val == nil {
		return
	}
	*dst = *val
	sources[name] = "environment"
}

// ConfigFilePath returns the path to the config file
func (c *SubStackConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *SubStackConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// AccessTokenTTL returns the access token lifetime as a duration
func (c *SubStackConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMinutes) * time.Minute
}

// EmailEnabled reports whether reminder emails are actually delivered
func (c *SubStackConfig) EmailEnabled() bool {
	return c.ResendAPIKey != ""
}

// Validate validates the configuration
func (c *SubStackConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if !contains(ValidJWTAlgorithms, c.JWTAlgorithm) {
		return fmt.Errorf("invalid jwt_algorithm: %s", c.JWTAlgorithm)
	}
	if c.AccessTokenTTLMinutes <= 0 {
		return fmt.Errorf("access_token_ttl_minutes must be positive, got %d", c.AccessTokenTTLMinutes)
	}
	if c.ReminderCheckHour < 0 || c.ReminderCheckHour > 23 {
		return fmt.Errorf("reminder_check_hour must be between 0 and 23, got %d", c.ReminderCheckHour)
	}
	if c.APIListLimitMax < 1 {
		return fmt.Errorf("api_list_limit_max must be at least 1, got %d", c.APIListLimitMax)
	}
	if c.MaxCustomCategories < 0 {
		return fmt.Errorf("max_custom_categories cannot be negative, got %d", c.MaxCustomCategories)
	}
	if c.ForgottenThresholdDays < 1 || c.ForgottenThresholdDays > 365 {
		return fmt.Errorf("forgotten_threshold_days must be between 1 and 365, got %d", c.ForgottenThresholdDays)
	}
	if !contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *SubStackConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "jwt_secret", Value: mask(c.JWTSecret), Source: c.Source("jwt_secret")},
		{Name: "jwt_algorithm", Value: c.JWTAlgorithm, Source: c.Source("jwt_algorithm")},
		{Name: "access_token_ttl_minutes", Value: strconv.Itoa(c.AccessTokenTTLMinutes), Source: c.Source("access_token_ttl_minutes")},
		{Name: "resend_api_key", Value: mask(c.ResendAPIKey), Source: c.Source("resend_api_key")},
		{Name: "email_from_address", Value: c.EmailFromAddress, Source: c.Source("email_from_address")},
		{Name: "enable_scheduler", Value: strconv.FormatBool(c.EnableScheduler), Source: c.Source("enable_scheduler")},
		{Name: "reminder_check_hour", Value: strconv.Itoa(c.ReminderCheckHour), Source: c.Source("reminder_check_hour")},
		{Name: "redis_url", Value: c.RedisURL, Source: c.Source("redis_url")},
		{Name: "api_list_limit_max", Value: strconv.Itoa(c.APIListLimitMax), Source: c.Source("api_list_limit_max")},
		{Name: "max_custom_categories", Value: strconv.Itoa(c.MaxCustomCategories), Source: c.Source("max_custom_categories")},
		{Name: "forgotten_threshold_days", Value: strconv.Itoa(c.ForgottenThresholdDays), Source: c.Source("forgotten_threshold_days")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "log_format", Value: c.LogFormat, Source: c.Source("log_format")},
	}
}

// FormatText returns a text representation of the configuration
func (c *SubStackConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *SubStackConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
