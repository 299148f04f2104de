package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/madmin/config"
	ConfigFileName    = "madmin.yml"
)

// Config holds all madmin configuration settings
type Config struct {
	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// PanelPageSize is the per-model page size on the dashboard
	PanelPageSize int `yaml:"panel_page_size" json:"panel_page_size"`

	// PanelPlainPageSize is the per-model page size of the JSON dashboard variant
	PanelPlainPageSize int `yaml:"panel_plain_page_size" json:"panel_plain_page_size"`

	// ObjectListPageSize is the page size of per-model object listings
	ObjectListPageSize int `yaml:"object_list_page_size" json:"object_list_page_size"`

	// TokenTTL is the access token lifetime in seconds
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
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
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		TrustedProxies:     []string{},
		PanelPageSize:      6,
		PanelPlainPageSize: 8,
		ObjectListPageSize: 15,
		TokenTTL:           28800,
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("MADMIN_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"trusted_proxies", "panel_page_size", "panel_plain_page_size",
		"object_list_page_size", "token_ttl",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.PanelPageSize != 0 {
		c.PanelPageSize = file.PanelPageSize
		c.sources["panel_page_size"] = "file"
	}
	if file.PanelPlainPageSize != 0 {
		c.PanelPlainPageSize = file.PanelPlainPageSize
		c.sources["panel_plain_page_size"] = "file"
	}
	if file.ObjectListPageSize != 0 {
		c.ObjectListPageSize = file.ObjectListPageSize
		c.sources["object_list_page_size"] = "file"
	}
	if file.TokenTTL != 0 {
		c.TokenTTL = file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("MADMIN_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("MADMIN_PANEL_PAGE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.PanelPageSize = i
			c.sources["panel_page_size"] = "environment"
		}
	}
	if val := os.Getenv("MADMIN_PANEL_PLAIN_PAGE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.PanelPlainPageSize = i
			c.sources["panel_plain_page_size"] = "environment"
		}
	}
	if val := os.Getenv("MADMIN_OBJECT_LIST_PAGE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ObjectListPageSize = i
			c.sources["object_list_page_size"] = "environment"
		}
	}
	if val := os.Getenv("MADMIN_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTL = i
			c.sources["token_ttl"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenLifetime returns the access token TTL as a duration
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *Config) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.PanelPageSize < 1 {
		return fmt.Errorf("panel_page_size must be at least 1, got %d", c.PanelPageSize)
	}
	if c.PanelPlainPageSize < 1 {
		return fmt.Errorf("panel_plain_page_size must be at least 1, got %d", c.PanelPlainPageSize)
	}
	if c.ObjectListPageSize < 1 {
		return fmt.Errorf("object_list_page_size must be at least 1, got %d", c.ObjectListPageSize)
	}
	if c.TokenTTL < 1 {
		return fmt.Errorf("token_ttl must be at least 1, got %d", c.TokenTTL)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "panel_page_size", Value: strconv.Itoa(c.PanelPageSize), Source: c.Source("panel_page_size")},
		{Name: "panel_plain_page_size", Value: strconv.Itoa(c.PanelPlainPageSize), Source: c.Source("panel_plain_page_size")},
		{Name: "object_list_page_size", Value: strconv.Itoa(c.ObjectListPageSize), Source: c.Source("object_list_page_size")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
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

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
