// Package config loads the catalog configuration file and process settings.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vitrina-piezas/catalog/internal/models"
)

// CandidateFiles are looked up, in order, in the catalog root.
var CandidateFiles = []string{"config.json", "config.yaml", "config.yml"}

// Find returns the first candidate config file present in root, or "".
func Find(root string) string {
	for _, name := range CandidateFiles {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads a catalog config file. Problems are logged and answered with
// an empty table so that every type falls back to its defaults; a broken
// config never stops a scan.
func Load(path string) models.Config {
	if path == "" {
		slog.Warn("No config file found, using default type settings")
		return Empty()
	}

	cfg, err := Parse(path)
	if err != nil {
		slog.Warn("Unable to read config file, using default type settings", "path", path, "err", err)
		return Empty()
	}
	slog.Debug("Loaded config file", "path", path, "types", len(cfg.Types))
	return cfg
}

// Parse reads path as JSON or YAML depending on its extension, expanding
// ${VAR} references from the environment first. Only a missing file, a
// syntax error or an unknown extension fail; a "tipos" entry that does not
// decode is logged and left out so that its type falls back to defaults
// while the other entries still apply.
func Parse(path string) (models.Config, error) {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return models.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	content := []byte(os.ExpandEnv(string(rawBytes)))

	var raw map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return models.Config{}, fmt.Errorf("failed to parse yaml: %w", err)
		}
		if doc != nil {
			m, ok := stringKeys(doc).(map[string]interface{})
			if !ok {
				return models.Config{}, fmt.Errorf("failed to parse yaml: top level is not a mapping")
			}
			raw = m
		}
	case ".json":
		if err := json.Unmarshal(content, &raw); err != nil {
			return models.Config{}, fmt.Errorf("failed to parse json: %w", err)
		}
	default:
		return models.Config{}, fmt.Errorf("unsupported config format: %s (supported: .json, .yaml)", filepath.Ext(path))
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	cfg := models.Config{
		Types: decodeTypes(raw["tipos"]),
		Raw:   raw,
	}
	if v, ok := raw["whatsapp"]; ok && v != nil {
		var contact models.ContactConfig
		if err := decodeValue(v, &contact); err != nil {
			slog.Warn("Ignoring invalid whatsapp setting", "err", err)
		} else {
			cfg.WhatsApp = &contact
		}
	}
	return cfg, nil
}

func decodeTypes(v interface{}) map[string]models.TypeConfig {
	types := map[string]models.TypeConfig{}
	if v == nil {
		return types
	}
	entries, ok := v.(map[string]interface{})
	if !ok {
		slog.Warn("Ignoring tipos table that is not an object")
		return types
	}

	for code, entry := range entries {
		var tc models.TypeConfig
		if err := decodeValue(entry, &tc); err != nil {
			slog.Warn("Ignoring invalid type entry, using defaults", "type", code, "err", err)
			continue
		}
		if tc.SpecTemplates == nil {
			tc.SpecTemplates = []string{}
		}
		types[code] = tc
	}
	return types
}

// decodeValue maps a generic decoded value onto a typed struct through its
// json tags.
func decodeValue(v interface{}, out interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// stringKeys turns the map[interface{}]interface{} values yaml produces for
// non-string keys (such as an unquoted 1:) into JSON-compatible maps.
func stringKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case map[string]interface{}:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

// Empty is a config with no type entries.
func Empty() models.Config {
	return models.Config{Types: map[string]models.TypeConfig{}}
}

// Settings are the process-level knobs read from the environment (and a
// .env file loaded by the root command).
type Settings struct {
	Root       string
	ConfigPath string
	Port       string
	CacheTTL   time.Duration
	RateLimit  float64
	RateBurst  int
	S3Bucket   string
	S3Prefix   string
	AWSRegion  string
}

// FromEnv reads Settings, applying defaults for unset variables.
func FromEnv() Settings {
	return Settings{
		Root:       getString("CATALOG_ROOT", "."),
		ConfigPath: getString("CATALOG_CONFIG", ""),
		Port:       getString("PORT", "3000"),
		CacheTTL:   getDuration("CATALOG_CACHE_TTL", 0),
		RateLimit:  getFloat("CATALOG_RATE_LIMIT", 20),
		RateBurst:  getInt("CATALOG_RATE_BURST", 40),
		S3Bucket:   getString("CATALOG_S3_BUCKET", ""),
		S3Prefix:   getString("CATALOG_S3_PREFIX", ""),
		AWSRegion:  getString("AWS_REGION", "us-east-1"),
	}
}

// ResolveConfigPath returns the explicit path when given, otherwise the
// config file found in root.
func (s Settings) ResolveConfigPath() string {
	if s.ConfigPath != "" {
		return s.ConfigPath
	}
	return Find(s.Root)
}

func getString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		slog.Warn("Ignoring invalid integer setting", "key", key, "value", value)
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		slog.Warn("Ignoring invalid number setting", "key", key, "value", value)
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("Ignoring invalid duration setting", "key", key, "value", value)
	}
	return defaultValue
}
