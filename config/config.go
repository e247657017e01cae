package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when Load is called with an empty path.
const DefaultPath = "config.json"

const defaultTimeout = 10 * time.Second

type APIConfig struct {
	BaseURL        string `json:"baseUrl" yaml:"baseUrl"`
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	CitiesURL      string `json:"citiesUrl" yaml:"citiesUrl"`
	Workers        int    `json:"workers" yaml:"workers"`
}

// Timeout is TimeoutSeconds as a duration, 10s when unset or not positive.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return defaultTimeout
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type LocationConfig struct {
	CityID   int    `json:"cityId" yaml:"cityId"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

type UIConfig struct {
	Theme string `json:"theme" yaml:"theme"`
}

type Config struct {
	API      APIConfig      `json:"api" yaml:"api"`
	Location LocationConfig `json:"location" yaml:"location"`
	UI       UIConfig       `json:"ui" yaml:"ui"`

	// Extra holds top-level sections the defaults know nothing about.
	Extra map[string]interface{} `json:"-" yaml:"-"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "https://api-crm.iacad.gov.ae/api//prayertime/getprayerfromlink",
			TimeoutSeconds: 10,
			CitiesURL:      "https://www.iacad.gov.ae/en/prayer-times",
			Workers:        4,
		},
		Location: LocationConfig{
			CityID:   1,
			Timezone: "Asia/Dubai",
		},
		UI: UIConfig{
			Theme: "desert",
		},
	}
}

// Loader reads configuration files. The zero value is not usable, see NewLoader.
type Loader struct {
	Fs     afero.Fs
	Logger zerolog.Logger
}

func NewLoader(fs afero.Fs, logger zerolog.Logger) *Loader {
	return &Loader{Fs: fs, Logger: logger}
}

// Load reads the file at path from the OS filesystem.
func Load(path string) Config {
	return NewLoader(afero.NewOsFs(), zerolog.Nop()).Load(path)
}

// Load never fails: a missing, unreadable or malformed file yields Default().
func (l *Loader) Load(path string) Config {
	if path == "" {
		path = DefaultPath
	}

	exists, err := afero.Exists(l.Fs, path)
	if err != nil {
		l.Logger.Warn().Err(err).Str("path", path).Msg("cannot stat config file, using defaults")
		return Default()
	}
	if !exists {
		l.Logger.Debug().Str("path", path).Msg("config file not found, using defaults")
		return Default()
	}

	loaded, err := l.read(path)
	if err != nil {
		l.Logger.Warn().Err(err).Str("path", path).Msg("using default config")
		return Default()
	}

	cfg, err := fromSections(merge(defaultSections(), loaded))
	if err != nil {
		l.Logger.Warn().Err(err).Str("path", path).Msg("using default config")
		return Default()
	}
	return cfg
}

func (l *Loader) read(path string) (map[string]interface{}, error) {
	file, err := afero.ReadFile(l.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var loaded map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(file, &loaded)
	default:
		err = json.Unmarshal(file, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return loaded, nil
}

// merge combines loaded sections into defaults one level deep.
func merge(defaults, loaded map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(defaults)+len(loaded))
	for key, value := range defaults {
		merged[key] = value
	}

	for key, value := range loaded {
		def, known := defaults[key].(map[string]interface{})
		if !known {
			merged[key] = value
			continue
		}
		section, ok := value.(map[string]interface{})
		if !ok {
			// a scalar can't stand in for a whole section
			continue
		}
		combined := make(map[string]interface{}, len(def)+len(section))
		for k, v := range def {
			combined[k] = v
		}
		for k, v := range section {
			if v == nil {
				continue
			}
			combined[canonicalKey(def, k)] = v
		}
		merged[key] = combined
	}
	return merged
}

// canonicalKey maps k onto the spelling used in def when they differ only
// in case, so the typed decode can't pick the default over the loaded value.
func canonicalKey(def map[string]interface{}, k string) string {
	if _, ok := def[k]; ok {
		return k
	}
	for dk := range def {
		if strings.EqualFold(dk, k) {
			return dk
		}
	}
	return k
}

func defaultSections() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"api": map[string]interface{}{
			"baseUrl":        d.API.BaseURL,
			"timeoutSeconds": d.API.TimeoutSeconds,
			"citiesUrl":      d.API.CitiesURL,
			"workers":        d.API.Workers,
		},
		"location": map[string]interface{}{
			"cityId":   d.Location.CityID,
			"timezone": d.Location.Timezone,
		},
		"ui": map[string]interface{}{
			"theme": d.UI.Theme,
		},
	}
}

func fromSections(sections map[string]interface{}) (Config, error) {
	raw, err := json.Marshal(sections)
	if err != nil {
		return Config{}, fmt.Errorf("failed to encode merged config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode merged config: %w", err)
	}

	defaults := defaultSections()
	for key, value := range sections {
		if _, known := defaults[key]; known {
			continue
		}
		if cfg.Extra == nil {
			cfg.Extra = make(map[string]interface{})
		}
		cfg.Extra[key] = value
	}
	return cfg, nil
}
