/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	applog "imagemarker/internal/log"
	"imagemarker/internal/snap"
	"imagemarker/internal/vector"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type EditorConfig struct {
	Theme string `yaml:"theme" json:"theme"` // "system" | "light" | "dark"
}

// SnapConfig controls the alignment-guide behaviour while dragging.
type SnapConfig struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Threshold float64 `yaml:"threshold" json:"threshold"` // pixels; an edge snaps when within this distance
}

// GuidesConfig is the look of the guide lines.
type GuidesConfig struct {
	Color       string    `yaml:"color" json:"color"`
	StrokeWidth float64   `yaml:"stroke_width" json:"stroke_width"`
	Dash        []float64 `yaml:"dash" json:"dash"`
	Extent      float64   `yaml:"extent" json:"extent"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Source bool   `yaml:"source" json:"source"`
	File   string `yaml:"file" json:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" json:"config_version"`
	Editor        EditorConfig  `yaml:"editor" json:"editor"`
	Snap          SnapConfig    `yaml:"snap" json:"snap"`
	Guides        GuidesConfig  `yaml:"guides" json:"guides"`
	Logging       LoggingConfig `yaml:"logging" json:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Editor:        EditorConfig{Theme: "system"},
		Snap:          SnapConfig{Enabled: true, Threshold: float64(vector.GuideThreshold)},
		Guides:        GuidesConfig{Color: "rgb(0, 161, 255)", StrokeWidth: 1, Dash: []float64{4, 6}, Extent: snap.DefaultExtent},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath    = "IMK_CONFIG"
	EnvTheme         = "IMK_THEME"
	EnvSnapEnabled   = "IMK_SNAP_ENABLED"
	EnvSnapThreshold = "IMK_SNAP_THRESHOLD"
	EnvGuideColor    = "IMK_GUIDE_COLOR"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "IMK_LOG_LEVEL"
	EnvLogFormat = "IMK_LOG_FORMAT"
	EnvLogSource = "IMK_LOG_SOURCE"
	EnvLogFile   = "IMK_LOG_FILE"
)

// ConfigPath returns the per-user config file path. IMK_CONFIG replaces it.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "ImageMarker")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "ImageMarker")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "imagemarker")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "imagemarker")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit file. A missing file yields the defaults;
// a malformed one is an error.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// start from defaults so keys absent from the file keep their default
		fileCfg := Defaults()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg to path, creating parent directories.
func SaveTo(path string, cfg AppConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.ToLower(strings.TrimSpace(src.Editor.Theme)); v != "" {
		dst.Editor.Theme = v
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Snap.Enabled = src.Snap.Enabled
	if src.Snap.Threshold != 0 {
		dst.Snap.Threshold = src.Snap.Threshold
	}
	if v := strings.TrimSpace(src.Guides.Color); v != "" {
		dst.Guides.Color = v
	}
	if src.Guides.StrokeWidth != 0 {
		dst.Guides.StrokeWidth = src.Guides.StrokeWidth
	}
	if src.Guides.Dash != nil {
		dst.Guides.Dash = append([]float64(nil), src.Guides.Dash...)
	}
	if src.Guides.Extent != 0 {
		dst.Guides.Extent = src.Guides.Extent
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.Editor.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSnapEnabled)); v != "" {
		cfg.Snap.Enabled = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSnapThreshold)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Snap.Threshold = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvGuideColor)); v != "" {
		cfg.Guides.Color = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envKeys = map[string]string{
	"editor.theme":   EnvTheme,
	"snap.enabled":   EnvSnapEnabled,
	"snap.threshold": EnvSnapThreshold,
	"guides.color":   EnvGuideColor,
	"logging.level":  EnvLogLevel,
	"logging.format": EnvLogFormat,
	"logging.source": EnvLogSource,
	"logging.file":   EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// LogOptions maps the logging section to logger options.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}

// SnapOptions maps the snap and guides sections to drag coordinator options.
func (c AppConfig) SnapOptions() (snap.Options, error) {
	col, err := vector.ParseColor(c.Guides.Color)
	if err != nil {
		return snap.Options{}, fmt.Errorf("guides.color: %w", err)
	}
	dash := make([]float32, len(c.Guides.Dash))
	for i, d := range c.Guides.Dash {
		dash[i] = float32(d)
	}
	return snap.Options{
		Enabled:   c.Snap.Enabled,
		Threshold: float32(c.Snap.Threshold),
		Style: snap.Style{
			Color:  col,
			Width:  float32(c.Guides.StrokeWidth),
			Dash:   dash,
			Extent: float32(c.Guides.Extent),
		},
	}, nil
}
