package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gview/gallery"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

const (
	defaultHelpFontSize = 24.0
	minHelpFontSize     = 12.0
	maxCacheSize        = 64
	minTextureSide      = 1024
)

// Config load statuses.
const (
	StatusDefault = "Default"
	StatusOK      = "OK"
	StatusWarning = "Warning"
	StatusError   = "Error"
)

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string
}

type Config struct {
	WindowWidth    int                 `json:"window_width"`
	WindowHeight   int                 `json:"window_height"`
	Fullscreen     bool                `json:"fullscreen"`
	HelpFontSize   float64             `json:"help_font_size"`
	SortMethod     SortMethod          `json:"sort_method"`
	CacheSize      int                 `json:"cache_size"`
	MaxTextureSize int                 `json:"max_texture_size"`
	Gallery        gallery.Options     `json:"gallery"`
	Keybindings    map[string][]string `json:"keybindings"`
	Mousebindings  map[string][]string `json:"mousebindings"`
	MouseSettings  MouseSettings       `json:"mouse_settings"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		WindowWidth:    defaultWidth,
		WindowHeight:   defaultHeight,
		HelpFontSize:   defaultHelpFontSize,
		SortMethod:     SortNatural,
		CacheSize:      defaultCacheSize,
		MaxTextureSize: defaultMaxTextureSide,
		Gallery:        gallery.DefaultOptions(),
		Keybindings:    GetDefaultKeybindings(),
		Mousebindings:  GetDefaultMousebindings(),
		MouseSettings:  GetDefaultMouseSettings(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "gview.json"
	}
	return filepath.Join(homeDir, ".gview.json")
}

// loadConfigFromPath reads and validates the config at configPath. A
// missing file yields the defaults with StatusDefault; an unreadable or
// malformed one yields the defaults with StatusError.
func loadConfigFromPath(configPath string) ConfigLoadResult {
	result := ConfigLoadResult{
		Config: defaultConfig(),
		Status: StatusOK,
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		result.Status = StatusDefault
		return result
	}
	if err != nil {
		result.HasError = true
		result.Status = StatusError
		result.Warnings = append(result.Warnings, fmt.Sprintf("Cannot read config file: %v", err))
		return result
	}

	config := defaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		result.HasError = true
		result.Status = StatusError
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	warn := func(format string, args ...any) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
		result.Status = StatusWarning
	}

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	if config.HelpFontSize <= minHelpFontSize {
		config.HelpFontSize = defaultHelpFontSize
	}

	if !config.SortMethod.Valid() {
		warn("Unknown sort_method %d, using %s", int(config.SortMethod), SortNatural)
		config.SortMethod = SortNatural
	}

	if config.CacheSize < 1 {
		config.CacheSize = defaultCacheSize
	} else if config.CacheSize > maxCacheSize {
		config.CacheSize = maxCacheSize
	}

	if config.MaxTextureSize < minTextureSide {
		config.MaxTextureSize = defaultMaxTextureSide
	}

	for _, w := range config.Gallery.Normalize() {
		warn("Gallery: %s", w)
	}

	if config.MouseSettings.WheelSensitivity <= 0 {
		config.MouseSettings.WheelSensitivity = 1.0
	}
	if config.MouseSettings.DragThreshold < 0 {
		config.MouseSettings.DragThreshold = GetDefaultMouseSettings().DragThreshold
	}

	config.Keybindings = fillDefaults(config.Keybindings, GetDefaultKeybindings())
	if err := validateKeybindings(config.Keybindings); err != nil {
		warn("Keybinding errors: %v", err)
		config.Keybindings = GetDefaultKeybindings()
	}

	config.Mousebindings = fillDefaults(config.Mousebindings, GetDefaultMousebindings())
	if err := validateMousebindings(config.Mousebindings); err != nil {
		warn("Mousebinding errors: %v", err)
		config.Mousebindings = GetDefaultMousebindings()
	}

	result.Config = config
	return result
}

// fillDefaults adds the default entry of every action missing from bindings.
func fillDefaults(bindings, defaults map[string][]string) map[string][]string {
	if bindings == nil {
		return defaults
	}
	for action, list := range defaults {
		if _, ok := bindings[action]; !ok {
			bindings[action] = list
		}
	}
	return bindings
}

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	seen := make(map[KeyCombination]string)
	for action, keys := range keybindings {
		for _, keyStr := range keys {
			combo, err := parseKeyString(keyStr)
			if err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}
			if existing, ok := seen[combo]; ok && existing != action {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existing, action)
			}
			seen[combo] = action
		}
	}
	return nil
}

// validateMousebindings validates the mouse bindings configuration
func validateMousebindings(mousebindings map[string][]string) error {
	seen := make(map[MouseCombination]string)
	for action, list := range mousebindings {
		for _, s := range list {
			combo, err := parseMouseString(s)
			if err != nil {
				return fmt.Errorf("invalid mouse binding '%s' for action '%s': %w", s, action, err)
			}
			if existing, ok := seen[combo]; ok && existing != action {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", s, existing, action)
			}
			seen[combo] = action
		}
	}
	return nil
}

// logConfigResult reports load problems through logger.
func logConfigResult(logger *slog.Logger, path string, result ConfigLoadResult) {
	switch result.Status {
	case StatusError:
		logger.Warn("invalid config file, using defaults", "path", path, "errors", result.Warnings)
	case StatusWarning:
		for _, w := range result.Warnings {
			logger.Warn("config corrected", "path", path, "detail", w)
		}
	default:
		logger.Debug("config loaded", "path", path, "status", result.Status)
	}
}

// saveConfigToPath writes config as indented JSON. A window smaller than the
// minimum is not saved.
func saveConfigToPath(config Config, configPath string) error {
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		return fmt.Errorf("invalid window size %dx%d", config.WindowWidth, config.WindowHeight)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("save config to %s: %w", configPath, err)
	}
	return nil
}
