package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration
type Config struct {
	UI struct {
		Color    string `mapstructure:"color"`
		Width    int    `mapstructure:"width"`
		Border   bool   `mapstructure:"border"`
		FitWidth bool   `mapstructure:"fit_width"`
	} `mapstructure:"ui"`
	Marquee struct {
		Speed        float64 `mapstructure:"speed"`
		StartDelayMs int     `mapstructure:"start_delay_ms"`
		EndDelayMs   int     `mapstructure:"end_delay_ms"`
		Epsilon      float64 `mapstructure:"epsilon"`
	} `mapstructure:"marquee"`
	Source struct {
		Player string `mapstructure:"player"`
	} `mapstructure:"source"`
	Timing struct {
		UIRefreshMs        int `mapstructure:"ui_refresh_ms"`
		PollMs             int `mapstructure:"poll_ms"`
		PollInitialDelayMs int `mapstructure:"poll_initial_delay_ms"`
		FetchTimeoutMs     int `mapstructure:"fetch_timeout_ms"`
	} `mapstructure:"timing"`
	Log struct {
		File  string `mapstructure:"file"`
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var configDefaults = map[string]any{
	"ui.color":                     "2",
	"ui.width":                     32,
	"ui.border":                    true,
	"ui.fit_width":                 false,
	"marquee.speed":                8.0,
	"marquee.start_delay_ms":       1000,
	"marquee.end_delay_ms":         1000,
	"marquee.epsilon":              1.0,
	"source.player":                "spotify",
	"timing.ui_refresh_ms":         100,
	"timing.poll_ms":               2000,
	"timing.poll_initial_delay_ms": 500,
	"timing.fetch_timeout_ms":      1500,
	"log.file":                     "",
	"log.level":                    "info",
}

func setDefaults(v *viper.Viper) {
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
}

// defaultConfig returns the configuration used when nothing is set
func defaultConfig() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return cfg
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// SafeConfig wraps Config with thread-safe access
type SafeConfig struct {
	mu      sync.RWMutex
	cfg     Config
	v       *viper.Viper
	changed chan struct{}
}

func newSafeConfig(cfg Config) *SafeConfig {
	return &SafeConfig{cfg: cfg, changed: make(chan struct{}, 1)}
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SafeConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.cfg
}

// Set updates the config (thread-safe write)
func (sc *SafeConfig) Set(cfg Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cfg = cfg
}

// notify wakes up watchCmd without blocking if a reload is already queued
func (sc *SafeConfig) notify() {
	select {
	case sc.changed <- struct{}{}:
	default:
	}
}

// Config file changed notification
type configReloadMsg struct{}

// watchCmd waits for the next config change
func (sc *SafeConfig) watchCmd() tea.Cmd {
	return func() tea.Msg {
		<-sc.changed
		return configReloadMsg{}
	}
}

// Watch reloads the config file whenever it changes on disk
func (sc *SafeConfig) Watch(logger *zap.Logger) {
	if sc.v == nil || sc.v.ConfigFileUsed() == "" {
		return
	}
	sc.v.OnConfigChange(func(e fsnotify.Event) {
		var cfg Config
		if err := sc.v.Unmarshal(&cfg); err != nil {
			logger.Warn("Ignoring unreadable config change",
				zap.String("file", e.Name),
				zap.Error(err))
			return
		}
		errs := validateConfig(&cfg)
		for _, err := range errs {
			logger.Warn("Invalid config value, using default", zap.Error(err))
		}
		applyDefaultsForInvalidFields(&cfg, errs)
		sc.Set(cfg)
		logger.Info("Config reloaded", zap.String("file", e.Name))
		sc.notify()
	})
	sc.v.WatchConfig()
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("nowmarquee", pflag.ExitOnError)
	flags.StringP("color", "c", "", "Set the desired color (ANSI code or hex)")
	flags.IntP("width", "w", 0, "Width of the scrolling strip in cells")
	flags.String("player", "", "Player to follow (spotify, music or an MPRIS name)")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("config", "", "Path to a config file")
	return flags
}

var flagKeys = map[string]string{
	"ui.color":      "color",
	"ui.width":      "width",
	"source.player": "player",
	"log.file":      "log-file",
}

// bindFlags lets explicitly set flags override file and env values
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// configDir follows the XDG standard, falling back to ~/.config
func configDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "nowmarquee")
}

// loadConfig reads defaults, the config file and NOWMARQUEE_* variables.
// Problems with individual values come back as warnings; the returned
// config is always usable.
func loadConfig(v *viper.Viper, fs afero.Fs, path string) (Config, []error) {
	var warnings []error

	setDefaults(v)
	v.SetFs(fs)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("NOWMARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			warnings = append(warnings, configError{field: "config", message: err.Error()})
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		warnings = append(warnings, configError{field: "config", message: err.Error()})
		cfg = defaultConfig()
	}

	errs := validateConfig(&cfg)
	applyDefaultsForInvalidFields(&cfg, errs)
	return cfg, append(warnings, errs...)
}

// newConfig builds the process-wide config from flags, file and environment
func newConfig(flags *pflag.FlagSet) (*SafeConfig, error) {
	v := viper.New()
	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}
	path, _ := flags.GetString("config")

	cfg, warnings := loadConfig(v, afero.NewOsFs(), path)
	printConfigWarnings(os.Stderr, warnings)

	sc := newSafeConfig(cfg)
	sc.v = v
	return sc, nil
}

func watchConfig(sc *SafeConfig, logger *zap.Logger) {
	sc.Watch(logger)
}

// configError describes one invalid config value
type configError struct {
	field   string
	message string
}

func (e configError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.message)
}

var playerName = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// isValidColor accepts ANSI codes 0-255 and #RGB / #RRGGBB hex colors
func isValidColor(color string) bool {
	if color == "" {
		return false
	}
	if color[0] == '#' {
		if len(color) != 4 && len(color) != 7 {
			return false
		}
		_, err := colorful.Hex(color)
		return err == nil
	}
	if len(color) > 3 {
		return false
	}
	n, err := strconv.Atoi(color)
	if err != nil || strings.TrimSpace(color) != color {
		return false
	}
	return n >= 0 && n <= 255
}

func checkRange(errs []error, field string, value, min, max int) []error {
	if value < min || value > max {
		return append(errs, configError{
			field:   field,
			message: fmt.Sprintf("must be between %d and %d (got %d)", min, max, value),
		})
	}
	return errs
}

// validateConfig returns one error per invalid field
func validateConfig(cfg *Config) []error {
	var errs []error

	if !isValidColor(cfg.UI.Color) {
		errs = append(errs, configError{field: "ui.color", message: fmt.Sprintf("invalid color format '%s'", cfg.UI.Color)})
	}
	errs = checkRange(errs, "ui.width", cfg.UI.Width, 8, 400)

	if cfg.Marquee.Speed <= 0 || cfg.Marquee.Speed > 1000 {
		errs = append(errs, configError{field: "marquee.speed", message: fmt.Sprintf("must be in (0, 1000] (got %g)", cfg.Marquee.Speed)})
	}
	errs = checkRange(errs, "marquee.start_delay_ms", cfg.Marquee.StartDelayMs, 0, 60000)
	errs = checkRange(errs, "marquee.end_delay_ms", cfg.Marquee.EndDelayMs, 0, 60000)
	if cfg.Marquee.Epsilon < 0 || cfg.Marquee.Epsilon > 10 {
		errs = append(errs, configError{field: "marquee.epsilon", message: fmt.Sprintf("must be between 0 and 10 (got %g)", cfg.Marquee.Epsilon)})
	}

	if !playerName.MatchString(cfg.Source.Player) {
		errs = append(errs, configError{field: "source.player", message: fmt.Sprintf("invalid player name '%s'", cfg.Source.Player)})
	}

	errs = checkRange(errs, "timing.ui_refresh_ms", cfg.Timing.UIRefreshMs, 10, 1000)
	errs = checkRange(errs, "timing.poll_ms", cfg.Timing.PollMs, 250, 60000)
	errs = checkRange(errs, "timing.poll_initial_delay_ms", cfg.Timing.PollInitialDelayMs, 0, 60000)
	errs = checkRange(errs, "timing.fetch_timeout_ms", cfg.Timing.FetchTimeoutMs, 100, 30000)

	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, configError{field: "log.level", message: fmt.Sprintf("unknown level '%s'", cfg.Log.Level)})
	}

	return errs
}

// applyDefaultsForInvalidFields resets every field named in errs
func applyDefaultsForInvalidFields(cfg *Config, errs []error) {
	def := defaultConfig()
	for _, err := range errs {
		var ce configError
		if !errors.As(err, &ce) {
			continue
		}
		switch ce.field {
		case "ui.color":
			cfg.UI.Color = def.UI.Color
		case "ui.width":
			cfg.UI.Width = def.UI.Width
		case "marquee.speed":
			cfg.Marquee.Speed = def.Marquee.Speed
		case "marquee.start_delay_ms":
			cfg.Marquee.StartDelayMs = def.Marquee.StartDelayMs
		case "marquee.end_delay_ms":
			cfg.Marquee.EndDelayMs = def.Marquee.EndDelayMs
		case "marquee.epsilon":
			cfg.Marquee.Epsilon = def.Marquee.Epsilon
		case "source.player":
			cfg.Source.Player = def.Source.Player
		case "timing.ui_refresh_ms":
			cfg.Timing.UIRefreshMs = def.Timing.UIRefreshMs
		case "timing.poll_ms":
			cfg.Timing.PollMs = def.Timing.PollMs
		case "timing.poll_initial_delay_ms":
			cfg.Timing.PollInitialDelayMs = def.Timing.PollInitialDelayMs
		case "timing.fetch_timeout_ms":
			cfg.Timing.FetchTimeoutMs = def.Timing.FetchTimeoutMs
		case "log.level":
			cfg.Log.Level = def.Log.Level
		}
	}
}

// printConfigWarnings writes one line per problem
func printConfigWarnings(w io.Writer, errs []error) {
	for _, err := range errs {
		fmt.Fprintf(w, "Warning: %v\n", err)
	}
}
