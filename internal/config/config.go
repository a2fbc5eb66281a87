package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	dirName  = ".shutdown-timer"
	fileName = "config.yaml"

	EnvDryRun         = "SHUTDOWN_TIMER_DRY_RUN"
	EnvDatabase       = "SHUTDOWN_TIMER_DB"
	EnvWarningSeconds = "SHUTDOWN_TIMER_WARNING_SECONDS"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Timer    TimerConfig    `yaml:"timer"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Database DatabaseConfig `yaml:"database"`
	Sound    SoundConfig    `yaml:"sound"`
	Theme    ThemeConfig    `yaml:"theme"`
}

type AppConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	LogFile      string `yaml:"log_file"`
}

type TimerConfig struct {
	// Presets are the quick-pick buttons, in minutes. The first half goes
	// in the left column.
	Presets        []int `yaml:"presets"`
	WarningSeconds int   `yaml:"warning_seconds"`
}

type GatewayConfig struct {
	DryRun bool `yaml:"dry_run"`
	// Optional argv templates; {seconds} and {minutes} are substituted.
	ScheduleCommand []string `yaml:"schedule_command,omitempty"`
	CancelCommand   []string `yaml:"cancel_command,omitempty"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SoundConfig struct {
	Enabled bool `yaml:"enabled"`

	// WarningFile is a wav to play instead of the built-in chime.
	WarningFile string  `yaml:"warning_file,omitempty"`
	Volume      float64 `yaml:"volume"`
}

type ThemeConfig struct {
	DarkMode bool `yaml:"dark_mode"`
}

func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "Shutdown Timer",
			Version:      "1.0.0",
			WindowWidth:  350,
			WindowHeight: 500,
		},
		Timer: TimerConfig{
			Presets:        []int{5, 15, 45, 10, 30, 60},
			WarningSeconds: 60,
		},
		Database: DatabaseConfig{
			Path: "history.db",
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0,
		},
		Theme: ThemeConfig{
			DarkMode: true,
		},
	}
}

// Validate rejects values the window and scheduler cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Timer.Presets) == 0 {
		errs = append(errs, errors.New("timer.presets: at least one preset is required"))
	}
	for _, m := range c.Timer.Presets {
		if m <= 0 {
			errs = append(errs, fmt.Errorf("timer.presets: %d is not a positive number of minutes", m))
		}
	}
	if c.Timer.WarningSeconds < 0 {
		errs = append(errs, fmt.Errorf("timer.warning_seconds: %d is negative", c.Timer.WarningSeconds))
	}
	if c.App.WindowWidth <= 0 || c.App.WindowHeight <= 0 {
		errs = append(errs, errors.New("app: window size must be positive"))
	}
	return errors.Join(errs...)
}

type Manager struct {
	config     *Config
	configPath string
	// Warnings collects problems that fell back to defaults.
	Warnings []string
}

// NewManager loads ~/.shutdown-timer/config.yaml, writing defaults when it is
// missing or unreadable.
func NewManager() (*Manager, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(filepath.Join(configDir, fileName))
}

// NewManagerAt is NewManager with an explicit file.
func NewManagerAt(configPath string) (*Manager, error) {
	manager := &Manager{
		configPath: configPath,
	}

	if err := manager.loadConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			manager.warn("config: %v, using defaults", err)
		}
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	}

	// .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		manager.warn("config: .env: %v", err)
	}
	manager.applyEnv()
	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse %s: %w", m.configPath, err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid %s: %w", m.configPath, err)
	}

	m.config = config
	return nil
}

func (m *Manager) applyEnv() {
	if v, ok := os.LookupEnv(EnvDryRun); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			m.warn("config: %s=%q is not a boolean, ignored", EnvDryRun, v)
		} else {
			m.config.Gateway.DryRun = b
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatabase)); v != "" {
		m.config.Database.Path = v
	}
	if v, ok := os.LookupEnv(EnvWarningSeconds); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			m.warn("config: %s=%q is not a non-negative integer, ignored", EnvWarningSeconds, v)
		} else {
			m.config.Timer.WarningSeconds = n
		}
	}
}

func (m *Manager) warn(format string, args ...interface{}) {
	m.Warnings = append(m.Warnings, fmt.Sprintf(format, args...))
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// ResolvePath anchors a relative path (database, log file, sound) in the
// config directory.
func (m *Manager) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(m.configPath), p)
}

func (m *Manager) UpdateTimerConfig(config TimerConfig) error {
	next := *m.config
	next.Timer = config
	if err := next.Validate(); err != nil {
		return err
	}
	m.config = &next
	return m.SaveConfig()
}

func (m *Manager) UpdateThemeConfig(config ThemeConfig) error {
	m.config.Theme = config
	return m.SaveConfig()
}

func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, dirName), nil
}
