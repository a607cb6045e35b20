package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/joho/godotenv"
)

// Environment variables that override the file.
const (
	EnvDB      = "WORDPLAN_DB"
	EnvMaxDays = "WORDPLAN_MAX_DAYS"
	EnvLog     = "WORDPLAN_LOG"
	EnvConfig  = "WORDPLAN_CONFIG"
)

type Config struct {
	General    GeneralConfig    `toml:"general"`
	Allocation AllocationConfig `toml:"allocation"`
	Display    DisplayConfig    `toml:"display"`
	Logging    LoggingConfig    `toml:"logging"`
}

type GeneralConfig struct {
	DBPath string `toml:"db_path,omitempty"`
	// Owner tags new plans and scopes global stats.
	Owner string `toml:"owner"`
}

type AllocationConfig struct {
	MaxDays            int    `toml:"max_days"`
	DefaultStrategy    string `toml:"default_strategy"`
	DefaultIntensity   string `toml:"default_intensity"`
	DefaultWeekendRule string `toml:"default_weekend_rule"`
}

type DisplayConfig struct {
	// WeekBegins is "monday" or "sunday".
	WeekBegins string `toml:"week_begins"`
	Color      bool   `toml:"color"`
}

type LoggingConfig struct {
	UseCases bool `toml:"use_cases"`
}

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{Owner: "default"},
		Allocation: AllocationConfig{
			MaxDays:            allocator.DefaultMaxDays,
			DefaultStrategy:    string(domain.StrategySteady),
			DefaultIntensity:   string(domain.IntensityAverage),
			DefaultWeekendRule: string(domain.WeekendNone),
		},
		Display: DisplayConfig{WeekBegins: "monday", Color: true},
	}
}

// Dir returns the XDG config directory for wordplan.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wordplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wordplan")
}

// Path returns the config file path, honoring WORDPLAN_CONFIG.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDBPath is used when neither the file nor the environment names one.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".wordplan", "wordplan.db")
	}
	return filepath.Join(home, ".wordplan", "wordplan.db")
}

// Load reads .env, then the config file, then environment overrides.
func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return DefaultConfig(), err
	}
	cfg, err := LoadFile(Path())
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// LoadFile decodes path over the defaults. A missing file yields defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("parsing config: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

// ApplyEnv overlays WORDPLAN_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv(EnvMaxDays); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer (got %q)", EnvMaxDays, v)
		}
		cfg.Allocation.MaxDays = n
	}
	if v := os.Getenv(EnvLog); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q)", EnvLog, v)
		}
		cfg.Logging.UseCases = b
	}
	return nil
}

// Validate rejects values the allocator or the calendar view cannot use.
func (c Config) Validate() error {
	if c.Allocation.MaxDays <= 0 {
		return fmt.Errorf("allocation.max_days must be positive (got %d)", c.Allocation.MaxDays)
	}
	if s := domain.ParseStrategy(c.Allocation.DefaultStrategy); !s.Valid() {
		return fmt.Errorf("allocation.default_strategy: unknown strategy %q", c.Allocation.DefaultStrategy)
	}
	if i := domain.ParseIntensity(c.Allocation.DefaultIntensity); !i.Valid() {
		return fmt.Errorf("allocation.default_intensity: unknown intensity %q", c.Allocation.DefaultIntensity)
	}
	if w := domain.ParseWeekendRule(c.Allocation.DefaultWeekendRule); !w.Valid() {
		return fmt.Errorf("allocation.default_weekend_rule: unknown rule %q", c.Allocation.DefaultWeekendRule)
	}
	switch c.Display.WeekBegins {
	case "", "monday", "sunday":
	default:
		return fmt.Errorf("display.week_begins must be monday or sunday (got %q)", c.Display.WeekBegins)
	}
	return nil
}

// ResolvedDBPath returns the configured store path or the default.
func (c Config) ResolvedDBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return DefaultDBPath()
}

// DisplaySettings returns the defaults new plans inherit.
func (c Config) DisplaySettings() domain.DisplaySettings {
	week := c.Display.WeekBegins
	if week == "" {
		week = "monday"
	}
	return domain.DisplaySettings{"weekBegins": week, "viewAs": "calendar"}
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return Write(f, cfg)
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
