package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the server configuration read from config.toml
type Settings struct {
	Server   ServerSettings  `toml:"server"`
	Sessions SessionSettings `toml:"sessions"`
	Game     GameSettings    `toml:"game"`
	Log      LogSettings     `toml:"log"`
	Ngrok    NgrokSettings   `toml:"ngrok"`
}

type ServerSettings struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// SessionSettings controls when idle sessions are expired
type SessionSettings struct {
	TTL             Duration `toml:"ttl"`
	CleanupInterval Duration `toml:"cleanup_interval"`
}

type GameSettings struct {
	// Seed for new sessions; 0 picks one from the clock per session
	Seed int64 `toml:"seed"`
}

type LogSettings struct {
	Debug bool `toml:"debug"`
}

type NgrokSettings struct {
	Enabled bool   `toml:"enabled"`
	Domain  string `toml:"domain"`
}

// Duration is a time.Duration written as "30m" or "1h30m" in TOML
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the settings used when no file exists
func Default() *Settings {
	return &Settings{
		Server: ServerSettings{
			Host: "localhost",
			Port: 8080,
		},
		Sessions: SessionSettings{
			TTL:             Duration{30 * time.Minute},
			CleanupInterval: Duration{time.Minute},
		},
	}
}

// Addr returns host:port for the HTTP listener
func (s *Settings) Addr() string {
	return net.JoinHostPort(s.Server.Host, strconv.Itoa(s.Server.Port))
}

// Validate checks value ranges
func (s *Settings) Validate() error {
	var problems []string
	if s.Server.Port < 1 || s.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port must be between 1 and 65535, got %d", s.Server.Port))
	}
	if s.Game.Seed < 0 {
		problems = append(problems, fmt.Sprintf("game.seed must not be negative, got %d", s.Game.Seed))
	}
	if s.Sessions.TTL.Duration <= 0 {
		problems = append(problems, "sessions.ttl must be positive")
	}
	if s.Sessions.CleanupInterval.Duration <= 0 {
		problems = append(problems, "sessions.cleanup_interval must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// DefaultPath returns the path to the config file
func DefaultPath() string {
	return filepath.Join(GetXDGConfigHome(), "klondike", "config.toml")
}

// Load reads settings from path, or from DefaultPath when path is empty.
// Keys missing from the file keep their defaults; a missing file yields the
// defaults. Unknown keys are an error.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath()
	}

	settings := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	md, err := toml.DecodeFile(path, settings)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidSettings, path, strings.Join(keys, ", "))
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to path, creating parent directories
func Save(path string, settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(settings); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// ListFiles returns the .toml files of dir, sorted by name
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
