package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/constants"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Store    Store    `yaml:"store"`
	Display  Display  `yaml:"display"`
	Analysis Analysis `yaml:"analysis"`
}

type Server struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Store struct {
	Backend  string `yaml:"backend"` // memory, dynamodb
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Table    string `yaml:"table"`
}

type Display struct {
	NoteStyle string `yaml:"note_style"` // both, sharp, flat
}

type Analysis struct {
	// chord chart replacing the default open chords
	OpenChords string `yaml:"open_chords"`
}

func Default() Config {
	return Config{
		Server: Server{
			Port:           constants.DefaultPort,
			AllowedOrigins: []string{"*"},
		},
		Store: Store{
			Backend:  constants.DefaultStoreBackend,
			Endpoint: constants.DefaultDynamoEndpoint,
			Region:   constants.DefaultDynamoRegion,
			Table:    constants.DefaultDynamoTable,
		},
		Display: Display{NoteStyle: "both"},
	}
}

// Load reads path over the defaults, then applies env overrides. A missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(constants.EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", constants.EnvPort, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv(constants.EnvStoreBackend); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv(constants.EnvDynamoEndpoint); v != "" {
		c.Store.Endpoint = v
	}
	if v := os.Getenv(constants.EnvDynamoRegion); v != "" {
		c.Store.Region = v
	}
	if v := os.Getenv(constants.EnvDynamoTable); v != "" {
		c.Store.Table = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Store.Backend {
	case "memory":
	case "dynamodb":
		if c.Store.Table == "" {
			return errors.New("store.table is required for dynamodb")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if _, err := chord.ParseNoteStyle(c.Display.NoteStyle); err != nil {
		return err
	}
	return nil
}

func (c Config) NoteStyle() chord.NoteStyle {
	style, _ := chord.ParseNoteStyle(c.Display.NoteStyle)
	return style
}
