// Package config loads glimmerd's on-disk TOML configuration, following
// the auto-create-default-then-read pattern draco's own config loader
// uses: a missing file is populated with Default's values on first run
// rather than treated as an error.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Config is glimmerd's top-level configuration file shape.
type Config struct {
	Server struct {
		ListenAddress string `toml:"listen_address"`
		MOTD          string `toml:"motd"`
		MaxPlayers    int32  `toml:"max_players"`
	} `toml:"server"`

	World struct {
		PresetPath string `toml:"preset_path"`
		StorePath  string `toml:"store_path"`
	} `toml:"world"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	c := Config{}
	c.Server.ListenAddress = "0.0.0.0:25565"
	c.Server.MOTD = "A Glimmer Server"
	c.Server.MaxPlayers = 20
	c.World.PresetPath = ""
	c.World.StorePath = ""
	return c
}

// Load reads path, writing out Default's encoding first if path does not
// exist yet.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDefault(path); err != nil {
			return Config{}, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}

func writeDefault(path string) error {
	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("config: encode default: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
