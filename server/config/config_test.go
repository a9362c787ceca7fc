package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Server.ListenAddress != Default().Server.ListenAddress {
		t.Fatalf("ListenAddress = %q, want default", c.Server.ListenAddress)
	}

	c2, err := Load(path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if c2 != c {
		t.Fatalf("second load = %+v, want %+v", c2, c)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[server]\nlisten_address = \"127.0.0.1:25566\"\nmax_players = 5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Server.ListenAddress != "127.0.0.1:25566" {
		t.Fatalf("ListenAddress = %q", c.Server.ListenAddress)
	}
	if c.Server.MaxPlayers != 5 {
		t.Fatalf("MaxPlayers = %d, want 5", c.Server.MaxPlayers)
	}
}
