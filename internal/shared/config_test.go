package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Proxy.BaseURL != "http://localhost:5050" {
			t.Errorf("expected proxy base URL http://localhost:5050, got %s", config.Proxy.BaseURL)
		}

		if config.Proxy.RateLimit != 2 {
			t.Errorf("expected rate limit 2, got %d", config.Proxy.RateLimit)
		}

		if config.Database.Path != "~/.ytmb/ytmb.db" {
			t.Errorf("expected database path ~/.ytmb/ytmb.db, got %s", config.Database.Path)
		}

		if config.UI.PageSize != 100 {
			t.Errorf("expected page size 100, got %d", config.UI.PageSize)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[proxy]
base_url = "http://localhost:9090"
headers_path = "/path/to/headers.json"
rate_limit = 4

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[ui]
page_size = 50
hide_singles = false
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Proxy.BaseURL != "http://localhost:9090" {
			t.Errorf("expected proxy base URL http://localhost:9090, got %s", config.Proxy.BaseURL)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.UI.PageSize != 50 {
			t.Errorf("expected page size 50, got %d", config.UI.PageSize)
		}

		if config.UI.HideSingles {
			t.Error("expected hide_singles to be false")
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/config.toml")
		if err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
