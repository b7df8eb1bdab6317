package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	t.Setenv(key, "")
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	// 环境变量设置后，应优先返回环境变量
	t.Setenv(key, "8080")
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STORE_DRIVER", "MAX_ARTICLES", "WORKERS", "REQUEST_DELAY", "SOURCES_FILE", "CRON_SPEC"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.StoreDriver != "postgres" || cfg.MaxArticles != 15 || cfg.Workers != 1 || cfg.RequestDelay != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CronSpec != "0 */2 * * *" || cfg.ExportFormats == "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadReadsAuthAndPorts(t *testing.T) {
	t.Setenv("APP_PORT", "1234")
	t.Setenv("APP_BASIC_USER", "user")
	t.Setenv("APP_BASIC_PASS", "pass")
	t.Setenv("STORE_DRIVER", "SQLite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "1234")
	}
	if cfg.BasicAuthUser != "user" || cfg.BasicAuthPass != "pass" {
		t.Fatalf("BasicAuthUser/Pass not loaded correctly: %+v", cfg)
	}
	if cfg.StoreDriver != "sqlite" {
		t.Fatalf("StoreDriver = %q", cfg.StoreDriver)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"STORE_DRIVER", "mysql"},
		{"REQUEST_DELAY", "two seconds"},
		{"MAX_ARTICLES", "-3"},
		{"WORKERS", "many"},
		{"SOURCES_FILE", filepath.Join(t.TempDir(), "missing.yaml")},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load with %s=%q should fail", tc.key, tc.value)
			}
		})
	}
}

func TestLoadSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	doc := strings.Join([]string{
		"sources:",
		"  vov:",
		"    delay: 5s",
		"    max_articles: 5",
		"  vietstock:",
		"    enabled: false",
		"  cafef:",
		"    base_url: https://mirror.cafef.test",
		"    max_pages: 2",
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SOURCES_FILE", path)
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	vov := cfg.Sources["vov"]
	if vov.Delay != 5*time.Second || vov.MaxArticles != 5 || !vov.IsEnabled() {
		t.Fatalf("unexpected vov override: %+v", vov)
	}
	if cfg.Sources["cafef"].BaseURL != "https://mirror.cafef.test" || cfg.Sources["cafef"].MaxPages != 2 {
		t.Fatalf("unexpected cafef override: %+v", cfg.Sources["cafef"])
	}
	got := cfg.Enabled([]string{"vnexpress", "cafef", "vietstock", "vov"})
	if strings.Join(got, ",") != "vnexpress,cafef,vov" {
		t.Fatalf("Enabled = %v", got)
	}
}

func TestLoadSourcesRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  vov:\n    delay: soon\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSources(path); err == nil {
		t.Fatalf("invalid duration should fail")
	}
}
