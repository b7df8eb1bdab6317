package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppPort string

	// 全局访问密码，未配置时不启用 Basic Auth
	BasicAuthUser string
	BasicAuthPass string

	StoreDriver string
	PostgresDSN string
	SQLitePath  string
	RedisAddr   string

	CronSpec string

	ExportDir     string
	ExportFormats string

	MaxArticles int
	Workers     int
	// RequestDelay 为 0 时使用各站点自己的间隔
	RequestDelay time.Duration

	LogLevel string

	// VietStock 列表页依赖的渲染服务
	BrowserScraperURL string

	SourcesFile string
	Sources     map[string]SourceConfig
}

// SourceConfig 是 SOURCES_FILE 中单个来源的覆盖项
type SourceConfig struct {
	Enabled     *bool         `yaml:"enabled"`
	Delay       time.Duration `yaml:"delay"`
	MaxArticles int           `yaml:"max_articles"`
	MaxPages    int           `yaml:"max_pages"`
	BaseURL     string        `yaml:"base_url"`
}

// IsEnabled 未配置 enabled 时默认启用
func (s SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

var validDrivers = map[string]bool{"postgres": true, "sqlite": true, "memory": true}

func Load() (*Config, error) {
	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "9000"),
		BasicAuthUser:     getEnv("APP_BASIC_USER", ""),
		BasicAuthPass:     getEnv("APP_BASIC_PASS", ""),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
		PostgresDSN:       getEnv("POSTGRES_DSN", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "data/news.db"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		CronSpec:          getEnv("CRON_SPEC", "0 */2 * * *"),
		ExportDir:         getEnv("EXPORT_DIR", "exports"),
		ExportFormats:     getEnv("EXPORT_FORMATS", "csv,json"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		BrowserScraperURL: getEnv("BROWSER_SCRAPER_URL", "http://localhost:4000"),
		SourcesFile:       getEnv("SOURCES_FILE", ""),
	}

	if !validDrivers[cfg.StoreDriver] {
		return nil, fmt.Errorf("config: STORE_DRIVER %q: want postgres, sqlite or memory", cfg.StoreDriver)
	}

	var err error
	if cfg.MaxArticles, err = getEnvInt("MAX_ARTICLES", 15); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("WORKERS", 1); err != nil {
		return nil, err
	}
	if cfg.RequestDelay, err = getEnvDuration("REQUEST_DELAY", 0); err != nil {
		return nil, err
	}

	if cfg.SourcesFile != "" {
		if cfg.Sources, err = LoadSources(cfg.SourcesFile); err != nil {
			return nil, err
		}
	}

	log.Printf("config loaded: port=%s driver=%s cron=%s max=%d workers=%d delay=%s",
		cfg.AppPort, cfg.StoreDriver, cfg.CronSpec, cfg.MaxArticles, cfg.Workers, cfg.RequestDelay)
	return cfg, nil
}

// LoadSources 读取按来源名组织的 YAML 覆盖配置
func LoadSources(path string) (map[string]SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read sources file: %w", err)
	}
	var doc struct {
		Sources map[string]SourceConfig `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse sources file %s: %w", path, err)
	}
	for name, s := range doc.Sources {
		if s.Delay < 0 || s.MaxArticles < 0 || s.MaxPages < 0 {
			return nil, fmt.Errorf("config: source %s: negative value", name)
		}
	}
	return doc.Sources, nil
}

// Enabled 按给定顺序过滤出启用的来源
func (c *Config) Enabled(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if s, ok := c.Sources[n]; ok && !s.IsEnabled() {
			continue
		}
		out = append(out, n)
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("config: %s=%q: want a non-negative integer", key, v)
	}
	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("config: %s=%q: want a duration such as 2s", key, v)
	}
	return d, nil
}
