package scheduler

import (
	"log/slog"

	"github.com/LJTian/VnNewsHub/internal/collector"
	"github.com/LJTian/VnNewsHub/internal/config"
	"github.com/LJTian/VnNewsHub/internal/export"
	"github.com/LJTian/VnNewsHub/internal/fetch"
)

// NewRunner 按配置组装 Runner；store、exp 可为 nil
func NewRunner(cfg *config.Config, store Store, exp Exporter, l *slog.Logger) (*Runner, error) {
	formats, err := export.ParseFormats(cfg.ExportFormats)
	if err != nil {
		return nil, err
	}

	opts := collector.Options{Delay: cfg.RequestDelay, Logger: l}
	if cfg.BrowserScraperURL != "" {
		opts.Renderer = fetch.NewRenderClient(cfg.BrowserScraperURL)
	}

	overrides := make(map[string]Override, len(cfg.Sources))
	for name, s := range cfg.Sources {
		overrides[name] = Override{
			Delay:       s.Delay,
			MaxArticles: s.MaxArticles,
			MaxPages:    s.MaxPages,
			BaseURL:     s.BaseURL,
		}
	}

	return &Runner{
		Store:       store,
		Exporter:    exp,
		Formats:     formats,
		Sources:     cfg.Enabled(collector.Names()),
		MaxArticles: cfg.MaxArticles,
		Workers:     cfg.Workers,
		Options:     opts,
		Overrides:   overrides,
		Logger:      l,
	}, nil
}
