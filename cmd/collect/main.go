package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/LJTian/VnNewsHub/internal/collector"
	"github.com/LJTian/VnNewsHub/internal/config"
	"github.com/LJTian/VnNewsHub/internal/export"
	"github.com/LJTian/VnNewsHub/internal/logger"
	"github.com/LJTian/VnNewsHub/internal/scheduler"
	"github.com/LJTian/VnNewsHub/internal/storage"
	"github.com/jessevdk/go-flags"
)

// 命令行参数覆盖环境变量配置
type options struct {
	Source string `long:"source" short:"s" description:"Collect a single source by name"`
	All    bool   `long:"all" description:"Collect every enabled source"`
	NoDB   bool   `long:"no-db" description:"Skip the database, only export files"`
	Test   bool   `long:"test" description:"Quick check: cafef, 3 articles, 1s delay"`
	List   bool   `long:"list" description:"Print registered sources and exit"`
	Export string `long:"export" description:"Export formats, e.g. csv,json (empty disables export)" default-mask:"EXPORT_FORMATS"`
	Max    int    `long:"max" description:"Max articles per source (default MAX_ARTICLES)"`
}

// 一个仅执行一次采集任务的命令行入口：适合手动触发采集
func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	args := os.Args[1:]
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if opts.List {
		for _, n := range collector.Names() {
			fmt.Println(n)
		}
		return
	}
	if opts.Source == "" && !opts.All && !opts.Test {
		log.Fatalf("one of --source, --all or --test is required (see --help)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if hasFlag(args, "--export") {
		cfg.ExportFormats = opts.Export
	}
	if opts.Max > 0 {
		cfg.MaxArticles = opts.Max
	}
	l := logger.New(cfg.LogLevel)

	driver := cfg.StoreDriver
	if opts.NoDB {
		driver = storage.DriverMemory
	}
	store, err := storage.Open(storage.OpenOptions{
		Driver:      driver,
		PostgresDSN: cfg.PostgresDSN,
		SQLitePath:  cfg.SQLitePath,
		RedisAddr:   cfg.RedisAddr,
	})
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}
	defer store.Close()

	var exp scheduler.Exporter
	if cfg.ExportFormats != "" {
		exp = export.New(cfg.ExportDir)
	}
	runner, err := scheduler.NewRunner(cfg, store, exp, l)
	if err != nil {
		log.Fatalf("init runner failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	switch {
	case opts.Test:
		// 与原有的快速自检保持一致：单一来源、少量文章、较短间隔
		runner.MaxArticles = 3
		runner.Overrides["cafef"] = scheduler.Override{Delay: time.Second, MaxArticles: 3}
		runOne(ctx, runner, "cafef")
	case opts.Source != "":
		runOne(ctx, runner, strings.ToLower(opts.Source))
	default:
		all, report := runner.RunAll(ctx)
		log.Printf("collect done: sources=%d articles=%d saved=%d cost=%s",
			len(report.Sources), len(all), report.Total.Saved, time.Since(start).Round(time.Second))
	}
}

func runOne(ctx context.Context, runner *scheduler.Runner, name string) {
	batch, report, err := runner.Run(ctx, name)
	if err != nil {
		log.Fatalf("collect %s failed: %v (known sources: %s)", name, err, strings.Join(collector.Names(), ", "))
	}
	log.Printf("collect %s done: articles=%d saved=%d skipped=%d",
		name, len(batch), report.Total.Saved, report.Total.Skipped)
}

// hasFlag 区分 --export 未指定与指定为空串
func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name || strings.HasPrefix(a, name+"=") {
			return true
		}
	}
	return false
}
