package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LJTian/VnNewsHub/internal/collector"
	"github.com/LJTian/VnNewsHub/internal/export"
	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/LJTian/VnNewsHub/internal/processor"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxArticles 每个来源单次最多采集的文章数
const DefaultMaxArticles = 15

// Store 是 Runner 需要的持久化能力；Exists 只用于提前跳过，唯一性由 Insert 保证
type Store interface {
	Exists(ctx context.Context, title string) (bool, error)
	// Insert 返回 false, nil 表示标题已存在
	Insert(ctx context.Context, a news.Article) (bool, error)
}

type Exporter interface {
	ExportBatch(records []news.Article, format export.Format, name string) (string, error)
}

// Override 单个来源的参数覆盖，零值表示沿用全局设置
type Override struct {
	Delay       time.Duration
	MaxArticles int
	MaxPages    int
	BaseURL     string
}

type Runner struct {
	// Store 为 nil 时不入库
	Store Store
	// Exporter 为 nil 或 Formats 为空时不导出
	Exporter Exporter
	Formats  []export.Format

	// Sources 参与 RunAll 的来源及顺序，为空时使用全部已注册来源
	Sources     []string
	MaxArticles int
	// Workers 来源级并发数，<=1 时顺序执行
	Workers   int
	Options   collector.Options
	Overrides map[string]Override
	Logger    *slog.Logger

	// NewSource 默认 collector.New，测试中替换为假来源
	NewSource func(name string, opts collector.Options) (collector.Source, error)
}

// SourceResult 单个来源一次运行的统计
type SourceResult struct {
	Name string
	// Listed 列表页得到的 URL 数
	Listed int
	// Collected 抽取成功并去重后的文章数
	Collected int
	// Saved 新入库条数，Skipped 为库中已存在的条数
	Saved   int
	Skipped int
	// Failed 抓取失败、页面无效或入库失败的条数
	Failed int
	Err    error
}

type Report struct {
	Sources []SourceResult
	Total   SourceResult
}

func (r *Report) add(res SourceResult) {
	r.Sources = append(r.Sources, res)
	r.Total.Listed += res.Listed
	r.Total.Collected += res.Collected
	r.Total.Saved += res.Saved
	r.Total.Skipped += res.Skipped
	r.Total.Failed += res.Failed
	if res.Err != nil && r.Total.Err == nil {
		r.Total.Err = errors.New("one or more sources failed")
	}
}

// Log 逐来源输出统计并给出汇总
func (r *Report) Log(l *slog.Logger) {
	for _, s := range r.Sources {
		l.Info("source summary", "source", s.Name, "listed", s.Listed, "collected", s.Collected,
			"saved", s.Saved, "skipped", s.Skipped, "failed", s.Failed, "ok", s.Err == nil)
	}
	l.Info("run summary", "sources", len(r.Sources), "collected", r.Total.Collected,
		"saved", r.Total.Saved, "skipped", r.Total.Skipped, "failed", r.Total.Failed)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) sources() []string {
	if len(r.Sources) > 0 {
		return r.Sources
	}
	return collector.Names()
}

func (r *Runner) newSource(name string) (collector.Source, int, error) {
	opts := r.Options
	if opts.Logger == nil {
		opts.Logger = r.logger()
	}
	maxArticles := r.MaxArticles
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}
	if o, ok := r.Overrides[name]; ok {
		if o.Delay != 0 {
			opts.Delay = o.Delay
		}
		if o.MaxPages > 0 {
			opts.MaxPages = o.MaxPages
		}
		if o.BaseURL != "" {
			opts.BaseURL = o.BaseURL
		}
		if o.MaxArticles > 0 {
			maxArticles = o.MaxArticles
		}
	}
	factory := r.NewSource
	if factory == nil {
		factory = collector.New
	}
	src, err := factory(name, opts)
	return src, maxArticles, err
}

// Run 运行单个来源。只有来源名未注册时返回错误，其余失败体现在 Report 里
func (r *Runner) Run(ctx context.Context, name string) ([]news.Article, *Report, error) {
	src, maxArticles, err := r.newSource(name)
	if err != nil {
		return nil, nil, err
	}
	batch, res := r.runSource(ctx, src, name, maxArticles)
	r.exportBatch(batch, name)

	report := &Report{}
	report.add(res)
	report.Log(r.logger())
	return batch, report, nil
}

// RunAll 运行全部来源，结果按来源顺序拼接；单个来源失败不影响其它来源
func (r *Runner) RunAll(ctx context.Context) ([]news.Article, *Report) {
	names := r.sources()
	batches := make([][]news.Article, len(names))
	results := make([]SourceResult, len(names))

	runOne := func(i int) {
		name := names[i]
		src, maxArticles, err := r.newSource(name)
		if err != nil {
			r.logger().Warn("source failed", "source", name, "err", err)
			results[i] = SourceResult{Name: name, Err: err}
			return
		}
		batches[i], results[i] = r.runSource(ctx, src, name, maxArticles)
		r.exportBatch(batches[i], name)
	}

	if r.Workers <= 1 {
		for i := range names {
			if ctx.Err() != nil {
				results[i] = SourceResult{Name: names[i], Err: ctx.Err()}
				continue
			}
			runOne(i)
		}
	} else {
		// 只在来源之间并发，每个来源的请求仍由各自的客户端节流
		g := new(errgroup.Group)
		g.SetLimit(r.Workers)
		for i := range names {
			g.Go(func() error {
				runOne(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	var all []news.Article
	report := &Report{}
	for i := range names {
		all = append(all, batches[i]...)
		report.add(results[i])
	}
	r.exportBatch(all, "all_news")
	report.Log(r.logger())
	return all, report
}

// runSource 在适配器边界内完成列表、抓取、去重和入库；panic 视为整个来源失败
func (r *Runner) runSource(ctx context.Context, src collector.Source, name string, maxArticles int) (batch []news.Article, res SourceResult) {
	log := r.logger().With("source", name)
	res.Name = name
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			batch = nil
			res = SourceResult{Name: name, Listed: res.Listed, Err: fmt.Errorf("%s: panic: %v", name, p)}
		}
		if res.Err != nil {
			log.Warn("source failed", "err", res.Err)
			return
		}
		log.Info("source done", "collected", res.Collected, "saved", res.Saved,
			"skipped", res.Skipped, "failed", res.Failed, "cost", time.Since(start).Round(time.Millisecond))
	}()

	urls, err := src.ListArticleURLs(ctx, maxArticles)
	if err != nil {
		res.Err = err
		return nil, res
	}
	res.Listed = len(urls)
	if len(urls) == 0 {
		log.Info("no article urls found")
	}

	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		a, err := src.FetchArticle(ctx, u)
		if err != nil {
			res.Failed++
			if errors.Is(err, news.ErrNotArticle) {
				log.Debug("article discarded", "url", u, "err", err)
			} else {
				log.Warn("article fetch failed", "url", u, "err", err)
			}
			continue
		}
		batch = append(batch, a)
	}

	batch = processor.New().Process(batch)
	res.Collected = len(batch)

	r.persist(ctx, log, batch, &res)
	return batch, res
}

// persist 逐条写入，每条独立事务；失败只记录日志
func (r *Runner) persist(ctx context.Context, log *slog.Logger, batch []news.Article, res *SourceResult) {
	if r.Store == nil {
		return
	}
	for _, a := range batch {
		exists, err := r.Store.Exists(ctx, a.Title)
		if err != nil {
			log.Warn("exists check failed", "title", a.Title, "err", err)
		}
		if exists {
			res.Skipped++
			continue
		}
		inserted, err := r.Store.Insert(ctx, a)
		switch {
		case err != nil:
			res.Failed++
			log.Warn("persist failed", "title", a.Title, "err", err)
		case inserted:
			res.Saved++
		default:
			res.Skipped++
		}
	}
}

func (r *Runner) exportBatch(batch []news.Article, name string) {
	if r.Exporter == nil || len(batch) == 0 {
		return
	}
	for _, f := range r.Formats {
		path, err := r.Exporter.ExportBatch(batch, f, name)
		if err != nil {
			r.logger().Warn("export failed", "name", name, "format", f, "err", err)
			continue
		}
		r.logger().Info("exported", "name", name, "format", f, "path", path, "count", len(batch))
	}
}
