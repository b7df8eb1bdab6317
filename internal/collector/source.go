package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/LJTian/VnNewsHub/internal/fetch"
	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// Source 是每个新闻站点的适配器契约
type Source interface {
	// Name 返回注册名，例如 "cafef"
	Name() string
	// ListArticleURLs 抓取列表页（HTML 或 RSS），返回去重且不超过 maxCount 的文章 URL，保持文档顺序。
	// maxCount <= 0 时返回空列表，不发请求
	ListArticleURLs(ctx context.Context, maxCount int) ([]string, error)
	// FetchArticle 抓取并抽取单篇文章；非文章页返回包装了 news.ErrNotArticle 的错误
	FetchArticle(ctx context.Context, url string) (news.Article, error)
}

// Renderer 渲染需要执行 JS 的页面，由 fetch.RenderClient 实现
type Renderer interface {
	Render(ctx context.Context, pageURL, waitSelector string) (string, error)
}

// NoDelay 用于测试：关闭请求间隔
const NoDelay time.Duration = -1

type Options struct {
	// BaseURL 覆盖站点根地址，测试时指向 httptest
	BaseURL string
	// Delay 为 0 时使用站点默认值，NoDelay 表示不等待
	Delay time.Duration
	// MaxPages 为 0 时使用站点默认值
	MaxPages  int
	Timeout   time.Duration
	Renderer  Renderer
	Logger    *slog.Logger
	Transport http.RoundTripper
}

var ErrUnknownSource = errors.New("unknown source")

// siteConfig 是每个适配器自己的固定参数
type siteConfig struct {
	name            string
	source          string
	baseURL         string
	referer         string
	defaultCategory string
	delay           time.Duration
	minContent      int
	maxPages        int
}

// site 是各适配器共享的部分：独占的抓取会话、节流与 URL 处理
type site struct {
	cfg    siteConfig
	base   *url.URL
	client *fetch.Client
	render Renderer
	log    *slog.Logger
}

func newSite(cfg siteConfig, opts Options) site {
	if opts.BaseURL != "" {
		cfg.baseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	switch {
	case opts.Delay < 0:
		cfg.delay = 0
	case opts.Delay > 0:
		cfg.delay = opts.Delay
	case cfg.delay == 0:
		cfg.delay = fetch.DefaultDelay
	}
	if opts.MaxPages > 0 {
		cfg.maxPages = opts.MaxPages
	}
	if cfg.maxPages <= 0 {
		cfg.maxPages = 1
	}

	base, err := url.Parse(cfg.baseURL + "/")
	if err != nil {
		// baseURL 来自代码常量或配置，解析失败属于配置错误
		panic(fmt.Sprintf("collector: invalid base url %q: %v", cfg.baseURL, err))
	}

	referer := cfg.referer
	if referer == "" {
		referer = cfg.baseURL + "/"
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return site{
		cfg:  cfg,
		base: base,
		client: fetch.NewClient(fetch.Options{
			Timeout:   opts.Timeout,
			Delay:     cfg.delay,
			Referer:   referer,
			Transport: opts.Transport,
		}),
		render: opts.Renderer,
		log:    log.With("source", cfg.name),
	}
}

func (s *site) Name() string {
	return s.cfg.name
}

// url 拼接站点路径
func (s *site) url(path string) string {
	return s.cfg.baseURL + path
}

func (s *site) fetchDoc(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.cfg.name, err)
	}
	return parseHTML(body)
}

// fetchDocSolving 用于会下发 JS 挑战页的站点
func (s *site) fetchDocSolving(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, retries, err := s.client.GetSolvingChallenges(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.cfg.name, err)
	}
	if retries > 0 {
		s.log.Debug("challenge solved", "url", pageURL, "retries", retries)
	}
	return parseHTML(body)
}

func parseHTML(body string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// abs 把相对链接补全为绝对 URL，并去掉 fragment；无法解析或非 http(s) 时返回空串
func (s *site) abs(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u := s.base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

// sameSite 判断链接是否属于本站（含子域名）
func (s *site) sameSite(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	baseHost := strings.TrimPrefix(s.base.Hostname(), "www.")
	return host == baseHost || strings.HasSuffix(host, "."+baseHost)
}

// build 补上来源、默认分类与正文阈值后构造文章
func (s *site) build(f news.Fields) (news.Article, error) {
	f.Source = s.cfg.source
	f.DefaultCategory = s.cfg.defaultCategory
	a, err := news.New(f, s.cfg.minContent)
	if err != nil {
		return news.Article{}, fmt.Errorf("%s: %s: %w", s.cfg.name, f.Link, err)
	}
	return a, nil
}
