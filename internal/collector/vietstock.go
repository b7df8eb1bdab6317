package collector

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// ErrNoRenderer 需要浏览器渲染的站点未配置 Renderer
var ErrNoRenderer = errors.New("renderer not configured")

// VietStock 抓取 vietstock.vn "Mới cập nhật"。列表由 JS 生成，需经 browser-scraper 渲染；文章页是静态的
type VietStock struct {
	site
}

func NewVietStock(opts Options) *VietStock {
	return &VietStock{site: newSite(siteConfig{
		name:            "vietstock",
		source:          "vietstock.vn",
		baseURL:         "https://vietstock.vn",
		defaultCategory: "Mới cập nhật",
		minContent:      50,
		maxPages:        1,
	}, opts)}
}

// isVietStockArticleURL 文章形如 /2025/12/xxx-737-1234567.htm：路径较深且带年份
func isVietStockArticleURL(link string) bool {
	if strings.Contains(link, "/chu-de/") || !strings.Contains(link, ".htm") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return strings.Count(link, "/") >= 5 && strings.Contains(u.Path, "/20")
}

func (v *VietStock) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	if maxCount <= 0 {
		return nil, nil
	}
	if v.render == nil {
		return nil, fmt.Errorf("vietstock: %w", ErrNoRenderer)
	}
	if err := v.client.Pace(ctx); err != nil {
		return nil, err
	}
	body, err := v.render.Render(ctx, v.url("/chu-de/1-2/moi-cap-nhat.htm"), "a[href*='.htm']")
	if err != nil {
		return nil, fmt.Errorf("vietstock: render listing: %w", err)
	}
	doc, err := parseHTML(body)
	if err != nil {
		return nil, err
	}
	set := newURLSet(maxCount)
	doc.Find("a[title][href*='.htm']").Each(func(_ int, a *goquery.Selection) {
		title, _ := a.Attr("title")
		if len([]rune(strings.TrimSpace(title))) <= 10 {
			return
		}
		href, _ := a.Attr("href")
		if link := v.abs(href); link != "" && v.sameSite(link) && isVietStockArticleURL(link) {
			set.Add(link)
		}
	})
	return set.List(), nil
}

var vietstockRules = articleRules{
	title: []string{"h1", ".article-title"},
	date: anyDate(
		func(doc *goquery.Document) int64 { return parseISO(metaContent(doc, "article:published_time")) },
		dateText(parseDMY, "span.datenew", ".date"),
	),
	lead:     []string{"p.pHead"},
	content:  []string{".detail-content", ".article-content", `[itemprop="articleBody"]`},
	noise:    []string{"script", "style", "p.pHead", "p.pAuthor", "p.pSource"},
	category: categoryBreadcrumb(`a.bcrumbs-item[itemprop="item"] span[itemprop="name"]`, 1),
}

func (v *VietStock) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := v.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return v.extract(doc, link, vietstockRules, nil)
}
