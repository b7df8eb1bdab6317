package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// RSS 源只取最新的 20 条
const feedMaxEntries = 20

// feedSite 是 RSS 类适配器的公共部分：列表来自 feed，文章页仍走 HTML 抽取。
// feed 条目按链接缓存，FetchArticle 用它补充日期、分类与摘要。
type feedSite struct {
	site
	feedPath string
	// rewrite 可选，把 feed 中的链接改写为可抓取的文章地址
	rewrite func(link string) string
	cache   *feedCache
}

type feedCache struct {
	mu    sync.Mutex
	items map[string]*gofeed.Item
}

func newFeedSite(cfg siteConfig, feedPath string, opts Options) feedSite {
	return feedSite{
		site:     newSite(cfg, opts),
		feedPath: feedPath,
		cache:    &feedCache{items: make(map[string]*gofeed.Item)},
	}
}

func (f *feedSite) fetchFeed(ctx context.Context) (*gofeed.Feed, error) {
	body, err := f.client.Get(ctx, f.url(f.feedPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.cfg.name, err)
	}
	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("%s: parse feed: %w", f.cfg.name, err)
	}
	return feed, nil
}

func (f *feedSite) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	if maxCount <= 0 {
		return nil, nil
	}
	feed, err := f.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}
	if maxCount > feedMaxEntries {
		maxCount = feedMaxEntries
	}
	set := newURLSet(maxCount)

	f.cache.mu.Lock()
	defer f.cache.mu.Unlock()
	for i, item := range feed.Items {
		if i >= feedMaxEntries || set.Full() {
			break
		}
		link := f.abs(item.Link)
		if link != "" && f.rewrite != nil {
			link = f.rewrite(link)
		}
		if set.Add(link) {
			f.cache.items[link] = item
		}
	}
	return set.List(), nil
}

// item 返回列表阶段缓存的 feed 条目，直接调用 FetchArticle 时为 nil
func (f *feedSite) item(link string) *gofeed.Item {
	f.cache.mu.Lock()
	defer f.cache.mu.Unlock()
	return f.cache.items[link]
}

func itemPublished(item *gofeed.Item) int64 {
	if item == nil {
		return news.UnknownPublishedAt
	}
	return timeUnix(item.PublishedParsed)
}

func itemCategory(item *gofeed.Item) string {
	if item == nil || len(item.Categories) == 0 {
		return ""
	}
	return news.CleanText(item.Categories[0])
}

// itemExtra 保留 feed 摘要与作者，入库到 extra_data
func itemExtra(item *gofeed.Item) map[string]any {
	if item == nil {
		return nil
	}
	extra := make(map[string]any, 2)
	if s := stripHTML(item.Description); s != "" {
		extra["summary"] = s
	}
	if item.Author != nil && item.Author.Name != "" {
		extra["author"] = item.Author.Name
	}
	if len(extra) == 0 {
		return nil
	}
	return extra
}

// stripHTML feed 的 description 常带 <img>、<a> 等标签
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return news.CleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return news.CleanText(s)
	}
	return textOf(doc.Selection)
}

// withItem 页面上没有日期或分类时用 feed 条目兜底
func withItem(r articleRules, item *gofeed.Item) articleRules {
	if item == nil {
		return r
	}
	published := itemPublished(item)
	page := r.date
	r.date = func(doc *goquery.Document) int64 {
		var ts int64
		if page != nil {
			ts = page(doc)
		}
		return firstKnown(ts, published)
	}
	if c := itemCategory(item); c != "" {
		r.category = anyCategory(orEmpty(r.category), func(*goquery.Document) string { return c })
	}
	return r
}

func orEmpty(f func(*goquery.Document) string) func(*goquery.Document) string {
	if f == nil {
		return func(*goquery.Document) string { return "" }
	}
	return f
}

// fetchFeedArticle 抓取文章页并合并 feed 条目信息
func (f *feedSite) fetchFeedArticle(ctx context.Context, link string, r articleRules) (news.Article, error) {
	doc, err := f.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	item := f.item(link)
	return f.extract(doc, link, withItem(r, item), itemExtra(item))
}
