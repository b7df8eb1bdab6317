package collector

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// VnEconomy 的 feed 自带全文（content:encoded），不再请求文章页
type VnEconomy struct {
	feedSite
}

func NewVnEconomy(opts Options) *VnEconomy {
	return &VnEconomy{feedSite: newFeedSite(siteConfig{
		name:            "vneconomy",
		source:          "vneconomy.vn",
		baseURL:         "https://vneconomy.vn",
		defaultCategory: "Tin mới",
	}, "/tin-moi.rss", opts)}
}

// feedContent 摘要常放在 <h2>，正文在 <p>；都没有时退回全文文本
func feedContent(raw string) string {
	raw = html.UnescapeString(raw)
	if !strings.Contains(raw, "<") {
		return news.CleanText(raw)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return news.CleanText(raw)
	}
	if body := collectParagraphs(doc.Selection, "h2, p"); body != "" {
		return body
	}
	return textOf(doc.Selection)
}

func (v *VnEconomy) articleFromItem(link string, item *gofeed.Item) (news.Article, error) {
	raw := item.Content
	if raw == "" {
		raw = item.Description
	}
	return v.build(news.Fields{
		PublishedAt: itemPublished(item),
		Title:       news.CleanText(item.Title),
		Link:        link,
		Content:     feedContent(raw),
		Category:    itemCategory(item),
		Extra:       itemExtra(item),
	})
}

// FetchArticle 只接受列表阶段见过的链接；缓存未命中时重新拉一次 feed
func (v *VnEconomy) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	item := v.item(link)
	if item == nil {
		if _, err := v.ListArticleURLs(ctx, feedMaxEntries); err != nil {
			return news.Article{}, err
		}
		item = v.item(link)
	}
	if item == nil {
		return news.Article{}, fmt.Errorf("vneconomy: %s: not in feed: %w", link, news.ErrNotArticle)
	}
	return v.articleFromItem(link, item)
}
