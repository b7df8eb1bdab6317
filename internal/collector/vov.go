package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// VOV 抓取 vov.vn "Tin mới cập nhật"。站点会返回 JS 跳转挑战页，且限流更严，间隔 3 秒
type VOV struct {
	site
}

func NewVOV(opts Options) *VOV {
	return &VOV{site: newSite(siteConfig{
		name:            "vov",
		source:          "vov.vn",
		baseURL:         "https://vov.vn",
		defaultCategory: "Tin tức",
		delay:           3 * time.Second,
		minContent:      50,
		maxPages:        2,
	}, opts)}
}

func (v *VOV) listingURL(page int) string {
	if page <= 0 {
		return v.url("/tin-moi-cap-nhat")
	}
	return v.url(fmt.Sprintf("/tin-moi-cap-nhat?page=%d", page))
}

func (v *VOV) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	set := newURLSet(maxCount)
	err := v.paginate(ctx, 0, set, func(ctx context.Context, n int) ([]string, bool, error) {
		doc, err := v.fetchDocSolving(ctx, v.listingURL(n))
		if err != nil {
			return nil, false, err
		}
		var urls []string
		doc.Find("div.taxonomy-content").Each(func(_ int, item *goquery.Selection) {
			title := firstText(item, "h5.media-title", "h3.card-title")
			href, _ := item.Find("a.vovvn-title").First().Attr("href")
			if link := v.abs(href); link != "" && title != "" {
				urls = append(urls, link)
			}
		})
		more := doc.Find("ul.pagination").Length() > 0
		return urls, more, nil
	})
	if err != nil {
		return nil, err
	}
	return set.List(), nil
}

var vovHome = []string{"trang chủ", "home", "vov.vn", "vov"}

func vovCategory(doc *goquery.Document) string {
	c := firstText(doc.Selection, "a.special-header-title", "li.breadcrumb-item-first a", ".breadcrumb-item a")
	for _, h := range vovHome {
		if strings.ToLower(c) == h {
			return ""
		}
	}
	return c
}

var vovRules = articleRules{
	title:    []string{"div.article-title h1", "h1"},
	date:     dateText(parseDMY, "div.col-md-4.mb-2", ".article-date .col-md-4"),
	content:  []string{"div.row.article-content div.col div.text-long", "div.text-long"},
	noise:    []string{"script", "style", "figure", ".article-related"},
	category: vovCategory,
}

func (v *VOV) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := v.fetchDocSolving(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return v.extract(doc, link, vovRules, nil)
}
