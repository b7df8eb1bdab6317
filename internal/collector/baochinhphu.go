package collector

import (
	"context"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// BaoChinhPhu 抓取 baochinhphu.vn "Tin mới"
type BaoChinhPhu struct {
	site
}

func NewBaoChinhPhu(opts Options) *BaoChinhPhu {
	return &BaoChinhPhu{site: newSite(siteConfig{
		name:            "baochinhphu",
		source:          "baochinhphu.vn",
		baseURL:         "https://baochinhphu.vn",
		defaultCategory: "Chính trị",
		minContent:      50,
		maxPages:        1,
	}, opts)}
}

func (b *BaoChinhPhu) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	if maxCount <= 0 {
		return nil, nil
	}
	doc, err := b.fetchDoc(ctx, b.url("/tin-moi.htm"))
	if err != nil {
		return nil, err
	}
	set := newURLSet(maxCount)
	doc.Find(`a[data-role="title"], .story__title a, .box-stream-link-title, .box-category-link-title`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		link := b.abs(href)
		if link != "" && strings.HasSuffix(link, ".htm") && b.sameSite(link) {
			set.Add(link)
		}
	})
	return set.List(), nil
}

var baochinhphuRules = articleRules{
	title:      []string{`h1[data-role="title"]`, `[data-role="title"]`, "h1"},
	date:       dateText(parseDMY, `[data-role="publishdate"]`),
	lead:       []string{`[data-role="sapo"]`},
	content:    []string{`[data-role="content"]`},
	paragraphs: "p, h2, h3",
	noise:      []string{`.VCSortableInPreviewMode[type="RelatedNewsBox"]`, ".button-dowload-img", "script", "style"},
	category:   categoryText(`[data-role="cate-name"]`),
}

func (b *BaoChinhPhu) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := b.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return b.extract(doc, link, baochinhphuRules, nil)
}
