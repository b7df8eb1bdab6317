package collector

import (
	"context"
	"fmt"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// VnExpress 抓取 vnexpress.net "Tin tức 24h" 列表
type VnExpress struct {
	site
}

func NewVnExpress(opts Options) *VnExpress {
	return &VnExpress{site: newSite(siteConfig{
		name:            "vnexpress",
		source:          "vnexpress.net",
		baseURL:         "https://vnexpress.net",
		defaultCategory: "Tin tức 24h",
		minContent:      50,
		maxPages:        3,
	}, opts)}
}

func (v *VnExpress) listingURL(page int) string {
	if page <= 1 {
		return v.url("/tin-tuc-24h")
	}
	return v.url(fmt.Sprintf("/tin-tuc-24h-p%d", page))
}

func (v *VnExpress) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	set := newURLSet(maxCount)
	err := v.paginate(ctx, 1, set, func(ctx context.Context, n int) ([]string, bool, error) {
		doc, err := v.fetchDoc(ctx, v.listingURL(n))
		if err != nil {
			return nil, false, err
		}
		return v.parseListing(doc), true, nil
	})
	if err != nil {
		return nil, err
	}
	return set.List(), nil
}

// parseListing 每个 article.item-news 取标题链接，缺标题或链接的块跳过
func (v *VnExpress) parseListing(doc *goquery.Document) []string {
	var urls []string
	doc.Find("article.item-news").Each(func(_ int, item *goquery.Selection) {
		a := item.Find("h3.title-news a").First()
		title := textOf(a)
		if title == "" {
			title, _ = a.Attr("title")
		}
		href, _ := a.Attr("href")
		link := v.abs(href)
		if title == "" || link == "" {
			return
		}
		urls = append(urls, link)
	})
	return urls
}

var vnexpressRules = articleRules{
	title:      []string{"h1.title-detail", "h1"},
	date:       dateText(parseDMY, "span.date", ".header-content .date"),
	content:    []string{"article.fck_detail", ".fck_detail"},
	paragraphs: "p.Normal",
	noise:      []string{"figure", ".box_embed_video", "table.tplCaption"},
	fallback:   []string{"p.description"},
	category:   categoryText("ul.breadcrumb li a", ".breadcrumb a"),
}

func (v *VnExpress) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := v.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return v.extract(doc, link, vnexpressRules, nil)
}
