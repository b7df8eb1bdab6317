package collector

import (
	"context"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// DanTri 通过 RSS 获取 dantri.com.vn 最新文章
type DanTri struct {
	feedSite
}

func NewDanTri(opts Options) *DanTri {
	return &DanTri{feedSite: newFeedSite(siteConfig{
		name:            "dantri",
		source:          "dantri.com.vn",
		baseURL:         "https://dantri.com.vn",
		defaultCategory: "Tin mới",
		minContent:      50,
	}, "/rss/tin-moi-nhat.rss", opts)}
}

// 聚合 feed 把所有条目都标成 "Tin mới"，这种情况下用页面的 article:section
const dantriFeedLabel = "TIN MỚI"

var dantriRules = articleRules{
	title:    []string{"h1.title-page", "h1"},
	date:     dateText(parseDMY, ".author-time", "time.author-time"),
	lead:     []string{"h2.singular-sapo"},
	content:  []string{".singular-content", ".e-magazine__body"},
	noise:    []string{".gui-check-parent", ".video-content-wrapper", ".ad-container", "figure", "script", "style"},
	category: categoryMeta("article:section"),
}

func (d *DanTri) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := d.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	item := d.item(link)
	r := dantriRules
	r.date = anyDate(r.date, func(*goquery.Document) int64 { return itemPublished(item) })
	if c := itemCategory(item); c != "" && news.NormalizeCategory(c) != dantriFeedLabel {
		r.category = anyCategory(func(*goquery.Document) string { return c }, r.category)
	}
	return d.extract(doc, link, r, itemExtra(item))
}
