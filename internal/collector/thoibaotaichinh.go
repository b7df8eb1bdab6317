package collector

import (
	"context"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// ThoiBaoTaiChinh 抓取 thoibaotaichinhvietnam.vn 首页
type ThoiBaoTaiChinh struct {
	site
}

func NewThoiBaoTaiChinh(opts Options) *ThoiBaoTaiChinh {
	return &ThoiBaoTaiChinh{site: newSite(siteConfig{
		name:            "thoibaotaichinh",
		source:          "thoibaotaichinhvietnam.vn",
		baseURL:         "https://thoibaotaichinhvietnam.vn",
		defaultCategory: "Tin tức",
	}, opts)}
}

func (t *ThoiBaoTaiChinh) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	return t.scanLinks(ctx, t.url("/"), "a[href$='.html']", maxCount, isHTMLArticleURL)
}

var thoibaotaichinhRules = articleRules{
	// 日期与时间分在两个 span 里
	title: []string{"h1.post-title"},
	date: func(doc *goquery.Document) int64 {
		return parseDMY(firstText(doc.Selection, "span.format_date") + " " + firstText(doc.Selection, "span.format_time"))
	},
	lead:     []string{"div.post-desc"},
	content:  []string{"div.post-content.__MASTERCMS_CONTENT", "div.post-content"},
	category: categoryText("a.article-catname"),
}

func (t *ThoiBaoTaiChinh) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := t.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return t.extract(doc, link, thoibaotaichinhRules, nil)
}
