package collector

import (
	"context"
	"net/url"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// LaoDong 抓取 laodong.vn "Tin mới"。首次访问会下发设置 cookie 的 JS 挑战页
type LaoDong struct {
	site
}

func NewLaoDong(opts Options) *LaoDong {
	return &LaoDong{site: newSite(siteConfig{
		name:            "laodong",
		source:          "laodong.vn",
		baseURL:         "https://laodong.vn",
		defaultCategory: "Tin mới",
		minContent:      50,
		maxPages:        1,
	}, opts)}
}

// isLaoDongArticleURL 文章链接至少两级路径，且不是列表页、企业资讯或首页
func isLaoDongArticleURL(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Path == "" || u.Path == "/" {
		return false
	}
	if strings.Contains(link, "/tin-moi") || strings.Contains(link, "/thong-tin-doanh-nghiep") {
		return false
	}
	return strings.Count(link, "/") >= 4
}

func (l *LaoDong) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	if maxCount <= 0 {
		return nil, nil
	}
	doc, err := l.fetchDocSolving(ctx, l.url("/tin-moi"))
	if err != nil {
		return nil, err
	}
	set := newURLSet(maxCount)
	doc.Find("article").Each(func(_ int, item *goquery.Selection) {
		href, _ := item.Find("a").First().Attr("href")
		link := l.abs(href)
		if link != "" && l.sameSite(link) && isLaoDongArticleURL(link) {
			set.Add(link)
		}
	})
	return set.List(), nil
}

var laodongRules = articleRules{
	title:    []string{"h1", ".article-title"},
	date:     dateText(parseDMY, "span.time", ".time"),
	content:  []string{".detail-content", ".article-content", `[itemprop="articleBody"]`},
	noise:    []string{"script", "style", "figure", ".ads"},
	category: categoryText("a.main-cat-lnk"),
}

func (l *LaoDong) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := l.fetchDocSolving(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return l.extract(doc, link, laodongRules, nil)
}
