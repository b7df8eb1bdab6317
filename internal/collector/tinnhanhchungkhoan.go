package collector

import (
	"context"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// TinNhanhChungKhoan 抓取 tinnhanhchungkhoan.vn 首页
type TinNhanhChungKhoan struct {
	site
}

func NewTinNhanhChungKhoan(opts Options) *TinNhanhChungKhoan {
	return &TinNhanhChungKhoan{site: newSite(siteConfig{
		name:            "tinnhanhchungkhoan",
		source:          "tinnhanhchungkhoan.vn",
		baseURL:         "https://www.tinnhanhchungkhoan.vn",
		defaultCategory: "Chứng khoán",
		minContent:      50,
		maxPages:        1,
	}, opts)}
}

var tnckSkip = []string{"/tag/", "/author/", "/category/"}

func isTNCKArticleURL(link string) bool {
	for _, p := range tnckSkip {
		if strings.Contains(link, p) {
			return false
		}
	}
	return true
}

func (t *TinNhanhChungKhoan) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	if maxCount <= 0 {
		return nil, nil
	}
	doc, err := t.fetchDoc(ctx, t.url("/"))
	if err != nil {
		return nil, err
	}
	set := newURLSet(maxCount)
	doc.Find("article a, .news-item a, .article-link, h2 a, h3 a, .cms-link a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		link := t.abs(href)
		if link != "" && t.sameSite(link) && isTNCKArticleURL(link) {
			set.Add(link)
		}
	})
	return set.List(), nil
}

// data-time 是 unix 时间戳，否则用 datetime 属性（2026-01-02T08:00:11+0700）
var tnckRules = articleRules{
	title: []string{"h1.article__header.cms-title", "h1.cms-title", "h1"},
	date: anyDate(
		dateAttr(parseUnix, "data-time", "time.time"),
		dateAttr(parseISO, "datetime", "time.time"),
	),
	lead:       []string{"div.article__sapo.cms-desc"},
	content:    []string{"div.article__body.cms-body"},
	paragraphs: "p, h2, h3",
	noise:      []string{".ads_middle", "script", "style", ".banner"},
	category:   categoryText("li.main-cate a"),
}

func (t *TinNhanhChungKhoan) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := t.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return t.extract(doc, link, tnckRules, nil)
}
