package collector

import (
	"context"
	"net/url"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// KinhTeNgoaiThuong 抓取 kinhtengoaithuong.vn 首页
type KinhTeNgoaiThuong struct {
	site
}

func NewKinhTeNgoaiThuong(opts Options) *KinhTeNgoaiThuong {
	return &KinhTeNgoaiThuong{site: newSite(siteConfig{
		name:            "kinhtengoaithuong",
		source:          "kinhtengoaithuong.vn",
		baseURL:         "https://kinhtengoaithuong.vn",
		referer:         "https://www.google.com/",
		defaultCategory: "Tài chính",
	}, opts)}
}

var kinhtengoaithuongExcluded = []string{"/category/", "/tag/", "/author/", "/contact/", "/gioi-thieu/", "/c/"}

// isKinhTeNgoaiThuongArticleURL 排除首页与栏目、标签、作者等导航页
func isKinhTeNgoaiThuongArticleURL(link string) bool {
	u, err := url.Parse(link)
	if err != nil || strings.Trim(u.Path, "/") == "" {
		return false
	}
	for _, x := range kinhtengoaithuongExcluded {
		if strings.Contains(link, x) {
			return false
		}
	}
	return true
}

// ListArticleURLs 先取标题链接，首页改版拿不到时退回全部深层链接
func (k *KinhTeNgoaiThuong) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	if maxCount <= 0 {
		return nil, nil
	}
	doc, err := k.fetchDoc(ctx, k.url("/"))
	if err != nil {
		return nil, err
	}
	set := newURLSet(maxCount)
	add := func(keep func(string) bool) func(int, *goquery.Selection) {
		return func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if link := k.abs(href); link != "" && k.sameSite(link) && keep(link) {
				set.Add(link)
			}
		}
	}
	doc.Find("h2 a, h3 a, .post-title a, .entry-title a").Each(add(isKinhTeNgoaiThuongArticleURL))
	if len(set.List()) == 0 {
		doc.Find("a[href]").Each(add(isKinhTeNgoaiThuongArticleURL))
	}
	return set.List(), nil
}

var kinhtengoaithuongRules = articleRules{
	title:      []string{"h1"},
	date:       dateText(parseDMY, ".detail-date", ".post-date", ".time"),
	content:    []string{".article-content"},
	paragraphs: "p, td",
	filters:    []paragraphFilter{longerThan(5)},
	category: func(doc *goquery.Document) string {
		item := doc.Find(`a[itemprop="item"]`).Eq(1)
		if t, ok := item.Attr("title"); ok && strings.TrimSpace(t) != "" {
			return t
		}
		return textOf(item)
	},
}

func (k *KinhTeNgoaiThuong) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := k.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return k.extract(doc, link, kinhtengoaithuongRules, nil)
}
