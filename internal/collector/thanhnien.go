package collector

import (
	"context"
	"net/url"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// ThanhNien 通过 RSS 获取 thanhnien.vn 首页文章，feed 中没有分类
type ThanhNien struct {
	feedSite
}

func NewThanhNien(opts Options) *ThanhNien {
	return &ThanhNien{feedSite: newFeedSite(siteConfig{
		name:            "thanhnien",
		source:          "thanhnien.vn",
		baseURL:         "https://thanhnien.vn",
		defaultCategory: "Tin tức",
		minContent:      50,
	}, "/rss/home.rss", opts)}
}

// thanhnienPathCategory 第一级路径即栏目，例如 /kinh-te/... -> "kinh te"
func thanhnienPathCategory(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.ReplaceAll(parts[0], "-", " ")
}

func thanhnienRules(link string) articleRules {
	return articleRules{
		title:   []string{"h1.detail-title", ".detail-title", "h1"},
		date:    dateText(parseDMY, ".detail-time"),
		lead:    []string{"h2.detail-sapo"},
		content: []string{"#abb-content", ".detail-content", `[itemprop="articleBody"]`},
		noise:   []string{".morenews", ".display-ads", ".video-content-wrapper", ".banner-ads", "script", "style"},
		category: anyCategory(
			categoryMeta("article:section"),
			func(*goquery.Document) string { return thanhnienPathCategory(link) },
		),
	}
}

func (t *ThanhNien) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	return t.fetchFeedArticle(ctx, link, thanhnienRules(link))
}
