package collector

import (
	"context"
	"regexp"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// ANTT 通过 RSS 获取 antt.vn 最新文章
type ANTT struct {
	feedSite
}

// feed 中的链接是 -n123.html 形式的旧地址，会被 301 到一个不存在的页面
var reANTTLegacy = regexp.MustCompile(`-n(\d+)\.html?$`)

func rewriteANTTLink(link string) string {
	return reANTTLegacy.ReplaceAllString(link, "-$1.htm")
}

func NewANTT(opts Options) *ANTT {
	a := &ANTT{feedSite: newFeedSite(siteConfig{
		name:            "antt",
		source:          "antt.vn",
		baseURL:         "https://antt.vn",
		defaultCategory: "Tin mới",
		minContent:      50,
	}, "/rss/trang-chu.rss", opts)}
	a.rewrite = rewriteANTTLink
	return a
}

var anttRules = articleRules{
	title:    []string{".title_detail", "h1"},
	date:     dateText(parseDMY, ".time_home", ".time"),
	lead:     []string{".sapo_detail"},
	content:  []string{".content_main", ".detail-content"},
	noise:    []string{".related-box", ".ad-container", "script", "style", ".tag_detail", ".article-footer"},
	category: categoryBreadcrumb(`a[itemprop="url"] span[itemprop="title"]`, 1),
}

func (a *ANTT) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	return a.fetchFeedArticle(ctx, link, anttRules)
}
