package collector

import (
	"context"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// NguoiQuanSat 抓取 nguoiquansat.vn "Tin mới nhất"，文章页为 longform 模板
type NguoiQuanSat struct {
	site
}

func NewNguoiQuanSat(opts Options) *NguoiQuanSat {
	return &NguoiQuanSat{site: newSite(siteConfig{
		name:            "nguoiquansat",
		source:          "nguoiquansat.vn",
		baseURL:         "https://nguoiquansat.vn",
		defaultCategory: "Tin tức",
	}, opts)}
}

// isHTMLArticleURL 以 .html 结尾且不是视频、图集、标签或作者页；多个站点共用
func isHTMLArticleURL(link string) bool {
	if !strings.HasSuffix(link, ".html") {
		return false
	}
	for _, x := range []string{"/video", "/media", "/tag", "/author"} {
		if strings.Contains(link, x) {
			return false
		}
	}
	return true
}

func (n *NguoiQuanSat) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	return n.scanLinks(ctx, n.url("/tin-moi-nhat"), "a[href]", maxCount, isHTMLArticleURL)
}

var nguoiquansatRules = articleRules{
	title:    []string{"h1.sc-longform-header-title"},
	date:     dateText(parseDMY, "span.sc-longform-header-date"),
	lead:     []string{"article.entry p.sc-longform-header-sapo"},
	content:  []string{"article.entry"},
	noise:    []string{"p.sc-longform-header-sapo", ".c-box", ".oneads", ".ads_viewport", "script", "style"},
	category: categoryText("li.breadcrumb-item.active a"),
}

func (n *NguoiQuanSat) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := n.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return n.extract(doc, link, nguoiquansatRules, nil)
}
