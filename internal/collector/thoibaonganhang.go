package collector

import (
	"context"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// ThoiBaoNganHang 抓取 thoibaonganhang.vn 首页
type ThoiBaoNganHang struct {
	site
}

func NewThoiBaoNganHang(opts Options) *ThoiBaoNganHang {
	return &ThoiBaoNganHang{site: newSite(siteConfig{
		name:            "thoibaonganhang",
		source:          "thoibaonganhang.vn",
		baseURL:         "https://thoibaonganhang.vn",
		defaultCategory: "Ngân hàng",
		minContent:      50,
	}, opts)}
}

// isTBNHArticleURL 文章地址带数字 id 的 .html，排除视频、图集、栏目与标签
func isTBNHArticleURL(link string) bool {
	if !strings.Contains(link, ".html") || !strings.ContainsAny(link, "0123456789") {
		return false
	}
	for _, x := range []string{"/video-", "/anh-", "/chuyen-muc/", "/tags/"} {
		if strings.Contains(link, x) {
			return false
		}
	}
	return true
}

func (t *ThoiBaoNganHang) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	return t.scanLinks(ctx, t.url("/"), "a[href]", maxCount, isTBNHArticleURL)
}

var thoibaonganhangRules = articleRules{
	title:    []string{"h1"},
	date:     dateText(parseDMY, ".format_date"),
	lead:     []string{".article-detail-body .article-detail-desc"},
	content:  []string{".article-detail-body"},
	noise:    []string{".article-detail-desc", ".article-share-button", ".article-extension", "script", "style"},
	fallback: []string{".article-detail-body"},
	category: categoryText(".bx-cat-link"),
}

func (t *ThoiBaoNganHang) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := t.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return t.extract(doc, link, thoibaonganhangRules, nil)
}
