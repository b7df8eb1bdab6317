package collector

import (
	"context"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// TaiChinhDoanhNghiep 抓取 taichinhdoanhnghiep.net.vn 首页
type TaiChinhDoanhNghiep struct {
	site
}

func NewTaiChinhDoanhNghiep(opts Options) *TaiChinhDoanhNghiep {
	return &TaiChinhDoanhNghiep{site: newSite(siteConfig{
		name:            "taichinhdoanhnghiep",
		source:          "taichinhdoanhnghiep.net.vn",
		baseURL:         "https://taichinhdoanhnghiep.net.vn",
		defaultCategory: "Tài chính",
		minContent:      50,
	}, opts)}
}

// isTCDNArticleURL 文章地址形如 /ten-bai-d123456.html
func isTCDNArticleURL(link string) bool {
	return strings.Contains(link, "-d") && strings.Contains(link, ".html")
}

func (t *TaiChinhDoanhNghiep) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	return t.scanLinks(ctx, t.url("/"), "a[href]", maxCount, isTCDNArticleURL)
}

var taichinhdoanhnghiepRules = articleRules{
	title:    []string{"#getTitle", "h1"},
	date:     dateText(parseDMY, ".bx-time"),
	lead:     []string{"#noidung #getIntro", "#noidung h2"},
	content:  []string{"#noidung"},
	noise:    []string{"#getIntro", ".audio_box", ".detail-share-2", ".qc1", "blockquote", ".audio_tool", "script", "style"},
	category: categoryText(".c-j a"),
}

func (t *TaiChinhDoanhNghiep) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := t.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return t.extract(doc, link, taichinhdoanhnghiepRules, nil)
}
