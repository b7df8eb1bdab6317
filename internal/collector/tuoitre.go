package collector

import (
	"context"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// TuoiTre 通过 RSS 获取 tuoitre.vn 最新文章
type TuoiTre struct {
	feedSite
}

func NewTuoiTre(opts Options) *TuoiTre {
	return &TuoiTre{feedSite: newFeedSite(siteConfig{
		name:            "tuoitre",
		source:          "tuoitre.vn",
		baseURL:         "https://tuoitre.vn",
		defaultCategory: "Tin mới",
		minContent:      50,
	}, "/rss/tin-moi-nhat.rss", opts)}
}

var tuoitreRules = articleRules{
	title: []string{".detail-title", "h1"},
	date: anyDate(
		dateText(parseDMY, ".detail-time"),
		dateAttr(parseISO, "content", `meta[property="article:published_time"]`),
	),
	lead:     []string{"h2.detail-sapo"},
	content:  []string{".fck", ".detail-content"},
	noise:    []string{".vnn-title", ".box-tin-lien-quan", ".ad-container", "script", "style"},
	category: categoryMeta("article:section"),
}

func (t *TuoiTre) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	return t.fetchFeedArticle(ctx, link, tuoitreRules)
}
