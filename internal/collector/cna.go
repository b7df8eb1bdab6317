package collector

import (
	"context"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// CNA 通过 RSS 获取 channelnewsasia.com 新闻，日期与分类以 feed 为准
type CNA struct {
	feedSite
}

func NewCNA(opts Options) *CNA {
	return &CNA{feedSite: newFeedSite(siteConfig{
		name:            "cna",
		source:          "channelnewsasia.com",
		baseURL:         "https://www.channelnewsasia.com",
		defaultCategory: "World",
		minContent:      50,
	}, "/api/v1/rss-outbound-feed?_format=xml", opts)}
}

var cnaRules = articleRules{
	title:   []string{"h1.page-title", "h1"},
	lead:    []string{".content-detail__description"},
	content: []string{".content-wrapper", ".text-long"},
	noise:   []string{".related-section", ".video-embed", ".ad-slot", ".infographic", "script", "style"},
}

func (c *CNA) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	return c.fetchFeedArticle(ctx, link, cnaRules)
}
