package collector

import (
	"context"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// QDND 通过 RSS 获取 qdnd.vn 最新文章，feed 与文章走同一个会话
type QDND struct {
	feedSite
}

func NewQDND(opts Options) *QDND {
	return &QDND{feedSite: newFeedSite(siteConfig{
		name:            "qdnd",
		source:          "qdnd.vn",
		baseURL:         "https://www.qdnd.vn",
		defaultCategory: "Military",
		minContent:      100,
	}, "/rss/cate/tin-tuc-moi-nhat.rss", opts)}
}

var qdndRules = articleRules{
	title:    []string{"h1.post-title", "h1"},
	date:     dateText(parseDMY, ".post-date"),
	lead:     []string{".post-summary"},
	content:  []string{".post-content"},
	noise:    []string{".related-post", ".video-wrapper", ".author-info", "script", "style"},
	filters:  []paragraphFilter{longerThan(30)},
	category: categoryText(`a[rel="v:url"][property="v:title"]`),
}

func (q *QDND) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	return q.fetchFeedArticle(ctx, link, qdndRules)
}
