package collector

import (
	"context"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// Coin68 抓取 coin68.com 首页热点，页面是 MUI 生成的 class 名
type Coin68 struct {
	site
}

func NewCoin68(opts Options) *Coin68 {
	return &Coin68{site: newSite(siteConfig{
		name:            "coin68",
		source:          "coin68.com",
		baseURL:         "https://coin68.com",
		defaultCategory: "Crypto",
	}, opts)}
}

func (c *Coin68) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	return c.scanLinks(ctx, c.url("/"), "div.css-19idom div.css-112x203 a[href]", maxCount, nil)
}

var coin68Rules = articleRules{
	title:   []string{"h1"},
	date:    dateScan(parseDMY, "span"),
	content: []string{"div#content"},
	filters: []paragraphFilter{longerThan(30), withoutMarkers("Ảnh:", "Nguồn:", "tổng hợp")},
	category: categoryText(
		`.MuiBreadcrumbs-li a[href*="/article/"] span`,
	),
}

func (c *Coin68) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := c.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return c.extract(doc, link, coin68Rules, nil)
}
