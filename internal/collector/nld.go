package collector

import (
	"context"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// NLD 抓取 nld.com.vn "Tin 24h"
type NLD struct {
	site
}

func NewNLD(opts Options) *NLD {
	return &NLD{site: newSite(siteConfig{
		name:            "nld",
		source:          "nld.com.vn",
		baseURL:         "https://nld.com.vn",
		defaultCategory: "Tin 24h",
		minContent:      50,
		maxPages:        1,
	}, opts)}
}

// 列表页结构经常变化，依次尝试，第一个能产出链接的选择器生效
var nldListingSelectors = []string{"article a", ".article-item a", ".news-item a", "h3 a", "h2 a", ".box-category-item a"}

func isNLDArticleURL(link string) bool {
	return strings.Contains(link, ".htm") && !strings.Contains(link, "/tin-24h")
}

func (n *NLD) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	if maxCount <= 0 {
		return nil, nil
	}
	doc, err := n.fetchDoc(ctx, n.url("/tin-24h.htm"))
	if err != nil {
		return nil, err
	}
	for _, q := range nldListingSelectors {
		set := newURLSet(maxCount)
		doc.Find(q).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if link := n.abs(href); link != "" && n.sameSite(link) && isNLDArticleURL(link) {
				set.Add(link)
			}
		})
		if len(set.List()) > 0 {
			return set.List(), nil
		}
	}
	return nil, nil
}

var nldRules = articleRules{
	title: []string{"h1", ".article-title"},
	date: anyDate(
		dateAttr(parseISO, "datetime", `time[data-role="publishdate"]`),
		dateText(parseDMY, `time[data-role="publishdate"]`, `[data-role="publishdate"]`),
	),
	lead:     []string{`h2.detail-sapo`, `[data-role="sapo"]`},
	content:  []string{".detail-content", ".article-content", `[itemprop="articleBody"]`},
	noise:    []string{"script", "style", `.VCSortableInPreviewMode[type="RelatedNewsBox"]`},
	category: categoryText(`a.category-name_ac[data-role="cate-name"]`),
}

func (n *NLD) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := n.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return n.extract(doc, link, nldRules, nil)
}
