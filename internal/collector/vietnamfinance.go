package collector

import (
	"context"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// VietnamFinance 抓取 vietnamfinance.vn 首页次要栏目
type VietnamFinance struct {
	site
}

func NewVietnamFinance(opts Options) *VietnamFinance {
	return &VietnamFinance{site: newSite(siteConfig{
		name:            "vietnamfinance",
		source:          "vietnamfinance.vn",
		baseURL:         "https://vietnamfinance.vn",
		defaultCategory: "Finance",
		minContent:      100,
	}, opts)}
}

func (v *VietnamFinance) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	return v.scanLinks(ctx, v.url("/"), ".section-secondary__left .articles a[href]", maxCount, func(link string) bool {
		return strings.Contains(link, ".html")
	})
}

// vietnamfinanceParagraph 只取正文容器的直接子段落
func vietnamfinanceParagraph(_ string, p *goquery.Selection) bool {
	return p.Parent().Is("#explus-editor")
}

var vietnamfinanceRules = articleRules{
	title:    []string{"h1.detail-title"},
	date:     dateScan(parseDMY, "span"),
	lead:     []string{".detail-sapo"},
	content:  []string{"#news_detail #explus-editor"},
	filters:  []paragraphFilter{vietnamfinanceParagraph, longerThan(20)},
	category: categoryText(".breadcrumb-item a.breadcrumb-link"),
}

func (v *VietnamFinance) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := v.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return v.extract(doc, link, vietnamfinanceRules, nil)
}
