package collector

import (
	"context"
	"regexp"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// XayDungChinhSach 抓取 xaydungchinhsach.chinhphu.vn 首页，模板与 baochinhphu 同源
type XayDungChinhSach struct {
	site
}

func NewXayDungChinhSach(opts Options) *XayDungChinhSach {
	return &XayDungChinhSach{site: newSite(siteConfig{
		name:            "xaydungchinhsach",
		source:          "xaydungchinhsach.chinhphu.vn",
		baseURL:         "https://xaydungchinhsach.chinhphu.vn",
		defaultCategory: "Policy",
	}, opts)}
}

// 文章 id 至少 10 位数字
var reXDCSArticleID = regexp.MustCompile(`\d{10,}`)

func isXDCSArticleURL(link string) bool {
	return strings.Contains(link, ".htm") && reXDCSArticleID.MatchString(link)
}

func (x *XayDungChinhSach) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	return x.scanLinks(ctx, x.url("/"), "a[title][href]", maxCount, isXDCSArticleURL)
}

var xaydungchinhsachRules = articleRules{
	title:      []string{`h1[data-role="title"]`, "h1.title", "h1"},
	date:       dateText(parseDMY, `p[data-role="publishdate"]`, "p.days"),
	lead:       []string{`h2[data-role="sapo"]`, ".detail-sapo"},
	content:    []string{`div[data-role="content"]`, ".detail-content.afcbc-body"},
	paragraphs: "p, h2, h3, h4",
	filters:    []paragraphFilter{longerThan(30), withoutMarkersFold("nguồn:", "tham khảo thêm", "toàn văn:", "---")},
	category:   categoryText(`.list-cate a[data-role="cate-name"]`, ".list-cate a.item-cate"),
}

func (x *XayDungChinhSach) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := x.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return x.extract(doc, link, xaydungchinhsachRules, nil)
}
