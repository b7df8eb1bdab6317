package collector

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// CafeF 抓取 cafef.vn "Đọc nhanh" 列表，多页翻页
type CafeF struct {
	site
}

func NewCafeF(opts Options) *CafeF {
	return &CafeF{site: newSite(siteConfig{
		name:            "cafef",
		source:          "cafef.vn",
		baseURL:         "https://cafef.vn",
		defaultCategory: "Đọc nhanh",
		minContent:      50,
		maxPages:        3,
	}, opts)}
}

// 文章链接以至少 15 位数字 ID 结尾，例如 -188251225205027358.chn
var reCafeFArticle = regexp.MustCompile(`-\d{15,}\.chn$`)

var cafefExcluded = []string{"/trang-", "/doc-nhanh.chn", "/static/", "/du-lieu/", "/video/"}

// isCafeFArticleURL 排除分类页、翻页链接、视频与数据页
func isCafeFArticleURL(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if !reCafeFArticle.MatchString(u.Path) {
		return false
	}
	for _, ex := range cafefExcluded {
		if strings.Contains(u.Path, ex) {
			return false
		}
	}
	return true
}

func (c *CafeF) listingURL(page int) string {
	if page <= 1 {
		return c.url("/doc-nhanh.chn")
	}
	return c.url(fmt.Sprintf("/doc-nhanh/trang-%d.chn", page))
}

func (c *CafeF) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	set := newURLSet(maxCount)
	err := c.paginate(ctx, 1, set, func(ctx context.Context, n int) ([]string, bool, error) {
		doc, err := c.fetchDoc(ctx, c.listingURL(n))
		if err != nil {
			return nil, false, err
		}
		return c.parseListing(doc), true, nil
	})
	if err != nil {
		return nil, err
	}
	return set.List(), nil
}

func (c *CafeF) parseListing(doc *goquery.Document) []string {
	var urls []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		link := c.abs(href)
		if link == "" || !c.sameSite(link) || !isCafeFArticleURL(link) {
			return
		}
		urls = append(urls, link)
	})
	return urls
}

var cafefRules = articleRules{
	title:   []string{"h1.title", "h1"},
	date:    dateText(parseDMY, `span.pdate[data-role="publishdate"]`, "span.pdate"),
	content: []string{".detail-content", ".contentdetail", ".detail_content", "article .content"},
	noise:   []string{"script", "style", ".link-source-wrapper", ".VCSortableInPreviewMode[type=RelatedNewsBox]"},
	filters: []paragraphFilter{withoutMarkers("Link bài gốc", "Lấy link!")},
	category: anyCategory(
		categoryText(`a[data-role="cate-name"]`),
		func(doc *goquery.Document) string {
			return firstAttr(doc.Selection, "title", `a[data-role="cate-name"]`)
		},
	),
}

func (c *CafeF) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := c.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return c.extract(doc, link, cafefRules, nil)
}
