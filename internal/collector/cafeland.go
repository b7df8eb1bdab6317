package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// Cafeland 抓取 cafeland.vn 房地产最新列表
type Cafeland struct {
	site
}

func NewCafeland(opts Options) *Cafeland {
	return &Cafeland{site: newSite(siteConfig{
		name:            "cafeland",
		source:          "cafeland.vn",
		baseURL:         "https://cafeland.vn",
		defaultCategory: "Bất động sản",
		minContent:      50,
		maxPages:        2,
	}, opts)}
}

func (c *Cafeland) listingURL(page int) string {
	if page <= 1 {
		return c.url("/bat-dong-san-moi-nhat/")
	}
	return c.url(fmt.Sprintf("/bat-dong-san-moi-nhat/page/%d/", page))
}

func (c *Cafeland) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	set := newURLSet(maxCount)
	err := c.paginate(ctx, 1, set, func(ctx context.Context, n int) ([]string, bool, error) {
		doc, err := c.fetchDoc(ctx, c.listingURL(n))
		if err != nil {
			return nil, false, err
		}
		var urls []string
		doc.Find("li.loadBoxHomeMore").Each(func(_ int, item *goquery.Selection) {
			a := item.Find("h3 a").First()
			href, _ := a.Attr("href")
			if link := c.abs(href); link != "" && textOf(a) != "" {
				urls = append(urls, link)
			}
		})
		return urls, true, nil
	})
	if err != nil {
		return nil, err
	}
	return set.List(), nil
}

// cafelandParagraph 过滤只有 <em> 的图片说明、javascript 链接、"Click vào" 提示和 ">> Xem thêm" 导航
func cafelandParagraph(text string, p *goquery.Selection) bool {
	if goquery.NodeName(p) != "p" {
		return true
	}
	if children := p.Find("*"); children.Length() == 1 && children.Is("em") {
		return false
	}
	if p.Find(`a[href^="javascript:"]`).Length() > 0 || strings.Contains(text, "Click vào") {
		return false
	}
	if strings.HasPrefix(text, ">>") || strings.Contains(text, "Xem thêm") {
		if p.Find("strong a").Length() > 0 {
			return false
		}
	}
	return true
}

var cafelandRules = articleRules{
	title:      []string{"h1.sevenPostTitle", "h1"},
	date:       dateText(parseDMY, "div.info-date.right"),
	lead:       []string{"div.sevenPostDes"},
	content:    []string{"#sevenBoxNewContentInfo", "#sevenBoxNewContentInfoNo", "#sevenBoxNewContenDAtInfo", "div.sevenPostContent"},
	paragraphs: "h2, h3, h4, h5, h6, p",
	noise:      []string{"div.sevenPostDes", "script", "style"},
	filters:    []paragraphFilter{cafelandParagraph},
	fallback:   []string{"div.sevenPostDes"},
	category:   categoryBreadcrumb(`a[itemprop="item"] span[itemprop="name"]`, 1),
}

func (c *Cafeland) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := c.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return c.extract(doc, link, cafelandRules, nil)
}
