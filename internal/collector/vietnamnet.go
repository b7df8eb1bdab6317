package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// VietnamNet 抓取 vietnamnet.vn 当天的 "Tin tức 24h"，页码从 0 开始
type VietnamNet struct {
	site
	now func() time.Time
}

func NewVietnamNet(opts Options) *VietnamNet {
	return &VietnamNet{
		site: newSite(siteConfig{
			name:            "vietnamnet",
			source:          "vietnamnet.vn",
			baseURL:         "https://vietnamnet.vn",
			defaultCategory: "Tin tức",
			minContent:      50,
			maxPages:        3,
		}, opts),
		now: time.Now,
	}
}

func (v *VietnamNet) listingURL(page int) string {
	d := v.now().In(locVN).Format("02/01/2006")
	return v.url(fmt.Sprintf("/tin-tuc-24h-p%d?bydate=%s-%s&cate=", page, d, d))
}

func (v *VietnamNet) ListArticleURLs(ctx context.Context, maxCount int) ([]string, error) {
	set := newURLSet(maxCount)
	err := v.paginate(ctx, 0, set, func(ctx context.Context, n int) ([]string, bool, error) {
		doc, err := v.fetchDoc(ctx, v.listingURL(n))
		if err != nil {
			return nil, false, err
		}
		var urls []string
		doc.Find("div.horizontalPost.version-news").Each(func(_ int, post *goquery.Selection) {
			a := post.Find("h3.horizontalPost__main-title a").First()
			href, _ := a.Attr("href")
			link := v.abs(href)
			title := textOf(a)
			if title == "" {
				title, _ = a.Attr("title")
			}
			if link != "" && title != "" {
				urls = append(urls, link)
			}
		})
		return urls, vietnamnetHasNext(doc, n), nil
	})
	if err != nil {
		return nil, err
	}
	return set.List(), nil
}

// vietnamnetHasNext 页码组件不存在或没有数字页码则没有下一页；页面显示的页码从 1 开始，
// 当前页 page+1 已是最大页码时停止
func vietnamnetHasNext(doc *goquery.Document, page int) bool {
	pagination := doc.Find("div.pagination ul.pagination__list").First()
	if pagination.Length() == 0 {
		return false
	}
	maxNum := 0
	pagination.Find("li.pagination__list-item:not(.pagination-next) a").Each(func(_ int, a *goquery.Selection) {
		if n, err := strconv.Atoi(textOf(a)); err == nil && n > maxNum {
			maxNum = n
		}
	})
	return maxNum > 0 && page+1 < maxNum
}

var vietnamnetHome = []string{"trang chủ", "home", "vietnamnet"}

// vietnamnetCategory 取去掉首页后的第一级面包屑；面包屑无分类时，取日期旁边形如 "/thoi-su" 的短链接
func vietnamnetCategory(doc *goquery.Document) string {
	if c := breadcrumb(doc.Selection, "ul.breadcrumb li a, .breadcrumb a, .bread-crumb a", 0, vietnamnetHome...); c != "" {
		return c
	}
	var found string
	doc.Find("div.bread-crumb-detail__time").Parent().Find("a[title]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.HasPrefix(href, "/") && strings.Count(href, "/") == 1 && len(href) < 30 {
			found = textOf(a)
			if found == "" {
				found, _ = a.Attr("title")
			}
			return false
		}
		return true
	})
	return found
}

var vietnamnetRules = articleRules{
	title:    []string{"h1.content-detail-title", "h1"},
	date:     dateText(parseDMY, "div.bread-crumb-detail__time", "span.time"),
	content:  []string{"div.maincontent", "div.article-content"},
	noise:    []string{"script", "style", "figure", ".article-relate"},
	category: vietnamnetCategory,
}

func (v *VietnamNet) FetchArticle(ctx context.Context, link string) (news.Article, error) {
	doc, err := v.fetchDoc(ctx, link)
	if err != nil {
		return news.Article{}, err
	}
	return v.extract(doc, link, vietnamnetRules, nil)
}
