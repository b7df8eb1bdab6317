package collector

import (
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// articleRules 描述一个站点文章页的抽取规则，各字段都是按优先级尝试的选择器链
type articleRules struct {
	title []string
	date  func(doc *goquery.Document) int64
	// lead 导语（sapo），拼接在正文之前
	lead []string
	// content 正文容器链，取第一个非空容器
	content []string
	// paragraphs 容器内的段落选择器，默认 "p"
	paragraphs string
	noise      []string
	filters    []paragraphFilter
	// fallback 正文为空时的兜底（例如页面描述）
	fallback []string
	category func(doc *goquery.Document) string
}

// extract 按规则抽取并构造文章；extra 为可选的附加元数据
func (s *site) extract(doc *goquery.Document, link string, r articleRules, extra map[string]any) (news.Article, error) {
	root := doc.Selection

	title := firstText(root, r.title...)

	var published int64
	if r.date != nil {
		published = r.date(doc)
	}

	parts := make([]string, 0, 2)
	if t := firstText(root, r.lead...); t != "" {
		parts = append(parts, t)
	}
	if container := firstContainer(root, r.content...); container != nil {
		dropNoise(container, r.noise...)
		sel := r.paragraphs
		if sel == "" {
			sel = "p"
		}
		if body := collectParagraphs(container, sel, r.filters...); body != "" {
			parts = append(parts, body)
		}
	}
	content := strings.Join(parts, " ")
	if content == "" {
		content = firstText(root, r.fallback...)
	}

	var category string
	if r.category != nil {
		category = r.category(doc)
	}

	return s.build(news.Fields{
		PublishedAt: published,
		Title:       title,
		Link:        link,
		Content:     content,
		Category:    category,
		Extra:       extra,
	})
}

// dateText 取第一个有文本的日期节点并用 parse 解析
func dateText(parse func(string) int64, selectors ...string) func(*goquery.Document) int64 {
	return func(doc *goquery.Document) int64 {
		return parse(firstText(doc.Selection, selectors...))
	}
}

// dateAttr 取第一个有属性值的日期节点并用 parse 解析
func dateAttr(parse func(string) int64, attr string, selectors ...string) func(*goquery.Document) int64 {
	return func(doc *goquery.Document) int64 {
		return parse(firstAttr(doc.Selection, attr, selectors...))
	}
}

// dateScan 扫描所有匹配节点，取第一个能解析出日期的文本
func dateScan(parse func(string) int64, selector string) func(*goquery.Document) int64 {
	return func(doc *goquery.Document) int64 {
		ts := news.UnknownPublishedAt
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			ts = parse(textOf(s))
			return ts == news.UnknownPublishedAt
		})
		return ts
	}
}

// anyDate 依次尝试多个日期来源
func anyDate(sources ...func(*goquery.Document) int64) func(*goquery.Document) int64 {
	return func(doc *goquery.Document) int64 {
		for _, src := range sources {
			if ts := src(doc); ts != news.UnknownPublishedAt {
				return ts
			}
		}
		return news.UnknownPublishedAt
	}
}

func categoryText(selectors ...string) func(*goquery.Document) string {
	return func(doc *goquery.Document) string {
		return firstText(doc.Selection, selectors...)
	}
}

func categoryMeta(property string) func(*goquery.Document) string {
	return func(doc *goquery.Document) string {
		return metaContent(doc, property)
	}
}

// categoryBreadcrumb 取面包屑第 idx 项
func categoryBreadcrumb(selector string, idx int, skip ...string) func(*goquery.Document) string {
	return func(doc *goquery.Document) string {
		return breadcrumb(doc.Selection, selector, idx, skip...)
	}
}

func anyCategory(sources ...func(*goquery.Document) string) func(*goquery.Document) string {
	return func(doc *goquery.Document) string {
		for _, src := range sources {
			if c := src(doc); c != "" {
				return c
			}
		}
		return ""
	}
}
