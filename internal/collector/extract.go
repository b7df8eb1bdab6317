package collector

import (
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/PuerkitoBio/goquery"
)

// 站点改版后选择器会失效，同一站点的长文/专题页结构也不同，
// 所以标题、正文、分类都按优先级依次尝试多个选择器，取第一个非空结果。

func textOf(sel *goquery.Selection) string {
	return news.CleanText(sel.Text())
}

// firstText 返回第一个有非空文本的选择器结果
func firstText(root *goquery.Selection, selectors ...string) string {
	for _, q := range selectors {
		if t := textOf(root.Find(q).First()); t != "" {
			return t
		}
	}
	return ""
}

// firstAttr 返回第一个有非空属性值的选择器结果
func firstAttr(root *goquery.Selection, attr string, selectors ...string) string {
	for _, q := range selectors {
		if v, ok := root.Find(q).First().Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// firstContainer 返回第一个存在且有文本的正文容器
func firstContainer(root *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, q := range selectors {
		sel := root.Find(q).First()
		if sel.Length() > 0 && textOf(sel) != "" {
			return sel
		}
	}
	return nil
}

func metaContent(doc *goquery.Document, property string) string {
	v, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	if v == "" {
		v, _ = doc.Find(`meta[name="` + property + `"]`).First().Attr("content")
	}
	return strings.TrimSpace(v)
}

// paragraphFilter 返回 false 的段落会被丢弃
type paragraphFilter func(text string, p *goquery.Selection) bool

// collectParagraphs 收集容器内匹配 selector 的段落，过滤样板文字后以空格拼接
func collectParagraphs(container *goquery.Selection, selector string, filters ...paragraphFilter) string {
	if container == nil {
		return ""
	}
	parts := make([]string, 0, 16)
	container.Find(selector).Each(func(_ int, p *goquery.Selection) {
		t := textOf(p)
		if t == "" {
			return
		}
		for _, keep := range filters {
			if !keep(t, p) {
				return
			}
		}
		parts = append(parts, t)
	})
	return strings.Join(parts, " ")
}

// dropNoise 删除容器内的广告、相关阅读、图片说明等节点
func dropNoise(container *goquery.Selection, selectors ...string) {
	if container == nil {
		return
	}
	for _, q := range selectors {
		container.Find(q).Remove()
	}
}

// withoutMarkers 丢弃包含任一样板标记的段落
func withoutMarkers(markers ...string) paragraphFilter {
	return func(text string, _ *goquery.Selection) bool {
		for _, m := range markers {
			if strings.Contains(text, m) {
				return false
			}
		}
		return true
	}
}

// withoutMarkersFold 同 withoutMarkers，但不区分大小写
func withoutMarkersFold(markers ...string) paragraphFilter {
	return func(text string, _ *goquery.Selection) bool {
		lt := strings.ToLower(text)
		for _, m := range markers {
			if strings.Contains(lt, m) {
				return false
			}
		}
		return true
	}
}

// longerThan 丢弃过短的段落（图片说明、署名等）
func longerThan(n int) paragraphFilter {
	return func(text string, _ *goquery.Selection) bool {
		return len([]rune(text)) > n
	}
}

// breadcrumb 返回面包屑第 idx 项（跳过 skip 中的首页类文字）
func breadcrumb(root *goquery.Selection, selector string, idx int, skip ...string) string {
	items := make([]string, 0, 4)
	root.Find(selector).Each(func(_ int, s *goquery.Selection) {
		t := textOf(s)
		if t == "" {
			return
		}
		lt := strings.ToLower(t)
		for _, sk := range skip {
			if lt == sk {
				return
			}
		}
		items = append(items, t)
	})
	if idx < len(items) {
		return items[idx]
	}
	return ""
}
