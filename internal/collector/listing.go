package collector

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// urlSet 保序去重并限制数量，跨页共用同一个实例；max <= 0 时一开始就是满的
type urlSet struct {
	seen map[string]struct{}
	list []string
	max  int
}

func newURLSet(max int) *urlSet {
	return &urlSet{seen: make(map[string]struct{}), max: max}
}

// Add 返回是否为新 URL 且已加入；空串与已满时返回 false
func (s *urlSet) Add(u string) bool {
	if u == "" || s.Full() {
		return false
	}
	if _, ok := s.seen[u]; ok {
		return false
	}
	s.seen[u] = struct{}{}
	s.list = append(s.list, u)
	return true
}

func (s *urlSet) Full() bool {
	return len(s.list) >= s.max
}

func (s *urlSet) List() []string {
	return s.list
}

// listPage 抓取第 n 页，返回候选 URL 以及页面是否表明还有下一页
type listPage func(ctx context.Context, n int) (urls []string, more bool, err error)

// paginate 从 first 页开始逐页抓取，以下任一条件成立即停止且不再请求：
// 达到页数上限、页面表明没有更多页、本页没有贡献新 URL、已达到数量上限。
// 首页失败视为整个列表失败；后续页失败只记录日志并保留已有结果。
func (s *site) paginate(ctx context.Context, first int, set *urlSet, page listPage) error {
	for i := 0; i < s.cfg.maxPages && !set.Full(); i++ {
		n := first + i
		urls, more, err := page(ctx, n)
		if err != nil {
			if i == 0 {
				return err
			}
			s.log.Warn("listing page failed", "page", n, "err", err)
			return nil
		}
		added := 0
		for _, u := range urls {
			if set.Add(u) {
				added++
			}
		}
		s.log.Debug("listing page", "page", n, "found", len(urls), "new", added)
		if added == 0 || !more {
			return nil
		}
	}
	return nil
}

// scanLinks 抓取单个列表页，按选择器收集本站链接；keep 为各站点的 URL 过滤规则
func (s *site) scanLinks(ctx context.Context, pageURL, selector string, maxCount int, keep func(string) bool) ([]string, error) {
	if maxCount <= 0 {
		return nil, nil
	}
	doc, err := s.fetchDoc(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	set := newURLSet(maxCount)
	doc.Find(selector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		link := s.abs(href)
		if link != "" && s.sameSite(link) && (keep == nil || keep(link)) {
			set.Add(link)
		}
		return !set.Full()
	})
	return set.List(), nil
}
