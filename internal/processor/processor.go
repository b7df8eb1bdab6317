package processor

import (
	"crypto/sha1"
	"encoding/hex"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// Processor 在入库前对一批文章做跨来源去重。
// 同一篇通稿经常被多家站点转载，标题相同即视为同一条，保留先出现的。
// 标题长度已由 news.New 截断，这里不再改动文章。
type Processor struct{}

func New() *Processor {
	return &Processor{}
}

func (p *Processor) Process(items []news.Article) []news.Article {
	out := make([]news.Article, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, it := range items {
		id := HashTitle(it.Title)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, it)
	}

	return out
}

// HashTitle 对规范化后的标题取 sha1，用作 Redis 已见集合的成员。
// 不折叠大小写，与 title 列的唯一约束一致。
func HashTitle(title string) string {
	h := sha1.New()
	h.Write([]byte(news.CleanText(title)))
	return hex.EncodeToString(h.Sum(nil))
}
