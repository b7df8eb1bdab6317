package news

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// UnknownPublishedAt 发布时间解析失败时的统一占位值
	UnknownPublishedAt int64 = 0
	// NA 未经后续流程填充的标签字段占位值
	NA = "NA"

	// 与 storage 中的列宽保持一致
	MaxTitleRunes   = 512
	MaxContentRunes = 50000
)

var (
	// ErrNotArticle 候选页面不是可用文章（标题缺失、正文过短等），属于正常噪声
	ErrNotArticle   = errors.New("not an article")
	ErrMissingTitle = fmt.Errorf("%w: missing title", ErrNotArticle)
	ErrMissingLink  = fmt.Errorf("%w: missing link", ErrNotArticle)
	ErrShortContent = fmt.Errorf("%w: content too short", ErrNotArticle)
)

// Article 是所有数据源统一产出的文章结构
type Article struct {
	PublishedAt    int64          `json:"published_at"`
	Title          string         `json:"title"`
	Link           string         `json:"link"`
	Content        string         `json:"content"`
	Source         string         `json:"source"`
	StockRelated   string         `json:"stock_related"`
	SentimentScore string         `json:"sentiment_score"`
	ServerPushed   bool           `json:"server_pushed"`
	Category       string         `json:"category"`
	Extra          map[string]any `json:"-"`
}

// Fields 是适配器抽取出的原始字段，经 New 校验后才成为 Article
type Fields struct {
	PublishedAt int64
	Title       string
	Link        string
	Content     string
	Source      string
	Category    string
	// DefaultCategory 在 Category 为空时使用
	DefaultCategory string
	Extra           map[string]any
}

// New 校验并规范化字段；minContent 为正文最少字符数（按 rune 计）。
// 过长的标题与正文在这里截断，之后的去重和入库都以截断后的标题为准。
func New(f Fields, minContent int) (Article, error) {
	title := truncateRunes(CleanText(f.Title), MaxTitleRunes)
	if title == "" {
		return Article{}, ErrMissingTitle
	}
	link := strings.TrimSpace(f.Link)
	if link == "" {
		return Article{}, ErrMissingLink
	}
	content := CleanText(f.Content)
	if n := utf8.RuneCountInString(content); n == 0 || n < minContent {
		return Article{}, fmt.Errorf("%w (%d < %d)", ErrShortContent, n, minContent)
	}
	content = truncateRunes(content, MaxContentRunes)

	category := NormalizeCategory(f.Category)
	if category == "" {
		category = NormalizeCategory(f.DefaultCategory)
	}

	publishedAt := f.PublishedAt
	if publishedAt < 0 {
		publishedAt = UnknownPublishedAt
	}

	return Article{
		PublishedAt:    publishedAt,
		Title:          title,
		Link:           link,
		Content:        content,
		Source:         f.Source,
		StockRelated:   NA,
		SentimentScore: NA,
		ServerPushed:   false,
		Category:       category,
		Extra:          f.Extra,
	}, nil
}

// NormalizeCategory 分类统一做 NFC、空白折叠与大写，全项目只在这里处理一次
func NormalizeCategory(s string) string {
	return strings.ToUpper(CleanText(s))
}

// CleanText 修正非法 UTF-8、做 NFC 规范化并折叠空白。
// 越南语站点常混用组合附加符号，不规范化会导致同一标题被当成两条。
func CleanText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes 按 rune 截断，不截断多字节字符；截断处的空白一并去掉
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit]))
}
