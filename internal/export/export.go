// Package export 把一批文章写成 CSV / JSON 文件，供离线分析与 --no-db 模式使用
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/LJTian/VnNewsHub/internal/news"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// header 与入库字段一一对应，顺序固定
var header = []string{
	"published_at", "title", "link", "content", "source",
	"stock_related", "sentiment_score", "server_pushed", "category",
}

// ParseFormats 解析 "csv,json" 形式的列表，去重并保持顺序；空串表示不导出
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		if f != CSV && f != JSON {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// FileName 生成 {name}_{YYYYmmdd_HHMMSS}.{ext}
func FileName(name string, at time.Time, f Format) string {
	return fmt.Sprintf("%s_%s.%s", name, at.Format("20060102_150405"), f)
}

type Exporter struct {
	Dir string
	// Now 可替换，测试中固定时间戳
	Now func() time.Time
}

func New(dir string) *Exporter {
	return &Exporter{Dir: dir, Now: time.Now}
}

// record 是导出的单行结构，字段名与 CSV 表头一致
type record struct {
	PublishedAt    int64  `json:"published_at"`
	Title          string `json:"title"`
	Link           string `json:"link"`
	Content        string `json:"content"`
	Source         string `json:"source"`
	StockRelated   string `json:"stock_related"`
	SentimentScore string `json:"sentiment_score"`
	ServerPushed   bool   `json:"server_pushed"`
	Category       string `json:"category"`
}

func toRecord(a news.Article) record {
	r := record{
		PublishedAt:    a.PublishedAt,
		Title:          a.Title,
		Link:           a.Link,
		Content:        a.Content,
		Source:         a.Source,
		StockRelated:   a.StockRelated,
		SentimentScore: a.SentimentScore,
		ServerPushed:   a.ServerPushed,
		Category:       a.Category,
	}
	if r.StockRelated == "" {
		r.StockRelated = news.NA
	}
	if r.SentimentScore == "" {
		r.SentimentScore = news.NA
	}
	return r
}

// ExportBatch 写出一个文件并返回其路径；文章为空时不写文件，返回空路径
func (e *Exporter) ExportBatch(articles []news.Article, f Format, name string) (string, error) {
	if len(articles) == 0 {
		return "", nil
	}
	if f != CSV && f != JSON {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create %s: %w", e.Dir, err)
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	path := filepath.Join(e.Dir, FileName(name, now(), f))

	// 先写临时文件再改名，避免半截文件
	tmp, err := os.CreateTemp(e.Dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	defer os.Remove(tmp.Name())

	switch f {
	case CSV:
		err = writeCSV(tmp, articles)
	case JSON:
		err = writeJSON(tmp, articles)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}

// writeCSV 带 UTF-8 BOM，Excel 打开越南语不乱码
func writeCSV(f *os.File, articles []news.Article) error {
	if _, err := f.WriteString("\ufeff"); err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, a := range articles {
		r := toRecord(a)
		row := []string{
			strconv.FormatInt(r.PublishedAt, 10),
			r.Title,
			r.Link,
			r.Content,
			r.Source,
			r.StockRelated,
			r.SentimentScore,
			strconv.FormatBool(r.ServerPushed),
			r.Category,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(f *os.File, articles []news.Article) error {
	records := make([]record, 0, len(articles))
	for _, a := range articles {
		records = append(records, toRecord(a))
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
