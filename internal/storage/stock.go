package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// UpdateStockRelated 写入文章关联的股票代码，多个代码以逗号分隔
func (s *Store) UpdateStockRelated(ctx context.Context, id, tags string) error {
	tags = NormalizeStockTags(tags)
	if tags == "" {
		tags = news.NA
	}
	res := s.DB.WithContext(ctx).Model(&News{}).Where("id = ?", id).Update("stock_related", tags)
	if res.Error != nil {
		return fmt.Errorf("storage: update stock_related: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NormalizeStockTags 规范为大写的 HOSE/HNX 代码列表（3 位字母，例如 "VNM,FPT"），
// 去重并丢弃无法识别的项
func NormalizeStockTags(tags string) string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 4)
	for _, t := range strings.Split(tags, ",") {
		code := NormalizeStockCode(t)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return strings.Join(out, ",")
}

// NormalizeStockCode 单个代码：3 位字母（部分权证带数字，允许 3~4 位字母数字）
func NormalizeStockCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 3 || len(code) > 4 {
		return ""
	}
	for _, c := range code {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return ""
		}
	}
	if code[0] < 'A' || code[0] > 'Z' {
		return ""
	}
	return code
}
