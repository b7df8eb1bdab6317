package storage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/LJTian/VnNewsHub/internal/news"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 以下方法服务于入库之后的情感分析与推送流程

// UpdateSentiment 写入情感分，score 取值 [-1, 1]
func (s *Store) UpdateSentiment(ctx context.Context, id string, score float64) error {
	if score < -1 || score > 1 {
		return fmt.Errorf("storage: sentiment score %v out of range", score)
	}
	res := s.DB.WithContext(ctx).Model(&News{}).Where("id = ?", id).
		Update("sentiment_score", strconv.FormatFloat(score, 'f', 4, 64))
	if res.Error != nil {
		return fmt.Errorf("storage: update sentiment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkServerPushed 标记一批文章已推送，返回实际更新条数
func (s *Store) MarkServerPushed(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.DB.WithContext(ctx).Model(&News{}).Where("id IN ?", ids).Update("server_pushed", true)
	if res.Error != nil {
		return 0, fmt.Errorf("storage: mark pushed: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ListPendingPush 返回已有情感分、尚未推送的文章
func (s *Store) ListPendingPush(ctx context.Context, limit int) ([]News, error) {
	if limit <= 0 {
		limit = 100
	}
	var list []News
	silent := s.DB.Session(&gorm.Session{Logger: s.DB.Logger.LogMode(logger.Silent)})
	err := silent.WithContext(ctx).
		Where("server_pushed = ? AND sentiment_score <> ?", false, news.NA).
		Order("published_at ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
