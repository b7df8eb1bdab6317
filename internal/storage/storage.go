package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/LJTian/VnNewsHub/internal/processor"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// News 对应 news 表，title 唯一，是入库的幂等键
type News struct {
	ID             string            `gorm:"primaryKey;size:36" json:"id"`
	PublishedAt    int64             `gorm:"index" json:"published_at"`
	Title          string            `gorm:"size:512;uniqueIndex" json:"title"`
	Link           string            `gorm:"size:1024" json:"link"`
	Content        string            `gorm:"type:text" json:"content"`
	Source         string            `gorm:"size:64;index" json:"source"`
	StockRelated   string            `gorm:"size:256;default:NA" json:"stock_related"`
	SentimentScore string            `gorm:"size:32;default:NA" json:"sentiment_score"`
	ServerPushed   bool              `gorm:"index" json:"server_pushed"`
	Category       string            `gorm:"size:128;index" json:"category"`
	ExtraData      datatypes.JSONMap `gorm:"type:jsonb" json:"extra_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Article 转回统一的文章结构
func (n News) Article() news.Article {
	return news.Article{
		PublishedAt:    n.PublishedAt,
		Title:          n.Title,
		Link:           n.Link,
		Content:        n.Content,
		Source:         n.Source,
		StockRelated:   n.StockRelated,
		SentimentScore: n.SentimentScore,
		ServerPushed:   n.ServerPushed,
		Category:       n.Category,
		Extra:          map[string]any(n.ExtraData),
	}
}

func newRecord(a news.Article) News {
	stock := a.StockRelated
	if stock == "" {
		stock = news.NA
	}
	score := a.SentimentScore
	if score == "" {
		score = news.NA
	}
	return News{
		ID:             uuid.NewString(),
		PublishedAt:    a.PublishedAt,
		Title:          truncateRunesDB(toValidUTF8(a.Title), news.MaxTitleRunes),
		Link:           truncateRunesDB(toValidUTF8(a.Link), 1024),
		Content:        toValidUTF8(a.Content),
		Source:         a.Source,
		StockRelated:   stock,
		SentimentScore: score,
		ServerPushed:   a.ServerPushed,
		Category:       truncateRunesDB(toValidUTF8(a.Category), 128),
		ExtraData:      datatypes.JSONMap(a.Extra),
	}
}

// ListFilter 是各存储实现共用的查询条件
type ListFilter struct {
	Source   string
	Category string
	Limit    int
}

func (f ListFilter) normalized() ListFilter {
	if f.Limit <= 0 || f.Limit > 1000 {
		f.Limit = 20
	}
	f.Category = news.NormalizeCategory(f.Category)
	return f
}

// ErrNotFound 更新的记录不存在
var ErrNotFound = errors.New("storage: record not found")

// Redis 中已入库标题（sha1）的集合，用于 Exists 快速判断
const seenTitlesKey = "news:titles"

const listCacheTTL = 5 * time.Minute

// Store 是 Postgres 实现；Redis 可选，用作已见标题集合与列表缓存
type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewStore(dsn, redisAddr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&News{}); err != nil {
		return nil, err
	}

	s := &Store{DB: db}
	if redisAddr == "" {
		return s, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}
	s.Redis = rdb

	return s, nil
}

// toValidUTF8 将字符串规范为合法 UTF-8，避免 PostgreSQL invalid byte sequence 错误
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// truncateRunesDB 按 rune 数截断字符串，确保不会超过数据库字段长度
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// Exists 先查 Redis 集合，未命中再查库；只是提前跳过的优化，唯一性由 Insert 保证
func (s *Store) Exists(ctx context.Context, title string) (bool, error) {
	if s.Redis != nil {
		if ok, err := s.Redis.SIsMember(ctx, seenTitlesKey, processor.HashTitle(title)).Result(); err == nil && ok {
			return true, nil
		}
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&News{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return false, fmt.Errorf("storage: exists: %w", err)
	}
	return count > 0, nil
}

// Insert 单条插入，各自一个事务；标题冲突时返回 false, nil
func (s *Store) Insert(ctx context.Context, a news.Article) (bool, error) {
	rec := newRecord(a)
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "title"}}, DoNothing: true}).
		Create(&rec)
	if res.Error != nil {
		return false, fmt.Errorf("storage: insert %q: %w", rec.Title, res.Error)
	}
	if s.Redis != nil {
		_ = s.Redis.SAdd(ctx, seenTitlesKey, processor.HashTitle(rec.Title)).Err()
	}
	return res.RowsAffected > 0, nil
}

// ListNews 按来源、分类返回最新文章，并使用 Redis 做简单缓存
func (s *Store) ListNews(ctx context.Context, f ListFilter) ([]News, error) {
	f = f.normalized()
	cacheKey := fmt.Sprintf("news:list:%s:%s:%d", f.Source, f.Category, f.Limit)

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []News
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var list []News
	db := s.DB.WithContext(ctx).Model(&News{})
	if f.Source != "" {
		db = db.Where("source = ?", f.Source)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if err := db.Order("published_at DESC").Order("created_at DESC").Limit(f.Limit).Find(&list).Error; err != nil {
		return nil, err
	}

	// 回写缓存，依赖短 TTL 自然过期
	if s.Redis != nil && len(list) > 0 {
		if bs, err := json.Marshal(list); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, listCacheTTL).Err()
		}
	}

	return list, nil
}

// Close 关闭数据库连接与 Redis
func (s *Store) Close() error {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
