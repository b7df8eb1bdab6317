package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LJTian/VnNewsHub/internal/news"
	_ "modernc.org/sqlite"
)

// SQLiteStore 用于本地运行与测试，语义与 Postgres 实现一致：title 唯一，冲突时忽略
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	// SQLite 单写者，串行化连接避免 database is locked
	db.SetMaxOpenConns(1)

	if _, _, err := RunSQLiteMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Exists(ctx context.Context, title string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM news WHERE title = ? LIMIT 1`, title).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: exists: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, a news.Article) (bool, error) {
	rec := newRecord(a)
	var extra any
	if len(rec.ExtraData) > 0 {
		bs, err := json.Marshal(rec.ExtraData)
		if err != nil {
			return false, fmt.Errorf("storage: marshal extra: %w", err)
		}
		extra = string(bs)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO news (
			id, published_at, title, link, content, source,
			stock_related, sentiment_score, server_pushed, category, extra_data, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (title) DO NOTHING
	`, rec.ID, rec.PublishedAt, rec.Title, rec.Link, rec.Content, rec.Source,
		rec.StockRelated, rec.SentimentScore, rec.ServerPushed, rec.Category, extra, time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("storage: insert %q: %w", rec.Title, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: insert %q: %w", rec.Title, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) ListNews(ctx context.Context, f ListFilter) ([]News, error) {
	f = f.normalized()

	var (
		where []string
		args  []any
	)
	if f.Source != "" {
		where = append(where, "source = ?")
		args = append(args, f.Source)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	query := `SELECT id, published_at, title, link, content, source,
		stock_related, sentiment_score, server_pushed, category, COALESCE(extra_data, ''), created_at
		FROM news`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY published_at DESC, created_at DESC, rowid DESC LIMIT ?"
	args = append(args, f.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: list news: %w", err)
	}
	defer rows.Close()

	var list []News
	for rows.Next() {
		var (
			n       News
			extra   string
			created int64
		)
		if err := rows.Scan(&n.ID, &n.PublishedAt, &n.Title, &n.Link, &n.Content, &n.Source,
			&n.StockRelated, &n.SentimentScore, &n.ServerPushed, &n.Category, &extra, &created); err != nil {
			return nil, fmt.Errorf("storage: scan news: %w", err)
		}
		if extra != "" {
			_ = json.Unmarshal([]byte(extra), &n.ExtraData)
		}
		n.CreatedAt = time.Unix(created, 0)
		n.UpdatedAt = n.CreatedAt
		list = append(list, n)
	}
	return list, rows.Err()
}

// Count 返回已入库条数
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: count: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
