package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// Gateway 是 Runner 与 API 使用的存储能力
type Gateway interface {
	Exists(ctx context.Context, title string) (bool, error)
	Insert(ctx context.Context, a news.Article) (bool, error)
	ListNews(ctx context.Context, f ListFilter) ([]News, error)
	Close() error
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

var ErrUnknownDriver = errors.New("storage: unknown driver")

// OpenOptions 对应配置中的存储相关项
type OpenOptions struct {
	Driver      string
	PostgresDSN string
	SQLitePath  string
	RedisAddr   string
}

func Open(opts OpenOptions) (Gateway, error) {
	switch opts.Driver {
	case DriverPostgres, "":
		if opts.PostgresDSN == "" {
			return nil, fmt.Errorf("storage: postgres driver requires POSTGRES_DSN")
		}
		s, err := NewStore(opts.PostgresDSN, opts.RedisAddr)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		s, err := NewSQLiteStore(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

var (
	_ Gateway = (*Store)(nil)
	_ Gateway = (*SQLiteStore)(nil)
	_ Gateway = (*MemoryStore)(nil)
)
