package collector

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/LJTian/VnNewsHub/internal/logger"
)

// fixtureServer 按 RequestURI 返回固定页面，未登记的地址返回 404，并记录每个地址的请求次数
type fixtureServer struct {
	*httptest.Server
	mu    sync.Mutex
	pages map[string]string
	hits  map[string]int
}

func newFixtureServer(t *testing.T, pages map[string]string) *fixtureServer {
	t.Helper()
	fs := &fixtureServer{pages: pages, hits: make(map[string]int)}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.hits[r.URL.RequestURI()]++
		body, ok := fs.pages[r.URL.RequestURI()]
		fs.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, ".rss") || strings.Contains(r.URL.RawQuery, "_format=xml") {
			w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		} else {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fixtureServer) hit(uri string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[uri]
}

func testOptions(fs *fixtureServer) Options {
	return Options{BaseURL: fs.URL, Delay: NoDelay, Logger: logger.Discard()}
}

// readFixture 读取 testdata 下的页面
func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(b)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
