package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LJTian/VnNewsHub/internal/news"
	"github.com/LJTian/VnNewsHub/internal/storage"
	"github.com/gin-gonic/gin"
)

type recordingTrigger struct {
	names []string
}

func (r *recordingTrigger) RunSource(name string) { r.names = append(r.names, name) }

type failingLister struct{}

func (failingLister) ListNews(context.Context, storage.ListFilter) ([]storage.News, error) {
	return nil, errors.New("db down")
}

func newTestEngine(t *testing.T, lister NewsLister, trigger Trigger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewServer(lister, trigger, []string{"vnexpress", "cafef"}).RegisterRoutes(r)
	return r
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, r http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	var body envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body %q: %v", w.Body.String(), err)
		}
	}
	return w, body
}

func TestListNewsFilters(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	for _, a := range []news.Article{
		{PublishedAt: 2, Title: "Cổ phiếu ngân hàng", Source: "cafef.vn", Category: "CHỨNG KHOÁN"},
		{PublishedAt: 1, Title: "Thời tiết Hà Nội", Source: "vnexpress.net", Category: "THỜI SỰ"},
	} {
		if _, err := store.Insert(ctx, a); err != nil {
			t.Fatalf("Insert error: %v", err)
		}
	}
	r := newTestEngine(t, store, nil)

	w, body := doRequest(t, r, http.MethodGet, "/api/v1/news?source=cafef.vn")
	if w.Code != http.StatusOK || body.Code != "ok" {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
	var items []storage.News
	if err := json.Unmarshal(body.Data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Cổ phiếu ngân hàng" {
		t.Fatalf("unexpected items %+v", items)
	}

	_, body = doRequest(t, r, http.MethodGet, "/api/v1/news?category=th%E1%BB%9Di%20s%E1%BB%B1&limit=abc")
	items = nil
	if err := json.Unmarshal(body.Data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 1 || items[0].Source != "vnexpress.net" {
		t.Fatalf("category filter: %+v", items)
	}

	_, body = doRequest(t, r, http.MethodGet, "/api/v1/news?source=vov.vn")
	if string(body.Data) != "[]" {
		t.Fatalf("empty result should be [], got %s", body.Data)
	}
}

func TestListNewsStoreError(t *testing.T) {
	w, body := doRequest(t, newTestEngine(t, failingLister{}, nil), http.MethodGet, "/api/v1/news")
	if w.Code != http.StatusInternalServerError || body.Code != "internal_error" {
		t.Fatalf("unexpected response %d %+v", w.Code, body)
	}
}

func TestCollectTriggersSource(t *testing.T) {
	trigger := &recordingTrigger{}
	r := newTestEngine(t, storage.NewMemoryStore(), trigger)

	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/collect/cafef")
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d", w.Code)
	}
	// 已注册但未启用的来源同样拒绝
	for _, name := range []string{"nope", "vov"} {
		if w, _ := doRequest(t, r, http.MethodPost, "/api/v1/collect/"+name); w.Code != http.StatusNotFound {
			t.Fatalf("%s: status = %d", name, w.Code)
		}
	}
	if len(trigger.names) != 1 || trigger.names[0] != "cafef" {
		t.Fatalf("trigger calls = %v", trigger.names)
	}
}

func TestCollectDisabledWithoutTrigger(t *testing.T) {
	w, _ := doRequest(t, newTestEngine(t, storage.NewMemoryStore(), nil), http.MethodPost, "/api/v1/collect/cafef")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSourcesAndHealth(t *testing.T) {
	r := newTestEngine(t, storage.NewMemoryStore(), nil)
	_, body := doRequest(t, r, http.MethodGet, "/api/v1/sources")
	if string(body.Data) != `["vnexpress","cafef"]` {
		t.Fatalf("sources = %s", body.Data)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
}
