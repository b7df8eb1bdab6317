package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

type renderRequest struct {
	URL          string `json:"url"`
	WaitSelector string `json:"waitSelector"`
}

type renderResponse struct {
	OK    bool   `json:"ok"`
	HTML  string `json:"html,omitempty"`
	Error string `json:"error,omitempty"`
}

// renderFunc 打开页面并返回渲染后的 HTML
type renderFunc func(ctx context.Context, pageURL, waitSelector string) (string, error)

const renderTimeout = 45 * time.Second

func main() {
	// 创建浏览器执行器与顶层上下文，整个进程复用一个 headless 实例
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// 预热浏览器，避免首个请求耗时过长
	if err := chromedp.Run(browserCtx); err != nil {
		log.Printf("warn: warmup chromedp failed: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/render", renderHandler(chromeRenderer(browserCtx)))

	addr := ":" + getEnv("PORT", "4000")
	log.Printf("browser-scraper listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}

// chromeRenderer 每个请求在同一浏览器里开新标签页，用完即关
func chromeRenderer(browserCtx context.Context) renderFunc {
	// 同时打开的标签页过多时 Chrome 容易卡死，这里串行化
	var mu sync.Mutex
	return func(ctx context.Context, pageURL, waitSelector string) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		tabCtx, cancelTab := chromedp.NewContext(browserCtx)
		defer cancelTab()
		tabCtx, cancel := context.WithTimeout(tabCtx, renderTimeout)
		defer cancel()
		// 调用方断开时一并取消
		stop := context.AfterFunc(ctx, cancel)
		defer stop()

		if waitSelector == "" {
			waitSelector = "body"
		}
		var html string
		err := chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
			chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		)
		return html, err
	}
}

func renderHandler(render renderFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req renderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, renderResponse{OK: false, Error: "invalid json"})
			return
		}
		if u, err := url.Parse(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			writeJSON(w, http.StatusBadRequest, renderResponse{OK: false, Error: "url must be absolute http(s)"})
			return
		}

		start := time.Now()
		html, err := render(r.Context(), req.URL, req.WaitSelector)
		if err != nil {
			log.Printf("render error: %v (url=%s)", err, req.URL)
			writeJSON(w, http.StatusOK, renderResponse{OK: false, Error: err.Error()})
			return
		}
		if html == "" {
			writeJSON(w, http.StatusOK, renderResponse{OK: false, Error: "empty page"})
			return
		}
		log.Printf("rendered %s in %s (%d bytes)", req.URL, time.Since(start).Round(time.Millisecond), len(html))
		writeJSON(w, http.StatusOK, renderResponse{OK: true, HTML: html})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
