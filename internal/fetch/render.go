package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const renderTimeout = 60 * time.Second

// RenderClient 调用 cmd/browser-scraper 的 /render 接口，获取 JS 渲染后的 HTML
type RenderClient struct {
	endpoint string
	http     *http.Client
}

type renderRequest struct {
	URL          string `json:"url"`
	WaitSelector string `json:"waitSelector,omitempty"`
}

type renderResponse struct {
	OK    bool   `json:"ok"`
	HTML  string `json:"html,omitempty"`
	Error string `json:"error,omitempty"`
}

func NewRenderClient(baseURL string) *RenderClient {
	return &RenderClient{
		endpoint: strings.TrimRight(baseURL, "/") + "/render",
		http:     &http.Client{Timeout: renderTimeout},
	}
}

func (r *RenderClient) Render(ctx context.Context, pageURL, waitSelector string) (string, error) {
	payload, err := json.Marshal(renderRequest{URL: pageURL, WaitSelector: waitSelector})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("render: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("render: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("render: %w", &StatusError{URL: r.endpoint, Code: resp.StatusCode})
	}

	var out renderResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 16<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("render: decode response: %w", err)
	}
	if !out.OK {
		return "", fmt.Errorf("render: %s: %s", pageURL, out.Error)
	}
	return out.HTML, nil
}
