package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultDelay   = 2 * time.Second

	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8"
	acceptEncoding = "gzip, deflate, br"
	acceptLanguage = "en-IN,en-US;q=0.9,en;q=0.8,vi;q=0.7"

	ctxResponseKey = "fetch.response"
)

// ErrUnexpectedStatus 非 2xx 响应
var ErrUnexpectedStatus = errors.New("unexpected status code")

// StatusError 携带具体状态码，errors.Is(err, ErrUnexpectedStatus) 成立
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d (%s)", e.URL, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

type Options struct {
	Timeout time.Duration
	// Delay 每次请求前的固定等待
	Delay   time.Duration
	Referer string
	Headers map[string]string
	// Transport 为空时使用默认 Transport
	Transport http.RoundTripper
}

// Client 是单个数据源独占的抓取会话：一个 colly collector（含 cookie jar）加一个 Pacer。
// 不要在不同数据源之间共享。
type Client struct {
	collector *colly.Collector
	headers   http.Header
	pacer     *Pacer
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
		// 状态码由 Get 自己判断，保证 2xx 以外都算失败
		colly.ParseHTTPErrorResponse(),
	)
	c.SetRequestTimeout(opts.Timeout)
	c.WithTransport(newDecodingTransport(opts.Transport))

	c.OnResponse(func(r *colly.Response) {
		r.Ctx.Put(ctxResponseKey, r)
	})

	headers := http.Header{}
	headers.Set("User-Agent", userAgent)
	headers.Set("Accept", acceptHeader)
	headers.Set("Accept-Encoding", acceptEncoding)
	headers.Set("Accept-Language", acceptLanguage)
	if opts.Referer != "" {
		headers.Set("Referer", opts.Referer)
	}
	for k, v := range opts.Headers {
		headers.Set(k, v)
	}

	return &Client{
		collector: c,
		headers:   headers,
		pacer:     NewPacer(opts.Delay),
	}
}

// Get 先按 Pacer 等待，然后发出且只发出一次 GET，返回解码后的正文。
// colly 的请求不接收 ctx：ctx 取消时 Get 立即返回 ctx.Err()，
// 在途请求留在后台，最多持续到 Timeout，结果被丢弃。
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return "", err
	}

	type result struct {
		body string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		body, err := c.get(rawURL)
		done <- result{body, err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("fetch: get %s: %w", rawURL, ctx.Err())
	case r := <-done:
		return r.body, r.err
	}
}

func (c *Client) get(rawURL string) (string, error) {
	cctx := colly.NewContext()
	if err := c.collector.Request(http.MethodGet, rawURL, nil, cctx, c.headers.Clone()); err != nil {
		return "", fmt.Errorf("fetch: get %s: %w", rawURL, err)
	}

	resp, _ := cctx.GetAny(ctxResponseKey).(*colly.Response)
	if resp == nil {
		return "", fmt.Errorf("fetch: get %s: no response", rawURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch: %w", &StatusError{URL: rawURL, Code: resp.StatusCode})
	}
	return string(resp.Body), nil
}

// Pace 只做节流等待，供不经过 Get 的请求（例如浏览器渲染）使用
func (c *Client) Pace(ctx context.Context) error {
	return c.pacer.Wait(ctx)
}

func (c *Client) Delay() time.Duration {
	return c.pacer.Delay()
}

// SetCookie 把 cookie 写入会话，作用于 rawURL 所在主机的全部路径
func (c *Client) SetCookie(rawURL, name, value string) error {
	if _, err := url.Parse(rawURL); err != nil {
		return fmt.Errorf("fetch: set cookie: %w", err)
	}
	return c.collector.SetCookies(rawURL, []*http.Cookie{{
		Name:  name,
		Value: value,
		Path:  "/",
	}})
}

func (c *Client) Cookies(rawURL string) []*http.Cookie {
	return c.collector.Cookies(rawURL)
}
