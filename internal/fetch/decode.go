package fetch

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
)

// decodingTransport 在 colly 之前完成内容解码：
// 按 Content-Encoding 尝试 br / gzip / deflate，失败则保留原始字节；
// 正文已是合法 UTF-8 时把 charset 改写为 utf-8，避免被错误标注的站点转码成乱码。
type decodingTransport struct {
	base http.RoundTripper
}

func newDecodingTransport(base http.RoundTripper) *decodingTransport {
	if base == nil {
		base = http.DefaultTransport.(*http.Transport).Clone()
	}
	return &decodingTransport{base: base}
}

func (t *decodingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}

	body := decodeBody(raw, resp.Header.Get("Content-Encoding"))

	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = int64(len(body))
	resp.Uncompressed = true
	if utf8.Valid(body) {
		if ct := resp.Header.Get("Content-Type"); ct != "" {
			resp.Header.Set("Content-Type", forceUTF8(ct))
		}
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// decodeBody 不会返回错误：任何一步解码失败都退回上一步的结果
func decodeBody(raw []byte, encoding string) []byte {
	enc := strings.ToLower(encoding)
	body := raw

	if strings.Contains(enc, "br") {
		if out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body))); err == nil && len(out) > 0 {
			body = out
		}
	}
	if strings.Contains(enc, "gzip") || isGzip(body) {
		if out, ok := gunzip(body); ok {
			body = out
		}
	}
	if strings.Contains(enc, "deflate") {
		if out, ok := inflate(body); ok {
			body = out
		}
	}
	// 部分站点会重复压缩
	if isGzip(body) {
		if out, ok := gunzip(body); ok {
			body = out
		}
	}
	return body
}

func isGzip(b []byte) bool {
	return len(b) > 2 && b[0] == 0x1f && b[1] == 0x8b
}

func gunzip(b []byte) ([]byte, bool) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, false
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	return out, true
}

func inflate(b []byte) ([]byte, bool) {
	if zr, err := zlib.NewReader(bytes.NewReader(b)); err == nil {
		out, err := io.ReadAll(zr)
		_ = zr.Close()
		if err == nil {
			return out, true
		}
	}
	fr := flate.NewReader(bytes.NewReader(b))
	defer fr.Close()
	out, err := io.ReadAll(fr)
	if err != nil {
		return nil, false
	}
	return out, true
}

func forceUTF8(contentType string) string {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	if cs, ok := params["charset"]; !ok || strings.EqualFold(cs, "utf-8") {
		return contentType
	}
	params["charset"] = "utf-8"
	return mime.FormatMediaType(mediaType, params)
}
