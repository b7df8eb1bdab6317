package collector

import (
	"context"
	"testing"
	"time"
)

func TestIsCafeFArticleURL(t *testing.T) {
	cases := []struct {
		link string
		want bool
	}{
		{"https://cafef.vn/gia-thep-tang-188251225205027358.chn", true},
		{"https://cafef.vn/thi-truong/gia-thep-tang-188251225205027358.chn", true},
		{"https://cafef.vn/doc-nhanh.chn", false},
		{"https://cafef.vn/doc-nhanh/trang-2.chn", false},
		{"https://cafef.vn/trang-188251225205027358.chn", false},
		{"https://cafef.vn/video/clip-188251225205027358.chn", false},
		{"https://cafef.vn/du-lieu/bang-gia-188251225205027358.chn", false},
		{"https://cafef.vn/static/x-188251225205027358.chn", false},
		{"https://cafef.vn/thi-truong-chung-khoan-12345.chn", false},
		{"https://cafef.vn/gia-thep-tang-188251225205027358.chn?ref=home", true},
	}
	for _, tc := range cases {
		if got := isCafeFArticleURL(tc.link); got != tc.want {
			t.Errorf("isCafeFArticleURL(%q) = %v, want %v", tc.link, got, tc.want)
		}
	}
}

const (
	cafefA = "/a-188251225205027351.chn"
	cafefB = "/b-188251225205027352.chn"
	cafefC = "/c-188251225205027353.chn"
	cafefD = "/d-188251225205027354.chn"
)

func cafefPage(links ...string) string {
	body := `<html><body><a href="/doc-nhanh/trang-2.chn">2</a><a href="/video/v-188251225205027359.chn">video</a>`
	for _, l := range links {
		body += `<div class="item"><a href="` + l + `">tin</a></div>`
	}
	return body + "</body></html>"
}

func cafefServer(t *testing.T) *fixtureServer {
	return newFixtureServer(t, map[string]string{
		"/doc-nhanh.chn":         cafefPage(cafefA, cafefB),
		"/doc-nhanh/trang-2.chn": cafefPage(cafefB, cafefC, cafefD),
		"/doc-nhanh/trang-3.chn": cafefPage(cafefA),
		"/doc-nhanh/trang-4.chn": cafefPage("/e-188251225205027355.chn"),
	})
}

func TestCafeFPaginationStopsWhenPageAddsNothing(t *testing.T) {
	fs := cafefServer(t)
	opts := testOptions(fs)
	opts.MaxPages = 5
	c := NewCafeF(opts)

	urls, err := c.ListArticleURLs(context.Background(), 15)
	if err != nil {
		t.Fatalf("ListArticleURLs error: %v", err)
	}
	want := []string{fs.URL + cafefA, fs.URL + cafefB, fs.URL + cafefC, fs.URL + cafefD}
	if !equalStrings(urls, want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
	if fs.hit("/doc-nhanh/trang-3.chn") != 1 {
		t.Fatalf("page 3 should be requested once, got %d", fs.hit("/doc-nhanh/trang-3.chn"))
	}
	if fs.hit("/doc-nhanh/trang-4.chn") != 0 {
		t.Fatalf("page 4 must not be requested after page 3 added nothing")
	}
}

func TestCafeFListingRespectsCap(t *testing.T) {
	fs := cafefServer(t)
	opts := testOptions(fs)
	opts.MaxPages = 5
	c := NewCafeF(opts)

	urls, err := c.ListArticleURLs(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListArticleURLs error: %v", err)
	}
	want := []string{fs.URL + cafefA, fs.URL + cafefB, fs.URL + cafefC}
	if !equalStrings(urls, want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
	if fs.hit("/doc-nhanh/trang-3.chn") != 0 {
		t.Fatalf("no page should be requested once the cap is reached")
	}
}

func TestCafeFFetchArticle(t *testing.T) {
	page := `<html><body>
<a data-role="cate-name" href="/thi-truong.chn" title="Thị trường"></a>
<h1 class="title">Giá thép tăng lần thứ ba</h1>
<span class="pdate" data-role="publishdate">29-12-2025 - 15:50 PM</span>
<div class="detail-content">
  <p>Các doanh nghiệp thép đồng loạt điều chỉnh giá bán thêm 200.000 đồng mỗi tấn.</p>
  <p>Link bài gốc Lấy link! https://cafef.vn/x.chn</p>
  <script>var a = 1;</script>
  <p>Đây là lần tăng thứ ba kể từ đầu tháng.</p>
</div></body></html>`
	fs := newFixtureServer(t, map[string]string{cafefA: page})
	c := NewCafeF(testOptions(fs))

	a, err := c.FetchArticle(context.Background(), fs.URL+cafefA)
	if err != nil {
		t.Fatalf("FetchArticle error: %v", err)
	}
	want := "Các doanh nghiệp thép đồng loạt điều chỉnh giá bán thêm 200.000 đồng mỗi tấn. Đây là lần tăng thứ ba kể từ đầu tháng."
	if a.Content != want {
		t.Fatalf("Content = %q", a.Content)
	}
	if a.Category != "THỊ TRƯỜNG" {
		t.Fatalf("Category = %q", a.Category)
	}
	wantTS := time.Date(2025, 12, 29, 15, 50, 0, 0, locVN).Unix()
	if a.PublishedAt != wantTS {
		t.Fatalf("PublishedAt = %d, want %d", a.PublishedAt, wantTS)
	}
}

func TestListingWithZeroCapIsEmpty(t *testing.T) {
	fs := cafefServer(t)
	urls, err := NewCafeF(testOptions(fs)).ListArticleURLs(context.Background(), 0)
	if err != nil || len(urls) != 0 {
		t.Fatalf("cafef: urls = %v, err = %v", urls, err)
	}
	if fs.hit("/doc-nhanh.chn") != 0 {
		t.Fatalf("cafef: no listing page should be requested")
	}

	feed := newFixtureServer(t, map[string]string{
		"/rss/tin-moi-nhat.rss": rssFeed(`<item><title>Tin 1</title><link>/tin-1.htm</link></item>`),
	})
	urls, err = NewTuoiTre(testOptions(feed)).ListArticleURLs(context.Background(), 0)
	if err != nil || len(urls) != 0 {
		t.Fatalf("tuoitre: urls = %v, err = %v", urls, err)
	}
	if feed.hit("/rss/tin-moi-nhat.rss") != 0 {
		t.Fatalf("tuoitre: feed should not be requested")
	}

	page := newFixtureServer(t, map[string]string{"/": `<a href="/a-d1.html">A</a>`})
	if urls, err = NewTaiChinhDoanhNghiep(testOptions(page)).ListArticleURLs(context.Background(), -1); err != nil || len(urls) != 0 {
		t.Fatalf("taichinhdoanhnghiep: urls = %v, err = %v", urls, err)
	}
}
